package endpoints

import (
	"booking"
	"booking/internal/api/handler/middleware"
	"booking/internal/api/handler/request"
	"booking/internal/api/handler/response"
	"booking/internal/api/service"
	"booking/pkg"
	"net/http"
	"strconv"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type authHandler struct {
	userService *service.UserService
	logger      zerolog.Logger
	config      booking.AppConfig
}

func newAuthHandler() *authHandler {
	return &authHandler{
		userService: service.NewUserService(),
		logger:      booking.Logger,
		config:      booking.GetConfig(),
	}
}

func AuthHandler(router *graceful.Graceful) {
	h := newAuthHandler()

	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.POST("/refresh", h.refreshToken)
	}

	protected := router.Group("/api/v1")
	protected.Use(middleware.AuthMiddleware(h.config))
	{
		protected.GET("/me", h.getMe)
		protected.POST("/logout", h.logout)
		protected.GET("/notifications", h.getInbox)
		protected.POST("/notifications/:id/read", h.markNotificationRead)
	}
}

func (slf *authHandler) register(c *gin.Context) {
	var registerDTO request.RegisterDTO

	err := pkg.ParseAndValidate(c, &registerDTO)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating register DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	authResponse, err := slf.userService.Register(registerDTO)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error registering user")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, authResponse)
}

func (slf *authHandler) login(c *gin.Context) {
	var loginDTO request.LoginDTO

	err := pkg.ParseAndValidate(c, &loginDTO)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	authResponse, err := slf.userService.Login(loginDTO)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, authResponse)
}

func (slf *authHandler) refreshToken(c *gin.Context) {
	var dto request.RefreshTokenDTO

	err := pkg.ParseAndValidate(c, &dto)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	authResponse, err := slf.userService.RefreshToken(dto.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, authResponse)
}

func (slf *authHandler) logout(c *gin.Context) {
	var dto request.RefreshTokenDTO

	err := pkg.ParseAndValidate(c, &dto)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	if err := slf.userService.Logout(middleware.UserID(c), dto.RefreshToken); err != nil {
		slf.logger.Error().Err(err).Msg("Error logging out")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "failed to log out"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (slf *authHandler) getMe(c *gin.Context) {
	user, err := slf.userService.GetByID(middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (slf *authHandler) getInbox(c *gin.Context) {
	notifications, err := slf.userService.GetInbox(middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "failed to load notifications"})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

func (slf *authHandler) markNotificationRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid notification ID"})
		return
	}

	if err := slf.userService.MarkNotificationRead(uint(id), middleware.UserID(c)); err != nil {
		slf.logger.Error().Err(err).Msg("Error marking notification read")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "failed to update notification"})
		return
	}

	c.Status(http.StatusNoContent)
}
