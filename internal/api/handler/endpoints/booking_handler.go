package endpoints

import (
	"booking"
	"booking/internal/api/handler/middleware"
	"booking/internal/api/handler/request"
	"booking/internal/api/handler/response"
	"booking/internal/api/models"
	"booking/internal/api/service"
	"booking/pkg"
	"net/http"
	"strconv"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type bookingHandler struct {
	bookingService *service.BookingService
	logger         zerolog.Logger
	config         booking.AppConfig
}

func newBookingHandler() *bookingHandler {
	return &bookingHandler{
		bookingService: service.NewBookingService(),
		logger:         booking.Logger,
		config:         booking.GetConfig(),
	}
}

func BookingHandler(router *graceful.Graceful) {
	h := newBookingHandler()

	bookings := router.Group("/api/v1/bookings")
	bookings.Use(middleware.AuthMiddleware(h.config))
	{
		bookings.POST("", h.createBooking)
		bookings.GET("/:id", h.getBooking)
		bookings.GET("/mine", h.listMyBookings)
		bookings.GET("/assigned", h.listAssignedBookings)
		bookings.POST("/:id/status", h.changeStatus)
	}

	admin := router.Group("/api/v1/admin/bookings")
	admin.Use(middleware.AuthMiddleware(h.config))
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.DELETE("/:id", h.deleteBooking)
	}
}

func (slf *bookingHandler) createBooking(c *gin.Context) {
	var dto request.CreateBookingDTO

	err := pkg.ParseAndValidate(c, &dto)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	b, err := slf.bookingService.Create(middleware.UserID(c), dto)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error creating booking")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, b)
}

func (slf *bookingHandler) getBooking(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid booking ID"})
		return
	}

	b, err := slf.bookingService.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, b)
}

func (slf *bookingHandler) listMyBookings(c *gin.Context) {
	bookings, err := slf.bookingService.ListForClient(middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "failed to list bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (slf *bookingHandler) listAssignedBookings(c *gin.Context) {
	bookings, err := slf.bookingService.ListForAgentUser(middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// changeStatus is the status mutation entrypoint; the realtime push to
// both parties happens asynchronously once the persisted change reaches
// the change feed.
func (slf *bookingHandler) changeStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid booking ID"})
		return
	}

	var dto request.ChangeStatusDTO
	if err := pkg.ParseAndValidate(c, &dto); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	message, err := slf.bookingService.ChangeStatus(uint(id), dto.Status, middleware.UserID(c), middleware.UserRole(c))
	if err != nil {
		slf.logger.Error().Err(err).Uint64("bookingId", id).Msg("Error changing booking status")
		c.JSON(http.StatusBadRequest, response.StatusChangeResponseDTO{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, response.StatusChangeResponseDTO{Message: message, Success: true})
}

func (slf *bookingHandler) deleteBooking(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid booking ID"})
		return
	}

	if err := slf.bookingService.Delete(uint(id)); err != nil {
		slf.logger.Error().Err(err).Uint64("bookingId", id).Msg("Error deleting booking")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "failed to delete booking"})
		return
	}

	c.Status(http.StatusNoContent)
}
