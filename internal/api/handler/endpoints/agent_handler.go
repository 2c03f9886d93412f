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

type agentHandler struct {
	agentService *service.AgentService
	logger       zerolog.Logger
	config       booking.AppConfig
}

func newAgentHandler() *agentHandler {
	return &agentHandler{
		agentService: service.NewAgentService(),
		logger:       booking.Logger,
		config:       booking.GetConfig(),
	}
}

func AgentHandler(router *graceful.Graceful) {
	h := newAgentHandler()

	agents := router.Group("/api/v1/agents")
	{
		agents.GET("", h.listAgents)
		agents.GET("/:id", h.getAgent)
	}

	protected := router.Group("/api/v1/agents")
	protected.Use(middleware.AuthMiddleware(h.config))
	{
		protected.POST("", h.createAgent)
		protected.PUT("/me", h.updateAgent)
	}
}

func (slf *agentHandler) createAgent(c *gin.Context) {
	var dto request.CreateAgentDTO

	err := pkg.ParseAndValidate(c, &dto)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	agent, err := slf.agentService.Create(middleware.UserID(c), dto)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error creating agent profile")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, agent)
}

func (slf *agentHandler) updateAgent(c *gin.Context) {
	var dto request.UpdateAgentDTO

	err := pkg.ParseAndValidate(c, &dto)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	agent, err := slf.agentService.Update(middleware.UserID(c), dto)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, agent)
}

func (slf *agentHandler) getAgent(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid agent ID"})
		return
	}

	agent, err := slf.agentService.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, agent)
}

func (slf *agentHandler) listAgents(c *gin.Context) {
	agents, err := slf.agentService.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "failed to list agents"})
		return
	}

	c.JSON(http.StatusOK, agents)
}
