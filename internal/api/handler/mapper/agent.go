package mapper

import (
	"booking/internal/api/handler/response"
	"booking/internal/api/models"
)

type AgentMapper struct{}

func (AgentMapper) EntityToAgentResponse(agent models.Agent) response.AgentResponseDTO {
	return response.AgentResponseDTO{
		ID:          agent.ID,
		UserID:      agent.UserID,
		DisplayName: agent.DisplayName,
		Bio:         agent.Bio,
		City:        agent.City,
		Country:     agent.Country,
		HourlyRate:  agent.HourlyRate,
		Rating:      agent.Rating,
		ReviewCount: agent.ReviewCount,
	}
}

func (m AgentMapper) EntitiesToAgentResponses(agents []models.Agent) []response.AgentResponseDTO {
	out := make([]response.AgentResponseDTO, 0, len(agents))
	for _, a := range agents {
		out = append(out, m.EntityToAgentResponse(a))
	}
	return out
}
