package service

import (
	"booking"
	"booking/internal/api/handler/mapper"
	"booking/internal/api/handler/request"
	"booking/internal/api/handler/response"
	"booking/internal/api/models"
	"booking/internal/api/repo"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type AgentService struct {
	agentRepo   *repo.AgentRepository
	userRepo    *repo.UserRepository
	logger      zerolog.Logger
	agentMapper mapper.AgentMapper
}

func NewAgentService() *AgentService {
	return &AgentService{
		agentRepo: repo.NewAgentRepository(),
		userRepo:  repo.NewUserRepository(),
		logger:    booking.Logger,
	}
}

// Create turns an existing user account into an agent profile. One
// profile per user.
func (slf *AgentService) Create(userID uint, dto request.CreateAgentDTO) (response.AgentResponseDTO, error) {
	exists, err := slf.agentRepo.ExistsByUserID(userID)
	if err != nil {
		slf.logger.Error().Err(err).Uint("userId", userID).Msg("Error checking existing agent profile")
		return response.AgentResponseDTO{}, err
	}
	if exists {
		return response.AgentResponseDTO{}, errors.New("user already has an agent profile")
	}

	user, err := slf.userRepo.FindByID(userID)
	if err != nil {
		return response.AgentResponseDTO{}, errors.New("user not found")
	}

	agent := models.Agent{
		UserID:      userID,
		DisplayName: dto.DisplayName,
		Bio:         dto.Bio,
		City:        dto.City,
		Country:     dto.Country,
		HourlyRate:  dto.HourlyRate,
	}
	if err := slf.agentRepo.Create(&agent); err != nil {
		slf.logger.Error().Err(err).Uint("userId", userID).Msg("Error creating agent profile")
		return response.AgentResponseDTO{}, err
	}

	user.Role = models.RoleAgent
	if err := slf.userRepo.Update(&user); err != nil {
		slf.logger.Error().Err(err).Uint("userId", userID).Msg("Error promoting user to agent role")
		return response.AgentResponseDTO{}, err
	}

	slf.logger.Info().Uint("agentId", agent.ID).Uint("userId", userID).Msg("Agent profile created")
	return slf.agentMapper.EntityToAgentResponse(agent), nil
}

// Update applies the non-nil fields of dto to the caller's own profile.
func (slf *AgentService) Update(userID uint, dto request.UpdateAgentDTO) (response.AgentResponseDTO, error) {
	agent, err := slf.agentRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.AgentResponseDTO{}, errors.New("agent not found")
		}
		return response.AgentResponseDTO{}, err
	}

	if dto.DisplayName != nil {
		agent.DisplayName = *dto.DisplayName
	}
	if dto.Bio != nil {
		agent.Bio = *dto.Bio
	}
	if dto.City != nil {
		agent.City = *dto.City
	}
	if dto.Country != nil {
		agent.Country = *dto.Country
	}
	if dto.HourlyRate != nil {
		agent.HourlyRate = *dto.HourlyRate
	}

	if err := slf.agentRepo.Update(&agent); err != nil {
		slf.logger.Error().Err(err).Uint("agentId", agent.ID).Msg("Error updating agent profile")
		return response.AgentResponseDTO{}, err
	}

	return slf.agentMapper.EntityToAgentResponse(agent), nil
}

func (slf *AgentService) GetByID(id uint) (response.AgentResponseDTO, error) {
	agent, err := slf.agentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.AgentResponseDTO{}, errors.New("agent not found")
		}
		slf.logger.Error().Err(err).Uint("agentId", id).Msg("Error finding agent by ID")
		return response.AgentResponseDTO{}, err
	}
	return slf.agentMapper.EntityToAgentResponse(agent), nil
}

func (slf *AgentService) GetByUserID(userID uint) (response.AgentResponseDTO, error) {
	agent, err := slf.agentRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.AgentResponseDTO{}, errors.New("agent not found")
		}
		return response.AgentResponseDTO{}, err
	}
	return slf.agentMapper.EntityToAgentResponse(agent), nil
}

func (slf *AgentService) GetAll() ([]response.AgentResponseDTO, error) {
	agents, err := slf.agentRepo.GetAll()
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error listing agents")
		return nil, err
	}
	return slf.agentMapper.EntitiesToAgentResponses(agents), nil
}
