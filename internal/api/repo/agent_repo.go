package repo

import (
	"booking"
	"booking/internal/api/models"

	"gorm.io/gorm"
)

type AgentRepository struct {
	Db *gorm.DB
}

func NewAgentRepository() *AgentRepository {
	return &AgentRepository{Db: booking.DB}
}

func (slf *AgentRepository) FindByID(id uint) (models.Agent, error) {
	var agent models.Agent
	err := slf.Db.First(&agent, id).Error
	return agent, err
}

func (slf *AgentRepository) FindByUserID(userID uint) (models.Agent, error) {
	var agent models.Agent
	err := slf.Db.Where("user_id = ?", userID).First(&agent).Error
	return agent, err
}

func (slf *AgentRepository) Create(agent *models.Agent) error {
	return slf.Db.Create(agent).Error
}

func (slf *AgentRepository) Update(agent *models.Agent) error {
	return slf.Db.Save(agent).Error
}

func (slf *AgentRepository) GetAll() ([]models.Agent, error) {
	var agents []models.Agent
	err := slf.Db.Find(&agents).Error
	return agents, err
}

func (slf *AgentRepository) ExistsByUserID(userID uint) (bool, error) {
	var count int64
	err := slf.Db.Model(&models.Agent{}).Where("user_id = ?", userID).Count(&count).Error
	return count > 0, err
}
