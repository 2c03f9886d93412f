package models

import (
	"time"

	"gorm.io/gorm"
)

// Agent is a service provider profile linked one-to-one to a user account.
type Agent struct {
	ID          uint           `gorm:"primaryKey"`
	UserID      uint           `gorm:"uniqueIndex;not null"`
	User        User           `gorm:"foreignKey:UserID"`
	DisplayName string         `gorm:"not null"`
	Bio         string         `gorm:"type:text"`
	City        string
	Country     string
	HourlyRate  float64
	Rating      float64        `gorm:"default:0"`
	ReviewCount int            `gorm:"default:0"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Agent) TableName() string {
	return "agents"
}
