package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type AppRole string

const (
	RoleUser  AppRole = "user"
	RoleAgent AppRole = "agent"
	RoleAdmin AppRole = "admin"
)

// SessionRecord is one device session embedded in the user row. An empty
// token is the revoked sentinel.
type SessionRecord struct {
	Token        string    `json:"token"`
	LastModified time.Time `json:"lastModified"`
}

// SessionRecords is stored as a jsonb column so the whole set is persisted
// with a single save of the user row.
type SessionRecords []SessionRecord

func (s SessionRecords) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *SessionRecords) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan SessionRecords: not bytes")
	}
	return json.Unmarshal(bytes, s)
}

type User struct {
	ID        uint           `gorm:"primaryKey"`
	Email     string         `gorm:"uniqueIndex;not null"`
	Password  string         `gorm:"not null;column:password"`
	FirstName string         `gorm:"not null;column:first_name"`
	LastName  string         `gorm:"not null;column:last_name"`
	Role      AppRole        `gorm:"default:user;type:varchar(20)"`
	Active    bool           `gorm:"default:true;column:active"`
	Sessions  SessionRecords `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime;column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index;column:deleted_at"`
}

func (User) TableName() string {
	return "users"
}
