package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// BookingStatus is the closed set of lifecycle states a booking moves
// through. Transitions are validated against AllowedTransitions.
type BookingStatus string

const (
	StatusPending     BookingStatus = "pending"
	StatusConfirmed   BookingStatus = "confirmed"
	StatusUnconfirmed BookingStatus = "unconfirmed"
	StatusRejected    BookingStatus = "rejected"
	StatusCompleted   BookingStatus = "completed"
	StatusCancelled   BookingStatus = "cancelled"
)

// AllowedTransitions is the adjacency table for status changes. Anything
// not listed here is rejected.
var AllowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusUnconfirmed, StatusRejected, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// KnownStatus reports whether s is one of the defined booking states.
func KnownStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusUnconfirmed, StatusRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether a booking in state from may move to state to.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range AllowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ProfileSnapshot is a free-form copy of a party's profile taken at
// booking creation time, stored as jsonb.
type ProfileSnapshot map[string]interface{}

func (p ProfileSnapshot) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *ProfileSnapshot) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan ProfileSnapshot: not bytes")
	}
	return json.Unmarshal(bytes, p)
}

type Booking struct {
	ID            uint            `gorm:"primaryKey"`
	ClientID      uint            `gorm:"not null;index"`
	Client        User            `gorm:"foreignKey:ClientID"`
	AgentID       uint            `gorm:"not null;index"`
	Agent         Agent           `gorm:"foreignKey:AgentID"`
	Status        BookingStatus   `gorm:"default:pending;type:varchar(20)"`
	StartsAt      time.Time       `gorm:"not null"`
	EndsAt        time.Time       `gorm:"not null"`
	Address       string
	City          string
	Country       string
	ClientProfile ProfileSnapshot `gorm:"type:jsonb"`
	AgentProfile  ProfileSnapshot `gorm:"type:jsonb"`
	CreatedAt     time.Time       `gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt  `gorm:"index"`
}

func (Booking) TableName() string {
	return "bookings"
}
