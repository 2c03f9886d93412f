package models

import "time"

type NotificationKind string

const (
	NotificationKindBooking NotificationKind = "booking"
)

// Notification is one entry in a user's inbox, appended as a side effect
// of a booking status transition. It is independent of the transient
// reload push sent over the websocket.
type Notification struct {
	ID         uint             `gorm:"primaryKey"`
	UserID     uint             `gorm:"not null;index"`
	Kind       NotificationKind `gorm:"type:varchar(20);not null"`
	Text       string           `gorm:"type:text;not null"`
	ActionPath string
	Read       bool      `gorm:"default:false"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (Notification) TableName() string {
	return "notifications"
}
