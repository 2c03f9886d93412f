package service

import (
	"booking/internal/api/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotificationText(t *testing.T) {
	tests := []struct {
		name   string
		status models.BookingStatus
		want   string
	}{
		{"confirmed", models.StatusConfirmed, "Your booking has been confirmed."},
		{"unconfirmed", models.StatusUnconfirmed, "Your booking could not be confirmed yet."},
		{"rejected", models.StatusRejected, "Your booking has been rejected."},
		{"completed", models.StatusCompleted, "Your booking has been completed. Leave a review!"},
		{"cancelled falls back to generic copy", models.StatusCancelled, "Your booking status changed to cancelled."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, notificationText(tt.status))
		})
	}
}
