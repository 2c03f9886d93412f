package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKnownStatus(t *testing.T) {
	for _, s := range []BookingStatus{
		StatusPending, StatusConfirmed, StatusUnconfirmed,
		StatusRejected, StatusCompleted, StatusCancelled,
	} {
		assert.True(t, KnownStatus(s), "%s should be known", s)
	}

	assert.False(t, KnownStatus("archived"))
	assert.False(t, KnownStatus(""))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"pending to unconfirmed", StatusPending, StatusUnconfirmed, true},
		{"pending to rejected", StatusPending, StatusRejected, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"confirmed to completed", StatusConfirmed, StatusCompleted, true},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"pending to completed", StatusPending, StatusCompleted, false},
		{"confirmed to rejected", StatusConfirmed, StatusRejected, false},
		{"completed is terminal", StatusCompleted, StatusPending, false},
		{"rejected is terminal", StatusRejected, StatusConfirmed, false},
		{"cancelled is terminal", StatusCancelled, StatusConfirmed, false},
		{"no self transition", StatusPending, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}
