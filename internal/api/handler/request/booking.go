package request

import "time"

type CreateBookingDTO struct {
	AgentID  uint      `json:"agentId" validate:"required"`
	StartsAt time.Time `json:"startsAt" validate:"required"`
	EndsAt   time.Time `json:"endsAt" validate:"required"`
	Address  string    `json:"address"`
	City     string    `json:"city"`
	Country  string    `json:"country"`
}

type ChangeStatusDTO struct {
	Status string `json:"status" validate:"required"`
}
