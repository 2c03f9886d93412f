package response

import "time"

type BookingResponseDTO struct {
	ID        uint      `json:"id"`
	ClientID  uint      `json:"clientId"`
	AgentID   uint      `json:"agentId"`
	Status    string    `json:"status"`
	StartsAt  time.Time `json:"startsAt"`
	EndsAt    time.Time `json:"endsAt"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"createdAt"`
}

// StatusChangeResponseDTO is the body of the status mutation entrypoint.
type StatusChangeResponseDTO struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

type NotificationResponseDTO struct {
	ID         uint      `json:"id"`
	Kind       string    `json:"kind"`
	Text       string    `json:"text"`
	ActionPath string    `json:"actionPath"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"createdAt"`
}
