package mapper

import (
	"booking/internal/api/handler/response"
	"booking/internal/api/models"
)

type BookingMapper struct{}

func (BookingMapper) EntityToBookingResponse(b models.Booking) response.BookingResponseDTO {
	return response.BookingResponseDTO{
		ID:        b.ID,
		ClientID:  b.ClientID,
		AgentID:   b.AgentID,
		Status:    string(b.Status),
		StartsAt:  b.StartsAt,
		EndsAt:    b.EndsAt,
		Address:   b.Address,
		City:      b.City,
		Country:   b.Country,
		CreatedAt: b.CreatedAt,
	}
}

func (m BookingMapper) EntitiesToBookingResponses(bookings []models.Booking) []response.BookingResponseDTO {
	out := make([]response.BookingResponseDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, m.EntityToBookingResponse(b))
	}
	return out
}

func (BookingMapper) EntityToNotificationResponse(n models.Notification) response.NotificationResponseDTO {
	return response.NotificationResponseDTO{
		ID:         n.ID,
		Kind:       string(n.Kind),
		Text:       n.Text,
		ActionPath: n.ActionPath,
		Read:       n.Read,
		CreatedAt:  n.CreatedAt,
	}
}
