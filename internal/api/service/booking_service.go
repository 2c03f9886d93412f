package service

import (
	"booking"
	"booking/internal/api/handler/mapper"
	"booking/internal/api/handler/request"
	"booking/internal/api/handler/response"
	"booking/internal/api/models"
	"booking/internal/api/repo"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type BookingService struct {
	bookingRepo      *repo.BookingRepository
	agentRepo        *repo.AgentRepository
	userRepo         *repo.UserRepository
	notificationRepo *repo.NotificationRepository
	mailService      *MailService
	logger           zerolog.Logger
	bookingMapper    mapper.BookingMapper
}

func NewBookingService() *BookingService {
	return &BookingService{
		bookingRepo:      repo.NewBookingRepository(),
		agentRepo:        repo.NewAgentRepository(),
		userRepo:         repo.NewUserRepository(),
		notificationRepo: repo.NewNotificationRepository(),
		mailService:      NewMailService(),
		logger:           booking.Logger,
	}
}

// Create opens a new booking in the pending state, snapshotting both
// parties' profiles as they are at creation time.
func (slf *BookingService) Create(clientID uint, dto request.CreateBookingDTO) (response.BookingResponseDTO, error) {
	client, err := slf.userRepo.FindByID(clientID)
	if err != nil {
		return response.BookingResponseDTO{}, errors.New("client not found")
	}

	agent, err := slf.agentRepo.FindByID(dto.AgentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.BookingResponseDTO{}, errors.New("agent not found")
		}
		slf.logger.Error().Err(err).Uint("agentId", dto.AgentID).Msg("Error loading agent for booking")
		return response.BookingResponseDTO{}, err
	}

	if agent.UserID == clientID {
		return response.BookingResponseDTO{}, errors.New("cannot book your own agent profile")
	}

	if !dto.EndsAt.After(dto.StartsAt) {
		return response.BookingResponseDTO{}, errors.New("booking end must be after start")
	}

	b := models.Booking{
		ClientID: clientID,
		AgentID:  agent.ID,
		Status:   models.StatusPending,
		StartsAt: dto.StartsAt,
		EndsAt:   dto.EndsAt,
		Address:  dto.Address,
		City:     dto.City,
		Country:  dto.Country,
		ClientProfile: models.ProfileSnapshot{
			"email":     client.Email,
			"firstName": client.FirstName,
			"lastName":  client.LastName,
		},
		AgentProfile: models.ProfileSnapshot{
			"displayName": agent.DisplayName,
			"city":        agent.City,
			"country":     agent.Country,
			"hourlyRate":  agent.HourlyRate,
		},
	}

	if err := slf.bookingRepo.Create(&b); err != nil {
		slf.logger.Error().Err(err).Uint("clientId", clientID).Msg("Error creating booking")
		return response.BookingResponseDTO{}, err
	}

	slf.logger.Info().Uint("bookingId", b.ID).Uint("clientId", clientID).Uint("agentId", agent.ID).Msg("Booking created")
	return slf.bookingMapper.EntityToBookingResponse(b), nil
}

// ChangeStatus applies a status transition requested by actorUserID.
// Only the booking's agent (or an admin) may transition it, and only
// along the allowed adjacency table; unknown or disallowed targets are
// rejected. On success the new status is persisted, a notification is
// appended to the client's inbox and the mutation reaches the change
// feed through the repository.
func (slf *BookingService) ChangeStatus(bookingID uint, target string, actorUserID uint, actorRole models.AppRole) (string, error) {
	targetStatus := models.BookingStatus(target)
	if !models.KnownStatus(targetStatus) {
		return "", fmt.Errorf("unknown booking status %q", target)
	}

	b, err := slf.bookingRepo.FindByID(bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errors.New("booking not found")
		}
		slf.logger.Error().Err(err).Uint("bookingId", bookingID).Msg("Error loading booking for status change")
		return "", err
	}

	if actorRole != models.RoleAdmin {
		agent, err := slf.agentRepo.FindByID(b.AgentID)
		if err != nil || agent.UserID != actorUserID {
			return "", errors.New("only the booking's agent may change its status")
		}
	}

	if !models.CanTransition(b.Status, targetStatus) {
		return "", fmt.Errorf("cannot transition booking from %q to %q", b.Status, targetStatus)
	}

	if err := slf.bookingRepo.UpdateStatus(bookingID, targetStatus); err != nil {
		slf.logger.Error().Err(err).Uint("bookingId", bookingID).Msg("Error persisting status change")
		return "", err
	}

	text := notificationText(targetStatus)
	notification := models.Notification{
		UserID:     b.ClientID,
		Kind:       models.NotificationKindBooking,
		Text:       text,
		ActionPath: fmt.Sprintf("/bookings/%d", bookingID),
	}
	if err := slf.notificationRepo.Create(&notification); err != nil {
		// The status change already landed; the inbox entry is a side
		// effect, not part of the transition.
		slf.logger.Error().Err(err).Uint("bookingId", bookingID).Msg("Error appending inbox notification")
	}

	go slf.sendStatusEmail(b.ClientID, text)

	slf.logger.Info().
		Uint("bookingId", bookingID).
		Str("from", string(b.Status)).
		Str("to", string(targetStatus)).
		Msg("Booking status changed")
	return text, nil
}

// sendStatusEmail delivers the transition copy by email, best effort.
func (slf *BookingService) sendStatusEmail(clientID uint, text string) {
	client, err := slf.userRepo.FindByID(clientID)
	if err != nil {
		slf.logger.Warn().Err(err).Uint("userId", clientID).Msg("Skipping status email, client not found")
		return
	}

	err = slf.mailService.SendInternal(EmailMessage{
		To:      []string{client.Email},
		Subject: "Your booking was updated",
		Body:    text,
	})
	if err != nil {
		slf.logger.Warn().Err(err).Uint("userId", clientID).Msg("Failed to send status email")
	}
}

func (slf *BookingService) GetByID(id uint) (response.BookingResponseDTO, error) {
	b, err := slf.bookingRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.BookingResponseDTO{}, errors.New("booking not found")
		}
		return response.BookingResponseDTO{}, err
	}
	return slf.bookingMapper.EntityToBookingResponse(b), nil
}

func (slf *BookingService) ListForClient(clientID uint) ([]response.BookingResponseDTO, error) {
	bookings, err := slf.bookingRepo.FindByClient(clientID)
	if err != nil {
		slf.logger.Error().Err(err).Uint("clientId", clientID).Msg("Error listing client bookings")
		return nil, err
	}
	return slf.bookingMapper.EntitiesToBookingResponses(bookings), nil
}

func (slf *BookingService) ListForAgentUser(agentUserID uint) ([]response.BookingResponseDTO, error) {
	agent, err := slf.agentRepo.FindByUserID(agentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("agent not found")
		}
		return nil, err
	}

	bookings, err := slf.bookingRepo.FindByAgent(agent.ID)
	if err != nil {
		slf.logger.Error().Err(err).Uint("agentId", agent.ID).Msg("Error listing agent bookings")
		return nil, err
	}
	return slf.bookingMapper.EntitiesToBookingResponses(bookings), nil
}

// Delete is the administrative removal path; the state machine itself
// never deletes bookings.
func (slf *BookingService) Delete(id uint) error {
	return slf.bookingRepo.Delete(id)
}

// notificationText selects the inbox copy for a transition target. The
// generic fallback covers targets without dedicated copy (cancelled).
func notificationText(status models.BookingStatus) string {
	switch status {
	case models.StatusConfirmed:
		return "Your booking has been confirmed."
	case models.StatusUnconfirmed:
		return "Your booking could not be confirmed yet."
	case models.StatusRejected:
		return "Your booking has been rejected."
	case models.StatusCompleted:
		return "Your booking has been completed. Leave a review!"
	default:
		return fmt.Sprintf("Your booking status changed to %s.", status)
	}
}
