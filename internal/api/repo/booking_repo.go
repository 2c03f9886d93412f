package repo

import (
	"booking"
	"booking/internal/api/models"
	"booking/internal/feed"

	"gorm.io/gorm"
)

// BookingRepository is the persistence layer for bookings. Every applied
// mutation is mirrored onto the change feed so the realtime listener can
// observe it; publish failures do not fail the write itself.
type BookingRepository struct {
	Db        *gorm.DB
	publisher *feed.Publisher
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{
		Db:        booking.DB,
		publisher: feed.NewPublisher(booking.Nats, booking.Logger),
	}
}

func (slf *BookingRepository) FindByID(id uint) (models.Booking, error) {
	var b models.Booking
	err := slf.Db.First(&b, id).Error
	return b, err
}

func (slf *BookingRepository) Create(b *models.Booking) error {
	if err := slf.Db.Create(b).Error; err != nil {
		return err
	}
	_ = slf.publisher.Publish(feed.OpCreate, b.ID)
	return nil
}

// UpdateStatus persists a new status for the booking and emits an update
// event carrying the changed field path.
func (slf *BookingRepository) UpdateStatus(id uint, status models.BookingStatus) error {
	err := slf.Db.Model(&models.Booking{}).Where("id = ?", id).Update("status", status).Error
	if err != nil {
		return err
	}
	_ = slf.publisher.Publish(feed.OpUpdate, id, feed.FieldStatus)
	return nil
}

func (slf *BookingRepository) Delete(id uint) error {
	if err := slf.Db.Delete(&models.Booking{}, id).Error; err != nil {
		return err
	}
	_ = slf.publisher.Publish(feed.OpDelete, id)
	return nil
}

func (slf *BookingRepository) FindByClient(clientID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := slf.Db.Where("client_id = ?", clientID).Order("starts_at desc").Find(&bookings).Error
	return bookings, err
}

func (slf *BookingRepository) FindByAgent(agentID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := slf.Db.Where("agent_id = ?", agentID).Order("starts_at desc").Find(&bookings).Error
	return bookings, err
}
