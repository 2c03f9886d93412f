package repo

import (
	"booking"
	"booking/internal/api/models"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	Db *gorm.DB
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{Db: booking.DB}
}

func (slf *NotificationRepository) Create(n *models.Notification) error {
	return slf.Db.Create(n).Error
}

func (slf *NotificationRepository) FindByUser(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := slf.Db.Where("user_id = ?", userID).Order("created_at desc").Find(&notifications).Error
	return notifications, err
}

func (slf *NotificationRepository) MarkRead(id uint, userID uint) error {
	return slf.Db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true).Error
}
