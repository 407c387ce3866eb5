package repositories

import (
	"gorm.io/gorm"

	"github.com/postxindia/postx-backend/internal/models"
)

// NotificationRepo interface defines notification operations
type NotificationRepo interface {
	Create(notification *models.Notification) error
	GetByUserID(userID string, limit int) ([]models.Notification, error)
}

type notificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepo creates a new notification repository
func NewNotificationRepo(db *gorm.DB) NotificationRepo {
	return &notificationRepo{db: db}
}

// Create inserts a new notification
func (r *notificationRepo) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// GetByUserID retrieves notifications for a user, newest first
func (r *notificationRepo) GetByUserID(userID string, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}
