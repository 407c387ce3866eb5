package repositories

import (
	"gorm.io/gorm"

	"github.com/postxindia/postx-backend/internal/models"
)

// SortedMailRepo interface defines smart-route record operations
type SortedMailRepo interface {
	Create(record *models.SortedMail) error
	GetByUserID(userID string, limit int) ([]models.SortedMail, error)
}

type sortedMailRepo struct {
	db *gorm.DB
}

// NewSortedMailRepo creates a new sorted mail repository
func NewSortedMailRepo(db *gorm.DB) SortedMailRepo {
	return &sortedMailRepo{db: db}
}

// Create inserts a new sorted mail record
func (r *sortedMailRepo) Create(record *models.SortedMail) error {
	return r.db.Create(record).Error
}

// GetByUserID retrieves smart-route records for a user, newest first
func (r *sortedMailRepo) GetByUserID(userID string, limit int) ([]models.SortedMail, error) {
	var records []models.SortedMail
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
