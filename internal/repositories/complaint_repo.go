package repositories

import (
	"gorm.io/gorm"

	"github.com/postxindia/postx-backend/internal/models"
)

// ComplaintRepo interface defines complaint operations
type ComplaintRepo interface {
	Create(complaint *models.Complaint) error
	GetByUserID(userID string, limit int) ([]models.Complaint, error)
}

type complaintRepo struct {
	db *gorm.DB
}

// NewComplaintRepo creates a new complaint repository
func NewComplaintRepo(db *gorm.DB) ComplaintRepo {
	return &complaintRepo{db: db}
}

// Create inserts a new complaint
func (r *complaintRepo) Create(complaint *models.Complaint) error {
	return r.db.Create(complaint).Error
}

// GetByUserID retrieves complaints for a user, newest first
func (r *complaintRepo) GetByUserID(userID string, limit int) ([]models.Complaint, error) {
	var complaints []models.Complaint
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}
