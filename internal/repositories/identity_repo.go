package repositories

import (
	"gorm.io/gorm"

	"github.com/postxindia/postx-backend/internal/models"
)

// IdentityRepo interface defines identity verification operations
type IdentityRepo interface {
	Create(verification *models.IdentityVerification) error
	GetByUserID(userID string, limit int) ([]models.IdentityVerification, error)
}

type identityRepo struct {
	db *gorm.DB
}

// NewIdentityRepo creates a new identity verification repository
func NewIdentityRepo(db *gorm.DB) IdentityRepo {
	return &identityRepo{db: db}
}

// Create inserts a new verification request
func (r *identityRepo) Create(verification *models.IdentityVerification) error {
	return r.db.Create(verification).Error
}

// GetByUserID retrieves verification requests for a user, newest first
func (r *identityRepo) GetByUserID(userID string, limit int) ([]models.IdentityVerification, error) {
	var verifications []models.IdentityVerification
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&verifications).Error; err != nil {
		return nil, err
	}
	return verifications, nil
}
