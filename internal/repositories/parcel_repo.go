package repositories

import (
	"gorm.io/gorm"

	"github.com/postxindia/postx-backend/internal/models"
)

// ParcelRepo interface defines parcel operations
type ParcelRepo interface {
	Create(parcel *models.Parcel) error
	GetByTrackingNumber(trackingNumber string) (*models.Parcel, error)
	GetByUserID(userID string, limit int) ([]models.Parcel, error)
}

type parcelRepo struct {
	db *gorm.DB
}

// NewParcelRepo creates a new parcel repository
func NewParcelRepo(db *gorm.DB) ParcelRepo {
	return &parcelRepo{db: db}
}

// Create inserts a new parcel
func (r *parcelRepo) Create(parcel *models.Parcel) error {
	return r.db.Create(parcel).Error
}

// GetByTrackingNumber retrieves a parcel by its tracking number
func (r *parcelRepo) GetByTrackingNumber(trackingNumber string) (*models.Parcel, error) {
	var parcel models.Parcel
	if err := r.db.Where("tracking_number = ?", trackingNumber).First(&parcel).Error; err != nil {
		return nil, err
	}
	return &parcel, nil
}

// GetByUserID retrieves parcels for a user, newest first
func (r *parcelRepo) GetByUserID(userID string, limit int) ([]models.Parcel, error) {
	var parcels []models.Parcel
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&parcels).Error; err != nil {
		return nil, err
	}
	return parcels, nil
}
