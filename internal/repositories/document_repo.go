package repositories

import (
	"gorm.io/gorm"

	"github.com/postxindia/postx-backend/internal/models"
)

// DocumentRepo interface defines scanned document operations
type DocumentRepo interface {
	Create(doc *models.ScannedDocument) error
	GetByUserID(userID string, limit int) ([]models.ScannedDocument, error)
}

type documentRepo struct {
	db *gorm.DB
}

// NewDocumentRepo creates a new document repository
func NewDocumentRepo(db *gorm.DB) DocumentRepo {
	return &documentRepo{db: db}
}

// Create inserts a new scanned document
func (r *documentRepo) Create(doc *models.ScannedDocument) error {
	return r.db.Create(doc).Error
}

// GetByUserID retrieves scanned documents for a user, newest first
func (r *documentRepo) GetByUserID(userID string, limit int) ([]models.ScannedDocument, error) {
	var docs []models.ScannedDocument
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}
