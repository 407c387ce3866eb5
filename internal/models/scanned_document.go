package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScannedDocument is a document digitized through the OCR.space scanner.
type ScannedDocument struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_scanned_documents_user" json:"user_id"`
	FileName   string    `gorm:"type:varchar(255)" json:"file_name"`
	Text       string    `gorm:"type:text" json:"text"`
	Confidence float64   `gorm:"type:float" json:"confidence"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name
func (ScannedDocument) TableName() string {
	return "scanned_documents"
}

// BeforeCreate sets UUID before creating
func (d *ScannedDocument) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
