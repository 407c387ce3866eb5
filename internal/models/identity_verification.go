package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdentityVerification is a KYC document submission awaiting review.
type IdentityVerification struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID             uuid.UUID  `gorm:"type:uuid;not null;index:idx_identity_verifications_user" json:"user_id"`
	DocumentType       string     `gorm:"type:varchar(50);not null" json:"document_type"`
	DocumentNumber     string     `gorm:"type:varchar(100);not null" json:"document_number"`
	VerificationStatus string     `gorm:"type:varchar(20);not null;default:'pending'" json:"verification_status"`
	VerifiedAt         *time.Time `json:"verified_at,omitempty"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (IdentityVerification) TableName() string {
	return "identity_verifications"
}

// BeforeCreate sets UUID before creating
func (v *IdentityVerification) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
