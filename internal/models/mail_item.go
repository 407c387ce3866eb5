package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MailItem is one processed envelope: the parsed address plus the sorting
// decision and OCR metadata.
type MailItem struct {
	ID                    uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID                uuid.UUID `gorm:"type:uuid;not null;index:idx_mail_items_user" json:"user_id"`
	RecipientName         string    `gorm:"type:varchar(255)" json:"recipient_name"`
	FullAddress           string    `gorm:"type:text" json:"full_address"`
	Street                string    `gorm:"type:varchar(255)" json:"street"`
	City                  string    `gorm:"type:varchar(100)" json:"city"`
	State                 string    `gorm:"type:varchar(100)" json:"state"`
	Pincode               string    `gorm:"type:char(6);not null;index:idx_mail_items_pincode" json:"pincode"`
	Landmark              string    `gorm:"type:varchar(255)" json:"landmark,omitempty"`
	IsHandwritten         bool      `gorm:"not null;default:false" json:"is_handwritten"`
	ConfidenceScore       float64   `gorm:"type:float" json:"confidence_score"`
	SortingCenter         string    `gorm:"type:varchar(255)" json:"sorting_center"`
	RouteCode             string    `gorm:"type:varchar(50)" json:"route_code"`
	Priority              string    `gorm:"type:varchar(20)" json:"priority"`
	Zone                  string    `gorm:"type:varchar(20)" json:"zone"`
	EstimatedDeliveryDays int       `gorm:"type:int" json:"estimated_delivery_days"`
	OCRText               string    `gorm:"type:text" json:"ocr_text,omitempty"`
	OCRSource             string    `gorm:"type:varchar(50)" json:"ocr_source"`
	OCRConfidence         *float64  `gorm:"type:float" json:"ocr_confidence,omitempty"`
	ProcessingTimeMs      int64     `gorm:"type:bigint" json:"processing_time_ms"`
	Status                string    `gorm:"type:varchar(20);not null;default:'sorted'" json:"status"`
	CreatedAt             time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (MailItem) TableName() string {
	return "mail_items"
}

// BeforeCreate sets UUID before creating
func (m *MailItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
