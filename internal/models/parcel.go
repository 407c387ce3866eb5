package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Parcel is a registered outbound parcel with its tracking QR code.
type Parcel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index:idx_parcels_user" json:"user_id"`
	TrackingNumber string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_parcels_tracking" json:"tracking_number"`
	SenderName     string    `gorm:"type:varchar(255)" json:"sender_name"`
	RecipientName  string    `gorm:"type:varchar(255)" json:"recipient_name"`
	RecipientAddr  string    `gorm:"type:text" json:"recipient_address"`
	Pincode        string    `gorm:"type:char(6)" json:"pincode"`
	WeightGrams    int       `gorm:"type:int" json:"weight_grams"`
	ServiceType    string    `gorm:"type:varchar(20);not null;default:'standard'" json:"service_type"`
	Status         string    `gorm:"type:varchar(20);not null;default:'registered'" json:"status"`
	QRCode         string    `gorm:"type:text" json:"qr_code,omitempty"` // base64 PNG encoding the tracking number
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (Parcel) TableName() string {
	return "parcels"
}

// BeforeCreate sets UUID before creating
func (p *Parcel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
