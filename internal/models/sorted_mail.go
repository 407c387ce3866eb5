package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SortedMail is a smart-route run: the processed envelope plus the ranked
// post office candidates and the driving route to the nearest one.
type SortedMail struct {
	ID                    uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID                uuid.UUID      `gorm:"type:uuid;not null;index:idx_sorted_mail_user" json:"user_id"`
	RecipientName         string         `gorm:"type:varchar(255)" json:"recipient_name"`
	FullAddress           string         `gorm:"type:text" json:"full_address"`
	Street                string         `gorm:"type:varchar(255)" json:"street"`
	City                  string         `gorm:"type:varchar(100)" json:"city"`
	State                 string         `gorm:"type:varchar(100)" json:"state"`
	Pincode               string         `gorm:"type:char(6);not null" json:"pincode"`
	Confidence            float64        `gorm:"type:float" json:"confidence"`
	IsHandwritten         bool           `gorm:"not null;default:false" json:"is_handwritten"`
	SortingCenter         string         `gorm:"type:varchar(255)" json:"sorting_center"`
	RouteCode             string         `gorm:"type:varchar(50)" json:"route_code"`
	Priority              string         `gorm:"type:varchar(20)" json:"priority"`
	Zone                  string         `gorm:"type:varchar(20)" json:"zone"`
	EstimatedDeliveryDays int            `gorm:"type:int" json:"estimated_delivery_days"`
	PostOffices           datatypes.JSON `gorm:"type:jsonb" json:"post_offices,omitempty"` // ranked candidates
	NearestOffice         string         `gorm:"type:varchar(255)" json:"nearest_office"`
	Routing               datatypes.JSON `gorm:"type:jsonb" json:"routing,omitempty"` // driving route, null when unavailable
	UserLat               float64        `gorm:"type:float" json:"user_lat"`
	UserLon               float64        `gorm:"type:float" json:"user_lon"`
	OCRSource             string         `gorm:"type:varchar(50)" json:"ocr_source"`
	OCRConfidence         *float64       `gorm:"type:float" json:"ocr_confidence,omitempty"`
	ProcessingTimeMs      int64          `gorm:"type:bigint" json:"processing_time_ms"`
	CreatedAt             time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (SortedMail) TableName() string {
	return "sorted_mail"
}

// BeforeCreate sets UUID before creating
func (s *SortedMail) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
