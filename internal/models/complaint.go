package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Complaint is a customer complaint with its AI triage results.
type Complaint struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index:idx_complaints_user" json:"user_id"`
	Text         string    `gorm:"type:text;not null" json:"text"`
	Sentiment    float64   `gorm:"type:float" json:"sentiment"`
	Category     string    `gorm:"type:varchar(50)" json:"category"`
	Priority     string    `gorm:"type:varchar(20)" json:"priority"`
	AutoResponse string    `gorm:"type:text" json:"auto_response"`
	Status       string    `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (Complaint) TableName() string {
	return "complaints"
}

// BeforeCreate sets UUID before creating
func (c *Complaint) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
