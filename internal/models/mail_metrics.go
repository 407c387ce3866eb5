package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MailMetricsDaily is a nightly snapshot of processing metrics, refreshed by
// the scheduler.
type MailMetricsDaily struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Day                 time.Time `gorm:"type:date;not null;uniqueIndex:idx_mail_metrics_day" json:"day"`
	TotalProcessed      int64     `gorm:"type:bigint;not null;default:0" json:"total_processed"`
	AverageConfidence   float64   `gorm:"type:float" json:"average_confidence"`
	HandwrittenCount    int64     `gorm:"type:bigint;not null;default:0" json:"handwritten_count"`
	PrintedCount        int64     `gorm:"type:bigint;not null;default:0" json:"printed_count"`
	AvgProcessingTimeMs float64   `gorm:"type:float" json:"avg_processing_time_ms"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (MailMetricsDaily) TableName() string {
	return "mail_metrics_daily"
}

// BeforeCreate sets UUID before creating
func (m *MailMetricsDaily) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
