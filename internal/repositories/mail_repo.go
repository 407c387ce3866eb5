package repositories

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/postxindia/postx-backend/internal/models"
)

// MailMetrics aggregates per-user processing statistics.
type MailMetrics struct {
	TotalProcessed        int64             `json:"totalProcessed"`
	AverageConfidence     float64           `json:"averageConfidence"`
	HandwrittenAccuracy   float64           `json:"handwrittenAccuracy"`
	PrintedAccuracy       float64           `json:"printedAccuracy"`
	AverageProcessingTime float64           `json:"averageProcessingTime"`
	RecentItems           []models.MailItem `json:"recentItems"`
}

// MailRepo interface defines mail item operations
type MailRepo interface {
	Create(item *models.MailItem) error
	GetByUserID(userID string, limit int) ([]models.MailItem, error)
	Metrics(userID string) (*MailMetrics, error)
	SnapshotDay(day time.Time) (*models.MailMetricsDaily, error)
	UpsertDailySnapshot(snapshot *models.MailMetricsDaily) error
}

type mailRepo struct {
	db *gorm.DB
}

// NewMailRepo creates a new mail repository
func NewMailRepo(db *gorm.DB) MailRepo {
	return &mailRepo{db: db}
}

// Create inserts a new mail item
func (r *mailRepo) Create(item *models.MailItem) error {
	return r.db.Create(item).Error
}

// GetByUserID retrieves mail items for a user, newest first
func (r *mailRepo) GetByUserID(userID string, limit int) ([]models.MailItem, error) {
	var items []models.MailItem
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

type confidenceRow struct {
	Total         int64
	AvgConfidence float64
	AvgProcessing float64
}

// Metrics computes per-user aggregates over mail_items.
func (r *mailRepo) Metrics(userID string) (*MailMetrics, error) {
	var overall confidenceRow
	err := r.db.Model(&models.MailItem{}).
		Select("COUNT(*) AS total, COALESCE(AVG(confidence_score), 0) AS avg_confidence, COALESCE(AVG(processing_time_ms), 0) AS avg_processing").
		Where("user_id = ?", userID).
		Scan(&overall).Error
	if err != nil {
		return nil, err
	}

	metrics := &MailMetrics{
		TotalProcessed:        overall.Total,
		AverageConfidence:     overall.AvgConfidence,
		AverageProcessingTime: overall.AvgProcessing,
	}
	if overall.Total == 0 {
		metrics.RecentItems = []models.MailItem{}
		return metrics, nil
	}

	var handwritten, printed float64
	if err := r.db.Model(&models.MailItem{}).
		Select("COALESCE(AVG(confidence_score), 0)").
		Where("user_id = ? AND is_handwritten = true", userID).
		Scan(&handwritten).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.MailItem{}).
		Select("COALESCE(AVG(confidence_score), 0)").
		Where("user_id = ? AND is_handwritten = false", userID).
		Scan(&printed).Error; err != nil {
		return nil, err
	}
	metrics.HandwrittenAccuracy = handwritten
	metrics.PrintedAccuracy = printed

	recent, err := r.GetByUserID(userID, 10)
	if err != nil {
		return nil, err
	}
	metrics.RecentItems = recent

	return metrics, nil
}

// SnapshotDay computes the metrics snapshot for one calendar day across all
// users.
func (r *mailRepo) SnapshotDay(day time.Time) (*models.MailMetricsDaily, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var overall confidenceRow
	err := r.db.Model(&models.MailItem{}).
		Select("COUNT(*) AS total, COALESCE(AVG(confidence_score), 0) AS avg_confidence, COALESCE(AVG(processing_time_ms), 0) AS avg_processing").
		Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Scan(&overall).Error
	if err != nil {
		return nil, err
	}

	var handwrittenCount int64
	if err := r.db.Model(&models.MailItem{}).
		Where("created_at >= ? AND created_at < ? AND is_handwritten = true", dayStart, dayEnd).
		Count(&handwrittenCount).Error; err != nil {
		return nil, err
	}

	return &models.MailMetricsDaily{
		Day:                 dayStart,
		TotalProcessed:      overall.Total,
		AverageConfidence:   overall.AvgConfidence,
		HandwrittenCount:    handwrittenCount,
		PrintedCount:        overall.Total - handwrittenCount,
		AvgProcessingTimeMs: overall.AvgProcessing,
	}, nil
}

// UpsertDailySnapshot inserts or refreshes the snapshot for its day
func (r *mailRepo) UpsertDailySnapshot(snapshot *models.MailMetricsDaily) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "day"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_processed", "average_confidence", "handwritten_count",
			"printed_count", "avg_processing_time_ms", "updated_at",
		}),
	}).Create(snapshot).Error
}
