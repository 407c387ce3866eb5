package jobs

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/postxindia/postx-backend/internal/repositories"
)

// snapshotSchedule runs shortly after midnight so the previous day is complete.
const snapshotSchedule = "10 0 * * *"

// Scheduler runs recurring background jobs
type Scheduler struct {
	cron     *cron.Cron
	mailRepo repositories.MailRepo
}

// NewScheduler creates a new job scheduler
func NewScheduler(mailRepo repositories.MailRepo) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		mailRepo: mailRepo,
	}
}

// Start registers the recurring jobs and starts the scheduler
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(snapshotSchedule, s.snapshotYesterday); err != nil {
		return fmt.Errorf("failed to schedule metrics snapshot: %w", err)
	}

	s.cron.Start()
	log.Info().Str("schedule", snapshotSchedule).Msg("⏰ Job scheduler started")
	return nil
}

// Stop stops the scheduler, waiting for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info().Msg("⏰ Job scheduler stopped")
}

// snapshotYesterday aggregates the previous day's mail metrics and upserts
// the row for that day.
func (s *Scheduler) snapshotYesterday() {
	day := time.Now().AddDate(0, 0, -1)

	snapshot, err := s.mailRepo.SnapshotDay(day)
	if err != nil {
		log.Error().Err(err).Time("day", day).Msg("metrics snapshot query failed")
		return
	}

	if err := s.mailRepo.UpsertDailySnapshot(snapshot); err != nil {
		log.Error().Err(err).Time("day", day).Msg("metrics snapshot upsert failed")
		return
	}

	log.Info().
		Time("day", snapshot.Day).
		Int64("totalProcessed", snapshot.TotalProcessed).
		Msg("✅ Daily mail metrics snapshot stored")
}
