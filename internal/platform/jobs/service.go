package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"skiftlonn/internal/domain/shifts"
	"skiftlonn/internal/domain/subscription"
	"skiftlonn/internal/platform/config"
)

const JobDowngradeCleanup = "downgrade_cleanup"

// Service runs background maintenance through a single worker goroutine.
// Every run leaves a job_runs row for inspection.
type Service struct {
	DB    *pgxpool.Pool
	Cfg   config.Config
	queue chan job
}

type job struct {
	Type   string
	UserID string
	Run    func(context.Context) (any, error)
}

func New(db *pgxpool.Pool, cfg config.Config) *Service {
	return &Service{
		DB:    db,
		Cfg:   cfg,
		queue: make(chan job, 64),
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.Cfg.CleanupInterval > 0 {
		go s.scheduleCleanup(ctx, s.Cfg.CleanupInterval)
	}
}

func (s *Service) Enqueue(jobType, userID string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, UserID: userID, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType, "userId", userID)
	}
}

// RunNow executes a job inline, bypassing the queue. Used by tests and the
// boot-time cleanup pass.
func (s *Service) RunNow(ctx context.Context, jobType, userID string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, UserID: userID, Run: run})
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "userId", j.UserID, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	runID := ""
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO job_runs (user_id, job_type, status)
    VALUES ($1,$2,$3)
    RETURNING id
  `, nullIfEmpty(j.UserID), j.Type, "running").Scan(&runID); err != nil {
		slog.Warn("job run insert failed", "err", err)
	}

	details, err := j.Run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		slog.Warn("job details marshal failed", "err", marshalErr)
		detailsJSON = []byte("{}")
	}
	if runID != "" {
		if _, updErr := s.DB.Exec(ctx, `
      UPDATE job_runs
      SET status = $1, details_json = $2, completed_at = now()
      WHERE id = $3
    `, status, detailsJSON, runID); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	return details, err
}

func (s *Service) scheduleCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Enqueue(JobDowngradeCleanup, "", s.DowngradeCleanup)
		}
	}
}

// DowngradeCleanup lapses premium subscriptions whose paid period has
// ended and trims each affected user back down to the free-tier shift
// cap, dropping the oldest shifts first.
func (s *Service) DowngradeCleanup(ctx context.Context) (any, error) {
	subs := subscription.NewStore(s.DB)
	shiftStore := shifts.NewStore(s.DB)

	userIDs, err := subs.MarkLapsed(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	trimmed := 0
	for _, userID := range userIDs {
		removed, err := shiftStore.DeleteOldestBeyond(ctx, userID, s.Cfg.FreeShiftLimit)
		if err != nil {
			slog.Warn("downgrade trim failed", "userId", userID, "err", err)
			continue
		}
		trimmed += removed
	}

	return map[string]int{
		"lapsedUsers":   len(userIDs),
		"shiftsRemoved": trimmed,
	}, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
