package db

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"skiftlonn/internal/domain/auth"
	"skiftlonn/internal/domain/settings"
	"skiftlonn/internal/domain/shifts"
	"skiftlonn/internal/domain/subscription"
	"skiftlonn/internal/domain/wage"
	"skiftlonn/internal/platform/config"
)

// Seed provisions the initial admin account and, optionally, demo data.
// Every step is idempotent so the seed can run on each boot.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if strings.TrimSpace(cfg.SeedAdminEmail) == "" {
		return nil
	}

	userID, err := ensureUser(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	if err := ensureDefaults(ctx, pool, userID); err != nil {
		return err
	}

	if cfg.SeedDemoData {
		if err := seedDemoData(ctx, pool, cfg, userID); err != nil {
			slog.Warn("demo data seed failed", "err", err)
		}
	}
	return nil
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, email, password string) (string, error) {
	store := auth.NewStore(pool)
	existing, err := store.FindByEmail(ctx, strings.ToLower(email))
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, auth.ErrUserNotFound) {
		return "", err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}
	return store.Create(ctx, strings.ToLower(email), hash, "Admin")
}

func ensureDefaults(ctx context.Context, pool *pgxpool.Pool, userID string) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(1) FROM calc_settings WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		if err := settings.NewStore(pool).Save(ctx, userID, settings.Defaults()); err != nil {
			return err
		}
	}

	_, err := pool.Exec(ctx, `
    INSERT INTO subscriptions (user_id, tier, status)
    VALUES ($1, $2, $3)
    ON CONFLICT (user_id) DO NOTHING
  `, userID, subscription.TierFree, subscription.StatusActive)
	return err
}

func seedDemoData(ctx context.Context, pool *pgxpool.Pool, cfg config.Config, userID string) error {
	shiftStore := shifts.NewStore(pool)
	count, err := shiftStore.Count(ctx, userID)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	demo := []struct {
		day        int
		start, end string
	}{
		{3, "08:00", "15:30"},
		{5, "15:00", "23:00"},
		{7, "10:00", "18:00"},
		{12, "16:00", "22:00"},
		{14, "22:00", "06:00"},
		{20, "09:00", "17:00"},
	}
	month := int(time.Now().Month())
	for _, entry := range demo {
		shift := shifts.Shift{
			Date:      time.Date(cfg.ReferenceYear, time.Month(month), entry.day, 0, 0, 0, 0, time.UTC),
			StartTime: entry.start,
			EndTime:   entry.end,
		}
		shift.Day = wage.DayTypeOf(shift.Date)
		if _, err := shiftStore.Create(ctx, userID, shift); err != nil {
			return err
		}
	}
	return nil
}
