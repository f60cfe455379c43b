package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// Get returns the user's subscription, defaulting to an active free tier
// when no row exists.
func (s *Store) Get(ctx context.Context, userID string) (Subscription, error) {
	var sub Subscription
	err := s.DB.QueryRow(ctx, `
    SELECT user_id, tier, status, current_period_end, updated_at
    FROM subscriptions
    WHERE user_id = $1
  `, userID).Scan(&sub.UserID, &sub.Tier, &sub.Status, &sub.CurrentPeriodEnd, &sub.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Subscription{UserID: userID, Tier: TierFree, Status: StatusActive}, nil
	}
	if err != nil {
		return Subscription{}, err
	}
	return sub, nil
}

func (s *Store) Activate(ctx context.Context, userID string, periodEnd time.Time) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO subscriptions (user_id, tier, status, current_period_end)
    VALUES ($1, $2, $3, $4)
    ON CONFLICT (user_id) DO UPDATE
    SET tier = EXCLUDED.tier,
        status = EXCLUDED.status,
        current_period_end = EXCLUDED.current_period_end,
        updated_at = now()
  `, userID, TierPremium, StatusActive, periodEnd)
	return err
}

func (s *Store) Cancel(ctx context.Context, userID string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE subscriptions
    SET status = $1, updated_at = now()
    WHERE user_id = $2 AND tier = $3
  `, StatusCanceled, userID, TierPremium)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoPremium
	}
	return nil
}

// MarkLapsed downgrades premium rows whose paid period ended before the
// cutoff and returns the affected user IDs for cleanup.
func (s *Store) MarkLapsed(ctx context.Context, cutoff time.Time) ([]string, error) {
	rows, err := s.DB.Query(ctx, `
    UPDATE subscriptions
    SET tier = $1, status = $2, updated_at = now()
    WHERE tier = $3 AND current_period_end IS NOT NULL AND current_period_end < $4
    RETURNING user_id
  `, TierFree, StatusLapsed, TierPremium, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, id)
	}
	return userIDs, rows.Err()
}
