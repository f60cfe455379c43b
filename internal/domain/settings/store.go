package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"skiftlonn/internal/domain/wage"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// Get returns the user's settings, falling back to defaults when nothing
// has been saved yet.
func (s *Store) Get(ctx context.Context, userID string) (Settings, error) {
	var out Settings
	var bonusesJSON []byte
	err := s.DB.QueryRow(ctx, `
    SELECT use_preset, tariff_level, custom_wage, pause_deduction, custom_bonuses
    FROM calc_settings
    WHERE user_id = $1
  `, userID).Scan(&out.UsePreset, &out.TariffLevel, &out.CustomWage, &out.PauseDeduction, &bonusesJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return Defaults(), nil
	}
	if err != nil {
		return Settings{}, err
	}

	out.CustomBonuses = wage.BonusTable{}
	if len(bonusesJSON) > 0 {
		if err := json.Unmarshal(bonusesJSON, &out.CustomBonuses); err != nil {
			return Settings{}, fmt.Errorf("decode custom bonuses: %w", err)
		}
	}
	return out, nil
}

func (s *Store) Save(ctx context.Context, userID string, cfg Settings) error {
	bonusesJSON, err := json.Marshal(cfg.CustomBonuses)
	if err != nil {
		return fmt.Errorf("encode custom bonuses: %w", err)
	}
	_, err = s.DB.Exec(ctx, `
    INSERT INTO calc_settings (user_id, use_preset, tariff_level, custom_wage, pause_deduction, custom_bonuses)
    VALUES ($1, $2, $3, $4, $5, $6)
    ON CONFLICT (user_id) DO UPDATE
    SET use_preset = EXCLUDED.use_preset,
        tariff_level = EXCLUDED.tariff_level,
        custom_wage = EXCLUDED.custom_wage,
        pause_deduction = EXCLUDED.pause_deduction,
        custom_bonuses = EXCLUDED.custom_bonuses,
        updated_at = now()
  `, userID, cfg.UsePreset, cfg.TariffLevel, cfg.CustomWage, cfg.PauseDeduction, bonusesJSON)
	return err
}
