package shifts

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

const shiftColumns = `id, COALESCE(employee_id::text, ''), shift_date, start_time, end_time, day_type, created_at, updated_at`

func scanShift(row pgx.Row) (Shift, error) {
	var shift Shift
	err := row.Scan(&shift.ID, &shift.EmployeeID, &shift.Date, &shift.StartTime, &shift.EndTime, &shift.Day, &shift.CreatedAt, &shift.UpdatedAt)
	return shift, err
}

func (s *Store) List(ctx context.Context, userID string) ([]Shift, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+shiftColumns+`
    FROM shifts
    WHERE user_id = $1
    ORDER BY shift_date, start_time
  `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (s *Store) ListMonth(ctx context.Context, userID string, year, month int) ([]Shift, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	rows, err := s.DB.Query(ctx, `
    SELECT `+shiftColumns+`
    FROM shifts
    WHERE user_id = $1 AND shift_date >= $2 AND shift_date < $3
    ORDER BY shift_date, start_time
  `, userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func collect(rows pgx.Rows) ([]Shift, error) {
	var out []Shift
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, shift)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, userID, shiftID string) (*Shift, error) {
	shift, err := scanShift(s.DB.QueryRow(ctx, `
    SELECT `+shiftColumns+`
    FROM shifts
    WHERE user_id = $1 AND id = $2
  `, userID, shiftID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (s *Store) Count(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, `SELECT COUNT(1) FROM shifts WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

func (s *Store) Create(ctx context.Context, userID string, shift Shift) (string, error) {
	var employeeID any
	if shift.EmployeeID != "" {
		employeeID = shift.EmployeeID
	}
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO shifts (user_id, employee_id, shift_date, start_time, end_time, day_type)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING id
  `, userID, employeeID, shift.Date, shift.StartTime, shift.EndTime, shift.Day).Scan(&id)
	return id, err
}

func (s *Store) Update(ctx context.Context, userID, shiftID string, shift Shift) error {
	var employeeID any
	if shift.EmployeeID != "" {
		employeeID = shift.EmployeeID
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE shifts
    SET employee_id = $1, shift_date = $2, start_time = $3, end_time = $4, day_type = $5, updated_at = now()
    WHERE user_id = $6 AND id = $7
  `, employeeID, shift.Date, shift.StartTime, shift.EndTime, shift.Day, userID, shiftID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, userID, shiftID string) error {
	tag, err := s.DB.Exec(ctx, `
    DELETE FROM shifts
    WHERE user_id = $1 AND id = $2
  `, userID, shiftID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOldestBeyond trims a user's shifts down to keep rows, removing the
// oldest first. Used by the downgrade cleanup job.
func (s *Store) DeleteOldestBeyond(ctx context.Context, userID string, keep int) (int, error) {
	tag, err := s.DB.Exec(ctx, `
    DELETE FROM shifts
    WHERE user_id = $1 AND id NOT IN (
      SELECT id FROM shifts
      WHERE user_id = $1
      ORDER BY shift_date DESC, start_time DESC
      LIMIT $2
    )
  `, userID, keep)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
