package employees

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) List(ctx context.Context, userID string) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, COALESCE(email, ''), tariff_level, custom_wage, active, created_at, updated_at
    FROM employees
    WHERE user_id = $1
    ORDER BY name, created_at
  `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		var emp Employee
		if err := rows.Scan(&emp.ID, &emp.Name, &emp.Email, &emp.TariffLevel, &emp.CustomWage, &emp.Active, &emp.CreatedAt, &emp.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, userID, employeeID string) (*Employee, error) {
	var emp Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, COALESCE(email, ''), tariff_level, custom_wage, active, created_at, updated_at
    FROM employees
    WHERE user_id = $1 AND id = $2
  `, userID, employeeID).Scan(&emp.ID, &emp.Name, &emp.Email, &emp.TariffLevel, &emp.CustomWage, &emp.Active, &emp.CreatedAt, &emp.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (s *Store) Count(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, `SELECT COUNT(1) FROM employees WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

func (s *Store) Create(ctx context.Context, userID string, emp Employee) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (user_id, name, email, tariff_level, custom_wage, active)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING id
  `, userID, emp.Name, emp.Email, emp.TariffLevel, emp.CustomWage, emp.Active).Scan(&id)
	return id, err
}

func (s *Store) Update(ctx context.Context, userID, employeeID string, emp Employee) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET name = $1, email = $2, tariff_level = $3, custom_wage = $4, active = $5, updated_at = now()
    WHERE user_id = $6 AND id = $7
  `, emp.Name, emp.Email, emp.TariffLevel, emp.CustomWage, emp.Active, userID, employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, userID, employeeID string) error {
	tag, err := s.DB.Exec(ctx, `
    DELETE FROM employees
    WHERE user_id = $1 AND id = $2
  `, userID, employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) HasShifts(ctx context.Context, userID, employeeID string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM shifts WHERE user_id = $1 AND employee_id = $2
  `, userID, employeeID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
