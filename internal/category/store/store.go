package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/moneymanager/internal/category"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListBudgets(ctx context.Context) ([]category.Budget, error) {
	query := `
		SELECT name, monthly_budget, created_at, updated_at
		FROM category_budgets
		ORDER BY name ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	defer rows.Close()

	var budgets []category.Budget

	for rows.Next() {
		var b category.Budget
		if err := rows.Scan(&b.Name, &b.MonthlyBudget, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning budget: %w", err)
		}

		budgets = append(budgets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budgets: %w", err)
	}

	return budgets, nil
}

func (s *Store) UpsertBudget(ctx context.Context, b *category.Budget) error {
	query := `
		INSERT INTO category_budgets (name, monthly_budget, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (name) DO UPDATE
		SET monthly_budget = EXCLUDED.monthly_budget, updated_at = NOW()
		RETURNING created_at, updated_at
	`

	if err := s.db.QueryRowContext(ctx, query, b.Name, b.MonthlyBudget).Scan(&b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("upserting budget: %w", err)
	}

	return nil
}

func (s *Store) DeleteBudget(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM category_budgets WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return category.ErrNotFound
	}

	return nil
}
