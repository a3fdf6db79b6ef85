package category

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	ListBudgets(ctx context.Context) ([]Budget, error)
	UpsertBudget(ctx context.Context, b *Budget) error
	DeleteBudget(ctx context.Context, name string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every budget ordered by name.
func (s *Service) List(ctx context.Context) ([]Budget, error) {
	return s.repo.ListBudgets(ctx)
}

// Set creates the budget or replaces the monthly amount of an existing one.
func (s *Service) Set(ctx context.Context, name string, monthly decimal.Decimal) (*Budget, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingName
	}

	if monthly.IsNegative() {
		return nil, ErrNegativeBudget
	}

	b := &Budget{Name: name, MonthlyBudget: monthly}
	if err := s.repo.UpsertBudget(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) Delete(ctx context.Context, name string) error {
	return s.repo.DeleteBudget(ctx, name)
}
