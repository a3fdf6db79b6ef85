package matching

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MrJamesThe3rd/moneymanager/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching

var ErrMissingField = errors.New("pattern and category are required")

type Repository interface {
	FindCategory(ctx context.Context, description string) (string, error)
	CreateMapping(ctx context.Context, pattern, category string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the category learned for the longest pattern contained in
// description, or "" when nothing matches.
func (s *Service) Suggest(ctx context.Context, description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", nil
	}

	return s.repo.FindCategory(ctx, description)
}

// Learn remembers that descriptions containing pattern belong to category.
func (s *Service) Learn(ctx context.Context, pattern, category string) error {
	pattern, category = strings.TrimSpace(pattern), strings.TrimSpace(category)
	if pattern == "" || category == "" {
		return ErrMissingField
	}

	return s.repo.CreateMapping(ctx, pattern, category)
}

// Categorize fills in the category of rows that arrived without one. Rows that
// already carry a category are left alone. Lookup failures are logged and the
// row keeps its empty category.
func (s *Service) Categorize(ctx context.Context, params []transaction.CreateParams) []transaction.CreateParams {
	out := make([]transaction.CreateParams, len(params))
	copy(out, params)

	for i, p := range out {
		if p.Category != "" {
			continue
		}

		suggested, err := s.Suggest(ctx, p.Description)
		if err != nil {
			slog.Warn("category suggestion failed", "description", p.Description, "error", fmt.Errorf("suggest: %w", err))
			continue
		}

		out[i].Category = suggested
	}

	return out
}
