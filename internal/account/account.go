// Package account tracks the user's money accounts (cash, bank, card).
package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrMissingName = errors.New("account name is required")
	ErrDuplicate   = errors.New("account already exists")
)

type Account struct {
	ID        uuid.UUID
	Name      string
	Balance   decimal.Decimal
	Currency  string
	CreatedAt time.Time
}
