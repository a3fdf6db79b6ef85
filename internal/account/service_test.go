package account_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/moneymanager/internal/account"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name         string
		params       account.CreateParams
		setupMock    func(m *account.MockRepository)
		wantCurrency string
		wantErr      error
	}

	tests := []testCase{
		{
			name:   "DefaultsCurrency",
			params: account.CreateParams{Name: "Cash", Balance: decimal.NewFromInt(100)},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().
					CreateAccount(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, a *account.Account) error {
						a.ID = uuid.New()
						return nil
					})
			},
			wantCurrency: "USD",
		},
		{
			name:   "NormalisesCurrency",
			params: account.CreateParams{Name: "Bank", Currency: " eur "},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().CreateAccount(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantCurrency: "EUR",
		},
		{
			name:    "MissingName",
			params:  account.CreateParams{Name: " "},
			wantErr: account.ErrMissingName,
		},
		{
			name:   "Duplicate",
			params: account.CreateParams{Name: "Cash"},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().CreateAccount(gomock.Any(), gomock.Any()).Return(account.ErrDuplicate)
			},
			wantErr: account.ErrDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := account.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := account.NewService(repo).Create(context.Background(), tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantCurrency, got.Currency)
		})
	}
}
