package category_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/moneymanager/internal/category"
)

func TestService_Set(t *testing.T) {
	type args struct {
		name    string
		monthly decimal.Decimal
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *category.MockRepository)
		wantName  string
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{name: "  Food ", monthly: decimal.NewFromInt(300)},
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().
					UpsertBudget(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, b *category.Budget) error {
						assert.Equal(t, "Food", b.Name)
						return nil
					})
			},
			wantName: "Food",
		},
		{
			name: "ZeroBudgetAllowed",
			args: args{name: "Gifts", monthly: decimal.Zero},
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().UpsertBudget(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantName: "Gifts",
		},
		{
			name:    "NegativeBudget",
			args:    args{name: "Food", monthly: decimal.NewFromInt(-1)},
			wantErr: category.ErrNegativeBudget,
		},
		{
			name:    "MissingName",
			args:    args{name: "   ", monthly: decimal.NewFromInt(1)},
			wantErr: category.ErrMissingName,
		},
		{
			name: "RepoError",
			args: args{name: "Food", monthly: decimal.NewFromInt(1)},
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().UpsertBudget(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := category.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := category.NewService(repo)
			got, err := svc.Set(context.Background(), tt.args.name, tt.args.monthly)

			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, got.Name)
			assert.True(t, tt.args.monthly.Equal(got.MonthlyBudget))
		})
	}
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := category.NewMockRepository(ctrl)
	repo.EXPECT().ListBudgets(gomock.Any()).Return([]category.Budget{
		{Name: "Food", MonthlyBudget: decimal.NewFromInt(300)},
		{Name: "Rent", MonthlyBudget: decimal.NewFromInt(1200)},
	}, nil)

	got, err := category.NewService(repo).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Food", "Rent"}, category.Names(got))
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := category.NewMockRepository(ctrl)
	repo.EXPECT().DeleteBudget(gomock.Any(), "Food").Return(category.ErrNotFound)

	err := category.NewService(repo).Delete(context.Background(), "Food")
	assert.ErrorIs(t, err, category.ErrNotFound)
}
