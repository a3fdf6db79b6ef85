package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/moneymanager/internal/transaction"
)

func TestService_Create(t *testing.T) {
	type args struct {
		params transaction.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *transaction.MockRepository)
		wantErr   error
	}

	date := time.Date(2023, 10, 27, 0, 0, 0, 0, time.UTC)

	tests := []testCase{
		{
			name: "Success",
			args: args{
				params: transaction.CreateParams{
					Date:        date,
					Amount:      decimal.RequireFromString("10.50"),
					Type:        transaction.TypeExpense,
					Category:    "Food",
					Account:     "Cash",
					Description: "Lunch",
				},
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						tx.ID = uuid.New()
						tx.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "RepoError",
			args: args{
				params: transaction.CreateParams{
					Date:   date,
					Amount: decimal.NewFromInt(5),
				},
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
		{
			name: "NegativeAmount",
			args: args{
				params: transaction.CreateParams{
					Date:   date,
					Amount: decimal.NewFromInt(-1),
				},
			},
			wantErr: transaction.ErrNegativeAmount,
		},
		{
			name: "MissingDate",
			args: args{
				params: transaction.CreateParams{Amount: decimal.NewFromInt(1)},
			},
			wantErr: transaction.ErrMissingDate,
		},
		{
			name: "UnknownType",
			args: args{
				params: transaction.CreateParams{Date: date, Amount: decimal.NewFromInt(1), Type: "transfer"},
			},
			wantErr: transaction.ErrInvalidType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo)
			got, err := svc.Create(context.Background(), tt.args.params)

			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, transaction.DefaultCurrency, got.Currency)
			assert.Equal(t, "Food", got.Category)
		})
	}
}

func TestService_Create_DefaultsType(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil)

	svc := transaction.NewService(repo)
	got, err := svc.Create(context.Background(), transaction.CreateParams{
		Date:     time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.NewFromInt(3),
		Currency: "EUR",
	})
	require.NoError(t, err)
	assert.Equal(t, transaction.TypeExpense, got.Type)
	assert.Equal(t, "EUR", got.Currency)
}

func TestService_List(t *testing.T) {
	type args struct {
		filter transaction.ListFilter
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *transaction.MockRepository)
		wantLen   int
		wantErr   bool
	}

	expense := transaction.TypeExpense
	food := "Food"

	tests := []testCase{
		{
			name: "Success",
			args: args{filter: transaction.ListFilter{}},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					ListTransactions(gomock.Any(), transaction.ListFilter{}).
					Return([]*transaction.Transaction{
						{ID: uuid.New()},
						{ID: uuid.New()},
					}, nil)
			},
			wantLen: 2,
		},
		{
			name: "FilterPassedThrough",
			args: args{filter: transaction.ListFilter{Type: &expense, Category: &food}},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					ListTransactions(gomock.Any(), transaction.ListFilter{Type: &expense, Category: &food}).
					Return([]*transaction.Transaction{{ID: uuid.New(), Category: food}}, nil)
			},
			wantLen: 1,
		},
		{
			name: "Error",
			args: args{filter: transaction.ListFilter{}},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					ListTransactions(gomock.Any(), transaction.ListFilter{}).
					Return(nil, errors.New("list error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo)
			got, err := svc.List(context.Background(), tt.args.filter)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestService_Update_RejectsNegativeAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := transaction.NewService(transaction.NewMockRepository(ctrl))
	err := svc.Update(context.Background(), &transaction.Transaction{Amount: decimal.NewFromInt(-3)})
	assert.ErrorIs(t, err, transaction.ErrNegativeAmount)
}

func coffee(date time.Time) transaction.CreateParams {
	return transaction.CreateParams{
		Date:        date,
		Amount:      decimal.RequireFromString("4.50"),
		Type:        transaction.TypeExpense,
		Currency:    "USD",
		Category:    "Food",
		Account:     "Cash",
		Description: "Coffee",
	}
}

func TestService_ImportBatch_NoConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	itx := transaction.NewMockImportTx(ctrl)
	svc := transaction.NewService(repo)

	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	params := []transaction.CreateParams{coffee(date)}

	repo.EXPECT().BeginImport(gomock.Any(), date, date).Return(itx, nil)
	itx.EXPECT().FindDuplicates(gomock.Any(), params).Return(nil, nil)
	itx.EXPECT().CreateTransactions(gomock.Any(), gomock.Any()).Return(nil)
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)

	result, err := svc.ImportBatch(context.Background(), params)
	require.NoError(t, err)
	assert.Len(t, result.Imported, 1)
	assert.Empty(t, result.Conflicts)
	assert.Empty(t, result.New)
}

func TestService_ImportBatch_WithConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	itx := transaction.NewMockImportTx(ctrl)
	svc := transaction.NewService(repo)

	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	lunch := coffee(date)
	lunch.Description = "Lunch"
	lunch.Amount = decimal.NewFromInt(12)
	params := []transaction.CreateParams{coffee(date), lunch}

	// Stored amounts come back from numeric(14,2) with two decimals.
	existing := &transaction.Transaction{
		ID:          uuid.New(),
		Date:        date,
		Amount:      decimal.RequireFromString("4.5"),
		Type:        transaction.TypeExpense,
		Category:    "Food",
		Description: "Coffee",
	}

	repo.EXPECT().BeginImport(gomock.Any(), date, date).Return(itx, nil)
	itx.EXPECT().FindDuplicates(gomock.Any(), params).Return([]*transaction.Transaction{existing}, nil)
	itx.EXPECT().Rollback().Return(nil)

	result, err := svc.ImportBatch(context.Background(), params)
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	assert.Len(t, result.New, 1)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, params[0], result.Conflicts[0].Incoming)
	assert.Equal(t, existing, result.Conflicts[0].Existing)
}

func TestService_ImportBatch_InvalidRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := transaction.NewService(transaction.NewMockRepository(ctrl))

	bad := coffee(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	bad.Amount = decimal.NewFromInt(-4)

	_, err := svc.ImportBatch(context.Background(), []transaction.CreateParams{bad})
	require.ErrorIs(t, err, transaction.ErrNegativeAmount)
	assert.Contains(t, err.Error(), "row 1")
}

func TestService_ImportBatch_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	result, err := svc.ImportBatch(context.Background(), []transaction.CreateParams{})
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	assert.Empty(t, result.Conflicts)
	assert.Empty(t, result.New)
}

func TestService_CreateBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	itx := transaction.NewMockImportTx(ctrl)
	svc := transaction.NewService(repo)

	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	params := []transaction.CreateParams{{Date: date, Amount: decimal.NewFromInt(10), Category: "Food"}}

	repo.EXPECT().BeginImport(gomock.Any(), date, date).Return(itx, nil)
	itx.EXPECT().CreateTransactions(gomock.Any(), gomock.Any()).Return(nil)
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)

	txs, err := svc.CreateBatch(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "10", txs[0].Amount.String())
	assert.Equal(t, transaction.TypeExpense, txs[0].Type)
	assert.Equal(t, transaction.DefaultCurrency, txs[0].Currency)
}

func TestListFilter_Within(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	var f transaction.ListFilter
	f.Within(start, end)

	require.NotNil(t, f.StartDate)
	require.NotNil(t, f.EndDate)
	assert.Equal(t, start, *f.StartDate)
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC), *f.EndDate)

	var open transaction.ListFilter
	open.Within(time.Time{}, end)

	assert.Nil(t, open.StartDate)
	assert.NotNil(t, open.EndDate)
}
