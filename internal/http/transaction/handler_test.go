package transaction_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	txHandler "github.com/MrJamesThe3rd/moneymanager/internal/http/transaction"
	"github.com/MrJamesThe3rd/moneymanager/internal/transaction"
)

func newRouter(t *testing.T) (*transaction.MockRepository, http.Handler) {
	t.Helper()

	repo := transaction.NewMockRepository(gomock.NewController(t))

	r := chi.NewRouter()
	r.Route("/transactions", txHandler.NewHandler(transaction.NewService(repo), time.UTC).Routes)

	return repo, r
}

func TestHandler_Create(t *testing.T) {
	type testCase struct {
		name   string
		body   string
		setup  func(repo *transaction.MockRepository)
		status int
	}

	tests := []testCase{
		{
			name: "Created",
			body: `{"date":"2024-01-02T10:00:00Z","amount":"12.50","category":"Food","account_name":"Cash"}`,
			setup: func(repo *transaction.MockRepository) {
				repo.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, tx *transaction.Transaction) error {
						assert.Equal(t, "12.5", tx.Amount.String())
						assert.Equal(t, transaction.TypeExpense, tx.Type)
						assert.Equal(t, "Cash", tx.Account)
						tx.ID = uuid.New()

						return nil
					})
			},
			status: http.StatusCreated,
		},
		{
			name:   "NegativeAmount",
			body:   `{"date":"2024-01-02T10:00:00Z","amount":-3,"category":"Food"}`,
			setup:  func(repo *transaction.MockRepository) {},
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "MissingDate",
			body:   `{"amount":3,"category":"Food"}`,
			setup:  func(repo *transaction.MockRepository) {},
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "BadJSON",
			body:   `{`,
			setup:  func(repo *transaction.MockRepository) {},
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, router := newRouter(t)
			tt.setup(repo)

			req := httptest.NewRequest(http.MethodPost, "/transactions/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_Get_NotFound(t *testing.T) {
	repo, router := newRouter(t)

	id := uuid.New()
	repo.EXPECT().GetTransaction(gomock.Any(), id).Return(nil, transaction.ErrNotFound)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/transactions/"+id.String(), nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_List_Filters(t *testing.T) {
	repo, router := newRouter(t)

	repo.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, f transaction.ListFilter) ([]*transaction.Transaction, error) {
			require.NotNil(t, f.Type)
			assert.Equal(t, transaction.TypeExpense, *f.Type)
			require.NotNil(t, f.Category)
			assert.Equal(t, "Food", *f.Category)
			require.NotNil(t, f.StartDate)
			assert.True(t, f.StartDate.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
			require.NotNil(t, f.EndDate)
			assert.True(t, f.EndDate.Before(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
			assert.True(t, f.EndDate.After(time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)))

			return nil, nil
		})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/transactions/?type=expense&category=Food&from_date=2024-01-01&to_date=2024-01-31", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestHandler_Update_RejectsNegative(t *testing.T) {
	repo, router := newRouter(t)

	id := uuid.New()
	repo.EXPECT().GetTransaction(gomock.Any(), id).Return(&transaction.Transaction{ID: id, Date: time.Now()}, nil)

	req := httptest.NewRequest(http.MethodPatch, "/transactions/"+id.String(), strings.NewReader(`{"amount":"-1"}`))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
