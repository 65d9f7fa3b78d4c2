package balance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GlebRadaev/commerce/internal/apperr"
	"github.com/GlebRadaev/commerce/internal/domain"
	"github.com/GlebRadaev/commerce/internal/dto"
	"github.com/GlebRadaev/commerce/pkg/auth"
	"github.com/GlebRadaev/commerce/pkg/paging"
	"github.com/GlebRadaev/commerce/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

var now = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func NewMock(t *testing.T) (*BalanceHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	return handler, service
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestCharge(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
		expectedKind string
		expectedBody *dto.ChargeResponseDTO
	}{
		{
			name: "Successful charge",
			body: `{"userId":1,"amount":10000}`,
			prepareMock: func() {
				service.EXPECT().Charge(context.Background(), 1, int64(10000)).Return(&domain.ChargeResult{
					ChargedAmount: 10000,
					NewBalance:    60000,
					Transaction:   domain.BalanceTransaction{CreatedAt: now},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: &dto.ChargeResponseDTO{UserID: 1, ChargedAmount: 10000, CurrentBalance: 60000, ChargedAt: now},
		},
		{
			name:         "Invalid request body",
			body:         `{invalid json`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Missing user id",
			body:         `{"amount":10000}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
			expectedKind: string(apperr.KindValidation),
		},
		{
			name: "Daily limit exceeded",
			body: `{"userId":1,"amount":900000}`,
			prepareMock: func() {
				service.EXPECT().Charge(context.Background(), 1, int64(900000)).
					Return(nil, apperr.New(apperr.KindDailyLimitExceeded, "daily charge limit exceeded"))
			},
			expectedCode: http.StatusBadRequest,
			expectedKind: string(apperr.KindDailyLimitExceeded),
		},
		{
			name: "Unknown user",
			body: `{"userId":99,"amount":100}`,
			prepareMock: func() {
				service.EXPECT().Charge(context.Background(), 99, int64(100)).
					Return(nil, apperr.New(apperr.KindNotFound, "user not found"))
			},
			expectedCode: http.StatusNotFound,
			expectedKind: string(apperr.KindNotFound),
		},
		{
			name: "Internal error",
			body: `{"userId":1,"amount":100}`,
			prepareMock: func() {
				service.EXPECT().Charge(context.Background(), 1, int64(100)).Return(nil, errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedKind: string(apperr.KindInternal),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest(http.MethodPost, "/api/v1/balances/charge", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.Charge(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedBody != nil {
				var resp dto.ChargeResponseDTO
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedBody.CurrentBalance, resp.CurrentBalance)
				assert.Equal(t, tt.expectedBody.ChargedAmount, resp.ChargedAmount)
				assert.True(t, tt.expectedBody.ChargedAt.Equal(resp.ChargedAt))
			}
			if tt.expectedKind != "" {
				var resp utils.Response
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedKind, resp.Kind)
			}
		})
	}
}

func TestGetBalance(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		userID       string
		prepareMock  func()
		expectedCode int
	}{
		{
			name:   "Existing user",
			userID: "1",
			prepareMock: func() {
				service.EXPECT().GetBalance(gomock.Any(), 1).Return(&domain.Balance{UserID: 1, CurrentBalance: 50000, UpdatedAt: now}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Invalid user id",
			userID:       "abc",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "Unknown user",
			userID: "99",
			prepareMock: func() {
				service.EXPECT().GetBalance(gomock.Any(), 99).Return(nil, apperr.New(apperr.KindNotFound, "user not found"))
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest(http.MethodGet, "/api/v1/balances/"+tt.userID, nil)
			req = withURLParam(req, "userId", tt.userID)
			rr := httptest.NewRecorder()

			handler.GetBalance(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusOK {
				var resp dto.BalanceResponseDTO
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, int64(50000), resp.CurrentBalance)
				assert.Equal(t, 1, resp.UserID)
			}
		})
	}
}

func TestGetOwnBalance(t *testing.T) {
	handler, service := NewMock(t)

	t.Run("Authorized", func(t *testing.T) {
		service.EXPECT().GetBalance(gomock.Any(), 2).Return(&domain.Balance{UserID: 2, CurrentBalance: 100000}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/user/balance", nil)
		req = req.WithContext(context.WithValue(req.Context(), auth.UserIDKey, 2))
		rr := httptest.NewRecorder()

		handler.GetOwnBalance(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("No user in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/user/balance", nil)
		rr := httptest.NewRecorder()

		handler.GetOwnBalance(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestGetTransactions(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		query        string
		prepareMock  func()
		expectedCode int
	}{
		{
			name:  "Default paging",
			query: "",
			prepareMock: func() {
				p := paging.Params{Page: 1, Size: 20}
				service.EXPECT().ListTransactions(gomock.Any(), 1, p).Return(paging.NewPage([]domain.BalanceTransaction{
					{ID: 2, Type: domain.TransactionUse, Amount: 500},
					{ID: 1, Type: domain.TransactionCharge, Amount: 1000},
				}, 2, p), nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Size out of range",
			query:        "?size=500",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:  "Storage failure",
			query: "?page=2&size=5",
			prepareMock: func() {
				service.EXPECT().ListTransactions(gomock.Any(), 1, paging.Params{Page: 2, Size: 5}).
					Return(paging.Page[domain.BalanceTransaction]{}, apperr.Internal(errors.New("boom"), "failed to list balance transactions"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest(http.MethodGet, "/api/v1/balances/1/transactions"+tt.query, nil)
			req = withURLParam(req, "userId", "1")
			rr := httptest.NewRecorder()

			handler.GetTransactions(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusOK {
				var resp dto.TransactionListResponseDTO
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Len(t, resp.Items, 2)
				assert.Equal(t, "USE", resp.Items[0].Type)
				assert.Equal(t, 2, resp.Pagination.Total)
				assert.False(t, resp.Pagination.HasNext)
			}
		})
	}
}
