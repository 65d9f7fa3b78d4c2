package orderrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/GlebRadaev/commerce/internal/domain"
	"github.com/GlebRadaev/commerce/internal/pg"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	now       = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	orderCols = []string{"id", "user_id", "coupon_id", "status", "total_amount", "discount_amount", "final_amount", "version", "created_at", "updated_at"}
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	txManager := pg.NewMockTXManager(ctrl)
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)
	return New(mockDB, txManager), mockDB, txManager
}

func passThrough(txManager *pg.MockTXManager) {
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func TestRepository_Create(t *testing.T) {
	repo, mock, txManager := NewMock(t)
	couponID := 3001

	order := &domain.Order{
		UserID:         1,
		CouponID:       &couponID,
		Status:         domain.OrderPending,
		TotalAmount:    70000,
		DiscountAmount: 7000,
		FinalAmount:    63000,
		CreatedAt:      now,
	}
	items := []domain.OrderLineItem{
		{ProductID: 101, ProductName: "Wireless Mouse", Quantity: 2, UnitPrice: 25000, TotalPrice: 50000},
		{ProductID: 106, ProductName: "Mouse Pad", Quantity: 1, UnitPrice: 20000, TotalPrice: 20000},
	}

	passThrough(txManager)
	mock.ExpectQuery(regexp.QuoteMeta(queryInsertOrder)).
		WithArgs(1, &couponID, domain.OrderPending, int64(70000), int64(7000), int64(63000), now).
		WillReturnRows(pgxmock.NewRows([]string{"id", "version"}).AddRow(10, 0))
	mock.ExpectQuery(regexp.QuoteMeta(queryInsertItem)).
		WithArgs(10, 101, "Wireless Mouse", 2, int64(25000), int64(50000)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(queryInsertItem)).
		WithArgs(10, 106, "Mouse Pad", 1, int64(20000), int64(20000)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(2))

	created, stored, err := repo.Create(context.Background(), order, items)
	require.NoError(t, err)
	assert.Equal(t, 10, created.ID)
	require.Len(t, stored, 2)
	assert.Equal(t, 10, stored[1].OrderID)
	assert.Equal(t, 2, stored[1].ID)
	assert.Equal(t, 0, items[0].ID, "input items are not mutated")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateRollsBackOnItemFailure(t *testing.T) {
	repo, mock, txManager := NewMock(t)

	passThrough(txManager)
	mock.ExpectQuery(regexp.QuoteMeta(queryInsertOrder)).
		WithArgs(1, (*int)(nil), domain.OrderPending, int64(100), int64(0), int64(100), now).
		WillReturnRows(pgxmock.NewRows([]string{"id", "version"}).AddRow(11, 0))
	mock.ExpectQuery(regexp.QuoteMeta(queryInsertItem)).
		WithArgs(11, 101, "Wireless Mouse", 1, int64(100), int64(100)).
		WillReturnError(errors.New("fk violation"))

	_, _, err := repo.Create(context.Background(),
		&domain.Order{UserID: 1, Status: domain.OrderPending, TotalAmount: 100, FinalAmount: 100, CreatedAt: now},
		[]domain.OrderLineItem{{ProductID: 101, ProductName: "Wireless Mouse", Quantity: 1, UnitPrice: 100, TotalPrice: 100}},
	)
	assert.Error(t, err)
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock, _ := NewMock(t)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		found     bool
	}{
		{
			name: "Order found",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryGetOrder)).WithArgs(10).
					WillReturnRows(pgxmock.NewRows(orderCols).AddRow(10, 1, (*int)(nil), domain.OrderPending, int64(100), int64(0), int64(100), 0, now, now))
			},
			found: true,
		},
		{
			name: "Order missing",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryGetOrder)).WithArgs(10).WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(queryGetOrder)).WithArgs(10).WillReturnError(errors.New("db error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			order, err := repo.GetByID(context.Background(), 10)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.found, order != nil)
		})
	}
}

func TestRepository_Finalize(t *testing.T) {
	repo, mock, txManager := NewMock(t)

	payment := domain.Payment{
		OrderID:       10,
		Status:        domain.PaymentSuccess,
		Amount:        63000,
		BalanceBefore: 100000,
		BalanceAfter:  37000,
		CreatedAt:     now,
	}

	tests := []struct {
		name        string
		mockSetup   func()
		expectedErr error
		expectErr   bool
	}{
		{
			name: "Order completed",
			mockSetup: func() {
				passThrough(txManager)
				mock.ExpectExec(regexp.QuoteMeta(queryFinalizeOrder)).
					WithArgs(domain.OrderCompleted, now, 10, 0).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectQuery(regexp.QuoteMeta(queryInsertPayment)).
					WithArgs(10, domain.PaymentSuccess, int64(63000), int64(100000), int64(37000), "", now).
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(5))
			},
		},
		{
			name: "Order already finalized",
			mockSetup: func() {
				passThrough(txManager)
				mock.ExpectExec(regexp.QuoteMeta(queryFinalizeOrder)).
					WithArgs(domain.OrderCompleted, now, 10, 0).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			expectedErr: domain.ErrOrderNotPending,
			expectErr:   true,
		},
		{
			name: "Payment already recorded",
			mockSetup: func() {
				passThrough(txManager)
				mock.ExpectExec(regexp.QuoteMeta(queryFinalizeOrder)).
					WithArgs(domain.OrderCompleted, now, 10, 0).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectQuery(regexp.QuoteMeta(queryInsertPayment)).
					WithArgs(10, domain.PaymentSuccess, int64(63000), int64(100000), int64(37000), "", now).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: constraintPaymentPerOrder})
			},
			expectedErr: domain.ErrPaymentExists,
			expectErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			order := &domain.Order{ID: 10, Status: domain.OrderPending, Version: 0}
			stored, err := repo.Finalize(context.Background(), order, domain.OrderCompleted, payment)
			if tt.expectErr {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Equal(t, domain.OrderPending, order.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 5, stored.ID)
			assert.Equal(t, domain.OrderCompleted, order.Status)
			assert.Equal(t, 1, order.Version)
		})
	}
}

func TestRepository_GetItemsAndPayment(t *testing.T) {
	repo, mock, _ := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(queryGetItems)).WithArgs(10).
		WillReturnRows(pgxmock.NewRows([]string{"id", "order_id", "product_id", "product_name", "quantity", "unit_price", "total_price"}).
			AddRow(1, 10, 101, "Wireless Mouse", 2, int64(25000), int64(50000)))
	mock.ExpectQuery(regexp.QuoteMeta(queryGetPayment)).WithArgs(10).WillReturnError(pgx.ErrNoRows)

	items, err := repo.GetItems(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(50000), items[0].TotalPrice)

	payment, err := repo.GetPayment(context.Background(), 10)
	assert.NoError(t, err)
	assert.Nil(t, payment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUserQuery(t *testing.T) {
	tests := []struct {
		sortBy, sortOrder string
		contains          string
	}{
		{"createdAt", "DESC", "ORDER BY o.created_at DESC, o.id DESC"},
		{"finalAmount", "ASC", "ORDER BY o.final_amount ASC, o.id ASC"},
		{"", "", "ORDER BY o.created_at DESC, o.id DESC"},
		{"id; DROP TABLE orders", "sideways", "ORDER BY o.created_at DESC, o.id DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.sortBy+" "+tt.sortOrder, func(t *testing.T) {
			assert.Contains(t, listByUserQuery(tt.sortBy, tt.sortOrder), tt.contains)
		})
	}
}

func TestRepository_ListByUser(t *testing.T) {
	repo, mock, _ := NewMock(t)

	filter := domain.OrderFilter{Status: domain.OrderCompleted, SortBy: "finalAmount", SortOrder: "ASC", Page: 2, Size: 10}

	mock.ExpectQuery(regexp.QuoteMeta(queryCountByUser)).WithArgs(1, "COMPLETED").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(regexp.QuoteMeta(listByUserQuery("finalAmount", "ASC"))).WithArgs(1, "COMPLETED", 10, 10).
		WillReturnRows(pgxmock.NewRows(append(orderCols, "item_count")).
			AddRow(21, 1, (*int)(nil), domain.OrderCompleted, int64(9000), int64(0), int64(9000), 1, now, now, 3))

	orders, total, err := repo.ListByUser(context.Background(), 1, filter)
	require.NoError(t, err)
	assert.Equal(t, 11, total)
	require.Len(t, orders, 1)
	assert.Equal(t, 3, orders[0].ItemCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
