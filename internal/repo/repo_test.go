package repo

import (
	"testing"

	"github.com/GlebRadaev/commerce/internal/pg"
	balancerepo "github.com/GlebRadaev/commerce/internal/repo/balance-repo"
	couponrepo "github.com/GlebRadaev/commerce/internal/repo/coupon-repo"
	"github.com/GlebRadaev/commerce/internal/repo/memstore"
	orderrepo "github.com/GlebRadaev/commerce/internal/repo/order-repo"
	productrepo "github.com/GlebRadaev/commerce/internal/repo/product-repo"
	userrepo "github.com/GlebRadaev/commerce/internal/repo/user-repo"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Repositories, pgxmock.PgxPoolIface) {
	ctrl := gomock.NewController(t)
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	mockTxManager := pg.NewMockTXManager(ctrl)
	repo := New(pg.New(mockDB), mockTxManager)
	t.Cleanup(mockDB.Close)

	return repo, mockDB
}

func TestNew(t *testing.T) {
	repo, mock := NewMock(t)

	assert.IsType(t, &userrepo.Repository{}, repo.UserRepo)
	assert.IsType(t, &balancerepo.Repository{}, repo.BalanceRepo)
	assert.IsType(t, &productrepo.Repository{}, repo.ProductRepo)
	assert.IsType(t, &couponrepo.Repository{}, repo.CouponRepo)
	assert.IsType(t, &orderrepo.Repository{}, repo.OrderRepo)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unmet expectations: %v", err)
	}
}

func TestNewMemory(t *testing.T) {
	store := memstore.New()
	repo := NewMemory(store)

	assert.Same(t, store.Users, repo.UserRepo)
	assert.Same(t, store.Balances, repo.BalanceRepo)
	assert.Same(t, store.Products, repo.ProductRepo)
	assert.Same(t, store.Coupons, repo.CouponRepo)
	assert.Same(t, store.Orders, repo.OrderRepo)
}
