package service

import (
	"context"
	"testing"
	"time"

	"github.com/GlebRadaev/commerce/internal/apperr"
	"github.com/GlebRadaev/commerce/internal/repo"
	"github.com/GlebRadaev/commerce/internal/repo/memstore"
	"github.com/GlebRadaev/commerce/internal/service/authservice"
	"github.com/GlebRadaev/commerce/internal/service/balanceservice"
	"github.com/GlebRadaev/commerce/internal/service/couponservice"
	"github.com/GlebRadaev/commerce/internal/service/orderservice"
	"github.com/GlebRadaev/commerce/internal/service/productservice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)

	repos := &repo.Repositories{
		UserRepo:    struct {
			*authservice.MockRepo
			*balanceservice.MockUserRepo
		}{authservice.NewMockRepo(ctrl), balanceservice.NewMockUserRepo(ctrl)},
		BalanceRepo: balanceservice.NewMockBalanceRepo(ctrl),
		ProductRepo: productservice.NewMockRepo(ctrl),
		CouponRepo:  couponservice.NewMockRepo(ctrl),
		OrderRepo:   orderservice.NewMockRepo(ctrl),
	}

	services := New(repos, Options{JWTSecret: "secret"})

	assert.NotNil(t, services.AuthService)
	assert.NotNil(t, services.BalanceService)
	assert.NotNil(t, services.CouponService)
	assert.NotNil(t, services.OrderService)
	assert.NotNil(t, services.JWTService)
	assert.Same(t, services.Coupons, services.CouponService)
}

func TestNewRegisterThenCharge(t *testing.T) {
	store := memstore.New()
	services := New(repo.NewMemory(store), Options{Location: time.UTC, JWTSecret: "secret", BcryptCost: 4})
	ctx := context.Background()

	session, err := services.AuthService.Register(ctx, "alice", "Alice", "password123")
	require.NoError(t, err)
	user := session.User

	balance, err := services.BalanceService.GetBalance(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, balance.CurrentBalance)

	result, err := services.BalanceService.Charge(ctx, user.ID, 5000)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), result.NewBalance)

	claims, err := services.JWTService.ValidateToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, err = services.AuthService.Login(ctx, "alice", "password124")
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	again, err := services.AuthService.Login(ctx, "alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.User.ID)
}
