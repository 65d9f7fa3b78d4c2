package service

import (
	"time"

	"github.com/GlebRadaev/commerce/internal/handlers/auth"
	"github.com/GlebRadaev/commerce/internal/handlers/balance"
	"github.com/GlebRadaev/commerce/internal/handlers/coupons"
	"github.com/GlebRadaev/commerce/internal/handlers/orders"
	"github.com/GlebRadaev/commerce/internal/repo"
	"github.com/GlebRadaev/commerce/internal/service/authservice"
	"github.com/GlebRadaev/commerce/internal/service/balanceservice"
	"github.com/GlebRadaev/commerce/internal/service/couponservice"
	"github.com/GlebRadaev/commerce/internal/service/orderservice"
	"github.com/GlebRadaev/commerce/internal/service/productservice"
	pkgauth "github.com/GlebRadaev/commerce/pkg/auth"
	"github.com/GlebRadaev/commerce/pkg/clock"
)

type Services struct {
	AuthService    auth.Service
	BalanceService balance.Service
	CouponService  coupons.Service
	OrderService   orders.Service
	JWTService     pkgauth.JWTServiceInterface

	// Coupons is kept concrete for the expiry sweeper.
	Coupons *couponservice.Service
}

type Options struct {
	Clock      clock.Clock
	Location   *time.Location
	JWTSecret  string
	BcryptCost int
}

func New(repo *repo.Repositories, opts Options) *Services {
	clk := opts.Clock
	if clk == nil {
		clk = clock.NewRealClock()
	}
	jwtService := pkgauth.NewJWTService(opts.JWTSecret)

	balanceService := balanceservice.New(repo.UserRepo, repo.BalanceRepo, clk, opts.Location)
	productService := productservice.New(repo.ProductRepo, clk)
	couponService := couponservice.New(repo.CouponRepo, repo.UserRepo, clk)
	orderService := orderservice.New(repo.OrderRepo, repo.UserRepo, balanceService, productService, couponService, clk)
	authService := authservice.New(repo.UserRepo, balanceService, pkgauth.NewBcrypt(opts.BcryptCost), jwtService, clk)

	return &Services{
		AuthService:    authService,
		BalanceService: balanceService,
		CouponService:  couponService,
		OrderService:   orderService,
		JWTService:     jwtService,
		Coupons:        couponService,
	}
}
