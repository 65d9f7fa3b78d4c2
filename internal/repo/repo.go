package repo

import (
	"github.com/GlebRadaev/commerce/internal/pg"
	balancerepo "github.com/GlebRadaev/commerce/internal/repo/balance-repo"
	couponrepo "github.com/GlebRadaev/commerce/internal/repo/coupon-repo"
	"github.com/GlebRadaev/commerce/internal/repo/memstore"
	orderrepo "github.com/GlebRadaev/commerce/internal/repo/order-repo"
	productrepo "github.com/GlebRadaev/commerce/internal/repo/product-repo"
	userrepo "github.com/GlebRadaev/commerce/internal/repo/user-repo"
	"github.com/GlebRadaev/commerce/internal/service/authservice"
	"github.com/GlebRadaev/commerce/internal/service/balanceservice"
	"github.com/GlebRadaev/commerce/internal/service/couponservice"
	"github.com/GlebRadaev/commerce/internal/service/orderservice"
	"github.com/GlebRadaev/commerce/internal/service/productservice"
)

type UserRepo interface {
	authservice.Repo
	balanceservice.UserRepo
}

type Repositories struct {
	UserRepo    UserRepo
	BalanceRepo balanceservice.BalanceRepo
	ProductRepo productservice.Repo
	CouponRepo  couponservice.Repo
	OrderRepo   orderservice.Repo
}

// New builds the PostgreSQL repositories. conn should route through the transaction manager's context.
func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		UserRepo:    userrepo.New(conn),
		BalanceRepo: balancerepo.New(conn, txManager),
		ProductRepo: productrepo.New(conn),
		CouponRepo:  couponrepo.New(conn, txManager),
		OrderRepo:   orderrepo.New(conn, txManager),
	}
}

func NewMemory(store *memstore.Store) *Repositories {
	return &Repositories{
		UserRepo:    store.Users,
		BalanceRepo: store.Balances,
		ProductRepo: store.Products,
		CouponRepo:  store.Coupons,
		OrderRepo:   store.Orders,
	}
}
