package handlers

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers

import (
	"net/http"

	_ "github.com/GlebRadaev/commerce/docs"
	authhandlers "github.com/GlebRadaev/commerce/internal/handlers/auth"
	balancehandlers "github.com/GlebRadaev/commerce/internal/handlers/balance"
	couponhandlers "github.com/GlebRadaev/commerce/internal/handlers/coupons"
	ordershandlers "github.com/GlebRadaev/commerce/internal/handlers/orders"
	"github.com/GlebRadaev/commerce/internal/service"
	"github.com/GlebRadaev/commerce/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type BalanceHandler interface {
	Charge(w http.ResponseWriter, r *http.Request)
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetOwnBalance(w http.ResponseWriter, r *http.Request)
	GetTransactions(w http.ResponseWriter, r *http.Request)
}

type CouponHandler interface {
	Issue(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type OrderHandler interface {
	CreateOrder(w http.ResponseWriter, r *http.Request)
	ProcessPayment(w http.ResponseWriter, r *http.Request)
	GetOrder(w http.ResponseWriter, r *http.Request)
	GetUserOrders(w http.ResponseWriter, r *http.Request)
	GetOwnOrders(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler    AuthHandler
	BalanceHandler BalanceHandler
	CouponHandler  CouponHandler
	OrderHandler   OrderHandler
	JWTService     auth.JWTServiceInterface
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AuthHandler:    authhandlers.New(s.AuthService),
		BalanceHandler: balancehandlers.New(s.BalanceService),
		CouponHandler:  couponhandlers.New(s.CouponService),
		OrderHandler:   ordershandlers.New(s.OrderService),
		JWTService:     s.JWTService,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		RequestLogger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/balances", func(r chi.Router) {
			r.Post("/charge", h.BalanceHandler.Charge)
			r.Get("/{userId}", h.BalanceHandler.GetBalance)
			r.Get("/{userId}/transactions", h.BalanceHandler.GetTransactions)
		})
		r.Route("/coupons", func(r chi.Router) {
			r.Post("/issue", h.CouponHandler.Issue)
			r.Get("/", h.CouponHandler.List)
		})
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.OrderHandler.CreateOrder)
			r.Get("/{orderId}", h.OrderHandler.GetOrder)
			r.Post("/{orderId}/payment", h.OrderHandler.ProcessPayment)
		})
		r.Get("/users/{userId}/orders", h.OrderHandler.GetUserOrders)
	})

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.AuthHandler.Register)
		r.Post("/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(h.JWTService))
			r.Get("/balance", h.BalanceHandler.GetOwnBalance)
			r.Get("/orders", h.OrderHandler.GetOwnOrders)
		})
	})

	return r
}
