package orderservice

//go:generate mockgen -source=orderservice.go -destination=mock_orderservice.go -package=orderservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/GlebRadaev/commerce/internal/apperr"
	"github.com/GlebRadaev/commerce/internal/domain"
	"github.com/GlebRadaev/commerce/pkg/clock"
	"github.com/GlebRadaev/commerce/pkg/paging"
	"go.uber.org/zap"
)

type Repo interface {
	Create(ctx context.Context, order *domain.Order, items []domain.OrderLineItem) (*domain.Order, []domain.OrderLineItem, error)
	GetByID(ctx context.Context, id int) (*domain.Order, error)
	GetItems(ctx context.Context, orderID int) ([]domain.OrderLineItem, error)
	GetPayment(ctx context.Context, orderID int) (*domain.Payment, error)
	Finalize(ctx context.Context, order *domain.Order, status domain.OrderStatus, payment domain.Payment) (*domain.Payment, error)
	ListByUser(ctx context.Context, userID int, filter domain.OrderFilter) ([]domain.OrderSummary, int, error)
}

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

type Ledger interface {
	GetBalance(ctx context.Context, userID int) (*domain.Balance, error)
	Deduct(ctx context.Context, userID int, amount int64, description string) (*domain.BalanceTransaction, error)
	Refund(ctx context.Context, userID int, amount int64, description string) (*domain.BalanceTransaction, error)
}

type Inventory interface {
	GetForOrder(ctx context.Context, productIDs []int) (map[int]domain.Product, error)
	CheckAvailability(ctx context.Context, productID, quantity int) error
	DecreaseStock(ctx context.Context, productID, quantity int) (*domain.Product, error)
	IncreaseStock(ctx context.Context, productID, quantity int) (*domain.Product, error)
}

type Coupons interface {
	Get(ctx context.Context, couponID int) (*domain.CouponWithEvent, error)
	ValidateOwnership(ctx context.Context, couponID, userID int) error
	ApplyToOrder(ctx context.Context, couponID int, orderAmount int64) (*domain.AppliedCoupon, error)
	MarkUsed(ctx context.Context, couponID int) error
	Release(ctx context.Context, couponID int) error
}

// Service is the order orchestrator. It owns orders and payments and drives the ledger,
// the inventory and the coupon allocator through a purchase, undoing finished steps when a later one fails.
type Service struct {
	repo      Repo
	userRepo  UserRepo
	ledger    Ledger
	inventory Inventory
	coupons   Coupons
	clock     clock.Clock

	// orders with a payment in progress in this process
	paying sync.Map
}

func New(repo Repo, userRepo UserRepo, ledger Ledger, inventory Inventory, coupons Coupons, clk clock.Clock) *Service {
	return &Service{
		repo:      repo,
		userRepo:  userRepo,
		ledger:    ledger,
		inventory: inventory,
		coupons:   coupons,
		clock:     clk,
	}
}

func (s *Service) CreateOrder(ctx context.Context, userID int, items []domain.OrderItemInput, couponID *int) (*domain.PlacedOrder, error) {
	if len(items) == 0 {
		return nil, apperr.New(apperr.KindValidation, "order has no items")
	}
	quantities := make(map[int]int, len(items))
	productIDs := make([]int, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, apperr.New(apperr.KindValidation, "quantity must be at least 1").
				With("productId", item.ProductID).
				With("quantity", item.Quantity)
		}
		if _, seen := quantities[item.ProductID]; !seen {
			productIDs = append(productIDs, item.ProductID)
		}
		quantities[item.ProductID] += item.Quantity
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to find user", zap.Int("user_id", userID), zap.Error(err))
		return nil, apperr.Internal(err, "failed to find user")
	}
	if user == nil {
		return nil, apperr.New(apperr.KindNotFound, "user not found").With("userId", userID)
	}

	products, err := s.inventory.GetForOrder(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range productIDs {
		if err := s.inventory.CheckAvailability(ctx, id, quantities[id]); err != nil {
			return nil, err
		}
	}

	lines := make([]domain.OrderLineItem, 0, len(items))
	var total int64
	for _, item := range items {
		p := products[item.ProductID]
		line := domain.OrderLineItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    item.Quantity,
			UnitPrice:   p.Price,
			TotalPrice:  p.Price * int64(item.Quantity),
		}
		total += line.TotalPrice
		lines = append(lines, line)
	}

	var applied *domain.AppliedCoupon
	if couponID != nil {
		if err := s.coupons.ValidateOwnership(ctx, *couponID, userID); err != nil {
			return nil, err
		}
		if applied, err = s.coupons.ApplyToOrder(ctx, *couponID, total); err != nil {
			return nil, err
		}
	}

	order := &domain.Order{
		UserID:      userID,
		CouponID:    couponID,
		Status:      domain.OrderPending,
		TotalAmount: total,
		FinalAmount: total,
		CreatedAt:   s.clock.Now(),
	}
	if applied != nil {
		order.DiscountAmount = applied.DiscountAmount
		order.FinalAmount = total - applied.DiscountAmount
	}

	order, lines, err = s.repo.Create(ctx, order, lines)
	if err != nil {
		zap.L().Error("failed to create order", zap.Int("user_id", userID), zap.Error(err))
		return nil, apperr.Internal(err, "failed to create order")
	}
	zap.L().Info("order created",
		zap.Int("order_id", order.ID), zap.Int("user_id", userID), zap.Int64("final_amount", order.FinalAmount))

	return &domain.PlacedOrder{Order: *order, Items: lines, Coupon: applied}, nil
}

func alreadyProcessed(orderID int) *apperr.Error {
	return apperr.New(apperr.KindAlreadyProcessed, "order has already been processed").With("orderId", orderID)
}

func (s *Service) loadOrder(ctx context.Context, orderID int) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		zap.L().Error("failed to get order", zap.Int("order_id", orderID), zap.Error(err))
		return nil, apperr.Internal(err, "failed to get order")
	}
	if order == nil {
		return nil, apperr.New(apperr.KindNotFound, "order not found").With("orderId", orderID)
	}
	return order, nil
}

// ProcessPayment settles a pending order. Nothing is mutated until every precondition holds;
// from then on the purchase either completes or is fully compensated and recorded as FAILED.
func (s *Service) ProcessPayment(ctx context.Context, orderID, userID int) (*domain.Payment, error) {
	if _, busy := s.paying.LoadOrStore(orderID, struct{}{}); busy {
		return nil, alreadyProcessed(orderID)
	}
	defer s.paying.Delete(orderID)

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperr.New(apperr.KindOwnershipMismatch, "order belongs to another user").
			With("orderId", orderID).
			With("userId", userID)
	}
	if order.Status != domain.OrderPending {
		return nil, alreadyProcessed(orderID).With("status", order.Status)
	}
	existing, err := s.repo.GetPayment(ctx, orderID)
	if err != nil {
		zap.L().Error("failed to get payment", zap.Int("order_id", orderID), zap.Error(err))
		return nil, apperr.Internal(err, "failed to get payment")
	}
	if existing != nil {
		return nil, alreadyProcessed(orderID)
	}

	items, err := s.repo.GetItems(ctx, orderID)
	if err != nil {
		zap.L().Error("failed to get order items", zap.Int("order_id", orderID), zap.Error(err))
		return nil, apperr.Internal(err, "failed to get order items")
	}
	balance, err := s.ledger.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if balance.CurrentBalance < order.FinalAmount {
		return nil, apperr.New(apperr.KindInsufficientBalance, "insufficient balance").
			With("required", order.FinalAmount).
			With("available", balance.CurrentBalance)
	}
	needed := make(map[int]int, len(items))
	var productIDs []int
	for _, it := range items {
		if _, seen := needed[it.ProductID]; !seen {
			productIDs = append(productIDs, it.ProductID)
		}
		needed[it.ProductID] += it.Quantity
	}
	for _, id := range productIDs {
		if err := s.inventory.CheckAvailability(ctx, id, needed[id]); err != nil {
			return nil, err
		}
	}

	// Shared state is about to change: a caller going away must not leave the purchase half done.
	ctx = context.WithoutCancel(ctx)
	p := &purchase{order: order, items: items, balanceBefore: balance.CurrentBalance, balanceAfter: balance.CurrentBalance}

	if err := s.execute(ctx, p); err != nil {
		s.compensate(ctx, p)
		s.recordFailure(ctx, p, err)
		return nil, err
	}

	payment, err := s.repo.Finalize(ctx, order, domain.OrderCompleted, domain.Payment{
		OrderID:       orderID,
		Status:        domain.PaymentSuccess,
		Amount:        order.FinalAmount,
		BalanceBefore: p.balanceBefore,
		BalanceAfter:  p.balanceAfter,
		CreatedAt:     s.clock.Now(),
	})
	if err != nil {
		s.compensate(ctx, p)
		if errors.Is(err, domain.ErrOrderNotPending) || errors.Is(err, domain.ErrPaymentExists) {
			return nil, alreadyProcessed(orderID)
		}
		zap.L().Error("failed to record payment", zap.Int("order_id", orderID), zap.Error(err))
		return nil, apperr.Internal(err, "failed to record payment")
	}
	zap.L().Info("order paid", zap.Int("order_id", orderID), zap.Int64("amount", payment.Amount))
	return payment, nil
}

type compensation struct {
	name string
	undo func(ctx context.Context) error
}

// purchase tracks one payment attempt and the steps that will have to be undone if it fails.
type purchase struct {
	order         *domain.Order
	items         []domain.OrderLineItem
	balanceBefore int64
	balanceAfter  int64
	done          []compensation
}

func (p *purchase) onFailure(name string, undo func(ctx context.Context) error) {
	p.done = append(p.done, compensation{name: name, undo: undo})
}

func (s *Service) execute(ctx context.Context, p *purchase) error {
	order := p.order
	for _, it := range p.items {
		if _, err := s.inventory.DecreaseStock(ctx, it.ProductID, it.Quantity); err != nil {
			return err
		}
		productID, quantity := it.ProductID, it.Quantity
		p.onFailure(fmt.Sprintf("restore stock of product %d", productID), func(ctx context.Context) error {
			_, err := s.inventory.IncreaseStock(ctx, productID, quantity)
			return err
		})
	}

	if order.FinalAmount > 0 {
		txn, err := s.ledger.Deduct(ctx, order.UserID, order.FinalAmount, fmt.Sprintf("payment for order %d", order.ID))
		if err != nil {
			return err
		}
		p.balanceBefore, p.balanceAfter = txn.BalanceBefore, txn.BalanceAfter
		p.onFailure("refund balance", func(ctx context.Context) error {
			_, err := s.ledger.Refund(ctx, order.UserID, order.FinalAmount, fmt.Sprintf("refund for order %d", order.ID))
			return err
		})
	}

	if order.CouponID != nil {
		couponID := *order.CouponID
		if err := s.coupons.MarkUsed(ctx, couponID); err != nil {
			return err
		}
		p.onFailure("release coupon", func(ctx context.Context) error {
			return s.coupons.Release(ctx, couponID)
		})
	}
	return nil
}

// compensate undoes completed steps newest first. A failing undo is logged and the rest still run.
func (s *Service) compensate(ctx context.Context, p *purchase) {
	for i := len(p.done) - 1; i >= 0; i-- {
		c := p.done[i]
		if err := c.undo(ctx); err != nil {
			zap.L().Error("compensation failed",
				zap.Int("order_id", p.order.ID), zap.String("step", c.name), zap.Error(err))
		}
	}
	p.done = nil
}

func (s *Service) recordFailure(ctx context.Context, p *purchase, cause error) {
	_, err := s.repo.Finalize(ctx, p.order, domain.OrderFailed, domain.Payment{
		OrderID:       p.order.ID,
		Status:        domain.PaymentFailed,
		Amount:        p.order.FinalAmount,
		BalanceBefore: p.balanceBefore,
		BalanceAfter:  p.balanceBefore,
		FailureReason: failureReason(cause),
		CreatedAt:     s.clock.Now(),
	})
	if err != nil {
		zap.L().Error("failed to record failed payment", zap.Int("order_id", p.order.ID), zap.Error(err))
		return
	}
	zap.L().Info("order payment failed", zap.Int("order_id", p.order.ID), zap.Error(cause))
}

// failureReason is what the payment row keeps and GetOrder shows. Unexpected failures are reduced to
// their kind and message so storage errors never reach the client.
func failureReason(cause error) string {
	e, ok := apperr.As(cause)
	if !ok {
		return string(apperr.KindInternal)
	}
	if e.Kind == apperr.KindInternal {
		return string(e.Kind) + ": " + e.Message
	}
	return e.Message
}

func (s *Service) GetOrder(ctx context.Context, orderID int) (*domain.OrderDetails, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.GetItems(ctx, orderID)
	if err != nil {
		zap.L().Error("failed to get order items", zap.Int("order_id", orderID), zap.Error(err))
		return nil, apperr.Internal(err, "failed to get order items")
	}
	details := &domain.OrderDetails{Order: *order, Items: items}

	if order.CouponID != nil {
		coupon, err := s.coupons.Get(ctx, *order.CouponID)
		if err != nil && !apperr.Is(err, apperr.KindNotFound) {
			return nil, err
		}
		details.Coupon = coupon
	}

	details.Payment, err = s.repo.GetPayment(ctx, orderID)
	if err != nil {
		zap.L().Error("failed to get payment", zap.Int("order_id", orderID), zap.Error(err))
		return nil, apperr.Internal(err, "failed to get payment")
	}
	return details, nil
}

const (
	SortByCreatedAt   = "createdAt"
	SortByFinalAmount = "finalAmount"
)

func (s *Service) GetUserOrders(ctx context.Context, userID int, filter domain.OrderFilter) (paging.Page[domain.OrderSummary], error) {
	var empty paging.Page[domain.OrderSummary]
	p := paging.Params{Page: filter.Page, Size: filter.Size}
	if err := p.Validate(); err != nil {
		return empty, err
	}
	switch filter.Status {
	case "", domain.OrderPending, domain.OrderCompleted, domain.OrderFailed:
	default:
		return empty, apperr.New(apperr.KindValidation, "unknown order status").With("status", filter.Status)
	}
	switch filter.SortBy {
	case "":
		filter.SortBy = SortByCreatedAt
	case SortByCreatedAt, SortByFinalAmount:
	default:
		return empty, apperr.New(apperr.KindValidation, "unknown sort field").With("sortBy", filter.SortBy)
	}
	filter.SortOrder = strings.ToUpper(filter.SortOrder)
	switch filter.SortOrder {
	case "":
		filter.SortOrder = "DESC"
	case "ASC", "DESC":
	default:
		return empty, apperr.New(apperr.KindValidation, "sort order must be ASC or DESC").With("sortOrder", filter.SortOrder)
	}

	orders, total, err := s.repo.ListByUser(ctx, userID, filter)
	if err != nil {
		zap.L().Error("failed to list orders", zap.Int("user_id", userID), zap.Error(err))
		return empty, apperr.Internal(err, "failed to list orders")
	}
	return paging.NewPage(orders, total, p), nil
}
