// Package memstore is an in-process storage backend with the same atomicity contracts as the
// PostgreSQL repositories: conditional writes are checked and applied under one lock.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/GlebRadaev/commerce/internal/domain"
)

type Store struct {
	Users    *Users
	Balances *Balances
	Products *Products
	Coupons  *Coupons
	Orders   *Orders
}

func New() *Store {
	return &Store{
		Users:    &Users{byID: map[int]domain.User{}},
		Balances: &Balances{byUser: map[int]domain.Balance{}},
		Products: &Products{byID: map[int]domain.Product{}},
		Coupons:  &Coupons{events: map[int]domain.CouponEvent{}, coupons: map[int]domain.Coupon{}, nextID: 1},
		Orders:   &Orders{orders: map[int]domain.Order{}, items: map[int][]domain.OrderLineItem{}, payments: map[int]domain.Payment{}, nextID: 1},
	}
}

func page[T any](items []T, page, size int) []T {
	if page < 1 || size < 1 {
		return nil
	}
	from := (page - 1) * size
	if from >= len(items) {
		return nil
	}
	to := from + size
	if to > len(items) {
		to = len(items)
	}
	return items[from:to]
}

type Users struct {
	mu     sync.RWMutex
	byID   map[int]domain.User
	nextID int
}

func (s *Users) FindByLogin(_ context.Context, login string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.byID {
		if u.Login == login {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *Users) FindByID(_ context.Context, id int) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.byID[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (s *Users) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Login == user.Login {
			return nil, domain.ErrDuplicateLogin
		}
	}
	s.nextID++
	user.ID = s.nextID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.byID[user.ID] = *user
	return user, nil
}

type Balances struct {
	mu     sync.RWMutex
	byUser map[int]domain.Balance
	txns   []domain.BalanceTransaction
	nextID int
}

func (s *Balances) GetUserBalance(_ context.Context, userID int) (*domain.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if b, ok := s.byUser[userID]; ok {
		return &b, nil
	}
	return nil, nil
}

func (s *Balances) CreateUserBalance(_ context.Context, balance *domain.Balance) (*domain.Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.byUser[balance.UserID]; ok {
		return &b, nil
	}
	b := domain.Balance{
		ID:              len(s.byUser) + 1,
		UserID:          balance.UserID,
		DailyChargeDate: balance.UpdatedAt,
		UpdatedAt:       balance.UpdatedAt,
	}
	s.byUser[b.UserID] = b
	return &b, nil
}

func (s *Balances) ApplyTransaction(_ context.Context, balance *domain.Balance, txn domain.BalanceTransaction) (*domain.BalanceTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.byUser[balance.UserID]
	if !ok || current.Version != balance.Version {
		return nil, domain.ErrVersionConflict
	}
	current.CurrentBalance = balance.CurrentBalance
	current.DailyChargeAmount = balance.DailyChargeAmount
	current.DailyChargeDate = balance.DailyChargeDate
	current.UpdatedAt = balance.UpdatedAt
	current.Version++
	s.byUser[balance.UserID] = current

	s.nextID++
	txn.ID = s.nextID
	s.txns = append(s.txns, txn)
	balance.Version = current.Version
	return &txn, nil
}

// AdjustBalance adds delta and appends txn with the resulting snapshot, unless the balance would go negative.
func (s *Balances) AdjustBalance(_ context.Context, delta int64, txn domain.BalanceTransaction) (*domain.BalanceTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.byUser[txn.UserID]
	if !ok || current.CurrentBalance+delta < 0 {
		return nil, domain.ErrInsufficientFunds
	}
	txn.BalanceBefore = current.CurrentBalance
	current.CurrentBalance += delta
	current.UpdatedAt = txn.CreatedAt
	current.Version++
	s.byUser[txn.UserID] = current

	s.nextID++
	txn.ID = s.nextID
	txn.BalanceAfter = current.CurrentBalance
	s.txns = append(s.txns, txn)
	return &txn, nil
}

func (s *Balances) ListTransactions(_ context.Context, userID, limit, offset int) ([]domain.BalanceTransaction, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var own []domain.BalanceTransaction
	for i := len(s.txns) - 1; i >= 0; i-- {
		if s.txns[i].UserID == userID {
			own = append(own, s.txns[i])
		}
	}
	if limit < 1 {
		return nil, len(own), nil
	}
	return page(own, offset/limit+1, limit), len(own), nil
}

type Products struct {
	mu   sync.RWMutex
	byID map[int]domain.Product
}

func (s *Products) GetByID(_ context.Context, id int) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.byID[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (s *Products) GetByIDs(_ context.Context, ids []int) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var products []domain.Product
	for _, id := range ids {
		if p, ok := s.byID[id]; ok {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

// AdjustStock applies delta only if the stock stays non-negative, flipping between ACTIVE and OUT_OF_STOCK.
func (s *Products) AdjustStock(_ context.Context, id, delta int, now time.Time) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.byID[id]
	if !ok || current.StockQuantity+delta < 0 {
		return nil, domain.ErrInsufficientStock
	}
	current.StockQuantity += delta
	switch {
	case current.Status == domain.ProductActive && current.StockQuantity == 0:
		current.Status = domain.ProductOutOfStock
	case current.Status == domain.ProductOutOfStock && current.StockQuantity > 0:
		current.Status = domain.ProductActive
	}
	current.UpdatedAt = now
	current.Version++
	s.byID[id] = current
	return &current, nil
}

type Coupons struct {
	mu      sync.RWMutex
	events  map[int]domain.CouponEvent
	coupons map[int]domain.Coupon
	nextID  int
}

func (s *Coupons) GetEvent(_ context.Context, id int) (*domain.CouponEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.events[id]; ok {
		return &e, nil
	}
	return nil, nil
}

func (s *Coupons) hasAvailable(userID, eventID int) bool {
	for _, c := range s.coupons {
		if c.UserID == userID && c.CouponEventID == eventID && c.Status == domain.CouponAvailable {
			return true
		}
	}
	return false
}

func (s *Coupons) HasAvailableCoupon(_ context.Context, userID, eventID int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasAvailable(userID, eventID), nil
}

func (s *Coupons) Issue(_ context.Context, coupon *domain.Coupon) (*domain.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[coupon.CouponEventID]
	if !ok || event.IssuedQuantity >= event.TotalQuantity {
		return nil, domain.ErrCouponSoldOut
	}
	if s.hasAvailable(coupon.UserID, coupon.CouponEventID) {
		return nil, domain.ErrDuplicateCoupon
	}
	for _, c := range s.coupons {
		if c.CouponCode == coupon.CouponCode {
			return nil, domain.ErrCouponCodeTaken
		}
	}
	event.IssuedQuantity++
	event.Version++
	s.events[event.ID] = event

	for {
		if _, taken := s.coupons[s.nextID]; !taken {
			break
		}
		s.nextID++
	}
	coupon.ID = s.nextID
	s.coupons[coupon.ID] = *coupon
	return coupon, nil
}

func (s *Coupons) withEvent(c domain.Coupon) domain.CouponWithEvent {
	return domain.CouponWithEvent{Coupon: c, Event: s.events[c.CouponEventID]}
}

func (s *Coupons) GetCoupon(_ context.Context, id int) (*domain.CouponWithEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.coupons[id]
	if !ok {
		return nil, nil
	}
	cw := s.withEvent(c)
	return &cw, nil
}

func (s *Coupons) transition(id int, from, to domain.CouponStatus, usedAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.coupons[id]
	if !ok || c.Status != from {
		return domain.ErrCouponStateChange
	}
	if to == domain.CouponAvailable && s.hasAvailable(c.UserID, c.CouponEventID) {
		return domain.ErrDuplicateCoupon
	}
	c.Status = to
	c.UsedAt = usedAt
	s.coupons[id] = c
	return nil
}

func (s *Coupons) MarkUsed(_ context.Context, id int, usedAt time.Time) error {
	return s.transition(id, domain.CouponAvailable, domain.CouponUsed, &usedAt)
}

func (s *Coupons) Release(_ context.Context, id int) error {
	return s.transition(id, domain.CouponUsed, domain.CouponAvailable, nil)
}

func (s *Coupons) List(_ context.Context, filter domain.CouponFilter) ([]domain.CouponWithEvent, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []domain.CouponWithEvent
	for _, c := range s.coupons {
		if c.UserID != filter.UserID || (filter.Status != "" && c.Status != filter.Status) {
			continue
		}
		matched = append(matched, s.withEvent(c))
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].IssuedAt.Equal(matched[j].IssuedAt) {
			return matched[i].IssuedAt.After(matched[j].IssuedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	return page(matched, filter.Page, filter.Size), len(matched), nil
}

func (s *Coupons) ListExpirableEvents(_ context.Context, now time.Time, limit int) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := map[int]struct{}{}
	var ids []int
	for _, c := range s.coupons {
		if c.Status != domain.CouponAvailable || !c.ExpiredAt.Before(now) {
			continue
		}
		if _, ok := seen[c.CouponEventID]; ok {
			continue
		}
		seen[c.CouponEventID] = struct{}{}
		ids = append(ids, c.CouponEventID)
	}
	sort.Ints(ids)
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (s *Coupons) ExpireByEvent(_ context.Context, eventID int, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, c := range s.coupons {
		if c.CouponEventID == eventID && c.Status == domain.CouponAvailable && c.ExpiredAt.Before(now) {
			c.Status = domain.CouponExpired
			s.coupons[id] = c
			n++
		}
	}
	return n, nil
}

type Orders struct {
	mu       sync.RWMutex
	orders   map[int]domain.Order
	items    map[int][]domain.OrderLineItem
	payments map[int]domain.Payment
	nextID   int
	itemID   int
	payID    int
}

func (s *Orders) Create(_ context.Context, order *domain.Order, items []domain.OrderLineItem) (*domain.Order, []domain.OrderLineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order.ID = s.nextID
	s.nextID++
	order.UpdatedAt = order.CreatedAt
	stored := make([]domain.OrderLineItem, len(items))
	for i, it := range items {
		s.itemID++
		it.ID = s.itemID
		it.OrderID = order.ID
		stored[i] = it
	}
	s.orders[order.ID] = *order
	s.items[order.ID] = stored
	return order, append([]domain.OrderLineItem(nil), stored...), nil
}

func (s *Orders) GetByID(_ context.Context, id int) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if o, ok := s.orders[id]; ok {
		return &o, nil
	}
	return nil, nil
}

func (s *Orders) GetItems(_ context.Context, orderID int) ([]domain.OrderLineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.OrderLineItem(nil), s.items[orderID]...), nil
}

func (s *Orders) GetPayment(_ context.Context, orderID int) (*domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.payments[orderID]; ok {
		return &p, nil
	}
	return nil, nil
}

func (s *Orders) Finalize(_ context.Context, order *domain.Order, status domain.OrderStatus, payment domain.Payment) (*domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.orders[order.ID]
	if !ok || current.Status != domain.OrderPending || current.Version != order.Version {
		return nil, domain.ErrOrderNotPending
	}
	if _, exists := s.payments[order.ID]; exists {
		return nil, domain.ErrPaymentExists
	}
	current.Status = status
	current.Version++
	current.UpdatedAt = payment.CreatedAt
	s.orders[order.ID] = current

	s.payID++
	payment.ID = s.payID
	s.payments[order.ID] = payment

	*order = current
	return &payment, nil
}

func (s *Orders) ListByUser(_ context.Context, userID int, filter domain.OrderFilter) ([]domain.OrderSummary, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []domain.OrderSummary
	for _, o := range s.orders {
		if o.UserID != userID || (filter.Status != "" && o.Status != filter.Status) {
			continue
		}
		matched = append(matched, domain.OrderSummary{Order: o, ItemCount: len(s.items[o.ID])})
	}
	asc := filter.SortOrder == "ASC"
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		var less, equal bool
		if filter.SortBy == "finalAmount" {
			less, equal = a.FinalAmount < b.FinalAmount, a.FinalAmount == b.FinalAmount
		} else {
			less, equal = a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.Equal(b.CreatedAt)
		}
		if equal {
			less = a.ID < b.ID
		}
		if asc {
			return less
		}
		return !less
	})
	return page(matched, filter.Page, filter.Size), len(matched), nil
}
