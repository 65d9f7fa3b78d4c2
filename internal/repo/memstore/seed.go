package memstore

import (
	"time"

	"github.com/GlebRadaev/commerce/internal/domain"
)

// Seed loads the demo catalogue: the same rows the PostgreSQL seed migration inserts.
func (s *Store) Seed(now time.Time) {
	for _, u := range []domain.User{
		{ID: 1, Login: "kim@test.com", Name: "Kim Cheolsu"},
		{ID: 2, Login: "lee@test.com", Name: "Lee Younghee"},
		{ID: 3, Login: "park@test.com", Name: "Park Minsu"},
	} {
		u.CreatedAt = now
		s.Users.byID[u.ID] = u
	}
	s.Users.nextID = 3

	for i, amount := range []int64{50000, 100000, 75000} {
		s.Balances.byUser[i+1] = domain.Balance{
			ID:              i + 1,
			UserID:          i + 1,
			CurrentBalance:  amount,
			DailyChargeDate: now,
			UpdatedAt:       now,
		}
	}

	for _, p := range []domain.Product{
		{ID: 101, Name: "Wireless Mouse", Price: 25000, StockQuantity: 50},
		{ID: 102, Name: "Bluetooth Keyboard", Price: 45000, StockQuantity: 30},
		{ID: 103, Name: "Monitor", Price: 150000, StockQuantity: 20},
		{ID: 104, Name: "Webcam", Price: 80000, StockQuantity: 0},
		{ID: 105, Name: "Speaker", Price: 35000, StockQuantity: 25},
		{ID: 106, Name: "Mouse Pad", Price: 15000, StockQuantity: 100},
		{ID: 107, Name: "Headset", Price: 65000, StockQuantity: 40},
		{ID: 108, Name: "Laptop Stand", Price: 30000, StockQuantity: 60},
	} {
		p.Status = domain.ProductActive
		if p.StockQuantity == 0 {
			p.Status = domain.ProductOutOfStock
		}
		p.UpdatedAt = now
		s.Products.byID[p.ID] = p
	}

	start, end := now.AddDate(0, 0, -1), now.AddDate(0, 0, 30)
	for _, e := range []domain.CouponEvent{
		{ID: 501, Name: "10% Discount", DiscountType: domain.DiscountPercentage, DiscountValue: 10, TotalQuantity: 100, IssuedQuantity: 2, MinimumOrderAmount: 50000},
		{ID: 502, Name: "Welcome Coupon", DiscountType: domain.DiscountFixedAmount, DiscountValue: 5000, TotalQuantity: 50, IssuedQuantity: 50, MinimumOrderAmount: 30000},
		{ID: 503, Name: "Special 20%", DiscountType: domain.DiscountPercentage, DiscountValue: 20, TotalQuantity: 200, IssuedQuantity: 1, MinimumOrderAmount: 100000},
	} {
		e.StartDate, e.EndDate, e.Status = start, end, domain.CouponEventActive
		s.Coupons.events[e.ID] = e
	}

	for _, c := range []domain.Coupon{
		{ID: 3001, UserID: 1, CouponEventID: 501, CouponCode: "10DIS-100008"},
		{ID: 3002, UserID: 2, CouponEventID: 501, CouponCode: "10DIS-200006"},
		{ID: 3003, UserID: 3, CouponEventID: 503, CouponCode: "SPECI-300004"},
	} {
		c.Status, c.IssuedAt, c.ExpiredAt = domain.CouponAvailable, now, end
		s.Coupons.coupons[c.ID] = c
	}
	s.Coupons.nextID = 3004
}
