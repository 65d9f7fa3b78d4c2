package domain

import "time"

const (
	DailyChargeLimit int64 = 1_000_000
	MaxBalanceLimit  int64 = 10_000_000
)

type User struct {
	ID           int       `db:"id"`
	Login        string    `db:"login"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// Session is what a successful register or login hands back to the client.
// Balance is set only on registration.
type Session struct {
	User      *User
	Balance   *Balance
	Token     string
	ExpiresAt time.Time
}

type Balance struct {
	ID                int       `db:"id"`
	UserID            int       `db:"user_id"`
	CurrentBalance    int64     `db:"current_balance"`
	DailyChargeAmount int64     `db:"daily_charge_amount"`
	DailyChargeDate   time.Time `db:"daily_charge_date"`
	UpdatedAt         time.Time `db:"updated_at"`
	Version           int       `db:"version"`
}

type TransactionType string

const (
	TransactionCharge TransactionType = "CHARGE"
	TransactionUse    TransactionType = "USE"
	TransactionRefund TransactionType = "REFUND"
)

type BalanceTransaction struct {
	ID            int             `db:"id"`
	UserID        int             `db:"user_id"`
	Type          TransactionType `db:"transaction_type"`
	Amount        int64           `db:"amount"`
	BalanceBefore int64           `db:"balance_before"`
	BalanceAfter  int64           `db:"balance_after"`
	Description   string          `db:"description"`
	CreatedAt     time.Time       `db:"created_at"`
}

type ProductStatus string

const (
	ProductActive     ProductStatus = "ACTIVE"
	ProductInactive   ProductStatus = "INACTIVE"
	ProductOutOfStock ProductStatus = "OUT_OF_STOCK"
)

type Product struct {
	ID            int           `db:"id"`
	Name          string        `db:"name"`
	Price         int64         `db:"price"`
	StockQuantity int           `db:"stock_quantity"`
	Status        ProductStatus `db:"status"`
	Version       int           `db:"version"`
	UpdatedAt     time.Time     `db:"updated_at"`
}

type DiscountType string

const (
	DiscountPercentage  DiscountType = "PERCENTAGE"
	DiscountFixedAmount DiscountType = "FIXED_AMOUNT"
)

type CouponEventStatus string

const (
	CouponEventActive   CouponEventStatus = "ACTIVE"
	CouponEventInactive CouponEventStatus = "INACTIVE"
	CouponEventExpired  CouponEventStatus = "EXPIRED"
)

type CouponEvent struct {
	ID                 int               `db:"id"`
	Name               string            `db:"name"`
	DiscountType       DiscountType      `db:"discount_type"`
	DiscountValue      int64             `db:"discount_value"`
	TotalQuantity      int               `db:"total_quantity"`
	IssuedQuantity     int               `db:"issued_quantity"`
	MinimumOrderAmount int64             `db:"minimum_order_amount"`
	StartDate          time.Time         `db:"start_date"`
	EndDate            time.Time         `db:"end_date"`
	Status             CouponEventStatus `db:"status"`
	Version            int               `db:"version"`
}

type CouponStatus string

const (
	CouponAvailable CouponStatus = "AVAILABLE"
	CouponUsed      CouponStatus = "USED"
	CouponExpired   CouponStatus = "EXPIRED"
)

type Coupon struct {
	ID            int          `db:"id"`
	UserID        int          `db:"user_id"`
	CouponEventID int          `db:"coupon_event_id"`
	CouponCode    string       `db:"coupon_code"`
	Status        CouponStatus `db:"status"`
	IssuedAt      time.Time    `db:"issued_at"`
	UsedAt        *time.Time   `db:"used_at"`
	ExpiredAt     time.Time    `db:"expired_at"`
}

// CouponWithEvent is a coupon joined with the event it was minted from.
type CouponWithEvent struct {
	Coupon
	Event CouponEvent
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderFailed    OrderStatus = "FAILED"
)

type Order struct {
	ID             int         `db:"id"`
	UserID         int         `db:"user_id"`
	CouponID       *int        `db:"coupon_id"`
	Status         OrderStatus `db:"status"`
	TotalAmount    int64       `db:"total_amount"`
	DiscountAmount int64       `db:"discount_amount"`
	FinalAmount    int64       `db:"final_amount"`
	Version        int         `db:"version"`
	CreatedAt      time.Time   `db:"created_at"`
	UpdatedAt      time.Time   `db:"updated_at"`
}

type OrderLineItem struct {
	ID          int    `db:"id"`
	OrderID     int    `db:"order_id"`
	ProductID   int    `db:"product_id"`
	ProductName string `db:"product_name"`
	Quantity    int    `db:"quantity"`
	UnitPrice   int64  `db:"unit_price"`
	TotalPrice  int64  `db:"total_price"`
}

type PaymentStatus string

const (
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailed  PaymentStatus = "FAILED"
)

type Payment struct {
	ID            int           `db:"id"`
	OrderID       int           `db:"order_id"`
	Status        PaymentStatus `db:"status"`
	Amount        int64         `db:"amount"`
	BalanceBefore int64         `db:"balance_before"`
	BalanceAfter  int64         `db:"balance_after"`
	FailureReason string        `db:"failure_reason"`
	CreatedAt     time.Time     `db:"created_at"`
}

// OrderSummary is a row of the user's order listing.
type OrderSummary struct {
	Order
	ItemCount int `db:"item_count"`
}

type OrderFilter struct {
	Status    OrderStatus
	SortBy    string
	SortOrder string
	Page      int
	Size      int
}

type CouponFilter struct {
	UserID int
	Status CouponStatus
	Page   int
	Size   int
}

// OrderDetails is the read projection of an order with everything it references.
type OrderDetails struct {
	Order
	Items   []OrderLineItem
	Coupon  *CouponWithEvent
	Payment *Payment
}

// ChargeResult is the outcome of a successful balance top-up.
type ChargeResult struct {
	ChargedAmount int64
	NewBalance    int64
	Transaction   BalanceTransaction
}

// AppliedCoupon is the discount a coupon grants to a given order amount.
type AppliedCoupon struct {
	CouponID       int
	CouponCode     string
	DiscountType   DiscountType
	DiscountValue  int64
	DiscountAmount int64
}

type OrderItemInput struct {
	ProductID int
	Quantity  int
}

// PlacedOrder is a freshly created order with its priced lines and the coupon applied to it.
type PlacedOrder struct {
	Order  Order
	Items  []OrderLineItem
	Coupon *AppliedCoupon
}
