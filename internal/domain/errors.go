package domain

import "errors"

// Storage-level outcomes the services translate into error kinds.
var (
	ErrVersionConflict   = errors.New("version conflict")
	ErrInsufficientStock = errors.New("not enough stock")
	ErrInsufficientFunds = errors.New("not enough balance")
	ErrCouponSoldOut     = errors.New("coupon event sold out")
	ErrDuplicateCoupon   = errors.New("user already holds an available coupon for the event")
	ErrCouponCodeTaken   = errors.New("coupon code already taken")
	ErrPaymentExists     = errors.New("payment already recorded for order")
	ErrOrderNotPending   = errors.New("order is not pending")
	ErrCouponStateChange = errors.New("coupon is not in the expected state")
	ErrDuplicateLogin    = errors.New("login already registered")
)
