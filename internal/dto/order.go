package dto

import (
	"time"

	"github.com/GlebRadaev/commerce/internal/domain"
)

type OrderItemDTO struct {
	ProductID int `json:"productId" example:"101"`
	Quantity  int `json:"quantity" example:"2"`
}

type CreateOrderRequestDTO struct {
	UserID   int            `json:"userId" example:"1"`
	Items    []OrderItemDTO `json:"items"`
	CouponID *int           `json:"couponId,omitempty" example:"3001"`
}

type PaymentRequestDTO struct {
	UserID int `json:"userId" example:"1"`
}

type OrderLineDTO struct {
	ProductID   int    `json:"productId" example:"101"`
	ProductName string `json:"productName" example:"Wireless mouse"`
	UnitPrice   int64  `json:"unitPrice" example:"25000"`
	Quantity    int    `json:"quantity" example:"2"`
	TotalPrice  int64  `json:"totalPrice" example:"50000"`
}

type AppliedCouponDTO struct {
	CouponID       int    `json:"couponId" example:"3001"`
	CouponCode     string `json:"couponCode" example:"SPRIN-123455"`
	DiscountType   string `json:"discountType" example:"PERCENTAGE"`
	DiscountValue  int64  `json:"discountValue" example:"10"`
	DiscountAmount int64  `json:"discountAmount" example:"5000"`
}

type CreateOrderResponseDTO struct {
	OrderID        int               `json:"orderId" example:"1"`
	Status         string            `json:"status" example:"PENDING"`
	TotalAmount    int64             `json:"totalAmount" example:"50000"`
	DiscountAmount int64             `json:"discountAmount" example:"5000"`
	FinalAmount    int64             `json:"finalAmount" example:"45000"`
	Items          []OrderLineDTO    `json:"items"`
	Coupon         *AppliedCouponDTO `json:"coupon,omitempty"`
	CreatedAt      time.Time         `json:"createdAt" example:"2024-05-01T10:00:00Z"`
}

type PaymentResponseDTO struct {
	PaymentID     int       `json:"paymentId" example:"1"`
	OrderID       int       `json:"orderId" example:"1"`
	Status        string    `json:"status" example:"SUCCESS"`
	Amount        int64     `json:"amount" example:"45000"`
	BalanceBefore int64     `json:"balanceBefore" example:"100000"`
	BalanceAfter  int64     `json:"balanceAfter" example:"55000"`
	PaidAt        time.Time `json:"paidAt" example:"2024-05-01T10:00:00Z"`
}

type PaymentInfoDTO struct {
	PaymentID     int       `json:"paymentId" example:"1"`
	Status        string    `json:"status" example:"FAILED"`
	FailureReason string    `json:"failureReason,omitempty" example:"insufficient balance"`
	PaidAt        time.Time `json:"paidAt" example:"2024-05-01T10:00:00Z"`
}

type OrderResponseDTO struct {
	OrderID        int               `json:"orderId" example:"1"`
	UserID         int               `json:"userId" example:"1"`
	Status         string            `json:"status" example:"COMPLETED"`
	TotalAmount    int64             `json:"totalAmount" example:"50000"`
	DiscountAmount int64             `json:"discountAmount" example:"5000"`
	FinalAmount    int64             `json:"finalAmount" example:"45000"`
	Items          []OrderLineDTO    `json:"items"`
	Coupon         *AppliedCouponDTO `json:"coupon,omitempty"`
	Payment        *PaymentInfoDTO   `json:"payment,omitempty"`
	CreatedAt      time.Time         `json:"createdAt" example:"2024-05-01T10:00:00Z"`
	UpdatedAt      time.Time         `json:"updatedAt" example:"2024-05-01T10:00:05Z"`
}

type OrderSummaryDTO struct {
	OrderID        int       `json:"orderId" example:"1"`
	Status         string    `json:"status" example:"COMPLETED"`
	TotalAmount    int64     `json:"totalAmount" example:"50000"`
	DiscountAmount int64     `json:"discountAmount" example:"5000"`
	FinalAmount    int64     `json:"finalAmount" example:"45000"`
	ItemCount      int       `json:"itemCount" example:"2"`
	CreatedAt      time.Time `json:"createdAt" example:"2024-05-01T10:00:00Z"`
}

type OrderListResponseDTO struct {
	Items      []OrderSummaryDTO `json:"items"`
	Pagination PaginationDTO     `json:"pagination"`
}

func (r CreateOrderRequestDTO) Inputs() []domain.OrderItemInput {
	items := make([]domain.OrderItemInput, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, domain.OrderItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return items
}

func newLines(items []domain.OrderLineItem) []OrderLineDTO {
	lines := make([]OrderLineDTO, 0, len(items))
	for _, it := range items {
		lines = append(lines, OrderLineDTO{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			TotalPrice:  it.TotalPrice,
		})
	}
	return lines
}

func NewCreateOrderResponse(p *domain.PlacedOrder) CreateOrderResponseDTO {
	resp := CreateOrderResponseDTO{
		OrderID:        p.Order.ID,
		Status:         string(p.Order.Status),
		TotalAmount:    p.Order.TotalAmount,
		DiscountAmount: p.Order.DiscountAmount,
		FinalAmount:    p.Order.FinalAmount,
		Items:          newLines(p.Items),
		CreatedAt:      p.Order.CreatedAt,
	}
	if c := p.Coupon; c != nil {
		resp.Coupon = &AppliedCouponDTO{
			CouponID:       c.CouponID,
			CouponCode:     c.CouponCode,
			DiscountType:   string(c.DiscountType),
			DiscountValue:  c.DiscountValue,
			DiscountAmount: c.DiscountAmount,
		}
	}
	return resp
}

func NewPaymentResponse(p *domain.Payment) PaymentResponseDTO {
	return PaymentResponseDTO{
		PaymentID:     p.ID,
		OrderID:       p.OrderID,
		Status:        string(p.Status),
		Amount:        p.Amount,
		BalanceBefore: p.BalanceBefore,
		BalanceAfter:  p.BalanceAfter,
		PaidAt:        p.CreatedAt,
	}
}

func NewOrderResponse(d *domain.OrderDetails) OrderResponseDTO {
	resp := OrderResponseDTO{
		OrderID:        d.ID,
		UserID:         d.UserID,
		Status:         string(d.Status),
		TotalAmount:    d.TotalAmount,
		DiscountAmount: d.DiscountAmount,
		FinalAmount:    d.FinalAmount,
		Items:          newLines(d.Items),
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
	if c := d.Coupon; c != nil {
		resp.Coupon = &AppliedCouponDTO{
			CouponID:       c.ID,
			CouponCode:     c.CouponCode,
			DiscountType:   string(c.Event.DiscountType),
			DiscountValue:  c.Event.DiscountValue,
			DiscountAmount: d.DiscountAmount,
		}
	}
	if p := d.Payment; p != nil {
		resp.Payment = &PaymentInfoDTO{
			PaymentID:     p.ID,
			Status:        string(p.Status),
			FailureReason: p.FailureReason,
			PaidAt:        p.CreatedAt,
		}
	}
	return resp
}

func NewOrderSummary(o domain.OrderSummary) OrderSummaryDTO {
	return OrderSummaryDTO{
		OrderID:        o.ID,
		Status:         string(o.Status),
		TotalAmount:    o.TotalAmount,
		DiscountAmount: o.DiscountAmount,
		FinalAmount:    o.FinalAmount,
		ItemCount:      o.ItemCount,
		CreatedAt:      o.CreatedAt,
	}
}
