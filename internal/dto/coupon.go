package dto

import (
	"time"

	"github.com/GlebRadaev/commerce/internal/domain"
)

type IssueCouponRequestDTO struct {
	UserID        int `json:"userId" example:"1"`
	CouponEventID int `json:"couponEventId" example:"501"`
}

type CouponDTO struct {
	CouponID           int        `json:"couponId" example:"3004"`
	CouponCode         string     `json:"couponCode" example:"SPRIN-123455"`
	CouponEventID      int        `json:"couponEventId" example:"501"`
	EventName          string     `json:"eventName" example:"Spring sale"`
	DiscountType       string     `json:"discountType" example:"PERCENTAGE"`
	DiscountValue      int64      `json:"discountValue" example:"10"`
	MinimumOrderAmount int64      `json:"minimumOrderAmount" example:"10000"`
	Status             string     `json:"status" example:"AVAILABLE"`
	IssuedAt           time.Time  `json:"issuedAt" example:"2024-05-01T10:00:00Z"`
	UsedAt             *time.Time `json:"usedAt,omitempty"`
	ExpiredAt          time.Time  `json:"expiredAt" example:"2024-05-31T00:00:00Z"`
}

type CouponListResponseDTO struct {
	Items      []CouponDTO   `json:"items"`
	Pagination PaginationDTO `json:"pagination"`
}

func NewCoupon(c domain.CouponWithEvent) CouponDTO {
	return CouponDTO{
		CouponID:           c.ID,
		CouponCode:         c.CouponCode,
		CouponEventID:      c.CouponEventID,
		EventName:          c.Event.Name,
		DiscountType:       string(c.Event.DiscountType),
		DiscountValue:      c.Event.DiscountValue,
		MinimumOrderAmount: c.Event.MinimumOrderAmount,
		Status:             string(c.Status),
		IssuedAt:           c.IssuedAt,
		UsedAt:             c.UsedAt,
		ExpiredAt:          c.ExpiredAt,
	}
}
