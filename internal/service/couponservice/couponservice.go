package couponservice

//go:generate mockgen -source=couponservice.go -destination=mock_couponservice.go -package=couponservice

import (
	"context"
	"errors"
	"time"

	"github.com/GlebRadaev/commerce/internal/apperr"
	"github.com/GlebRadaev/commerce/internal/domain"
	"github.com/GlebRadaev/commerce/pkg/clock"
	"github.com/GlebRadaev/commerce/pkg/paging"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const maxCodeAttempts = 5

type Repo interface {
	GetEvent(ctx context.Context, id int) (*domain.CouponEvent, error)
	HasAvailableCoupon(ctx context.Context, userID, eventID int) (bool, error)
	Issue(ctx context.Context, coupon *domain.Coupon) (*domain.Coupon, error)
	GetCoupon(ctx context.Context, id int) (*domain.CouponWithEvent, error)
	MarkUsed(ctx context.Context, id int, usedAt time.Time) error
	Release(ctx context.Context, id int) error
	List(ctx context.Context, filter domain.CouponFilter) ([]domain.CouponWithEvent, int, error)
	ListExpirableEvents(ctx context.Context, now time.Time, limit int) ([]int, error)
	ExpireByEvent(ctx context.Context, eventID int, now time.Time) (int64, error)
}

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

// Service is the coupon allocator. The pool bound is enforced by Repo.Issue; the checks
// made here only fail fast with a precise error kind.
type Service struct {
	repo     Repo
	userRepo UserRepo
	clock    clock.Clock
	newCode  func(eventName string) string
}

func New(repo Repo, userRepo UserRepo, clk clock.Clock) *Service {
	return &Service{
		repo:     repo,
		userRepo: userRepo,
		clock:    clk,
		newCode:  GenerateCode,
	}
}

func (s *Service) Issue(ctx context.Context, userID, eventID int) (*domain.CouponWithEvent, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to find user", zap.Int("user_id", userID), zap.Error(err))
		return nil, apperr.Internal(err, "failed to find user")
	}
	if user == nil {
		return nil, apperr.New(apperr.KindNotFound, "user not found").With("userId", userID)
	}

	event, err := s.repo.GetEvent(ctx, eventID)
	if err != nil {
		zap.L().Error("failed to get coupon event", zap.Int("event_id", eventID), zap.Error(err))
		return nil, apperr.Internal(err, "failed to get coupon event")
	}
	if event == nil {
		return nil, apperr.New(apperr.KindNotFound, "coupon event not found").With("couponEventId", eventID)
	}

	now := s.clock.Now()
	if err := checkIssuanceWindow(event, now); err != nil {
		return nil, err
	}
	if event.IssuedQuantity >= event.TotalQuantity {
		return nil, exhausted(event)
	}

	held, err := s.repo.HasAvailableCoupon(ctx, userID, eventID)
	if err != nil {
		zap.L().Error("failed to check issued coupons", zap.Int("user_id", userID), zap.Error(err))
		return nil, apperr.Internal(err, "failed to check issued coupons")
	}
	if held {
		return nil, duplicate(userID, eventID)
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		coupon, err := s.repo.Issue(ctx, &domain.Coupon{
			UserID:        userID,
			CouponEventID: eventID,
			CouponCode:    s.newCode(event.Name),
			Status:        domain.CouponAvailable,
			IssuedAt:      now,
			ExpiredAt:     event.EndDate,
		})
		switch {
		case err == nil:
			event.IssuedQuantity++
			zap.L().Info("coupon issued",
				zap.Int("user_id", userID), zap.Int("event_id", eventID), zap.String("code", coupon.CouponCode))
			return &domain.CouponWithEvent{Coupon: *coupon, Event: *event}, nil
		case errors.Is(err, domain.ErrCouponCodeTaken):
			continue
		case errors.Is(err, domain.ErrCouponSoldOut):
			return nil, exhausted(event)
		case errors.Is(err, domain.ErrDuplicateCoupon):
			return nil, duplicate(userID, eventID)
		default:
			zap.L().Error("failed to issue coupon", zap.Int("event_id", eventID), zap.Error(err))
			return nil, apperr.Internal(err, "failed to issue coupon")
		}
	}
	return nil, apperr.Internal(errors.New("coupon code space exhausted"), "failed to allocate a unique coupon code")
}

func checkIssuanceWindow(event *domain.CouponEvent, now time.Time) error {
	switch {
	case now.After(event.EndDate) || event.Status == domain.CouponEventExpired:
		return apperr.New(apperr.KindIssuancePeriodExpired, "coupon issuance period has ended").
			With("couponEventId", event.ID).
			With("endDate", event.EndDate)
	case now.Before(event.StartDate) || event.Status != domain.CouponEventActive:
		return apperr.New(apperr.KindNotInIssuancePeriod, "coupon event is not issuing coupons").
			With("couponEventId", event.ID).
			With("startDate", event.StartDate).
			With("status", event.Status)
	}
	return nil
}

func exhausted(event *domain.CouponEvent) error {
	return apperr.New(apperr.KindCouponExhausted, "all coupons of the event have been issued").
		With("couponEventId", event.ID).
		With("totalQuantity", event.TotalQuantity)
}

func duplicate(userID, eventID int) error {
	return apperr.New(apperr.KindDuplicateIssuance, "user already holds a coupon of this event").
		With("userId", userID).
		With("couponEventId", eventID)
}

func (s *Service) Get(ctx context.Context, couponID int) (*domain.CouponWithEvent, error) {
	coupon, err := s.repo.GetCoupon(ctx, couponID)
	if err != nil {
		zap.L().Error("failed to get coupon", zap.Int("coupon_id", couponID), zap.Error(err))
		return nil, apperr.Internal(err, "failed to get coupon")
	}
	if coupon == nil {
		return nil, apperr.New(apperr.KindNotFound, "coupon not found").With("couponId", couponID)
	}
	return coupon, nil
}

func (s *Service) ValidateOwnership(ctx context.Context, couponID, userID int) error {
	coupon, err := s.Get(ctx, couponID)
	if err != nil {
		return err
	}
	if coupon.UserID != userID {
		return apperr.New(apperr.KindOwnershipMismatch, "coupon belongs to another user").
			With("couponId", couponID).
			With("userId", userID)
	}
	return nil
}

// ApplyToOrder prices the coupon against orderAmount. The coupon is not consumed.
func (s *Service) ApplyToOrder(ctx context.Context, couponID int, orderAmount int64) (*domain.AppliedCoupon, error) {
	coupon, err := s.Get(ctx, couponID)
	if err != nil {
		return nil, err
	}
	if coupon.Status != domain.CouponAvailable {
		return nil, apperr.New(apperr.KindCouponUnavailable, "coupon cannot be used").
			With("couponId", couponID).
			With("status", coupon.Status)
	}
	if coupon.ExpiredAt.Before(s.clock.Now()) {
		return nil, apperr.New(apperr.KindCouponExpired, "coupon has expired").
			With("couponId", couponID).
			With("expiredAt", coupon.ExpiredAt)
	}
	if orderAmount < coupon.Event.MinimumOrderAmount {
		return nil, apperr.New(apperr.KindMinimumAmountNotMet, "order amount is below the coupon minimum").
			With("orderAmount", orderAmount).
			With("minimumOrderAmount", coupon.Event.MinimumOrderAmount)
	}
	return &domain.AppliedCoupon{
		CouponID:       coupon.ID,
		CouponCode:     coupon.CouponCode,
		DiscountType:   coupon.Event.DiscountType,
		DiscountValue:  coupon.Event.DiscountValue,
		DiscountAmount: Discount(coupon.Event.DiscountType, coupon.Event.DiscountValue, orderAmount),
	}, nil
}

// Discount is floor(amount*value/100) for percentages and value for fixed amounts,
// never more than amount.
func Discount(kind domain.DiscountType, value, amount int64) int64 {
	var discount int64
	switch kind {
	case domain.DiscountPercentage:
		discount = decimal.NewFromInt(amount).
			Mul(decimal.NewFromInt(value)).
			Div(decimal.NewFromInt(100)).
			Floor().
			IntPart()
	case domain.DiscountFixedAmount:
		discount = value
	}
	if discount > amount {
		discount = amount
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}

func (s *Service) MarkUsed(ctx context.Context, couponID int) error {
	err := s.repo.MarkUsed(ctx, couponID, s.clock.Now())
	if errors.Is(err, domain.ErrCouponStateChange) {
		return apperr.New(apperr.KindCouponUnavailable, "coupon is no longer available").With("couponId", couponID)
	}
	if err != nil {
		zap.L().Error("failed to mark coupon used", zap.Int("coupon_id", couponID), zap.Error(err))
		return apperr.Internal(err, "failed to mark coupon used")
	}
	return nil
}

// Release undoes MarkUsed for a payment that did not go through.
func (s *Service) Release(ctx context.Context, couponID int) error {
	err := s.repo.Release(ctx, couponID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrCouponStateChange):
		return apperr.New(apperr.KindCouponUnavailable, "coupon is not in use").With("couponId", couponID)
	case errors.Is(err, domain.ErrDuplicateCoupon):
		return apperr.New(apperr.KindDuplicateIssuance, "user holds another coupon of this event").With("couponId", couponID)
	default:
		zap.L().Error("failed to release coupon", zap.Int("coupon_id", couponID), zap.Error(err))
		return apperr.Internal(err, "failed to release coupon")
	}
}

func (s *Service) List(ctx context.Context, userID int, status domain.CouponStatus, p paging.Params) (paging.Page[domain.CouponWithEvent], error) {
	var empty paging.Page[domain.CouponWithEvent]
	if err := p.Validate(); err != nil {
		return empty, err
	}
	switch status {
	case "", domain.CouponAvailable, domain.CouponUsed, domain.CouponExpired:
	default:
		return empty, apperr.New(apperr.KindValidation, "unknown coupon status").With("status", status)
	}

	coupons, total, err := s.repo.List(ctx, domain.CouponFilter{UserID: userID, Status: status, Page: p.Page, Size: p.Size})
	if err != nil {
		zap.L().Error("failed to list coupons", zap.Int("user_id", userID), zap.Error(err))
		return empty, apperr.Internal(err, "failed to list coupons")
	}
	return paging.NewPage(coupons, total, p), nil
}

func (s *Service) ExpirableEvents(ctx context.Context, limit int) ([]int, error) {
	ids, err := s.repo.ListExpirableEvents(ctx, s.clock.Now(), limit)
	if err != nil {
		return nil, apperr.Internal(err, "failed to list expirable coupon events")
	}
	return ids, nil
}

func (s *Service) ExpireEvent(ctx context.Context, eventID int) (int64, error) {
	n, err := s.repo.ExpireByEvent(ctx, eventID, s.clock.Now())
	if err != nil {
		return 0, apperr.Internal(err, "failed to expire coupons")
	}
	return n, nil
}
