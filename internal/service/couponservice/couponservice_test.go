package couponservice

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/GlebRadaev/commerce/internal/apperr"
	"github.com/GlebRadaev/commerce/internal/domain"
	"github.com/GlebRadaev/commerce/internal/repo/memstore"
	"github.com/GlebRadaev/commerce/pkg/clock"
	"github.com/GlebRadaev/commerce/pkg/paging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

var now = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func discountType(s string) domain.DiscountType { return domain.DiscountType(s) }

func NewMock(t *testing.T) (*Service, *MockRepo, *MockUserRepo) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	userRepo := NewMockUserRepo(ctrl)
	service := New(repo, userRepo, clock.NewMockClock(now))
	service.newCode = func(string) string { return "10DIS-100008" }
	return service, repo, userRepo
}

func event() *domain.CouponEvent {
	return &domain.CouponEvent{
		ID: 501, Name: "10% Discount", DiscountType: domain.DiscountPercentage, DiscountValue: 10,
		TotalQuantity: 100, IssuedQuantity: 2, MinimumOrderAmount: 50000,
		StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 0, 30), Status: domain.CouponEventActive,
	}
}

func TestIssue(t *testing.T) {
	service, repo, userRepo := NewMock(t)
	user := &domain.User{ID: 1}

	tests := []struct {
		name         string
		prepareMock  func()
		expectedKind apperr.Kind
	}{
		{
			name: "Coupon issued",
			prepareMock: func() {
				userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(user, nil)
				repo.EXPECT().GetEvent(gomock.Any(), 501).Return(event(), nil)
				repo.EXPECT().HasAvailableCoupon(gomock.Any(), 1, 501).Return(false, nil)
				repo.EXPECT().Issue(gomock.Any(), &domain.Coupon{
					UserID: 1, CouponEventID: 501, CouponCode: "10DIS-100008", Status: domain.CouponAvailable,
					IssuedAt: now, ExpiredAt: now.AddDate(0, 0, 30),
				}).DoAndReturn(func(_ context.Context, c *domain.Coupon) (*domain.Coupon, error) {
					c.ID = 3100
					return c, nil
				})
			},
		},
		{
			name: "Unknown user",
			prepareMock: func() {
				userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(nil, nil)
			},
			expectedKind: apperr.KindNotFound,
		},
		{
			name: "Unknown event",
			prepareMock: func() {
				userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(user, nil)
				repo.EXPECT().GetEvent(gomock.Any(), 501).Return(nil, nil)
			},
			expectedKind: apperr.KindNotFound,
		},
		{
			name: "Event not started",
			prepareMock: func() {
				e := event()
				e.StartDate = now.Add(time.Hour)
				userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(user, nil)
				repo.EXPECT().GetEvent(gomock.Any(), 501).Return(e, nil)
			},
			expectedKind: apperr.KindNotInIssuancePeriod,
		},
		{
			name: "Inactive event",
			prepareMock: func() {
				e := event()
				e.Status = domain.CouponEventInactive
				userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(user, nil)
				repo.EXPECT().GetEvent(gomock.Any(), 501).Return(e, nil)
			},
			expectedKind: apperr.KindNotInIssuancePeriod,
		},
		{
			name: "Event ended",
			prepareMock: func() {
				e := event()
				e.EndDate = now.Add(-time.Second)
				userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(user, nil)
				repo.EXPECT().GetEvent(gomock.Any(), 501).Return(e, nil)
			},
			expectedKind: apperr.KindIssuancePeriodExpired,
		},
		{
			name: "Pool already empty",
			prepareMock: func() {
				e := event()
				e.IssuedQuantity = e.TotalQuantity
				userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(user, nil)
				repo.EXPECT().GetEvent(gomock.Any(), 501).Return(e, nil)
			},
			expectedKind: apperr.KindCouponExhausted,
		},
		{
			name: "User already holds a coupon",
			prepareMock: func() {
				userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(user, nil)
				repo.EXPECT().GetEvent(gomock.Any(), 501).Return(event(), nil)
				repo.EXPECT().HasAvailableCoupon(gomock.Any(), 1, 501).Return(true, nil)
			},
			expectedKind: apperr.KindDuplicateIssuance,
		},
		{
			name: "Pool drained concurrently",
			prepareMock: func() {
				userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(user, nil)
				repo.EXPECT().GetEvent(gomock.Any(), 501).Return(event(), nil)
				repo.EXPECT().HasAvailableCoupon(gomock.Any(), 1, 501).Return(false, nil)
				repo.EXPECT().Issue(gomock.Any(), gomock.Any()).Return(nil, domain.ErrCouponSoldOut)
			},
			expectedKind: apperr.KindCouponExhausted,
		},
		{
			name: "Concurrent duplicate request",
			prepareMock: func() {
				userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(user, nil)
				repo.EXPECT().GetEvent(gomock.Any(), 501).Return(event(), nil)
				repo.EXPECT().HasAvailableCoupon(gomock.Any(), 1, 501).Return(false, nil)
				repo.EXPECT().Issue(gomock.Any(), gomock.Any()).Return(nil, domain.ErrDuplicateCoupon)
			},
			expectedKind: apperr.KindDuplicateIssuance,
		},
		{
			name: "Code collision is retried",
			prepareMock: func() {
				userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(user, nil)
				repo.EXPECT().GetEvent(gomock.Any(), 501).Return(event(), nil)
				repo.EXPECT().HasAvailableCoupon(gomock.Any(), 1, 501).Return(false, nil)
				gomock.InOrder(
					repo.EXPECT().Issue(gomock.Any(), gomock.Any()).Return(nil, domain.ErrCouponCodeTaken),
					repo.EXPECT().Issue(gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, c *domain.Coupon) (*domain.Coupon, error) { return c, nil }),
				)
			},
		},
		{
			name: "Storage failure",
			prepareMock: func() {
				userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(user, nil)
				repo.EXPECT().GetEvent(gomock.Any(), 501).Return(nil, errors.New("db error"))
			},
			expectedKind: apperr.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			coupon, err := service.Issue(context.Background(), 1, 501)
			if tt.expectedKind != "" {
				assert.Equal(t, tt.expectedKind, apperr.KindOf(err))
				assert.Nil(t, coupon)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, "10DIS-100008", coupon.CouponCode)
			assert.Equal(t, coupon.Event.EndDate, coupon.ExpiredAt)
			assert.Equal(t, 3, coupon.Event.IssuedQuantity)
		})
	}
}

func TestIssue_PoolBoundUnderConcurrency(t *testing.T) {
	store := memstore.New()
	store.Seed(now)
	for i := 0; i < 100; i++ {
		_, err := store.Users.Create(context.Background(), &domain.User{Login: fmt.Sprintf("user%d@test.com", i)})
		require.NoError(t, err)
	}
	service := New(store.Coupons, store.Users, clock.NewMockClock(now))

	// Event 501 has 98 coupons left; make it 1.
	for i := 0; i < 97; i++ {
		_, err := store.Coupons.Issue(context.Background(), &domain.Coupon{
			UserID: 10000 + i, CouponEventID: 501, CouponCode: fmt.Sprintf("FILL-%d", i), Status: domain.CouponAvailable,
		})
		require.NoError(t, err)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		kinds     = map[apperr.Kind]int{}
	)
	for userID := 4; userID < 104; userID++ {
		wg.Add(1)
		go func(userID int) {
			defer wg.Done()
			_, err := service.Issue(context.Background(), userID, 501)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
				return
			}
			kinds[apperr.KindOf(err)]++
		}(userID)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, map[apperr.Kind]int{apperr.KindCouponExhausted: 99}, kinds)
	e, err := store.Coupons.GetEvent(context.Background(), 501)
	require.NoError(t, err)
	assert.Equal(t, 100, e.IssuedQuantity)
}

func TestIssue_SecondAttemptIsDuplicate(t *testing.T) {
	store := memstore.New()
	store.Seed(now)
	service := New(store.Coupons, store.Users, clock.NewMockClock(now))

	_, err := service.Issue(context.Background(), 3, 501)
	require.NoError(t, err)
	_, err = service.Issue(context.Background(), 3, 501)
	assert.Equal(t, apperr.KindDuplicateIssuance, apperr.KindOf(err))
}

func couponWithEvent(status domain.CouponStatus, expiredAt time.Time) *domain.CouponWithEvent {
	return &domain.CouponWithEvent{
		Coupon: domain.Coupon{ID: 3001, UserID: 1, CouponEventID: 501, CouponCode: "10DIS-100008", Status: status, ExpiredAt: expiredAt},
		Event:  *event(),
	}
}

func TestApplyToOrder(t *testing.T) {
	service, repo, _ := NewMock(t)

	tests := []struct {
		name             string
		amount           int64
		coupon           *domain.CouponWithEvent
		expectedDiscount int64
		expectedKind     apperr.Kind
	}{
		{
			name:             "Percentage discount",
			amount:           70000,
			coupon:           couponWithEvent(domain.CouponAvailable, now.Add(time.Hour)),
			expectedDiscount: 7000,
		},
		{
			name:         "Unknown coupon",
			amount:       70000,
			expectedKind: apperr.KindNotFound,
		},
		{
			name:         "Used coupon",
			amount:       70000,
			coupon:       couponWithEvent(domain.CouponUsed, now.Add(time.Hour)),
			expectedKind: apperr.KindCouponUnavailable,
		},
		{
			name:         "Expired coupon",
			amount:       70000,
			coupon:       couponWithEvent(domain.CouponAvailable, now.Add(-time.Second)),
			expectedKind: apperr.KindCouponExpired,
		},
		{
			name:         "Below minimum amount",
			amount:       49999,
			coupon:       couponWithEvent(domain.CouponAvailable, now.Add(time.Hour)),
			expectedKind: apperr.KindMinimumAmountNotMet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo.EXPECT().GetCoupon(gomock.Any(), 3001).Return(tt.coupon, nil)

			applied, err := service.ApplyToOrder(context.Background(), 3001, tt.amount)
			if tt.expectedKind != "" {
				assert.Equal(t, tt.expectedKind, apperr.KindOf(err))
				assert.Nil(t, applied)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedDiscount, applied.DiscountAmount)
			assert.Equal(t, domain.DiscountPercentage, applied.DiscountType)
			assert.Equal(t, "10DIS-100008", applied.CouponCode)
		})
	}
}

func TestValidateOwnership(t *testing.T) {
	service, repo, _ := NewMock(t)

	repo.EXPECT().GetCoupon(gomock.Any(), 3001).Return(couponWithEvent(domain.CouponAvailable, now), nil).Times(2)
	assert.NoError(t, service.ValidateOwnership(context.Background(), 3001, 1))
	assert.Equal(t, apperr.KindOwnershipMismatch, apperr.KindOf(service.ValidateOwnership(context.Background(), 3001, 2)))

	repo.EXPECT().GetCoupon(gomock.Any(), 9).Return(nil, nil)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(service.ValidateOwnership(context.Background(), 9, 1)))
}

func TestMarkUsedAndRelease(t *testing.T) {
	service, repo, _ := NewMock(t)

	repo.EXPECT().MarkUsed(gomock.Any(), 3001, now).Return(nil)
	assert.NoError(t, service.MarkUsed(context.Background(), 3001))

	repo.EXPECT().MarkUsed(gomock.Any(), 3001, now).Return(domain.ErrCouponStateChange)
	assert.Equal(t, apperr.KindCouponUnavailable, apperr.KindOf(service.MarkUsed(context.Background(), 3001)))

	repo.EXPECT().Release(gomock.Any(), 3001).Return(nil)
	assert.NoError(t, service.Release(context.Background(), 3001))

	repo.EXPECT().Release(gomock.Any(), 3001).Return(domain.ErrDuplicateCoupon)
	assert.Equal(t, apperr.KindDuplicateIssuance, apperr.KindOf(service.Release(context.Background(), 3001)))

	repo.EXPECT().Release(gomock.Any(), 3001).Return(errors.New("db error"))
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(service.Release(context.Background(), 3001)))
}

func TestList(t *testing.T) {
	service, repo, _ := NewMock(t)

	t.Run("Filtered page", func(t *testing.T) {
		repo.EXPECT().List(gomock.Any(), domain.CouponFilter{UserID: 1, Status: domain.CouponAvailable, Page: 1, Size: 20}).
			Return([]domain.CouponWithEvent{*couponWithEvent(domain.CouponAvailable, now)}, 1, nil)

		page, err := service.List(context.Background(), 1, domain.CouponAvailable, paging.Params{Page: 1, Size: 20})

		assert.NoError(t, err)
		assert.Equal(t, 1, page.Total)
		assert.Equal(t, 1, page.TotalPages)
		assert.False(t, page.HasNext)
	})

	t.Run("Unknown status", func(t *testing.T) {
		_, err := service.List(context.Background(), 1, "LOST", paging.Params{Page: 1, Size: 20})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("Invalid page", func(t *testing.T) {
		_, err := service.List(context.Background(), 1, "", paging.Params{Page: 0, Size: 20})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}

func TestExpirableEvents(t *testing.T) {
	service, repo, _ := NewMock(t)

	repo.EXPECT().ListExpirableEvents(gomock.Any(), now, 100).Return([]int{501, 503}, nil)
	ids, err := service.ExpirableEvents(context.Background(), 100)
	assert.NoError(t, err)
	assert.Equal(t, []int{501, 503}, ids)

	repo.EXPECT().ListExpirableEvents(gomock.Any(), now, 100).Return(nil, errors.New("db down"))
	_, err = service.ExpirableEvents(context.Background(), 100)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}

func TestExpireEvent(t *testing.T) {
	service, repo, _ := NewMock(t)

	repo.EXPECT().ExpireByEvent(gomock.Any(), 501, now).Return(int64(2), nil)
	n, err := service.ExpireEvent(context.Background(), 501)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)

	repo.EXPECT().ExpireByEvent(gomock.Any(), 503, now).Return(int64(0), errors.New("db down"))
	_, err = service.ExpireEvent(context.Background(), 503)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}
