package productservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GlebRadaev/commerce/internal/apperr"
	"github.com/GlebRadaev/commerce/internal/domain"
	"github.com/GlebRadaev/commerce/pkg/clock"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

var now = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func NewMock(t *testing.T) (*Service, *MockRepo) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	return New(repo, clock.NewMockClock(now)), repo
}

func product(stock int) *domain.Product {
	status := domain.ProductActive
	if stock == 0 {
		status = domain.ProductOutOfStock
	}
	return &domain.Product{ID: 101, Name: "Wireless Mouse", Price: 25000, StockQuantity: stock, Status: status, Version: 4}
}

func TestCheckAvailability(t *testing.T) {
	service, repo := NewMock(t)

	tests := []struct {
		name         string
		quantity     int
		prepareMock  func()
		expectedKind apperr.Kind
	}{
		{
			name:     "Enough stock",
			quantity: 5,
			prepareMock: func() {
				repo.EXPECT().GetByID(gomock.Any(), 101).Return(product(5), nil)
			},
		},
		{
			name:     "Not enough stock",
			quantity: 6,
			prepareMock: func() {
				repo.EXPECT().GetByID(gomock.Any(), 101).Return(product(5), nil)
			},
			expectedKind: apperr.KindOutOfStock,
		},
		{
			name:     "Unknown product",
			quantity: 1,
			prepareMock: func() {
				repo.EXPECT().GetByID(gomock.Any(), 101).Return(nil, nil)
			},
			expectedKind: apperr.KindNotFound,
		},
		{
			name:         "Zero quantity",
			quantity:     0,
			prepareMock:  func() {},
			expectedKind: apperr.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			err := service.CheckAvailability(context.Background(), 101, tt.quantity)
			if tt.expectedKind == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.expectedKind, apperr.KindOf(err))
		})
	}
}

func TestCheckAvailability_Details(t *testing.T) {
	service, repo := NewMock(t)
	repo.EXPECT().GetByID(gomock.Any(), 101).Return(product(5), nil)

	err := service.CheckAvailability(context.Background(), 101, 6)

	e, ok := apperr.As(err)
	assert.True(t, ok)
	assert.Equal(t, 101, e.Details["productId"])
	assert.Equal(t, 6, e.Details["requested"])
	assert.Equal(t, 5, e.Details["available"])
}

func TestGetForOrder(t *testing.T) {
	service, repo := NewMock(t)

	tests := []struct {
		name         string
		ids          []int
		prepareMock  func()
		expectedKind apperr.Kind
	}{
		{
			name: "All products on sale",
			ids:  []int{101, 102},
			prepareMock: func() {
				repo.EXPECT().GetByIDs(gomock.Any(), []int{101, 102}).Return([]domain.Product{
					*product(5), {ID: 102, Name: "Keyboard", StockQuantity: 3, Status: domain.ProductActive},
				}, nil)
			},
		},
		{
			name: "Missing product",
			ids:  []int{101, 999},
			prepareMock: func() {
				repo.EXPECT().GetByIDs(gomock.Any(), []int{101, 999}).Return([]domain.Product{*product(5)}, nil)
			},
			expectedKind: apperr.KindNotFound,
		},
		{
			name: "Sold out product",
			ids:  []int{104},
			prepareMock: func() {
				repo.EXPECT().GetByIDs(gomock.Any(), []int{104}).Return([]domain.Product{
					{ID: 104, Name: "Webcam", Status: domain.ProductOutOfStock},
				}, nil)
			},
			expectedKind: apperr.KindProductUnavailable,
		},
		{
			name: "Storage failure",
			ids:  []int{101},
			prepareMock: func() {
				repo.EXPECT().GetByIDs(gomock.Any(), []int{101}).Return(nil, errors.New("db error"))
			},
			expectedKind: apperr.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			products, err := service.GetForOrder(context.Background(), tt.ids)
			if tt.expectedKind != "" {
				assert.Equal(t, tt.expectedKind, apperr.KindOf(err))
				assert.Nil(t, products)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, products, len(tt.ids))
		})
	}
}

func TestDecreaseStock(t *testing.T) {
	service, repo := NewMock(t)

	tests := []struct {
		name          string
		quantity      int
		prepareMock   func()
		expectedStock int
		expectedKind  apperr.Kind
		expectedErr   map[string]any
	}{
		{
			name:     "Decrement applied by the store",
			quantity: 2,
			prepareMock: func() {
				repo.EXPECT().AdjustStock(gomock.Any(), 101, -2, now).Return(product(3), nil)
			},
			expectedStock: 3,
		},
		{
			name:     "Stock taken by a concurrent buyer",
			quantity: 3,
			prepareMock: func() {
				gomock.InOrder(
					repo.EXPECT().AdjustStock(gomock.Any(), 101, -3, now).Return(nil, domain.ErrInsufficientStock),
					repo.EXPECT().GetByID(gomock.Any(), 101).Return(product(2), nil),
				)
			},
			expectedKind: apperr.KindOutOfStock,
			expectedErr:  map[string]any{"productId": 101, "requested": 3, "available": 2},
		},
		{
			name:     "Unknown product",
			quantity: 1,
			prepareMock: func() {
				repo.EXPECT().AdjustStock(gomock.Any(), 101, -1, now).Return(nil, domain.ErrInsufficientStock)
				repo.EXPECT().GetByID(gomock.Any(), 101).Return(nil, nil)
			},
			expectedKind: apperr.KindNotFound,
		},
		{
			name:     "Storage failure",
			quantity: 1,
			prepareMock: func() {
				repo.EXPECT().AdjustStock(gomock.Any(), 101, -1, now).Return(nil, errors.New("db error"))
			},
			expectedKind: apperr.KindInternal,
		},
		{
			name:         "Zero quantity",
			quantity:     0,
			prepareMock:  func() {},
			expectedKind: apperr.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			updated, err := service.DecreaseStock(context.Background(), 101, tt.quantity)
			if tt.expectedKind != "" {
				assert.Equal(t, tt.expectedKind, apperr.KindOf(err))
				assert.Nil(t, updated)
				if tt.expectedErr != nil {
					e, ok := apperr.As(err)
					assert.True(t, ok)
					for k, v := range tt.expectedErr {
						assert.Equal(t, v, e.Details[k])
					}
				}
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStock, updated.StockQuantity)
		})
	}
}

func TestIncreaseStock(t *testing.T) {
	service, repo := NewMock(t)

	repo.EXPECT().AdjustStock(gomock.Any(), 101, 2, now).Return(product(2), nil)

	updated, err := service.IncreaseStock(context.Background(), 101, 2)

	assert.NoError(t, err)
	assert.Equal(t, 2, updated.StockQuantity)
	assert.Equal(t, domain.ProductActive, updated.Status)
}

func TestIncreaseStock_UnknownProduct(t *testing.T) {
	service, repo := NewMock(t)

	repo.EXPECT().AdjustStock(gomock.Any(), 999, 1, now).Return(nil, domain.ErrInsufficientStock)
	repo.EXPECT().GetByID(gomock.Any(), 999).Return(nil, nil)

	updated, err := service.IncreaseStock(context.Background(), 999, 1)

	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Nil(t, updated)
}
