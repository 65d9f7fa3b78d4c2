package productservice

//go:generate mockgen -source=productservice.go -destination=mock_productservice.go -package=productservice

import (
	"context"
	"errors"
	"time"

	"github.com/GlebRadaev/commerce/internal/apperr"
	"github.com/GlebRadaev/commerce/internal/domain"
	"github.com/GlebRadaev/commerce/pkg/clock"
	"go.uber.org/zap"
)

type Repo interface {
	GetByID(ctx context.Context, id int) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []int) ([]domain.Product, error)
	AdjustStock(ctx context.Context, id, delta int, now time.Time) (*domain.Product, error)
}

// Service is the inventory manager. Stock writes are single conditional updates, so concurrent
// decrements never oversell and never need a retry.
type Service struct {
	repo  Repo
	clock clock.Clock
}

func New(repo Repo, clk clock.Clock) *Service {
	return &Service{
		repo:  repo,
		clock: clk,
	}
}

func notFound(productID int) error {
	return apperr.New(apperr.KindNotFound, "product not found").With("productId", productID)
}

func outOfStock(p *domain.Product, requested int) error {
	return apperr.New(apperr.KindOutOfStock, "not enough stock for "+p.Name).
		With("productId", p.ID).
		With("requested", requested).
		With("available", p.StockQuantity)
}

func validQuantity(quantity int) error {
	if quantity <= 0 {
		return apperr.New(apperr.KindValidation, "quantity must be positive").With("quantity", quantity)
	}
	return nil
}

func (s *Service) load(ctx context.Context, productID int) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		zap.L().Error("failed to get product", zap.Int("product_id", productID), zap.Error(err))
		return nil, apperr.Internal(err, "failed to get product")
	}
	if product == nil {
		return nil, notFound(productID)
	}
	return product, nil
}

// CheckAvailability is advisory: it reads stock without reserving it.
func (s *Service) CheckAvailability(ctx context.Context, productID, quantity int) error {
	if err := validQuantity(quantity); err != nil {
		return err
	}
	product, err := s.load(ctx, productID)
	if err != nil {
		return err
	}
	if product.StockQuantity < quantity {
		return outOfStock(product, quantity)
	}
	return nil
}

// GetForOrder loads every requested product and requires each to be on sale.
func (s *Service) GetForOrder(ctx context.Context, productIDs []int) (map[int]domain.Product, error) {
	products, err := s.repo.GetByIDs(ctx, productIDs)
	if err != nil {
		zap.L().Error("failed to get products", zap.Ints("product_ids", productIDs), zap.Error(err))
		return nil, apperr.Internal(err, "failed to get products")
	}
	byID := make(map[int]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, id := range productIDs {
		p, ok := byID[id]
		if !ok {
			return nil, notFound(id)
		}
		if p.Status != domain.ProductActive {
			return nil, apperr.New(apperr.KindProductUnavailable, "product "+p.Name+" is not on sale").
				With("productId", id).
				With("status", p.Status)
		}
	}
	return byID, nil
}

// DecreaseStock takes units out. Availability is decided by the write itself, not by an earlier read.
func (s *Service) DecreaseStock(ctx context.Context, productID, quantity int) (*domain.Product, error) {
	if err := validQuantity(quantity); err != nil {
		return nil, err
	}
	return s.adjust(ctx, productID, -quantity)
}

// IncreaseStock puts units back, reopening sales of a product that had sold out.
func (s *Service) IncreaseStock(ctx context.Context, productID, quantity int) (*domain.Product, error) {
	if err := validQuantity(quantity); err != nil {
		return nil, err
	}
	return s.adjust(ctx, productID, quantity)
}

func (s *Service) adjust(ctx context.Context, productID, delta int) (*domain.Product, error) {
	updated, err := s.repo.AdjustStock(ctx, productID, delta, s.clock.Now())
	if errors.Is(err, domain.ErrInsufficientStock) {
		product, loadErr := s.load(ctx, productID)
		if loadErr != nil {
			return nil, loadErr
		}
		if delta > 0 {
			return nil, apperr.Internal(err, "failed to update stock")
		}
		return nil, outOfStock(product, -delta)
	}
	if err != nil {
		zap.L().Error("failed to update stock", zap.Int("product_id", productID), zap.Int("delta", delta), zap.Error(err))
		return nil, apperr.Internal(err, "failed to update stock")
	}
	return updated, nil
}
