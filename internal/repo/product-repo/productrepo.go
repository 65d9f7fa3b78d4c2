package productrepo

import (
	"context"
	"time"

	"github.com/GlebRadaev/commerce/internal/domain"
	"github.com/GlebRadaev/commerce/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	productColumns  = `id, name, price, stock_quantity, status, version, updated_at`
	queryGetProduct = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	queryGetByIDs   = `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1) ORDER BY id`
	queryAdjustStock = `
		UPDATE products
		SET stock_quantity = stock_quantity + $1,
		    status = CASE
		        WHEN status = 'ACTIVE' AND stock_quantity + $1 = 0 THEN 'OUT_OF_STOCK'
		        WHEN status = 'OUT_OF_STOCK' AND stock_quantity + $1 > 0 THEN 'ACTIVE'
		        ELSE status
		    END,
		    version = version + 1,
		    updated_at = $2
		WHERE id = $3 AND stock_quantity + $1 >= 0
		RETURNING ` + productColumns
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.StockQuantity, &p.Status, &p.Version, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*domain.Product, error) {
	product, err := scanProduct(r.db.QueryRow(ctx, queryGetProduct, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to get product", zap.Int("productID", id), zap.Error(err))
		return nil, err
	}
	return product, nil
}

func (r *Repository) GetByIDs(ctx context.Context, ids []int) ([]domain.Product, error) {
	rows, err := r.db.Query(ctx, queryGetByIDs, ids)
	if err != nil {
		zap.L().Error("failed to get products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			zap.L().Error("failed to scan product", zap.Error(err))
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// AdjustStock adds delta (negative to take units out) in a single conditional update. It returns
// domain.ErrInsufficientStock when the product is missing or the result would drop below zero.
func (r *Repository) AdjustStock(ctx context.Context, id, delta int, now time.Time) (*domain.Product, error) {
	updated, err := scanProduct(r.db.QueryRow(ctx, queryAdjustStock, delta, now, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrInsufficientStock
		}
		zap.L().Error("failed to adjust stock", zap.Int("productID", id), zap.Int("delta", delta), zap.Error(err))
		return nil, err
	}
	return updated, nil
}
