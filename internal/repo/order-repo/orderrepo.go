package orderrepo

import (
	"context"
	"fmt"

	"github.com/GlebRadaev/commerce/internal/domain"
	"github.com/GlebRadaev/commerce/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const constraintPaymentPerOrder = "payments_order_id_key"

const (
	orderColumns = `o.id, o.user_id, o.coupon_id, o.status, o.total_amount, o.discount_amount, o.final_amount, o.version, o.created_at, o.updated_at`

	queryInsertOrder = `
		INSERT INTO orders (user_id, coupon_id, status, total_amount, discount_amount, final_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id, version
	`
	queryInsertItem = `
		INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	queryGetOrder = `SELECT ` + orderColumns + ` FROM orders o WHERE o.id = $1`
	queryGetItems = `
		SELECT id, order_id, product_id, product_name, quantity, unit_price, total_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`
	queryGetPayment = `
		SELECT id, order_id, status, amount, balance_before, balance_after, failure_reason, created_at
		FROM payments
		WHERE order_id = $1
	`
	queryFinalizeOrder = `
		UPDATE orders
		SET status = $1, version = version + 1, updated_at = $2
		WHERE id = $3 AND version = $4 AND status = 'PENDING'
	`
	queryInsertPayment = `
		INSERT INTO payments (order_id, status, amount, balance_before, balance_after, failure_reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	queryCountByUser = `
		SELECT COUNT(*) FROM orders o
		WHERE o.user_id = $1 AND ($2::text = '' OR o.status = $2::text)
	`
	queryListByUserTmpl = `
		SELECT ` + orderColumns + `,
			(SELECT COUNT(*) FROM order_items i WHERE i.order_id = o.id) AS item_count
		FROM orders o
		WHERE o.user_id = $1 AND ($2::text = '' OR o.status = $2::text)
		ORDER BY %s %s, o.id %s
		LIMIT $3 OFFSET $4
	`
)

var sortColumns = map[string]string{
	"createdAt":   "o.created_at",
	"finalAmount": "o.final_amount",
}

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func orderDest(o *domain.Order) []any {
	return []any{&o.ID, &o.UserID, &o.CouponID, &o.Status, &o.TotalAmount, &o.DiscountAmount, &o.FinalAmount, &o.Version, &o.CreatedAt, &o.UpdatedAt}
}

// Create stores the order and its priced line items atomically.
func (r *Repository) Create(ctx context.Context, order *domain.Order, items []domain.OrderLineItem) (*domain.Order, []domain.OrderLineItem, error) {
	stored := make([]domain.OrderLineItem, len(items))
	copy(stored, items)

	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		err := r.db.QueryRow(ctx, queryInsertOrder,
			order.UserID, order.CouponID, order.Status, order.TotalAmount, order.DiscountAmount, order.FinalAmount, order.CreatedAt,
		).Scan(&order.ID, &order.Version)
		if err != nil {
			zap.L().Error("failed to insert order", zap.Error(err))
			return err
		}
		for i := range stored {
			item := &stored[i]
			item.OrderID = order.ID
			err := r.db.QueryRow(ctx, queryInsertItem,
				item.OrderID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice, item.TotalPrice,
			).Scan(&item.ID)
			if err != nil {
				zap.L().Error("failed to insert order item", zap.Error(err))
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	order.UpdatedAt = order.CreatedAt
	return order, stored, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*domain.Order, error) {
	var order domain.Order
	if err := r.db.QueryRow(ctx, queryGetOrder, id).Scan(orderDest(&order)...); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to get order", zap.Int("orderID", id), zap.Error(err))
		return nil, err
	}
	return &order, nil
}

func (r *Repository) GetItems(ctx context.Context, orderID int) ([]domain.OrderLineItem, error) {
	rows, err := r.db.Query(ctx, queryGetItems, orderID)
	if err != nil {
		zap.L().Error("failed to get order items", zap.Int("orderID", orderID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderLineItem
	for rows.Next() {
		var it domain.OrderLineItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *Repository) GetPayment(ctx context.Context, orderID int) (*domain.Payment, error) {
	var p domain.Payment
	err := r.db.QueryRow(ctx, queryGetPayment, orderID).
		Scan(&p.ID, &p.OrderID, &p.Status, &p.Amount, &p.BalanceBefore, &p.BalanceAfter, &p.FailureReason, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to get payment", zap.Int("orderID", orderID), zap.Error(err))
		return nil, err
	}
	return &p, nil
}

// Finalize moves a PENDING order to status and records its payment in one transaction.
func (r *Repository) Finalize(ctx context.Context, order *domain.Order, status domain.OrderStatus, payment domain.Payment) (*domain.Payment, error) {
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		tag, err := r.db.Exec(ctx, queryFinalizeOrder, status, payment.CreatedAt, order.ID, order.Version)
		if err != nil {
			zap.L().Error("failed to finalize order", zap.Int("orderID", order.ID), zap.Error(err))
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrOrderNotPending
		}
		err = r.db.QueryRow(ctx, queryInsertPayment,
			payment.OrderID, payment.Status, payment.Amount, payment.BalanceBefore, payment.BalanceAfter, payment.FailureReason, payment.CreatedAt,
		).Scan(&payment.ID)
		if pg.IsUniqueViolation(err, constraintPaymentPerOrder) {
			return domain.ErrPaymentExists
		}
		if err != nil {
			zap.L().Error("failed to insert payment", zap.Int("orderID", order.ID), zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	order.Status = status
	order.Version++
	order.UpdatedAt = payment.CreatedAt
	return &payment, nil
}

func listByUserQuery(sortBy, sortOrder string) string {
	column, ok := sortColumns[sortBy]
	if !ok {
		column = sortColumns["createdAt"]
	}
	if sortOrder != "ASC" {
		sortOrder = "DESC"
	}
	return fmt.Sprintf(queryListByUserTmpl, column, sortOrder, sortOrder)
}

func (r *Repository) ListByUser(ctx context.Context, userID int, filter domain.OrderFilter) ([]domain.OrderSummary, int, error) {
	status := string(filter.Status)

	var total int
	if err := r.db.QueryRow(ctx, queryCountByUser, userID, status).Scan(&total); err != nil {
		zap.L().Error("failed to count orders", zap.Error(err))
		return nil, 0, err
	}
	if total == 0 {
		return nil, 0, nil
	}

	rows, err := r.db.Query(ctx, listByUserQuery(filter.SortBy, filter.SortOrder), userID, status, filter.Size, (filter.Page-1)*filter.Size)
	if err != nil {
		zap.L().Error("failed to list orders", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	var orders []domain.OrderSummary
	for rows.Next() {
		var s domain.OrderSummary
		if err := rows.Scan(append(orderDest(&s.Order), &s.ItemCount)...); err != nil {
			zap.L().Error("failed to scan order", zap.Error(err))
			return nil, 0, err
		}
		orders = append(orders, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}
