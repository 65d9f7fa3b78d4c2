package couponrepo

import (
	"context"
	"time"

	"github.com/GlebRadaev/commerce/internal/domain"
	"github.com/GlebRadaev/commerce/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	constraintAvailablePerUser = "coupons_user_event_available_key"
	constraintCouponCode       = "coupons_coupon_code_key"
)

const (
	eventColumns  = `e.id, e.name, e.discount_type, e.discount_value, e.total_quantity, e.issued_quantity, e.minimum_order_amount, e.start_date, e.end_date, e.status, e.version`
	couponColumns = `c.id, c.user_id, c.coupon_event_id, c.coupon_code, c.status, c.issued_at, c.used_at, c.expired_at`

	queryGetEvent     = `SELECT ` + eventColumns + ` FROM coupon_events e WHERE e.id = $1`
	queryHasAvailable = `
		SELECT EXISTS (
			SELECT 1 FROM coupons
			WHERE user_id = $1 AND coupon_event_id = $2 AND status = 'AVAILABLE'
		)
	`
	queryIncrementIssued = `
		UPDATE coupon_events
		SET issued_quantity = issued_quantity + 1, version = version + 1, updated_at = $2
		WHERE id = $1 AND issued_quantity < total_quantity
	`
	queryInsertCoupon = `
		INSERT INTO coupons (user_id, coupon_event_id, coupon_code, status, issued_at, expired_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	queryGetCoupon = `
		SELECT ` + couponColumns + `, ` + eventColumns + `
		FROM coupons c
		JOIN coupon_events e ON e.id = c.coupon_event_id
		WHERE c.id = $1
	`
	queryMarkUsed = `UPDATE coupons SET status = 'USED', used_at = $2 WHERE id = $1 AND status = 'AVAILABLE'`
	queryRelease  = `UPDATE coupons SET status = 'AVAILABLE', used_at = NULL WHERE id = $1 AND status = 'USED'`
	queryCount    = `
		SELECT COUNT(*) FROM coupons c
		WHERE c.user_id = $1 AND ($2::text = '' OR c.status = $2::text)
	`
	queryList = `
		SELECT ` + couponColumns + `, ` + eventColumns + `
		FROM coupons c
		JOIN coupon_events e ON e.id = c.coupon_event_id
		WHERE c.user_id = $1 AND ($2::text = '' OR c.status = $2::text)
		ORDER BY c.issued_at DESC, c.id DESC
		LIMIT $3 OFFSET $4
	`
	queryExpirableEvents = `
		SELECT DISTINCT coupon_event_id FROM coupons
		WHERE status = 'AVAILABLE' AND expired_at < $1
		ORDER BY coupon_event_id
		LIMIT $2
	`
	queryExpireByEvent = `
		UPDATE coupons SET status = 'EXPIRED'
		WHERE coupon_event_id = $1 AND status = 'AVAILABLE' AND expired_at < $2
	`
)

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

func eventDest(e *domain.CouponEvent) []any {
	return []any{&e.ID, &e.Name, &e.DiscountType, &e.DiscountValue, &e.TotalQuantity, &e.IssuedQuantity,
		&e.MinimumOrderAmount, &e.StartDate, &e.EndDate, &e.Status, &e.Version}
}

func couponDest(c *domain.CouponWithEvent) []any {
	dest := []any{&c.ID, &c.UserID, &c.CouponEventID, &c.CouponCode, &c.Status, &c.IssuedAt, &c.UsedAt, &c.ExpiredAt}
	return append(dest, eventDest(&c.Event)...)
}

func (r *Repository) GetEvent(ctx context.Context, id int) (*domain.CouponEvent, error) {
	var event domain.CouponEvent
	if err := r.db.QueryRow(ctx, queryGetEvent, id).Scan(eventDest(&event)...); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to get coupon event", zap.Int("eventID", id), zap.Error(err))
		return nil, err
	}
	return &event, nil
}

func (r *Repository) HasAvailableCoupon(ctx context.Context, userID, eventID int) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, queryHasAvailable, userID, eventID).Scan(&exists); err != nil {
		zap.L().Error("failed to check issued coupons", zap.Error(err))
		return false, err
	}
	return exists, nil
}

// Issue claims one slot of the event pool and mints the coupon in the same transaction.
// The pool check and the increment are a single conditional update, so the pool can never be overdrawn.
func (r *Repository) Issue(ctx context.Context, coupon *domain.Coupon) (*domain.Coupon, error) {
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		tag, err := r.db.Exec(ctx, queryIncrementIssued, coupon.CouponEventID, coupon.IssuedAt)
		if err != nil {
			zap.L().Error("failed to claim coupon slot", zap.Error(err))
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrCouponSoldOut
		}

		err = r.db.QueryRow(ctx, queryInsertCoupon,
			coupon.UserID, coupon.CouponEventID, coupon.CouponCode, coupon.Status, coupon.IssuedAt, coupon.ExpiredAt,
		).Scan(&coupon.ID)
		switch {
		case err == nil:
			return nil
		case pg.IsUniqueViolation(err, constraintAvailablePerUser):
			return domain.ErrDuplicateCoupon
		case pg.IsUniqueViolation(err, constraintCouponCode):
			return domain.ErrCouponCodeTaken
		default:
			zap.L().Error("failed to insert coupon", zap.Error(err))
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return coupon, nil
}

func (r *Repository) GetCoupon(ctx context.Context, id int) (*domain.CouponWithEvent, error) {
	var c domain.CouponWithEvent
	if err := r.db.QueryRow(ctx, queryGetCoupon, id).Scan(couponDest(&c)...); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to get coupon", zap.Int("couponID", id), zap.Error(err))
		return nil, err
	}
	return &c, nil
}

func (r *Repository) MarkUsed(ctx context.Context, id int, usedAt time.Time) error {
	return r.transition(ctx, queryMarkUsed, id, usedAt)
}

func (r *Repository) Release(ctx context.Context, id int) error {
	return r.transition(ctx, queryRelease, id)
}

func (r *Repository) transition(ctx context.Context, query string, args ...any) error {
	tag, err := r.db.Exec(ctx, query, args...)
	if pg.IsUniqueViolation(err, constraintAvailablePerUser) {
		return domain.ErrDuplicateCoupon
	}
	if err != nil {
		zap.L().Error("failed to change coupon status", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCouponStateChange
	}
	return nil
}

func (r *Repository) List(ctx context.Context, filter domain.CouponFilter) ([]domain.CouponWithEvent, int, error) {
	status := string(filter.Status)

	var total int
	if err := r.db.QueryRow(ctx, queryCount, filter.UserID, status).Scan(&total); err != nil {
		zap.L().Error("failed to count coupons", zap.Error(err))
		return nil, 0, err
	}
	if total == 0 {
		return nil, 0, nil
	}

	rows, err := r.db.Query(ctx, queryList, filter.UserID, status, filter.Size, (filter.Page-1)*filter.Size)
	if err != nil {
		zap.L().Error("failed to list coupons", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	var coupons []domain.CouponWithEvent
	for rows.Next() {
		var c domain.CouponWithEvent
		if err := rows.Scan(couponDest(&c)...); err != nil {
			zap.L().Error("failed to scan coupon", zap.Error(err))
			return nil, 0, err
		}
		coupons = append(coupons, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return coupons, total, nil
}

func (r *Repository) ListExpirableEvents(ctx context.Context, now time.Time, limit int) ([]int, error) {
	rows, err := r.db.Query(ctx, queryExpirableEvents, now, limit)
	if err != nil {
		zap.L().Error("failed to find expirable coupons", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *Repository) ExpireByEvent(ctx context.Context, eventID int, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, queryExpireByEvent, eventID, now)
	if err != nil {
		zap.L().Error("failed to expire coupons", zap.Int("eventID", eventID), zap.Error(err))
		return 0, err
	}
	return tag.RowsAffected(), nil
}
