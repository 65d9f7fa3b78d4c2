package balancerepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/GlebRadaev/commerce/internal/domain"
	"github.com/GlebRadaev/commerce/internal/pg"
	"go.uber.org/zap"
)

const (
	queryGetBalance = `
		SELECT id, user_id, current_balance, daily_charge_amount, daily_charge_date, updated_at, version
		FROM balances
		WHERE user_id = $1
	`
	queryCreateBalance = `
		INSERT INTO balances (user_id, current_balance, daily_charge_amount, daily_charge_date, updated_at)
		VALUES ($1, 0, 0, $2, $2)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING id, user_id, current_balance, daily_charge_amount, daily_charge_date, updated_at, version
	`
	queryUpdateBalance = `
		UPDATE balances
		SET current_balance = $1, daily_charge_amount = $2, daily_charge_date = $3, updated_at = $4, version = version + 1
		WHERE user_id = $5 AND version = $6
	`
	queryAdjustBalance = `
		UPDATE balances
		SET current_balance = current_balance + $1, updated_at = $2, version = version + 1
		WHERE user_id = $3 AND current_balance + $1 >= 0
		RETURNING current_balance
	`
	queryInsertTransaction = `
		INSERT INTO balance_transactions (user_id, transaction_type, amount, balance_before, balance_after, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	queryCountTransactions = `SELECT COUNT(*) FROM balance_transactions WHERE user_id = $1`
	queryListTransactions  = `
		SELECT id, user_id, transaction_type, amount, balance_before, balance_after, description, created_at
		FROM balance_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
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

func scanBalance(row pgx.Row) (*domain.Balance, error) {
	var b domain.Balance
	err := row.Scan(&b.ID, &b.UserID, &b.CurrentBalance, &b.DailyChargeAmount, &b.DailyChargeDate, &b.UpdatedAt, &b.Version)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *Repository) GetUserBalance(ctx context.Context, userID int) (*domain.Balance, error) {
	balance, err := scanBalance(r.db.QueryRow(ctx, queryGetBalance, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to get user balance", zap.Error(err))
		return nil, err
	}
	return balance, nil
}

// CreateUserBalance inserts a zero balance. A concurrent creator wins silently and its row is returned.
func (r *Repository) CreateUserBalance(ctx context.Context, balance *domain.Balance) (*domain.Balance, error) {
	created, err := scanBalance(r.db.QueryRow(ctx, queryCreateBalance, balance.UserID, balance.UpdatedAt))
	if err == pgx.ErrNoRows {
		return r.GetUserBalance(ctx, balance.UserID)
	}
	if err != nil {
		zap.L().Error("failed to create user balance", zap.Error(err))
		return nil, err
	}
	return created, nil
}

// ApplyTransaction stores the new balance state if balance.Version is still current and appends txn.
// A stale version yields domain.ErrVersionConflict.
func (r *Repository) ApplyTransaction(ctx context.Context, balance *domain.Balance, txn domain.BalanceTransaction) (*domain.BalanceTransaction, error) {
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		tag, err := r.db.Exec(ctx, queryUpdateBalance,
			balance.CurrentBalance, balance.DailyChargeAmount, balance.DailyChargeDate, balance.UpdatedAt,
			balance.UserID, balance.Version,
		)
		if err != nil {
			zap.L().Error("failed to update user balance", zap.Error(err))
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrVersionConflict
		}
		err = r.db.QueryRow(ctx, queryInsertTransaction,
			txn.UserID, txn.Type, txn.Amount, txn.BalanceBefore, txn.BalanceAfter, txn.Description, txn.CreatedAt,
		).Scan(&txn.ID)
		if err != nil {
			zap.L().Error("failed to insert balance transaction", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	balance.Version++
	return &txn, nil
}

// AdjustBalance adds delta to the balance in one conditional update and appends txn with the
// before/after snapshot read from that update. domain.ErrInsufficientFunds means there is no balance
// row or it would go negative.
func (r *Repository) AdjustBalance(ctx context.Context, delta int64, txn domain.BalanceTransaction) (*domain.BalanceTransaction, error) {
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		var after int64
		err := r.db.QueryRow(ctx, queryAdjustBalance, delta, txn.CreatedAt, txn.UserID).Scan(&after)
		if err == pgx.ErrNoRows {
			return domain.ErrInsufficientFunds
		}
		if err != nil {
			zap.L().Error("failed to adjust user balance", zap.Int("userID", txn.UserID), zap.Error(err))
			return err
		}
		txn.BalanceBefore, txn.BalanceAfter = after-delta, after

		err = r.db.QueryRow(ctx, queryInsertTransaction,
			txn.UserID, txn.Type, txn.Amount, txn.BalanceBefore, txn.BalanceAfter, txn.Description, txn.CreatedAt,
		).Scan(&txn.ID)
		if err != nil {
			zap.L().Error("failed to insert balance transaction", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *Repository) ListTransactions(ctx context.Context, userID, limit, offset int) ([]domain.BalanceTransaction, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, queryCountTransactions, userID).Scan(&total); err != nil {
		zap.L().Error("failed to count balance transactions", zap.Error(err))
		return nil, 0, err
	}
	if total == 0 {
		return nil, 0, nil
	}

	rows, err := r.db.Query(ctx, queryListTransactions, userID, limit, offset)
	if err != nil {
		zap.L().Error("failed to list balance transactions", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	var txns []domain.BalanceTransaction
	for rows.Next() {
		var t domain.BalanceTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.BalanceBefore, &t.BalanceAfter, &t.Description, &t.CreatedAt); err != nil {
			zap.L().Error("failed to scan balance transaction", zap.Error(err))
			return nil, 0, err
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}
