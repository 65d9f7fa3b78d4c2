package balanceservice

//go:generate mockgen -source=balanceservice.go -destination=mock_balanceservice.go -package=balanceservice

import (
	"context"
	"errors"
	"time"

	"github.com/GlebRadaev/commerce/internal/apperr"
	"github.com/GlebRadaev/commerce/internal/domain"
	"github.com/GlebRadaev/commerce/pkg/clock"
	"github.com/GlebRadaev/commerce/pkg/paging"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

const (
	baseBackoff = 2 * time.Millisecond
	maxBackoff  = 50 * time.Millisecond
)

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

type BalanceRepo interface {
	GetUserBalance(ctx context.Context, userID int) (*domain.Balance, error)
	CreateUserBalance(ctx context.Context, balance *domain.Balance) (*domain.Balance, error)
	ApplyTransaction(ctx context.Context, balance *domain.Balance, txn domain.BalanceTransaction) (*domain.BalanceTransaction, error)
	AdjustBalance(ctx context.Context, delta int64, txn domain.BalanceTransaction) (*domain.BalanceTransaction, error)
	ListTransactions(ctx context.Context, userID, limit, offset int) ([]domain.BalanceTransaction, int, error)
}

// Service is the balance ledger. Charges are version-checked writes retried on conflict; debits and
// refunds are single conditional updates.
type Service struct {
	userRepo    UserRepo
	balanceRepo BalanceRepo
	clock       clock.Clock
	loc         *time.Location
	backoff     func() retry.Backoff
}

func New(userRepo UserRepo, balanceRepo BalanceRepo, clk clock.Clock, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		userRepo:    userRepo,
		balanceRepo: balanceRepo,
		clock:       clk,
		loc:         loc,
		backoff:     conflictBackoff,
	}
}

// conflictBackoff never stops on its own; a charge keeps retrying until its context ends.
func conflictBackoff() retry.Backoff {
	b := retry.NewExponential(baseBackoff)
	b = retry.WithJitterPercent(50, b)
	return retry.WithCappedDuration(maxBackoff, b)
}

func (s *Service) sameDay(a, b time.Time) bool {
	ay, am, ad := a.In(s.loc).Date()
	by, bm, bd := b.In(s.loc).Date()
	return ay == by && am == bm && ad == bd
}

// rollDay zeroes the daily counter when the last charge happened on an earlier calendar day.
func (s *Service) rollDay(balance *domain.Balance, now time.Time) {
	if !s.sameDay(balance.DailyChargeDate, now) {
		balance.DailyChargeAmount = 0
		balance.DailyChargeDate = now
	}
}

func (s *Service) ensureUser(ctx context.Context, userID int) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to find user", zap.Int("user_id", userID), zap.Error(err))
		return apperr.Internal(err, "failed to find user")
	}
	if user == nil {
		return apperr.New(apperr.KindNotFound, "user not found").With("userId", userID)
	}
	return nil
}

func (s *Service) loadOrCreate(ctx context.Context, userID int) (*domain.Balance, error) {
	balance, err := s.balanceRepo.GetUserBalance(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get balance", zap.Int("user_id", userID), zap.Error(err))
		return nil, apperr.Internal(err, "failed to get balance")
	}
	if balance != nil {
		return balance, nil
	}
	balance, err = s.balanceRepo.CreateUserBalance(ctx, &domain.Balance{UserID: userID, UpdatedAt: s.clock.Now()})
	if err != nil {
		zap.L().Error("failed to create balance", zap.Int("user_id", userID), zap.Error(err))
		return nil, apperr.Internal(err, "failed to create balance")
	}
	return balance, nil
}

func (s *Service) loadExisting(ctx context.Context, userID int) (*domain.Balance, error) {
	balance, err := s.balanceRepo.GetUserBalance(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get balance", zap.Int("user_id", userID), zap.Error(err))
		return nil, apperr.Internal(err, "failed to get balance")
	}
	if balance == nil {
		return nil, apperr.New(apperr.KindNotFound, "balance not found").With("userId", userID)
	}
	return balance, nil
}

// mutate runs read-modify-write cycles until one lands on an unchanged version. Conflicts back off
// and only give up once ctx ends.
func (s *Service) mutate(
	ctx context.Context,
	userID int,
	apply func(balance *domain.Balance, now time.Time) (domain.BalanceTransaction, error),
) (*domain.Balance, *domain.BalanceTransaction, error) {
	var (
		balance  *domain.Balance
		stored   *domain.BalanceTransaction
		attempts int
	)
	err := retry.Do(ctx, s.backoff(), func(ctx context.Context) error {
		attempts++
		current, err := s.loadOrCreate(ctx, userID)
		if err != nil {
			return err
		}
		now := s.clock.Now()
		txn, err := apply(current, now)
		if err != nil {
			return err
		}
		current.UpdatedAt = now
		txn.UserID = userID
		txn.CreatedAt = now

		applied, err := s.balanceRepo.ApplyTransaction(ctx, current, txn)
		if errors.Is(err, domain.ErrVersionConflict) {
			zap.L().Debug("balance version conflict, retrying", zap.Int("user_id", userID), zap.Int("attempt", attempts))
			return retry.RetryableError(err)
		}
		if err != nil {
			zap.L().Error("failed to apply balance transaction", zap.Int("user_id", userID), zap.Error(err))
			return apperr.Internal(err, "failed to apply balance transaction")
		}
		balance, stored = current, applied
		return nil
	})
	if err == nil {
		return balance, stored, nil
	}
	if _, ok := apperr.As(err); ok {
		return nil, nil, err
	}
	if attempts == 0 {
		return nil, nil, apperr.Internal(err, "failed to apply balance transaction")
	}
	return nil, nil, apperr.New(apperr.KindConflict, "balance is being modified concurrently, try again").
		With("userId", userID).
		With("attempts", attempts)
}

// adjust moves money without touching the daily counter. A missing balance row is NotFound; a debit
// the balance cannot cover is InsufficientBalance.
func (s *Service) adjust(ctx context.Context, userID int, delta int64, txn domain.BalanceTransaction) (*domain.BalanceTransaction, error) {
	txn.UserID = userID
	txn.CreatedAt = s.clock.Now()

	stored, err := s.balanceRepo.AdjustBalance(ctx, delta, txn)
	if errors.Is(err, domain.ErrInsufficientFunds) {
		balance, err := s.loadExisting(ctx, userID)
		if err != nil {
			return nil, err
		}
		return nil, apperr.New(apperr.KindInsufficientBalance, "insufficient balance").
			With("required", txn.Amount).
			With("available", balance.CurrentBalance)
	}
	if err != nil {
		zap.L().Error("failed to adjust balance", zap.Int("user_id", userID), zap.Int64("delta", delta), zap.Error(err))
		return nil, apperr.Internal(err, "failed to apply balance transaction")
	}
	return stored, nil
}

func (s *Service) Charge(ctx context.Context, userID int, amount int64) (*domain.ChargeResult, error) {
	if amount <= 0 {
		return nil, apperr.New(apperr.KindValidation, "charge amount must be positive").With("amount", amount)
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	balance, txn, err := s.mutate(ctx, userID, func(b *domain.Balance, now time.Time) (domain.BalanceTransaction, error) {
		s.rollDay(b, now)
		if amount > domain.DailyChargeLimit-b.DailyChargeAmount {
			return domain.BalanceTransaction{}, apperr.New(apperr.KindDailyLimitExceeded, "daily charge limit exceeded").
				With("amount", amount).
				With("dailyChargeAmount", b.DailyChargeAmount).
				With("limit", domain.DailyChargeLimit)
		}
		if amount > domain.MaxBalanceLimit-b.CurrentBalance {
			return domain.BalanceTransaction{}, apperr.New(apperr.KindBalanceCapExceeded, "maximum balance exceeded").
				With("amount", amount).
				With("currentBalance", b.CurrentBalance).
				With("limit", domain.MaxBalanceLimit)
		}
		before := b.CurrentBalance
		b.CurrentBalance += amount
		b.DailyChargeAmount += amount
		b.DailyChargeDate = now
		return domain.BalanceTransaction{
			Type:          domain.TransactionCharge,
			Amount:        amount,
			BalanceBefore: before,
			BalanceAfter:  b.CurrentBalance,
			Description:   "balance charge",
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &domain.ChargeResult{
		ChargedAmount: amount,
		NewBalance:    balance.CurrentBalance,
		Transaction:   *txn,
	}, nil
}

func (s *Service) Deduct(ctx context.Context, userID int, amount int64, description string) (*domain.BalanceTransaction, error) {
	if amount <= 0 {
		return nil, apperr.New(apperr.KindValidation, "deduct amount must be positive").With("amount", amount)
	}
	return s.adjust(ctx, userID, -amount, domain.BalanceTransaction{
		Type:        domain.TransactionUse,
		Amount:      amount,
		Description: description,
	})
}

// Refund returns money taken by Deduct. It is not a charge, so neither the daily limit nor the cap applies.
func (s *Service) Refund(ctx context.Context, userID int, amount int64, description string) (*domain.BalanceTransaction, error) {
	if amount <= 0 {
		return nil, apperr.New(apperr.KindValidation, "refund amount must be positive").With("amount", amount)
	}
	return s.adjust(ctx, userID, amount, domain.BalanceTransaction{
		Type:        domain.TransactionRefund,
		Amount:      amount,
		Description: description,
	})
}

// GetBalance returns the user's balance, creating an empty one on first access.
// The daily counter is reported for the current day.
func (s *Service) GetBalance(ctx context.Context, userID int) (*domain.Balance, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	balance, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.rollDay(balance, s.clock.Now())
	return balance, nil
}

func (s *Service) CreateBalance(ctx context.Context, userID int) (*domain.Balance, error) {
	balance, err := s.balanceRepo.CreateUserBalance(ctx, &domain.Balance{UserID: userID, UpdatedAt: s.clock.Now()})
	if err != nil {
		zap.L().Error("failed to create balance", zap.Int("user_id", userID), zap.Error(err))
		return nil, apperr.Internal(err, "failed to create balance")
	}
	return balance, nil
}

func (s *Service) ListTransactions(ctx context.Context, userID int, p paging.Params) (paging.Page[domain.BalanceTransaction], error) {
	if err := p.Validate(); err != nil {
		return paging.Page[domain.BalanceTransaction]{}, err
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return paging.Page[domain.BalanceTransaction]{}, err
	}
	txns, total, err := s.balanceRepo.ListTransactions(ctx, userID, p.Size, p.Offset())
	if err != nil {
		zap.L().Error("failed to list balance transactions", zap.Int("user_id", userID), zap.Error(err))
		return paging.Page[domain.BalanceTransaction]{}, apperr.Internal(err, "failed to list balance transactions")
	}
	return paging.NewPage(txns, total, p), nil
}
