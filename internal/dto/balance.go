package dto

import (
	"time"

	"github.com/GlebRadaev/commerce/internal/domain"
)

type ChargeRequestDTO struct {
	UserID int   `json:"userId" example:"1"`
	Amount int64 `json:"amount" example:"10000"`
}

type ChargeResponseDTO struct {
	UserID         int       `json:"userId" example:"1"`
	ChargedAmount  int64     `json:"chargedAmount" example:"10000"`
	CurrentBalance int64     `json:"currentBalance" example:"60000"`
	ChargedAt      time.Time `json:"chargedAt" example:"2024-05-01T10:00:00Z"`
}

type BalanceResponseDTO struct {
	UserID             int       `json:"userId" example:"1"`
	CurrentBalance     int64     `json:"currentBalance" example:"50000"`
	DailyChargedAmount int64     `json:"dailyChargedAmount" example:"10000"`
	LastUpdatedAt      time.Time `json:"lastUpdatedAt" example:"2024-05-01T10:00:00Z"`
}

type TransactionDTO struct {
	ID            int       `json:"transactionId" example:"12"`
	Type          string    `json:"type" example:"CHARGE"`
	Amount        int64     `json:"amount" example:"10000"`
	BalanceBefore int64     `json:"balanceBefore" example:"50000"`
	BalanceAfter  int64     `json:"balanceAfter" example:"60000"`
	Description   string    `json:"description,omitempty" example:"balance charge"`
	CreatedAt     time.Time `json:"createdAt" example:"2024-05-01T10:00:00Z"`
}

type TransactionListResponseDTO struct {
	Items      []TransactionDTO `json:"items"`
	Pagination PaginationDTO    `json:"pagination"`
}

func NewBalanceResponse(b *domain.Balance) BalanceResponseDTO {
	return BalanceResponseDTO{
		UserID:             b.UserID,
		CurrentBalance:     b.CurrentBalance,
		DailyChargedAmount: b.DailyChargeAmount,
		LastUpdatedAt:      b.UpdatedAt,
	}
}

func NewTransaction(t domain.BalanceTransaction) TransactionDTO {
	return TransactionDTO{
		ID:            t.ID,
		Type:          string(t.Type),
		Amount:        t.Amount,
		BalanceBefore: t.BalanceBefore,
		BalanceAfter:  t.BalanceAfter,
		Description:   t.Description,
		CreatedAt:     t.CreatedAt,
	}
}
