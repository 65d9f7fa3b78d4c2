package balance

//go:generate mockgen -source=balance.go -destination=mock_balance.go -package=balance

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/GlebRadaev/commerce/internal/domain"
	"github.com/GlebRadaev/commerce/internal/dto"
	"github.com/GlebRadaev/commerce/pkg/auth"
	"github.com/GlebRadaev/commerce/pkg/paging"
	"github.com/GlebRadaev/commerce/pkg/utils"
	"github.com/go-chi/chi/v5"
)

type Service interface {
	Charge(ctx context.Context, userID int, amount int64) (*domain.ChargeResult, error)
	GetBalance(ctx context.Context, userID int) (*domain.Balance, error)
	ListTransactions(ctx context.Context, userID int, p paging.Params) (paging.Page[domain.BalanceTransaction], error)
}

type BalanceHandler struct {
	balanceService Service
}

func New(balanceService Service) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
	}
}

// Charge godoc
//
//	@Summary		Top up a balance
//	@Description	Add funds to the user's balance. Subject to the daily charge limit and the balance cap.
//	@Tags			Balance
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.ChargeRequestDTO	true	"Charge request"
//	@Success		200		{object}	dto.ChargeResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid amount, daily limit or balance cap exceeded"
//	@Failure		404		{object}	utils.Response	"User not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/v1/balances/charge [post]
func (h *BalanceHandler) Charge(w http.ResponseWriter, r *http.Request) {
	var req dto.ChargeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.RequireID(req.UserID, "userId"); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	result, err := h.balanceService.Charge(r.Context(), req.UserID, req.Amount)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ChargeResponseDTO{
		UserID:         req.UserID,
		ChargedAmount:  result.ChargedAmount,
		CurrentBalance: result.NewBalance,
		ChargedAt:      result.Transaction.CreatedAt,
	})
}

// GetBalance godoc
//
//	@Summary		Get a user's balance
//	@Tags			Balance
//	@Produce		json
//	@Param			userId	path		int	true	"User ID"
//	@Success		200		{object}	dto.BalanceResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid user id"
//	@Failure		404		{object}	utils.Response	"User not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/v1/balances/{userId} [get]
func (h *BalanceHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.ParseID(chi.URLParam(r, "userId"), "userId")
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	h.respondBalance(w, r, userID)
}

// GetOwnBalance godoc
//
//	@Summary		Get current user balance
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/balance [get]
func (h *BalanceHandler) GetOwnBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	h.respondBalance(w, r, userID)
}

func (h *BalanceHandler) respondBalance(w http.ResponseWriter, r *http.Request, userID int) {
	balance, err := h.balanceService.GetBalance(r.Context(), userID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewBalanceResponse(balance))
}

// GetTransactions godoc
//
//	@Summary		Balance history
//	@Description	Paginated ledger entries of the user, newest first.
//	@Tags			Balance
//	@Produce		json
//	@Param			userId	path		int	true	"User ID"
//	@Param			page	query		int	false	"Page, starting at 1"
//	@Param			size	query		int	false	"Page size, 1 to 100"
//	@Success		200		{object}	dto.TransactionListResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid parameters"
//	@Failure		404		{object}	utils.Response	"User not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/v1/balances/{userId}/transactions [get]
func (h *BalanceHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.ParseID(chi.URLParam(r, "userId"), "userId")
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	p, err := paging.Parse(r.URL.Query().Get("page"), r.URL.Query().Get("size"))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	page, err := h.balanceService.ListTransactions(r.Context(), userID, p)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.TransactionListResponseDTO{
		Items:      paging.Map(page, dto.NewTransaction).Items,
		Pagination: dto.NewPagination(page),
	})
}
