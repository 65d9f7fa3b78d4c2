package coupons

//go:generate mockgen -source=coupons.go -destination=mock_coupons.go -package=coupons

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/GlebRadaev/commerce/internal/domain"
	"github.com/GlebRadaev/commerce/internal/dto"
	"github.com/GlebRadaev/commerce/pkg/paging"
	"github.com/GlebRadaev/commerce/pkg/utils"
)

type Service interface {
	Issue(ctx context.Context, userID, eventID int) (*domain.CouponWithEvent, error)
	List(ctx context.Context, userID int, status domain.CouponStatus, p paging.Params) (paging.Page[domain.CouponWithEvent], error)
}

type CouponHandler struct {
	couponService Service
}

func New(couponService Service) *CouponHandler {
	return &CouponHandler{
		couponService: couponService,
	}
}

// Issue godoc
//
//	@Summary		Claim a coupon
//	@Description	Issue one coupon of a limited event to the user, first come first served.
//	@Tags			Coupons
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.IssueCouponRequestDTO	true	"Issue request"
//	@Success		201		{object}	dto.CouponDTO
//	@Failure		400		{object}	utils.Response	"Outside the issuance period"
//	@Failure		404		{object}	utils.Response	"User or event not found"
//	@Failure		409		{object}	utils.Response	"Coupons exhausted or already issued"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/v1/coupons/issue [post]
func (h *CouponHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var req dto.IssueCouponRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.RequireID(req.UserID, "userId"); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	if err := utils.RequireID(req.CouponEventID, "couponEventId"); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	coupon, err := h.couponService.Issue(r.Context(), req.UserID, req.CouponEventID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewCoupon(*coupon))
}

// List godoc
//
//	@Summary		List a user's coupons
//	@Tags			Coupons
//	@Produce		json
//	@Param			userId	query		int		true	"User ID"
//	@Param			status	query		string	false	"AVAILABLE, USED or EXPIRED"
//	@Param			page	query		int		false	"Page, starting at 1"
//	@Param			size	query		int		false	"Page size, 1 to 100"
//	@Success		200		{object}	dto.CouponListResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid parameters"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/v1/coupons [get]
func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	userID, err := utils.ParseID(query.Get("userId"), "userId")
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	p, err := paging.Parse(query.Get("page"), query.Get("size"))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	status := domain.CouponStatus(strings.ToUpper(query.Get("status")))

	page, err := h.couponService.List(r.Context(), userID, status, p)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.CouponListResponseDTO{
		Items:      paging.Map(page, dto.NewCoupon).Items,
		Pagination: dto.NewPagination(page),
	})
}
