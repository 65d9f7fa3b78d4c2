package orders

//go:generate mockgen -source=orders.go -destination=mock_orders.go -package=orders

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/GlebRadaev/commerce/internal/domain"
	"github.com/GlebRadaev/commerce/internal/dto"
	"github.com/GlebRadaev/commerce/pkg/auth"
	"github.com/GlebRadaev/commerce/pkg/paging"
	"github.com/GlebRadaev/commerce/pkg/utils"
	"github.com/go-chi/chi/v5"
)

type Service interface {
	CreateOrder(ctx context.Context, userID int, items []domain.OrderItemInput, couponID *int) (*domain.PlacedOrder, error)
	ProcessPayment(ctx context.Context, orderID, userID int) (*domain.Payment, error)
	GetOrder(ctx context.Context, orderID int) (*domain.OrderDetails, error)
	GetUserOrders(ctx context.Context, userID int, filter domain.OrderFilter) (paging.Page[domain.OrderSummary], error)
}

type OrderHandler struct {
	orderService Service
}

func New(orderService Service) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// CreateOrder godoc
//
//	@Summary		Place an order
//	@Description	Price the items, apply an optional coupon and store the order as PENDING. Nothing is reserved.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateOrderRequestDTO	true	"Order request"
//	@Success		201		{object}	dto.CreateOrderResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid items, insufficient stock or coupon not applicable"
//	@Failure		403		{object}	utils.Response	"Coupon belongs to another user"
//	@Failure		404		{object}	utils.Response	"User, product or coupon not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/v1/orders [post]
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.RequireID(req.UserID, "userId"); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	if req.CouponID != nil {
		if err := utils.RequireID(*req.CouponID, "couponId"); err != nil {
			utils.RespondWithAppError(w, err)
			return
		}
	}

	placed, err := h.orderService.CreateOrder(r.Context(), req.UserID, req.Inputs(), req.CouponID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewCreateOrderResponse(placed))
}

// ProcessPayment godoc
//
//	@Summary		Pay for an order
//	@Description	Decrease stock, debit the balance and consume the coupon. A failed step is undone and the order becomes FAILED.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			orderId	path		int						true	"Order ID"
//	@Param			request	body		dto.PaymentRequestDTO	true	"Payer"
//	@Success		200		{object}	dto.PaymentResponseDTO
//	@Failure		400		{object}	utils.Response	"Insufficient balance or stock"
//	@Failure		403		{object}	utils.Response	"Order belongs to another user"
//	@Failure		404		{object}	utils.Response	"Order not found"
//	@Failure		409		{object}	utils.Response	"Order already processed"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/v1/orders/{orderId}/payment [post]
func (h *OrderHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	orderID, err := utils.ParseID(chi.URLParam(r, "orderId"), "orderId")
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	var req dto.PaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.RequireID(req.UserID, "userId"); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	payment, err := h.orderService.ProcessPayment(r.Context(), orderID, req.UserID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewPaymentResponse(payment))
}

// GetOrder godoc
//
//	@Summary		Order details
//	@Tags			Orders
//	@Produce		json
//	@Param			orderId	path		int	true	"Order ID"
//	@Success		200		{object}	dto.OrderResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid order id"
//	@Failure		404		{object}	utils.Response	"Order not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/v1/orders/{orderId} [get]
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := utils.ParseID(chi.URLParam(r, "orderId"), "orderId")
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	details, err := h.orderService.GetOrder(r.Context(), orderID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewOrderResponse(details))
}

// GetUserOrders godoc
//
//	@Summary		List a user's orders
//	@Tags			Orders
//	@Produce		json
//	@Param			userId		path		int		true	"User ID"
//	@Param			status		query		string	false	"PENDING, COMPLETED or FAILED"
//	@Param			sortBy		query		string	false	"createdAt or finalAmount"
//	@Param			sortOrder	query		string	false	"ASC or DESC"
//	@Param			page		query		int		false	"Page, starting at 1"
//	@Param			size		query		int		false	"Page size, 1 to 100"
//	@Success		200			{object}	dto.OrderListResponseDTO
//	@Failure		400			{object}	utils.Response	"Invalid parameters"
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/api/v1/users/{userId}/orders [get]
func (h *OrderHandler) GetUserOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.ParseID(chi.URLParam(r, "userId"), "userId")
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	h.listOrders(w, r, userID)
}

// GetOwnOrders godoc
//
//	@Summary		List current user orders
//	@Tags			Orders
//	@Security		BearerAuth
//	@Produce		json
//	@Param			status		query		string	false	"PENDING, COMPLETED or FAILED"
//	@Param			sortBy		query		string	false	"createdAt or finalAmount"
//	@Param			sortOrder	query		string	false	"ASC or DESC"
//	@Param			page		query		int		false	"Page, starting at 1"
//	@Param			size		query		int		false	"Page size, 1 to 100"
//	@Success		200			{object}	dto.OrderListResponseDTO
//	@Failure		400			{object}	utils.Response	"Invalid parameters"
//	@Failure		401			{object}	utils.Response	"User not authorized"
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/api/user/orders [get]
func (h *OrderHandler) GetOwnOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	h.listOrders(w, r, userID)
}

func (h *OrderHandler) listOrders(w http.ResponseWriter, r *http.Request, userID int) {
	query := r.URL.Query()
	p, err := paging.Parse(query.Get("page"), query.Get("size"))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	filter := domain.OrderFilter{
		Status:    domain.OrderStatus(strings.ToUpper(query.Get("status"))),
		SortBy:    query.Get("sortBy"),
		SortOrder: query.Get("sortOrder"),
		Page:      p.Page,
		Size:      p.Size,
	}

	page, err := h.orderService.GetUserOrders(r.Context(), userID, filter)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.OrderListResponseDTO{
		Items:      paging.Map(page, dto.NewOrderSummary).Items,
		Pagination: dto.NewPagination(page),
	})
}
