package auth

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/GlebRadaev/commerce/internal/domain"
	"github.com/GlebRadaev/commerce/internal/dto"
	"github.com/GlebRadaev/commerce/pkg/utils"
)

type Service interface {
	Register(ctx context.Context, login, name, password string) (*domain.Session, error)
	Login(ctx context.Context, login, password string) (*domain.Session, error)
}

type AuthHandler struct {
	authService Service
}

func New(authService Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register godoc
//
//	@Summary		Create an account
//	@Description	Create a user account with a zero balance. The bearer token comes back in the Authorization header.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.RegisterRequestDTO	true	"New account"
//	@Success		201		{object}	dto.RegisterResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body or missing credentials"
//	@Failure		409		{object}	utils.Response	"Login already taken"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	session, err := h.authService.Register(r.Context(), req.Login, req.Name, req.Password)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	resp := dto.RegisterResponseDTO{
		Message:   "User successfully registered",
		UserID:    session.User.ID,
		Login:     session.User.Login,
		Name:      session.User.Name,
		ExpiresAt: session.ExpiresAt,
	}
	if session.Balance != nil {
		resp.Balance = session.Balance.CurrentBalance
	}
	setBearer(w, session)
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// Login godoc
//
//	@Summary		Sign in
//	@Description	Exchange login and password for a bearer token in the Authorization header.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.LoginRequestDTO	true	"Credentials"
//	@Success		200		{object}	dto.LoginResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"Invalid credentials"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	session, err := h.authService.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	setBearer(w, session)
	utils.RespondWithJSON(w, http.StatusOK, dto.LoginResponseDTO{
		Message:   "User successfully authenticated",
		UserID:    session.User.ID,
		ExpiresAt: session.ExpiresAt,
	})
}

func setBearer(w http.ResponseWriter, session *domain.Session) {
	w.Header().Set("Authorization", "Bearer "+session.Token)
}
