package utils

import (
	"encoding/json"
	"net/http"

	"github.com/GlebRadaev/commerce/internal/apperr"
	"go.uber.org/zap"
)

type Response struct {
	Kind    string         `json:"kind,omitempty" example:"OutOfStock"`
	Message string         `json:"message" example:"insufficient stock"`
	Details map[string]any `json:"details,omitempty"`
}

func RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("failed to encode response", zap.Error(err))
	}
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, Response{Message: message})
}

// RespondWithAppError maps err to its kind's status. Internal errors are logged and never leak their cause.
func RespondWithAppError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	status := apperr.HTTPStatus(kind)
	if status == http.StatusInternalServerError {
		zap.L().Error("request failed", zap.Error(err))
		RespondWithJSON(w, status, Response{Kind: string(apperr.KindInternal), Message: "Internal server error"})
		return
	}
	e, _ := apperr.As(err)
	RespondWithJSON(w, status, Response{Kind: string(kind), Message: e.Message, Details: e.Details})
}
