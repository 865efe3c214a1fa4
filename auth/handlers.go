package auth

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"

	"tripcraft/utils"
	"tripcraft/validation"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Login handles POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input loginRequest
	if err := utils.DecodeJSON(w, r, &input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid credentials format")
		return
	}
	if err := validation.ValidateStruct(input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid credentials format")
		return
	}

	token, user, err := h.svc.Login(input.Email, input.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("login failed")
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	log.Info().Str("user", user.ID).Msg("user logged in")
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"token": token, "user": user})
}

// ListUsers handles GET /api/users (admin only)
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": h.svc.Users()})
}
