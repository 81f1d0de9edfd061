package auth

import (
	"net/http"

	ierr "dearmind-backend/internal/errors"
	"dearmind-backend/internal/handler/common"
	"dearmind-backend/internal/identity"
	"dearmind-backend/internal/middleware"
	authService "dearmind-backend/internal/service/auth"

	"github.com/rs/zerolog/hlog"
)

type Handler struct {
	service *authService.Service
}

func New(service *authService.Service) *Handler {
	return &Handler{service: service}
}

type loginRequest struct {
	IdToken string `json:"idToken"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type passwordRequest struct {
	NewPassword string `json:"newPassword"`
}

type resetRequest struct {
	Email string `json:"email"`
}

type tokenResponse struct {
	IdToken string `json:"idToken"`
}

// SignUp handles POST /auth/signup
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req authService.SignUpInput
	if err := common.DecodeJSON(w, r, &req); err != nil {
		common.RespondErr(w, r, err)
		return
	}

	profile, err := h.service.SignUp(r.Context(), req)
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, profile)
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := common.DecodeJSON(w, r, &req); err != nil {
		common.RespondErr(w, r, err)
		return
	}

	profile, err := h.service.Login(r.Context(), req.IdToken)
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, profile)
}

// GoogleLogin handles POST /auth/google-login
func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := common.DecodeJSON(w, r, &req); err != nil {
		common.RespondErr(w, r, err)
		return
	}

	profile, err := h.service.GoogleLogin(r.Context(), req.IdToken)
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, profile)
}

// TestLogin handles POST /auth/test-login
func (h *Handler) TestLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := common.DecodeJSON(w, r, &req); err != nil {
		common.RespondErr(w, r, err)
		return
	}

	token, err := h.service.TestLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, tokenResponse{IdToken: token})
}

// ResetPassword handles POST /auth/reset-password
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := common.DecodeJSON(w, r, &req); err != nil {
		common.RespondErr(w, r, err)
		return
	}

	if err := h.service.SendPasswordReset(r.Context(), req.Email); err != nil {
		common.RespondErr(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, common.MessageResponse{Message: "password reset email sent"})
}

// UpdatePassword handles PATCH /auth/password
func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	if err := common.DecodeJSON(w, r, &req); err != nil {
		common.RespondErr(w, r, err)
		return
	}

	if err := h.service.UpdatePassword(r.Context(), middleware.GetUserID(r.Context()), req.NewPassword); err != nil {
		common.RespondErr(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, common.MessageResponse{Message: "password updated"})
}

// Me handles GET /auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := identity.FromContext(r.Context())
	if !ok {
		common.RespondErr(w, r, ierr.Unauthorizedf("unauthorized"))
		return
	}
	common.RespondJSON(w, http.StatusOK, h.service.Me(id))
}

// DeleteMe handles DELETE /auth/me
func (h *Handler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	uid := middleware.GetUserID(r.Context())
	if err := h.service.DeleteAccount(r.Context(), uid); err != nil {
		common.RespondErr(w, r, err)
		return
	}

	hlog.FromRequest(r).Info().Str("user_id", uid).Msg("account deleted")
	common.RespondJSON(w, http.StatusOK, common.MessageResponse{Message: "account deleted"})
}

// UserMe handles GET /user/me
func (h *Handler) UserMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.UserMe(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, user)
}
