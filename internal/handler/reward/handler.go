package reward

import (
	"net/http"

	"dearmind-backend/internal/handler/common"
	"dearmind-backend/internal/middleware"
	rewardService "dearmind-backend/internal/service/reward"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
)

type Handler struct {
	service *rewardService.Service
}

func New(service *rewardService.Service) *Handler {
	return &Handler{service: service}
}

type likeResponse struct {
	Id    string `json:"id"`
	Liked bool   `json:"liked"`
}

// Issue handles POST /reward
func (h *Handler) Issue(w http.ResponseWriter, r *http.Request) {
	var req rewardService.IssueInput
	if err := common.DecodeJSON(w, r, &req); err != nil {
		common.RespondErr(w, r, err)
		return
	}

	uid := middleware.GetUserID(r.Context())
	reward, err := h.service.Issue(r.Context(), uid, req)
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}

	hlog.FromRequest(r).Info().
		Str("user_id", uid).
		Int("streak", reward.StreakAtGiven).
		Msg("reward issued")
	common.RespondJSON(w, http.StatusCreated, reward)
}

// History handles GET /reward
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.service.History(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, history)
}

// ToggleLike handles PATCH /reward/{id}/like
func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	liked, err := h.service.ToggleLike(r.Context(), middleware.GetUserID(r.Context()), id)
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, likeResponse{Id: id, Liked: liked})
}
