package emotionmeta

import (
	"net/http"

	"dearmind-backend/internal/handler/common"
	"dearmind-backend/internal/middleware"
	metaService "dearmind-backend/internal/service/emotionmeta"
)

type Handler struct {
	service *metaService.Service
}

func New(service *metaService.Service) *Handler {
	return &Handler{service: service}
}

// Icon handles GET /emotion-icon?emotion=
func (h *Handler) Icon(w http.ResponseWriter, r *http.Request) {
	icon, err := h.service.Icon(r.Context(), r.URL.Query().Get("emotion"))
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, icon)
}

// TodayIcon handles GET /emotion-icon/today
func (h *Handler) TodayIcon(w http.ResponseWriter, r *http.Request) {
	icon, err := h.service.TodayIcon(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, icon)
}

// ComboIcon handles GET /emotion-combo-icon?emotions=A,B
func (h *Handler) ComboIcon(w http.ResponseWriter, r *http.Request) {
	icon, err := h.service.ComboIcon(r.Context(), common.QueryList(r, "emotions"))
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, icon)
}

// TodayQuote handles GET /emotion-quote/today
func (h *Handler) TodayQuote(w http.ResponseWriter, r *http.Request) {
	quote, err := h.service.TodayQuote(r.Context())
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, quote)
}
