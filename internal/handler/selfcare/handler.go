package selfcare

import (
	"net/http"

	"dearmind-backend/internal/handler/common"
	"dearmind-backend/internal/middleware"
	selfcareService "dearmind-backend/internal/service/selfcare"
)

type Handler struct {
	service *selfcareService.Service
}

func New(service *selfcareService.Service) *Handler {
	return &Handler{service: service}
}

// Recommend handles POST /selfcare/recommend?emotion=
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.Recommend(r.Context(), middleware.GetUserID(r.Context()), r.URL.Query().Get("emotion"))
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, rec)
}

// Latest handles GET /selfcare/latest
func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.Latest(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, rec)
}
