package emergency

import (
	"net/http"

	ierr "dearmind-backend/internal/errors"
	"dearmind-backend/internal/handler/common"
	emergencyService "dearmind-backend/internal/service/emergency"
)

type Handler struct {
	service *emergencyService.Service
}

func New(service *emergencyService.Service) *Handler {
	return &Handler{service: service}
}

type nearbyRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// OnlineCenters handles GET /emergency/online-centers
func (h *Handler) OnlineCenters(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, h.service.OnlineCenters())
}

// NearbyCenters handles POST /emergency/nearby-centers
func (h *Handler) NearbyCenters(w http.ResponseWriter, r *http.Request) {
	var req nearbyRequest
	if err := common.DecodeJSON(w, r, &req); err != nil {
		common.RespondErr(w, r, err)
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		common.RespondErr(w, r, ierr.BadRequestf("latitude and longitude are required"))
		return
	}

	centers, err := h.service.NearbyCenters(r.Context(), *req.Latitude, *req.Longitude)
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, centers)
}
