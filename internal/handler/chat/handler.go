package chat

import (
	"net/http"

	"dearmind-backend/internal/handler/common"
	"dearmind-backend/internal/middleware"
	chatService "dearmind-backend/internal/service/chat"
)

type Handler struct {
	service *chatService.Service
}

func New(service *chatService.Service) *Handler {
	return &Handler{service: service}
}

type sendRequest struct {
	Message string `json:"message"`
}

// Send handles POST /chat
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := common.DecodeJSON(w, r, &req); err != nil {
		common.RespondErr(w, r, err)
		return
	}

	reply, err := h.service.Send(r.Context(), middleware.GetUserID(r.Context()), req.Message)
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, reply)
}

// History handles GET /chat/history
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.service.History(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, history)
}

// Init handles GET /chat/init
func (h *Handler) Init(w http.ResponseWriter, r *http.Request) {
	greeting, err := h.service.Init(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, greeting)
}
