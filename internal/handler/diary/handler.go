package diary

import (
	"net/http"
	"strings"

	ierr "dearmind-backend/internal/errors"
	"dearmind-backend/internal/handler/common"
	"dearmind-backend/internal/middleware"
	"dearmind-backend/internal/model"
	diaryService "dearmind-backend/internal/service/diary"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
)

type Handler struct {
	service *diaryService.Service
}

func New(service *diaryService.Service) *Handler {
	return &Handler{service: service}
}

type streakResponse struct {
	Streak int `json:"streak"`
}

type emotionTypesResponse struct {
	Date         string              `json:"date"`
	EmotionTypes []model.EmotionType `json:"emotionTypes"`
}

type topicResponse struct {
	Topic string `json:"topic"`
}

type emotionTypeRequest struct {
	EmotionType string `json:"emotionType"`
}

type emotionTypeResponse struct {
	Id          string            `json:"id"`
	EmotionType model.EmotionType `json:"emotionType"`
}

// Create handles POST /diary
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req diaryService.CreateInput
	if err := common.DecodeJSON(w, r, &req); err != nil {
		common.RespondErr(w, r, err)
		return
	}
	if strings.TrimSpace(req.Image) == "" {
		common.RespondErr(w, r, ierr.BadRequestf("image is required"))
		return
	}

	uid := middleware.GetUserID(r.Context())
	res, err := h.service.Create(r.Context(), uid, req)
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}

	hlog.FromRequest(r).Info().
		Str("user_id", uid).
		Str("diary_id", res.Id).
		Int("streak", res.Streak).
		Msg("diary entry created")
	common.RespondJSON(w, http.StatusCreated, res)
}

// List handles GET /diary
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, entries)
}

// ByDate handles GET /diary/by-date?date=YYYY-MM-DD
func (h *Handler) ByDate(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.ByDate(r.Context(), middleware.GetUserID(r.Context()), r.URL.Query().Get("date"))
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, entries)
}

// ByMonth handles GET /diary/by-month?year=&month=
func (h *Handler) ByMonth(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonth(r)
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}

	entries, err := h.service.ByMonth(r.Context(), middleware.GetUserID(r.Context()), year, month)
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, entries)
}

// Dates handles GET /diary/dates
func (h *Handler) Dates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.service.Dates(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, dates)
}

// Streak handles GET /diary/streak
func (h *Handler) Streak(w http.ResponseWriter, r *http.Request) {
	streak, err := h.service.Streak(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, streakResponse{Streak: streak})
}

// EmotionTypesByDate handles GET /diary/emotion-types-by-date?date=
func (h *Handler) EmotionTypesByDate(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	emotions, err := h.service.EmotionTypesByDate(r.Context(), middleware.GetUserID(r.Context()), date)
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, emotionTypesResponse{Date: date, EmotionTypes: emotions})
}

// ComboIconByDate handles GET /diary/emotion-combo-icon-by-date?date=
func (h *Handler) ComboIconByDate(w http.ResponseWriter, r *http.Request) {
	icon, err := h.service.ComboIconByDate(r.Context(), middleware.GetUserID(r.Context()), r.URL.Query().Get("date"))
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, icon)
}

// MonthlyEmotionTypeCount handles GET /diary/monthly-emotion-type-count?year=&month=
func (h *Handler) MonthlyEmotionTypeCount(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonth(r)
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}

	counts, err := h.service.MonthlyEmotionTypeCount(r.Context(), middleware.GetUserID(r.Context()), year, month)
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, counts)
}

// RandomTopic handles GET /diary/random-topic
func (h *Handler) RandomTopic(w http.ResponseWriter, r *http.Request) {
	topic, err := h.service.RandomTopic(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, topicResponse{Topic: topic})
}

// Reanalyze handles POST /diary/{id}/reanalyze
func (h *Handler) Reanalyze(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.service.Reanalyze(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, analysis)
}

// UpdateEmotionType handles PATCH /diary/{id}/emotion-type
func (h *Handler) UpdateEmotionType(w http.ResponseWriter, r *http.Request) {
	var req emotionTypeRequest
	if err := common.DecodeJSON(w, r, &req); err != nil {
		common.RespondErr(w, r, err)
		return
	}
	if strings.TrimSpace(req.EmotionType) == "" {
		common.RespondErr(w, r, ierr.BadRequestf("emotionType is required"))
		return
	}

	id := chi.URLParam(r, "id")
	emotion, err := h.service.UpdateEmotionType(r.Context(), middleware.GetUserID(r.Context()), id, req.EmotionType)
	if err != nil {
		common.RespondErr(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, emotionTypeResponse{Id: id, EmotionType: emotion})
}

// Delete handles DELETE /diary/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		common.RespondErr(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, common.MessageResponse{Message: "diary entry deleted"})
}

func yearMonth(r *http.Request) (int, int, error) {
	year, err := common.QueryInt(r, "year")
	if err != nil {
		return 0, 0, err
	}
	month, err := common.QueryInt(r, "month")
	if err != nil {
		return 0, 0, err
	}
	return year, month, nil
}
