// Package server assembles the HTTP router and its middleware chain.
package server

import (
	"fmt"
	"net/http"
	"time"

	"dearmind-backend/internal/config"
	authHandler "dearmind-backend/internal/handler/auth"
	chatHandler "dearmind-backend/internal/handler/chat"
	"dearmind-backend/internal/handler/common"
	diaryHandler "dearmind-backend/internal/handler/diary"
	emergencyHandler "dearmind-backend/internal/handler/emergency"
	metaHandler "dearmind-backend/internal/handler/emotionmeta"
	rewardHandler "dearmind-backend/internal/handler/reward"
	selfcareHandler "dearmind-backend/internal/handler/selfcare"
	"dearmind-backend/internal/metrics"
	"dearmind-backend/internal/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

type Handlers struct {
	Auth        *authHandler.Handler
	Diary       *diaryHandler.Handler
	Chat        *chatHandler.Handler
	Selfcare    *selfcareHandler.Handler
	Reward      *rewardHandler.Handler
	Emergency   *emergencyHandler.Handler
	EmotionMeta *metaHandler.Handler
}

func NewRouter(logger zerolog.Logger, h Handlers, authenticator middleware.Authenticator, limiter *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(hlog.NewHandler(logger))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", chiMiddleware.GetReqID(r.Context())).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	r.Use(chiMiddleware.Recoverer)
	r.Use(metrics.InstrumentHandler)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		common.RespondError(w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		common.RespondError(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		common.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", metrics.Handler())

	// public
	r.Group(func(r chi.Router) {
		r.Use(limiter.Handler)

		r.Post("/auth/signup", h.Auth.SignUp)
		r.Post("/auth/login", h.Auth.Login)
		r.Post("/auth/google-login", h.Auth.GoogleLogin)
		r.Post("/auth/test-login", h.Auth.TestLogin)
		r.Post("/auth/reset-password", h.Auth.ResetPassword)

		r.Get("/emergency/online-centers", h.Emergency.OnlineCenters)
		r.Post("/emergency/nearby-centers", h.Emergency.NearbyCenters)
	})

	// protected
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(authenticator))
		r.Use(limiter.Handler)

		r.Patch("/auth/password", h.Auth.UpdatePassword)
		r.Get("/auth/me", h.Auth.Me)
		r.Delete("/auth/me", h.Auth.DeleteMe)
		r.Get("/user/me", h.Auth.UserMe)

		r.Route("/chat", func(r chi.Router) {
			r.Post("/", h.Chat.Send)
			r.Get("/history", h.Chat.History)
			r.Get("/init", h.Chat.Init)
		})

		r.Route("/diary", func(r chi.Router) {
			r.Post("/", h.Diary.Create)
			r.Get("/", h.Diary.List)
			r.Get("/by-date", h.Diary.ByDate)
			r.Get("/by-month", h.Diary.ByMonth)
			r.Get("/dates", h.Diary.Dates)
			r.Get("/streak", h.Diary.Streak)
			r.Get("/emotion-types-by-date", h.Diary.EmotionTypesByDate)
			r.Get("/emotion-combo-icon-by-date", h.Diary.ComboIconByDate)
			r.Get("/monthly-emotion-type-count", h.Diary.MonthlyEmotionTypeCount)
			r.Get("/random-topic", h.Diary.RandomTopic)
			r.Post("/{id}/reanalyze", h.Diary.Reanalyze)
			r.Patch("/{id}/emotion-type", h.Diary.UpdateEmotionType)
			r.Delete("/{id}", h.Diary.Delete)
		})

		r.Post("/selfcare/recommend", h.Selfcare.Recommend)
		r.Get("/selfcare/latest", h.Selfcare.Latest)

		r.Route("/reward", func(r chi.Router) {
			r.Post("/", h.Reward.Issue)
			r.Get("/", h.Reward.History)
			r.Patch("/{id}/like", h.Reward.ToggleLike)
		})

		r.Get("/emotion-icon", h.EmotionMeta.Icon)
		r.Get("/emotion-icon/today", h.EmotionMeta.TodayIcon)
		r.Get("/emotion-combo-icon", h.EmotionMeta.ComboIcon)
		r.Get("/emotion-quote/today", h.EmotionMeta.TodayQuote)
	})

	return r
}

func New(cnf config.Server, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cnf.Host, cnf.Port),
		Handler:      handler,
		ReadTimeout:  cnf.ReadTimeout,
		WriteTimeout: cnf.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}
}
