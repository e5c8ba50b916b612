package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	ChiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/oral0005/backend-posylka/internal/api/middleware"
	"github.com/oral0005/backend-posylka/internal/auth"
)

func NewRouter(h *Handlers, tokens *auth.TokenManager, redisClient *redis.Client) http.Handler {
	r := chi.NewRouter()

	r.Use(ChiMiddleware.Logger)
	r.Use(ChiMiddleware.Recoverer)
	r.Use(ChiMiddleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/users/register", h.Register)
		r.Post("/users/login", h.Login)
		r.Post("/auth/send-verification", h.SendVerification)
		r.Post("/auth/verify-code", h.VerifyCode)

		r.Get("/posts", h.ListPosts)
		r.Get("/posts/{id}", h.GetPost)
		r.Get("/prices/recommended", h.RecommendedPrice)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(tokens))

			r.Get("/users/me", h.Me)
			r.Get("/posts/my", h.ListMyPosts)

			r.With(middleware.Idempotency(redisClient)).Post("/posts", h.CreatePost)
			r.Put("/posts/{id}", h.UpdatePost)
			r.Delete("/posts/{id}", h.DeletePost)
			r.Post("/posts/{id}/cancel", h.CancelPost)

			r.With(middleware.Idempotency(redisClient)).Post("/posts/{id}/requests", h.RequestActivation)
			r.Get("/posts/{id}/requests", h.ListRequests)
			r.Post("/posts/{id}/requests/{requestID}/accept", h.AcceptRequest)
			r.Post("/posts/{id}/requests/{requestID}/reject", h.RejectRequest)

			r.Post("/posts/{id}/delivered", h.MarkDelivered)
			r.Post("/posts/{id}/confirm", h.ConfirmCompletion)
			r.Post("/posts/{id}/rate", h.RatePost)

			r.Get("/notifications", h.ListNotifications)
			r.Put("/notifications/{id}/read", h.MarkNotificationRead)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
