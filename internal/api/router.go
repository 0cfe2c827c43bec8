package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func NewRouter(apiHandler *APIHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLoggerMiddleware(apiHandler.logger))
	r.Use(recoverer(apiHandler.logger))
	r.Use(middleware.StripSlashes)
	r.Use(middleware.RequestSize(MaxUploadBytes))

	// All API routes will be under /api
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", apiHandler.HealthHandler)
		r.Get("/status", apiHandler.StatusHandler)

		r.Post("/text-response", apiHandler.TextResponseHandler)

		r.Route("/pickup-lines", func(r chi.Router) {
			r.Post("/", apiHandler.PickupLineHandler)
			r.Get("/history", apiHandler.PickupHistoryHandler)
			r.Get("/scenarios", apiHandler.ScenariosHandler)
		})

		r.Post("/image-critique", apiHandler.ImageCritiqueHandler)

		r.Route("/chats", func(r chi.Router) {
			r.Post("/", apiHandler.CreateChatHandler)
			r.Get("/{chatID}", apiHandler.GetChatHandler)
			r.Delete("/{chatID}", apiHandler.DeleteChatHandler)
			r.Post("/{chatID}/messages", apiHandler.PostMessageHandler)
			r.Post("/{chatID}/reset", apiHandler.ResetChatHandler)
		})
	})

	return otelhttp.NewHandler(r, "rizz-coach")
}
