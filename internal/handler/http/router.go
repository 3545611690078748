package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/leave-calendar-go/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/leave-calendar-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// RouterConfig carries the HTTP settings taken from the app config.
type RouterConfig struct {
	AllowedOrigins []string
	DefaultLocale  calendar.Locale
}

func NewRouter(logger *slog.Logger, cfg RouterConfig, calendarHandler CalendarHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))
	r.Use(middleware.Locale(cfg.DefaultLocale))

	r.Route("/api/v1/calendar", func(r chi.Router) {
		r.With(chiMiddleware.AllowContentType("application/json")).Post("/parse", calendarHandler.Parse)
		r.With(chiMiddleware.AllowContentType("application/json")).Post("/extract", calendarHandler.Extract)
		r.Get("/render", calendarHandler.Render)
		r.Get("/{year}/events.ics", calendarHandler.ExportICS)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", calendarHandler.CreateSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", calendarHandler.GetSession)
				r.Delete("/", calendarHandler.DeleteSession)
				r.Post("/actions", calendarHandler.ApplyAction)
				r.Get("/stream", calendarHandler.Stream)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r
}
