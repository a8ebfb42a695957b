package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/overtime-backend-go/internal/config"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	overtimeHandler OvertimeHandler,
	masterHandler MasterHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(cfg.App.Name + " " + cfg.App.Version + "\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/overtime", func(r chi.Router) {
			r.Post("/calculate", overtimeHandler.Calculate)

			r.Route("/entries", func(r chi.Router) {
				r.Get("/", overtimeHandler.ListEntries)
				r.Post("/", overtimeHandler.CreateEntry)
				r.Get("/{id}", overtimeHandler.GetEntry)
				r.Put("/{id}", overtimeHandler.UpdateEntry)
				r.Delete("/{id}", overtimeHandler.DeleteEntry)
			})
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/employees/{id}", overtimeHandler.EmployeeReport)
			r.Get("/projects/{id}", overtimeHandler.ProjectReport)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", notificationHandler.List)
			r.Delete("/", notificationHandler.Clear)
			r.Get("/unread-count", notificationHandler.UnreadCount)
			r.Patch("/read-all", notificationHandler.MarkAllAsRead)
			r.Patch("/{id}/read", notificationHandler.MarkAsRead)
			r.Delete("/{id}", notificationHandler.Delete)
		})

		r.Route("/branches", func(r chi.Router) {
			r.Get("/", masterHandler.ListBranches)
			r.Get("/resolve", masterHandler.ResolveBranchPolicy)
			r.Post("/", masterHandler.CreateBranch)
			r.Get("/{id}", masterHandler.GetBranch)
			r.Put("/{id}", masterHandler.UpdateBranch)
			r.Delete("/{id}", masterHandler.DeleteBranch)
		})
	})
	return r
}

// NewLogger builds the ECS-formatted JSON logger shared by the request logger and the app.
func NewLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env == "development")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	)
}
