// Package web serves the upload-and-compare UI and the JSON comparison
// API, with run history backed by the store.
package web

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/itac-tools/reportrecon/internal/config"
	"github.com/itac-tools/reportrecon/internal/store"
)

//go:embed templates
var templateFiles embed.FS

// Server is the HTTP server for the reconciliation web UI.
type Server struct {
	cfg       *config.Config
	store     store.Store
	router    *chi.Mux
	templates *template.Template

	// compareSem serializes comparisons: one at a time per process.
	compareSem chan struct{}
}

// NewServer creates a Server with routes and middleware configured.
func NewServer(cfg *config.Config, st store.Store) (*Server, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"statusClass": statusClass,
	}).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, eris.Wrap(err, "web: parse templates")
	}

	s := &Server{
		cfg:        cfg,
		store:      st,
		router:     chi.NewRouter(),
		templates:  tmpl,
		compareSem: make(chan struct{}, 1),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(2 * time.Minute))
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	// Pages
	s.router.Get("/", s.handleIndex)
	s.router.Post("/upload", s.handleUpload)
	s.router.Get("/runs", s.handleRunsPage)
	s.router.Get("/runs/{runID}", s.handleRunPage)

	// JSON API
	s.router.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Post("/compare", s.handleAPICompare)
		r.Get("/runs", s.handleAPIRuns)
		r.Get("/runs/{runID}", s.handleAPIRun)
	})
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// statusClass maps a run status to the CSS class its badge uses.
func statusClass(status store.RunStatus) string {
	switch status {
	case store.RunStatusComplete:
		return "ok"
	case store.RunStatusFailed:
		return "failed"
	default:
		return "pending"
	}
}
