package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// RequestTimeout bounds every handler.
const RequestTimeout = 15 * time.Second

// Server owns the portal router; handlers and extra endpoints are mounted on it.
type Server struct{ mux *chi.Mux }

// New builds the router. trustProxy makes client addresses come from
// X-Forwarded-For / X-Real-IP; enable it only behind a proxy that sets them.
func New(trustProxy bool) *Server {
	m := chi.NewRouter()

	// middlewares must be registered before any route
	if trustProxy {
		m.Use(chimw.RealIP)
	}
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(chimw.CleanPath)
	m.Use(Timeout(RequestTimeout))
	m.Use(Metrics)
	m.Use(Logger(log.Logger))

	m.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, http.StatusNotFound, "Not Found", "no route for "+r.URL.Path)
	})
	m.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, http.StatusMethodNotAllowed, "Method Not Allowed", r.Method+" is not supported on "+r.URL.Path)
	})

	return &Server{mux: m}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches a handler outside the /v1 API, such as /metrics.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}
