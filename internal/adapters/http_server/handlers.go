package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hostel_portal/internal/app"
	"hostel_portal/internal/domain"
	"hostel_portal/internal/listing"
	"hostel_portal/internal/session"
)

type Handlers struct {
	Q        *app.QueryService
	C        *app.CommandService
	Auth     *app.AuthService
	Limiter  *IPLimiter
	PageSize int
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1", func(v1 chi.Router) {
		login := http.Handler(http.HandlerFunc(h.login))
		if h.Limiter != nil {
			login = h.Limiter.Middleware(login)
		}
		v1.Method(http.MethodPost, "/login", login)

		v1.Group(func(r chi.Router) {
			r.Use(Authenticate(h.Auth))
			r.Post("/logout", h.logout)
			r.Get("/session", h.currentSession)
			r.Get("/announcements", h.announcements)
			r.Get("/menu", h.weeklyMenu)
			r.Get("/menu/items", h.listMenuItems)

			r.Route("/management", func(r chi.Router) {
				r.Use(RequireRole(domain.RoleManagement))
				h.managementRoutes(r)
			})
			r.Route("/student", func(r chi.Router) {
				r.Use(RequireRole(domain.RoleStudent))
				h.studentRoutes(r)
			})
		})
	})
}

func (h *Handlers) query(r *http.Request) listing.Query {
	return listing.ParseQuery(r.URL.Query(), h.PageSize)
}

// dateParam parses an optional YYYY-MM-DD value; empty yields the zero Date.
func dateParam(s string) (domain.Date, error) {
	if s == "" {
		return "", nil
	}
	return domain.ParseDate(s)
}

func current(r *http.Request) session.Session {
	s, _ := session.FromContext(r.Context())
	return s
}

// ---- auth ----

type loginRequest struct {
	Role     domain.Role `json:"role" validate:"required,oneof=student management guest"`
	Email    string      `json:"email" validate:"omitempty,email"`
	Password string      `json:"password"`
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	s, err := h.Auth.Login(r.Context(), req.Role, req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeStatus(w, http.StatusOK, s)
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	h.Auth.Logout(current(r).Token)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) currentSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, current(r))
}

// ---- shared reads ----

func (h *Handlers) announcements(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l < 0 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be a non-negative integer")
			return
		}
		limit = l
	}
	out, err := h.Q.Announcements(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) weeklyMenu(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.WeeklyMenu(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) listMenuItems(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.ListMenuItems(r.Context(), h.query(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, out)
}

// respond writes v as JSON, or the problem for err.
func respond[T any](w http.ResponseWriter, r *http.Request, v T, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	if r.Method == http.MethodGet {
		writeJSON(w, r, v)
		return
	}
	writeStatus(w, http.StatusOK, v)
}

func created[T any](w http.ResponseWriter, r *http.Request, v T, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeStatus(w, http.StatusCreated, v)
}
