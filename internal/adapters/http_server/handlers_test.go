package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpserver "hostel_portal/internal/adapters/http_server"
	"hostel_portal/internal/app"
	"hostel_portal/internal/domain"
	"hostel_portal/internal/generator"
	"hostel_portal/internal/session"
)

var now = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

type env struct {
	ts *httptest.Server
	st app.Stores
}

func newEnv(t *testing.T, rps float64, burst int) *env {
	t.Helper()
	ctx := context.Background()
	st := app.NewMemoryStores()
	ds := generator.New(3, now).Dataset(generator.Sizes{Residents: 80, Rooms: 30, Polls: 4, MovementResidents: 10})
	if err := app.Seed(ctx, st, nil, ds, 2); err != nil {
		t.Fatalf("seed: %v", err)
	}
	h := &httpserver.Handlers{
		Q:        app.NewQueryService(st, nil, time.Minute, clock),
		C:        app.NewCommandService(st, nil, clock),
		Auth:     app.NewAuthService(app.NewStaticAuthenticator(), session.NewManager(time.Hour)),
		Limiter:  httpserver.NewIPLimiter(rps, burst),
		PageSize: 20,
	}
	srv := httpserver.New(false)
	srv.MountHandlers(h)
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return &env{ts: ts, st: st}
}

func (e *env) do(t *testing.T, method, path, token string, body any, hdr ...string) *http.Response {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, e.ts.URL+path, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { _ = res.Body.Close() })
	return res
}

func (e *env) login(t *testing.T, role, email, password string) string {
	t.Helper()
	res := e.do(t, http.MethodPost, "/v1/login", "", map[string]string{"role": role, "email": email, "password": password})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", role, res.StatusCode)
	}
	var s session.Session
	_ = json.NewDecoder(res.Body).Decode(&s)
	return s.Token
}

func decodeBody[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(res.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func expect(t *testing.T, res *http.Response, status int) {
	t.Helper()
	if res.StatusCode != status {
		t.Fatalf("%s %s: status %d, want %d", res.Request.Method, res.Request.URL.Path, res.StatusCode, status)
	}
}

func TestLogin_RolesAndGating(t *testing.T) {
	e := newEnv(t, 100, 100)

	res := e.do(t, http.MethodPost, "/v1/login", "", map[string]string{"role": "student", "email": "student@gmail.com", "password": "wrong"})
	expect(t, res, http.StatusUnauthorized)
	if ct := res.Header.Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("content-type = %q", ct)
	}

	expect(t, e.do(t, http.MethodGet, "/v1/announcements", "", nil), http.StatusUnauthorized)

	guest := e.login(t, "guest", "", "")
	expect(t, e.do(t, http.MethodGet, "/v1/announcements", guest, nil), http.StatusOK)
	expect(t, e.do(t, http.MethodGet, "/v1/menu", guest, nil), http.StatusOK)
	expect(t, e.do(t, http.MethodGet, "/v1/management/dashboard", guest, nil), http.StatusForbidden)
	expect(t, e.do(t, http.MethodGet, "/v1/student/dashboard", guest, nil), http.StatusForbidden)

	student := e.login(t, "student", "student@gmail.com", "student")
	expect(t, e.do(t, http.MethodGet, "/v1/management/residents", student, nil), http.StatusForbidden)
	expect(t, e.do(t, http.MethodGet, "/v1/student/dashboard", student, nil), http.StatusOK)

	expect(t, e.do(t, http.MethodPost, "/v1/logout", student, nil), http.StatusNoContent)
	expect(t, e.do(t, http.MethodGet, "/v1/student/dashboard", student, nil), http.StatusUnauthorized)
}

func TestLogin_ValidationAndRateLimit(t *testing.T) {
	e := newEnv(t, 0.001, 2)

	res := e.do(t, http.MethodPost, "/v1/login", "", map[string]string{"role": "admin"})
	expect(t, res, http.StatusBadRequest)
	p := decodeBody[struct {
		Fields map[string]string `json:"fields"`
	}](t, res)
	if _, ok := p.Fields["role"]; !ok {
		t.Fatalf("expected a role field error, got %+v", p.Fields)
	}

	_ = e.do(t, http.MethodPost, "/v1/login", "", map[string]string{"role": "guest"})
	expect(t, e.do(t, http.MethodPost, "/v1/login", "", map[string]string{"role": "guest"}), http.StatusTooManyRequests)
}

func TestLogin_RateLimitIgnoresForwardedFor(t *testing.T) {
	e := newEnv(t, 0.001, 1)
	body := map[string]string{"role": "student", "email": "student@gmail.com", "password": "wrong"}

	limited := 0
	for i := range 20 {
		res := e.do(t, http.MethodPost, "/v1/login", "", body, "X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i+1))
		if res.StatusCode == http.StatusTooManyRequests {
			limited++
		}
	}
	if limited != 19 {
		t.Fatalf("throttled %d of 20 attempts from one client, want 19", limited)
	}
}

func TestIPLimiter_SweepDropsIdleClients(t *testing.T) {
	at := now
	l := httpserver.NewIPLimiter(1, 1).WithClock(func() time.Time { return at })
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }))

	for _, addr := range []string{"192.0.2.1:4000", "192.0.2.2:4000", "192.0.2.3:4000"} {
		req := httptest.NewRequest(http.MethodPost, "/v1/login", nil)
		req.RemoteAddr = addr
		h.ServeHTTP(httptest.NewRecorder(), req)
		at = at.Add(time.Minute)
	}
	if l.Len() != 3 {
		t.Fatalf("tracked %d clients, want 3", l.Len())
	}
	// last seen at +0m, +1m, +2m; clock now at +3m
	if n := l.Sweep(90 * time.Second); n != 2 || l.Len() != 1 {
		t.Fatalf("swept %d, left %d; want 2 and 1", n, l.Len())
	}
}

func TestManagement_ResidentListPagingAndETag(t *testing.T) {
	e := newEnv(t, 100, 100)
	tok := e.login(t, "management", "management@gmail.com", "management")

	res := e.do(t, http.MethodGet, "/v1/management/residents?page=4&page_size=25", tok, nil)
	expect(t, res, http.StatusOK)
	page := decodeBody[struct {
		Items      []domain.Resident `json:"items"`
		Page       int               `json:"page"`
		TotalPages int               `json:"total_pages"`
		Total      int               `json:"total"`
		HasNext    bool              `json:"has_next"`
	}](t, res)
	if page.Total != 80 || page.TotalPages != 4 || page.Page != 4 || len(page.Items) != 5 || page.HasNext {
		t.Fatalf("unexpected page: total=%d pages=%d page=%d items=%d", page.Total, page.TotalPages, page.Page, len(page.Items))
	}

	etag := res.Header.Get("ETag")
	if etag == "" {
		t.Fatalf("missing ETag")
	}
	expect(t, e.do(t, http.MethodGet, "/v1/management/residents?page=4&page_size=25", tok, nil, "If-None-Match", etag), http.StatusNotModified)
}

func TestManagement_AttendanceToggleAndPolls(t *testing.T) {
	e := newEnv(t, 100, 100)
	tok := e.login(t, "management", "management@gmail.com", "management")

	res := e.do(t, http.MethodPut, "/v1/management/attendance/resident-1", tok, map[string]any{"present": false, "note": "home"})
	expect(t, res, http.StatusOK)
	r := decodeBody[domain.Resident](t, res)
	if a, ok := r.AttendanceOn(domain.DateOf(now)); !ok || a.Present || a.Note != "home" {
		t.Fatalf("attendance not toggled: %+v", a)
	}
	expect(t, e.do(t, http.MethodPut, "/v1/management/attendance/resident-1", tok, map[string]any{"note": "x"}), http.StatusBadRequest)
	expect(t, e.do(t, http.MethodPut, "/v1/management/attendance/nobody", tok, map[string]any{"present": true}), http.StatusNotFound)

	res = e.do(t, http.MethodPost, "/v1/management/polls", tok, map[string]any{"title": "Laundry day", "options": []string{"Sat", "Sun"}})
	expect(t, res, http.StatusCreated)
	p := decodeBody[domain.Poll](t, res)
	expect(t, e.do(t, http.MethodPost, "/v1/management/polls/"+p.ID+"/publish", tok, nil), http.StatusOK)
	expect(t, e.do(t, http.MethodPost, "/v1/management/polls/"+p.ID+"/publish", tok, nil), http.StatusConflict)
	expect(t, e.do(t, http.MethodPost, "/v1/management/polls/"+p.ID+"/options", tok, map[string]string{"text": "Mon"}), http.StatusConflict)

	student := e.login(t, "student", "student@gmail.com", "student")
	res = e.do(t, http.MethodPost, "/v1/student/polls/"+p.ID+"/vote", student, map[string]string{"option_id": p.Options[1].ID})
	expect(t, res, http.StatusOK)
	pr := decodeBody[app.PollResults](t, res)
	if pr.Poll.TotalVotes != 1 || pr.Shares[1].Percent != 100 || pr.Shares[0].Percent != 0 {
		t.Fatalf("unexpected results: %+v", pr)
	}
	expect(t, e.do(t, http.MethodPost, "/v1/student/polls/"+p.ID+"/vote", student, map[string]string{"option_id": "nope"}), http.StatusBadRequest)

	expect(t, e.do(t, http.MethodPost, "/v1/management/polls/"+p.ID+"/close", tok, nil), http.StatusOK)
	expect(t, e.do(t, http.MethodPost, "/v1/student/polls/"+p.ID+"/vote", student, map[string]string{"option_id": p.Options[0].ID}), http.StatusConflict)
}

func TestStudent_ComplaintBookingAndFees(t *testing.T) {
	e := newEnv(t, 100, 100)
	tok := e.login(t, "student", "student@gmail.com", "student")

	res := e.do(t, http.MethodPost, "/v1/student/complaints", tok, map[string]string{"title": "Fan broken", "description": "Ceiling fan stopped", "priority": "urgent"})
	expect(t, res, http.StatusCreated)
	c := decodeBody[domain.Complaint](t, res)
	if c.Priority != domain.PriorityHigh || c.Status != domain.ComplaintPending {
		t.Fatalf("unexpected complaint: %+v", c)
	}
	expect(t, e.do(t, http.MethodPost, "/v1/student/complaints", tok, map[string]string{"title": "  ", "description": "x"}), http.StatusBadRequest)

	tomorrow := string(domain.DateOf(now).AddDays(1))
	later := string(domain.DateOf(now).AddDays(3))
	expect(t, e.do(t, http.MethodPost, "/v1/student/food-bookings", tok, map[string]any{"date": tomorrow, "meals": []string{"lunch"}}), http.StatusBadRequest)
	expect(t, e.do(t, http.MethodPost, "/v1/student/food-bookings", tok, map[string]any{"date": later, "meals": []string{"lunch", "supper"}}), http.StatusCreated)

	res = e.do(t, http.MethodGet, "/v1/student/fees?selected=meal-plan", tok, nil)
	expect(t, res, http.StatusOK)
	q := decodeBody[app.FeeQuote](t, res)
	if q.Total != 21500 {
		t.Fatalf("quote total = %v, want 21500", q.Total)
	}

	res = e.do(t, http.MethodGet, "/v1/student/attendance", tok, nil)
	expect(t, res, http.StatusOK)
	a := decodeBody[app.AttendanceSummary](t, res)
	if a.ResidentID != app.StudentResidentID || a.Present+a.Absent != generator.AttendanceDays {
		t.Fatalf("unexpected attendance: %+v", a)
	}
	expect(t, e.do(t, http.MethodGet, "/v1/student/attendance?from=yesterday", tok, nil), http.StatusBadRequest)
}

func TestHealthz(t *testing.T) {
	e := newEnv(t, 1, 1)
	expect(t, e.do(t, http.MethodGet, "/healthz", "", nil), http.StatusOK)

	res := e.do(t, http.MethodGet, "/v1/nowhere", "", nil)
	expect(t, res, http.StatusNotFound)
	if ct := res.Header.Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("content-type = %q", ct)
	}
	expect(t, e.do(t, http.MethodDelete, "/healthz", "", nil), http.StatusMethodNotAllowed)
}
