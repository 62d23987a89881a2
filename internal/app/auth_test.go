package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hostel_portal/internal/app"
	"hostel_portal/internal/domain"
	"hostel_portal/internal/session"
)

func TestStaticAuthenticator(t *testing.T) {
	a := app.NewStaticAuthenticator()
	ctx := context.Background()

	cases := []struct {
		name     string
		role     domain.Role
		email    string
		password string
		wantErr  bool
		resident string
	}{
		{"student", domain.RoleStudent, "Student@gmail.com ", "student", false, app.StudentResidentID},
		{"management", domain.RoleManagement, "management@gmail.com", "management", false, ""},
		{"guest needs nothing", domain.RoleGuest, "", "", false, ""},
		{"wrong password", domain.RoleStudent, "student@gmail.com", "nope", true, ""},
		{"role mismatch", domain.RoleManagement, "student@gmail.com", "student", true, ""},
		{"unknown role", domain.Role("admin"), "management@gmail.com", "management", true, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := a.Authenticate(ctx, tc.role, tc.email, tc.password)
			if tc.wantErr {
				if !errors.Is(err, domain.ErrInvalidCredentials) {
					t.Fatalf("expected ErrInvalidCredentials, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("err: %v", err)
			}
			if p.Role != tc.role || p.ResidentID != tc.resident {
				t.Fatalf("unexpected principal: %+v", p)
			}
		})
	}
}

func TestAuthService_LoginLogout(t *testing.T) {
	ctx := context.Background()
	cur := now
	mgr := session.NewManager(time.Hour).WithClock(func() time.Time { return cur })
	svc := app.NewAuthService(app.NewStaticAuthenticator(), mgr)

	if _, err := svc.Login(ctx, domain.RoleStudent, "student@gmail.com", "bad"); err == nil {
		t.Fatalf("expected login failure")
	}
	s, err := svc.Login(ctx, domain.RoleStudent, "student@gmail.com", "student")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got, ok := svc.Session(s.Token); !ok || got.ResidentID != app.StudentResidentID {
		t.Fatalf("session lookup: %+v %v", got, ok)
	}

	svc.Logout(s.Token)
	if _, ok := svc.Session(s.Token); ok {
		t.Fatalf("session should be gone after logout")
	}

	s, _ = svc.Login(ctx, domain.RoleGuest, "", "")
	cur = cur.Add(2 * time.Hour)
	if n := svc.Sweep(); n != 1 {
		t.Fatalf("Sweep removed %d, want 1", n)
	}
	if _, ok := svc.Session(s.Token); ok {
		t.Fatalf("expired session still served")
	}
}
