package app

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"hostel_portal/internal/adapters/observability"
	"hostel_portal/internal/domain"
	"hostel_portal/internal/session"
)

// StudentResidentID is the resident the demo student account acts as.
const StudentResidentID = "resident-0"

type credential struct {
	email, password string
	principal       domain.Principal
}

// StaticAuthenticator accepts the two fixed demo accounts. Guests need no
// credentials.
type StaticAuthenticator struct {
	accounts map[domain.Role]credential
}

func NewStaticAuthenticator() StaticAuthenticator {
	return StaticAuthenticator{accounts: map[domain.Role]credential{
		domain.RoleStudent: {
			email: "student@gmail.com", password: "student",
			principal: domain.Principal{Role: domain.RoleStudent, Email: "student@gmail.com", ResidentID: StudentResidentID},
		},
		domain.RoleManagement: {
			email: "management@gmail.com", password: "management",
			principal: domain.Principal{Role: domain.RoleManagement, Email: "management@gmail.com"},
		},
	}}
}

func (a StaticAuthenticator) Authenticate(_ context.Context, role domain.Role, email, password string) (domain.Principal, error) {
	if role == domain.RoleGuest {
		return domain.Principal{Role: domain.RoleGuest}, nil
	}
	c, ok := a.accounts[role]
	if !ok || !strings.EqualFold(strings.TrimSpace(email), c.email) || password != c.password {
		return domain.Principal{}, domain.ErrInvalidCredentials
	}
	return c.principal, nil
}

// AuthService turns a successful login into a session.
type AuthService struct {
	auth     domain.Authenticator
	sessions *session.Manager
}

func NewAuthService(auth domain.Authenticator, sessions *session.Manager) *AuthService {
	return &AuthService{auth: auth, sessions: sessions}
}

func (s *AuthService) Login(ctx context.Context, role domain.Role, email, password string) (session.Session, error) {
	p, err := s.auth.Authenticate(ctx, role, email, password)
	if err != nil {
		log.Warn().Str("role", string(role)).Str("email", email).Msg("login rejected")
		return session.Session{}, err
	}
	sess := s.sessions.Create(p)
	s.gauge()
	log.Info().Str("role", string(p.Role)).Str("email", p.Email).Msg("login")
	return sess, nil
}

func (s *AuthService) Logout(token string) {
	s.sessions.Delete(token)
	s.gauge()
}

// Sweep drops expired sessions; cmd/api runs it on a ticker.
func (s *AuthService) Sweep() int {
	n := s.sessions.Sweep()
	s.gauge()
	return n
}

func (s *AuthService) gauge() { observability.ActiveSessions.Set(float64(s.sessions.Len())) }

func (s *AuthService) Session(token string) (session.Session, bool) {
	return s.sessions.Get(token)
}
