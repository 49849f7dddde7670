package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"studiocatalog/internal/domain"
	jwtsvc "studiocatalog/internal/pkg/jwt"
)

// AdminReader is the slice of the admin repository the auth service
// needs.
type AdminReader interface {
	GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
	GetByID(ctx context.Context, id int64) (*domain.AdminUser, error)
}

// Session is what a signed-in admin holds: the bearer token plus the
// account it belongs to.
type Session struct {
	Token string            `json:"token"`
	Admin *domain.AdminUser `json:"admin"`
}

// Service signs admins in and out and keeps the auth-state listeners.
// Tokens are stateless JWTs; sign-out invalidates nothing server-side,
// it only drops the session state and notifies listeners.
type Service struct {
	admins AdminReader
	jwt    *jwtsvc.Service

	mu        sync.Mutex
	listeners map[int64]func(*Session)
	nextID    int64
}

func NewService(admins AdminReader, jwt *jwtsvc.Service) *Service {
	return &Service{
		admins:    admins,
		jwt:       jwt,
		listeners: make(map[int64]func(*Session)),
	}
}

// SignIn verifies credentials and issues a session. Wrong email and
// wrong password are indistinguishable to the caller.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	admin, err := s.admins.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(admin.ID, admin.Email)
	if err != nil {
		return nil, err
	}

	admin.PasswordHash = ""
	session := &Session{Token: token, Admin: admin}
	s.notify(session)
	return session, nil
}

// SignOut notifies listeners that the session ended.
func (s *Service) SignOut() {
	s.notify(nil)
}

// Session resolves a bearer token back into a live session, or
// ErrNoSession when the token is missing or invalid.
func (s *Service) Session(ctx context.Context, token string) (*Session, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrNoSession
	}

	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, ErrNoSession
	}

	admin, err := s.admins.GetByID(ctx, claims.AdminID)
	if err != nil {
		return nil, ErrNoSession
	}

	admin.PasswordHash = ""
	return &Session{Token: token, Admin: admin}, nil
}

// OnSessionChange registers an auth-state listener and returns its
// unsubscribe function. Listeners receive the new session on sign-in
// and nil on sign-out.
func (s *Service) OnSessionChange(fn func(*Session)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Service) notify(session *Session) {
	s.mu.Lock()
	fns := make([]func(*Session), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(session)
	}
}
