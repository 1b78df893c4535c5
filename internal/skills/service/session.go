package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/myskills/internal/skills/domain"
	"github.com/aussiebroadwan/myskills/internal/skills/identity"
	"github.com/aussiebroadwan/myskills/internal/skills/store"
	"github.com/aussiebroadwan/myskills/pkg/idx"
	"github.com/aussiebroadwan/myskills/pkg/jwtx"
	"github.com/aussiebroadwan/myskills/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoSession          = errors.New("no valid session")
)

// Issuer is the "iss" claim of session cookies.
const Issuer = "myskills"

// LoginRequest carries the login form plus request metadata kept with the
// session.
type LoginRequest struct {
	Username  string
	Password  string
	Code      string // TOTP, only for users with a second factor
	UserAgent string
	IPAddress string
}

// SessionService signs users in and out. The browser gets a signed token
// naming a server side session; both must be valid for a request to count
// as authenticated.
type SessionService struct {
	Store     store.Store
	Directory *identity.Directory
	Signer    jwtx.Signer
	Verifier  jwtx.Verifier
	TTL       time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL <= 0 {
		return jwtx.DefaultSessionTTL
	}
	return s.TTL
}

// Login checks the credentials and opens a session. It returns the signed
// token for the session cookie.
func (s *SessionService) Login(ctx context.Context, req LoginRequest) (string, domain.Session, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Directory.Authenticate(req.Username, req.Password, req.Code)
	if errors.Is(err, identity.ErrInvalidCredentials) {
		l.Warn("login failed", slog.String("username", req.Username))
		return "", domain.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", domain.Session{}, fmt.Errorf("authenticate: %w", err)
	}

	now := s.now()
	sess := domain.Session{
		ID:        idx.NewAt(now).String(),
		Username:  user.Username,
		UserAgent: req.UserAgent,
		IPAddress: req.IPAddress,
		CreatedAt: now.Truncate(time.Second),
		ExpiresAt: now.Add(s.ttl()).Truncate(time.Second),
	}

	if err := s.Store.Sessions().CreateSession(ctx, sess); err != nil {
		return "", domain.Session{}, fmt.Errorf("create session: %w", err)
	}

	claims := jwtx.NewSessionClaims(user.Username, sess.ID, user.Roles, s.ttl(), Issuer, now)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		_ = s.Store.Sessions().DeleteSession(ctx, sess.ID)
		return "", domain.Session{}, fmt.Errorf("sign session: %w", err)
	}

	l.Info("login succeeded",
		slog.String("username", user.Username),
		slog.String("session_id", sess.ID),
	)
	return token, sess, nil
}

// Resolve returns the live session named by token. Any failure, including
// an expired or deleted session, is ErrNoSession.
func (s *SessionService) Resolve(ctx context.Context, token string) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, ErrNoSession
	}

	claims, err := s.Verifier.Verify(token)
	if err != nil {
		slogx.FromContext(ctx).Debug("session token rejected", slog.Any("error", err))
		return domain.Session{}, ErrNoSession
	}

	sess, err := s.Store.Sessions().GetSessionByID(ctx, claims.SID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Session{}, ErrNoSession
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}

	if sess.Username != claims.Subject || sess.Expired(s.now()) {
		return domain.Session{}, ErrNoSession
	}
	if _, ok := s.Directory.Lookup(sess.Username); !ok {
		return domain.Session{}, ErrNoSession
	}

	return sess, nil
}

// Logout ends the session named by token. Invalid tokens are ignored.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		return nil
	}

	if err := s.Store.Sessions().DeleteSession(ctx, claims.SID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	slogx.FromContext(ctx).Info("logout", slog.String("username", claims.Subject), slog.String("session_id", claims.SID))
	return nil
}
