package service

import (
	"context"
	"fmt"

	"github.com/rgoyal/flipfolio/internal/auth"
	"github.com/rgoyal/flipfolio/internal/models"
)

// AuthService handles registration, login, and the observable session
// state other components subscribe to.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	sessions      *auth.SessionBroadcaster
}

// NewAuthService creates an AuthService.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, sessions *auth.SessionBroadcaster) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		sessions:      sessions,
	}
}

// Register creates an account and signs the user in, returning the user
// and a session token.
func (s *AuthService) Register(ctx context.Context, email, displayName, password string) (*models.User, string, error) {
	user, err := s.authenticator.Register(ctx, email, displayName, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.sessions.Set(user)
	return user, token, nil
}

// Login verifies credentials and returns the user and a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.sessions.Set(user)
	return user, token, nil
}

// Logout clears the observable session state. Tokens already issued stay
// valid until expiry; this only updates what subscribers see.
func (s *AuthService) Logout() {
	s.sessions.Set(nil)
}

// Sessions exposes the broadcaster so other components can subscribe to
// sign-in state changes.
func (s *AuthService) Sessions() *auth.SessionBroadcaster {
	return s.sessions
}
