// Package auth implements the authentication collaborator: credential
// verification, session tokens, and the observable current-session state
// the rest of the application subscribes to.
package auth

import (
	"context"

	"github.com/rgoyal/flipfolio/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods
// (password, passkeys, OAuth, etc.) without changing the service layer.
type Authenticator interface {
	// Register creates a new user account with the given email and
	// credential. The credential format depends on the implementation.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credentials and returns the user on
	// success.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the
	// implementation's requirements (length, format, ...).
	ValidateCredential(credential string) error
}
