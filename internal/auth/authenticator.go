package auth

import (
	"context"

	"github.com/mmynk/messbook/internal/models"
)

// Role distinguishes household members from administrators in tokens and context.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Principal is an authenticated caller.
type Principal struct {
	ID   int64
	Name string
	Role Role
}

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping the credential method (passcodes, passkeys, OAuth, etc.)
// without changing the service layer code.
type Authenticator interface {
	// RegisterMember creates a member account with a hashed credential.
	RegisterMember(ctx context.Context, name, credential string) (*models.Member, error)

	// RegisterAdmin creates an administrator account with a hashed credential.
	RegisterAdmin(ctx context.Context, name, credential string) (*models.Admin, error)

	// AuthenticateMember verifies a member's credential.
	AuthenticateMember(ctx context.Context, name, credential string) (*Principal, error)

	// AuthenticateAdmin verifies an administrator's credential.
	AuthenticateAdmin(ctx context.Context, name, credential string) (*Principal, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
