package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/messbook/internal/models"
	"github.com/mmynk/messbook/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid name or passcode")
	ErrWeakPasscode       = errors.New("passcode must be at least 8 characters")
	ErrNameRequired       = errors.New("name is required")
	ErrNameTaken          = errors.New("name already registered")
)

// minPasscodeLength is the shortest passcode accepted on registration.
const minPasscodeLength = 8

// CredentialStorage defines the persistence the authenticator needs.
// This allows the authenticator to be independent of the storage implementation.
type CredentialStorage interface {
	CreateMember(ctx context.Context, member *models.Member) error
	GetMemberByName(ctx context.Context, name string) (*models.Member, error)
	CreateAdmin(ctx context.Context, admin *models.Admin) error
	GetAdminByName(ctx context.Context, name string) (*models.Admin, error)
}

// PasscodeAuthenticator implements passcode authentication using bcrypt.
type PasscodeAuthenticator struct {
	storage CredentialStorage
	lockout *Lockout
}

var _ Authenticator = (*PasscodeAuthenticator)(nil)

// NewPasscodeAuthenticator creates a passcode authenticator.
// lockout may be nil to disable failed-attempt throttling.
func NewPasscodeAuthenticator(storage CredentialStorage, lockout *Lockout) *PasscodeAuthenticator {
	return &PasscodeAuthenticator{
		storage: storage,
		lockout: lockout,
	}
}

// ValidateCredential checks if the passcode meets minimum requirements.
func (a *PasscodeAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < minPasscodeLength {
		return ErrWeakPasscode
	}
	return nil
}

func (a *PasscodeAuthenticator) hash(name, credential string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrNameRequired
	}
	if err := a.ValidateCredential(credential); err != nil {
		return "", err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash passcode: %w", err)
	}
	return string(hashed), nil
}

// RegisterMember creates a new member with a hashed passcode.
func (a *PasscodeAuthenticator) RegisterMember(ctx context.Context, name, credential string) (*models.Member, error) {
	name = strings.TrimSpace(name)
	hashed, err := a.hash(name, credential)
	if err != nil {
		return nil, err
	}

	member := models.NewMember(name, hashed)
	if err := a.storage.CreateMember(ctx, member); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, ErrNameTaken
		}
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	return member, nil
}

// RegisterAdmin creates a new administrator with a hashed passcode.
func (a *PasscodeAuthenticator) RegisterAdmin(ctx context.Context, name, credential string) (*models.Admin, error) {
	name = strings.TrimSpace(name)
	hashed, err := a.hash(name, credential)
	if err != nil {
		return nil, err
	}

	admin := models.NewAdmin(name, hashed)
	if err := a.storage.CreateAdmin(ctx, admin); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, ErrNameTaken
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	return admin, nil
}

// AuthenticateMember verifies the name and passcode of a member.
func (a *PasscodeAuthenticator) AuthenticateMember(ctx context.Context, name, credential string) (*Principal, error) {
	return a.authenticate(ctx, RoleMember, name, credential, func() (*Principal, string, error) {
		member, err := a.storage.GetMemberByName(ctx, name)
		if err != nil {
			return nil, "", err
		}
		return &Principal{ID: member.ID, Name: member.Name, Role: RoleMember}, member.PasscodeHash, nil
	})
}

// AuthenticateAdmin verifies the name and passcode of an administrator.
func (a *PasscodeAuthenticator) AuthenticateAdmin(ctx context.Context, name, credential string) (*Principal, error) {
	return a.authenticate(ctx, RoleAdmin, name, credential, func() (*Principal, string, error) {
		admin, err := a.storage.GetAdminByName(ctx, name)
		if err != nil {
			return nil, "", err
		}
		return &Principal{ID: admin.ID, Name: admin.Name, Role: RoleAdmin}, admin.PasscodeHash, nil
	})
}

func (a *PasscodeAuthenticator) authenticate(ctx context.Context, role Role, name, credential string, lookup func() (*Principal, string, error)) (*Principal, error) {
	key := lockoutKey(ctx, role, name)
	if err := a.lockout.Check(key); err != nil {
		return nil, err
	}

	principal, hash, err := lookup()
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up %s: %w", role, err)
		}
		a.lockout.Fail(key)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(credential)); err != nil {
		a.lockout.Fail(key)
		return nil, ErrInvalidCredentials
	}

	a.lockout.Reset(key)
	return principal, nil
}
