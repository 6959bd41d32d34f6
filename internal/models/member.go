package models

import "time"

// Member represents a household member taking part in the monthly settlement.
type Member struct {
	// ID is the stable identifier. Settlement entries are ordered by it.
	ID int64

	// Name is the unique display name, also used to log in.
	Name string

	// PasscodeHash is the bcrypt hash of the member's passcode.
	// Never serialized to clients.
	PasscodeHash string

	// CreatedAt is the Unix timestamp when the member was added.
	CreatedAt int64
}

// NewMember creates a member with the creation timestamp set.
// The ID is assigned by the store.
func NewMember(name, passcodeHash string) *Member {
	return &Member{
		Name:         name,
		PasscodeHash: passcodeHash,
		CreatedAt:    time.Now().Unix(),
	}
}

// Admin represents an administrator account.
// Admins can edit or delete any record but do not appear in settlements.
type Admin struct {
	ID           int64
	Name         string
	PasscodeHash string
	CreatedAt    int64
}

// NewAdmin creates an admin with the creation timestamp set.
func NewAdmin(name, passcodeHash string) *Admin {
	return &Admin{
		Name:         name,
		PasscodeHash: passcodeHash,
		CreatedAt:    time.Now().Unix(),
	}
}
