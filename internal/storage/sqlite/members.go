package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/messbook/internal/models"
	"github.com/mmynk/messbook/internal/storage"
)

// CreateMember inserts a new member into the database.
func (s *SQLiteStore) CreateMember(ctx context.Context, member *models.Member) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO members (name, passcode_hash, created_at) VALUES (?, ?, ?)",
		member.Name, member.PasscodeHash, member.CreatedAt,
	)
	if err != nil {
		return translateError(err, "member")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read member id: %w", err)
	}
	member.ID = id
	return nil
}

// GetMember retrieves a member by ID.
func (s *SQLiteStore) GetMember(ctx context.Context, id int64) (*models.Member, error) {
	return scanMember(s.db.QueryRowContext(ctx,
		"SELECT id, name, passcode_hash, created_at FROM members WHERE id = ?", id,
	), fmt.Sprintf("member %d", id))
}

// GetMemberByName retrieves a member by name.
func (s *SQLiteStore) GetMemberByName(ctx context.Context, name string) (*models.Member, error) {
	return scanMember(s.db.QueryRowContext(ctx,
		"SELECT id, name, passcode_hash, created_at FROM members WHERE name = ?", name,
	), fmt.Sprintf("member %q", name))
}

// ListMembers returns every member ordered by ID.
func (s *SQLiteStore) ListMembers(ctx context.Context) ([]models.Member, error) {
	return listMembers(ctx, s.db)
}

func listMembers(ctx context.Context, q queryer) ([]models.Member, error) {
	rows, err := q.QueryContext(ctx, "SELECT id, name, passcode_hash, created_at FROM members ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	members := []models.Member{}
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.PasscodeHash, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}

func scanMember(row *sql.Row, label string) (*models.Member, error) {
	member := &models.Member{}
	err := row.Scan(&member.ID, &member.Name, &member.PasscodeHash, &member.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, label)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", label, err)
	}
	return member, nil
}

// CreateAdmin inserts a new administrator.
func (s *SQLiteStore) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO admins (name, passcode_hash, created_at) VALUES (?, ?, ?)",
		admin.Name, admin.PasscodeHash, admin.CreatedAt,
	)
	if err != nil {
		return translateError(err, "admin")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read admin id: %w", err)
	}
	admin.ID = id
	return nil
}

// GetAdminByName retrieves an administrator by name.
func (s *SQLiteStore) GetAdminByName(ctx context.Context, name string) (*models.Admin, error) {
	admin := &models.Admin{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, passcode_hash, created_at FROM admins WHERE name = ?", name,
	).Scan(&admin.ID, &admin.Name, &admin.PasscodeHash, &admin.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: admin %q", storage.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return admin, nil
}
