package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/cashbook/backend/internal/audit"
	"github.com/rs/zerolog"
)

const maxDisplayNameLen = 150

var ErrInvalidDisplayName = fmt.Errorf("%w: display name must be 1 to %d characters", ErrValidation, maxDisplayNameLen)

// Profile is the public face of an owner, shown by BID lookups.
type Profile struct {
	OwnerID     string `json:"owner_id"`
	DisplayName string `json:"display_name"`
}

// ProfileService keeps the display name other users see next to an owner's
// books. Identity itself lives with the auth provider.
type ProfileService struct {
	db     *sql.DB
	audit  *audit.Logger
	logger zerolog.Logger
}

func NewProfileService(db *sql.DB, auditLog *audit.Logger, logger zerolog.Logger) *ProfileService {
	return &ProfileService{db: db, audit: auditLog, logger: logger}
}

// GetProfile returns the owner's profile. An owner who never set one gets an
// empty display name rather than an error.
func (s *ProfileService) GetProfile(ctx context.Context, owner string) (*Profile, error) {
	p := &Profile{OwnerID: owner}
	err := s.db.QueryRowContext(ctx,
		`SELECT display_name FROM profiles WHERE owner_id = $1`, owner).Scan(&p.DisplayName)
	if err == sql.ErrNoRows {
		return p, nil
	}
	if err != nil {
		return nil, classifyStoreError(err)
	}
	return p, nil
}

// SetDisplayName creates or replaces the owner's display name.
func (s *ProfileService) SetDisplayName(ctx context.Context, owner, name string) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > maxDisplayNameLen {
		return nil, ErrInvalidDisplayName
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (owner_id, display_name) VALUES ($1, $2)
		ON CONFLICT (owner_id) DO UPDATE SET display_name = EXCLUDED.display_name`,
		owner, name)
	if err != nil {
		s.logger.Error().Err(err).Msg("[PROFILE] upsert failed")
		return nil, classifyStoreError(err)
	}

	s.audit.LogOperation(audit.EventProfileUpdated, owner, 0, 0, "")
	return &Profile{OwnerID: owner, DisplayName: name}, nil
}
