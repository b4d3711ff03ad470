package store

import (
	"context"
	"database/sql"
	"time"
)

// Profile mirrors the auth user. Earlier revisions joined trips to
// profiles; current flows resolve display names at write time instead, so
// nothing reads this beyond the store itself.
type Profile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ProfilesStore struct {
	db *sql.DB
}

func (s *ProfilesStore) GetByID(ctx context.Context, id string) (*Profile, error) {
	query := `
		SELECT id, username, avatar_url, created_at
		FROM profiles
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var p Profile
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Username,
		&p.AvatarURL,
		&p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
