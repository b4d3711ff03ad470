package store

import (
	"context"
	"database/sql"
	"time"
)

// Comment is a reply on a trip log.
type Comment struct {
	ID              string    `json:"id"`
	TripID          string    `json:"trip_id"`
	DiscordUsername string    `json:"discord_username"`
	CommentText     string    `json:"comment_text"`
	UserID          *string   `json:"user_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type CommentsStore struct {
	db *sql.DB
}

// ListByTrip returns the trip's comments oldest first, unlike trips which
// list newest first.
func (s *CommentsStore) ListByTrip(ctx context.Context, tripID string) ([]Comment, error) {
	query := `
		SELECT id, trip_id, discord_username, comment_text, user_id, created_at
		FROM comments
		WHERE trip_id = $1
		ORDER BY created_at ASC
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		err := rows.Scan(
			&c.ID,
			&c.TripID,
			&c.DiscordUsername,
			&c.CommentText,
			&c.UserID,
			&c.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (s *CommentsStore) Create(ctx context.Context, comment *Comment) error {
	query := `
		INSERT INTO comments (trip_id, discord_username, comment_text, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return s.db.QueryRowContext(
		ctx, query,
		comment.TripID,
		comment.DiscordUsername,
		comment.CommentText,
		comment.UserID,
	).Scan(&comment.ID, &comment.CreatedAt)
}
