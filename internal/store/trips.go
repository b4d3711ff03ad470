package store

import (
	"context"
	"database/sql"
	"time"
)

// Trip is one logged restaurant visit with its review. The newest trip for
// a restaurant is treated as the authoritative trip log.
type Trip struct {
	ID              string    `json:"id"`
	RestaurantID    string    `json:"restaurant_id"`
	DiscordUsername string    `json:"discord_username"`
	Rating          int       `json:"rating"` // 1-5
	ReviewText      string    `json:"review_text"`
	VisitDate       string    `json:"visit_date,omitempty"`
	UserID          *string   `json:"user_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type TripsStore struct {
	db *sql.DB
}

const tripColumns = `
	id, restaurant_id, discord_username, rating, review_text,
	COALESCE(visit_date::text, ''), user_id, created_at`

func scanTrip(row interface{ Scan(...any) error }, t *Trip) error {
	return row.Scan(
		&t.ID,
		&t.RestaurantID,
		&t.DiscordUsername,
		&t.Rating,
		&t.ReviewText,
		&t.VisitDate,
		&t.UserID,
		&t.CreatedAt,
	)
}

func (s *TripsStore) ListAll(ctx context.Context) ([]Trip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trips
		ORDER BY created_at DESC
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTrips(rows)
}

func (s *TripsStore) ListByRestaurant(ctx context.Context, restaurantID string) ([]Trip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE restaurant_id = $1
		ORDER BY created_at DESC
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTrips(rows)
}

func collectTrips(rows *sql.Rows) ([]Trip, error) {
	var trips []Trip
	for rows.Next() {
		var t Trip
		if err := scanTrip(rows, &t); err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

func (s *TripsStore) Create(ctx context.Context, trip *Trip) error {
	query := `
		INSERT INTO trips
			(restaurant_id, discord_username, rating, review_text, visit_date, user_id)
		VALUES ($1, $2, $3, $4, NULLIF($5, '')::date, $6)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return s.db.QueryRowContext(
		ctx, query,
		trip.RestaurantID,
		trip.DiscordUsername,
		trip.Rating,
		trip.ReviewText,
		trip.VisitDate,
		trip.UserID,
	).Scan(&trip.ID, &trip.CreatedAt)
}
