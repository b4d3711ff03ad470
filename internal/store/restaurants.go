package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// Restaurant is a restaurant in the database. The three image columns are
// schema generations that still coexist; Image() resolves them into one
// representation.
type Restaurant struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	Address             string    `json:"address"`
	CuisineType         string    `json:"cuisine_type"`
	RestaurantType      string    `json:"restaurant_type"`
	CostLevel           string    `json:"cost_level"`
	GoogleMapsLink      string    `json:"google_maps_link,omitempty"`
	DietaryRestrictions []string  `json:"dietary_restrictions"`
	ImageURL            string    `json:"image_url,omitempty"`
	ImageBase64         string    `json:"image_base64,omitempty"`
	ImageBase64s        []string  `json:"image_base64s,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

type RestaurantsStore struct {
	db *sql.DB
}

const restaurantColumns = `
	id, name, COALESCE(description, ''), address, cuisine_type,
	restaurant_type, COALESCE(cost_level, 'moderate'),
	COALESCE(google_maps_link, ''), COALESCE(dietary_restrictions, '{}'),
	COALESCE(image_url, ''), COALESCE(image_base64, ''),
	COALESCE(image_base64s, '{}'), created_at`

func scanRestaurant(row interface{ Scan(...any) error }, r *Restaurant) error {
	return row.Scan(
		&r.ID,
		&r.Name,
		&r.Description,
		&r.Address,
		&r.CuisineType,
		&r.RestaurantType,
		&r.CostLevel,
		&r.GoogleMapsLink,
		pq.Array(&r.DietaryRestrictions),
		&r.ImageURL,
		&r.ImageBase64,
		pq.Array(&r.ImageBase64s),
		&r.CreatedAt,
	)
}

func (s *RestaurantsStore) List(ctx context.Context) ([]Restaurant, error) {
	query := `
		SELECT ` + restaurantColumns + `
		FROM restaurants
		ORDER BY created_at DESC
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []Restaurant
	for rows.Next() {
		var r Restaurant
		if err := scanRestaurant(rows, &r); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, r)
	}
	return restaurants, rows.Err()
}

// Find returns the restaurant matching name and address exactly, or
// ErrNotFound. The pair is the soft uniqueness key the submission flow
// checks before creating a new row.
func (s *RestaurantsStore) Find(ctx context.Context, name, address string) (*Restaurant, error) {
	query := `
		SELECT ` + restaurantColumns + `
		FROM restaurants
		WHERE name = $1 AND address = $2
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var r Restaurant
	err := scanRestaurant(s.db.QueryRowContext(ctx, query, name, address), &r)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *RestaurantsStore) Create(ctx context.Context, restaurant *Restaurant) error {
	query := `
		INSERT INTO restaurants
			(name, description, address, cuisine_type, restaurant_type,
			 cost_level, google_maps_link, dietary_restrictions, image_base64s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return s.db.QueryRowContext(
		ctx, query,
		restaurant.Name,
		restaurant.Description,
		restaurant.Address,
		restaurant.CuisineType,
		restaurant.RestaurantType,
		restaurant.CostLevel,
		restaurant.GoogleMapsLink,
		pq.Array(restaurant.DietaryRestrictions),
		pq.Array(restaurant.ImageBase64s),
	).Scan(&restaurant.ID, &restaurant.CreatedAt)
}
