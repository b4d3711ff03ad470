package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"triplog/internal/supabase"
)

var (
	ErrNotFound          = errors.New("resource not found")
	QueryTimeoutDuration = time.Second * 5
)

// TransportError wraps a failure to reach the backend. Read paths treat it
// as non-fatal; write paths surface it to the submitter.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

type Storage struct {
	Restaurants interface {
		List(context.Context) ([]Restaurant, error)
		Find(context.Context, string, string) (*Restaurant, error)
		Create(context.Context, *Restaurant) error
	}
	Trips interface {
		ListAll(context.Context) ([]Trip, error)
		ListByRestaurant(context.Context, string) ([]Trip, error)
		Create(context.Context, *Trip) error
	}
	Comments interface {
		ListByTrip(context.Context, string) ([]Comment, error)
		Create(context.Context, *Comment) error
	}
	Profiles interface {
		GetByID(context.Context, string) (*Profile, error)
	}
}

// NewPostgresStorage wires the stores straight to the project's Postgres
// database, bypassing the hosted REST layer.
func NewPostgresStorage(db *sql.DB) Storage {
	return Storage{
		Restaurants: &RestaurantsStore{db},
		Trips:       &TripsStore{db},
		Comments:    &CommentsStore{db},
		Profiles:    &ProfilesStore{db},
	}
}

// NewSupabaseStorage wires the stores to the hosted backend's REST surface.
func NewSupabaseStorage(client *supabase.Client) Storage {
	return Storage{
		Restaurants: &SupabaseRestaurantsStore{client},
		Trips:       &SupabaseTripsStore{client},
		Comments:    &SupabaseCommentsStore{client},
		Profiles:    &SupabaseProfilesStore{client},
	}
}
