package store

import (
	"context"
	"errors"

	"triplog/internal/supabase"
)

// Supabase-backed stores. Each operation is one PostgREST request; reach
// failures come back as TransportError so callers can apply the degrade
// policy without knowing about the REST layer.

type SupabaseRestaurantsStore struct {
	client *supabase.Client
}

// restaurantInsert is the insertable subset of Restaurant; id and
// created_at are server-assigned.
type restaurantInsert struct {
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	Address             string   `json:"address"`
	CuisineType         string   `json:"cuisine_type"`
	RestaurantType      string   `json:"restaurant_type"`
	CostLevel           string   `json:"cost_level"`
	GoogleMapsLink      string   `json:"google_maps_link,omitempty"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	ImageBase64s        []string `json:"image_base64s,omitempty"`
}

func (s *SupabaseRestaurantsStore) List(ctx context.Context) ([]Restaurant, error) {
	var restaurants []Restaurant
	err := s.client.From("restaurants").
		Select("*").
		Order("created_at", false).
		Get(ctx, &restaurants)
	if err != nil {
		return nil, &TransportError{Op: "list restaurants", Err: err}
	}
	return restaurants, nil
}

func (s *SupabaseRestaurantsStore) Find(ctx context.Context, name, address string) (*Restaurant, error) {
	var r Restaurant
	err := s.client.From("restaurants").
		Select("*").
		Eq("name", name).
		Eq("address", address).
		Single().
		Get(ctx, &r)
	if errors.Is(err, supabase.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &TransportError{Op: "find restaurant", Err: err}
	}
	return &r, nil
}

func (s *SupabaseRestaurantsStore) Create(ctx context.Context, restaurant *Restaurant) error {
	row := restaurantInsert{
		Name:                restaurant.Name,
		Description:         restaurant.Description,
		Address:             restaurant.Address,
		CuisineType:         restaurant.CuisineType,
		RestaurantType:      restaurant.RestaurantType,
		CostLevel:           restaurant.CostLevel,
		GoogleMapsLink:      restaurant.GoogleMapsLink,
		DietaryRestrictions: restaurant.DietaryRestrictions,
		ImageBase64s:        restaurant.ImageBase64s,
	}
	if row.DietaryRestrictions == nil {
		row.DietaryRestrictions = []string{}
	}

	var stored Restaurant
	err := s.client.From("restaurants").Single().Insert(ctx, row, &stored)
	if err != nil {
		return &TransportError{Op: "create restaurant", Err: err}
	}
	restaurant.ID = stored.ID
	restaurant.CreatedAt = stored.CreatedAt
	return nil
}

type SupabaseTripsStore struct {
	client *supabase.Client
}

type tripInsert struct {
	RestaurantID    string  `json:"restaurant_id"`
	DiscordUsername string  `json:"discord_username"`
	Rating          int     `json:"rating"`
	ReviewText      string  `json:"review_text"`
	VisitDate       string  `json:"visit_date,omitempty"`
	UserID          *string `json:"user_id"`
}

func (s *SupabaseTripsStore) ListAll(ctx context.Context) ([]Trip, error) {
	var trips []Trip
	err := s.client.From("trips").
		Select("*").
		Order("created_at", false).
		Get(ctx, &trips)
	if err != nil {
		return nil, &TransportError{Op: "list trips", Err: err}
	}
	return trips, nil
}

func (s *SupabaseTripsStore) ListByRestaurant(ctx context.Context, restaurantID string) ([]Trip, error) {
	var trips []Trip
	err := s.client.From("trips").
		Select("*").
		Eq("restaurant_id", restaurantID).
		Order("created_at", false).
		Get(ctx, &trips)
	if err != nil {
		return nil, &TransportError{Op: "list trips for restaurant", Err: err}
	}
	return trips, nil
}

func (s *SupabaseTripsStore) Create(ctx context.Context, trip *Trip) error {
	row := tripInsert{
		RestaurantID:    trip.RestaurantID,
		DiscordUsername: trip.DiscordUsername,
		Rating:          trip.Rating,
		ReviewText:      trip.ReviewText,
		VisitDate:       trip.VisitDate,
		UserID:          trip.UserID,
	}

	var stored Trip
	err := s.client.From("trips").Single().Insert(ctx, row, &stored)
	if err != nil {
		return &TransportError{Op: "create trip", Err: err}
	}
	trip.ID = stored.ID
	trip.CreatedAt = stored.CreatedAt
	return nil
}

type SupabaseCommentsStore struct {
	client *supabase.Client
}

type commentInsert struct {
	TripID          string  `json:"trip_id"`
	DiscordUsername string  `json:"discord_username"`
	CommentText     string  `json:"comment_text"`
	UserID          *string `json:"user_id"`
}

func (s *SupabaseCommentsStore) ListByTrip(ctx context.Context, tripID string) ([]Comment, error) {
	var comments []Comment
	err := s.client.From("comments").
		Select("*").
		Eq("trip_id", tripID).
		Order("created_at", true).
		Get(ctx, &comments)
	if err != nil {
		return nil, &TransportError{Op: "list comments", Err: err}
	}
	return comments, nil
}

func (s *SupabaseCommentsStore) Create(ctx context.Context, comment *Comment) error {
	row := commentInsert{
		TripID:          comment.TripID,
		DiscordUsername: comment.DiscordUsername,
		CommentText:     comment.CommentText,
		UserID:          comment.UserID,
	}

	var stored Comment
	err := s.client.From("comments").Single().Insert(ctx, row, &stored)
	if err != nil {
		return &TransportError{Op: "create comment", Err: err}
	}
	comment.ID = stored.ID
	comment.CreatedAt = stored.CreatedAt
	return nil
}

type SupabaseProfilesStore struct {
	client *supabase.Client
}

func (s *SupabaseProfilesStore) GetByID(ctx context.Context, id string) (*Profile, error) {
	var p Profile
	err := s.client.From("profiles").
		Select("*").
		Eq("id", id).
		Single().
		Get(ctx, &p)
	if errors.Is(err, supabase.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &TransportError{Op: "get profile", Err: err}
	}
	return &p, nil
}
