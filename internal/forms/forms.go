// Package forms holds the three submission flows: each form is a draft
// buffer validated before any network call, plus one Submit that talks to
// storage. A failed Submit leaves the draft untouched so the user can
// retry; the legacy forms reset themselves on success.
package forms

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"triplog/internal/auth"
	"triplog/internal/store"
)

// ErrValidation marks a submission rejected before reaching the backend.
var ErrValidation = errors.New("validation failed")

var Validate *validator.Validate

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())

	Validate.RegisterValidation("costlevel", func(fl validator.FieldLevel) bool {
		return validCostLevel(fl.Field().String())
	})
	Validate.RegisterValidation("dietarytag", func(fl validator.FieldLevel) bool {
		return validDietaryTag(fl.Field().String())
	})
	// required accepts all-whitespace strings; review and comment bodies
	// must carry content.
	Validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

func validationError(err error) error {
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// authorLabel resolves the display name for a submission: the session's
// identity when one exists, otherwise a tripcode signature for the
// anonymous session.
func authorLabel(identity *auth.Identity, sessionID string) string {
	if identity == nil {
		return auth.Tripcode(sessionID)
	}
	return identity.DisplayName()
}

func userIDOf(identity *auth.Identity) *string {
	if identity == nil {
		return nil
	}
	id := identity.ID
	return &id
}

// AddRestaurant collects a new restaurant together with the submitter's
// first trip review of it.
type AddRestaurant struct {
	Name                string   `json:"name" validate:"required"`
	Description         string   `json:"description"`
	Address             string   `json:"address" validate:"required"`
	CuisineType         string   `json:"cuisine_type" validate:"required"`
	RestaurantType      string   `json:"restaurant_type" validate:"required"`
	CostLevel           string   `json:"cost_level" validate:"omitempty,costlevel"`
	GoogleMapsLink      string   `json:"google_maps_link" validate:"omitempty,url"`
	DietaryRestrictions []string `json:"dietary_restrictions" validate:"omitempty,dive,dietarytag"`
	ImageBase64s        []string `json:"image_base64s"`
	VisitDate           string   `json:"visit_date" validate:"omitempty,datetime=2006-01-02"`
	Rating              int      `json:"rating" validate:"required,min=1,max=5"`
	ReviewText          string   `json:"review_text" validate:"required,notblank"`
}

// Submit looks the restaurant up by its (name, address) pair, creates it
// only when missing, and always inserts exactly one new trip tied to it.
// Nothing is sent when validation fails.
func (f *AddRestaurant) Submit(ctx context.Context, st store.Storage, identity *auth.Identity, sessionID string) (*store.Restaurant, *store.Trip, error) {
	if err := Validate.Struct(f); err != nil {
		return nil, nil, validationError(err)
	}

	costLevel := f.CostLevel
	if costLevel == "" {
		costLevel = DefaultCostLevel
	}
	visitDate := f.VisitDate
	if visitDate == "" {
		visitDate = time.Now().Format("2006-01-02")
	}

	restaurant, err := st.Restaurants.Find(ctx, f.Name, f.Address)
	if errors.Is(err, store.ErrNotFound) {
		restaurant = &store.Restaurant{
			Name:                f.Name,
			Description:         f.Description,
			Address:             f.Address,
			CuisineType:         f.CuisineType,
			RestaurantType:      f.RestaurantType,
			CostLevel:           costLevel,
			GoogleMapsLink:      f.GoogleMapsLink,
			DietaryRestrictions: f.DietaryRestrictions,
			ImageBase64s:        f.ImageBase64s,
		}
		if err := st.Restaurants.Create(ctx, restaurant); err != nil {
			return nil, nil, err
		}
	} else if err != nil {
		return nil, nil, err
	}

	trip := &store.Trip{
		RestaurantID:    restaurant.ID,
		DiscordUsername: authorLabel(identity, sessionID),
		Rating:          f.Rating,
		ReviewText:      strings.TrimSpace(f.ReviewText),
		VisitDate:       visitDate,
		UserID:          userIDOf(identity),
	}
	if err := st.Trips.Create(ctx, trip); err != nil {
		// The restaurant row may already be persisted at this point; the
		// failed trip leaves it without a review (see DESIGN.md).
		return nil, nil, err
	}

	return restaurant, trip, nil
}

// AddReview is the legacy simplified path: one trip against a restaurant
// that already exists.
type AddReview struct {
	RestaurantID string `json:"-" validate:"required,uuid4"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	ReviewText   string `json:"review_text" validate:"required,notblank"`
}

func (f *AddReview) Submit(ctx context.Context, st store.Storage, identity *auth.Identity, sessionID string) (*store.Trip, error) {
	if err := Validate.Struct(f); err != nil {
		return nil, validationError(err)
	}

	trip := &store.Trip{
		RestaurantID:    f.RestaurantID,
		DiscordUsername: authorLabel(identity, sessionID),
		Rating:          f.Rating,
		ReviewText:      strings.TrimSpace(f.ReviewText),
		VisitDate:       time.Now().Format("2006-01-02"),
		UserID:          userIDOf(identity),
	}
	if err := st.Trips.Create(ctx, trip); err != nil {
		return nil, err
	}

	f.Reset()
	return trip, nil
}

func (f *AddReview) Reset() {
	f.Rating = 0
	f.ReviewText = ""
}

// AddComment posts one comment against a known trip.
type AddComment struct {
	TripID      string `json:"-" validate:"required,uuid4"`
	CommentText string `json:"comment_text" validate:"required,notblank"`
}

func (f *AddComment) Submit(ctx context.Context, st store.Storage, identity *auth.Identity, sessionID string) (*store.Comment, error) {
	if err := Validate.Struct(f); err != nil {
		return nil, validationError(err)
	}

	comment := &store.Comment{
		TripID:          f.TripID,
		DiscordUsername: authorLabel(identity, sessionID),
		CommentText:     strings.TrimSpace(f.CommentText),
		UserID:          userIDOf(identity),
	}
	if err := st.Comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	f.Reset()
	return comment, nil
}

func (f *AddComment) Reset() {
	f.CommentText = ""
}
