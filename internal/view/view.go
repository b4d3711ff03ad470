// Package view maps entities to their rendered representations. Nothing
// here touches the network or holds state beyond ephemeral widget toggles.
package view

import (
	"fmt"
	"math"
	"strings"
	"time"

	"triplog/internal/store"
)

const (
	starFilled = "★"
	starEmpty  = "☆"

	longDateLayout  = "January 2, 2006"
	visitDateLayout = "2006-01-02"

	maxCardDietaryTags = 3
)

// Stars renders five positions with the first filled of them lit.
func Stars(filled int) string {
	if filled < 0 {
		filled = 0
	}
	if filled > 5 {
		filled = 5
	}
	return strings.Repeat(starFilled, filled) + strings.Repeat(starEmpty, 5-filled)
}

// StarRating is the five-position rating widget. In interactive mode a
// click on position i reports rating i+1 through OnChange; read-only
// widgets ignore clicks.
type StarRating struct {
	Rating   int
	ReadOnly bool
	OnChange func(rating int)
}

// Click handles a click on position (0-indexed).
func (s *StarRating) Click(position int) {
	if s.ReadOnly || position < 0 || position > 4 {
		return
	}
	s.Rating = position + 1
	if s.OnChange != nil {
		s.OnChange(s.Rating)
	}
}

// Render shows the widget's current rating.
func (s *StarRating) Render() string {
	return Stars(s.Rating)
}

var costGlyphs = map[string]string{
	"cheap":               "฿",
	"moderate":            "฿฿",
	"expensive":           "฿฿฿",
	"very-expensive":      "฿฿฿฿",
	"extremely-expensive": "฿฿฿฿฿",
}

var costLevelDisplays = map[string]string{
	"cheap":               "฿ - Budget friendly (under ฿200)",
	"moderate":            "฿฿ - Moderate (฿200-500)",
	"expensive":           "฿฿฿ - Expensive (฿500-1000)",
	"very-expensive":      "฿฿฿฿ - Very expensive (over ฿1000)",
	"extremely-expensive": "฿฿฿฿฿ - Extremely expensive (over ฿2000)",
}

// CostGlyphs renders the price band as a glyph string, empty for an
// unknown band.
func CostGlyphs(costLevel string) string {
	return costGlyphs[costLevel]
}

// CostLevelDisplay is the long-form price label for the detail view.
// Unknown values pass through verbatim; absent ones read "Not specified".
func CostLevelDisplay(costLevel string) string {
	if costLevel == "" {
		return "Not specified"
	}
	if display, ok := costLevelDisplays[costLevel]; ok {
		return display
	}
	return costLevel
}

// RestaurantCard is the list-view rendering of one restaurant with its
// aggregate rating.
type RestaurantCard struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	ImagePreview    string   `json:"image_preview,omitempty"`
	Stars           string   `json:"stars"`
	AverageRating   float64  `json:"average_rating"`
	ReviewCount     int      `json:"review_count"`
	RatingLabel     string   `json:"rating_label"`
	Address         string   `json:"address"`
	CuisineType     string   `json:"cuisine_type"`
	RestaurantType  string   `json:"restaurant_type"`
	CostGlyphs      string   `json:"cost_glyphs"`
	DietaryTags     []string `json:"dietary_tags,omitempty"`
	DietaryOverflow int      `json:"dietary_overflow,omitempty"`
}

func NewRestaurantCard(r store.Restaurant, average float64, count int) RestaurantCard {
	card := RestaurantCard{
		ID:             r.ID,
		Name:           r.Name,
		Description:    r.Description,
		ImagePreview:   r.Image().Preview(),
		Stars:          Stars(int(math.Floor(average))),
		AverageRating:  average,
		ReviewCount:    count,
		RatingLabel:    ratingLabel(average, count),
		Address:        r.Address,
		CuisineType:    r.CuisineType,
		RestaurantType: r.RestaurantType,
		CostGlyphs:     CostGlyphs(r.CostLevel),
	}

	card.DietaryTags = r.DietaryRestrictions
	if len(card.DietaryTags) > maxCardDietaryTags {
		card.DietaryOverflow = len(card.DietaryTags) - maxCardDietaryTags
		card.DietaryTags = card.DietaryTags[:maxCardDietaryTags]
	}
	return card
}

func ratingLabel(average float64, count int) string {
	if count == 0 {
		return "No ratings yet"
	}
	return fmt.Sprintf("%.1f (%d reviews)", average, count)
}

// ReviewCard is the rendered trip log entry.
type ReviewCard struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Stars     string `json:"stars"`
	Rating    int    `json:"rating"`
	Date      string `json:"date"`
	VisitDate string `json:"visit_date,omitempty"`
	Body      string `json:"body"`
}

func NewReviewCard(t store.Trip) ReviewCard {
	card := ReviewCard{
		ID:     t.ID,
		Author: t.DiscordUsername,
		Stars:  Stars(t.Rating),
		Rating: t.Rating,
		Date:   t.CreatedAt.Format(longDateLayout),
		Body:   t.ReviewText,
	}
	if t.VisitDate != "" {
		card.VisitDate = formatVisitDate(t.VisitDate)
	}
	return card
}

// CommentCard is one rendered comment.
type CommentCard struct {
	ID     string `json:"id"`
	Author string `json:"author"`
	Date   string `json:"date"`
	Body   string `json:"body"`
}

func NewCommentCard(c store.Comment) CommentCard {
	return CommentCard{
		ID:     c.ID,
		Author: c.DiscordUsername,
		Date:   c.CreatedAt.Format(longDateLayout),
		Body:   c.CommentText,
	}
}

// RestaurantDetail is the detail-view rendering: full restaurant info, the
// trip log, and its comments.
type RestaurantDetail struct {
	ID                  string        `json:"id"`
	Name                string        `json:"name"`
	Description         string        `json:"description"`
	Address             string        `json:"address"`
	CuisineType         string        `json:"cuisine_type"`
	RestaurantType      string        `json:"restaurant_type"`
	CostLevel           string        `json:"cost_level"`
	GoogleMapsLink      string        `json:"google_maps_link,omitempty"`
	DietaryRestrictions []string      `json:"dietary_restrictions,omitempty"`
	Gallery             []string      `json:"gallery,omitempty"`
	TripLog             *ReviewCard   `json:"trip_log,omitempty"`
	Comments            []CommentCard `json:"comments"`
	CommentCount        int           `json:"comment_count"`
	CanComment          bool          `json:"can_comment"`
}

func NewRestaurantDetail(r store.Restaurant, reviews []store.Trip, comments []store.Comment, signedIn bool) RestaurantDetail {
	detail := RestaurantDetail{
		ID:                  r.ID,
		Name:                r.Name,
		Description:         r.Description,
		Address:             r.Address,
		CuisineType:         r.CuisineType,
		RestaurantType:      r.RestaurantType,
		CostLevel:           CostLevelDisplay(r.CostLevel),
		GoogleMapsLink:      r.GoogleMapsLink,
		DietaryRestrictions: r.DietaryRestrictions,
		Gallery:             r.Image().URIs(),
		Comments:            []CommentCard{},
	}

	if len(reviews) > 0 {
		card := NewReviewCard(reviews[0])
		detail.TripLog = &card
	}
	for _, c := range comments {
		detail.Comments = append(detail.Comments, NewCommentCard(c))
	}
	detail.CommentCount = len(detail.Comments)
	detail.CanComment = signedIn && detail.TripLog != nil
	return detail
}

func formatVisitDate(visitDate string) string {
	if d, err := time.Parse(visitDateLayout, visitDate); err == nil {
		return d.Format(longDateLayout)
	}
	return visitDate
}
