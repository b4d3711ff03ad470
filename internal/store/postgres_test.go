package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var restaurantRows = []string{
	"id", "name", "description", "address", "cuisine_type",
	"restaurant_type", "cost_level", "google_maps_link",
	"dietary_restrictions", "image_url", "image_base64",
	"image_base64s", "created_at",
}

var tripRows = []string{
	"id", "restaurant_id", "discord_username", "rating", "review_text",
	"visit_date", "user_id", "created_at",
}

func TestRestaurantsStore_List_OrdersNewestFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT(.|\s)+FROM restaurants(.|\s)+ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows(restaurantRows).
			AddRow("r2", "Noodle Nook", "", "5 Soi 11", "Thai", "Street Food",
				"cheap", "", "{Vegan}", "", "", "{}", now).
			AddRow("r1", "Thai Spice", "", "12 Rama IV Rd", "Thai", "Casual Dining",
				"moderate", "", "{}", "", "", "{}", now.Add(-time.Hour)))

	s := &RestaurantsStore{db}
	restaurants, err := s.List(context.Background())
	require.NoError(t, err)

	require.Len(t, restaurants, 2)
	assert.Equal(t, "r2", restaurants[0].ID)
	assert.Equal(t, []string{"Vegan"}, restaurants[0].DietaryRestrictions)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRestaurantsStore_Find_MissIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT(.|\s)+FROM restaurants(.|\s)+WHERE name = \$1 AND address = \$2`).
		WithArgs("Thai Spice", "12 Rama IV Rd").
		WillReturnRows(sqlmock.NewRows(restaurantRows))

	s := &RestaurantsStore{db}
	_, err = s.Find(context.Background(), "Thai Spice", "12 Rama IV Rd")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRestaurantsStore_Find_ExactMatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT(.|\s)+FROM restaurants(.|\s)+WHERE name = \$1 AND address = \$2`).
		WithArgs("Thai Spice", "12 Rama IV Rd").
		WillReturnRows(sqlmock.NewRows(restaurantRows).
			AddRow("r1", "Thai Spice", "", "12 Rama IV Rd", "Thai", "Casual Dining",
				"moderate", "", "{}", "", "", "{}", time.Now()))

	s := &RestaurantsStore{db}
	r, err := s.Find(context.Background(), "Thai Spice", "12 Rama IV Rd")
	require.NoError(t, err)
	assert.Equal(t, "r1", r.ID)
}

func TestRestaurantsStore_Create_ReturnsGeneratedFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO restaurants")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("new-id", now))

	s := &RestaurantsStore{db}
	restaurant := &Restaurant{
		Name:        "Thai Spice",
		Address:     "12 Rama IV Rd",
		CuisineType: "Thai",
		CostLevel:   "moderate",
	}
	require.NoError(t, s.Create(context.Background(), restaurant))
	assert.Equal(t, "new-id", restaurant.ID)
	assert.Equal(t, now, restaurant.CreatedAt)
}

func TestTripsStore_ListByRestaurant(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT(.|\s)+FROM trips(.|\s)+WHERE restaurant_id = \$1(.|\s)+ORDER BY created_at DESC`).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows(tripRows).
			AddRow("t1", "r1", "Ada", 4, "Great pad kra pao", "2026-08-30", nil, time.Now()))

	s := &TripsStore{db}
	trips, err := s.ListByRestaurant(context.Background(), "r1")
	require.NoError(t, err)

	require.Len(t, trips, 1)
	assert.Equal(t, 4, trips[0].Rating)
	assert.Nil(t, trips[0].UserID)
}

func TestTripsStore_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO trips")).
		WithArgs("r1", "Ada", 5, "review", "2026-09-01", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("t9", time.Now()))

	s := &TripsStore{db}
	trip := &Trip{
		RestaurantID:    "r1",
		DiscordUsername: "Ada",
		Rating:          5,
		ReviewText:      "review",
		VisitDate:       "2026-09-01",
	}
	require.NoError(t, s.Create(context.Background(), trip))
	assert.Equal(t, "t9", trip.ID)
}

func TestCommentsStore_ListByTrip_OrdersOldestFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT(.|\s)+FROM comments(.|\s)+WHERE trip_id = \$1(.|\s)+ORDER BY created_at ASC`).
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "trip_id", "discord_username", "comment_text", "user_id", "created_at",
		}).
			AddRow("c1", "t1", "Bea", "first!", nil, time.Now().Add(-time.Hour)).
			AddRow("c2", "t1", "Cal", "second", nil, time.Now()))

	s := &CommentsStore{db}
	comments, err := s.ListByTrip(context.Background(), "t1")
	require.NoError(t, err)

	require.Len(t, comments, 2)
	assert.Equal(t, "c1", comments[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfilesStore_GetByID_Miss(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT(.|\s)+FROM profiles(.|\s)+WHERE id = \$1`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "avatar_url", "created_at"}))

	s := &ProfilesStore{db}
	_, err = s.GetByID(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}
