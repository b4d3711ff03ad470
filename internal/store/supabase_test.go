package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triplog/internal/supabase"
)

func newTestStorage(t *testing.T, handler http.HandlerFunc) Storage {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := supabase.New(supabase.Config{URL: srv.URL, APIKey: "anon-key"})
	require.NoError(t, err)
	return NewSupabaseStorage(client)
}

func TestSupabaseRestaurants_List(t *testing.T) {
	st := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/restaurants", r.URL.Path)
		assert.Equal(t, "created_at.desc", r.URL.Query().Get("order"))
		w.Write([]byte(`[{"id":"r1","name":"Thai Spice"},{"id":"r2","name":"Noodle Nook"}]`))
	})

	restaurants, err := st.Restaurants.List(context.Background())
	require.NoError(t, err)
	require.Len(t, restaurants, 2)
	assert.Equal(t, "Thai Spice", restaurants[0].Name)
}

func TestSupabaseRestaurants_List_WrapsTransportError(t *testing.T) {
	st := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"db down"}`))
	})

	_, err := st.Restaurants.List(context.Background())
	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "list restaurants", terr.Op)

	var apiErr *supabase.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestSupabaseRestaurants_Find_Match(t *testing.T) {
	st := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eq.Thai Spice", r.URL.Query().Get("name"))
		assert.Equal(t, "eq.12 Rama IV Rd", r.URL.Query().Get("address"))
		assert.Equal(t, "application/vnd.pgrst.object+json", r.Header.Get("Accept"))
		w.Write([]byte(`{"id":"r1","name":"Thai Spice","address":"12 Rama IV Rd"}`))
	})

	r, err := st.Restaurants.Find(context.Background(), "Thai Spice", "12 Rama IV Rd")
	require.NoError(t, err)
	assert.Equal(t, "r1", r.ID)
}

func TestSupabaseRestaurants_Find_MissIsNotFound(t *testing.T) {
	st := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotAcceptable)
		w.Write([]byte(`{"code":"PGRST116","message":"JSON object requested, multiple (or no) rows returned"}`))
	})

	_, err := st.Restaurants.Find(context.Background(), "Nowhere", "1 Nowhere Ln")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSupabaseRestaurants_Create_EchoesStoredRow(t *testing.T) {
	st := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))

		var row map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&row))
		assert.Equal(t, "Thai Spice", row["name"])
		// The insert payload never carries server-assigned columns.
		assert.NotContains(t, row, "id")
		assert.NotContains(t, row, "created_at")
		// Absent tags go up as an empty array, not null.
		assert.Equal(t, []any{}, row["dietary_restrictions"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"new-id","name":"Thai Spice","created_at":"2026-08-30T10:00:00Z"}`))
	})

	restaurant := &Restaurant{Name: "Thai Spice", Address: "12 Rama IV Rd"}
	require.NoError(t, st.Restaurants.Create(context.Background(), restaurant))
	assert.Equal(t, "new-id", restaurant.ID)
	assert.False(t, restaurant.CreatedAt.IsZero())
}

func TestSupabaseTrips_ListByRestaurant(t *testing.T) {
	st := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/trips", r.URL.Path)
		assert.Equal(t, "eq.r1", r.URL.Query().Get("restaurant_id"))
		assert.Equal(t, "created_at.desc", r.URL.Query().Get("order"))
		w.Write([]byte(`[{"id":"t1","restaurant_id":"r1","rating":4}]`))
	})

	trips, err := st.Trips.ListByRestaurant(context.Background(), "r1")
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, 4, trips[0].Rating)
}

func TestSupabaseComments_ListByTrip_Ascending(t *testing.T) {
	st := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/comments", r.URL.Path)
		assert.Equal(t, "eq.t1", r.URL.Query().Get("trip_id"))
		assert.Equal(t, "created_at.asc", r.URL.Query().Get("order"))
		w.Write([]byte(`[{"id":"c1","trip_id":"t1","comment_text":"first!"}]`))
	})

	comments, err := st.Comments.ListByTrip(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "first!", comments[0].CommentText)
}

func TestSupabaseComments_Create(t *testing.T) {
	st := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		var row map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&row))
		assert.Equal(t, "t1", row["trip_id"])
		assert.Equal(t, "!aBcDeFgH", row["discord_username"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"c9","trip_id":"t1","created_at":"2026-08-30T10:00:00Z"}`))
	})

	comment := &Comment{TripID: "t1", DiscordUsername: "!aBcDeFgH", CommentText: "looks great"}
	require.NoError(t, st.Comments.Create(context.Background(), comment))
	assert.Equal(t, "c9", comment.ID)
}

func TestSupabaseProfiles_GetByID_Miss(t *testing.T) {
	st := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotAcceptable)
		w.Write([]byte(`{"code":"PGRST116"}`))
	})

	_, err := st.Profiles.GetByID(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}
