package supabase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{URL: srv.URL, APIKey: "anon-key"})
	require.NoError(t, err)
	return client
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(Config{APIKey: "k"})
	assert.Error(t, err)

	_, err = New(Config{URL: "http://localhost"})
	assert.Error(t, err)
}

func TestQuery_Get_EncodesFiltersAndOrder(t *testing.T) {
	var got *http.Request
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Write([]byte(`[{"id":"r1"}]`))
	})

	var rows []map[string]any
	err := client.From("trips").
		Select("*").
		Eq("restaurant_id", "abc").
		Order("created_at", false).
		Get(context.Background(), &rows)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "/rest/v1/trips", got.URL.Path)
	q := got.URL.Query()
	assert.Equal(t, "*", q.Get("select"))
	assert.Equal(t, "eq.abc", q.Get("restaurant_id"))
	assert.Equal(t, "created_at.desc", q.Get("order"))

	assert.Equal(t, "anon-key", got.Header.Get("apikey"))
	assert.Equal(t, "Bearer anon-key", got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
}

func TestQuery_Get_AscendingOrder(t *testing.T) {
	var got *http.Request
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Write([]byte(`[]`))
	})

	var rows []map[string]any
	err := client.From("comments").
		Select("*").
		Eq("trip_id", "t1").
		Order("created_at", true).
		Get(context.Background(), &rows)
	require.NoError(t, err)

	assert.Equal(t, "created_at.asc", got.URL.Query().Get("order"))
}

func TestQuery_Single_SetsObjectAccept(t *testing.T) {
	var accept string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
		w.Write([]byte(`{"id":"r1"}`))
	})

	var row map[string]any
	err := client.From("restaurants").
		Select("*").
		Eq("name", "Thai Spice").
		Single().
		Get(context.Background(), &row)
	require.NoError(t, err)

	assert.Equal(t, "application/vnd.pgrst.object+json", accept)
	assert.Equal(t, "r1", row["id"])
}

func TestQuery_Single_MissIsErrNoRows(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotAcceptable)
		w.Write([]byte(`{"code":"PGRST116","message":"JSON object requested, multiple (or no) rows returned"}`))
	})

	var row map[string]any
	err := client.From("restaurants").Single().Get(context.Background(), &row)
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestQuery_Insert_SendsRepresentationPrefer(t *testing.T) {
	var got *http.Request
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"new-id","name":"Thai Spice"}`))
	})

	var stored map[string]any
	err := client.From("restaurants").Single().
		Insert(context.Background(), map[string]string{"name": "Thai Spice"}, &stored)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "return=representation", got.Header.Get("Prefer"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.Equal(t, "new-id", stored["id"])
}

func TestQuery_ErrorCarriesMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"22P02","message":"invalid input syntax"}`))
	})

	var rows []map[string]any
	err := client.From("trips").Get(context.Background(), &rows)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "invalid input syntax")
}

func TestAuth_GetUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		w.Write([]byte(`{"id":"u1","email":"a@b.c","user_metadata":{"full_name":"Ada"}}`))
	})

	user, err := client.Auth().GetUser(context.Background(), "user-token")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "a@b.c", user.Email)
	assert.Equal(t, "Ada", user.UserMetadata["full_name"])
}

func TestAuth_GetUser_InvalidToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid JWT"}`))
	})

	_, err := client.Auth().GetUser(context.Background(), "bogus")
	assert.Error(t, err)
}

func TestAuth_SignOut(t *testing.T) {
	var path string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.Auth().SignOut(context.Background(), "user-token")
	require.NoError(t, err)
	assert.Equal(t, "/auth/v1/logout", path)
}
