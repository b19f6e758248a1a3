package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/summit-seekers/forum-service/internal/client/session"
	"github.com/summit-seekers/forum-service/internal/dto"
	"github.com/summit-seekers/forum-service/internal/model"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewStore(t.TempDir())
	_, err := store.Initialize()
	require.NoError(t, err)

	return New(srv.URL, store), store
}

func TestSetSecretKeyRegistersAndCachesToken(t *testing.T) {
	var gotReq dto.RegisterKeyRequest
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/v1/identity/key", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(dto.SessionResponse{Token: "token-123"})
	})
	c, store := newTestClient(t, mux)

	require.NoError(t, c.SetSecretKey(context.Background(), "abc"))

	assert.Equal(t, store.Current().ID, gotReq.ID)
	assert.Equal(t, "abc", gotReq.SecretKey)
	assert.Equal(t, "token-123", c.token)
	assert.True(t, store.Current().Authenticated())
}

func TestSetSecretKeyRejectedByServerLeavesSessionUntouched(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/v1/identity/key", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(dto.NewBasicResponse(false, "invalid secret key"))
	})
	c, store := newTestClient(t, mux)

	err := c.SetSecretKey(context.Background(), "wrong")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.False(t, store.Current().Authenticated())
	assert.Empty(t, c.token)
}

func TestSetSecretKeyRejectsBlankWithoutRequest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/v1/identity/key", func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("blank key must not reach the server")
	})
	c, store := newTestClient(t, mux)

	err := c.SetSecretKey(context.Background(), "   ")

	assert.ErrorIs(t, err, session.ErrEmptySecretKey)
	assert.False(t, store.Current().Authenticated())
}

func TestCreatePostSignsInLazily(t *testing.T) {
	sessions := 0
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/identity/session", func(w http.ResponseWriter, r *http.Request) {
		sessions++
		json.NewEncoder(w).Encode(dto.SessionResponse{Token: "token-123"})
	})
	mux.HandleFunc("POST /api/v1/posts", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(model.Post{ID: 5, Title: "El Cap"})
	})
	c, store := newTestClient(t, mux)
	require.NoError(t, store.SetSecretKey("abc"))

	post, err := c.CreatePost(context.Background(), dto.CreatePostRequest{Title: "El Cap"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), post.ID)

	// second call reuses the cached token
	_, err = c.CreatePost(context.Background(), dto.CreatePostRequest{Title: "Half Dome"})
	require.NoError(t, err)
	assert.Equal(t, 1, sessions)
}

func TestCreatePostWithoutSecretKey(t *testing.T) {
	c, _ := newTestClient(t, http.NewServeMux())

	_, err := c.CreatePost(context.Background(), dto.CreatePostRequest{Title: "El Cap"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestFeedEncodesQuery(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/posts", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "popularity", r.URL.Query().Get("sort"))
		assert.Equal(t, "red", r.URL.Query().Get("q"))
		assert.Equal(t, "trip-report,question", r.URL.Query().Get("flags"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode([]*model.FullPost{{Post: model.Post{ID: 1}}})
	})
	c, _ := newTestClient(t, mux)

	posts, err := c.Feed(context.Background(), "popularity", "red", []string{"trip-report", "question"}, 10, 0)

	require.NoError(t, err)
	require.Len(t, posts, 1)
}

func TestAPIErrorCarriesServerDetails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/identity/session", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(dto.SessionResponse{Token: "token-123"})
	})
	mux.HandleFunc("DELETE /api/v1/posts/1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(dto.NewBasicResponse(false, "only the author can delete a post"))
	})
	c, store := newTestClient(t, mux)
	require.NoError(t, store.SetSecretKey("abc"))

	err := c.DeletePost(context.Background(), 1)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "only the author can delete a post", apiErr.Details)
}
