package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/wealthwise/internal/client/api"
	"github.com/dmitrijs2005/wealthwise/internal/client/services"
	"github.com/dmitrijs2005/wealthwise/internal/client/storage"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type route struct{ path string }

func (r *route) CurrentPath() string { return r.path }
func (r *route) Navigate(p string)   { r.path = p }

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// stack wires storage, pipeline, auth service and provider against srv.
func stack(t *testing.T, srv *httptest.Server, nav api.Navigator) (*Provider, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	store := NewStore(mem)
	c, err := api.New(srv.URL+"/api", store, api.WithNavigator(nav))
	require.NoError(t, err)
	return NewProvider(store, services.NewAuthService(c, nil), nil), mem
}

func TestFlow_LoginThenRefreshThenLogout(t *testing.T) {
	var refreshed atomic.Int32
	r := mux.NewRouter()
	r.HandleFunc("/api/auth/login/", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusOK, map[string]any{
			"success": true, "message": "Login successful!",
			"user":   map[string]any{"id": 1, "email": "ann@example.com", "username": "ann"},
			"tokens": map[string]string{"access": "acc1", "refresh": "ref1"},
		})
	})
	r.HandleFunc("/api/auth/token/refresh/", func(w http.ResponseWriter, _ *http.Request) {
		refreshed.Add(1)
		reply(w, http.StatusOK, map[string]string{"access": "acc2"})
	})
	r.HandleFunc("/api/auth/profile/", func(w http.ResponseWriter, req *http.Request) {
		if req.Header.Get("Authorization") != "Bearer acc2" {
			reply(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
			return
		}
		reply(w, http.StatusOK, map[string]any{"success": true, "user": map[string]any{"id": 1, "username": "ann"}})
	})
	r.HandleFunc("/api/auth/logout/", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Error during logout."})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	ctx := context.Background()
	nav := &route{path: "/login"}
	p, mem := stack(t, srv, nav)
	p.Init(ctx)
	assert.False(t, p.IsAuthenticated())

	resp, err := p.Login(ctx, "ann@example.com", "secret")
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.True(t, p.IsAuthenticated())
	nav.path = "/dashboard"

	prof, err := services.NewAuthService(mustClient(t, srv, p.Store(), nav), nil).GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ann", prof.User.Username)
	assert.Equal(t, int32(1), refreshed.Load())

	tok, err := p.Store().Tokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, "acc2", tok.Access)
	assert.Equal(t, "ref1", tok.Refresh)

	require.NoError(t, p.Logout(ctx))
	assert.False(t, p.IsAuthenticated())
	assert.Empty(t, mem.Keys())
	assert.Equal(t, "/dashboard", nav.path)
}

func TestFlow_HydrationWithDeadSessionEndsSignedOut(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/api/auth/profile/", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
	})
	r.HandleFunc("/api/auth/token/refresh/", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusInternalServerError, map[string]string{"message": "User no longer exists."})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	ctx := context.Background()
	nav := &route{path: "/"}
	p, mem := stack(t, srv, nav)
	require.NoError(t, mem.SetMany(ctx, map[string]string{
		TokensKey: `{"access":"old","refresh":"old"}`,
		UserKey:   `{"id":1}`,
	}))

	p.Init(ctx)
	assert.False(t, p.Loading())
	assert.False(t, p.IsAuthenticated())
	assert.Empty(t, mem.Keys())
	assert.Equal(t, "/", nav.path, "no redirect from a public route")
}

func mustClient(t *testing.T, srv *httptest.Server, store *Store, nav api.Navigator) *api.Client {
	t.Helper()
	c, err := api.New(srv.URL+"/api", store, api.WithNavigator(nav))
	require.NoError(t, err)
	return c
}
