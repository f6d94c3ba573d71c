package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/client/api"
	"github.com/dmitrijs2005/wealthwise/internal/client/config"
	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/dmitrijs2005/wealthwise/internal/client/session"
	"github.com/dmitrijs2005/wealthwise/internal/client/storage"
	"github.com/dmitrijs2005/wealthwise/internal/logging"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type harness struct {
	t      *testing.T
	api    *mux.Router
	mem    *storage.Memory
	store  *session.Store
	router *Router
	app    *App
	out    *syncBuffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{t: t, api: mux.NewRouter(), mem: storage.NewMemory(), out: &syncBuffer{}}
	srv := httptest.NewServer(h.api)
	t.Cleanup(srv.Close)

	h.store = session.NewStore(h.mem)
	h.router = NewRouter(api.LoginPath)
	client, err := api.New(srv.URL+"/api", h.store, api.WithNavigator(h.router))
	require.NoError(t, err)

	cfg := &config.Config{
		APIBaseURL:               srv.URL + "/api",
		GoogleClientID:           "test-client-id",
		NotificationPollInterval: time.Second,
		RequestTimeout:           5 * time.Second,
	}
	h.app = newApp(cfg, logging.Discard(), h.mem, h.store, client, h.router, strings.NewReader(""), h.out)
	h.app.now = func() time.Time { return testNow }

	origPrint, origTerm := printlnFn, isTerminal
	printlnFn = func(a ...any) (int, error) { return fmt.Fprintln(h.out, a...) }
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() {
		printlnFn = origPrint
		isTerminal = origTerm
	})
	return h
}

// input replaces what the app reads from stdin.
func (h *harness) input(lines ...string) {
	h.app.reader = bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

// run feeds lines to the REPL and returns when they are consumed.
func (h *harness) run(lines ...string) {
	h.input(lines...)
	runREPL(context.Background(), h.app, h.app.getStatus, h.app.reader)
}

func (h *harness) handle(method, path string, fn http.HandlerFunc) {
	h.api.HandleFunc("/api/"+path, fn).Methods(method)
}

func (h *harness) reply(method, path string, status int, v any) {
	h.handle(method, path, func(w http.ResponseWriter, _ *http.Request) { reply(w, status, v) })
}

// signIn stores a session and hydrates it the way a restart would.
func (h *harness) signIn() {
	h.t.Helper()
	u := alice()
	h.reply(http.MethodGet, "auth/profile/", http.StatusOK, map[string]any{"success": true, "user": u})
	require.NoError(h.t, h.store.SaveAuthData(context.Background(), u, models.Tokens{Access: "acc", Refresh: "ref"}))
	h.app.start(context.Background())
	require.True(h.t, h.app.isLoggedIn())
}

func alice() *models.User {
	return &models.User{
		ID:        1,
		Email:     "alice@example.com",
		Username:  "alice",
		FirstName: "Alice",
		LastName:  "Smith",
		FullName:  "Alice Smith",
		Profile:   &models.Profile{Currency: "INR", BudgetAlerts: true},
	}
}

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.NewDecoder(r.Body).Decode(&m))
	return m
}

func TestApp_StartWithoutSessionGoesToLogin(t *testing.T) {
	h := newHarness(t)

	h.app.start(context.Background())

	assert.False(t, h.app.isLoggedIn())
	assert.Equal(t, api.LoginPath, h.router.CurrentPath())
	assert.False(t, h.app.session.Loading())
}

func TestApp_StartRestoresStoredSession(t *testing.T) {
	h := newHarness(t)
	h.signIn()

	assert.Equal(t, pathDashboard, h.router.CurrentPath())
	assert.Contains(t, h.out.String(), "Signed in as Alice Smith.")
	assert.Equal(t, "/dashboard (Alice Smith)", h.app.getStatus())
}

func TestApp_PrivateCommandLogsInThenRunsDashboard(t *testing.T) {
	h := newHarness(t)

	h.handle(http.MethodPost, "auth/login/", func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		assert.Equal(t, "alice@example.com", body["email"])
		assert.Equal(t, "secret1", body["password"])
		reply(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Login successful",
			"user":    alice(),
			"tokens":  map[string]string{"access": "acc", "refresh": "ref"},
		})
	})
	h.handle(http.MethodGet, "dashboard/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer acc", r.Header.Get("Authorization"))
		assert.Equal(t, "1", r.URL.Query().Get("month"))
		assert.Equal(t, "2025", r.URL.Query().Get("year"))
		reply(w, http.StatusOK, map[string]any{
			"success":        true,
			"currency":       "INR",
			"selected_month": 1,
			"selected_year":  2025,
			"has_budget":     true,
			"dashboard": map[string]any{
				"total_balance":          "1500.00",
				"monthly_income":         5000,
				"monthly_expenses":       3500,
				"savings":                1500,
				"savings_rate":           30,
				"monthly_budget":         4000,
				"budget_used_percentage": 87.5,
				"overall_status":         "warning",
				"expense_by_category":    []map[string]any{{"name": "Food", "value": 2000}, {"name": "Rent", "value": 1500}},
				"recent_transactions": []map[string]any{
					{"id": 3, "type": "expense", "amount": "120.00", "description": "Lunch", "date": "2025-01-20", "category_name": "Food"},
				},
			},
		})
	})
	h.reply(http.MethodGet, "notifications/count/", http.StatusOK, map[string]any{"success": true, "unread_count": 3})

	h.run("dashboard 2025-01", "alice@example.com", "secret1")

	out := h.out.String()
	assert.Contains(t, out, "Please log in first.")
	assert.Contains(t, out, "Welcome, Alice Smith!")
	assert.Contains(t, out, "Dashboard 2025-01")
	assert.Contains(t, out, "INR 1500.00")
	assert.Contains(t, out, "3 notifications")
	assert.Contains(t, out, "Lunch")

	assert.Equal(t, pathDashboard, h.router.CurrentPath())
	assert.True(t, h.store.IsAuthenticated(context.Background()))
	assert.EqualValues(t, 3, h.app.lastUnread.Load())
}

func TestApp_InvalidCredentialsStayOnLogin(t *testing.T) {
	h := newHarness(t)
	h.reply(http.MethodPost, "auth/login/", http.StatusUnauthorized, map[string]any{"success": false, "message": "Invalid email or password"})

	h.run("login alice@example.com", "wrong")

	out := h.out.String()
	assert.Contains(t, out, "Invalid email or password")
	assert.NotContains(t, out, "Session expired")
	assert.False(t, h.app.isLoggedIn())
	assert.Equal(t, api.LoginPath, h.router.CurrentPath())
}

func TestApp_WrongPasswordWhileSignedInEndsSession(t *testing.T) {
	h := newHarness(t)
	h.signIn()
	refreshed := 0
	h.handle(http.MethodPost, "auth/token/refresh/", func(w http.ResponseWriter, _ *http.Request) {
		refreshed++
		reply(w, http.StatusOK, map[string]any{"access": "fresh"})
	})
	h.reply(http.MethodPost, "auth/login/", http.StatusUnauthorized, map[string]any{"success": false, "message": "Invalid email or password"})

	h.run("login alice@example.com", "wrong")

	assert.Equal(t, 1, refreshed)
	assert.Contains(t, h.out.String(), "Invalid email or password")
	assert.False(t, h.app.isLoggedIn())
	assert.False(t, h.store.IsAuthenticated(context.Background()))
	assert.Empty(t, h.mem.Keys())
	assert.Equal(t, api.LoginPath, h.router.CurrentPath())
}

func TestApp_UnsuccessfulAuthResponseIsShown(t *testing.T) {
	h := newHarness(t)
	h.handle(http.MethodPost, "auth/google/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "google-id-token", decodeBody(t, r)["token"])
		reply(w, http.StatusOK, map[string]any{"success": false, "message": "Google authentication failed"})
	})

	h.run("google google-id-token")

	assert.Contains(t, h.out.String(), "Google authentication failed")
	assert.False(t, h.app.isLoggedIn())
	assert.False(t, h.store.IsAuthenticated(context.Background()))
}

func TestApp_SignupStartsSession(t *testing.T) {
	h := newHarness(t)
	h.handle(http.MethodPost, "auth/signup/", func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		assert.Equal(t, "bob", body["username"])
		assert.Equal(t, "hunter22", body["password_confirm"])
		reply(w, http.StatusCreated, map[string]any{
			"success": true,
			"user":    map[string]any{"id": 2, "email": "bob@example.com", "username": "bob"},
			"tokens":  map[string]string{"access": "a2", "refresh": "r2"},
		})
	})

	h.run("signup", "bob@example.com", "bob", "hunter22", "hunter22")

	assert.Contains(t, h.out.String(), "Welcome, bob!")
	assert.True(t, h.app.isLoggedIn())
	tokens, err := h.store.Tokens(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Tokens{Access: "a2", Refresh: "r2"}, tokens)
}

func TestApp_SessionExpiryDropsToLogin(t *testing.T) {
	h := newHarness(t)
	h.signIn()
	h.reply(http.MethodGet, "budgets/overview/", http.StatusUnauthorized, map[string]any{"detail": "Token is invalid or expired"})
	h.reply(http.MethodPost, "auth/token/refresh/", http.StatusUnauthorized, map[string]any{"detail": "Token is blacklisted"})

	h.run("budgets")

	assert.Contains(t, h.out.String(), "Session expired, please log in again.")
	assert.False(t, h.app.isLoggedIn())
	assert.Equal(t, api.LoginPath, h.router.CurrentPath())
	assert.False(t, h.store.IsAuthenticated(context.Background()))
	assert.Empty(t, h.mem.Keys())
}

func TestApp_LogoutClearsEvenWhenServerFails(t *testing.T) {
	h := newHarness(t)
	h.signIn()
	h.handle(http.MethodPost, "auth/logout/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ref", decodeBody(t, r)["refresh"])
		reply(w, http.StatusInternalServerError, map[string]any{"error": "boom"})
	})

	h.run("logout")

	assert.Contains(t, h.out.String(), "Logged out.")
	assert.False(t, h.app.isLoggedIn())
	assert.Empty(t, h.mem.Keys())
	assert.Equal(t, api.LoginPath, h.router.CurrentPath())
}

func TestApp_RefreshIsTransparent(t *testing.T) {
	h := newHarness(t)
	h.signIn()

	h.handle(http.MethodGet, "categories/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh" {
			reply(w, http.StatusUnauthorized, map[string]any{"detail": "expired"})
			return
		}
		reply(w, http.StatusOK, []map[string]any{{"id": 1, "name": "Food", "type": "expense", "is_default": true}})
	})
	h.reply(http.MethodPost, "auth/token/refresh/", http.StatusOK, map[string]any{"access": "fresh"})

	h.run("categories")

	out := h.out.String()
	assert.Contains(t, out, "Food")
	assert.NotContains(t, out, "Session expired")
	tokens, err := h.store.Tokens(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Tokens{Access: "fresh", Refresh: "ref"}, tokens)
}
