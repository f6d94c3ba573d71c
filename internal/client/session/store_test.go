package session

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/dmitrijs2005/wealthwise/internal/client/storage"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetStoredUser(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	st := NewStore(mem)

	u, err := st.GetStoredUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, u, "no user key means nil")

	want := &models.User{ID: 7, Email: "ann@example.com", Username: "ann", Profile: &models.Profile{Currency: "USD", MonthlyBudget: models.NewDecimal(50000, 0)}}
	require.NoError(t, st.SaveUser(ctx, want))

	got, err := st.GetStoredUser(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("stored user mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, mem.Set(ctx, UserKey, "null"))
	got, err = st.GetStoredUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, got, "a stored null is no user")

	require.NoError(t, mem.Set(ctx, UserKey, "{broken"))
	_, err = st.GetStoredUser(ctx)
	assert.Error(t, err)
}

func TestStore_TokensLifecycle(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	st := NewStore(mem)

	tok, err := st.Tokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Tokens{}, tok)
	assert.False(t, st.IsAuthenticated(ctx))

	user := &models.User{ID: 1, Username: "ann"}
	require.NoError(t, st.SaveAuthData(ctx, user, models.Tokens{Access: "a1", Refresh: "r1"}))
	assert.True(t, st.IsAuthenticated(ctx))

	raw, ok, err := mem.Get(ctx, TokensKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"access":"a1","refresh":"r1"}`, raw)

	require.NoError(t, st.SaveTokens(ctx, models.Tokens{Access: "a2", Refresh: "r1"}))
	tok, err = st.Tokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a2", tok.Access)

	require.NoError(t, st.Clear(ctx))
	assert.Empty(t, mem.Keys())
	assert.False(t, st.IsAuthenticated(ctx))
}

func TestStore_CorruptTokensReadAsAbsent(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	require.NoError(t, mem.Set(ctx, TokensKey, "not json"))

	tok, err := NewStore(mem).Tokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Tokens{}, tok)
}

func TestStore_OverSQLite(t *testing.T) {
	ctx := context.Background()
	s, err := storage.Open(ctx, storage.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	st := NewStore(s)
	require.NoError(t, st.SaveAuthData(ctx, &models.User{ID: 3}, models.Tokens{Access: "a", Refresh: "r"}))

	u, err := st.GetStoredUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, int64(3), u.ID)

	require.NoError(t, st.Clear(ctx))
	u, err = st.GetStoredUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.False(t, st.IsAuthenticated(ctx))
}

func TestAccessTokenExpiry(t *testing.T) {
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"exp":     exp.Unix(),
	}).SignedString([]byte("server-secret"))
	require.NoError(t, err)

	got, ok := AccessTokenExpiry(models.Tokens{Access: signed})
	require.True(t, ok)
	assert.True(t, got.Equal(exp))

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 1}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, ok = AccessTokenExpiry(models.Tokens{Access: noExp})
	assert.False(t, ok)

	_, ok = AccessTokenExpiry(models.Tokens{Access: "opaque"})
	assert.False(t, ok)

	_, ok = AccessTokenExpiry(models.Tokens{})
	assert.False(t, ok)
}
