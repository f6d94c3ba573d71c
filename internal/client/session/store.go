// Package session keeps the signed-in user and the token pair in local
// storage and exposes the session Provider the front end talks to.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/dmitrijs2005/wealthwise/internal/client/storage"
	"github.com/golang-jwt/jwt/v5"
)

// Storage keys.
const (
	TokensKey = "tokens"
	UserKey   = "user"
)

// Store reads and writes the credential keys. Every call goes to storage;
// nothing is cached, so concurrent writers see each other's last write.
type Store struct {
	s storage.Storage
}

func NewStore(s storage.Storage) *Store {
	return &Store{s: s}
}

// Tokens returns the stored pair, or an empty pair when none is stored.
// An unreadable document is treated as absent.
func (st *Store) Tokens(ctx context.Context) (models.Tokens, error) {
	var t models.Tokens
	raw, ok, err := st.s.Get(ctx, TokensKey)
	if err != nil {
		return t, fmt.Errorf("read tokens: %w", err)
	}
	if !ok {
		return t, nil
	}
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return models.Tokens{}, nil
	}
	return t, nil
}

func (st *Store) SaveTokens(ctx context.Context, t models.Tokens) error {
	b, err := json.Marshal(t)
	if err != nil {
		return err
	}
	if err := st.s.Set(ctx, TokensKey, string(b)); err != nil {
		return fmt.Errorf("save tokens: %w", err)
	}
	return nil
}

// SaveAuthData writes the user and the token pair in one storage call.
func (st *Store) SaveAuthData(ctx context.Context, u *models.User, t models.Tokens) error {
	ub, err := json.Marshal(u)
	if err != nil {
		return err
	}
	tb, err := json.Marshal(t)
	if err != nil {
		return err
	}
	err = st.s.SetMany(ctx, map[string]string{
		UserKey:   string(ub),
		TokensKey: string(tb),
	})
	if err != nil {
		return fmt.Errorf("save auth data: %w", err)
	}
	return nil
}

// GetStoredUser returns nil when no user is stored.
func (st *Store) GetStoredUser(ctx context.Context) (*models.User, error) {
	raw, ok, err := st.s.Get(ctx, UserKey)
	if err != nil {
		return nil, fmt.Errorf("read user: %w", err)
	}
	if !ok || raw == "null" {
		return nil, nil
	}
	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("decode stored user: %w", err)
	}
	return &u, nil
}

func (st *Store) SaveUser(ctx context.Context, u *models.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	if err := st.s.Set(ctx, UserKey, string(b)); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether an access token is stored.
func (st *Store) IsAuthenticated(ctx context.Context) bool {
	t, err := st.Tokens(ctx)
	return err == nil && t.Access != ""
}

// Clear removes both the tokens and the user.
func (st *Store) Clear(ctx context.Context) error {
	if err := st.s.Remove(ctx, TokensKey, UserKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// AccessTokenExpiry reads the exp claim of a JWT access token without
// verifying it. ok is false for opaque or expiry-less tokens.
func AccessTokenExpiry(t models.Tokens) (exp time.Time, ok bool) {
	if t.Access == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(t.Access, claims); err != nil {
		return time.Time{}, false
	}
	d, err := claims.GetExpirationTime()
	if err != nil || d == nil {
		return time.Time{}, false
	}
	return d.Time, true
}
