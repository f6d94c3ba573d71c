package session

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/wealthwise/internal/client/api"
	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/dmitrijs2005/wealthwise/internal/client/services"
	"github.com/dmitrijs2005/wealthwise/internal/client/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuth implements services.AuthService for Provider tests.
type fakeAuth struct {
	services.AuthService

	LoginResp  *models.AuthResponse
	LoginErr   error
	SignupResp *models.AuthResponse
	GoogleResp *models.AuthResponse

	ProfileResp  *models.ProfileResponse
	ProfileErr   error
	ProfileCalls int

	LogoutErr     error
	LogoutCalls   int
	LastLogoutArg string

	LastGoogleToken string
}

func (f *fakeAuth) Login(_ context.Context, _ models.LoginRequest) (*models.AuthResponse, error) {
	return f.LoginResp, f.LoginErr
}

func (f *fakeAuth) Signup(_ context.Context, _ models.SignupRequest) (*models.AuthResponse, error) {
	return f.SignupResp, nil
}

func (f *fakeAuth) GoogleLogin(_ context.Context, token string) (*models.AuthResponse, error) {
	f.LastGoogleToken = token
	return f.GoogleResp, nil
}

func (f *fakeAuth) GetProfile(context.Context) (*models.ProfileResponse, error) {
	f.ProfileCalls++
	return f.ProfileResp, f.ProfileErr
}

func (f *fakeAuth) Logout(_ context.Context, refresh string) error {
	f.LogoutCalls++
	f.LastLogoutArg = refresh
	return f.LogoutErr
}

func newProvider(t *testing.T, auth *fakeAuth) (*Provider, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	return NewProvider(NewStore(mem), auth, nil), mem
}

func okAuth(id int64) *models.AuthResponse {
	return &models.AuthResponse{
		Success: true,
		Message: "Login successful!",
		User:    &models.User{ID: id, Email: "ann@example.com", Username: "ann"},
		Tokens:  models.Tokens{Access: "acc", Refresh: "ref"},
	}
}

func TestProvider_LoginPersistsSession(t *testing.T) {
	ctx := context.Background()
	p, mem := newProvider(t, &fakeAuth{LoginResp: okAuth(1)})

	resp, err := p.Login(ctx, "ann@example.com", "secret")
	require.NoError(t, err)
	assert.True(t, resp.Success)

	assert.True(t, p.IsAuthenticated())
	assert.Equal(t, int64(1), p.User().ID)

	tok, err := p.Store().Tokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Tokens{Access: "acc", Refresh: "ref"}, tok)

	u, err := p.Store().GetStoredUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "ann", u.Username)
	assert.ElementsMatch(t, []string{TokensKey, UserKey}, mem.Keys())
}

func TestProvider_LoginUnsuccessfulBodyPersistsNothing(t *testing.T) {
	ctx := context.Background()
	p, mem := newProvider(t, &fakeAuth{LoginResp: &models.AuthResponse{Success: false, Message: "Account is disabled."}})

	resp, err := p.Login(ctx, "ann@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Account is disabled.", resp.Message)
	assert.False(t, p.IsAuthenticated())
	assert.Empty(t, mem.Keys())
}

func TestProvider_LoginErrorPassedThrough(t *testing.T) {
	boom := errors.New("boom")
	p, mem := newProvider(t, &fakeAuth{LoginErr: boom})

	_, err := p.Login(context.Background(), "ann@example.com", "secret")
	require.ErrorIs(t, err, boom)
	assert.False(t, p.IsAuthenticated())
	assert.Empty(t, mem.Keys())
}

func TestProvider_LoginWithoutUserPersistsNothing(t *testing.T) {
	resp := okAuth(1)
	resp.User = nil
	p, mem := newProvider(t, &fakeAuth{LoginResp: resp})

	_, err := p.Login(context.Background(), "ann@example.com", "secret")
	require.ErrorIs(t, err, errNoUserInResponse)
	assert.False(t, p.IsAuthenticated())
	assert.Empty(t, mem.Keys())

	u, err := p.Store().GetStoredUser(context.Background())
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestProvider_LoginExpiryDropsCurrentUser(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuth{LoginResp: okAuth(1)}
	p, _ := newProvider(t, auth)
	_, err := p.Login(ctx, "ann@example.com", "secret")
	require.NoError(t, err)
	require.True(t, p.IsAuthenticated())

	auth.LoginResp = nil
	auth.LoginErr = &api.SessionExpiredError{Rejected: &api.Error{Status: 401, Message: "Invalid email or password"}}

	_, err = p.Login(ctx, "ann@example.com", "wrong")
	require.ErrorIs(t, err, api.ErrSessionExpired)
	assert.False(t, p.IsAuthenticated())
	assert.Nil(t, p.User())
}

func TestProvider_SignupAndGoogle(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuth{SignupResp: okAuth(2), GoogleResp: okAuth(3)}
	p, _ := newProvider(t, auth)

	_, err := p.Signup(ctx, models.SignupRequest{Email: "ann@example.com", Username: "ann", Password: "secret", PasswordConfirm: "secret"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.User().ID)

	_, err = p.GoogleLogin(ctx, "google-id-token")
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.User().ID)
	assert.Equal(t, "google-id-token", auth.LastGoogleToken)
}

func TestProvider_LogoutClearsEvenWhenServerFails(t *testing.T) {
	for _, serverErr := range []error{nil, errors.New("network down")} {
		ctx := context.Background()
		auth := &fakeAuth{LoginResp: okAuth(1), LogoutErr: serverErr}
		p, mem := newProvider(t, auth)

		_, err := p.Login(ctx, "ann@example.com", "secret")
		require.NoError(t, err)

		require.NoError(t, p.Logout(ctx))
		assert.Equal(t, 1, auth.LogoutCalls)
		assert.Equal(t, "ref", auth.LastLogoutArg)
		assert.False(t, p.IsAuthenticated())
		assert.Empty(t, mem.Keys())
	}
}

func TestProvider_InitWithoutTokenSkipsProfile(t *testing.T) {
	auth := &fakeAuth{}
	p, _ := newProvider(t, auth)
	assert.True(t, p.Loading())

	p.Init(context.Background())
	assert.False(t, p.Loading())
	assert.False(t, p.IsAuthenticated())
	assert.Zero(t, auth.ProfileCalls)
}

func TestProvider_InitHydratesUser(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuth{ProfileResp: &models.ProfileResponse{Success: true, User: &models.User{ID: 5, Username: "fresh"}}}
	p, _ := newProvider(t, auth)
	require.NoError(t, p.Store().SaveAuthData(ctx, &models.User{ID: 5, Username: "stale"}, models.Tokens{Access: "a", Refresh: "r"}))

	p.Init(ctx)
	assert.False(t, p.Loading())
	require.True(t, p.IsAuthenticated())
	assert.Equal(t, "fresh", p.User().Username)
	assert.Equal(t, 1, auth.ProfileCalls)
}

func TestProvider_InitProfileFailureClearsSession(t *testing.T) {
	tests := []struct {
		name string
		auth *fakeAuth
	}{
		{"fetch error", &fakeAuth{ProfileErr: errors.New("500")}},
		{"no user in body", &fakeAuth{ProfileResp: &models.ProfileResponse{Success: true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			p, mem := newProvider(t, tt.auth)
			require.NoError(t, p.Store().SaveAuthData(ctx, &models.User{ID: 5}, models.Tokens{Access: "a", Refresh: "r"}))

			p.Init(ctx)
			assert.False(t, p.Loading())
			assert.False(t, p.IsAuthenticated())
			assert.Empty(t, mem.Keys())
			assert.Equal(t, 1, tt.auth.ProfileCalls, "no retry")
		})
	}
}

func TestProvider_UpdateUserAndForget(t *testing.T) {
	ctx := context.Background()
	p, _ := newProvider(t, &fakeAuth{LoginResp: okAuth(1)})
	_, err := p.Login(ctx, "ann@example.com", "secret")
	require.NoError(t, err)

	upd := &models.User{ID: 1, Username: "ann", FirstName: "Annie"}
	require.NoError(t, p.UpdateUser(ctx, upd))
	assert.Equal(t, "Annie", p.User().FirstName)

	stored, err := p.Store().GetStoredUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Annie", stored.FirstName)

	p.Forget()
	assert.False(t, p.IsAuthenticated())
	assert.True(t, p.Store().IsAuthenticated(ctx), "Forget leaves storage alone")
}
