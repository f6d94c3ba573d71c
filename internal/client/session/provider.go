package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/wealthwise/internal/client/api"
	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/dmitrijs2005/wealthwise/internal/client/services"
	"github.com/dmitrijs2005/wealthwise/internal/logging"
)

var (
	errNoUserInProfile  = errors.New("profile response carries no user")
	errNoUserInResponse = errors.New("auth response carries no user")
)

// Provider holds the signed-in user for the front end and keeps local
// storage in step with it. It is safe for concurrent use.
type Provider struct {
	mu      sync.RWMutex
	user    *models.User
	loading bool

	store *Store
	auth  services.AuthService
	log   logging.Logger
}

// NewProvider returns a Provider in the loading state; call Init once.
func NewProvider(store *Store, auth services.AuthService, log logging.Logger) *Provider {
	if log == nil {
		log = logging.Discard()
	}
	return &Provider{store: store, auth: auth, log: log, loading: true}
}

// Init hydrates the session. With a stored access token it fetches the
// profile once: success makes the user current, any failure clears stored
// credentials and leaves the provider signed out. Init never retries.
func (p *Provider) Init(ctx context.Context) {
	defer func() {
		p.mu.Lock()
		p.loading = false
		p.mu.Unlock()
	}()

	if !p.store.IsAuthenticated(ctx) {
		return
	}

	u, err := p.fetchProfile(ctx)
	if err != nil {
		p.log.Warn(ctx, "failed to fetch profile, clearing session", "error", err)
		if cerr := p.store.Clear(ctx); cerr != nil {
			p.log.Error(ctx, "failed to clear session", "error", cerr)
		}
		p.setUser(nil)
		return
	}
	p.setUser(u)
}

func (p *Provider) fetchProfile(ctx context.Context) (*models.User, error) {
	resp, err := p.auth.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, errNoUserInProfile
	}
	return resp.User, nil
}

// Login signs in with email and password. The server's answer is returned
// whether or not it reports success.
func (p *Provider) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	resp, err := p.auth.Login(ctx, models.LoginRequest{Email: email, Password: password})
	return p.accept(ctx, resp, err)
}

func (p *Provider) Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error) {
	resp, err := p.auth.Signup(ctx, req)
	return p.accept(ctx, resp, err)
}

// GoogleLogin exchanges a Google ID token for a WealthWise session.
func (p *Provider) GoogleLogin(ctx context.Context, idToken string) (*models.AuthResponse, error) {
	resp, err := p.auth.GoogleLogin(ctx, idToken)
	return p.accept(ctx, resp, err)
}

// accept persists a successful auth response and makes its user current.
// A session that expired during the attempt is already gone from storage,
// so the in-memory user goes with it.
func (p *Provider) accept(ctx context.Context, resp *models.AuthResponse, err error) (*models.AuthResponse, error) {
	if err != nil {
		if errors.Is(err, api.ErrSessionExpired) {
			p.Forget()
		}
		return resp, err
	}
	if !resp.Success {
		return resp, nil
	}
	if resp.User == nil {
		return resp, errNoUserInResponse
	}
	if err := p.store.SaveAuthData(ctx, resp.User, resp.Tokens); err != nil {
		return resp, fmt.Errorf("persist session: %w", err)
	}
	p.setUser(resp.User)
	p.log.Info(ctx, "signed in", "user", resp.User.DisplayName())
	return resp, nil
}

// Logout tells the server to revoke the refresh token, ignoring any
// failure, then clears storage and the current user.
func (p *Provider) Logout(ctx context.Context) error {
	tokens, err := p.store.Tokens(ctx)
	if err != nil {
		p.log.Warn(ctx, "reading tokens for logout failed", "error", err)
	}
	if err := p.auth.Logout(ctx, tokens.Refresh); err != nil {
		p.log.Warn(ctx, "server logout failed", "error", err)
	}

	p.setUser(nil)
	if err := p.store.Clear(context.WithoutCancel(ctx)); err != nil {
		return err
	}
	return nil
}

// UpdateUser replaces the current user and persists it.
func (p *Provider) UpdateUser(ctx context.Context, u *models.User) error {
	p.setUser(u)
	return p.store.SaveUser(ctx, u)
}

// Forget drops the in-memory user without touching storage. The HTTP
// pipeline has already cleared storage when a session expires.
func (p *Provider) Forget() {
	p.setUser(nil)
}

func (p *Provider) User() *models.User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.user
}

func (p *Provider) IsAuthenticated() bool {
	return p.User() != nil
}

func (p *Provider) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

// Store exposes the credential store, e.g. for token expiry display.
func (p *Provider) Store() *Store {
	return p.store
}

func (p *Provider) setUser(u *models.User) {
	p.mu.Lock()
	p.user = u
	p.mu.Unlock()
}
