package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/dmitrijs2005/wealthwise/internal/logging"
	"github.com/google/uuid"
)

// AuthService covers sign-in, profile and password endpoints.
//
// Login, Signup and GoogleLogin return the server's body as-is; persisting
// the session is the caller's job (see session.Provider).
type AuthService interface {
	Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	GoogleLogin(ctx context.Context, idToken string) (*models.AuthResponse, error)
	Logout(ctx context.Context, refresh string) error
	GetProfile(ctx context.Context) (*models.ProfileResponse, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.ProfileResponse, error)
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (*models.MessageResponse, error)
	ForgotPassword(ctx context.Context, email string) (*models.MessageResponse, error)
	ValidateResetToken(ctx context.Context, token string) (*models.ResetTokenStatus, error)
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (*models.MessageResponse, error)
	SetPassword(ctx context.Context, req models.SetPasswordRequest) (*models.MessageResponse, error)
}

const (
	pathSignup             = "auth/signup/"
	pathLogin              = "auth/login/"
	pathGoogle             = "auth/google/"
	pathLogout             = "auth/logout/"
	pathProfile            = "auth/profile/"
	pathChangePassword     = "auth/change-password/"
	pathForgotPassword     = "auth/forgot-password/"
	pathValidateResetToken = "auth/validate-reset-token/"
	pathResetPassword      = "auth/reset-password/"
	pathSetPassword        = "auth/set-password/"
)

type authService struct {
	base
}

func NewAuthService(r Requester, log logging.Logger) AuthService {
	return &authService{base: newBase(r, log)}
}

func (a *authService) Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var resp models.AuthResponse
	if err := a.r.Post(ctx, pathSignup, req, &resp); err != nil {
		return nil, a.fail(ctx, "signup", err)
	}
	return &resp, nil
}

func (a *authService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var resp models.AuthResponse
	if err := a.r.Post(ctx, pathLogin, req, &resp); err != nil {
		return nil, a.fail(ctx, "login", err)
	}
	return &resp, nil
}

func (a *authService) GoogleLogin(ctx context.Context, idToken string) (*models.AuthResponse, error) {
	req := models.GoogleLoginRequest{Token: idToken}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var resp models.AuthResponse
	if err := a.r.Post(ctx, pathGoogle, req, &resp); err != nil {
		return nil, a.fail(ctx, "google login", err)
	}
	return &resp, nil
}

func (a *authService) Logout(ctx context.Context, refresh string) error {
	if err := a.r.Post(ctx, pathLogout, models.LogoutRequest{Refresh: refresh}, nil); err != nil {
		return a.fail(ctx, "logout", err)
	}
	return nil
}

func (a *authService) GetProfile(ctx context.Context) (*models.ProfileResponse, error) {
	var resp models.ProfileResponse
	if err := a.r.Get(ctx, pathProfile, nil, &resp); err != nil {
		return nil, a.fail(ctx, "get profile", err)
	}
	return &resp, nil
}

func (a *authService) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.ProfileResponse, error) {
	var resp models.ProfileResponse
	if err := a.r.Patch(ctx, pathProfile, upd, &resp); err != nil {
		return nil, a.fail(ctx, "update profile", err)
	}
	return &resp, nil
}

func (a *authService) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (*models.MessageResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var resp models.MessageResponse
	if err := a.r.Post(ctx, pathChangePassword, req, &resp); err != nil {
		return nil, a.fail(ctx, "change password", err)
	}
	return &resp, nil
}

func (a *authService) ForgotPassword(ctx context.Context, email string) (*models.MessageResponse, error) {
	req := models.ForgotPasswordRequest{Email: email}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var resp models.MessageResponse
	if err := a.r.Post(ctx, pathForgotPassword, req, &resp); err != nil {
		return nil, a.fail(ctx, "forgot password", err)
	}
	return &resp, nil
}

// ValidateResetToken checks a reset link token. Tokens are UUIDs; anything
// else is rejected without a request.
func (a *authService) ValidateResetToken(ctx context.Context, token string) (*models.ResetTokenStatus, error) {
	id, err := parseResetToken(token)
	if err != nil {
		return nil, err
	}
	var resp models.ResetTokenStatus
	if err := a.r.Get(ctx, pathValidateResetToken+id+"/", nil, &resp); err != nil {
		return nil, a.fail(ctx, "validate reset token", err)
	}
	return &resp, nil
}

func (a *authService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (*models.MessageResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	id, err := parseResetToken(req.Token)
	if err != nil {
		return nil, err
	}
	req.Token = id

	var resp models.MessageResponse
	if err := a.r.Post(ctx, pathResetPassword, req, &resp); err != nil {
		return nil, a.fail(ctx, "reset password", err)
	}
	return &resp, nil
}

func (a *authService) SetPassword(ctx context.Context, req models.SetPasswordRequest) (*models.MessageResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var resp models.MessageResponse
	if err := a.r.Post(ctx, pathSetPassword, req, &resp); err != nil {
		return nil, a.fail(ctx, "set password", err)
	}
	return &resp, nil
}

func parseResetToken(token string) (string, error) {
	id, err := uuid.Parse(token)
	if err != nil {
		return "", &models.FieldError{Field: "token", Message: fmt.Sprintf("invalid reset token %q", token)}
	}
	return id.String(), nil
}
