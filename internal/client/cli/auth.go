package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/client/api"
	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/dmitrijs2005/wealthwise/internal/client/session"
	"github.com/dmitrijs2005/wealthwise/internal/common"
)

// Login prompts for credentials (the email may come as an argument) and
// signs in through the session provider.
func (a *App) Login(ctx context.Context, args []string) error {
	a.router.Navigate(api.LoginPath)

	email, err := a.argOrPrompt(args, "Enter email")
	if err != nil {
		return err
	}
	password, err := a.password("Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	resp, err := a.session.Login(ctx, email, string(password))
	return a.signedIn(ctx, resp, err)
}

// Signup collects the registration form and signs the new user in.
func (a *App) Signup(ctx context.Context, _ []string) error {
	email, err := a.prompt("Enter email")
	if err != nil {
		return err
	}
	username, err := a.prompt("Enter username")
	if err != nil {
		return err
	}
	password, err := a.password("Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirm, err := a.password("Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	resp, err := a.session.Signup(ctx, models.SignupRequest{
		Email:           email,
		Username:        username,
		Password:        string(password),
		PasswordConfirm: string(confirm),
	})
	return a.signedIn(ctx, resp, err)
}

// GoogleLogin exchanges a Google ID token obtained elsewhere (for example
// the Google sign-in button of the web client) for a session.
func (a *App) GoogleLogin(ctx context.Context, args []string) error {
	a.router.Navigate(api.LoginPath)

	if len(args) == 0 {
		a.println(styleMuted.Render("Sign in with Google for client " + a.config.GoogleClientID + " and paste the ID token."))
	}
	token, err := a.argOrPrompt(args, "Enter Google ID token")
	if err != nil {
		return err
	}

	resp, err := a.session.GoogleLogin(ctx, token)
	return a.signedIn(ctx, resp, err)
}

// signedIn reports the outcome of a login, signup or Google exchange.
func (a *App) signedIn(ctx context.Context, resp *models.AuthResponse, err error) error {
	if err != nil {
		if errors.Is(err, api.ErrSessionExpired) {
			a.lastUnread.Store(-1)
		}
		return credentialsError(err)
	}
	if !resp.Success {
		a.println(styleWarning.Render(orDash(resp.Message)))
		return nil
	}

	a.lastUnread.Store(-1)
	a.router.Navigate(pathDashboard)
	a.println(styleSuccess.Render(fmt.Sprintf("Welcome, %s!", resp.User.DisplayName())))
	a.log.Debug(ctx, "session started", "user_id", resp.User.ID)
	return nil
}

// credentialsError unwraps the server's rejection from a login attempt. A
// 401 on the login form ends in the pipeline's session-expired path, but for
// the person typing it is just "invalid credentials".
func credentialsError(err error) error {
	var apiErr *api.Error
	if errors.Is(err, api.ErrSessionExpired) && errors.As(err, &apiErr) {
		return apiErr
	}
	return err
}

// Logout always ends the local session, even when the server call fails.
func (a *App) Logout(ctx context.Context, _ []string) error {
	err := a.session.Logout(ctx)
	a.router.Navigate(api.LoginPath)
	a.lastUnread.Store(-1)
	if err != nil {
		return err
	}
	a.println("Logged out.")
	return nil
}

// WhoAmI prints the signed-in user and when the access token expires.
func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	u := a.session.User()
	tokens, err := a.session.Store().Tokens(ctx)
	if err != nil {
		return err
	}

	expiry := "unknown"
	if exp, ok := session.AccessTokenExpiry(tokens); ok {
		left := exp.Sub(a.now()).Round(time.Second)
		if left > 0 {
			expiry = fmt.Sprintf("%s (in %s)", exp.Local().Format(time.DateTime), left)
		} else {
			expiry = fmt.Sprintf("%s (expired, refreshed on next request)", exp.Local().Format(time.DateTime))
		}
	}

	a.println(keyValues(
		[2]string{"User", u.DisplayName()},
		[2]string{"Email", u.Email},
		[2]string{"Username", u.Username},
		[2]string{"Sign-in", string(u.AuthProvider)},
		[2]string{"Access token", expiry},
	))
	return nil
}

// ForgotPassword asks the server to email a reset link.
func (a *App) ForgotPassword(ctx context.Context, args []string) error {
	email, err := a.argOrPrompt(args, "Enter email")
	if err != nil {
		return err
	}
	resp, err := a.auth.ForgotPassword(ctx, email)
	if err != nil {
		return err
	}
	a.println(styleSuccess.Render(resp.Message))
	return nil
}

// ResetPassword validates a reset token, then sets the new password.
func (a *App) ResetPassword(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("reset <token>")
	}
	token := args[0]

	status, err := a.auth.ValidateResetToken(ctx, token)
	if err != nil {
		return err
	}
	if !status.Success {
		a.println(styleWarning.Render(orDash(status.Message)))
		return nil
	}
	a.println(fmt.Sprintf("Resetting password for %s.", status.Email))

	pw, confirm, err := a.newPassword()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)
	defer common.WipeByteArray(confirm)

	resp, err := a.auth.ResetPassword(ctx, models.ResetPasswordRequest{
		Token:              token,
		NewPassword:        string(pw),
		NewPasswordConfirm: string(confirm),
	})
	if err != nil {
		return err
	}
	a.router.Navigate(api.LoginPath)
	a.println(styleSuccess.Render(resp.Message))
	return nil
}

// ChangePassword replaces the password of the signed-in user.
func (a *App) ChangePassword(ctx context.Context, _ []string) error {
	old, err := a.password("Current password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(old)

	pw, confirm, err := a.newPassword()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)
	defer common.WipeByteArray(confirm)

	resp, err := a.auth.ChangePassword(ctx, models.ChangePasswordRequest{
		OldPassword:        string(old),
		NewPassword:        string(pw),
		NewPasswordConfirm: string(confirm),
	})
	if err != nil {
		return err
	}
	a.println(styleSuccess.Render(resp.Message))
	return nil
}

// SetPassword adds a password to an account created through Google.
func (a *App) SetPassword(ctx context.Context, _ []string) error {
	pw, confirm, err := a.newPassword()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)
	defer common.WipeByteArray(confirm)

	resp, err := a.auth.SetPassword(ctx, models.SetPasswordRequest{
		NewPassword:        string(pw),
		NewPasswordConfirm: string(confirm),
	})
	if err != nil {
		return err
	}
	a.println(styleSuccess.Render(resp.Message))
	return nil
}

func (a *App) newPassword() (pw, confirm []byte, err error) {
	pw, err = a.password("New password")
	if err != nil {
		return nil, nil, err
	}
	confirm, err = a.password("Confirm new password")
	if err != nil {
		common.WipeByteArray(pw)
		return nil, nil, err
	}
	return pw, confirm, nil
}

func (a *App) argOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return a.prompt(prompt)
}
