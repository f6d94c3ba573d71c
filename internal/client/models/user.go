// Package models mirrors the WealthWise REST payloads and holds the form-level
// checks the client runs before sending them.
package models

import (
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/timex"
)

type AuthProvider string

const (
	AuthProviderEmail  AuthProvider = "email"
	AuthProviderGoogle AuthProvider = "google"
)

type Profile struct {
	DateOfBirth        timex.Date `json:"date_of_birth"`
	Gender             string     `json:"gender,omitempty"`
	Address            string     `json:"address,omitempty"`
	City               string     `json:"city,omitempty"`
	State              string     `json:"state,omitempty"`
	Country            string     `json:"country,omitempty"`
	ZipCode            string     `json:"zip_code,omitempty"`
	Currency           string     `json:"currency,omitempty"`
	MonthlyIncome      Decimal    `json:"monthly_income"`
	MonthlyBudget      Decimal    `json:"monthly_budget"`
	SavingsGoal        Decimal    `json:"savings_goal"`
	EmailNotifications bool       `json:"email_notifications"`
	BudgetAlerts       bool       `json:"budget_alerts"`
	WeeklySummary      bool       `json:"weekly_summary"`
	MonthlyReport      bool       `json:"monthly_report"`
	CreatedAt          *time.Time `json:"created_at,omitempty"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}

type User struct {
	ID           int64        `json:"id"`
	Email        string       `json:"email"`
	Username     string       `json:"username"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	FullName     string       `json:"full_name"`
	Avatar       string       `json:"avatar,omitempty"`
	PhoneNumber  string       `json:"phone_number,omitempty"`
	AuthProvider AuthProvider `json:"auth_provider,omitempty"`
	IsVerified   bool         `json:"is_verified"`
	DateJoined   *time.Time   `json:"date_joined,omitempty"`
	Profile      *Profile     `json:"profile,omitempty"`
}

// DisplayName prefers the full name, then the username, then the email.
func (u *User) DisplayName() string {
	switch {
	case u == nil:
		return ""
	case u.FullName != "":
		return u.FullName
	case u.Username != "":
		return u.Username
	default:
		return u.Email
	}
}

// Currency falls back to INR, the server default.
func (u *User) Currency() string {
	if u == nil || u.Profile == nil || u.Profile.Currency == "" {
		return "INR"
	}
	return u.Profile.Currency
}

// Tokens is the stored credential pair.
type Tokens struct {
	Access  string `json:"access,omitempty"`
	Refresh string `json:"refresh,omitempty"`
}

// AuthResponse is returned by login, signup and Google exchange.
type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    *User  `json:"user,omitempty"`
	Tokens  Tokens `json:"tokens"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

type GoogleLoginRequest struct {
	Token string `json:"token"`
}

type LogoutRequest struct {
	Refresh string `json:"refresh"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse carries a new access token and, when the server rotates
// refresh tokens, a new refresh token.
type RefreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

type ProfileResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	User    *User  `json:"user"`
}

// ProfileUpdate is a partial update; nil fields are left untouched.
type ProfileUpdate struct {
	FirstName   *string        `json:"first_name,omitempty"`
	LastName    *string        `json:"last_name,omitempty"`
	PhoneNumber *string        `json:"phone_number,omitempty"`
	Avatar      *string        `json:"avatar,omitempty"`
	Profile     *ProfileFields `json:"profile,omitempty"`
}

type ProfileFields struct {
	Gender             *string  `json:"gender,omitempty"`
	City               *string  `json:"city,omitempty"`
	Country            *string  `json:"country,omitempty"`
	Currency           *string  `json:"currency,omitempty"`
	MonthlyIncome      *Decimal `json:"monthly_income,omitempty"`
	MonthlyBudget      *Decimal `json:"monthly_budget,omitempty"`
	SavingsGoal        *Decimal `json:"savings_goal,omitempty"`
	EmailNotifications *bool    `json:"email_notifications,omitempty"`
	BudgetAlerts       *bool    `json:"budget_alerts,omitempty"`
	WeeklySummary      *bool    `json:"weekly_summary,omitempty"`
	MonthlyReport      *bool    `json:"monthly_report,omitempty"`
}

type ChangePasswordRequest struct {
	OldPassword        string `json:"old_password"`
	NewPassword        string `json:"new_password"`
	NewPasswordConfirm string `json:"new_password_confirm"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token              string `json:"token"`
	NewPassword        string `json:"new_password"`
	NewPasswordConfirm string `json:"new_password_confirm"`
}

type SetPasswordRequest struct {
	NewPassword        string `json:"new_password"`
	NewPasswordConfirm string `json:"new_password_confirm"`
}

type ResetTokenStatus struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Email   string `json:"email,omitempty"`
}

// MessageResponse is the generic {success, message} acknowledgement.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
