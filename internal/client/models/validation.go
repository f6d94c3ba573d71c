package models

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrValidation marks form errors caught before a request is sent.
var ErrValidation = errors.New("validation failed")

const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)

// FieldError reports a single invalid form field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error { return ErrValidation }

func invalid(field, msg string) error {
	return &FieldError{Field: field, Message: msg}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func (r LoginRequest) Validate() error {
	if blank(r.Email) {
		return invalid("email", "email is required")
	}
	if r.Password == "" {
		return invalid("password", "password is required")
	}
	return nil
}

func (r SignupRequest) Validate() error {
	switch {
	case blank(r.Email):
		return invalid("email", "email is required")
	case !strings.Contains(r.Email, "@"):
		return invalid("email", "enter a valid email address")
	case utf8.RuneCountInString(strings.TrimSpace(r.Username)) < MinUsernameLength:
		return invalid("username", fmt.Sprintf("username must be at least %d characters", MinUsernameLength))
	}
	return validateNewPassword("password", r.Password, "password_confirm", r.PasswordConfirm)
}

func (r GoogleLoginRequest) Validate() error {
	if blank(r.Token) {
		return invalid("token", "Google ID token is required")
	}
	return nil
}

func validateNewPassword(field, pw, confirmField, confirm string) error {
	if utf8.RuneCountInString(pw) < MinPasswordLength {
		return invalid(field, fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	if pw != confirm {
		return invalid(confirmField, "passwords do not match")
	}
	return nil
}

func (r ChangePasswordRequest) Validate() error {
	if r.OldPassword == "" {
		return invalid("old_password", "current password is required")
	}
	return validateNewPassword("new_password", r.NewPassword, "new_password_confirm", r.NewPasswordConfirm)
}

func (r SetPasswordRequest) Validate() error {
	return validateNewPassword("new_password", r.NewPassword, "new_password_confirm", r.NewPasswordConfirm)
}

func (r ResetPasswordRequest) Validate() error {
	if blank(r.Token) {
		return invalid("token", "reset token is required")
	}
	return validateNewPassword("new_password", r.NewPassword, "new_password_confirm", r.NewPasswordConfirm)
}

func (r ForgotPasswordRequest) Validate() error {
	if blank(r.Email) {
		return invalid("email", "email is required")
	}
	return nil
}

func (in TransactionInput) Validate() error {
	switch {
	case !in.Amount.IsPositive():
		return invalid("amount", "amount must be greater than zero")
	case blank(in.Description):
		return invalid("description", "description is required")
	case in.Category == 0:
		return invalid("category", "category is required")
	case !in.Type.Valid():
		return invalid("type", "type must be income or expense")
	case !in.PaymentMethod.Valid():
		return invalid("payment_method", fmt.Sprintf("unknown payment method %q", in.PaymentMethod))
	case in.Date.IsZero():
		return invalid("date", "date is required")
	}
	return nil
}

func (in CategoryInput) Validate() error {
	if blank(in.Name) {
		return invalid("name", "name is required")
	}
	if !in.Type.Valid() {
		return invalid("type", "type must be income or expense")
	}
	return nil
}

func (in BudgetInput) Validate() error {
	switch {
	case !in.Amount.IsPositive():
		return invalid("amount", "amount must be greater than zero")
	case !in.IsOverall && (in.Category == nil || *in.Category == 0):
		return invalid("category", "category is required unless the budget is overall")
	case in.Month < 1 || in.Month > 12:
		return invalid("month", "month must be between 1 and 12")
	case in.Year < 1:
		return invalid("year", "year is required")
	case in.AlertThreshold < 1 || in.AlertThreshold > 100:
		return invalid("alert_threshold", "alert threshold must be between 1 and 100")
	}
	return nil
}

func (r MarkReadRequest) Validate() error {
	if !r.All && len(r.NotificationIDs) == 0 {
		return invalid("notification_ids", "provide notification ids or mark all")
	}
	return nil
}

func (q RangeQuery) Validate() error {
	if !q.Range.Valid() {
		return invalid("range", fmt.Sprintf("unknown range %q", q.Range))
	}
	if q.Range != RangeCustom {
		return nil
	}
	if q.StartDate.IsZero() || q.EndDate.IsZero() {
		return invalid("start_date", "custom range needs both start and end dates")
	}
	if q.StartDate.After(q.EndDate.Time) {
		return invalid("end_date", "end date must not be before start date")
	}
	return nil
}
