package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/wealthwise/internal/client/api"
	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_handleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		want       string
		signedOut  bool
		wantSilent bool
	}{
		{
			name:       "canceled is silent",
			err:        fmt.Errorf("list: %w", context.Canceled),
			wantSilent: true,
		},
		{
			name:      "session expired",
			err:       &api.SessionExpiredError{Rejected: &api.Error{Status: http.StatusUnauthorized}, Cause: api.ErrNoRefreshToken},
			want:      "Session expired, please log in again.",
			signedOut: true,
		},
		{
			name: "usage",
			err:  usageError("deltx <id>"),
			want: "usage: deltx <id>",
		},
		{
			name: "field error",
			err:  &models.FieldError{Field: "amount", Message: "amount must be greater than zero"},
			want: "amount: amount must be greater than zero",
		},
		{
			name: "unavailable",
			err:  fmt.Errorf("%w: connection refused", api.ErrUnavailable),
			want: "Server unavailable, try again later.",
		},
		{
			name: "deadline",
			err:  context.DeadlineExceeded,
			want: "Server unavailable, try again later.",
		},
		{
			name: "client error message",
			err:  &api.Error{Status: http.StatusNotFound, Message: "Transaction not found"},
			want: "Transaction not found",
		},
		{
			name: "field messages",
			err: &api.Error{Status: http.StatusBadRequest, Message: "Invalid data", Fields: map[string][]string{
				"amount": {"Ensure this value is greater than 0."},
			}},
			want: "amount: Ensure this value is greater than 0.",
		},
		{
			name: "server error",
			err:  &api.Error{Status: http.StatusInternalServerError, Message: "Traceback"},
			want: "Something went wrong, please try again.",
		},
		{
			name: "unknown",
			err:  errors.New("boom"),
			want: "Something went wrong, please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.signIn()
			before := h.out.String()

			h.app.handleError(context.Background(), "test", tt.err)

			printed := h.out.String()[len(before):]
			if tt.wantSilent {
				assert.Empty(t, printed)
				return
			}
			assert.Contains(t, printed, tt.want)
			assert.NotContains(t, printed, "Traceback")
			assert.Equal(t, !tt.signedOut, h.app.isLoggedIn())
			if tt.signedOut {
				assert.Equal(t, api.LoginPath, h.router.CurrentPath())
				assert.EqualValues(t, -1, h.app.lastUnread.Load())
			}
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := parseID([]string{"12"}, "deltx <id>")
	require.NoError(t, err)
	assert.EqualValues(t, 12, id)

	for _, args := range [][]string{nil, {"0"}, {"-3"}, {"x1"}} {
		_, err := parseID(args, "deltx <id>")
		assert.ErrorIs(t, err, errUsage, "args %v", args)
	}
}

func TestMonthArg(t *testing.T) {
	m, err := monthArg(nil)
	require.NoError(t, err)
	assert.True(t, m.IsZero())

	m, err = monthArg([]string{"2025-02"})
	require.NoError(t, err)
	assert.Equal(t, "2025-02", m.String())

	_, err = monthArg([]string{"02/2025"})
	assert.ErrorIs(t, err, errUsage)
}
