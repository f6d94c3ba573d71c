package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/wealthwise/internal/client/api"
	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/dmitrijs2005/wealthwise/internal/timex"
)

var errUsage = errors.New("usage")

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

// handleError reports a failed command. An expired session drops the user
// back to the login screen; nothing here ends the REPL.
func (a *App) handleError(ctx context.Context, cmd string, err error) {
	var (
		fieldErr *models.FieldError
		apiErr   *api.Error
	)

	switch {
	case errors.Is(err, context.Canceled):
		return

	case errors.Is(err, api.ErrSessionExpired):
		a.session.Forget()
		a.router.Navigate(api.LoginPath)
		a.lastUnread.Store(-1)
		printlnFn(styleDanger.Render("Session expired, please log in again."))

	case errors.Is(err, errUsage):
		printlnFn(styleWarning.Render(err.Error()))

	case errors.As(err, &fieldErr):
		printlnFn(styleWarning.Render(fieldErr.Error()))

	case errors.Is(err, api.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		a.log.Warn(ctx, "server unavailable", "command", cmd, "error", err)
		printlnFn(styleDanger.Render("Server unavailable, try again later."))

	case errors.As(err, &apiErr) && !errors.Is(apiErr, api.ErrServer):
		if msgs := apiErr.FieldMessages(); len(msgs) > 0 && apiErr.Message != "" {
			printlnFn(styleWarning.Render(apiErr.Message))
			for _, m := range msgs {
				printlnFn(styleWarning.Render("  " + m))
			}
			return
		}
		printlnFn(styleWarning.Render(apiErr.UserMessage()))

	default:
		a.log.Error(ctx, "command failed", "command", cmd, "error", err)
		printlnFn(styleDanger.Render("Something went wrong, please try again."))
	}
}

func parseID(args []string, usage string) (int64, error) {
	if len(args) == 0 {
		return 0, usageError("%s", usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, usageError("%q is not an id; %s", args[0], usage)
	}
	return id, nil
}

// monthArg reads an optional YYYY-MM argument. Without one the server's
// current month is used.
func monthArg(args []string) (timex.Month, error) {
	if len(args) == 0 {
		return timex.Month{}, nil
	}
	m, err := timex.ParseMonth(args[0])
	if err != nil {
		return timex.Month{}, usageError("month must look like 2025-01")
	}
	return m, nil
}
