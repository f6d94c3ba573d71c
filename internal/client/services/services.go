// Package services wraps the WealthWise REST endpoints. Each service checks
// its form input, calls the API through a Requester and logs failures; none
// of them caches anything.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/wealthwise/internal/client/api"
	"github.com/dmitrijs2005/wealthwise/internal/logging"
)

// Requester is the authenticated HTTP pipeline. *api.Client satisfies it.
type Requester interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
}

var _ Requester = (*api.Client)(nil)

type base struct {
	r   Requester
	log logging.Logger
}

func newBase(r Requester, log logging.Logger) base {
	if log == nil {
		log = logging.Discard()
	}
	return base{r: r, log: log}
}

// fail logs err with the operation name and returns it wrapped. Session
// expiry is logged by the pipeline and passed through as-is.
func (b base) fail(ctx context.Context, op string, err error) error {
	if errors.Is(err, api.ErrSessionExpired) {
		return err
	}
	b.log.Error(ctx, op+" failed", "error", err)
	return fmt.Errorf("%s: %w", op, err)
}

func itemPath(collection string, id int64) string {
	return collection + strconv.FormatInt(id, 10) + "/"
}
