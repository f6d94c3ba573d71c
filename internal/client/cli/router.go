package cli

import (
	"sync"

	"github.com/dmitrijs2005/wealthwise/internal/client/api"
)

const (
	pathRoot          = "/"
	pathSignup        = "/signup"
	pathForgot        = "/forgot-password"
	pathReset         = "/reset-password"
	pathDashboard     = "/dashboard"
	pathTransactions  = "/transactions"
	pathIncome        = "/income"
	pathBudgets       = "/budgets"
	pathNotifications = "/notifications"
	pathAnalytics     = "/analytics"
	pathProfile       = "/profile"
)

// Router is the REPL's notion of the current screen. The HTTP pipeline
// reads and moves it through api.Navigator.
type Router struct {
	mu   sync.RWMutex
	path string
}

var _ api.Navigator = (*Router)(nil)

func NewRouter(start string) *Router {
	return &Router{path: start}
}

func (r *Router) CurrentPath() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.path
}

func (r *Router) Navigate(path string) {
	r.mu.Lock()
	r.path = path
	r.mu.Unlock()
}
