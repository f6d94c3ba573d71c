package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/client/api"
	"github.com/dmitrijs2005/wealthwise/internal/client/config"
	"github.com/dmitrijs2005/wealthwise/internal/client/services"
	"github.com/dmitrijs2005/wealthwise/internal/client/session"
	"github.com/dmitrijs2005/wealthwise/internal/client/storage"
	"github.com/dmitrijs2005/wealthwise/internal/logging"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	storage storage.Storage
	router  *Router
	session *session.Provider
	reader  *bufio.Reader
	out     io.Writer
	now     func() time.Time

	auth          services.AuthService
	transactions  services.TransactionService
	categories    services.CategoryService
	budgets       services.BudgetService
	notifications services.NotificationService
	reports       services.ReportService

	// last unread count seen by the watcher; -1 until the first poll
	lastUnread atomic.Int64
}

// NewApp opens local storage and wires the HTTP pipeline, the services and
// the session provider. Close releases the storage.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	st, err := storage.Open(ctx, c.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("open local storage: %w", err)
	}

	store := session.NewStore(st)
	router := NewRouter(api.LoginPath)

	client, err := api.New(c.APIBaseURL, store,
		api.WithTimeout(c.RequestTimeout),
		api.WithNavigator(router),
		api.WithLogger(log),
	)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	return newApp(c, log, st, store, client, router, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, log logging.Logger, st storage.Storage, store *session.Store,
	r services.Requester, router *Router, in io.Reader, out io.Writer) *App {
	auth := services.NewAuthService(r, log)
	a := &App{
		config:        c,
		log:           log,
		storage:       st,
		router:        router,
		session:       session.NewProvider(store, auth, log),
		reader:        bufio.NewReader(in),
		out:           out,
		now:           time.Now,
		auth:          auth,
		transactions:  services.NewTransactionService(r, log),
		categories:    services.NewCategoryService(r, log),
		budgets:       services.NewBudgetService(r, log),
		notifications: services.NewNotificationService(r, log),
		reports:       services.NewReportService(r, log),
	}
	a.lastUnread.Store(-1)
	return a
}

// Run hydrates the session, starts the notification watcher and blocks in
// the REPL until the user exits, stdin closes or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.start(ctx)

	watcher := a.StartNotificationWatcher(ctx, a.config.NotificationPollInterval)
	defer watcher.Stop()

	printlnFn(styleTitle.Render("Welcome to WealthWise (type 'help' for commands)"))
	runREPL(ctx, a, a.getStatus, a.reader)
}

// start restores a stored session and picks the first screen.
func (a *App) start(ctx context.Context) {
	a.session.Init(ctx)

	if a.isLoggedIn() {
		a.router.Navigate(pathDashboard)
		printlnFn(fmt.Sprintf("Signed in as %s.", a.session.User().DisplayName()))
		return
	}
	a.router.Navigate(api.LoginPath)
}

func (a *App) Close() {
	if err := a.storage.Close(); err != nil {
		a.log.Error(context.Background(), "failed to close local storage", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	s := a.router.CurrentPath()
	if u := a.session.User(); u != nil {
		s = fmt.Sprintf("%s (%s)", s, u.DisplayName())
	}
	return s
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) prompt(text string) (string, error) {
	return getSimpleText(a.reader, text, a.out)
}

func (a *App) password(text string) ([]byte, error) {
	return getPassword(a.reader, text, a.out)
}

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)
