package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn   bool
	loginFails bool

	calls  []string
	paths  []string
	errs   []string
	cmdErr error
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) navigate(p string) { f.paths = append(f.paths, p) }
func (f *fakeExec) handleError(_ context.Context, cmd string, err error) {
	f.errs = append(f.errs, cmd+": "+err.Error())
}

func (f *fakeExec) Login(context.Context, []string) error {
	f.calls = append(f.calls, "login")
	if f.loginFails {
		return errors.New("bad credentials")
	}
	f.loggedIn = true
	return nil
}

func (f *fakeExec) commands() []command {
	record := func(name string) func(context.Context, []string) error {
		return func(_ context.Context, args []string) error {
			f.calls = append(f.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
			if name == "fail" {
				return f.cmdErr
			}
			return nil
		}
	}
	return []command{
		{name: "login", path: "/login", run: f.Login},
		{name: "forgot", path: "/forgot-password", run: record("forgot")},
		{name: "tx", path: "/transactions", private: true, run: record("tx")},
		{name: "budgets", path: "/budgets", private: true, run: record("budgets")},
		{name: "fail", private: true, run: record("fail")},
	}
}

func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_PrivateCommandPromptsLoginFirst(t *testing.T) {
	out := capturePrintln(t)
	exec := &fakeExec{}

	runREPL(context.Background(), exec, func() string { return "status" }, rdr(strings.Join([]string{
		"help",
		"tx expense 2025-01",
		"budgets",
		"forgot",
		"foobar",
		"exit",
		"tx",
	}, "\n")))

	assert.Equal(t, []string{"login", "tx expense 2025-01", "budgets", "forgot"}, exec.calls)
	assert.Equal(t, []string{"/transactions", "/budgets", "/forgot-password"}, exec.paths)
	assert.Contains(t, *out, "Please log in first.")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_SignedInUserSkipsLoginFromPublicRoute(t *testing.T) {
	out := capturePrintln(t)
	exec := &fakeExec{loggedIn: true}

	runREPL(context.Background(), exec, func() string { return "status" }, rdr("forgot\nbudgets\n"))

	assert.Equal(t, []string{"forgot", "budgets"}, exec.calls)
	assert.Equal(t, []string{"/forgot-password", "/budgets"}, exec.paths)
	assert.NotContains(t, *out, "Please log in first.")
}

func TestRunREPL_FailedLoginSkipsCommand(t *testing.T) {
	capturePrintln(t)
	exec := &fakeExec{loginFails: true}

	runREPL(context.Background(), exec, func() string { return "" }, rdr("tx\n"))

	assert.Equal(t, []string{"login"}, exec.calls)
	assert.Equal(t, []string{"login: bad credentials"}, exec.errs)
	assert.Empty(t, exec.paths)
}

func TestRunREPL_CommandErrorsDoNotStopTheLoop(t *testing.T) {
	capturePrintln(t)
	exec := &fakeExec{loggedIn: true, cmdErr: errors.New("boom")}

	runREPL(context.Background(), exec, func() string { return "" }, rdr("fail\ntx\n"))

	assert.Equal(t, []string{"fail", "tx"}, exec.calls)
	assert.Equal(t, []string{"fail: boom"}, exec.errs)
}

func TestRunREPL_HelpListsOnlyReachableCommands(t *testing.T) {
	out := capturePrintln(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, rdr("help\n"))
	help := strings.Join(*out, "\n")
	assert.Contains(t, help, "forgot")
	assert.NotContains(t, help, "budgets")

	*out = nil
	runREPL(context.Background(), &fakeExec{loggedIn: true}, func() string { return "" }, rdr("help\n"))
	assert.Contains(t, strings.Join(*out, "\n"), "budgets")
}

func TestRunREPL_StopsWhenContextDone(t *testing.T) {
	capturePrintln(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{loggedIn: true}
	runREPL(ctx, exec, func() string { return "" }, rdr("tx\n"))
	require.Empty(t, exec.calls)
}
