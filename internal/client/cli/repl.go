package cli

import (
	"bufio"
	"context"
	"fmt"
	"sort"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// command is one REPL verb. Private commands need a signed-in user; path is
// the screen the router moves to before the command runs.
type command struct {
	name    string
	usage   string
	help    string
	path    string
	private bool
	run     func(ctx context.Context, args []string) error
}

// execIface defines the minimal surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	commands() []command
	navigate(path string)
	Login(ctx context.Context, args []string) error
	handleError(ctx context.Context, cmd string, err error)
}

// runREPL reads commands line by line from r and dispatches them.
//
// A private command issued while signed out first runs the login prompt and
// only proceeds if that succeeds. Errors returned by commands go to
// handleError; none of them end the loop. The loop exits on EOF, on "exit"
// or "quit", or when ctx is done.
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader) {
	cmds := make(map[string]command)
	for _, c := range a.commands() {
		cmds[c.name] = c
	}

	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("ww %s> ", statusFn()))
		line, err := readLine(r)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "help":
			printHelp(cmds, a.isLoggedIn())
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		cmd, ok := cmds[name]
		if !ok {
			printlnFn("Unknown command:", name)
			continue
		}

		if cmd.private && !a.isLoggedIn() {
			printlnFn("Please log in first.")
			if err := a.Login(ctx, nil); err != nil {
				a.handleError(ctx, "login", err)
				continue
			}
			if !a.isLoggedIn() {
				continue
			}
		}

		if cmd.path != "" {
			a.navigate(cmd.path)
		}
		if err := cmd.run(ctx, args); err != nil {
			a.handleError(ctx, name, err)
		}
	}
}

func printHelp(cmds map[string]command, loggedIn bool) {
	names := make([]string, 0, len(cmds))
	for name, c := range cmds {
		if c.private && !loggedIn {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	printlnFn("Available commands:")
	for _, name := range names {
		c := cmds[name]
		printlnFn(fmt.Sprintf("  %-34s %s", strings.TrimSpace(c.name+" "+c.usage), c.help))
	}
	printlnFn(fmt.Sprintf("  %-34s %s", "exit", "leave the program"))
}
