package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/client/api"
	"github.com/dmitrijs2005/wealthwise/internal/logging"
	"github.com/robfig/cron/v3"
)

// Notifications lists notifications, only unread ones with "unread".
func (a *App) Notifications(ctx context.Context, args []string) error {
	unread := len(args) > 0 && args[0] == "unread"

	list, err := a.notifications.List(ctx, unread)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println(styleMuted.Render("No notifications."))
		return nil
	}

	t := newTable("ID", "", "When", "Type", "Title", "Message")
	unreadCount := 0
	for _, n := range list {
		dot := ""
		if !n.IsRead {
			dot = "•"
			unreadCount++
		}
		typ := n.TypeDisplay
		if typ == "" {
			typ = string(n.Type)
		}
		t.Row(formatID(n.ID), dot, orDash(n.TimeAgo), notificationStyle(n.Type).Render(typ), n.Title, n.Message)
	}
	a.println(t.String())
	if !unread {
		a.lastUnread.Store(int64(unreadCount))
	}
	return nil
}

// MarkRead marks the given notification ids, or all with "all".
func (a *App) MarkRead(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("read <id> [<id>...] | read all")
	}

	var err error
	if args[0] == "all" {
		_, err = a.notifications.MarkAllRead(ctx)
	} else {
		ids := make([]int64, 0, len(args))
		for _, s := range args {
			id, perr := strconv.ParseInt(s, 10, 64)
			if perr != nil || id <= 0 {
				return usageError("%q is not an id", s)
			}
			ids = append(ids, id)
		}
		_, err = a.notifications.MarkRead(ctx, ids...)
	}
	if err != nil {
		return err
	}

	n, err := a.notifications.UnreadCount(ctx)
	if err != nil {
		return err
	}
	a.lastUnread.Store(int64(n))
	a.println(styleSuccess.Render(fmt.Sprintf("Marked as read. %d unread left.", n)))
	return nil
}

func (a *App) DeleteNotification(ctx context.Context, args []string) error {
	id, err := parseID(args, "delnote <id>")
	if err != nil {
		return err
	}
	resp, err := a.notifications.Delete(ctx, id)
	if err != nil {
		return err
	}
	a.println(styleSuccess.Render(orDash(resp.Message)))
	return nil
}

// StartNotificationWatcher polls the unread count every interval while a
// user is signed in and announces new notifications. Intervals below one
// second run once a second. Stop the returned scheduler to end polling.
func (a *App) StartNotificationWatcher(ctx context.Context, interval time.Duration) *cron.Cron {
	logger := cronLogger{ctx: ctx, log: a.log}
	c := cron.New(cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)))
	c.Schedule(cron.Every(interval), cron.FuncJob(func() { a.pollNotifications(ctx) }))
	c.Start()
	return c
}

func (a *App) pollNotifications(ctx context.Context) {
	if ctx.Err() != nil || !a.isLoggedIn() {
		return
	}

	n, err := a.notifications.UnreadCount(ctx)
	if err != nil {
		if errors.Is(err, api.ErrSessionExpired) {
			a.handleError(ctx, "notification watcher", err)
			return
		}
		a.log.Debug(ctx, "notification poll failed", "error", err)
		return
	}
	a.announceUnread(n)
}

// announceUnread prints a line when the unread count grows. The first poll
// after sign-in reports the backlog instead.
func (a *App) announceUnread(n int) {
	prev := a.lastUnread.Swap(int64(n))
	switch {
	case prev < 0 && n > 0:
		printlnFn(styleInfo.Render(fmt.Sprintf("You have %d unread notifications.", n)))
	case prev >= 0 && int64(n) > prev:
		printlnFn(styleInfo.Render(fmt.Sprintf("%d new notifications (%d unread). Type 'notifications unread'.", int64(n)-prev, n)))
	}
}

// cronLogger routes scheduler messages into the application logger.
type cronLogger struct {
	ctx context.Context
	log logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(l.ctx, "watcher: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(l.ctx, "watcher: "+msg, append(keysAndValues, "error", err)...)
}
