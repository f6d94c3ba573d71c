package services

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/dmitrijs2005/wealthwise/internal/logging"
)

const (
	pathNotifications         = "notifications/"
	pathNotificationsCount    = "notifications/count/"
	pathNotificationsMarkRead = "notifications/mark-read/"
)

type NotificationService interface {
	List(ctx context.Context, unreadOnly bool) ([]models.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, ids ...int64) (*models.MessageResponse, error)
	MarkAllRead(ctx context.Context) (*models.MessageResponse, error)
	Delete(ctx context.Context, id int64) (*models.MessageResponse, error)
}

type notificationService struct {
	base
}

func NewNotificationService(r Requester, log logging.Logger) NotificationService {
	return &notificationService{base: newBase(r, log)}
}

func (s *notificationService) List(ctx context.Context, unreadOnly bool) ([]models.Notification, error) {
	var q url.Values
	if unreadOnly {
		q = url.Values{"unread": {"true"}}
	}
	var out []models.Notification
	if err := s.r.Get(ctx, pathNotifications, q, &out); err != nil {
		return nil, s.fail(ctx, "list notifications", err)
	}
	return out, nil
}

func (s *notificationService) UnreadCount(ctx context.Context) (int, error) {
	var resp models.NotificationCount
	if err := s.r.Get(ctx, pathNotificationsCount, nil, &resp); err != nil {
		return 0, s.fail(ctx, "unread count", err)
	}
	return resp.UnreadCount, nil
}

func (s *notificationService) MarkRead(ctx context.Context, ids ...int64) (*models.MessageResponse, error) {
	return s.markRead(ctx, models.MarkReadRequest{NotificationIDs: ids})
}

func (s *notificationService) MarkAllRead(ctx context.Context) (*models.MessageResponse, error) {
	return s.markRead(ctx, models.MarkReadRequest{All: true})
}

func (s *notificationService) markRead(ctx context.Context, req models.MarkReadRequest) (*models.MessageResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var resp models.MessageResponse
	if err := s.r.Post(ctx, pathNotificationsMarkRead, req, &resp); err != nil {
		return nil, s.fail(ctx, "mark notifications read", err)
	}
	return &resp, nil
}

func (s *notificationService) Delete(ctx context.Context, id int64) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := s.r.Delete(ctx, itemPath(pathNotifications, id), &resp); err != nil {
		return nil, s.fail(ctx, "delete notification", err)
	}
	return &resp, nil
}
