package services

import (
	"context"

	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/dmitrijs2005/wealthwise/internal/logging"
	"github.com/dmitrijs2005/wealthwise/internal/timex"
)

const (
	pathDashboard      = "dashboard/"
	pathAnalytics      = "analytics/"
	pathAnalyticsRange = "analytics/range/"
)

// ReportService reads the aggregate views: dashboard and analytics.
type ReportService interface {
	Dashboard(ctx context.Context, month timex.Month) (*models.Dashboard, error)
	Analytics(ctx context.Context, month timex.Month) (*models.Analytics, error)
	AnalyticsRange(ctx context.Context, q models.RangeQuery) (*models.RangeAnalytics, error)
}

type reportService struct {
	base
}

func NewReportService(r Requester, log logging.Logger) ReportService {
	return &reportService{base: newBase(r, log)}
}

func (s *reportService) Dashboard(ctx context.Context, month timex.Month) (*models.Dashboard, error) {
	var out models.Dashboard
	if err := s.r.Get(ctx, pathDashboard, models.MonthQuery(month), &out); err != nil {
		return nil, s.fail(ctx, "dashboard", err)
	}
	return &out, nil
}

func (s *reportService) Analytics(ctx context.Context, month timex.Month) (*models.Analytics, error) {
	var out models.Analytics
	if err := s.r.Get(ctx, pathAnalytics, models.MonthQuery(month), &out); err != nil {
		return nil, s.fail(ctx, "analytics", err)
	}
	return &out, nil
}

func (s *reportService) AnalyticsRange(ctx context.Context, q models.RangeQuery) (*models.RangeAnalytics, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	var out models.RangeAnalytics
	if err := s.r.Get(ctx, pathAnalyticsRange, q.Values(), &out); err != nil {
		return nil, s.fail(ctx, "analytics range", err)
	}
	return &out, nil
}
