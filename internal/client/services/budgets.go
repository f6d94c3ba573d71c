package services

import (
	"context"

	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/dmitrijs2005/wealthwise/internal/logging"
	"github.com/dmitrijs2005/wealthwise/internal/timex"
)

const (
	pathBudgets        = "budgets/"
	pathBudgetOverview = "budgets/overview/"
)

// BudgetService manages monthly budgets. Spent, percentage and status are
// always the server's figures.
type BudgetService interface {
	List(ctx context.Context, month timex.Month) ([]models.Budget, error)
	Create(ctx context.Context, in models.BudgetInput) (*models.BudgetResponse, error)
	Update(ctx context.Context, id int64, in models.BudgetInput) (*models.Budget, error)
	Delete(ctx context.Context, id int64) (*models.MessageResponse, error)
	Overview(ctx context.Context, month timex.Month) (*models.BudgetOverview, error)
}

type budgetService struct {
	base
}

func NewBudgetService(r Requester, log logging.Logger) BudgetService {
	return &budgetService{base: newBase(r, log)}
}

func (s *budgetService) List(ctx context.Context, month timex.Month) ([]models.Budget, error) {
	var out []models.Budget
	if err := s.r.Get(ctx, pathBudgets, models.MonthQuery(month), &out); err != nil {
		return nil, s.fail(ctx, "list budgets", err)
	}
	return out, nil
}

func (s *budgetService) Create(ctx context.Context, in models.BudgetInput) (*models.BudgetResponse, error) {
	if in.IsOverall {
		in.Category = nil
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var resp models.BudgetResponse
	if err := s.r.Post(ctx, pathBudgets, in, &resp); err != nil {
		return nil, s.fail(ctx, "create budget", err)
	}
	return &resp, nil
}

func (s *budgetService) Update(ctx context.Context, id int64, in models.BudgetInput) (*models.Budget, error) {
	if in.IsOverall {
		in.Category = nil
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var b models.Budget
	if err := s.r.Patch(ctx, itemPath(pathBudgets, id), in, &b); err != nil {
		return nil, s.fail(ctx, "update budget", err)
	}
	return &b, nil
}

func (s *budgetService) Delete(ctx context.Context, id int64) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := s.r.Delete(ctx, itemPath(pathBudgets, id), &resp); err != nil {
		return nil, s.fail(ctx, "delete budget", err)
	}
	return &resp, nil
}

func (s *budgetService) Overview(ctx context.Context, month timex.Month) (*models.BudgetOverview, error) {
	var out models.BudgetOverview
	if err := s.r.Get(ctx, pathBudgetOverview, models.MonthQuery(month), &out); err != nil {
		return nil, s.fail(ctx, "budget overview", err)
	}
	return &out, nil
}
