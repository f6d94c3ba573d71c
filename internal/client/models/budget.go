package models

import (
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/timex"
)

// BudgetStatus is derived by the server from spent/amount and the threshold.
type BudgetStatus string

const (
	BudgetNormal   BudgetStatus = "normal"
	BudgetWarning  BudgetStatus = "warning"
	BudgetExceeded BudgetStatus = "exceeded"
)

// DefaultAlertThreshold is the server's default warning percentage.
const DefaultAlertThreshold = 80

type Budget struct {
	ID             int64        `json:"id"`
	Category       *int64       `json:"category"`
	CategoryName   string       `json:"category_name,omitempty"`
	CategoryColor  string       `json:"category_color,omitempty"`
	Amount         Decimal      `json:"amount"`
	Spent          Decimal      `json:"spent"`
	Percentage     Decimal      `json:"percentage"`
	Status         BudgetStatus `json:"status"`
	Month          int          `json:"month"`
	Year           int          `json:"year"`
	IsOverall      bool         `json:"is_overall"`
	AlertThreshold int          `json:"alert_threshold"`
	CreatedAt      *time.Time   `json:"created_at,omitempty"`
}

// Label names the budget's scope for display.
func (b Budget) Label() string {
	if b.IsOverall {
		return "Overall"
	}
	if b.CategoryName != "" {
		return b.CategoryName
	}
	return "Unknown"
}

type BudgetInput struct {
	Category       *int64  `json:"category"`
	Amount         Decimal `json:"amount"`
	Month          int     `json:"month"`
	Year           int     `json:"year"`
	IsOverall      bool    `json:"is_overall"`
	AlertThreshold int     `json:"alert_threshold"`
}

// BudgetInputFrom prefills an edit form from an existing budget.
func BudgetInputFrom(b Budget) BudgetInput {
	return BudgetInput{
		Category:       b.Category,
		Amount:         b.Amount,
		Month:          b.Month,
		Year:           b.Year,
		IsOverall:      b.IsOverall,
		AlertThreshold: b.AlertThreshold,
	}
}

type BudgetResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Budget  Budget `json:"budget"`
}

type BudgetUsage struct {
	ID             int64        `json:"id"`
	CategoryID     int64        `json:"category_id,omitempty"`
	CategoryName   string       `json:"category_name,omitempty"`
	CategoryColor  string       `json:"category_color,omitempty"`
	Amount         Decimal      `json:"amount"`
	Spent          Decimal      `json:"spent"`
	Remaining      Decimal      `json:"remaining"`
	Percentage     float64      `json:"percentage"`
	Status         BudgetStatus `json:"status"`
	AlertThreshold int          `json:"alert_threshold"`
}

type BudgetOverview struct {
	Success         bool          `json:"success"`
	Currency        string        `json:"currency"`
	Month           int           `json:"month"`
	Year            int           `json:"year"`
	MonthName       string        `json:"month_name"`
	IsCurrentMonth  bool          `json:"is_current_month"`
	HasBudget       bool          `json:"has_budget"`
	OverallBudget   *BudgetUsage  `json:"overall_budget"`
	CategoryBudgets []BudgetUsage `json:"category_budgets"`
	TotalExpenses   Decimal       `json:"total_expenses"`
	TotalIncome     Decimal       `json:"total_income"`
}

// MonthQuery renders the month/year parameters; a zero month yields none and
// the server picks the current month.
func MonthQuery(m timex.Month) url.Values {
	q := url.Values{}
	if !m.IsZero() {
		q.Set("month", strconv.Itoa(int(m.Month)))
		q.Set("year", strconv.Itoa(m.Year))
	}
	return q
}
