package models

import (
	"net/url"

	"github.com/dmitrijs2005/wealthwise/internal/timex"
)

// Severity grades an insight; the terminal colours rows by it.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Insight is a server-written observation. Type-specific numeric extras
// (amount, change_percentage, savings and so on) are not mirrored.
type Insight struct {
	Type     string   `json:"type"`
	Icon     string   `json:"icon,omitempty"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

type BudgetAlert struct {
	Type       string  `json:"type"`
	Name       string  `json:"name"`
	Spent      Decimal `json:"spent"`
	Budget     Decimal `json:"budget"`
	Percentage float64 `json:"percentage"`
}

type MonthSummary struct {
	TotalIncome      Decimal `json:"total_income"`
	TotalExpenses    Decimal `json:"total_expenses"`
	Savings          Decimal `json:"savings"`
	SavingsRate      float64 `json:"savings_rate"`
	TransactionCount int     `json:"transaction_count"`
}

type DailySpending struct {
	Day        int     `json:"day"`
	Expense    Decimal `json:"expense"`
	Cumulative Decimal `json:"cumulative"`
}

type MonthCharts struct {
	ExpenseByCategory []Slice         `json:"expense_by_category"`
	IncomeVsExpense   []TrendPoint    `json:"income_vs_expense"`
	DailySpending     []DailySpending `json:"daily_spending"`
}

type MonthComparison struct {
	PrevMonthExpenses Decimal `json:"prev_month_expenses"`
	PrevMonthIncome   Decimal `json:"prev_month_income"`
	ExpenseChange     float64 `json:"expense_change"`
	IncomeChange      float64 `json:"income_change"`
}

// Analytics is the month-scoped analytics report.
type Analytics struct {
	Success        bool            `json:"success"`
	Currency       string          `json:"currency"`
	CurrencySymbol string          `json:"currency_symbol"`
	Month          int             `json:"month"`
	Year           int             `json:"year"`
	MonthName      string          `json:"month_name"`
	Summary        MonthSummary    `json:"summary"`
	Charts         MonthCharts     `json:"charts"`
	Insights       []Insight       `json:"insights"`
	BudgetAlerts   []BudgetAlert   `json:"budget_alerts"`
	Comparison     MonthComparison `json:"comparison"`
}

type RangePreset string

const (
	RangeLast7Days   RangePreset = "last_7_days"
	RangeLast30Days  RangePreset = "last_30_days"
	RangeLast3Months RangePreset = "last_3_months"
	RangeLast6Months RangePreset = "last_6_months"
	RangeLast1Year   RangePreset = "last_1_year"
	RangeCustom      RangePreset = "custom"
)

var RangePresets = []RangePreset{
	RangeLast7Days, RangeLast30Days, RangeLast3Months,
	RangeLast6Months, RangeLast1Year, RangeCustom,
}

func (p RangePreset) Valid() bool {
	for _, r := range RangePresets {
		if p == r {
			return true
		}
	}
	return false
}

// RangeQuery selects the reporting window of the range analytics endpoint.
type RangeQuery struct {
	Range     RangePreset
	StartDate timex.Date
	EndDate   timex.Date
}

func (q RangeQuery) Values() url.Values {
	v := url.Values{}
	v.Set("range", string(q.Range))
	if q.Range == RangeCustom {
		v.Set("start_date", q.StartDate.String())
		v.Set("end_date", q.EndDate.String())
	}
	return v
}

type RangeInfo struct {
	Type      RangePreset `json:"type"`
	Label     string      `json:"label"`
	StartDate timex.Date  `json:"start_date"`
	EndDate   timex.Date  `json:"end_date"`
	Days      int         `json:"days"`
}

type RangeSummary struct {
	TotalIncome       Decimal `json:"total_income"`
	TotalExpenses     Decimal `json:"total_expenses"`
	NetSavings        Decimal `json:"net_savings"`
	SavingsRate       float64 `json:"savings_rate"`
	TransactionCount  int     `json:"transaction_count"`
	IncomeCount       int     `json:"income_count"`
	ExpenseCount      int     `json:"expense_count"`
	AvgDailyExpense   Decimal `json:"avg_daily_expense"`
	AvgDailyIncome    Decimal `json:"avg_daily_income"`
	AvgMonthlyExpense Decimal `json:"avg_monthly_expense"`
	AvgMonthlyIncome  Decimal `json:"avg_monthly_income"`
}

type RangeTrendPoint struct {
	Label   string  `json:"label"`
	Period  string  `json:"period"`
	Income  Decimal `json:"income"`
	Expense Decimal `json:"expense"`
	Savings Decimal `json:"savings"`
}

type CumulativePoint struct {
	Date              timex.Date `json:"date"`
	Label             string     `json:"label"`
	CumulativeExpense Decimal    `json:"cumulative_expense"`
	CumulativeIncome  Decimal    `json:"cumulative_income"`
	CumulativeSavings Decimal    `json:"cumulative_savings"`
}

type RangeCharts struct {
	ExpenseByCategory []Slice           `json:"expense_by_category"`
	IncomeByCategory  []Slice           `json:"income_by_category"`
	Trend             []RangeTrendPoint `json:"trend"`
	Cumulative        []CumulativePoint `json:"cumulative"`
}

type PrevPeriod struct {
	StartDate timex.Date `json:"start_date"`
	EndDate   timex.Date `json:"end_date"`
	Income    Decimal    `json:"income"`
	Expenses  Decimal    `json:"expenses"`
}

type RangeComparison struct {
	PrevPeriod          PrevPeriod `json:"prev_period"`
	ExpenseChangePct    float64    `json:"expense_change_pct"`
	IncomeChangePct     float64    `json:"income_change_pct"`
	ExpenseChangeAmount Decimal    `json:"expense_change_amount"`
	IncomeChangeAmount  Decimal    `json:"income_change_amount"`
}

// RangeAnalytics is the analytics report over a preset or custom window.
type RangeAnalytics struct {
	Success        bool            `json:"success"`
	Currency       string          `json:"currency"`
	CurrencySymbol string          `json:"currency_symbol"`
	Range          RangeInfo       `json:"range"`
	Summary        RangeSummary    `json:"summary"`
	Charts         RangeCharts     `json:"charts"`
	Insights       []Insight       `json:"insights"`
	Comparison     RangeComparison `json:"comparison"`
}
