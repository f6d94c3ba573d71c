package models

// Slice is one category's share in a breakdown chart.
type Slice struct {
	Name  string  `json:"name"`
	Value Decimal `json:"value"`
	Color string  `json:"color,omitempty"`
}

type PeriodTotals struct {
	Income            Decimal `json:"income"`
	Expenses          Decimal `json:"expenses"`
	TransactionsCount int     `json:"transactions_count"`
}

type TrendPoint struct {
	Month   string  `json:"month"`
	Year    int     `json:"year,omitempty"`
	Income  Decimal `json:"income"`
	Expense Decimal `json:"expense"`
}

type DashboardBudget struct {
	ID             int64        `json:"id"`
	Category       string       `json:"category"`
	CategoryColor  string       `json:"category_color,omitempty"`
	Budget         Decimal      `json:"budget"`
	Spent          Decimal      `json:"spent"`
	Percentage     float64      `json:"percentage"`
	Status         BudgetStatus `json:"status"`
	AlertThreshold int          `json:"alert_threshold"`
}

type DashboardStats struct {
	TotalBalance         Decimal           `json:"total_balance"`
	MonthlyIncome        Decimal           `json:"monthly_income"`
	MonthlyExpenses      Decimal           `json:"monthly_expenses"`
	Savings              Decimal           `json:"savings"`
	SavingsRate          float64           `json:"savings_rate"`
	IncomeChange         float64           `json:"income_change"`
	ExpenseChange        float64           `json:"expense_change"`
	Today                PeriodTotals      `json:"today"`
	ThisMonth            PeriodTotals      `json:"this_month"`
	MonthlyBudget        Decimal           `json:"monthly_budget"`
	BudgetUsedPercentage float64           `json:"budget_used_percentage"`
	OverallStatus        BudgetStatus      `json:"overall_status"`
	BudgetOverview       []DashboardBudget `json:"budget_overview"`
	ExpenseByCategory    []Slice           `json:"expense_by_category"`
	IncomeByCategory     []Slice           `json:"income_by_category"`
	MonthlyTrend         []TrendPoint      `json:"monthly_trend"`
	RecentTransactions   []Transaction     `json:"recent_transactions"`
}

type Dashboard struct {
	Success        bool           `json:"success"`
	Message        string         `json:"message"`
	User           *User          `json:"user,omitempty"`
	Currency       string         `json:"currency"`
	SelectedMonth  int            `json:"selected_month"`
	SelectedYear   int            `json:"selected_year"`
	IsCurrentMonth bool           `json:"is_current_month"`
	HasBudget      bool           `json:"has_budget"`
	Dashboard      DashboardStats `json:"dashboard"`
}
