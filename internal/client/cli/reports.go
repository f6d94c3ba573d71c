package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/dmitrijs2005/wealthwise/internal/timex"
	"golang.org/x/sync/errgroup"
)

const recentLimit = 5

// Dashboard fetches the month's dashboard and the unread notification
// count concurrently and prints both.
func (a *App) Dashboard(ctx context.Context, args []string) error {
	m, err := monthArg(args)
	if err != nil {
		return err
	}

	var (
		dash   *models.Dashboard
		unread int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dash, err = a.reports.Dashboard(gctx, m)
		return err
	})
	g.Go(func() error {
		var err error
		unread, err = a.notifications.UnreadCount(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	a.lastUnread.Store(int64(unread))

	d := dash.Dashboard
	cur := dash.Currency
	a.println(styleTitle.Render(fmt.Sprintf("Dashboard %s", timex.Month{Year: dash.SelectedYear, Month: time.Month(dash.SelectedMonth)})))
	a.println(keyValues(
		[2]string{"Balance", money(cur, d.TotalBalance)},
		[2]string{"Income", styleSuccess.Render(money(cur, d.MonthlyIncome)) + "  " + styleMuted.Render(change(d.IncomeChange))},
		[2]string{"Expenses", styleDanger.Render(money(cur, d.MonthlyExpenses)) + "  " + styleMuted.Render(change(d.ExpenseChange))},
		[2]string{"Savings", fmt.Sprintf("%s (%s)", money(cur, d.Savings), percent(d.SavingsRate))},
		[2]string{"Today", fmt.Sprintf("+%s / -%s, %d transactions", d.Today.Income, d.Today.Expenses, d.Today.TransactionsCount)},
		[2]string{"Unread", fmt.Sprintf("%d notifications", unread)},
	))

	if dash.HasBudget {
		st := statusStyle(d.OverallStatus)
		a.println(fmt.Sprintf("Budget %s  %s", money(cur, d.MonthlyBudget),
			st.Render(bar(d.BudgetUsedPercentage, barWidth)+" "+percent(d.BudgetUsedPercentage))))
	}

	if len(d.BudgetOverview) > 0 {
		t := newTable("Budget", "Limit", "Spent", "Used")
		for _, b := range d.BudgetOverview {
			t.Row(b.Category, b.Budget.String(), b.Spent.String(), statusStyle(b.Status).Render(percent(b.Percentage)))
		}
		a.println(t.String())
	}

	if len(d.ExpenseByCategory) > 0 {
		a.println(styleTitle.Render("Spending by category"))
		a.println(slicesTable(d.ExpenseByCategory).String())
	}

	if len(d.RecentTransactions) > 0 {
		a.println(styleTitle.Render("Recent transactions"))
		t := newTable("Date", "Description", "Category", "Amount")
		for i, tx := range d.RecentTransactions {
			if i == recentLimit {
				break
			}
			t.Row(tx.Date.String(), tx.Description, orDash(tx.CategoryName), signed(tx.Type, tx.Amount))
		}
		a.println(t.String())
	}
	return nil
}

// Analytics prints the month-scoped analytics report.
func (a *App) Analytics(ctx context.Context, args []string) error {
	m, err := monthArg(args)
	if err != nil {
		return err
	}
	r, err := a.reports.Analytics(ctx, m)
	if err != nil {
		return err
	}

	cur := r.Currency
	s := r.Summary
	a.println(styleTitle.Render(fmt.Sprintf("Analytics for %s %d", r.MonthName, r.Year)))
	a.println(keyValues(
		[2]string{"Income", styleSuccess.Render(money(cur, s.TotalIncome)) + "  " + styleMuted.Render(change(r.Comparison.IncomeChange))},
		[2]string{"Expenses", styleDanger.Render(money(cur, s.TotalExpenses)) + "  " + styleMuted.Render(change(r.Comparison.ExpenseChange))},
		[2]string{"Savings", fmt.Sprintf("%s (%s)", money(cur, s.Savings), percent(s.SavingsRate))},
		[2]string{"Transactions", fmt.Sprint(s.TransactionCount)},
	))

	if len(r.Charts.ExpenseByCategory) > 0 {
		a.println(styleTitle.Render("Spending by category"))
		a.println(slicesTable(r.Charts.ExpenseByCategory).String())
	}
	if len(r.BudgetAlerts) > 0 {
		t := newTable("Budget alert", "Spent", "Budget", "Used")
		for _, b := range r.BudgetAlerts {
			st := styleWarning
			if b.Percentage >= 100 {
				st = styleDanger
			}
			t.Row(b.Name, b.Spent.String(), b.Budget.String(), st.Render(percent(b.Percentage)))
		}
		a.println(t.String())
	}
	a.printInsights(r.Insights)
	return nil
}

// RangeAnalytics prints the report for a preset window or a custom one:
// "range last_30_days" or "range custom 2025-01-01 2025-03-31".
func (a *App) RangeAnalytics(ctx context.Context, args []string) error {
	q := models.RangeQuery{Range: models.RangeLast30Days}
	if len(args) > 0 {
		q.Range = models.RangePreset(args[0])
	}
	if q.Range == models.RangeCustom {
		if len(args) < 3 {
			return usageError("range custom <YYYY-MM-DD> <YYYY-MM-DD>")
		}
		var err error
		if q.StartDate, err = timex.ParseDate(args[1]); err != nil {
			return &models.FieldError{Field: "start_date", Message: "must look like 2025-01-31"}
		}
		if q.EndDate, err = timex.ParseDate(args[2]); err != nil {
			return &models.FieldError{Field: "end_date", Message: "must look like 2025-01-31"}
		}
	}

	r, err := a.reports.AnalyticsRange(ctx, q)
	if err != nil {
		return err
	}

	cur := r.Currency
	s := r.Summary
	a.println(styleTitle.Render(fmt.Sprintf("%s (%s to %s, %d days)", r.Range.Label, r.Range.StartDate, r.Range.EndDate, r.Range.Days)))
	a.println(keyValues(
		[2]string{"Income", styleSuccess.Render(money(cur, s.TotalIncome)) + "  " + styleMuted.Render(change(r.Comparison.IncomeChangePct))},
		[2]string{"Expenses", styleDanger.Render(money(cur, s.TotalExpenses)) + "  " + styleMuted.Render(change(r.Comparison.ExpenseChangePct))},
		[2]string{"Net savings", fmt.Sprintf("%s (%s)", money(cur, s.NetSavings), percent(s.SavingsRate))},
		[2]string{"Avg daily spend", money(cur, s.AvgDailyExpense)},
		[2]string{"Transactions", fmt.Sprintf("%d (%d income, %d expense)", s.TransactionCount, s.IncomeCount, s.ExpenseCount)},
	))

	if len(r.Charts.Trend) > 0 {
		t := newTable("Period", "Income", "Expense", "Savings")
		for _, p := range r.Charts.Trend {
			t.Row(p.Label, p.Income.String(), p.Expense.String(), p.Savings.String())
		}
		a.println(t.String())
	}
	if len(r.Charts.ExpenseByCategory) > 0 {
		a.println(styleTitle.Render("Spending by category"))
		a.println(slicesTable(r.Charts.ExpenseByCategory).String())
	}
	a.printInsights(r.Insights)
	return nil
}

func (a *App) printInsights(insights []models.Insight) {
	if len(insights) == 0 {
		return
	}
	a.println(styleTitle.Render("Insights"))
	for _, in := range insights {
		a.println(severityStyle(in.Severity).Render("• "+in.Title) + "  " + in.Message)
	}
}

// slicesTable lists breakdown slices with their share of the total.
func slicesTable(slices []models.Slice) *table.Table {
	var total models.Decimal
	for _, s := range slices {
		total = total.Add(s.Value)
	}
	t := newTable("Category", "Amount", "Share")
	for _, s := range slices {
		share := 0.0
		if total.IsPositive() {
			share = s.Value.Float64() / total.Float64() * 100
		}
		t.Row(s.Name, s.Value.String(), bar(share, 10)+" "+percent(share))
	}
	return t
}
