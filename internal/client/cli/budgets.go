package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/dmitrijs2005/wealthwise/internal/timex"
)

const barWidth = 20

// Budgets prints the month's overall and per-category budget usage.
func (a *App) Budgets(ctx context.Context, args []string) error {
	m, err := monthArg(args)
	if err != nil {
		return err
	}
	ov, err := a.budgets.Overview(ctx, m)
	if err != nil {
		return err
	}

	a.println(styleTitle.Render(fmt.Sprintf("Budgets for %s %d", ov.MonthName, ov.Year)))
	a.println(fmt.Sprintf("Income %s  Expenses %s",
		styleSuccess.Render(money(ov.Currency, ov.TotalIncome)),
		styleDanger.Render(money(ov.Currency, ov.TotalExpenses))))

	if !ov.HasBudget {
		a.println(styleMuted.Render("No budgets set for this month. Add one with addbudget."))
		return nil
	}

	t := newTable("ID", "Scope", "Budget", "Spent", "Remaining", "Used", "Status")
	row := func(label string, u models.BudgetUsage) {
		st := statusStyle(u.Status)
		t.Row(
			formatID(u.ID),
			label,
			u.Amount.String(),
			u.Spent.String(),
			u.Remaining.String(),
			st.Render(bar(u.Percentage, barWidth)+" "+percent(u.Percentage)),
			st.Render(string(u.Status)),
		)
	}
	if ov.OverallBudget != nil {
		row("Overall", *ov.OverallBudget)
	}
	for _, u := range ov.CategoryBudgets {
		row(orDash(u.CategoryName), u)
	}
	a.println(t.String())
	return nil
}

func (a *App) AddBudget(ctx context.Context, _ []string) error {
	now := timex.CurrentMonth(a.now())
	in := models.BudgetInput{
		Month:          int(now.Month),
		Year:           now.Year,
		AlertThreshold: models.DefaultAlertThreshold,
	}
	if err := a.budgetForm(ctx, &in); err != nil {
		return err
	}

	resp, err := a.budgets.Create(ctx, in)
	if err != nil {
		return err
	}
	a.println(styleSuccess.Render(fmt.Sprintf("%s (#%d)", orDash(resp.Message), resp.Budget.ID)))
	return nil
}

// EditBudget looks the budget up in its month (current unless given) and
// prompts with its values as defaults.
func (a *App) EditBudget(ctx context.Context, args []string) error {
	id, err := parseID(args, "editbudget <id> [YYYY-MM]")
	if err != nil {
		return err
	}
	m, err := monthArg(args[1:])
	if err != nil {
		return err
	}

	list, err := a.budgets.List(ctx, m)
	if err != nil {
		return err
	}
	var found *models.Budget
	for i := range list {
		if list[i].ID == id {
			found = &list[i]
			break
		}
	}
	if found == nil {
		return usageError("no budget #%d in that month", id)
	}

	in := models.BudgetInputFrom(*found)
	if err := a.budgetForm(ctx, &in); err != nil {
		return err
	}

	b, err := a.budgets.Update(ctx, id, in)
	if err != nil {
		return err
	}
	a.println(styleSuccess.Render(fmt.Sprintf("Updated budget #%d: %s %s", b.ID, b.Label(), b.Amount)))
	return nil
}

func (a *App) budgetForm(ctx context.Context, in *models.BudgetInput) error {
	overall, err := getWithDefault(a.reader, "Overall budget for the month (y/n)", yesNo(in.IsOverall), a.out)
	if err != nil {
		return err
	}
	in.IsOverall = overall == "y" || overall == "yes"

	if in.IsOverall {
		in.Category = nil
	} else {
		cats, err := a.categories.List(ctx, models.KindExpense)
		if err != nil {
			return err
		}
		var current int64
		if in.Category != nil {
			current = *in.Category
		}
		c, err := a.pickCategory(cats, current)
		if err != nil {
			return err
		}
		in.Category = &c.ID
	}

	amountDefault := ""
	if !in.Amount.IsZero() {
		amountDefault = in.Amount.String()
	}
	amount, err := getWithDefault(a.reader, "Amount", amountDefault, a.out)
	if err != nil {
		return err
	}
	if in.Amount, err = models.ParseDecimal(amount); err != nil {
		return amountError("amount", "must be a number like 5000", err)
	}

	month := timex.Month{Year: in.Year, Month: time.Month(in.Month)}
	answer, err := getWithDefault(a.reader, "Month (YYYY-MM)", month.String(), a.out)
	if err != nil {
		return err
	}
	if month, err = timex.ParseMonth(answer); err != nil {
		return &models.FieldError{Field: "month", Message: "must look like 2025-01"}
	}
	in.Month, in.Year = int(month.Month), month.Year

	threshold, err := getWithDefault(a.reader, "Alert at % used", strconv.Itoa(in.AlertThreshold), a.out)
	if err != nil {
		return err
	}
	if in.AlertThreshold, err = strconv.Atoi(threshold); err != nil {
		return &models.FieldError{Field: "alert_threshold", Message: "must be a whole number"}
	}
	return nil
}

func (a *App) DeleteBudget(ctx context.Context, args []string) error {
	id, err := parseID(args, "delbudget <id>")
	if err != nil {
		return err
	}
	if ok, err := a.confirm(fmt.Sprintf("Delete budget #%d?", id)); err != nil || !ok {
		return err
	}
	resp, err := a.budgets.Delete(ctx, id)
	if err != nil {
		return err
	}
	a.println(styleSuccess.Render(orDash(resp.Message)))
	return nil
}
