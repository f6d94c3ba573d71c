package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/dmitrijs2005/wealthwise/internal/client/services"
	"github.com/dmitrijs2005/wealthwise/internal/timex"
)

// ListTransactions prints transactions filtered by an optional kind and month.
func (a *App) ListTransactions(ctx context.Context, args []string) error {
	var f models.TransactionFilter
	if len(args) > 0 && models.EntryKind(args[0]).Valid() {
		f.Type = models.EntryKind(args[0])
		args = args[1:]
	}
	m, err := monthArg(args)
	if err != nil {
		return err
	}
	f.Month = m
	return a.listTransactions(ctx, f)
}

func (a *App) ListIncome(ctx context.Context, args []string) error {
	m, err := monthArg(args)
	if err != nil {
		return err
	}
	return a.listTransactions(ctx, models.TransactionFilter{Type: models.KindIncome, Month: m})
}

func (a *App) listTransactions(ctx context.Context, f models.TransactionFilter) error {
	txs, err := a.transactions.List(ctx, f)
	if err != nil {
		return err
	}
	if len(txs) == 0 {
		a.println(styleMuted.Render("No transactions."))
		return nil
	}

	var income, expense models.Decimal
	t := newTable("ID", "Date", "Description", "Category", "Method", "Amount")
	for _, tx := range txs {
		if tx.Type == models.KindIncome {
			income = income.Add(tx.Amount)
		} else {
			expense = expense.Add(tx.Amount)
		}
		t.Row(
			formatID(tx.ID),
			tx.Date.String(),
			tx.Description,
			orDash(tx.CategoryName),
			orDash(tx.PaymentMethodDisplay),
			signed(tx.Type, tx.Amount),
		)
	}

	cur := a.session.User().Currency()
	a.println(t.String())
	a.println(fmt.Sprintf("%d transactions  income %s  expenses %s",
		len(txs), styleSuccess.Render(money(cur, income)), styleDanger.Render(money(cur, expense))))
	return nil
}

func (a *App) AddExpense(ctx context.Context, _ []string) error {
	return a.addTransaction(ctx, models.KindExpense)
}

func (a *App) AddIncome(ctx context.Context, _ []string) error {
	return a.addTransaction(ctx, models.KindIncome)
}

func (a *App) addTransaction(ctx context.Context, kind models.EntryKind) error {
	in := models.TransactionInput{
		Type:          kind,
		PaymentMethod: models.PaymentCash,
		Date:          timex.NewDate(a.now()),
	}
	if err := a.transactionForm(ctx, &in); err != nil {
		return err
	}

	resp, err := a.transactions.Create(ctx, in)
	if err != nil {
		return err
	}
	a.println(styleSuccess.Render(fmt.Sprintf("%s (#%d)", orDash(resp.Message), resp.Transaction.ID)))
	return nil
}

// EditTransaction loads a transaction, prompts with its values as defaults
// and sends the update.
func (a *App) EditTransaction(ctx context.Context, args []string) error {
	id, err := parseID(args, "edittx <id>")
	if err != nil {
		return err
	}

	txs, err := a.transactions.List(ctx, models.TransactionFilter{})
	if err != nil {
		return err
	}
	var found *models.Transaction
	for i := range txs {
		if txs[i].ID == id {
			found = &txs[i]
			break
		}
	}
	if found == nil {
		return usageError("no transaction #%d", id)
	}

	in := models.TransactionInputFrom(*found)
	if err := a.transactionForm(ctx, &in); err != nil {
		return err
	}

	tx, err := a.transactions.Update(ctx, id, in)
	if err != nil {
		return err
	}
	a.println(styleSuccess.Render(fmt.Sprintf("Updated #%d: %s %s", tx.ID, tx.Description, tx.Amount)))
	return nil
}

// transactionForm fills in with the user's answers; in carries the defaults.
func (a *App) transactionForm(ctx context.Context, in *models.TransactionInput) error {
	cats, err := a.categories.List(ctx, in.Type)
	if err != nil {
		return err
	}
	cat, err := a.pickCategory(cats, in.Category)
	if err != nil {
		return err
	}
	in.Category = cat.ID

	amountDefault := ""
	if !in.Amount.IsZero() {
		amountDefault = in.Amount.String()
	}
	amount, err := getWithDefault(a.reader, "Amount", amountDefault, a.out)
	if err != nil {
		return err
	}
	if in.Amount, err = models.ParseDecimal(amount); err != nil {
		return amountError("amount", "must be a number like 250 or 99.50", err)
	}

	if in.Description, err = getWithDefault(a.reader, "Description", in.Description, a.out); err != nil {
		return err
	}

	methods := make([]string, len(models.PaymentMethods))
	for i, m := range models.PaymentMethods {
		methods[i] = string(m)
	}
	method, err := getChoice(a.reader, "Payment method", methods, string(in.PaymentMethod), a.out)
	if err != nil {
		return err
	}
	in.PaymentMethod = models.PaymentMethod(method)

	date, err := getWithDefault(a.reader, "Date (YYYY-MM-DD)", in.Date.String(), a.out)
	if err != nil {
		return err
	}
	if in.Date, err = timex.ParseDate(date); err != nil {
		return &models.FieldError{Field: "date", Message: "must look like 2025-01-31"}
	}

	in.Notes, err = getWithDefault(a.reader, "Notes", in.Notes, a.out)
	return err
}

// pickCategory shows cats and resolves the answer by number, exact name or
// the closest name.
func (a *App) pickCategory(cats []models.Category, current int64) (models.Category, error) {
	if len(cats) == 0 {
		return models.Category{}, usageError("no categories yet, create one with addcategory")
	}

	def := ""
	for i, c := range cats {
		a.println(fmt.Sprintf("  %d) %s", i+1, c.Name))
		if c.ID == current {
			def = c.Name
		}
	}

	for {
		answer, err := getWithDefault(a.reader, "Category", def, a.out)
		if err != nil {
			return models.Category{}, err
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(cats) {
			return cats[n-1], nil
		}
		if c, ok := services.MatchCategory(cats, answer); ok {
			if !strings.EqualFold(c.Name, answer) {
				a.println(styleMuted.Render("Using " + c.Name))
			}
			return c, nil
		}
		a.println("Unknown category, pick a number or a name from the list.")
	}
}

func (a *App) DeleteTransaction(ctx context.Context, args []string) error {
	id, err := parseID(args, "deltx <id>")
	if err != nil {
		return err
	}
	if ok, err := a.confirm(fmt.Sprintf("Delete transaction #%d?", id)); err != nil || !ok {
		return err
	}
	resp, err := a.transactions.Delete(ctx, id)
	if err != nil {
		return err
	}
	a.println(styleSuccess.Render(orDash(resp.Message)))
	return nil
}

// ListCategories prints default and personal categories.
func (a *App) ListCategories(ctx context.Context, args []string) error {
	var kind models.EntryKind
	if len(args) > 0 {
		kind = models.EntryKind(args[0])
		if !kind.Valid() {
			return usageError("categories [expense|income]")
		}
	}
	cats, err := a.categories.List(ctx, kind)
	if err != nil {
		return err
	}

	t := newTable("ID", "Name", "Type", "Icon", "Default")
	for _, c := range cats {
		t.Row(formatID(c.ID), c.Name, string(c.Type), orDash(c.Icon), yesNo(c.IsDefault))
	}
	a.println(t.String())
	return nil
}

func (a *App) AddCategory(ctx context.Context, _ []string) error {
	var in models.CategoryInput
	var err error

	if in.Name, err = a.prompt("Name"); err != nil {
		return err
	}
	kind, err := getChoice(a.reader, "Type", []string{string(models.KindExpense), string(models.KindIncome)}, string(models.KindExpense), a.out)
	if err != nil {
		return err
	}
	in.Type = models.EntryKind(kind)
	if in.Icon, err = getWithDefault(a.reader, "Icon", "", a.out); err != nil {
		return err
	}
	if in.Color, err = getWithDefault(a.reader, "Color (#rrggbb)", "", a.out); err != nil {
		return err
	}

	c, err := a.categories.Create(ctx, in)
	if err != nil {
		return err
	}
	a.println(styleSuccess.Render(fmt.Sprintf("Created category %s (#%d)", c.Name, c.ID)))
	return nil
}

// DeleteCategory removes a personal category.
func (a *App) DeleteCategory(ctx context.Context, args []string) error {
	id, err := parseID(args, "delcategory <id>")
	if err != nil {
		return err
	}
	if ok, err := a.confirm(fmt.Sprintf("Delete category #%d?", id)); err != nil || !ok {
		return err
	}
	if err := a.categories.Delete(ctx, id); err != nil {
		return err
	}
	a.println(styleSuccess.Render("Category deleted."))
	return nil
}

func (a *App) confirm(question string) (bool, error) {
	answer, err := a.prompt(question + " (y/N)")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

var getChoice = GetChoice

func amountError(field, hint string, err error) *models.FieldError {
	if errors.Is(err, models.ErrDecimalOutOfRange) {
		return &models.FieldError{Field: field, Message: "is too large"}
	}
	return &models.FieldError{Field: field, Message: hint}
}
