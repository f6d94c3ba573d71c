package cli

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/wealthwise/internal/client/models"
)

// Profile fetches the profile from the server and refreshes the cached user.
func (a *App) Profile(ctx context.Context, _ []string) error {
	resp, err := a.auth.GetProfile(ctx)
	if err != nil {
		return err
	}
	if resp.User == nil {
		a.println(styleWarning.Render(orDash(resp.Message)))
		return nil
	}
	if err := a.session.UpdateUser(ctx, resp.User); err != nil {
		return err
	}

	u := resp.User
	pairs := [][2]string{
		{"Name", orDash(u.FullName)},
		{"Email", u.Email},
		{"Username", u.Username},
		{"Phone", orDash(u.PhoneNumber)},
		{"Sign-in", string(u.AuthProvider)},
		{"Verified", yesNo(u.IsVerified)},
	}
	if p := u.Profile; p != nil {
		cur := u.Currency()
		pairs = append(pairs,
			[2]string{"Currency", cur},
			[2]string{"City", orDash(p.City)},
			[2]string{"Country", orDash(p.Country)},
			[2]string{"Monthly income", money(cur, p.MonthlyIncome)},
			[2]string{"Monthly budget", money(cur, p.MonthlyBudget)},
			[2]string{"Savings goal", money(cur, p.SavingsGoal)},
			[2]string{"Budget alerts", yesNo(p.BudgetAlerts)},
			[2]string{"Email notifications", yesNo(p.EmailNotifications)},
			[2]string{"Weekly summary", yesNo(p.WeeklySummary)},
			[2]string{"Monthly report", yesNo(p.MonthlyReport)},
		)
	}
	a.println(styleTitle.Render("Profile"))
	a.println(keyValues(pairs...))
	return nil
}

// EditProfile prompts for each editable field with the current value as
// default and sends only what changed.
func (a *App) EditProfile(ctx context.Context, _ []string) error {
	u := a.session.User()
	p := u.Profile
	if p == nil {
		p = &models.Profile{}
	}

	var upd models.ProfileUpdate
	var fields models.ProfileFields
	changed := false

	text := func(label, current string, dst **string) error {
		v, err := getWithDefault(a.reader, label, current, a.out)
		if err != nil {
			return err
		}
		if v != current {
			*dst = &v
			changed = true
		}
		return nil
	}
	amount := func(label string, current models.Decimal, dst **models.Decimal) error {
		v, err := getWithDefault(a.reader, label, current.String(), a.out)
		if err != nil {
			return err
		}
		d, err := models.ParseDecimal(v)
		if err != nil {
			return amountError(label, "must be a number", err)
		}
		if !d.Equal(current) {
			*dst = &d
			changed = true
		}
		return nil
	}
	flag := func(label string, current bool, dst **bool) error {
		v, err := getWithDefault(a.reader, label+" (y/n)", yesNo(current), a.out)
		if err != nil {
			return err
		}
		b := v == "y" || v == "yes"
		if b != current {
			*dst = &b
			changed = true
		}
		return nil
	}

	steps := []func() error{
		func() error { return text("First name", u.FirstName, &upd.FirstName) },
		func() error { return text("Last name", u.LastName, &upd.LastName) },
		func() error { return text("Phone", u.PhoneNumber, &upd.PhoneNumber) },
		func() error { return text("Currency", u.Currency(), &fields.Currency) },
		func() error { return text("City", p.City, &fields.City) },
		func() error { return text("Country", p.Country, &fields.Country) },
		func() error { return amount("Monthly income", p.MonthlyIncome, &fields.MonthlyIncome) },
		func() error { return amount("Monthly budget", p.MonthlyBudget, &fields.MonthlyBudget) },
		func() error { return amount("Savings goal", p.SavingsGoal, &fields.SavingsGoal) },
		func() error { return flag("Budget alerts", p.BudgetAlerts, &fields.BudgetAlerts) },
		func() error { return flag("Email notifications", p.EmailNotifications, &fields.EmailNotifications) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	if !changed {
		a.println("Nothing changed.")
		return nil
	}
	if fields != (models.ProfileFields{}) {
		upd.Profile = &fields
	}

	resp, err := a.auth.UpdateProfile(ctx, upd)
	if err != nil {
		return err
	}
	if resp.User != nil {
		if err := a.session.UpdateUser(ctx, resp.User); err != nil {
			return err
		}
	}
	a.println(styleSuccess.Render(orDash(resp.Message)))
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

var getWithDefault = GetWithDefault
