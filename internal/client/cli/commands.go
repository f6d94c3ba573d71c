package cli

import "github.com/dmitrijs2005/wealthwise/internal/client/api"

func (a *App) navigate(path string) {
	a.router.Navigate(path)
}

func (a *App) commands() []command {
	return []command{
		{name: "login", usage: "[email]", help: "sign in with email and password", path: api.LoginPath, run: a.Login},
		{name: "signup", help: "create an account", path: pathSignup, run: a.Signup},
		{name: "google", usage: "[id-token]", help: "sign in with a Google ID token", path: api.LoginPath, run: a.GoogleLogin},
		{name: "forgot", usage: "[email]", help: "email a password reset link", path: pathForgot, run: a.ForgotPassword},
		{name: "reset", usage: "<token>", help: "reset the password with a reset token", path: pathReset, run: a.ResetPassword},

		{name: "logout", help: "sign out", private: true, run: a.Logout},
		{name: "whoami", help: "show the signed-in user and token expiry", path: pathProfile, private: true, run: a.WhoAmI},
		{name: "profile", help: "show the profile", path: pathProfile, private: true, run: a.Profile},
		{name: "editprofile", help: "edit name, phone and preferences", path: pathProfile, private: true, run: a.EditProfile},
		{name: "passwd", help: "change the password", path: pathProfile, private: true, run: a.ChangePassword},
		{name: "setpasswd", help: "set a password for a Google account", path: pathProfile, private: true, run: a.SetPassword},

		{name: "dashboard", usage: "[YYYY-MM]", help: "monthly overview", path: pathDashboard, private: true, run: a.Dashboard},
		{name: "tx", usage: "[expense|income] [YYYY-MM]", help: "list transactions", path: pathTransactions, private: true, run: a.ListTransactions},
		{name: "income", usage: "[YYYY-MM]", help: "list income", path: pathIncome, private: true, run: a.ListIncome},
		{name: "addtx", help: "record an expense", path: pathTransactions, private: true, run: a.AddExpense},
		{name: "addincome", help: "record income", path: pathIncome, private: true, run: a.AddIncome},
		{name: "edittx", usage: "<id>", help: "edit a transaction", path: pathTransactions, private: true, run: a.EditTransaction},
		{name: "deltx", usage: "<id>", help: "delete a transaction", path: pathTransactions, private: true, run: a.DeleteTransaction},
		{name: "categories", usage: "[expense|income]", help: "list categories", path: pathTransactions, private: true, run: a.ListCategories},
		{name: "addcategory", help: "create a category", path: pathTransactions, private: true, run: a.AddCategory},
		{name: "delcategory", usage: "<id>", help: "delete a personal category", path: pathTransactions, private: true, run: a.DeleteCategory},

		{name: "budgets", usage: "[YYYY-MM]", help: "budget overview for a month", path: pathBudgets, private: true, run: a.Budgets},
		{name: "addbudget", help: "create a budget", path: pathBudgets, private: true, run: a.AddBudget},
		{name: "editbudget", usage: "<id> [YYYY-MM]", help: "edit a budget", path: pathBudgets, private: true, run: a.EditBudget},
		{name: "delbudget", usage: "<id>", help: "delete a budget", path: pathBudgets, private: true, run: a.DeleteBudget},

		{name: "notifications", usage: "[unread]", help: "list notifications", path: pathNotifications, private: true, run: a.Notifications},
		{name: "read", usage: "<id>|all", help: "mark notifications read", path: pathNotifications, private: true, run: a.MarkRead},
		{name: "delnote", usage: "<id>", help: "delete a notification", path: pathNotifications, private: true, run: a.DeleteNotification},

		{name: "analytics", usage: "[YYYY-MM]", help: "monthly analytics", path: pathAnalytics, private: true, run: a.Analytics},
		{name: "range", usage: "<preset>|custom <from> <to>", help: "analytics over a period", path: pathAnalytics, private: true, run: a.RangeAnalytics},
	}
}
