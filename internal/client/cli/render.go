package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dmitrijs2005/wealthwise/internal/client/models"
)

const (
	colorRed      lipgloss.Color = "#f38ba8"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorLavender lipgloss.Color = "#b4befe"
	colorOverlay  lipgloss.Color = "#7f849c"
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	styleMuted   = lipgloss.NewStyle().Foreground(colorOverlay)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleDanger  = lipgloss.NewStyle().Foreground(colorRed)
	styleInfo    = lipgloss.NewStyle().Foreground(colorTeal)
	styleHeader  = lipgloss.NewStyle().Bold(true).Foreground(colorLavender).Padding(0, 1)
	styleCell    = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleMuted).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return styleCell
		})
}

func statusStyle(s models.BudgetStatus) lipgloss.Style {
	switch s {
	case models.BudgetExceeded:
		return styleDanger
	case models.BudgetWarning:
		return styleWarning
	default:
		return styleSuccess
	}
}

func severityStyle(s models.Severity) lipgloss.Style {
	switch s {
	case models.SeverityDanger:
		return styleDanger
	case models.SeverityWarning:
		return styleWarning
	case models.SeveritySuccess:
		return styleSuccess
	default:
		return styleInfo
	}
}

func notificationStyle(t models.NotificationType) lipgloss.Style {
	switch t {
	case models.NotificationBudgetExceeded:
		return styleDanger
	case models.NotificationBudgetWarning:
		return styleWarning
	case models.NotificationGoalAchieved:
		return styleSuccess
	default:
		return styleInfo
	}
}

func money(currency string, d models.Decimal) string {
	return currency + " " + d.String()
}

// signed renders an amount with + for income and - for expenses.
func signed(kind models.EntryKind, d models.Decimal) string {
	if kind == models.KindIncome {
		return styleSuccess.Render("+" + d.String())
	}
	return styleDanger.Render("-" + d.String())
}

func percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// change renders a period-over-period percentage with an arrow.
func change(p float64) string {
	switch {
	case p > 0:
		return fmt.Sprintf("▲ %.1f%%", p)
	case p < 0:
		return fmt.Sprintf("▼ %.1f%%", -p)
	}
	return "0.0%"
}

// bar draws a fixed-width usage gauge capped at 100%.
func bar(p float64, width int) string {
	filled := int(p / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// keyValues renders label/value pairs as an aligned two-column block.
func keyValues(pairs ...[2]string) string {
	width := 0
	for _, p := range pairs {
		if len(p[0]) > width {
			width = len(p[0])
		}
	}
	var b strings.Builder
	for _, p := range pairs {
		fmt.Fprintf(&b, "%s  %s\n", styleMuted.Render(fmt.Sprintf("%-*s", width, p[0])), p[1])
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
