package models

import "time"

// EntryKind is the income/expense split shared by categories and transactions.
type EntryKind string

const (
	KindIncome  EntryKind = "income"
	KindExpense EntryKind = "expense"
)

func (k EntryKind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

type Category struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Type      EntryKind  `json:"type"`
	Icon      string     `json:"icon,omitempty"`
	Color     string     `json:"color,omitempty"`
	IsDefault bool       `json:"is_default"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type CategoryInput struct {
	Name  string    `json:"name"`
	Type  EntryKind `json:"type"`
	Icon  string    `json:"icon,omitempty"`
	Color string    `json:"color,omitempty"`
}
