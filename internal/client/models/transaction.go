package models

import (
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/timex"
)

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCreditCard   PaymentMethod = "credit_card"
	PaymentDebitCard    PaymentMethod = "debit_card"
	PaymentUPI          PaymentMethod = "upi"
	PaymentNetBanking   PaymentMethod = "net_banking"
	PaymentWallet       PaymentMethod = "wallet"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentOther        PaymentMethod = "other"
)

// PaymentMethods lists the accepted methods in menu order.
var PaymentMethods = []PaymentMethod{
	PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentUPI,
	PaymentNetBanking, PaymentWallet, PaymentBankTransfer, PaymentOther,
}

func (p PaymentMethod) Valid() bool {
	for _, m := range PaymentMethods {
		if p == m {
			return true
		}
	}
	return false
}

type Transaction struct {
	ID                   int64         `json:"id"`
	Category             *int64        `json:"category"`
	CategoryName         string        `json:"category_name,omitempty"`
	CategoryIcon         string        `json:"category_icon,omitempty"`
	CategoryColor        string        `json:"category_color,omitempty"`
	Type                 EntryKind     `json:"type"`
	Amount               Decimal       `json:"amount"`
	Description          string        `json:"description"`
	PaymentMethod        PaymentMethod `json:"payment_method"`
	PaymentMethodDisplay string        `json:"payment_method_display,omitempty"`
	Notes                string        `json:"notes,omitempty"`
	Date                 timex.Date    `json:"date"`
	CreatedAt            *time.Time    `json:"created_at,omitempty"`
	UpdatedAt            *time.Time    `json:"updated_at,omitempty"`
}

// TransactionInput is the create/update form.
type TransactionInput struct {
	Category      int64         `json:"category"`
	Type          EntryKind     `json:"type"`
	Amount        Decimal       `json:"amount"`
	Description   string        `json:"description"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Notes         string        `json:"notes,omitempty"`
	Date          timex.Date    `json:"date"`
}

// TransactionInputFrom prefills an edit form from an existing transaction.
func TransactionInputFrom(t Transaction) TransactionInput {
	in := TransactionInput{
		Type:          t.Type,
		Amount:        t.Amount,
		Description:   t.Description,
		PaymentMethod: t.PaymentMethod,
		Notes:         t.Notes,
		Date:          t.Date,
	}
	if t.Category != nil {
		in.Category = *t.Category
	}
	return in
}

type TransactionResponse struct {
	Success     bool        `json:"success"`
	Message     string      `json:"message"`
	Transaction Transaction `json:"transaction"`
}

// TransactionFilter maps onto the list endpoint's query parameters.
// Zero fields are omitted.
type TransactionFilter struct {
	Type      EntryKind
	Category  int64
	Month     timex.Month
	StartDate timex.Date
	EndDate   timex.Date
}

func (f TransactionFilter) Query() url.Values {
	q := url.Values{}
	if f.Type != "" {
		q.Set("type", string(f.Type))
	}
	if f.Category != 0 {
		q.Set("category", strconv.FormatInt(f.Category, 10))
	}
	if !f.Month.IsZero() {
		q.Set("month", strconv.Itoa(int(f.Month.Month)))
		q.Set("year", strconv.Itoa(f.Month.Year))
	}
	if !f.StartDate.IsZero() {
		q.Set("start_date", f.StartDate.String())
	}
	if !f.EndDate.IsZero() {
		q.Set("end_date", f.EndDate.String())
	}
	return q
}
