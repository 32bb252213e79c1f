package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// DateLayout is the calendar-date wire format for transactions.
const DateLayout = "2006-01-02"

// Transaction is a single financial event. Amount is an unsigned magnitude;
// direction is carried by Type, never by a negative amount.
type Transaction struct {
	ID         string
	UserID     string
	Type       string
	CategoryID string
	AccountID  string // empty when the transaction is not tied to an account
	Amount     decimal.Decimal
	Note       string
	Date       time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TransactionWithOwner joins a transaction with its owner's display fields
// for the all-users (admin) scope. For the caller's own rows the owner
// fields simply repeat the caller.
type TransactionWithOwner struct {
	Transaction
	OwnerName  string
	OwnerEmail string
}

// Category is reference data: read, never mutated, through this layer.
type Category struct {
	ID    string
	Name  string
	Color string
	Icon  string
	Type  string
}

type Account struct {
	ID       string
	UserID   string
	Name     string
	Kind     string
	Balance  decimal.Decimal
	Currency string
}

// UserRecord is the admin-listing projection of a user; it never carries
// the password hash out of the storage layer.
type UserRecord struct {
	ID        string
	FullName  string
	Email     string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// REQUESTS:

// TransactionRequest carries user-submitted fields. Amount stays a string
// until validation so "10.10" is parsed exactly, not through a float.
type TransactionRequest struct {
	Type       string
	CategoryID string
	AccountID  string
	Amount     string
	Note       string
	Date       string
}

// RESPONSES:

type OverviewStats struct {
	TotalUsers        int
	TotalTransactions int
	TotalIncome       decimal.Decimal
	TotalExpenses     decimal.Decimal
}
