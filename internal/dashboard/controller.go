package dashboard

import (
	"context"
	"strings"

	"github.com/fatali-fataliyev/finance_tracker/internal/auth"
	"github.com/fatali-fataliyev/finance_tracker/internal/finance"
	"github.com/shopspring/decimal"
)

// Controller holds one dashboard session's view state: the last-fetched
// record set, the active filter, and at most one in-progress edit. It is
// bound to a single logical thread of control and is not safe for
// concurrent use.
//
// Every mutation goes through the service and is followed by a full refetch;
// the cached records are never patched in place.
type Controller struct {
	service  *finance.FinanceTracker
	identity auth.Identity
	scope    auth.Scope

	records  []finance.TransactionWithOwner
	fresh    bool
	fetchGen uint64
	editing  *finance.Transaction
}

func NewController(service *finance.FinanceTracker, identity auth.Identity) *Controller {
	return &Controller{
		service:  service,
		identity: identity,
		scope:    auth.Decide(identity).Scope,
	}
}

func (c *Controller) Identity() auth.Identity { return c.identity }
func (c *Controller) Scope() auth.Scope       { return c.scope }

// Fresh reports whether the held records can be trusted, i.e. no mutation
// has happened since they were fetched.
func (c *Controller) Fresh() bool { return c.fresh }

// BeginFetch starts a new fetch generation. Results of any fetch started
// earlier are stale and will be discarded by SetRecords.
func (c *Controller) BeginFetch() uint64 {
	c.fetchGen++
	return c.fetchGen
}

// SetRecords installs a fetch result. A result from a superseded generation
// is dropped, so navigating away mid-fetch never applies stale data.
func (c *Controller) SetRecords(fetchID uint64, records []finance.TransactionWithOwner) bool {
	if fetchID != c.fetchGen {
		return false
	}
	c.records = records
	c.fresh = true
	return true
}

// Invalidate marks the cache stale; called after every mutation.
func (c *Controller) Invalidate() {
	c.fresh = false
}

// Refresh fetches the record set for this controller's scope and installs it.
func (c *Controller) Refresh(ctx context.Context) error {
	fetchID := c.BeginFetch()
	records, err := c.service.ListTransactions(ctx, c.identity, c.scope)
	if err != nil {
		return err
	}
	c.SetRecords(fetchID, records)
	return nil
}

func (c *Controller) Records() []finance.TransactionWithOwner {
	return c.records
}

// Filter is the active predicate set. Zero values mean "match everything",
// so the zero Filter passes every record through.
type Filter struct {
	Type       string // exact match on income/expense
	Month      string // YYYY-MM prefix of the calendar date
	OwnerQuery string // case-insensitive substring of owner name or email
}

func (f Filter) Matches(t finance.TransactionWithOwner) bool {
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.Month != "" && !strings.HasPrefix(t.Date.Format(finance.DateLayout), f.Month) {
		return false
	}
	if f.OwnerQuery != "" {
		q := strings.ToLower(f.OwnerQuery)
		if !strings.Contains(strings.ToLower(t.OwnerName), q) &&
			!strings.Contains(strings.ToLower(t.OwnerEmail), q) {
			return false
		}
	}
	return true
}

// ApplyFilter is a pure function over the given records; it never refetches.
// Filtering an already-filtered subset with the same filter is a no-op.
func ApplyFilter(records []finance.TransactionWithOwner, f Filter) []finance.TransactionWithOwner {
	filtered := make([]finance.TransactionWithOwner, 0, len(records))
	for _, t := range records {
		if f.Matches(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// Filtered applies f to the held record set.
func (c *Controller) Filtered(f Filter) []finance.TransactionWithOwner {
	return ApplyFilter(c.records, f)
}

// Summary is the dashboard card data. All sums are exact decimals; no
// floating-point accumulation is tolerated for monetary totals.
type Summary struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	Balance       decimal.Decimal
	Count         int
}

func Aggregates(records []finance.TransactionWithOwner) Summary {
	s := Summary{Count: len(records)}
	for _, t := range records {
		switch t.Type {
		case finance.TypeIncome:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		case finance.TypeExpense:
			s.TotalExpenses = s.TotalExpenses.Add(t.Amount)
		}
	}
	s.Balance = s.TotalIncome.Sub(s.TotalExpenses)
	return s
}

// Aggregates computes the summary over the held record set.
func (c *Controller) Aggregates() Summary {
	return Aggregates(c.records)
}

// BeginEdit selects the single pending-edit target, replacing any previous
// selection.
func (c *Controller) BeginEdit(t finance.Transaction) {
	c.editing = &t
}

func (c *Controller) CancelEdit() {
	c.editing = nil
}

func (c *Controller) Editing() (finance.Transaction, bool) {
	if c.editing == nil {
		return finance.Transaction{}, false
	}
	return *c.editing, true
}

// SubmitEdit updates the pending-edit target if one is set, creates a new
// transaction otherwise, then refetches so derived aggregates can be trusted
// again.
func (c *Controller) SubmitEdit(ctx context.Context, req finance.TransactionRequest) (finance.Transaction, error) {
	var (
		result finance.Transaction
		err    error
	)
	if c.editing != nil {
		result, err = c.service.UpdateTransaction(ctx, c.identity, c.editing.ID, req)
	} else {
		result, err = c.service.SaveTransaction(ctx, c.identity, req)
	}
	if err != nil {
		return finance.Transaction{}, err
	}
	c.editing = nil
	c.Invalidate()
	if err := c.Refresh(ctx); err != nil {
		return result, err
	}
	return result, nil
}

// Delete removes a transaction and refetches.
func (c *Controller) Delete(ctx context.Context, transactionID string) error {
	if err := c.service.DeleteTransaction(ctx, c.identity, transactionID); err != nil {
		return err
	}
	if c.editing != nil && c.editing.ID == transactionID {
		c.editing = nil
	}
	c.Invalidate()
	return c.Refresh(ctx)
}
