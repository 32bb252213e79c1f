package api

import (
	"fmt"
	"net/url"
	"time"

	appErrors "github.com/fatali-fataliyev/finance_tracker/customErrors"
	"github.com/fatali-fataliyev/finance_tracker/internal/auth"
	"github.com/fatali-fataliyev/finance_tracker/internal/dashboard"
	"github.com/fatali-fataliyev/finance_tracker/internal/finance"
)

const timestampLayout = "02/01/2006 15:04"

// REQUESTS START:

type SaveUserRequest struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TransactionPayload is shared by create and update. Amount stays a string
// on the wire so decimals survive exactly.
type TransactionPayload struct {
	Type       string `json:"type"`
	CategoryID string `json:"category_id"`
	AccountID  string `json:"account_id"`
	Amount     string `json:"amount"`
	Note       string `json:"note"`
	Date       string `json:"date"`
}

// REQUESTS END:

// RESPONSES:

type UserCreatedResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type TransactionItem struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	CategoryID string `json:"category_id"`
	AccountID  string `json:"account_id,omitempty"`
	Amount     string `json:"amount"`
	Note       string `json:"note"`
	Date       string `json:"date"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
	OwnerName  string `json:"owner_name,omitempty"`
	OwnerEmail string `json:"owner_email,omitempty"`
}

type UserItem struct {
	ID        string `json:"id"`
	FullName  string `json:"fullname"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

type CategoryItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
	Type  string `json:"type"`
}

type AccountItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Balance  string `json:"balance"`
	Currency string `json:"currency"`
}

type SummaryResponse struct {
	TotalIncome   string `json:"total_income"`
	TotalExpenses string `json:"total_expenses"`
	Balance       string `json:"balance"`
	Count         int    `json:"count"`
}

type OverviewResponse struct {
	TotalUsers        int    `json:"total_users"`
	TotalTransactions int    `json:"total_transactions"`
	TotalIncome       string `json:"total_income"`
	TotalExpenses     string `json:"total_expenses"`
}

func httpStatusFromError(err error) int {
	switch appErrors.CodeOf(err) {
	case appErrors.ErrNotFound:
		return 404 // not found
	case appErrors.ErrInvalidInput:
		return 400 // bad request
	case appErrors.ErrAuth:
		return 401 // unauthorized
	case appErrors.ErrAccessDenied:
		return 403 // access denied
	case appErrors.ErrConflict:
		return 409 // conflict
	case appErrors.ErrRemote:
		return 503 // store unavailable, retry on user action
	default:
		return 500 // internal error
	}
}

func TransactionToHttp(t finance.TransactionWithOwner) TransactionItem {
	return TransactionItem{
		ID:         t.ID,
		Type:       t.Type,
		CategoryID: t.CategoryID,
		AccountID:  t.AccountID,
		Amount:     t.Amount.StringFixed(2),
		Note:       t.Note,
		Date:       t.Date.Format(finance.DateLayout),
		CreatedAt:  t.CreatedAt.Format(timestampLayout),
		UpdatedAt:  t.UpdatedAt.Format(timestampLayout),
		OwnerName:  t.OwnerName,
		OwnerEmail: t.OwnerEmail,
	}
}

func UserToHttp(u finance.UserRecord) UserItem {
	return UserItem{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.Format(timestampLayout),
	}
}

func SummaryToHttp(s dashboard.Summary) SummaryResponse {
	return SummaryResponse{
		TotalIncome:   s.TotalIncome.StringFixed(2),
		TotalExpenses: s.TotalExpenses.StringFixed(2),
		Balance:       s.Balance.StringFixed(2),
		Count:         s.Count,
	}
}

// TransactionListParams validates the list query string: type, month (YYYY-MM),
// q (owner name/email substring, admin scope only) and scope (mine|all).
func TransactionListParams(params url.Values) (dashboard.Filter, auth.Scope, error) {
	var filter dashboard.Filter

	if t := params.Get("type"); t != "" {
		if t != finance.TypeIncome && t != finance.TypeExpense {
			return filter, "", appErrors.ErrorResponse{
				Code:    appErrors.ErrInvalidInput,
				Message: fmt.Sprintf("Invalid type filter: '%s', allowed values are: income and expense.", t),
			}
		}
		filter.Type = t
	}

	if month := params.Get("month"); month != "" {
		if _, err := time.Parse("2006-01", month); err != nil {
			return filter, "", appErrors.ErrorResponse{
				Code:    appErrors.ErrInvalidInput,
				Message: fmt.Sprintf("Invalid month filter: '%s', expected format: 2006-01.", month),
			}
		}
		filter.Month = month
	}

	filter.OwnerQuery = params.Get("q")

	scope := auth.ScopeMine
	switch params.Get("scope") {
	case "", "mine":
	case "all":
		scope = auth.ScopeAll
	default:
		return filter, "", appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Invalid scope: '%s', allowed values are: mine and all.", params.Get("scope")),
		}
	}
	return filter, scope, nil
}
