package storage

import (
	"context"
	"sort"
	"strings"

	appErrors "github.com/fatali-fataliyev/finance_tracker/customErrors"
	"github.com/fatali-fataliyev/finance_tracker/internal/auth"
	"github.com/fatali-fataliyev/finance_tracker/internal/finance"
	"github.com/shopspring/decimal"
)

// InMemoryStorage is the test and local-run implementation of
// finance.Storage. It mirrors the MySQL implementation's behavior, including
// cascade on user delete and the NOT FOUND/CONFLICT fault codes.
type InMemoryStorage struct {
	users        []auth.User
	sessions     []auth.Session
	transactions []finance.Transaction
	categories   []finance.Category
	accounts     []finance.Account
}

func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{
		// same reference data the MySQL migration seeds
		categories: []finance.Category{
			{ID: "cat-salary", Name: "Salary", Color: "#16a34a", Icon: "briefcase", Type: finance.TypeIncome},
			{ID: "cat-freelance", Name: "Freelance", Color: "#0ea5e9", Icon: "laptop", Type: finance.TypeIncome},
			{ID: "cat-groceries", Name: "Groceries", Color: "#f59e0b", Icon: "cart", Type: finance.TypeExpense},
			{ID: "cat-rent", Name: "Rent", Color: "#dc2626", Icon: "home", Type: finance.TypeExpense},
			{ID: "cat-entertainment", Name: "Entertainment", Color: "#8b5cf6", Icon: "film", Type: finance.TypeExpense},
		},
	}
}

func (inMem *InMemoryStorage) GetStorageType() string {
	return "inmemory"
}

func notFound(message string) error {
	return appErrors.ErrorResponse{Code: appErrors.ErrNotFound, Message: message}
}

// --- USERS --- //

func (inMem *InMemoryStorage) SaveUser(ctx context.Context, user auth.User) error {
	for _, existing := range inMem.users {
		if existing.Email == user.Email {
			return appErrors.ErrorResponse{
				Code:    appErrors.ErrConflict,
				Message: "The email address already taken.",
			}
		}
	}
	inMem.users = append(inMem.users, user)
	return nil
}

func (inMem *InMemoryStorage) GetUserByEmail(ctx context.Context, email string) (auth.User, error) {
	for _, user := range inMem.users {
		if user.Email == email {
			return user, nil
		}
	}
	return auth.User{}, notFound("User does not exist.")
}

func (inMem *InMemoryStorage) GetUserByID(ctx context.Context, id string) (auth.User, error) {
	for _, user := range inMem.users {
		if user.ID == id {
			return user, nil
		}
	}
	return auth.User{}, notFound("User does not exist.")
}

func (inMem *InMemoryStorage) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	for _, user := range inMem.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (inMem *InMemoryStorage) ListUsers(ctx context.Context) ([]finance.UserRecord, error) {
	records := make([]finance.UserRecord, 0, len(inMem.users))
	for _, user := range inMem.users {
		records = append(records, finance.UserRecord{
			ID:        user.ID,
			FullName:  user.FullName,
			Email:     user.Email,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
			UpdatedAt: user.UpdatedAt,
		})
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID > records[j].ID
		}
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (inMem *InMemoryStorage) DeleteUser(ctx context.Context, id string) (int64, error) {
	var kept []auth.User
	var removed int64
	for _, user := range inMem.users {
		if user.ID == id {
			removed++
			continue
		}
		kept = append(kept, user)
	}
	inMem.users = kept

	if removed > 0 {
		// cascade, as the FK does in MySQL
		var keptTxns []finance.Transaction
		for _, t := range inMem.transactions {
			if t.UserID != id {
				keptTxns = append(keptTxns, t)
			}
		}
		inMem.transactions = keptTxns

		var keptSessions []auth.Session
		for _, s := range inMem.sessions {
			if s.UserID != id {
				keptSessions = append(keptSessions, s)
			}
		}
		inMem.sessions = keptSessions

		var keptAccounts []finance.Account
		for _, a := range inMem.accounts {
			if a.UserID != id {
				keptAccounts = append(keptAccounts, a)
			}
		}
		inMem.accounts = keptAccounts
	}
	return removed, nil
}

func (inMem *InMemoryStorage) CountUsersByRole(ctx context.Context, role string) (int, error) {
	count := 0
	for _, user := range inMem.users {
		if user.Role == role {
			count++
		}
	}
	return count, nil
}

// --- SESSIONS --- //

func (inMem *InMemoryStorage) SaveSession(ctx context.Context, session auth.Session) error {
	inMem.sessions = append(inMem.sessions, session)
	return nil
}

func (inMem *InMemoryStorage) GetSessionByToken(ctx context.Context, token string) (auth.Session, error) {
	for _, session := range inMem.sessions {
		if strings.TrimSpace(session.Token) == strings.TrimSpace(token) {
			return session, nil
		}
	}
	return auth.Session{}, notFound("Session does not exist.")
}

func (inMem *InMemoryStorage) DeleteSession(ctx context.Context, token string) error {
	var kept []auth.Session
	for _, session := range inMem.sessions {
		if session.Token != token {
			kept = append(kept, session)
		}
	}
	inMem.sessions = kept
	return nil
}

// --- TRANSACTIONS --- //

func (inMem *InMemoryStorage) SaveTransaction(ctx context.Context, t finance.Transaction) error {
	inMem.transactions = append(inMem.transactions, t)
	return nil
}

func (inMem *InMemoryStorage) UpdateTransaction(ctx context.Context, t finance.Transaction) (int64, error) {
	for i, existing := range inMem.transactions {
		if existing.ID == t.ID {
			inMem.transactions[i] = t
			return 1, nil
		}
	}
	return 0, nil
}

func (inMem *InMemoryStorage) DeleteTransaction(ctx context.Context, id string, ownerID string) (int64, error) {
	var kept []finance.Transaction
	var removed int64
	for _, t := range inMem.transactions {
		if t.ID == id && (ownerID == "" || t.UserID == ownerID) {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	inMem.transactions = kept
	return removed, nil
}

func (inMem *InMemoryStorage) GetTransactionByID(ctx context.Context, id string) (finance.Transaction, error) {
	for _, t := range inMem.transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return finance.Transaction{}, notFound("Transaction does not exist.")
}

func (inMem *InMemoryStorage) ListTransactions(ctx context.Context, ownerID string) ([]finance.TransactionWithOwner, error) {
	var result []finance.TransactionWithOwner
	for _, t := range inMem.transactions {
		if ownerID != "" && t.UserID != ownerID {
			continue
		}
		row := finance.TransactionWithOwner{Transaction: t}
		if owner, err := inMem.GetUserByID(ctx, t.UserID); err == nil {
			row.OwnerName = owner.FullName
			row.OwnerEmail = owner.Email
		}
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date.Equal(result[j].Date) {
			return result[i].ID > result[j].ID
		}
		return result[i].Date.After(result[j].Date)
	})
	return result, nil
}

// --- REFERENCE DATA --- //

func (inMem *InMemoryStorage) ListCategories(ctx context.Context) ([]finance.Category, error) {
	return append([]finance.Category(nil), inMem.categories...), nil
}

func (inMem *InMemoryStorage) GetCategoryByID(ctx context.Context, id string) (finance.Category, error) {
	for _, c := range inMem.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return finance.Category{}, notFound("Category does not exist.")
}

func (inMem *InMemoryStorage) ListAccounts(ctx context.Context, ownerID string) ([]finance.Account, error) {
	var result []finance.Account
	for _, a := range inMem.accounts {
		if ownerID != "" && a.UserID != ownerID {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (inMem *InMemoryStorage) GetAccountByID(ctx context.Context, id string) (finance.Account, error) {
	for _, a := range inMem.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return finance.Account{}, notFound("Account does not exist.")
}

// SeedAccount registers an account directly; accounts are reference data and
// have no create path through the data-access layer.
func (inMem *InMemoryStorage) SeedAccount(id, userID, name, kind string, balance decimal.Decimal, currency string) {
	inMem.accounts = append(inMem.accounts, finance.Account{
		ID: id, UserID: userID, Name: name, Kind: kind, Balance: balance, Currency: currency,
	})
}
