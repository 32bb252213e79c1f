package finance

import (
	"context"
	"fmt"
	"strings"
	"time"

	appErrors "github.com/fatali-fataliyev/finance_tracker/customErrors"
	"github.com/fatali-fataliyev/finance_tracker/internal/auth"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MAX_TRANSACTION_NOTE_LENGTH = 1000
)

// MAX_TRANSACTION_AMOUNT is the per-transaction ceiling, matching the
// DECIMAL(18,2) column.
var MAX_TRANSACTION_AMOUNT = decimal.RequireFromString("9999999999999999.99")

// FinanceTracker is the data-access layer: every read is shaped by the
// caller's role and every write is stamped with the caller's identity.
type FinanceTracker struct {
	storage     Storage
	tokens      *auth.TokenManager
	StorageType string
}

func NewFinanceTracker(s Storage, tokens *auth.TokenManager) FinanceTracker {
	return FinanceTracker{
		storage:     s,
		tokens:      tokens,
		StorageType: s.GetStorageType(),
	}
}

type Storage interface {
	SaveUser(ctx context.Context, user auth.User) error
	GetUserByEmail(ctx context.Context, email string) (auth.User, error)
	GetUserByID(ctx context.Context, id string) (auth.User, error)
	IsEmailTaken(ctx context.Context, email string) (bool, error)
	ListUsers(ctx context.Context) ([]UserRecord, error)
	DeleteUser(ctx context.Context, id string) (int64, error)
	CountUsersByRole(ctx context.Context, role string) (int, error)

	SaveSession(ctx context.Context, session auth.Session) error
	GetSessionByToken(ctx context.Context, token string) (auth.Session, error)
	DeleteSession(ctx context.Context, token string) error

	SaveTransaction(ctx context.Context, t Transaction) error
	UpdateTransaction(ctx context.Context, t Transaction) (int64, error)
	DeleteTransaction(ctx context.Context, id string, ownerID string) (int64, error)
	GetTransactionByID(ctx context.Context, id string) (Transaction, error)
	ListTransactions(ctx context.Context, ownerID string) ([]TransactionWithOwner, error)

	ListCategories(ctx context.Context) ([]Category, error)
	GetCategoryByID(ctx context.Context, id string) (Category, error)
	ListAccounts(ctx context.Context, ownerID string) ([]Account, error)
	GetAccountByID(ctx context.Context, id string) (Account, error)

	GetStorageType() string
}

// --- SESSIONS & USERS --- //

func (ft *FinanceTracker) Register(ctx context.Context, newUser auth.NewUser) (string, error) {
	if err := newUser.ValidateUserFields(); err != nil {
		return "", err
	}
	email := strings.ToLower(newUser.Email)

	taken, err := ft.storage.IsEmailTaken(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to check email availability: %w", err)
	}
	if taken {
		return "", appErrors.ErrorResponse{
			Code:    appErrors.ErrConflict,
			Message: fmt.Sprintf("This '%s' email address already taken, try to login instead.", email),
		}
	}

	hashedPassword, err := auth.HashPassword(newUser.PasswordPlain)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := auth.User{
		ID:             uuid.New().String(),
		FullName:       strings.TrimSpace(newUser.FullName),
		Email:          email,
		PasswordHashed: hashedPassword,
		Role:           auth.RoleUser, // sign-up never produces an admin
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := ft.storage.SaveUser(ctx, user); err != nil {
		return "", fmt.Errorf("failed to registration: %w", err)
	}

	credentials := auth.UserCredentialsPure{
		Email:         newUser.Email,
		PasswordPlain: newUser.PasswordPlain,
	}
	token, err := ft.GenerateSession(ctx, credentials)
	if err != nil {
		return "", fmt.Errorf("registration successful but failed to generate session: %w | try login", err)
	}
	return token, nil
}

func (ft *FinanceTracker) GenerateSession(ctx context.Context, credentials auth.UserCredentialsPure) (string, error) {
	badCredentials := appErrors.ErrorResponse{
		Code:    appErrors.ErrAuth,
		Message: "Email or password is wrong.",
	}

	user, err := ft.storage.GetUserByEmail(ctx, strings.ToLower(credentials.Email))
	if err != nil {
		if appErrors.Is(err, appErrors.ErrNotFound) {
			return "", badCredentials
		}
		return "", fmt.Errorf("failed to validate user: %w", err)
	}
	if !auth.ComparePasswords(user.PasswordHashed, credentials.PasswordPlain) {
		return "", badCredentials
	}

	now := time.Now().UTC()
	identity := auth.Identity{
		UserID:   user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Role:     user.Role,
	}
	token, err := ft.tokens.Issue(identity, now)
	if err != nil {
		return "", fmt.Errorf("failed to generate new session: %w", err)
	}

	session := auth.Session{
		ID:        uuid.New().String(),
		Token:     token,
		CreatedAt: now,
		ExpireAt:  now.Add(auth.TokenTTL),
		UserID:    user.ID,
	}
	if err := ft.storage.SaveSession(ctx, session); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	return token, nil
}

// CheckSession verifies the token signature and that the session row still
// exists, so revocation wins over an unexpired token.
func (ft *FinanceTracker) CheckSession(ctx context.Context, token string) (auth.Identity, error) {
	identity, err := ft.tokens.Verify(token)
	if err != nil {
		return auth.Identity{}, err
	}

	session, err := ft.storage.GetSessionByToken(ctx, token)
	if err != nil {
		if appErrors.Is(err, appErrors.ErrNotFound) {
			return auth.Identity{}, appErrors.ErrorResponse{
				Code:    appErrors.ErrAuth,
				Message: "Session does not exist, please login.",
			}
		}
		return auth.Identity{}, fmt.Errorf("failed to check session: %w", err)
	}
	if session.ExpireAt.Before(time.Now().UTC()) {
		return auth.Identity{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrAuth,
			Message: "Your session expired, please login again.",
		}
	}
	return identity, nil
}

func (ft *FinanceTracker) Logout(ctx context.Context, token string) error {
	if err := ft.storage.DeleteSession(ctx, token); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}

func (ft *FinanceTracker) CurrentUser(ctx context.Context, identity auth.Identity) (UserRecord, error) {
	user, err := ft.storage.GetUserByID(ctx, identity.UserID)
	if err != nil {
		return UserRecord{}, fmt.Errorf("failed to load current user: %w", err)
	}
	return UserRecord{
		ID:        user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}, nil
}

func (ft *FinanceTracker) ListUsers(ctx context.Context, identity auth.Identity) ([]UserRecord, error) {
	if !auth.Decide(identity).Allows(auth.OpListUsers) {
		return nil, appErrors.ErrorResponse{
			Code:    appErrors.ErrAccessDenied,
			Message: "Only administrators can list users.",
		}
	}
	users, err := ft.storage.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return users, nil
}

// DeleteUser removes a user and, through the schema's cascade, all of that
// user's transactions and sessions. Admin accounts are not deletable here.
func (ft *FinanceTracker) DeleteUser(ctx context.Context, identity auth.Identity, userID string) error {
	if !auth.Decide(identity).Allows(auth.OpDeleteUser) {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrAccessDenied,
			Message: "Only administrators can delete users.",
		}
	}
	target, err := ft.storage.GetUserByID(ctx, userID)
	if err != nil {
		if appErrors.Is(err, appErrors.ErrNotFound) {
			return appErrors.ErrorResponse{
				Code:    appErrors.ErrNotFound,
				Message: "User does not exist.",
			}
		}
		return fmt.Errorf("failed to load user: %w", err)
	}
	if target.Role == auth.RoleAdmin {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrAccessDenied,
			Message: "Administrator accounts cannot be deleted.",
		}
	}
	if _, err := ft.storage.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// --- TRANSACTIONS --- //

func (ft *FinanceTracker) ListTransactions(ctx context.Context, identity auth.Identity, scope auth.Scope) ([]TransactionWithOwner, error) {
	ownerID := identity.UserID
	if scope == auth.ScopeAll {
		if !identity.IsAdmin() {
			return nil, appErrors.ErrorResponse{
				Code:    appErrors.ErrAccessDenied,
				Message: "Only administrators can list all users' transactions.",
			}
		}
		ownerID = ""
	}
	transactions, err := ft.storage.ListTransactions(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return transactions, nil
}

func (ft *FinanceTracker) GetTransactionById(ctx context.Context, identity auth.Identity, transactionID string) (Transaction, error) {
	t, err := ft.storage.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to get transaction by id: %w", err)
	}
	if t.UserID != identity.UserID && !identity.IsAdmin() {
		// do not reveal that the row exists
		return Transaction{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrNotFound,
			Message: "Transaction does not exist.",
		}
	}
	return t, nil
}

// validateTransactionRequest checks the submitted fields against ownerID, the
// user the transaction belongs to. On create that is the acting identity; on
// update it is the existing row's owner, which differs when an admin edits
// another user's transaction.
func (ft *FinanceTracker) validateTransactionRequest(ctx context.Context, ownerID string, req TransactionRequest) (decimal.Decimal, time.Time, error) {
	var zero decimal.Decimal

	if req.Type != TypeIncome && req.Type != TypeExpense {
		return zero, time.Time{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Invalid transaction type: '%s', allowed types are: income and expense.", req.Type),
		}
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		return zero, time.Time{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Invalid amount: '%s'.", req.Amount),
		}
	}
	if amount.Sign() <= 0 {
		return zero, time.Time{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Amount must be greater than zero; direction is carried by the type.",
		}
	}
	if amount.GreaterThan(MAX_TRANSACTION_AMOUNT) {
		return zero, time.Time{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Maximum allowed amount per transaction is: %s", MAX_TRANSACTION_AMOUNT),
		}
	}
	date, err := time.Parse(DateLayout, req.Date)
	if err != nil {
		return zero, time.Time{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Invalid date: '%s', expected format: %s.", req.Date, DateLayout),
		}
	}
	if len(req.Note) > MAX_TRANSACTION_NOTE_LENGTH {
		return zero, time.Time{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Note so long, maximum allowed length is: %d", MAX_TRANSACTION_NOTE_LENGTH),
		}
	}

	category, err := ft.storage.GetCategoryByID(ctx, req.CategoryID)
	if err != nil {
		if appErrors.Is(err, appErrors.ErrNotFound) {
			return zero, time.Time{}, appErrors.ErrorResponse{
				Code:    appErrors.ErrInvalidInput,
				Message: "Unknown category.",
			}
		}
		return zero, time.Time{}, fmt.Errorf("failed to check category: %w", err)
	}
	// the schema enforces this too; refusing here keeps mismatched pairs off the wire
	if category.Type != req.Type {
		return zero, time.Time{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Category '%s' is an %s category, it cannot be used on an %s transaction.", category.Name, category.Type, req.Type),
		}
	}

	if req.AccountID != "" {
		account, err := ft.storage.GetAccountByID(ctx, req.AccountID)
		if err != nil {
			if appErrors.Is(err, appErrors.ErrNotFound) {
				return zero, time.Time{}, appErrors.ErrorResponse{
					Code:    appErrors.ErrInvalidInput,
					Message: "Unknown account.",
				}
			}
			return zero, time.Time{}, fmt.Errorf("failed to check account: %w", err)
		}
		if account.UserID != ownerID {
			return zero, time.Time{}, appErrors.ErrorResponse{
				Code:    appErrors.ErrInvalidInput,
				Message: "Account does not belong to the transaction owner.",
			}
		}
	}
	return amount, date, nil
}

// SaveTransaction creates a transaction owned by the acting identity. The
// owner is always stamped from the verified identity, never taken from the
// request body, so not even an admin can fabricate ownership.
func (ft *FinanceTracker) SaveTransaction(ctx context.Context, identity auth.Identity, req TransactionRequest) (Transaction, error) {
	amount, date, err := ft.validateTransactionRequest(ctx, identity.UserID, req)
	if err != nil {
		return Transaction{}, err
	}

	now := time.Now().UTC()
	txn := Transaction{
		ID:         uuid.New().String(),
		UserID:     identity.UserID,
		Type:       req.Type,
		CategoryID: req.CategoryID,
		AccountID:  req.AccountID,
		Amount:     amount,
		Note:       req.Note,
		Date:       date,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := ft.storage.SaveTransaction(ctx, txn); err != nil {
		return Transaction{}, fmt.Errorf("failed to save transaction to db: %w", err)
	}
	return txn, nil
}

func (ft *FinanceTracker) UpdateTransaction(ctx context.Context, identity auth.Identity, transactionID string, req TransactionRequest) (Transaction, error) {
	existing, err := ft.GetTransactionById(ctx, identity, transactionID)
	if err != nil {
		return Transaction{}, err
	}

	// the row keeps its owner, so account references are checked against that
	// owner, not the actor; an admin edit may reference the owner's accounts
	amount, date, err := ft.validateTransactionRequest(ctx, existing.UserID, req)
	if err != nil {
		return Transaction{}, err
	}

	existing.Type = req.Type
	existing.CategoryID = req.CategoryID
	existing.AccountID = req.AccountID
	existing.Amount = amount
	existing.Note = req.Note
	existing.Date = date
	existing.UpdatedAt = time.Now().UTC()

	rows, err := ft.storage.UpdateTransaction(ctx, existing)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to update transaction: %w", err)
	}
	if rows == 0 {
		// lost a race with a concurrent delete
		return Transaction{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrNotFound,
			Message: "Transaction does not exist.",
		}
	}
	return existing, nil
}

// DeleteTransaction is idempotent: deleting an id that is already gone is a
// success, so a race with a concurrent delete never surfaces as an error.
func (ft *FinanceTracker) DeleteTransaction(ctx context.Context, identity auth.Identity, transactionID string) error {
	ownerID := identity.UserID
	if identity.IsAdmin() {
		ownerID = ""
	}
	if _, err := ft.storage.DeleteTransaction(ctx, transactionID, ownerID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

// --- REFERENCE DATA --- //

func (ft *FinanceTracker) ListCategories(ctx context.Context) ([]Category, error) {
	categories, err := ft.storage.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

func (ft *FinanceTracker) ListAccounts(ctx context.Context, identity auth.Identity) ([]Account, error) {
	ownerID := identity.UserID
	if identity.IsAdmin() {
		ownerID = ""
	}
	accounts, err := ft.storage.ListAccounts(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}
	return accounts, nil
}

// --- STATISTICS --- //

func (ft *FinanceTracker) OverviewStats(ctx context.Context, identity auth.Identity) (OverviewStats, error) {
	if !auth.Decide(identity).Allows(auth.OpOverviewStats) {
		return OverviewStats{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrAccessDenied,
			Message: "Only administrators can view the overview.",
		}
	}
	userCount, err := ft.storage.CountUsersByRole(ctx, auth.RoleUser)
	if err != nil {
		return OverviewStats{}, fmt.Errorf("failed to count users: %w", err)
	}
	transactions, err := ft.storage.ListTransactions(ctx, "")
	if err != nil {
		return OverviewStats{}, fmt.Errorf("failed to get transactions: %w", err)
	}

	stats := OverviewStats{
		TotalUsers:        userCount,
		TotalTransactions: len(transactions),
	}
	for _, t := range transactions {
		switch t.Type {
		case TypeIncome:
			stats.TotalIncome = stats.TotalIncome.Add(t.Amount)
		case TypeExpense:
			stats.TotalExpenses = stats.TotalExpenses.Add(t.Amount)
		}
	}
	return stats, nil
}
