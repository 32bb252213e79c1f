package finance

import (
	"context"
	"testing"
	"time"

	appErrors "github.com/fatali-fataliyev/finance_tracker/customErrors"
	"github.com/fatali-fataliyev/finance_tracker/internal/auth"
	"github.com/shopspring/decimal"
)

var (
	johnIdentity  = auth.Identity{UserID: "john-1234", FullName: "John Doe", Email: "john@gmail.com", Role: auth.RoleUser}
	adminIdentity = auth.Identity{UserID: "admin-1", FullName: "Site Admin", Email: "admin@example.com", Role: auth.RoleAdmin}
)

// Mocks
type MockStorage struct {
	passwordHash string // bcrypt hash of "john123"

	revokedToken string

	savedUser        *auth.User
	savedTransaction *Transaction
	lastListOwner    string
	lastDeleteOwner  string
}

func newMockStorage(t *testing.T) *MockStorage {
	t.Helper()
	hash, err := auth.HashPassword("john123")
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}
	return &MockStorage{passwordHash: hash}
}

func (m *MockStorage) SaveUser(ctx context.Context, user auth.User) error {
	m.savedUser = &user
	return nil
}

func (m *MockStorage) GetUserByEmail(ctx context.Context, email string) (auth.User, error) {
	if email == "john@gmail.com" {
		return auth.User{
			ID:             "john-1234",
			FullName:       "John Doe",
			Email:          "john@gmail.com",
			PasswordHashed: m.passwordHash,
			Role:           auth.RoleUser,
		}, nil
	}
	return auth.User{}, appErrors.ErrorResponse{Code: appErrors.ErrNotFound, Message: "User does not exist."}
}

func (m *MockStorage) GetUserByID(ctx context.Context, id string) (auth.User, error) {
	switch id {
	case "john-1234":
		return auth.User{ID: "john-1234", FullName: "John Doe", Email: "john@gmail.com", Role: auth.RoleUser}, nil
	case "admin-1":
		return auth.User{ID: "admin-1", FullName: "Site Admin", Email: "admin@example.com", Role: auth.RoleAdmin}, nil
	}
	return auth.User{}, appErrors.ErrorResponse{Code: appErrors.ErrNotFound, Message: "User does not exist."}
}

func (m *MockStorage) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	return email == "taken@gmail.com", nil
}

func (m *MockStorage) ListUsers(ctx context.Context) ([]UserRecord, error) {
	return []UserRecord{
		{ID: "john-1234", FullName: "John Doe", Email: "john@gmail.com", Role: auth.RoleUser},
	}, nil
}

func (m *MockStorage) DeleteUser(ctx context.Context, id string) (int64, error) {
	return 1, nil
}

func (m *MockStorage) CountUsersByRole(ctx context.Context, role string) (int, error) {
	return 3, nil
}

func (m *MockStorage) SaveSession(ctx context.Context, session auth.Session) error {
	return nil
}

func (m *MockStorage) GetSessionByToken(ctx context.Context, token string) (auth.Session, error) {
	if token == m.revokedToken {
		return auth.Session{}, appErrors.ErrorResponse{Code: appErrors.ErrNotFound, Message: "Session does not exist."}
	}
	return auth.Session{
		ID:        "session-valid",
		Token:     token,
		CreatedAt: time.Now(),
		ExpireAt:  time.Now().Add(24 * time.Hour),
		UserID:    "john-1234",
	}, nil
}

func (m *MockStorage) DeleteSession(ctx context.Context, token string) error {
	return nil
}

func (m *MockStorage) SaveTransaction(ctx context.Context, t Transaction) error {
	m.savedTransaction = &t
	return nil
}

func (m *MockStorage) UpdateTransaction(ctx context.Context, t Transaction) (int64, error) {
	if t.ID == "ts-race" {
		return 0, nil
	}
	return 1, nil
}

func (m *MockStorage) DeleteTransaction(ctx context.Context, id string, ownerID string) (int64, error) {
	m.lastDeleteOwner = ownerID
	if id == "ts-gone" {
		return 0, nil
	}
	return 1, nil
}

func (m *MockStorage) GetTransactionByID(ctx context.Context, id string) (Transaction, error) {
	switch id {
	case "ts-1", "ts-race":
		return Transaction{
			ID:         id,
			UserID:     "john-1234",
			Type:       TypeIncome,
			CategoryID: "cat-salary",
			Amount:     decimal.RequireFromString("1500.00"),
			Note:       "Salary",
			Date:       time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		}, nil
	}
	return Transaction{}, appErrors.ErrorResponse{Code: appErrors.ErrNotFound, Message: "Transaction does not exist."}
}

func (m *MockStorage) ListTransactions(ctx context.Context, ownerID string) ([]TransactionWithOwner, error) {
	m.lastListOwner = ownerID
	return []TransactionWithOwner{
		{
			Transaction: Transaction{
				ID:         "ts-1",
				UserID:     "john-1234",
				Type:       TypeIncome,
				CategoryID: "cat-salary",
				Amount:     decimal.RequireFromString("30.45"),
				Date:       time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC),
			},
			OwnerName:  "John Doe",
			OwnerEmail: "john@gmail.com",
		},
		{
			Transaction: Transaction{
				ID:         "ts-2",
				UserID:     "john-1234",
				Type:       TypeExpense,
				CategoryID: "cat-groceries",
				Amount:     decimal.RequireFromString("10.15"),
				Date:       time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			},
			OwnerName:  "John Doe",
			OwnerEmail: "john@gmail.com",
		},
	}, nil
}

func (m *MockStorage) ListCategories(ctx context.Context) ([]Category, error) {
	return []Category{
		{ID: "cat-salary", Name: "Salary", Type: TypeIncome},
		{ID: "cat-groceries", Name: "Groceries", Type: TypeExpense},
	}, nil
}

func (m *MockStorage) GetCategoryByID(ctx context.Context, id string) (Category, error) {
	switch id {
	case "cat-salary":
		return Category{ID: "cat-salary", Name: "Salary", Type: TypeIncome}, nil
	case "cat-groceries":
		return Category{ID: "cat-groceries", Name: "Groceries", Type: TypeExpense}, nil
	}
	return Category{}, appErrors.ErrorResponse{Code: appErrors.ErrNotFound, Message: "Category does not exist."}
}

func (m *MockStorage) ListAccounts(ctx context.Context, ownerID string) ([]Account, error) {
	return nil, nil
}

func (m *MockStorage) GetAccountByID(ctx context.Context, id string) (Account, error) {
	switch id {
	case "acc-john":
		return Account{ID: "acc-john", UserID: "john-1234", Name: "Cash", Kind: "cash", Currency: "USD"}, nil
	case "acc-other":
		return Account{ID: "acc-other", UserID: "someone-else", Name: "Card", Kind: "card", Currency: "USD"}, nil
	}
	return Account{}, appErrors.ErrorResponse{Code: appErrors.ErrNotFound, Message: "Account does not exist."}
}

func (m *MockStorage) GetStorageType() string {
	return "mock"
}

// Tests

func TestRegister(t *testing.T) {
	mockStore := newMockStorage(t)
	ft := &FinanceTracker{storage: mockStore, tokens: auth.NewTokenManager("test-secret")}
	ctx := context.Background()

	tests := []struct {
		name        string
		input       auth.NewUser
		wantToken   bool
		expectedMsg string
	}{
		{
			name:        "Fail - Empty full name",
			input:       auth.NewUser{FullName: "", Email: "bob@gmail.com", PasswordPlain: "secure123"},
			expectedMsg: "Full name cannot be empty!",
		},
		{
			name:        "Fail - Email already taken",
			input:       auth.NewUser{FullName: "Bob", Email: "taken@gmail.com", PasswordPlain: "secure123"},
			expectedMsg: "This 'taken@gmail.com' email address already taken, try to login instead.",
		},
		{
			name:      "Success - Valid registration",
			input:     auth.NewUser{FullName: "John Doe", Email: "john@gmail.com", PasswordPlain: "john123"},
			wantToken: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := ft.Register(ctx, tt.input)

			if tt.wantToken {
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				if token == "" {
					t.Errorf("Expected a session token, got empty string")
				}
				if mockStore.savedUser == nil {
					t.Fatalf("Expected user to be saved")
				}
				if mockStore.savedUser.Role != auth.RoleUser {
					t.Errorf("Registration must always produce role %q, got %q", auth.RoleUser, mockStore.savedUser.Role)
				}
				return
			}

			if appErr, ok := err.(appErrors.ErrorResponse); ok {
				if appErr.Message != tt.expectedMsg {
					t.Errorf("Got message %q, want %q", appErr.Message, tt.expectedMsg)
				}
			} else {
				t.Errorf("Expected ErrorResponse, got: %v", err)
			}
		})
	}
}

func TestGenerateSession(t *testing.T) {
	mockStore := newMockStorage(t)
	ft := &FinanceTracker{storage: mockStore, tokens: auth.NewTokenManager("test-secret")}
	ctx := context.Background()

	tests := []struct {
		name        string
		input       auth.UserCredentialsPure
		wantToken   bool
		expectedMsg string
	}{
		{
			name:        "Fail - Unknown email",
			input:       auth.UserCredentialsPure{Email: "ghost@gmail.com", PasswordPlain: "john123"},
			expectedMsg: "Email or password is wrong.",
		},
		{
			// wrong password must be indistinguishable from unknown email
			name:        "Fail - Wrong password",
			input:       auth.UserCredentialsPure{Email: "john@gmail.com", PasswordPlain: "wrong"},
			expectedMsg: "Email or password is wrong.",
		},
		{
			name:      "Success - Valid credentials",
			input:     auth.UserCredentialsPure{Email: "john@gmail.com", PasswordPlain: "john123"},
			wantToken: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := ft.GenerateSession(ctx, tt.input)

			if tt.wantToken {
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				identity, err := ft.tokens.Verify(token)
				if err != nil {
					t.Fatalf("Issued token failed verification: %v", err)
				}
				if identity.UserID != "john-1234" {
					t.Errorf("Token carries uid %q, want %q", identity.UserID, "john-1234")
				}
				return
			}

			if err == nil {
				t.Fatalf("Expected error, got token %q", token)
			}
			appErr, ok := err.(appErrors.ErrorResponse)
			if !ok {
				t.Fatalf("Expected ErrorResponse, got: %v", err)
			}
			if appErr.Message != tt.expectedMsg {
				t.Errorf("Got message %q, want %q", appErr.Message, tt.expectedMsg)
			}
			if appErr.Code != appErrors.ErrAuth {
				t.Errorf("Expected code %q, got %q", appErrors.ErrAuth, appErr.Code)
			}
		})
	}
}

func TestCheckSessionRevocationWins(t *testing.T) {
	mockStore := newMockStorage(t)
	ft := &FinanceTracker{storage: mockStore, tokens: auth.NewTokenManager("test-secret")}
	ctx := context.Background()

	token, err := ft.GenerateSession(ctx, auth.UserCredentialsPure{Email: "john@gmail.com", PasswordPlain: "john123"})
	if err != nil {
		t.Fatalf("Failed to login: %v", err)
	}

	identity, err := ft.CheckSession(ctx, token)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if identity.UserID != "john-1234" {
		t.Errorf("Got uid %q, want %q", identity.UserID, "john-1234")
	}

	// the token is still cryptographically valid, but the session row is gone
	mockStore.revokedToken = token
	_, err = ft.CheckSession(ctx, token)
	if !appErrors.Is(err, appErrors.ErrAuth) {
		t.Errorf("Revoked session must fail with code %q, got: %v", appErrors.ErrAuth, err)
	}
}

func TestSaveTransaction(t *testing.T) {
	mockStore := newMockStorage(t)
	ft := &FinanceTracker{storage: mockStore}
	ctx := context.Background()

	tests := []struct {
		name        string
		input       TransactionRequest
		wantSaved   bool
		expectedMsg string
	}{
		{
			name:        "Fail - Invalid type",
			input:       TransactionRequest{Type: "transfer", CategoryID: "cat-salary", Amount: "10.00", Date: "2026-08-01"},
			expectedMsg: "Invalid transaction type: 'transfer', allowed types are: income and expense.",
		},
		{
			name:        "Fail - Amount is not a number",
			input:       TransactionRequest{Type: TypeIncome, CategoryID: "cat-salary", Amount: "ten", Date: "2026-08-01"},
			expectedMsg: "Invalid amount: 'ten'.",
		},
		{
			name:        "Fail - Zero amount",
			input:       TransactionRequest{Type: TypeIncome, CategoryID: "cat-salary", Amount: "0", Date: "2026-08-01"},
			expectedMsg: "Amount must be greater than zero; direction is carried by the type.",
		},
		{
			name:        "Fail - Negative amount",
			input:       TransactionRequest{Type: TypeExpense, CategoryID: "cat-groceries", Amount: "-5.00", Date: "2026-08-01"},
			expectedMsg: "Amount must be greater than zero; direction is carried by the type.",
		},
		{
			name:        "Fail - Amount over ceiling",
			input:       TransactionRequest{Type: TypeIncome, CategoryID: "cat-salary", Amount: "10000000000000000.00", Date: "2026-08-01"},
			expectedMsg: "Maximum allowed amount per transaction is: 9999999999999999.99",
		},
		{
			name:        "Fail - Bad date",
			input:       TransactionRequest{Type: TypeIncome, CategoryID: "cat-salary", Amount: "10.00", Date: "01/08/2026"},
			expectedMsg: "Invalid date: '01/08/2026', expected format: 2006-01-02.",
		},
		{
			name:        "Fail - Unknown category",
			input:       TransactionRequest{Type: TypeIncome, CategoryID: "cat-ghost", Amount: "10.00", Date: "2026-08-01"},
			expectedMsg: "Unknown category.",
		},
		{
			name:        "Fail - Category type mismatch",
			input:       TransactionRequest{Type: TypeIncome, CategoryID: "cat-groceries", Amount: "10.00", Date: "2026-08-01"},
			expectedMsg: "Category 'Groceries' is an expense category, it cannot be used on an income transaction.",
		},
		{
			name:        "Fail - Foreign account",
			input:       TransactionRequest{Type: TypeIncome, CategoryID: "cat-salary", AccountID: "acc-other", Amount: "10.00", Date: "2026-08-01"},
			expectedMsg: "Account does not belong to the transaction owner.",
		},
		{
			name:      "Success - Smallest valid amount",
			input:     TransactionRequest{Type: TypeIncome, CategoryID: "cat-salary", Amount: "0.01", Date: "2026-08-01"},
			wantSaved: true,
		},
		{
			name:      "Success - With own account",
			input:     TransactionRequest{Type: TypeExpense, CategoryID: "cat-groceries", AccountID: "acc-john", Amount: "42.50", Date: "2026-08-15"},
			wantSaved: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore.savedTransaction = nil
			txn, err := ft.SaveTransaction(ctx, johnIdentity, tt.input)

			if tt.wantSaved {
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				if mockStore.savedTransaction == nil {
					t.Fatalf("Expected transaction to be saved")
				}
				// owner always comes from the verified identity, never from the body
				if txn.UserID != johnIdentity.UserID {
					t.Errorf("Owner stamped as %q, want %q", txn.UserID, johnIdentity.UserID)
				}
				if !txn.Amount.Equal(decimal.RequireFromString(tt.input.Amount)) {
					t.Errorf("Amount stored as %s, want %s", txn.Amount, tt.input.Amount)
				}
				return
			}

			if err == nil {
				t.Fatalf("Expected error, got none")
			}
			if mockStore.savedTransaction != nil {
				t.Errorf("Rejected transaction must not reach storage")
			}
			if appErr, ok := err.(appErrors.ErrorResponse); ok {
				if appErr.Message != tt.expectedMsg {
					t.Errorf("Got message %q, want %q", appErr.Message, tt.expectedMsg)
				}
				if appErr.Code != appErrors.ErrInvalidInput {
					t.Errorf("Got code %q, want %q", appErr.Code, appErrors.ErrInvalidInput)
				}
			} else {
				t.Errorf("Expected ErrorResponse, got: %v", err)
			}
		})
	}
}

func TestUpdateTransactionLostRace(t *testing.T) {
	mockStore := newMockStorage(t)
	ft := &FinanceTracker{storage: mockStore}
	ctx := context.Background()

	req := TransactionRequest{Type: TypeIncome, CategoryID: "cat-salary", Amount: "20.00", Date: "2026-08-01"}

	// ts-race exists at read time but the write affects zero rows
	_, err := ft.UpdateTransaction(ctx, johnIdentity, "ts-race", req)
	if !appErrors.Is(err, appErrors.ErrNotFound) {
		t.Errorf("Update losing a race with delete must report NOT FOUND, got: %v", err)
	}

	updated, err := ft.UpdateTransaction(ctx, johnIdentity, "ts-1", req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !updated.Amount.Equal(decimal.RequireFromString("20.00")) {
		t.Errorf("Amount updated to %s, want 20.00", updated.Amount)
	}
}

// An admin editing another user's transaction may keep that user's account on
// it; the account check runs against the row's owner, not the actor.
func TestUpdateTransactionByAdminKeepsOwnerAccount(t *testing.T) {
	mockStore := newMockStorage(t)
	ft := &FinanceTracker{storage: mockStore}
	ctx := context.Background()

	// ts-1 is owned by john; acc-john is john's account, not the admin's
	updated, err := ft.UpdateTransaction(ctx, adminIdentity, "ts-1", TransactionRequest{
		Type:       TypeIncome,
		CategoryID: "cat-salary",
		AccountID:  "acc-john",
		Amount:     "75.00",
		Date:       "2026-08-05",
	})
	if err != nil {
		t.Fatalf("Admin update referencing the owner's account must succeed, got: %v", err)
	}
	if updated.UserID != "john-1234" {
		t.Errorf("Update must not reassign ownership, got owner %q", updated.UserID)
	}
	if updated.AccountID != "acc-john" {
		t.Errorf("Got account %q, want acc-john", updated.AccountID)
	}

	// an account owned by neither the row's owner nor anyone relevant still fails
	_, err = ft.UpdateTransaction(ctx, adminIdentity, "ts-1", TransactionRequest{
		Type:       TypeIncome,
		CategoryID: "cat-salary",
		AccountID:  "acc-other",
		Amount:     "75.00",
		Date:       "2026-08-05",
	})
	if !appErrors.Is(err, appErrors.ErrInvalidInput) {
		t.Errorf("Foreign account on the row's owner must be rejected, got: %v", err)
	}
}

func TestGetTransactionByIdHidesForeignRows(t *testing.T) {
	mockStore := newMockStorage(t)
	ft := &FinanceTracker{storage: mockStore}
	ctx := context.Background()

	stranger := auth.Identity{UserID: "stranger-1", Role: auth.RoleUser}
	_, err := ft.GetTransactionById(ctx, stranger, "ts-1")
	if !appErrors.Is(err, appErrors.ErrNotFound) {
		t.Errorf("Foreign row must read as NOT FOUND, got: %v", err)
	}

	// the admin scope sees every row
	txn, err := ft.GetTransactionById(ctx, adminIdentity, "ts-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if txn.ID != "ts-1" {
		t.Errorf("Got transaction %q, want ts-1", txn.ID)
	}
}

func TestDeleteTransactionIdempotent(t *testing.T) {
	mockStore := newMockStorage(t)
	ft := &FinanceTracker{storage: mockStore}
	ctx := context.Background()

	// already gone: still a success
	if err := ft.DeleteTransaction(ctx, johnIdentity, "ts-gone"); err != nil {
		t.Errorf("Deleting a missing transaction must succeed, got: %v", err)
	}
	if mockStore.lastDeleteOwner != johnIdentity.UserID {
		t.Errorf("User delete must be owner-scoped, got owner %q", mockStore.lastDeleteOwner)
	}

	if err := ft.DeleteTransaction(ctx, adminIdentity, "ts-1"); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if mockStore.lastDeleteOwner != "" {
		t.Errorf("Admin delete must not be owner-scoped, got owner %q", mockStore.lastDeleteOwner)
	}
}

func TestListTransactionsScope(t *testing.T) {
	mockStore := newMockStorage(t)
	ft := &FinanceTracker{storage: mockStore}
	ctx := context.Background()

	_, err := ft.ListTransactions(ctx, johnIdentity, auth.ScopeAll)
	if !appErrors.Is(err, appErrors.ErrAccessDenied) {
		t.Errorf("User requesting the all-users scope must be denied, got: %v", err)
	}

	if _, err := ft.ListTransactions(ctx, johnIdentity, auth.ScopeMine); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if mockStore.lastListOwner != johnIdentity.UserID {
		t.Errorf("User scope must filter by owner, got %q", mockStore.lastListOwner)
	}

	if _, err := ft.ListTransactions(ctx, adminIdentity, auth.ScopeAll); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if mockStore.lastListOwner != "" {
		t.Errorf("Admin all-users scope must not filter by owner, got %q", mockStore.lastListOwner)
	}
}

func TestListUsersRequiresAdmin(t *testing.T) {
	mockStore := newMockStorage(t)
	ft := &FinanceTracker{storage: mockStore}
	ctx := context.Background()

	_, err := ft.ListUsers(ctx, johnIdentity)
	if !appErrors.Is(err, appErrors.ErrAccessDenied) {
		t.Errorf("Non-admin must be denied, got: %v", err)
	}

	users, err := ft.ListUsers(ctx, adminIdentity)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("Got %d users, want 1", len(users))
	}
}

func TestDeleteUser(t *testing.T) {
	mockStore := newMockStorage(t)
	ft := &FinanceTracker{storage: mockStore}
	ctx := context.Background()

	tests := []struct {
		name         string
		caller       auth.Identity
		target       string
		expectedCode string
	}{
		{
			name:         "Fail - Non-admin caller",
			caller:       johnIdentity,
			target:       "john-1234",
			expectedCode: appErrors.ErrAccessDenied,
		},
		{
			name:         "Fail - Admin target is protected",
			caller:       adminIdentity,
			target:       "admin-1",
			expectedCode: appErrors.ErrAccessDenied,
		},
		{
			name:         "Fail - Unknown target",
			caller:       adminIdentity,
			target:       "ghost-1",
			expectedCode: appErrors.ErrNotFound,
		},
		{
			name:   "Success - Admin deletes a user",
			caller: adminIdentity,
			target: "john-1234",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ft.DeleteUser(ctx, tt.caller, tt.target)

			if tt.expectedCode == "" {
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				return
			}
			if !appErrors.Is(err, tt.expectedCode) {
				t.Errorf("Got code %q (err: %v), want %q", appErrors.CodeOf(err), err, tt.expectedCode)
			}
		})
	}
}

func TestOverviewStats(t *testing.T) {
	mockStore := newMockStorage(t)
	ft := &FinanceTracker{storage: mockStore}
	ctx := context.Background()

	_, err := ft.OverviewStats(ctx, johnIdentity)
	if !appErrors.Is(err, appErrors.ErrAccessDenied) {
		t.Errorf("Non-admin must be denied, got: %v", err)
	}

	stats, err := ft.OverviewStats(ctx, adminIdentity)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if stats.TotalUsers != 3 {
		t.Errorf("Got %d users, want 3", stats.TotalUsers)
	}
	if stats.TotalTransactions != 2 {
		t.Errorf("Got %d transactions, want 2", stats.TotalTransactions)
	}
	if !stats.TotalIncome.Equal(decimal.RequireFromString("30.45")) {
		t.Errorf("Got income %s, want 30.45", stats.TotalIncome)
	}
	if !stats.TotalExpenses.Equal(decimal.RequireFromString("10.15")) {
		t.Errorf("Got expenses %s, want 10.15", stats.TotalExpenses)
	}
}
