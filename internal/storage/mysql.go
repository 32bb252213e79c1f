package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	appErrors "github.com/fatali-fataliyev/finance_tracker/customErrors"
	"github.com/fatali-fataliyev/finance_tracker/internal/auth"
	"github.com/fatali-fataliyev/finance_tracker/internal/contextutil"
	"github.com/fatali-fataliyev/finance_tracker/internal/finance"
	"github.com/fatali-fataliyev/finance_tracker/logging"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- INIT START --- //

func Init() (*sql.DB, error) {
	var db *sql.DB
	var err error
	var dbname string

	username := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASS")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	dbname = os.Getenv("DB_NAME")
	fullDsn := os.Getenv("FULL_DSN")

	if dbname == "" {
		dbname = "finance_tracker"
	}

	var adminDsn string
	if fullDsn != "" {
		parts := strings.Split(fullDsn, "/")
		adminDsn = strings.Join(parts[:len(parts)-1], "/") + "/"
	} else {
		if username == "" || password == "" || host == "" || port == "" {
			return nil, fmt.Errorf("missing required DB environment variables")
		}
		adminDsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/?parseTime=true", username, password, host, port)
	}

	logging.Logger.Info("Connecting to MySQL server for initialization...")
	adminDb, err := sql.Open("mysql", adminDsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open admin mysql handle: %v", err)
	}
	connected := false
	for i := 0; i < 15; i++ {
		if err := adminDb.Ping(); err == nil {
			connected = true
			break
		}
		logging.Logger.Warnf("Database not ready, retrying... (%d/15)", i+1)
		time.Sleep(3 * time.Second)
	}
	if !connected {
		return nil, fmt.Errorf("database unreachable after multiple attempts")
	}

	var dbnameExistence string
	checkDbnameExistQuery := "SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?"
	err = adminDb.QueryRow(checkDbnameExistQuery, dbname).Scan(&dbnameExistence)

	if err == sql.ErrNoRows {
		logging.Logger.Infof("Database '%s' does not exist, creating...", dbname)
		createDbSql := fmt.Sprintf("CREATE DATABASE `%s` CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci;", dbname)
		if _, err := adminDb.Exec(createDbSql); err != nil {
			adminDb.Close()
			return nil, fmt.Errorf("failed to create database: %v", err)
		}
	} else if err != nil {
		adminDb.Close()
		return nil, fmt.Errorf("failed to check database existence: %v", err)
	}

	adminDb.Close()

	var finalDsn string
	if fullDsn != "" {
		finalDsn = fullDsn
	} else {
		finalDsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", username, password, host, port, dbname)
	}

	logging.Logger.Info("Connecting to database...")
	db, err = sql.Open("mysql", finalDsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database handle: %v", err)
	}

	logging.Logger.Info("Connected to database successfully")
	logging.Logger.Info("Running migrations...")

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	return db, nil
}

func runMigrations(db *sql.DB) error {
	migrationFiles, err := getMigrationFiles("db/migrations")
	if err != nil {
		return fmt.Errorf("failed to get migration files: %v", err)
	}

	lastAppliedMigration, err := getLastAppliedMigration(db)
	if err != nil {
		return fmt.Errorf("failed to get last applied migration name: %v", err)
	}

	newMigrations := filterNewMigrations(migrationFiles, lastAppliedMigration)

	if len(newMigrations) == 0 {
		logging.Logger.Info("no new migration")
		return nil
	}

	for _, migrationFile := range newMigrations {
		logging.Logger.Info("applying migration: ", migrationFile)
		migrationContent, err := os.ReadFile(filepath.Join("db/migrations/", migrationFile))
		if err != nil {
			return fmt.Errorf("failed to read this '%s' migration file, error: %v", migrationFile, err)
		}

		if err := applyMigration(db, migrationFile, string(migrationContent)); err != nil {
			return fmt.Errorf("failed to apply this '%s' migration file, error: %v", migrationFile, err)
		}
	}

	logging.Logger.Info("all migrations applied successfully")
	return nil
}

func getMigrationFiles(dir string) ([]string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var migrationFiles []string
	for _, file := range files {
		if !file.IsDir() && strings.HasSuffix(file.Name(), ".sql") {
			migrationFiles = append(migrationFiles, file.Name())
		}
	}

	sort.Strings(migrationFiles)
	return migrationFiles, nil
}

func getLastAppliedMigration(db *sql.DB) (string, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS migration (
        id INT AUTO_INCREMENT PRIMARY KEY,
        migration_name VARCHAR(255) NOT NULL UNIQUE,
        applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
    );`)

	if err != nil {
		return "", err
	}

	var lastMigration string
	err = db.QueryRow("SELECT migration_name FROM migration ORDER BY migration_name DESC LIMIT 1").Scan(&lastMigration)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return lastMigration, err
}

func filterNewMigrations(all []string, lastApplied string) []string {
	if lastApplied == "" {
		return all
	}

	var result []string
	for _, migration := range all {
		if migration > lastApplied {
			result = append(result, migration)
		}
	}
	return result
}

func applyMigration(db *sql.DB, name, sqlContent string) error {
	txn, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	statements := strings.Split(sqlContent, ";")

	for _, statement := range statements {
		trimmedStmt := strings.TrimSpace(statement)
		if trimmedStmt == "" {
			continue
		}

		if _, err := txn.Exec(trimmedStmt); err != nil {
			txn.Rollback()
			return fmt.Errorf("migration statement failed: %w\nStatement: %s", err, trimmedStmt)
		}
	}

	if _, err := txn.Exec("INSERT INTO migration (migration_name) VALUES (?)", name); err != nil {
		txn.Rollback()
		return fmt.Errorf("failed to record migration name: %w", err)
	}

	return txn.Commit()
}

// EnsureAdminUser seeds the administrator account if it is missing. Admins
// are never created through registration, only provisioned here.
func EnsureAdminUser(ctx context.Context, s finance.Storage, email, password string) error {
	taken, err := s.IsEmailTaken(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check admin existence: %w", err)
	}
	if taken {
		return nil
	}
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	now := time.Now().UTC()
	admin := auth.User{
		ID:             uuid.New().String(),
		FullName:       "Administrator",
		Email:          email,
		PasswordHashed: hashed,
		Role:           auth.RoleAdmin,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.SaveUser(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	logging.Logger.Infof("Seeded admin user: %s", email)
	return nil
}

// --- INIT END --- //

type MySQLStorage struct {
	db *sql.DB
}

func NewMySQLStorage(db *sql.DB) *MySQLStorage {
	return &MySQLStorage{db: db}
}

func (mySql *MySQLStorage) GetStorageType() string {
	return "mysql"
}

func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// remoteFault wraps storage/network failures so handlers surface them as
// retry-on-user-action, never as a crash.
func remoteFault(message string) error {
	return appErrors.ErrorResponse{Code: appErrors.ErrRemote, Message: message}
}

// --- USERS --- //

func (mySql *MySQLStorage) SaveUser(ctx context.Context, user auth.User) error {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "INSERT INTO user (id, full_name, email, hashed_password, role, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?);"
	_, err := mySql.db.ExecContext(ctx, query, user.ID, user.FullName, user.Email, user.PasswordHashed, user.Role, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isDuplicateKey(err) {
			return appErrors.ErrorResponse{
				Code:    appErrors.ErrConflict,
				Message: "The email address already taken.",
			}
		}
		logging.Logger.Errorf("[TraceID=%s] | failed to save user in Storage.SaveUser() function | Error: %v", traceID, err)
		return remoteFault("Registration failed, try again later.")
	}
	return nil
}

func (mySql *MySQLStorage) scanUser(row *sql.Row) (auth.User, error) {
	var user auth.User
	err := row.Scan(&user.ID, &user.FullName, &user.Email, &user.PasswordHashed, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	return user, err
}

func (mySql *MySQLStorage) GetUserByEmail(ctx context.Context, email string) (auth.User, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "SELECT id, full_name, email, hashed_password, role, created_at, updated_at FROM user WHERE email = ?;"
	user, err := mySql.scanUser(mySql.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.User{}, appErrors.ErrorResponse{
				Code:    appErrors.ErrNotFound,
				Message: "User does not exist.",
			}
		}
		logging.Logger.Errorf("[TraceID=%s] | failed to get user in Storage.GetUserByEmail() function | Error: %v", traceID, err)
		return auth.User{}, remoteFault("Failed to load user, try again later.")
	}
	return user, nil
}

func (mySql *MySQLStorage) GetUserByID(ctx context.Context, id string) (auth.User, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "SELECT id, full_name, email, hashed_password, role, created_at, updated_at FROM user WHERE id = ?;"
	user, err := mySql.scanUser(mySql.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.User{}, appErrors.ErrorResponse{
				Code:    appErrors.ErrNotFound,
				Message: "User does not exist.",
			}
		}
		logging.Logger.Errorf("[TraceID=%s] | failed to get user in Storage.GetUserByID() function | Error: %v", traceID, err)
		return auth.User{}, remoteFault("Failed to load user, try again later.")
	}
	return user, nil
}

func (mySql *MySQLStorage) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	var one int
	err := mySql.db.QueryRowContext(ctx, "SELECT 1 FROM user WHERE email = ?;", email).Scan(&one)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	logging.Logger.Errorf("[TraceID=%s] | failed to check email in Storage.IsEmailTaken() function | Error: %v", traceID, err)
	return false, remoteFault("Failed to check email availability, try again later.")
}

func (mySql *MySQLStorage) ListUsers(ctx context.Context) ([]finance.UserRecord, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "SELECT id, full_name, email, role, created_at, updated_at FROM user ORDER BY created_at DESC, id DESC;"
	rows, err := mySql.db.QueryContext(ctx, query)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to list users in Storage.ListUsers() function | Error: %v", traceID, err)
		return nil, remoteFault("Failed to load users, try again later.")
	}
	defer rows.Close()

	var users []finance.UserRecord
	for rows.Next() {
		var user finance.UserRecord
		if err := rows.Scan(&user.ID, &user.FullName, &user.Email, &user.Role, &user.CreatedAt, &user.UpdatedAt); err != nil {
			logging.Logger.Errorf("[TraceID=%s] | failed to scan user row in Storage.ListUsers() function | Error: %v", traceID, err)
			return nil, remoteFault("Failed to load users, try again later.")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		logging.Logger.Errorf("[TraceID=%s] | user rows iteration failed in Storage.ListUsers() function | Error: %v", traceID, err)
		return nil, remoteFault("Failed to load users, try again later.")
	}
	return users, nil
}

func (mySql *MySQLStorage) DeleteUser(ctx context.Context, id string) (int64, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	// transactions, sessions and accounts go with the user via ON DELETE CASCADE
	res, err := mySql.db.ExecContext(ctx, "DELETE FROM user WHERE id = ?;", id)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to delete user in Storage.DeleteUser() function | Error: %v", traceID, err)
		return 0, remoteFault("Failed to delete user, try again later.")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to check affected rows in Storage.DeleteUser() function | Error: %v", traceID, err)
		return 0, remoteFault("Failed to delete user, try again later.")
	}
	return rows, nil
}

func (mySql *MySQLStorage) CountUsersByRole(ctx context.Context, role string) (int, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	var count int
	err := mySql.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM user WHERE role = ?;", role).Scan(&count)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to count users in Storage.CountUsersByRole() function | Error: %v", traceID, err)
		return 0, remoteFault("Failed to count users, try again later.")
	}
	return count, nil
}

// --- SESSIONS --- //

func (mySql *MySQLStorage) SaveSession(ctx context.Context, session auth.Session) error {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "INSERT INTO session (id, token, created_at, expire_at, user_id) VALUES (?, ?, ?, ?, ?);"
	_, err := mySql.db.ExecContext(ctx, query, session.ID, session.Token, session.CreatedAt, session.ExpireAt, session.UserID)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to save session in Storage.SaveSession() function | Error: %v", traceID, err)
		return remoteFault("Failed to create session, try again later.")
	}
	return nil
}

func (mySql *MySQLStorage) GetSessionByToken(ctx context.Context, token string) (auth.Session, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "SELECT id, token, created_at, expire_at, user_id FROM session WHERE token = ?;"
	var dbS dbSession

	err := mySql.db.QueryRowContext(ctx, query, token).Scan(
		&dbS.ID,
		&dbS.Token,
		&dbS.CreatedAt,
		&dbS.ExpireAt,
		&dbS.UserID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.Session{}, appErrors.ErrorResponse{
				Code:    appErrors.ErrNotFound,
				Message: "Session does not exist.",
			}
		}
		logging.Logger.Errorf("[TraceID=%s] | failed to get session in Storage.GetSessionByToken() function | Error: %v", traceID, err)
		return auth.Session{}, remoteFault("Failed to check session, try again later.")
	}

	return auth.Session{
		ID:        dbS.ID,
		Token:     dbS.Token,
		CreatedAt: dbS.CreatedAt,
		ExpireAt:  dbS.ExpireAt,
		UserID:    dbS.UserID,
	}, nil
}

func (mySql *MySQLStorage) DeleteSession(ctx context.Context, token string) error {
	traceID := contextutil.TraceIDFromContext(ctx)

	if _, err := mySql.db.ExecContext(ctx, "DELETE FROM session WHERE token = ?;", token); err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to delete session in Storage.DeleteSession() function | Error: %v", traceID, err)
		return remoteFault("Failed to logout, try again later.")
	}
	return nil
}

// --- TRANSACTIONS --- //

func (mySql *MySQLStorage) SaveTransaction(ctx context.Context, t finance.Transaction) error {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "INSERT INTO `transaction` (id, user_id, type, category_id, account_id, amount, note, date, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);"
	_, err := mySql.db.ExecContext(ctx, query,
		t.ID, t.UserID, t.Type, t.CategoryID, nullableID(t.AccountID),
		t.Amount.StringFixed(2), t.Note, t.Date.Format(finance.DateLayout), t.CreatedAt, t.UpdatedAt)
	if err != nil {
		if isDuplicateKey(err) {
			return appErrors.ErrorResponse{
				Code:    appErrors.ErrConflict,
				Message: "The transaction already exists.",
			}
		}
		logging.Logger.Errorf("[TraceID=%s] | failed to save transaction in Storage.SaveTransaction() function | Error: %v", traceID, err)
		return remoteFault("Failed to save the transaction, try again later.")
	}
	return nil
}

func (mySql *MySQLStorage) UpdateTransaction(ctx context.Context, t finance.Transaction) (int64, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "UPDATE `transaction` SET type = ?, category_id = ?, account_id = ?, amount = ?, note = ?, date = ?, updated_at = ? WHERE id = ?;"
	res, err := mySql.db.ExecContext(ctx, query,
		t.Type, t.CategoryID, nullableID(t.AccountID),
		t.Amount.StringFixed(2), t.Note, t.Date.Format(finance.DateLayout), t.UpdatedAt, t.ID)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to update transaction in Storage.UpdateTransaction() function | Error: %v", traceID, err)
		return 0, remoteFault("Failed to update the transaction, try again later.")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to check affected rows in Storage.UpdateTransaction() function | Error: %v", traceID, err)
		return 0, remoteFault("Failed to update the transaction, try again later.")
	}
	return rows, nil
}

func (mySql *MySQLStorage) DeleteTransaction(ctx context.Context, id string, ownerID string) (int64, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "DELETE FROM `transaction` WHERE id = ?;"
	args := []interface{}{id}
	if ownerID != "" {
		query = "DELETE FROM `transaction` WHERE id = ? AND user_id = ?;"
		args = append(args, ownerID)
	}
	res, err := mySql.db.ExecContext(ctx, query, args...)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to delete transaction in Storage.DeleteTransaction() function | Error: %v", traceID, err)
		return 0, remoteFault("Failed to delete the transaction, try again later.")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to check affected rows in Storage.DeleteTransaction() function | Error: %v", traceID, err)
		return 0, remoteFault("Failed to delete the transaction, try again later.")
	}
	return rows, nil
}

func (mySql *MySQLStorage) GetTransactionByID(ctx context.Context, id string) (finance.Transaction, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "SELECT id, user_id, type, category_id, account_id, amount, note, date, created_at, updated_at FROM `transaction` WHERE id = ?;"
	var dbT dbTransaction
	err := mySql.db.QueryRowContext(ctx, query, id).Scan(
		&dbT.ID, &dbT.UserID, &dbT.Type, &dbT.CategoryID, &dbT.AccountID,
		&dbT.Amount, &dbT.Note, &dbT.Date, &dbT.CreatedAt, &dbT.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return finance.Transaction{}, appErrors.ErrorResponse{
				Code:    appErrors.ErrNotFound,
				Message: "Transaction does not exist.",
			}
		}
		logging.Logger.Errorf("[TraceID=%s] | failed to get transaction in Storage.GetTransactionByID() function | Error: %v", traceID, err)
		return finance.Transaction{}, remoteFault("Failed to load the transaction, try again later.")
	}
	return toTransaction(dbT)
}

func (mySql *MySQLStorage) ListTransactions(ctx context.Context, ownerID string) ([]finance.TransactionWithOwner, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "SELECT t.id, t.user_id, t.type, t.category_id, t.account_id, t.amount, t.note, t.date, t.created_at, t.updated_at, u.full_name, u.email" +
		" FROM `transaction` t JOIN user u ON u.id = t.user_id"
	args := []interface{}{}
	if ownerID != "" {
		query += " WHERE t.user_id = ?"
		args = append(args, ownerID)
	}
	query += " ORDER BY t.date DESC, t.id DESC;"

	rows, err := mySql.db.QueryContext(ctx, query, args...)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to list transactions in Storage.ListTransactions() function | Error: %v", traceID, err)
		return nil, remoteFault("Failed to load transactions, try again later.")
	}
	defer rows.Close()

	var transactions []finance.TransactionWithOwner
	for rows.Next() {
		var dbT dbTransaction
		if err := rows.Scan(
			&dbT.ID, &dbT.UserID, &dbT.Type, &dbT.CategoryID, &dbT.AccountID,
			&dbT.Amount, &dbT.Note, &dbT.Date, &dbT.CreatedAt, &dbT.UpdatedAt,
			&dbT.OwnerName, &dbT.OwnerEmail,
		); err != nil {
			logging.Logger.Errorf("[TraceID=%s] | failed to scan transaction row in Storage.ListTransactions() function | Error: %v", traceID, err)
			return nil, remoteFault("Failed to load transactions, try again later.")
		}
		t, err := toTransaction(dbT)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, finance.TransactionWithOwner{
			Transaction: t,
			OwnerName:   dbT.OwnerName,
			OwnerEmail:  dbT.OwnerEmail,
		})
	}
	if err := rows.Err(); err != nil {
		logging.Logger.Errorf("[TraceID=%s] | transaction rows iteration failed in Storage.ListTransactions() function | Error: %v", traceID, err)
		return nil, remoteFault("Failed to load transactions, try again later.")
	}
	return transactions, nil
}

// --- REFERENCE DATA --- //

func (mySql *MySQLStorage) ListCategories(ctx context.Context) ([]finance.Category, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	rows, err := mySql.db.QueryContext(ctx, "SELECT id, name, color, icon, type FROM category ORDER BY type, name;")
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to list categories in Storage.ListCategories() function | Error: %v", traceID, err)
		return nil, remoteFault("Failed to load categories, try again later.")
	}
	defer rows.Close()

	var categories []finance.Category
	for rows.Next() {
		var c finance.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.Icon, &c.Type); err != nil {
			logging.Logger.Errorf("[TraceID=%s] | failed to scan category row in Storage.ListCategories() function | Error: %v", traceID, err)
			return nil, remoteFault("Failed to load categories, try again later.")
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		logging.Logger.Errorf("[TraceID=%s] | category rows iteration failed in Storage.ListCategories() function | Error: %v", traceID, err)
		return nil, remoteFault("Failed to load categories, try again later.")
	}
	return categories, nil
}

func (mySql *MySQLStorage) GetCategoryByID(ctx context.Context, id string) (finance.Category, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	var c finance.Category
	err := mySql.db.QueryRowContext(ctx, "SELECT id, name, color, icon, type FROM category WHERE id = ?;", id).
		Scan(&c.ID, &c.Name, &c.Color, &c.Icon, &c.Type)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return finance.Category{}, appErrors.ErrorResponse{
				Code:    appErrors.ErrNotFound,
				Message: "Category does not exist.",
			}
		}
		logging.Logger.Errorf("[TraceID=%s] | failed to get category in Storage.GetCategoryByID() function | Error: %v", traceID, err)
		return finance.Category{}, remoteFault("Failed to load the category, try again later.")
	}
	return c, nil
}

func (mySql *MySQLStorage) ListAccounts(ctx context.Context, ownerID string) ([]finance.Account, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "SELECT id, user_id, name, kind, balance, currency FROM account"
	args := []interface{}{}
	if ownerID != "" {
		query += " WHERE user_id = ?"
		args = append(args, ownerID)
	}
	query += " ORDER BY name;"

	rows, err := mySql.db.QueryContext(ctx, query, args...)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to list accounts in Storage.ListAccounts() function | Error: %v", traceID, err)
		return nil, remoteFault("Failed to load accounts, try again later.")
	}
	defer rows.Close()

	var accounts []finance.Account
	for rows.Next() {
		var dbA dbAccount
		if err := rows.Scan(&dbA.ID, &dbA.UserID, &dbA.Name, &dbA.Kind, &dbA.Balance, &dbA.Currency); err != nil {
			logging.Logger.Errorf("[TraceID=%s] | failed to scan account row in Storage.ListAccounts() function | Error: %v", traceID, err)
			return nil, remoteFault("Failed to load accounts, try again later.")
		}
		account, err := toAccount(dbA)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		logging.Logger.Errorf("[TraceID=%s] | account rows iteration failed in Storage.ListAccounts() function | Error: %v", traceID, err)
		return nil, remoteFault("Failed to load accounts, try again later.")
	}
	return accounts, nil
}

func (mySql *MySQLStorage) GetAccountByID(ctx context.Context, id string) (finance.Account, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	var dbA dbAccount
	err := mySql.db.QueryRowContext(ctx, "SELECT id, user_id, name, kind, balance, currency FROM account WHERE id = ?;", id).
		Scan(&dbA.ID, &dbA.UserID, &dbA.Name, &dbA.Kind, &dbA.Balance, &dbA.Currency)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return finance.Account{}, appErrors.ErrorResponse{
				Code:    appErrors.ErrNotFound,
				Message: "Account does not exist.",
			}
		}
		logging.Logger.Errorf("[TraceID=%s] | failed to get account in Storage.GetAccountByID() function | Error: %v", traceID, err)
		return finance.Account{}, remoteFault("Failed to load the account, try again later.")
	}
	return toAccount(dbA)
}

// --- ROW MAPPING --- //

func nullableID(id string) sql.NullString {
	return sql.NullString{String: id, Valid: id != ""}
}

func toTransaction(dbT dbTransaction) (finance.Transaction, error) {
	amount, err := decimal.NewFromString(dbT.Amount)
	if err != nil {
		return finance.Transaction{}, remoteFault("Stored amount is unreadable.")
	}
	return finance.Transaction{
		ID:         dbT.ID,
		UserID:     dbT.UserID,
		Type:       dbT.Type,
		CategoryID: dbT.CategoryID,
		AccountID:  dbT.AccountID.String,
		Amount:     amount,
		Note:       dbT.Note,
		Date:       dbT.Date,
		CreatedAt:  dbT.CreatedAt,
		UpdatedAt:  dbT.UpdatedAt,
	}, nil
}

func toAccount(dbA dbAccount) (finance.Account, error) {
	balance, err := decimal.NewFromString(dbA.Balance)
	if err != nil {
		return finance.Account{}, remoteFault("Stored balance is unreadable.")
	}
	return finance.Account{
		ID:       dbA.ID,
		UserID:   dbA.UserID,
		Name:     dbA.Name,
		Kind:     dbA.Kind,
		Balance:  balance,
		Currency: dbA.Currency,
	}, nil
}
