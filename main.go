package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/0xcafe-io/iz"
	"github.com/fatali-fataliyev/finance_tracker/api"
	"github.com/fatali-fataliyev/finance_tracker/internal/auth"
	"github.com/fatali-fataliyev/finance_tracker/internal/finance"
	"github.com/fatali-fataliyev/finance_tracker/internal/storage"
	"github.com/fatali-fataliyev/finance_tracker/logging"
	"github.com/rs/cors"
)

var ft finance.FinanceTracker // Global

var corsConf = cors.New(cors.Options{
	AllowedOrigins:   []string{"*"},
	AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	AllowedHeaders:   []string{"Authorization", "Content-Type"},
	AllowCredentials: true,
})

// resolveSecret returns the configured value, or the development fallback when
// the deployment is not production. A production deployment must not start on
// a guessable default, same as missing DB configuration.
func resolveSecret(name, value, devFallback string, production bool) (string, error) {
	if value != "" {
		return value, nil
	}
	if production {
		return "", fmt.Errorf("%s environment variable is required in production", name)
	}
	return devFallback, nil
}

func main() {
	if err := logging.Init("debug"); err != nil {
		fmt.Println("failed to initialize logger: %w", err)
		return
	}

	logging.Logger.Info("application starting...")

	db, err := storage.Init()
	if err != nil {
		logging.Logger.Errorf("failed to initialize database: %v", err)
		return
	}

	storageInstance := storage.NewMySQLStorage(db)
	if storageInstance == nil {
		logging.Logger.Errorf("failed to create instance of database: %v", err)
		return
	}

	production := strings.ToLower(os.Getenv("APP_ENV")) == "production"

	jwtSecret, err := resolveSecret("JWT_SECRET", os.Getenv("JWT_SECRET"), "dev-secret-change-me", production)
	if err != nil {
		logging.Logger.Errorf("configuration error: %v", err)
		return
	}
	if os.Getenv("JWT_SECRET") == "" {
		logging.Logger.Warn("JWT_SECRET not set, using a development-only secret")
	}
	tokens := auth.NewTokenManager(jwtSecret)

	ft = finance.NewFinanceTracker(storageInstance, tokens)

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@example.com"
	}
	adminPassword, err := resolveSecret("ADMIN_PASSWORD", os.Getenv("ADMIN_PASSWORD"), "admin123", production)
	if err != nil {
		logging.Logger.Errorf("configuration error: %v", err)
		return
	}
	if os.Getenv("ADMIN_PASSWORD") == "" {
		logging.Logger.Warn("ADMIN_PASSWORD not set, using a development-only password")
	}
	if err := storage.EnsureAdminUser(context.Background(), storageInstance, adminEmail, adminPassword); err != nil {
		logging.Logger.Errorf("failed to seed admin user: %v", err)
		return
	}

	server := http.NewServeMux()
	api := api.NewApi(&ft)

	// USER ENDPOINTS.
	server.HandleFunc("POST /api/register", iz.Bind(api.SaveUserHandler))           // Create User
	server.HandleFunc("POST /api/login", iz.Bind(api.LoginUserHandler))             // Login User
	server.HandleFunc("GET /api/logout", iz.Bind(api.LogoutUserHandler))            // Logout User
	server.HandleFunc("GET /api/check-token", iz.Bind(api.CheckToken))              // Check User Token
	server.HandleFunc("GET /api/me", iz.Bind(api.GetAccountInfo))                   // Account Info
	server.HandleFunc("GET /api/users", iz.Bind(api.ListUsersHandler))              // List Users (admin)
	server.HandleFunc("DELETE /api/users/{id}", iz.Bind(api.DeleteUserHandler))     // Delete User (admin)

	// TRANSACTION ENDPOINTS.
	server.HandleFunc("POST /api/transaction", iz.Bind(api.SaveTransactionHandler))           // Create Transaction
	server.HandleFunc("GET /api/transaction", iz.Bind(api.ListTransactionsHandler))           // Get Transactions with filters
	server.HandleFunc("GET /api/transaction/{id}", iz.Bind(api.GetTransactionByIdHandler))    // Get Transaction by ID
	server.HandleFunc("PUT /api/transaction/{id}", iz.Bind(api.UpdateTransactionHandler))     // Update Transaction
	server.HandleFunc("DELETE /api/transaction/{id}", iz.Bind(api.DeleteTransactionHandler))  // Delete Transaction

	// REFERENCE DATA ENDPOINTS.
	server.HandleFunc("GET /api/categories", iz.Bind(api.ListCategoriesHandler)) // List Categories
	server.HandleFunc("GET /api/accounts", iz.Bind(api.ListAccountsHandler))     // List Accounts

	// STATISTICS ENDPOINTS.
	server.HandleFunc("GET /api/statistics/summary", iz.Bind(api.SummaryStatsHandler))   // Caller-scoped totals
	server.HandleFunc("GET /api/statistics/overview", iz.Bind(api.OverviewStatsHandler)) // Site-wide overview (admin)

	port := os.Getenv("APP_PORT")
	if port == "" {
		logging.Logger.Info("APP_PORT environment variable not set, using default port 8080")
		port = "8080"
	}
	fmt.Println("Starting server on port: ", port)
	handlerwithCors := corsConf.Handler(server)
	err = http.ListenAndServe(":"+port, handlerwithCors) // Start the server
	if err != nil {
		logging.Logger.Errorf("failed to start server: %v", err)
		return
	}
}
