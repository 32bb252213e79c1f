package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/0xcafe-io/iz"
	"github.com/fatali-fataliyev/finance_tracker/internal/auth"
	"github.com/fatali-fataliyev/finance_tracker/internal/contextutil"
	"github.com/fatali-fataliyev/finance_tracker/internal/dashboard"
	"github.com/fatali-fataliyev/finance_tracker/internal/finance"
	"github.com/fatali-fataliyev/finance_tracker/logging"
)

type Api struct {
	Service *finance.FinanceTracker
}

func NewApi(service *finance.FinanceTracker) *Api {
	return &Api{
		Service: service,
	}
}

// authorize resolves the Authorization header into a verified identity.
// A nil error means the third return value is a ready 401 response.
func (api *Api) authorize(r *iz.Request) (context.Context, auth.Identity, iz.Responder) {
	ctx := contextutil.WithTraceID(r.Context())

	token := r.Header.Get("Authorization")
	token = strings.TrimPrefix(token, "Bearer ")
	if token == "" {
		msg := "authorization failed: Authorization header is required."
		return ctx, auth.Identity{}, iz.Respond().Status(401).Text(msg)
	}
	identity, err := api.Service.CheckSession(ctx, token)
	if err != nil {
		msg := fmt.Sprintf("authorization failed: %s", err.Error())
		return ctx, auth.Identity{}, iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	return ctx, identity, nil
}

// --- USERS & SESSIONS --- //

func (api *Api) SaveUserHandler(r *iz.Request) iz.Responder {
	ctx := contextutil.WithTraceID(r.Context())

	var newUserReq SaveUserRequest
	if err := json.NewDecoder(r.Body).Decode(&newUserReq); err != nil {
		msg := fmt.Sprintf("invalid request body: %s", err.Error())
		return iz.Respond().Status(400).Text(msg)
	}

	newUser := auth.NewUser{
		FullName:      newUserReq.FullName,
		Email:         newUserReq.Email,
		PasswordPlain: newUserReq.Password,
	}

	token, err := api.Service.Register(ctx, newUser)
	if err != nil {
		msg := fmt.Sprintf("registration failed: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}

	resp := UserCreatedResponse{
		Message: "Registration Completed",
		Token:   token,
	}
	return iz.Respond().Status(201).JSON(resp)
}

func (api *Api) LoginUserHandler(r *iz.Request) iz.Responder {
	ctx := contextutil.WithTraceID(r.Context())

	var loginRequest UserLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginRequest); err != nil {
		return iz.Respond().Status(400).Text("invalid request body")
	}

	credentials := auth.UserCredentialsPure{
		Email:         loginRequest.Email,
		PasswordPlain: loginRequest.Password,
	}

	response := LoginResponse{}

	token, err := api.Service.GenerateSession(ctx, credentials)
	if err != nil {
		response.Message = err.Error()
		return iz.Respond().Status(httpStatusFromError(err)).JSON(response)
	}
	response.Message = "You've logged in successfully!"
	response.Token = token
	return iz.Respond().Status(200).JSON(response)
}

func (api *Api) LogoutUserHandler(r *iz.Request) iz.Responder {
	ctx, _, denied := api.authorize(r)
	if denied != nil {
		return denied
	}
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if err := api.Service.Logout(ctx, token); err != nil {
		msg := fmt.Sprintf("logout failed: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	return iz.Respond().Status(200).Text("Logout successful.")
}

func (api *Api) CheckToken(r *iz.Request) iz.Responder {
	_, identity, denied := api.authorize(r)
	if denied != nil {
		return denied
	}
	access := auth.Decide(identity)
	return iz.Respond().Status(200).JSON(map[string]string{
		"message":   "Token is valid.",
		"role":      identity.Role,
		"dashboard": string(access.Dashboard),
	})
}

func (api *Api) GetAccountInfo(r *iz.Request) iz.Responder {
	ctx, identity, denied := api.authorize(r)
	if denied != nil {
		return denied
	}
	user, err := api.Service.CurrentUser(ctx, identity)
	if err != nil {
		msg := fmt.Sprintf("failed to get account info: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	return iz.Respond().Status(200).JSON(UserToHttp(user))
}

func (api *Api) ListUsersHandler(r *iz.Request) iz.Responder {
	ctx, identity, denied := api.authorize(r)
	if denied != nil {
		return denied
	}
	users, err := api.Service.ListUsers(ctx, identity)
	if err != nil {
		logging.Logger.Errorf("Failed to list users request: %v", err)
		msg := fmt.Sprintf("failed to get users: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	usersForHttp := make([]UserItem, 0, len(users))
	for _, user := range users {
		usersForHttp = append(usersForHttp, UserToHttp(user))
	}
	return iz.Respond().Status(200).JSON(usersForHttp)
}

// DeleteUserHandler cascades to the user's transactions, so the explicit
// confirm parameter stands in for the client's confirmation dialog.
func (api *Api) DeleteUserHandler(r *iz.Request) iz.Responder {
	ctx, identity, denied := api.authorize(r)
	if denied != nil {
		return denied
	}
	if r.URL.Query().Get("confirm") != "true" {
		msg := "deleting a user also deletes all their transactions; repeat the request with confirm=true"
		return iz.Respond().Status(400).Text(msg)
	}
	userID := r.PathValue("id")
	if err := api.Service.DeleteUser(ctx, identity, userID); err != nil {
		msg := fmt.Sprintf("failed to delete user: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	return iz.Respond().Status(200).Text("user deleted successfully")
}

// --- TRANSACTIONS --- //

func (api *Api) SaveTransactionHandler(r *iz.Request) iz.Responder {
	ctx, identity, denied := api.authorize(r)
	if denied != nil {
		return denied
	}

	var payload TransactionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logging.Logger.Errorf("Failed to parse save transaction request: %v", err)
		msg := fmt.Sprintf("failed to parse save transaction request: %v", err)
		return iz.Respond().Status(400).Text(msg)
	}

	txn, err := api.Service.SaveTransaction(ctx, identity, finance.TransactionRequest{
		Type:       payload.Type,
		CategoryID: payload.CategoryID,
		AccountID:  payload.AccountID,
		Amount:     payload.Amount,
		Note:       payload.Note,
		Date:       payload.Date,
	})
	if err != nil {
		msg := fmt.Sprintf("failed to create transaction: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	return iz.Respond().Status(201).JSON(TransactionToHttp(finance.TransactionWithOwner{Transaction: txn}))
}

func (api *Api) ListTransactionsHandler(r *iz.Request) iz.Responder {
	ctx, identity, denied := api.authorize(r)
	if denied != nil {
		return denied
	}

	filter, scope, err := TransactionListParams(r.URL.Query())
	if err != nil {
		msg := fmt.Sprintf("invalid filter parameters: %s", err.Error())
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}

	transactions, err := api.Service.ListTransactions(ctx, identity, scope)
	if err != nil {
		logging.Logger.Errorf("Failed to get filtered transactions request: %v", err)
		msg := fmt.Sprintf("failed to get transactions: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}

	filtered := dashboard.ApplyFilter(transactions, filter)
	tsForHttp := make([]TransactionItem, 0, len(filtered))
	for _, t := range filtered {
		tsForHttp = append(tsForHttp, TransactionToHttp(t))
	}
	return iz.Respond().Status(200).JSON(tsForHttp)
}

func (api *Api) GetTransactionByIdHandler(r *iz.Request) iz.Responder {
	ctx, identity, denied := api.authorize(r)
	if denied != nil {
		return denied
	}

	tId := r.PathValue("id")
	t, err := api.Service.GetTransactionById(ctx, identity, tId)
	if err != nil {
		msg := fmt.Sprintf("failed to get transaction by ID: %s", err.Error())
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	return iz.Respond().Status(200).JSON(TransactionToHttp(finance.TransactionWithOwner{Transaction: t}))
}

func (api *Api) UpdateTransactionHandler(r *iz.Request) iz.Responder {
	ctx, identity, denied := api.authorize(r)
	if denied != nil {
		return denied
	}

	var payload TransactionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		msg := fmt.Sprintf("failed to parse update transaction request: %v", err)
		return iz.Respond().Status(400).Text(msg)
	}

	tId := r.PathValue("id")
	txn, err := api.Service.UpdateTransaction(ctx, identity, tId, finance.TransactionRequest{
		Type:       payload.Type,
		CategoryID: payload.CategoryID,
		AccountID:  payload.AccountID,
		Amount:     payload.Amount,
		Note:       payload.Note,
		Date:       payload.Date,
	})
	if err != nil {
		msg := fmt.Sprintf("failed to update transaction: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	return iz.Respond().Status(200).JSON(TransactionToHttp(finance.TransactionWithOwner{Transaction: txn}))
}

func (api *Api) DeleteTransactionHandler(r *iz.Request) iz.Responder {
	ctx, identity, denied := api.authorize(r)
	if denied != nil {
		return denied
	}
	if r.URL.Query().Get("confirm") != "true" {
		msg := "deleting a transaction is irreversible; repeat the request with confirm=true"
		return iz.Respond().Status(400).Text(msg)
	}

	tId := r.PathValue("id")
	if err := api.Service.DeleteTransaction(ctx, identity, tId); err != nil {
		logging.Logger.Errorf("Failed to delete transaction request: %v", err)
		msg := fmt.Sprintf("failed to delete transaction: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	return iz.Respond().Status(200).Text("transaction deleted successfully")
}

// --- REFERENCE DATA --- //

func (api *Api) ListCategoriesHandler(r *iz.Request) iz.Responder {
	ctx, _, denied := api.authorize(r)
	if denied != nil {
		return denied
	}
	categories, err := api.Service.ListCategories(ctx)
	if err != nil {
		msg := fmt.Sprintf("failed to get categories: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	categoriesForHttp := make([]CategoryItem, 0, len(categories))
	for _, c := range categories {
		categoriesForHttp = append(categoriesForHttp, CategoryItem{
			ID: c.ID, Name: c.Name, Color: c.Color, Icon: c.Icon, Type: c.Type,
		})
	}
	return iz.Respond().Status(200).JSON(categoriesForHttp)
}

func (api *Api) ListAccountsHandler(r *iz.Request) iz.Responder {
	ctx, identity, denied := api.authorize(r)
	if denied != nil {
		return denied
	}
	accounts, err := api.Service.ListAccounts(ctx, identity)
	if err != nil {
		msg := fmt.Sprintf("failed to get accounts: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	accountsForHttp := make([]AccountItem, 0, len(accounts))
	for _, a := range accounts {
		accountsForHttp = append(accountsForHttp, AccountItem{
			ID: a.ID, Name: a.Name, Kind: a.Kind, Balance: a.Balance.StringFixed(2), Currency: a.Currency,
		})
	}
	return iz.Respond().Status(200).JSON(accountsForHttp)
}

// --- STATISTICS --- //

// SummaryStatsHandler returns the caller-scoped dashboard cards: a user sees
// totals over their own transactions, an admin over all of them.
func (api *Api) SummaryStatsHandler(r *iz.Request) iz.Responder {
	ctx, identity, denied := api.authorize(r)
	if denied != nil {
		return denied
	}
	scope := auth.Decide(identity).Scope
	transactions, err := api.Service.ListTransactions(ctx, identity, scope)
	if err != nil {
		msg := fmt.Sprintf("failed to get transactions: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	return iz.Respond().Status(200).JSON(SummaryToHttp(dashboard.Aggregates(transactions)))
}

func (api *Api) OverviewStatsHandler(r *iz.Request) iz.Responder {
	ctx, identity, denied := api.authorize(r)
	if denied != nil {
		return denied
	}
	stats, err := api.Service.OverviewStats(ctx, identity)
	if err != nil {
		msg := fmt.Sprintf("failed to get overview: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	return iz.Respond().Status(200).JSON(OverviewResponse{
		TotalUsers:        stats.TotalUsers,
		TotalTransactions: stats.TotalTransactions,
		TotalIncome:       stats.TotalIncome.StringFixed(2),
		TotalExpenses:     stats.TotalExpenses.StringFixed(2),
	})
}
