package auth

// The role gate is the single place a role attribute turns into permissions.
// Handlers and dashboards consume the Access it returns; the service layer
// re-checks the same decisions, since the UI is not a trust boundary.

type Dashboard string

const (
	UserDashboard  Dashboard = "user"
	AdminDashboard Dashboard = "admin"
)

// Scope narrows transaction queries to the caller's own rows or opens them up.
type Scope string

const (
	ScopeMine Scope = "mine"
	ScopeAll  Scope = "all"
)

type Operation string

const (
	OpListTransactions  Operation = "list_transactions"
	OpCreateTransaction Operation = "create_transaction"
	OpUpdateTransaction Operation = "update_transaction"
	OpDeleteTransaction Operation = "delete_transaction"
	OpListUsers         Operation = "list_users"
	OpDeleteUser        Operation = "delete_user"
	OpOverviewStats     Operation = "overview_stats"
)

type Access struct {
	Dashboard  Dashboard
	Scope      Scope
	AllowedOps map[Operation]bool
}

func (a Access) Allows(op Operation) bool {
	return a.AllowedOps[op]
}

func Decide(identity Identity) Access {
	if identity.IsAdmin() {
		return Access{
			Dashboard: AdminDashboard,
			Scope:     ScopeAll,
			AllowedOps: map[Operation]bool{
				OpListTransactions:  true,
				OpCreateTransaction: true,
				OpUpdateTransaction: true,
				OpDeleteTransaction: true,
				OpListUsers:         true,
				OpDeleteUser:        true,
				OpOverviewStats:     true,
			},
		}
	}
	return Access{
		Dashboard: UserDashboard,
		Scope:     ScopeMine,
		AllowedOps: map[Operation]bool{
			OpListTransactions:  true,
			OpCreateTransaction: true,
			OpUpdateTransaction: true,
			OpDeleteTransaction: true,
		},
	}
}
