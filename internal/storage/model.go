package storage

import (
	"database/sql"
	"time"
)

type dbSession struct {
	ID        string
	Token     string
	CreatedAt time.Time
	ExpireAt  time.Time
	UserID    string
}

type dbTransaction struct {
	ID         string
	UserID     string
	Type       string
	CategoryID string
	AccountID  sql.NullString
	Amount     string // DECIMAL(18,2) comes back as its exact text
	Note       string
	Date       time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	OwnerName  string
	OwnerEmail string
}

type dbAccount struct {
	ID       string
	UserID   string
	Name     string
	Kind     string
	Balance  string
	Currency string
}
