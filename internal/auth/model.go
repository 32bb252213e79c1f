package auth

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	appErrors "github.com/fatali-fataliyev/finance_tracker/customErrors"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	MAX_LENGTH_FULLNAME = 255
	MAX_LENGTH_EMAIL    = 255
	MAX_PASSWORD_LENGTH = 72
	MIN_PASSWORD_LENGTH = 6
)

// User is the persisted identity record. Role is either RoleUser or
// RoleAdmin; admin accounts are seeded by migration, never registered.
type User struct {
	ID             string
	FullName       string
	Email          string
	PasswordHashed string
	Role           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type NewUser struct {
	FullName      string
	Email         string
	PasswordPlain string
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9](\.?[a-zA-Z0-9_%+-])*@[a-zA-Z0-9-]+(\.[a-zA-Z0-9-]+)*\.[a-zA-Z]{2,}$`)

func (newUser NewUser) ValidateUserFields() error {
	if strings.TrimSpace(newUser.FullName) == "" {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Full name cannot be empty!",
		}
	}
	if len(newUser.FullName) > MAX_LENGTH_FULLNAME {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Full name so long, maximum length is %d", MAX_LENGTH_FULLNAME),
		}
	}
	if newUser.Email == "" {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Email cannot be empty!",
		}
	}
	if !emailRegex.MatchString(newUser.Email) {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Invalid email format, example valid email: john.doe@gmail.com",
		}
	}
	if len(newUser.Email) > MAX_LENGTH_EMAIL {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Email so long, maximum length is %d", MAX_LENGTH_EMAIL),
		}
	}
	if newUser.PasswordPlain == "" {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Password cannot be empty!",
		}
	}
	if len(newUser.PasswordPlain) < MIN_PASSWORD_LENGTH {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Password so short, minimum length is %d", MIN_PASSWORD_LENGTH),
		}
	}
	if len(newUser.PasswordPlain) > MAX_PASSWORD_LENGTH {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Password so long, maximum length is %d", MAX_PASSWORD_LENGTH),
		}
	}
	return nil
}

// Session is the revocable server-side half of a login: the signed token
// carries the identity, the session row decides whether it is still welcome.
type Session struct {
	ID        string
	Token     string
	CreatedAt time.Time
	ExpireAt  time.Time
	UserID    string
}

type UserCredentialsPure struct {
	Email         string
	PasswordPlain string
}

// Identity is the verified caller attached to every data-access call.
type Identity struct {
	UserID   string
	FullName string
	Email    string
	Role     string
}

func (id Identity) IsAdmin() bool {
	return id.Role == RoleAdmin
}
