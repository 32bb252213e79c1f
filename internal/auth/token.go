package auth

import (
	"time"

	appErrors "github.com/fatali-fataliyev/finance_tracker/customErrors"
	"github.com/golang-jwt/jwt/v5"
)

const TokenTTL = 24 * time.Hour

// TokenManager issues and verifies the signed identity tokens the role gate
// trusts. The token alone is not enough to act: the matching session row must
// still exist, so a logout wins over an unexpired token.
type TokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

func (tm *TokenManager) Issue(identity Identity, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":   identity.UserID,
		"name":  identity.FullName,
		"email": identity.Email,
		"role":  identity.Role,
		"exp":   now.Add(TokenTTL).Unix(),
	})
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to issue identity token, try again later.",
		}
	}
	return signed, nil
}

func (tm *TokenManager) Verify(tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return tm.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrAuth,
			Message: "Invalid or expired token, please login again.",
		}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrAuth,
			Message: "Invalid token claims, please login again.",
		}
	}
	uid, _ := claims["uid"].(string)
	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if uid == "" || (role != RoleUser && role != RoleAdmin) {
		return Identity{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrAuth,
			Message: "Invalid token claims, please login again.",
		}
	}
	return Identity{UserID: uid, FullName: name, Email: email, Role: role}, nil
}
