// internal/utils/jwt.go
package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Token scopes. Password-reset and email-verification tokens are signed
// with their own secrets so a leaked token of one scope cannot be replayed
// in another.
const (
	ScopeAuth         = "auth"
	ScopeResetPass    = "reset_password"
	ScopeVerification = "verification"
)

type AuthClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	UserType string `json:"usertype"`
	Scope    string `json:"scope"`
	jwt.RegisteredClaims
}

var (
	authSecret         = []byte("your-secret-key-change-in-production")
	resetSecret        = []byte("reset-secret-change-in-production")
	verificationSecret = []byte("verify-secret-change-in-production")
)

func SetTokenSecrets(auth, reset, verification string) {
	authSecret = []byte(auth)
	resetSecret = []byte(reset)
	verificationSecret = []byte(verification)
}

func secretForScope(scope string) ([]byte, error) {
	switch scope {
	case ScopeAuth:
		return authSecret, nil
	case ScopeResetPass:
		return resetSecret, nil
	case ScopeVerification:
		return verificationSecret, nil
	}
	return nil, errors.New("unknown token scope")
}

func GenerateToken(userID uint, username, userType, scope string, ttlSeconds int) (string, error) {
	secret, err := secretForScope(scope)
	if err != nil {
		return "", err
	}

	claims := AuthClaims{
		UserID:   userID,
		Username: username,
		UserType: userType,
		Scope:    scope,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(ttlSeconds) * time.Second)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "ordering-goods",
			Subject:   strconv.FormatUint(uint64(userID), 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ValidateToken(tokenString, scope string) (*AuthClaims, error) {
	secret, err := secretForScope(scope)
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Scope != scope {
		return nil, errors.New("token scope mismatch")
	}

	return claims, nil
}
