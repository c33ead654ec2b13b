package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleMember = "member"
	RoleGuest  = "guest"
	RoleAdmin  = "admin"
)

type Claims struct {
	Sub   int64  `json:"sub"`
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func newToken(sub int64, name, phone, role, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Sub:   sub,
		Name:  name,
		Phone: phone,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Audience:  []string{"shoecare-api"},
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// NewMemberToken mints an access token for an authenticated member.
func NewMemberToken(memberID int64, name, phone, secret string, ttl time.Duration) (string, error) {
	return newToken(memberID, name, phone, RoleMember, secret, ttl)
}

// NewGuestFlowToken mints a short-lived token scoped to a single guest
// request flow. A fresh token is issued every time the flow is entered, so
// an abandoned flow simply expires.
func NewGuestFlowToken(secret string, ttl time.Duration) (string, error) {
	return newToken(0, "", "", RoleGuest, secret, ttl)
}

// NewAdminToken mints a back-office session token.
func NewAdminToken(secret string, ttl time.Duration) (string, error) {
	return newToken(0, "", "", RoleAdmin, secret, ttl)
}

func Parse(tokenString, secret string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := tok.Claims.(*Claims); ok && tok.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
