package auth

import (
	"errors"
	"time"

	"github.com/fungi-kb/apiserver/config"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for every token verification failure: bad
// signature, malformed input, wrong token class, or expiry. Collapsing them
// keeps the API from leaking which check failed.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the decoded subject of a verified access token.
type Identity struct {
	UserID int
	Name   string
	Role   string
}

type accessClaims struct {
	jwt.RegisteredClaims
	UserID int    `json:"userId"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

type refreshClaims struct {
	jwt.RegisteredClaims
	UserID int `json:"userId"`
}

// TokenManager issues and verifies the two token classes. Access and refresh
// tokens are signed with distinct secrets so that neither can be forged from
// a leak of the other.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenManager(cfg config.AuthConfig) *TokenManager {
	accessTTL := cfg.AccessTokenTTL
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	refreshTTL := cfg.RefreshTokenTTL
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenManager{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssueAccess signs a short-lived token carrying the user's identity and role.
func (m *TokenManager) IssueAccess(userID int, name, role string) (string, error) {
	now := time.Now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
		UserID: userID,
		Name:   name,
		Role:   role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.accessSecret)
}

// IssueRefresh signs a long-lived token carrying only the user id. It is
// usable solely to mint a new access token.
func (m *TokenManager) IssueRefresh(userID int) (string, error) {
	now := time.Now()
	claims := refreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.refreshTTL)),
		},
		UserID: userID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.refreshSecret)
}

// VerifyAccess validates an access token and returns the identity it carries.
func (m *TokenManager) VerifyAccess(tokenString string) (Identity, error) {
	claims := accessClaims{}
	if err := m.parse(tokenString, &claims, m.accessSecret); err != nil {
		return Identity{}, ErrInvalidToken
	}
	if claims.UserID < 1 {
		return Identity{}, ErrInvalidToken
	}
	return Identity{
		UserID: claims.UserID,
		Name:   claims.Name,
		Role:   claims.Role,
	}, nil
}

// VerifyRefresh validates a refresh token and returns the user id it carries.
func (m *TokenManager) VerifyRefresh(tokenString string) (int, error) {
	claims := refreshClaims{}
	if err := m.parse(tokenString, &claims, m.refreshSecret); err != nil {
		return 0, ErrInvalidToken
	}
	if claims.UserID < 1 {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}

func (m *TokenManager) parse(tokenString string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return secret, nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
