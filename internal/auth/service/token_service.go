package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/mypunksoft/auth/internal/auth/service TokenGenerator

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	autherror "github.com/mypunksoft/auth/internal/errors"
)

type TokenGenerator interface {
	Issue(userID int) (string, error)
	Verify(tokenString string) (int, error)
	Expiry() time.Duration
}

// TokenService mints and validates the stateless signed session token carried
// in the jwt cookie. Logout is cookie deletion only; issued tokens stay valid
// until their natural expiry.
type TokenService struct {
	secret string
	expiry time.Duration
}

type SessionClaims struct {
	jwt.RegisteredClaims
	UserID int `json:"userId"`
}

func NewTokenService(secret string, expiryMinutes int) *TokenService {
	return &TokenService{
		secret: secret,
		expiry: time.Duration(expiryMinutes) * time.Minute,
	}
}

func (ts *TokenService) Issue(userID int) (string, error) {
	now := time.Now()

	claims := SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return token, nil
}

// Verify parses and validates a session token and returns the subject id.
// Expiry and signature failures are distinguished for server-side branching
// only; handlers map both to the same response.
func (ts *TokenService) Verify(tokenString string) (int, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, autherror.ErrSessionExpired
		}
		return 0, autherror.ErrInvalidSession
	}

	if !token.Valid {
		return 0, autherror.ErrInvalidSession
	}

	return claims.UserID, nil
}

func (ts *TokenService) Expiry() time.Duration {
	return ts.expiry
}
