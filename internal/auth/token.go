package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid_token")

// Claims is the token contract shared by the REST middleware and the
// realtime gateway.
type Claims struct {
	UserID uint
	Role   string
	Expiry time.Time
	JTI    string
}

type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

func (m *TokenManager) Sign(userID uint, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  float64(userID),
		"role": role,
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  now.Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses and validates a bearer token. Expired, malformed or
// wrongly-signed tokens all come back as ErrInvalidToken.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, ok := mapClaims["sub"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}
	role, _ := mapClaims["role"].(string)
	jti, _ := mapClaims["jti"].(string)

	exp, _ := mapClaims["exp"].(float64)
	expiry := time.Unix(int64(exp), 0)

	return &Claims{
		UserID: uint(sub),
		Role:   role,
		Expiry: expiry,
		JTI:    jti,
	}, nil
}
