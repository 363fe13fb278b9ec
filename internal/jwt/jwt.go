package jwt

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/blogi/blogi-api/internal/models"
)

// JWT issues and verifies signed, time-limited bearer tokens carrying
// the subject username and user id.
type JWT struct {
	secretKey string
	method    jwt.SigningMethod
	exp       time.Duration
}

// New creates a JWT instance. Unknown algorithm names fall back to HS256.
func New(secretKey, algorithm string, expiration time.Duration) *JWT {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		method = jwt.SigningMethodHS256
	}
	return &JWT{
		secretKey: secretKey,
		method:    method,
		exp:       expiration,
	}
}

// Generate creates a signed token for the given user.
func (j *JWT) Generate(ctx context.Context, username string, userID int64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": username,
		"id":  userID,
		"exp": now.Add(j.exp).Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(j.method, claims)
	return token.SignedString([]byte(j.secretKey))
}

// Resolve verifies a token string and returns the identity it carries.
// Expired, tampered, or malformed tokens yield an error.
func (j *JWT) Resolve(ctx context.Context, tokenString string) (*models.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	username, ok := claims["sub"].(string)
	if !ok || username == "" {
		return nil, errors.New("subject not found in token")
	}
	id, ok := claims["id"].(float64)
	if !ok {
		return nil, errors.New("user id not found in token")
	}

	return &models.Identity{ID: int64(id), Username: username}, nil
}

// GetTokenFromRequest extracts the token string from the Authorization header
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header missing")
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}
