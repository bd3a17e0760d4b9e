package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/paperstack/paperstack/internal/config"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 7 * 24 * time.Hour

type jwtAuth struct {
	secret   []byte
	tokenTTL time.Duration
	cost     int
}

// NewJWTAuth signs HS256 tokens with the configured secret and hashes
// passwords with bcrypt
func NewJWTAuth(cfg *config.Configuration) *jwtAuth {
	ttl := cfg.Auth.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &jwtAuth{
		secret:   []byte(cfg.Auth.Secret),
		tokenTTL: ttl,
		cost:     bcrypt.DefaultCost,
	}
}

func (a *jwtAuth) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to hash password").
			Mark(ierr.ErrSystem)
	}
	return string(hashed), nil
}

func (a *jwtAuth) ComparePassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ierr.NewError("invalid password").
			WithHint("Invalid email or password").
			Mark(ierr.ErrUnauthorized)
	}
	return nil
}

func (a *jwtAuth) GenerateToken(_ context.Context, userID, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     now.Add(a.tokenTTL).Unix(),
		"iat":     now.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to generate token").
			Mark(ierr.ErrSystem)
	}
	return signed, nil
}

func (a *jwtAuth) ValidateToken(_ context.Context, token string) (*Claims, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewError("unexpected signing method").
				WithHint(fmt.Sprintf("unexpected signing method: %v", token.Header["alg"])).
				Mark(ierr.ErrUnauthorized)
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid or expired token").
			Mark(ierr.ErrUnauthorized)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, ierr.NewError("invalid token claims").
			WithHint("Invalid token claims").
			Mark(ierr.ErrUnauthorized)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, ierr.NewError("token missing user ID").
			WithHint("Token missing user ID").
			Mark(ierr.ErrUnauthorized)
	}
	email, _ := claims["email"].(string)

	return &Claims{UserID: userID, Email: email}, nil
}
