package auth

import (
	"errors"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Settings controls how viewer tokens are signed and checked.
type Settings struct {
	Secret   []byte
	Issuer   string
	Audience string
}

var (
	mu       sync.RWMutex
	settings = Settings{
		Secret:   []byte(getEnv("JWT_SECRET", "development-insecure-secret-change-me")),
		Issuer:   getEnv("JWT_ISSUER", "board-view-api"),
		Audience: getEnv("JWT_AUDIENCE", "board-view-clients"),
	}
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Configure replaces the signing settings, typically from config.Load.
func Configure(s Settings) {
	mu.Lock()
	defer mu.Unlock()
	settings = s
}

func current() Settings {
	mu.RLock()
	defer mu.RUnlock()
	return settings
}

// Claims identifies an authenticated viewer of a board page
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateToken generates a JWT token for the given viewer
func GenerateToken(userID, username string) (string, error) {
	s := current()
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.Issuer,
			Audience:  jwt.ClaimStrings{s.Audience},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

// ValidateToken validates a JWT token and returns the claims
func ValidateToken(tokenString string) (*Claims, error) {
	s := current()
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.Secret, nil
	}, jwt.WithIssuer(s.Issuer), jwt.WithAudience(s.Audience))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID == "" {
		return nil, errors.New("token has no user id")
	}
	return claims, nil
}
