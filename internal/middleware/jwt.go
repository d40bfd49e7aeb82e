package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the session cookie the frontend relies on.
const CookieName = "token"

const userIDKey = "user_id"

var ErrInvalidToken = errors.New("invalid or expired token")

// RevocationChecker is consulted on every authenticated request so a
// logged-out token stops working before its expiry.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type JWTConfig struct {
	Secret  string
	Revoked RevocationChecker
}

type Claims struct {
	jwt.RegisteredClaims
}

// GenerateToken mints a signed session token for userID. The returned
// jti identifies the session for later revocation.
func GenerateToken(userID, secret string, ttl time.Duration) (string, string, error) {
	now := time.Now()
	jti := uuid.NewString()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, jti, nil
}

// ParseToken verifies signature and expiry and returns the claims.
func ParseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// NewJWTAuth rejects requests without a valid, non-revoked session.
func NewJWTAuth(cfg *JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := authenticate(c, cfg)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			c.Abort()
			return
		}

		c.Set(userIDKey, claims.Subject)
		c.Next()
	}
}

// NewOptionalJWTAuth resolves the viewer when a valid session is
// present and lets anonymous requests through untouched. The feed uses
// it to decide whether isFollowing can be computed.
func NewOptionalJWTAuth(cfg *JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := authenticate(c, cfg); err == nil {
			c.Set(userIDKey, claims.Subject)
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, cfg *JWTConfig) (*Claims, error) {
	tokenString := extractToken(c)
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	claims, err := ParseToken(tokenString, cfg.Secret)
	if err != nil {
		return nil, err
	}

	if cfg.Revoked != nil && claims.ID != "" {
		revoked, err := cfg.Revoked.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, ErrInvalidToken
		}
	}

	return claims, nil
}

// extractToken prefers the session cookie; a Bearer header is accepted
// for non-browser clients.
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// GetUserID returns the authenticated user's id, or "" for anonymous
// requests.
func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// SetAuthCookie attaches the session cookie with the hardening flags
// the frontend expects.
func SetAuthCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CookieName, token, int(ttl.Seconds()), "/", "", secure, true)
}

// ClearAuthCookie expires the session cookie with the same options it
// was created with, which is what makes browsers actually drop it.
func ClearAuthCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CookieName, "", -1, "/", "", secure, true)
}
