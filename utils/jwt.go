package utils

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	redis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Yassin6up/somoo-sub001/database"
	"github.com/Yassin6up/somoo-sub001/models"
)

type contextKey string

const (
	UserIDKey    = contextKey("userID")
	UserRoleKey  = contextKey("userRole")
	AdminIDKey   = contextKey("adminID")
	RequestIDKey = contextKey("requestID")
)

// RedisClient is an optional revocation store for JWT IDs. Nil when
// REDIS_ADDR is not configured; revocation then falls back to the
// revoked_tokens table.
var RedisClient *redis.Client

func init() {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return
	}
	opts := &redis.Options{Addr: addr}
	if p := os.Getenv("REDIS_PASS"); p != "" {
		opts.Password = p
	}
	rc := redis.NewClient(opts)
	if err := rc.Ping(context.Background()).Err(); err != nil {
		log.Printf("[jwt] redis ping failed, falling back to DB revocation: %v", err)
		return
	}
	RedisClient = rc
}

// GenerateAccessToken issues a short-lived access token (15 minutes).
func GenerateAccessToken(subjectID uint, role string) (string, error) {
	return GenerateAccessTokenWithExpiry(subjectID, role, 15*time.Minute)
}

func GenerateAccessTokenWithExpiry(subjectID uint, role string, expiry time.Duration) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET is not set")
	}
	now := time.Now()
	jti, err := generateJTI(32)
	if err != nil {
		return "", err
	}
	claims := jwt.MapClaims{
		"id":   subjectID,
		"role": role,
		"exp":  now.Add(expiry).Unix(),
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"jti":  jti,
		"aud":  os.Getenv("JWT_AUD"),
		"iss":  os.Getenv("JWT_ISS"),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateRefreshToken creates a DB-backed refresh token and returns its
// opaque id.
func GenerateRefreshToken(userID uint) (string, error) {
	rt, err := models.NewRefreshToken(userID, 7)
	if err != nil {
		return "", err
	}
	if database.DB == nil {
		return "", errors.New("database not initialized")
	}
	if err := database.DB.Create(rt).Error; err != nil {
		return "", err
	}
	return rt.ID, nil
}

// ValidateAccessToken parses and validates an access token: HS256 only,
// registered claims, then the jti revocation store.
func ValidateAccessToken(tokenStr string) (jwt.MapClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	token, err := parser.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("token expired")
		}
		return nil, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	if aud := os.Getenv("JWT_AUD"); aud != "" {
		if got, _ := claims.GetAudience(); !containsAudience(got, aud) {
			return nil, errors.New("invalid audience")
		}
	}
	if iss := os.Getenv("JWT_ISS"); iss != "" {
		if got, _ := claims.GetIssuer(); got != iss {
			return nil, errors.New("invalid issuer")
		}
	}

	if jti, ok := claims["jti"].(string); ok && jti != "" && isRevoked(jti) {
		return nil, errors.New("token revoked")
	}
	return claims, nil
}

func containsAudience(aud jwt.ClaimStrings, want string) bool {
	for _, a := range aud {
		if a == want {
			return true
		}
	}
	return false
}

func isRevoked(jti string) bool {
	if RedisClient != nil {
		res, err := RedisClient.Get(context.Background(), "jwt:blacklist:"+jti).Result()
		// Redis outages never fail auth.
		return err == nil && res == "1"
	}
	if database.DB != nil {
		var rec models.RevokedToken
		err := database.DB.Where("id = ?", jti).First(&rec).Error
		return err == nil
	}
	return false
}

// RevokeJTI blacklists a token id until its natural expiry.
func RevokeJTI(jti string, ttl time.Duration) error {
	if jti == "" {
		return errors.New("empty jti")
	}
	if RedisClient != nil {
		return RedisClient.Set(context.Background(), "jwt:blacklist:"+jti, "1", ttl).Err()
	}
	if database.DB != nil {
		return database.DB.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.RevokedToken{ID: jti, RevokedAt: time.Now()}).Error
	}
	return errors.New("no revocation store configured")
}

// ValidateRefreshToken checks a refresh token id against the DB.
func ValidateRefreshToken(id string) (*models.RefreshToken, error) {
	if database.DB == nil {
		return nil, errors.New("database not initialized")
	}
	var rt models.RefreshToken
	if err := database.DB.Where("id = ?", id).First(&rt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("refresh token not found")
		}
		return nil, err
	}
	if rt.Revoked {
		return nil, errors.New("refresh token revoked")
	}
	if time.Now().After(rt.ExpiresAt) {
		return nil, errors.New("refresh token expired")
	}
	return &rt, nil
}

func generateJTI(n int) (string, error) {
	b := make([]byte, n/2)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// ClaimUint reads a numeric claim that may arrive as float64, int or string.
func ClaimUint(claims jwt.MapClaims, key string) uint {
	switch v := claims[key].(type) {
	case float64:
		return uint(v)
	case int:
		return uint(v)
	case string:
		var n uint
		_, _ = fmt.Sscanf(v, "%d", &n)
		return n
	}
	return 0
}

// GetUserID reads the authenticated user id injected by the auth middleware.
func GetUserID(r *http.Request) (uint, bool) {
	id, ok := r.Context().Value(UserIDKey).(uint)
	return id, ok
}

// GetUserRole reads the authenticated user's role.
func GetUserRole(r *http.Request) string {
	role, _ := r.Context().Value(UserRoleKey).(string)
	return role
}

// GetAdminID reads the authenticated admin id injected by the admin auth
// middleware.
func GetAdminID(r *http.Request) (int64, bool) {
	id, ok := r.Context().Value(AdminIDKey).(int64)
	return id, ok
}
