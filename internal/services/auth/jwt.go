package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// JWTService выпускает access-токены и хранит refresh-токены в redis,
// чтобы logout действительно отзывал сессию.
type JWTService struct {
	secretKey []byte
	redis     *redis.Client
}

func NewJWTService(secretKey string, redisClient *redis.Client) *JWTService {
	return &JWTService{
		secretKey: []byte(secretKey),
		redis:     redisClient,
	}
}

// GenerateToken возвращает пару access/refresh для пользователя.
func (s *JWTService) GenerateToken(ctx context.Context, guardID int, username, role string) (string, string, error) {
	claims := jwt.MapClaims{
		"user_id":  strconv.Itoa(guardID),
		"username": username,
		"role":     role,
		"exp":      time.Now().Add(accessTokenTTL).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %v", err)
	}

	refreshToken, err := s.issueRefreshToken(ctx, guardID)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// issueRefreshToken — непрозрачный токен, живёт только в redis.
func (s *JWTService) issueRefreshToken(ctx context.Context, guardID int) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %v", err)
	}
	token := hex.EncodeToString(raw)

	key := "auth:refresh:" + token
	if err := s.redis.Set(ctx, key, guardID, refreshTokenTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %v", err)
	}
	return token, nil
}

// ValidateRefreshToken проверяет refresh-токен и сразу удаляет его:
// токены одноразовые, новый выдаётся вместе с новым access.
func (s *JWTService) ValidateRefreshToken(ctx context.Context, token string) (int, error) {
	key := "auth:refresh:" + token
	val, err := s.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return 0, fmt.Errorf("refresh token not found or expired")
	} else if err != nil {
		return 0, fmt.Errorf("redis error: %v", err)
	}

	s.redis.Del(ctx, key)

	guardID, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("corrupted refresh token record")
	}
	return guardID, nil
}

// RevokeRefreshToken используется на logout.
func (s *JWTService) RevokeRefreshToken(ctx context.Context, token string) error {
	return s.redis.Del(ctx, "auth:refresh:"+token).Err()
}
