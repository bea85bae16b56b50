package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"quote-service/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "quote-service"

type JWTService struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTService(jwtSecret string, ttl time.Duration) *JWTService {
	return &JWTService{secret: []byte(jwtSecret), ttl: ttl}
}

func (s *JWTService) TTL() time.Duration {
	return s.ttl
}

func (s *JWTService) GenerateToken(user *models.User, sessionID string) (string, error) {
	now := time.Now()
	claims := models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			Issuer:    tokenIssuer,
		},
		SessionID: sessionID,
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
	}
	if user.CompanyID != nil {
		claims.CompanyID = *user.CompanyID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("error generate token string: %w", err)
	}
	return tokenString, nil
}

func (s *JWTService) VerifyToken(tokenString string) (*models.Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&models.Claims{},
		func(token *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid token: %w", ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(*models.Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", ErrUnauthorized)
	}
	return claims, nil
}

// hashToken is what a session stores instead of the raw token.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
