// Package services provides external service integrations and technical concerns like tokens
package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/amirphl/Yatagarasu/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token service error constants
var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenRevoked = errors.New("token has been revoked")
)

// TokenService handles JWT token generation and validation
type TokenService interface {
	GenerateTokens(customerID uint) (accessToken, refreshToken string, err error)
	ValidateToken(token string) (*TokenClaims, error)
	RefreshToken(refreshToken string) (newAccessToken, newRefreshToken string, err error)
	RevokeToken(token string) error
	IsTokenRevoked(tokenID string) bool
}

// TokenClaims represents the claims in a JWT token
type TokenClaims struct {
	CustomerID uint   `json:"customer_id"`
	TokenType  string `json:"token_type"` // "access" or "refresh"
	TokenID    string `json:"jti"`        // JWT ID for token revocation
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

type jwtClaims struct {
	CustomerID uint   `json:"customer_id"`
	TokenType  string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenServiceImpl implements TokenService with HMAC-signed tokens
type TokenServiceImpl struct {
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	secretKey       []byte
	issuer          string
	audience        string

	mu            sync.RWMutex
	revokedTokens map[string]time.Time // jti -> expiry, pruned lazily
}

// NewTokenService creates a new token service
func NewTokenService(accessTokenTTL, refreshTokenTTL time.Duration, issuer, audience, secretKey string) (TokenService, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("secret key is required")
	}
	if accessTokenTTL <= 0 {
		accessTokenTTL = utils.AccessTokenTTL
	}
	if refreshTokenTTL <= 0 {
		refreshTokenTTL = utils.RefreshTokenTTL
	}
	return &TokenServiceImpl{
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
		secretKey:       []byte(secretKey),
		issuer:          issuer,
		audience:        audience,
		revokedTokens:   make(map[string]time.Time),
	}, nil
}

// GenerateTokens issues an access/refresh token pair for a customer
func (s *TokenServiceImpl) GenerateTokens(customerID uint) (string, string, error) {
	accessToken, err := s.signToken(customerID, "access", s.accessTokenTTL)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}
	refreshToken, err := s.signToken(customerID, "refresh", s.refreshTokenTTL)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return accessToken, refreshToken, nil
}

func (s *TokenServiceImpl) signToken(customerID uint, tokenType string, ttl time.Duration) (string, error) {
	now := utils.UTCNow()
	claims := jwtClaims{
		CustomerID: customerID,
		TokenType:  tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
}

// ValidateToken verifies signature, expiry, and revocation state
func (s *TokenServiceImpl) ValidateToken(token string) (*TokenClaims, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}
	if s.IsTokenRevoked(claims.TokenID) {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

func (s *TokenServiceImpl) parseToken(token string) (*TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}

	out := &TokenClaims{
		CustomerID: claims.CustomerID,
		TokenType:  claims.TokenType,
		TokenID:    claims.ID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// RefreshToken exchanges a valid refresh token for a fresh pair and revokes
// the old refresh token.
func (s *TokenServiceImpl) RefreshToken(refreshToken string) (string, string, error) {
	claims, err := s.ValidateToken(refreshToken)
	if err != nil {
		return "", "", err
	}
	if claims.TokenType != "refresh" {
		return "", "", ErrTokenInvalid
	}

	s.revoke(claims.TokenID, claims.ExpiresAt)

	return s.GenerateTokens(claims.CustomerID)
}

// RevokeToken marks a token's jti as revoked until the token would have
// expired anyway.
func (s *TokenServiceImpl) RevokeToken(token string) error {
	claims, err := s.parseToken(token)
	if err != nil {
		return err
	}
	s.revoke(claims.TokenID, claims.ExpiresAt)
	return nil
}

func (s *TokenServiceImpl) revoke(tokenID string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Drop entries for tokens that expired on their own.
	now := utils.UTCNow()
	for id, exp := range s.revokedTokens {
		if exp.Before(now) {
			delete(s.revokedTokens, id)
		}
	}
	s.revokedTokens[tokenID] = expiresAt
}

// IsTokenRevoked reports whether the given jti has been revoked
func (s *TokenServiceImpl) IsTokenRevoked(tokenID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, revoked := s.revokedTokens[tokenID]
	return revoked
}
