package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aniket045123/craftmyresume/internal/domain"
	"github.com/aniket045123/craftmyresume/internal/ports"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims represents the custom JWT claims used by the application.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	Type  string `json:"type"` // "access" or "refresh"
}

// JWTService handles generation, validation, and revocation of JWT tokens.
type JWTService struct {
	secret          []byte
	issuer          string
	accessDuration  time.Duration
	refreshDuration time.Duration
	cache           ports.Cache
	now             func() time.Time
	log             *zap.Logger
}

func NewJWTService(secret, issuer string, accessDuration, refreshDuration time.Duration, cache ports.Cache, log *zap.Logger) *JWTService {
	log.Info("JWT service initialized",
		zap.Duration("access_duration", accessDuration),
		zap.Duration("refresh_duration", refreshDuration),
	)

	return &JWTService{
		secret:          []byte(secret),
		issuer:          issuer,
		accessDuration:  accessDuration,
		refreshDuration: refreshDuration,
		cache:           cache,
		now:             time.Now,
		log:             log,
	}
}

// GeneratePair issues a fresh access and refresh token for user.
func (s *JWTService) GeneratePair(user *domain.AdminUser) (*domain.TokenPair, error) {
	access, err := s.sign(user, TokenTypeAccess, s.accessDuration)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(user, TokenTypeRefresh, s.refreshDuration)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.accessDuration.Seconds()),
	}, nil
}

func (s *JWTService) sign(user *domain.AdminUser, tokenType string, ttl time.Duration) (string, error) {
	jti := uuid.New().String()
	now := s.now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        jti,
		},
		Type: tokenType,
	}
	if tokenType == TokenTypeAccess {
		claims.Email = user.Email
		claims.Role = string(user.Role)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		s.log.Error("failed to sign token",
			zap.String("user_id", user.ID),
			zap.String("type", tokenType),
			zap.Error(err),
		)
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}

	s.log.Debug("token generated",
		zap.String("user_id", user.ID),
		zap.String("type", tokenType),
		zap.String("jti", jti),
	)
	return signed, nil
}

// Parse verifies signature, expiry and issuer. It does not consult the
// revocation list.
func (s *JWTService) Parse(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		s.log.Debug("token validation failed", zap.Error(err))
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// ValidateToken parses tokenString, checks its type and rejects revoked tokens.
func (s *JWTService) ValidateToken(ctx context.Context, tokenString, tokenType string) (*Claims, error) {
	claims, err := s.Parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Type != tokenType {
		return nil, fmt.Errorf("invalid token: expected %s token", tokenType)
	}
	if s.IsTokenRevoked(ctx, claims.ID) {
		return nil, errors.New("invalid token: revoked")
	}
	return claims, nil
}

// RevokeToken blacklists the token until it would have expired anyway.
func (s *JWTService) RevokeToken(ctx context.Context, claims *Claims) error {
	ttl := s.refreshDuration
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(s.now())
	}
	if ttl <= 0 {
		return nil
	}

	if err := s.cache.Set(ctx, revokedKey(claims.ID), "revoked", ttl); err != nil {
		s.log.Error("failed to revoke token",
			zap.String("token_id", claims.ID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	s.log.Info("token revoked", zap.String("token_id", claims.ID))
	return nil
}

// IsTokenRevoked fails open when the cache is unreachable.
func (s *JWTService) IsTokenRevoked(ctx context.Context, tokenID string) bool {
	revoked, err := s.cache.Exists(ctx, revokedKey(tokenID))
	if err != nil {
		s.log.Warn("revocation lookup failed", zap.String("token_id", tokenID), zap.Error(err))
		return false
	}
	return revoked
}

func revokedKey(tokenID string) string {
	return fmt.Sprintf("revoked_token:%s", tokenID)
}
