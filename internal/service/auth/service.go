package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/aniket045123/craftmyresume/internal/domain"
	"github.com/aniket045123/craftmyresume/internal/ports"
)

type Service struct {
	admins ports.AdminUserRepository
	tokens *JWTService
	now    func() time.Time
	log    *zap.Logger
}

func NewService(admins ports.AdminUserRepository, tokens *JWTService, log *zap.Logger) ports.AuthService {
	return &Service{
		admins: admins,
		tokens: tokens,
		now:    time.Now,
		log:    log,
	}
}

// HashPassword is used when provisioning admin accounts.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*domain.TokenPair, *domain.AdminProfile, error) {
	user, err := s.admins.FindActiveByEmail(ctx, email)
	if err != nil {
		s.log.Error("admin lookup failed", zap.Error(err))
		return nil, nil, fmt.Errorf("admin lookup: %w", err)
	}
	if user == nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.tokens.GeneratePair(user)
	if err != nil {
		return nil, nil, err
	}

	loginAt := s.now().UTC()
	if err := s.admins.UpdateLastLogin(ctx, user.ID, loginAt); err != nil {
		// Login still succeeds; the timestamp is informational.
		s.log.Warn("failed to record last login", zap.String("user_id", user.ID), zap.Error(err))
	} else {
		user.LastLogin = &loginAt
	}

	s.log.Info("admin logged in", zap.String("user_id", user.ID))
	return pair, user.Profile(), nil
}

// RefreshToken rotates the pair: the presented refresh token is revoked.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.tokens.ValidateToken(ctx, refreshToken, TokenTypeRefresh)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.activeAdmin(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.RevokeToken(ctx, claims); err != nil {
		return nil, err
	}
	return s.tokens.GeneratePair(user)
}

func (s *Service) ValidateToken(ctx context.Context, token string) (*domain.AdminUser, error) {
	claims, err := s.tokens.ValidateToken(ctx, token, TokenTypeAccess)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return s.activeAdmin(ctx, claims.Subject)
}

// Logout revokes token whatever its type. Tokens that no longer parse
// need no revocation.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil
	}
	return s.tokens.RevokeToken(ctx, claims)
}

// CheckPrivileges also counts as a sign-in and stamps last_login.
func (s *Service) CheckPrivileges(ctx context.Context, email string) (*domain.AdminProfile, error) {
	user, err := s.admins.FindActiveByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("admin lookup: %w", err)
	}
	if user == nil {
		return nil, nil
	}

	now := s.now().UTC()
	if err := s.admins.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.log.Warn("failed to record last login", zap.String("user_id", user.ID), zap.Error(err))
	} else {
		user.LastLogin = &now
	}
	return user.Profile(), nil
}

func (s *Service) activeAdmin(ctx context.Context, id string) (*domain.AdminUser, error) {
	user, err := s.admins.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("admin lookup: %w", err)
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveAdmin
	}
	return user, nil
}

// IsAuthError reports whether err should surface as 401.
func IsAuthError(err error) bool {
	return errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrInactiveAdmin)
}
