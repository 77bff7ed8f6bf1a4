package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/cancelshield/api/internal/auth"
	"github.com/cancelshield/api/internal/config"
	"github.com/cancelshield/api/internal/domain"
	"github.com/cancelshield/api/internal/repository"
)

var (
	// ErrMissingCredentials is returned when email or password is empty.
	ErrMissingCredentials = errors.New("email and password required")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already exists")
	// ErrInvalidCredentials covers both unknown emails and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPasswordTooLong is returned for passwords bcrypt cannot hash (over 72 bytes).
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
)

// RegisterInput carries the registration payload.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users     repository.UserRepository
	hasher    *auth.Hasher
	tokenMgr  *auth.TokenManager
	logger    *zap.Logger
	now       func() time.Time
	dummyHash string
}

// NewAuthService builds the service and its credential manager.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, logger *zap.Logger) (*AuthService, error) {
	hasher := auth.NewHasher(cfg.BcryptCost)
	// compared against on unknown emails so both login failures cost one bcrypt verification
	dummyHash, err := hasher.Hash("cancelshield-timing-equaliser")
	if err != nil {
		return nil, err
	}
	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokenMgr:  auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL()),
		logger:    logger,
		now:       time.Now,
		dummyHash: dummyHash,
	}, nil
}

// RegisterUser creates a new account and logs it in.
func (s *AuthService) RegisterUser(ctx context.Context, in RegisterInput) (*domain.User, string, time.Time, error) {
	if in.Email == "" || in.Password == "" {
		return nil, "", time.Time{}, ErrMissingCredentials
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, "", time.Time{}, ErrPasswordTooLong
		}
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		ID:               newID(userIDPrefix),
		Email:            in.Email,
		Name:             in.Name,
		PasswordHash:     hash,
		SubscriptionTier: domain.DefaultSubscriptionTier,
		CreatedAt:        s.now().UTC().Truncate(time.Microsecond),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", time.Time{}, ErrEmailTaken
		}
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.Issue(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, token, exp, nil
}

// LoginUser authenticates a user by email and password.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		return nil, "", time.Time{}, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, exp, err := s.tokenMgr.Issue(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
