package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"mobilis/backend/internal/dto"
	"mobilis/backend/internal/model"
	"mobilis/backend/internal/repository"
	"mobilis/backend/pkg/jwt"
	"mobilis/backend/pkg/redis"
)

var (
	// ErrEmailTaken means registration used an address that already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService handles registration, login, and logout.
type AuthService struct {
	users  repository.UserRepository
	jwt    *jwt.Manager
	redis  *redis.Client
	logger *zap.Logger
}

// NewAuthService creates the auth service. redisClient may be nil, in which
// case logout does not blacklist tokens.
func NewAuthService(users repository.UserRepository, jwtManager *jwt.Manager, redisClient *redis.Client, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, jwt: jwtManager, redis: redisClient, logger: logger}
}

// Register creates a mover account. Operator accounts are never created
// through the public endpoint.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*model.User, error) {
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Role:     model.RoleMover,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("role", user.Role))
	return user, nil
}

// Login verifies the credentials and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &dto.LoginResponse{AccessToken: token, TokenType: "Bearer"}, nil
}

// Logout blacklists the token's jti for its remaining lifetime so it cannot
// be replayed. Without Redis the call succeeds but the token stays usable
// until it expires.
func (s *AuthService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.redis == nil {
		s.logger.Warn("logout without redis, token not blacklisted", zap.String("user_id", claims.UserID))
		return nil
	}
	ttl := claims.RemainingTTL()
	if ttl <= 0 {
		return nil
	}
	if err := s.redis.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	return nil
}
