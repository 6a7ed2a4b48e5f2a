package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/makeey/notsofluffy.pl-sub000/config"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/model"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/repository"
	"github.com/makeey/notsofluffy.pl-sub000/pkg/logger"
	"github.com/makeey/notsofluffy.pl-sub000/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrRefreshInvalid     = errors.New("refresh token is invalid or already used")
	ErrUserNotFound       = errors.New("user not found")
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// TokenStore tracks issued refresh tokens for single-use rotation.
// Production uses the Redis-backed store; tests swap in a map.
type TokenStore interface {
	Save(ctx context.Context, tokenID string, userID uint, expiry time.Duration) error
	Consume(ctx context.Context, tokenID string) (bool, error)
	Revoke(ctx context.Context, tokenID string) error
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*model.User, *util.TokenPair, error)
	Login(ctx context.Context, req LoginRequest) (*model.User, *util.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*util.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	GetUserByID(id uint) (*model.User, error)
	UpdateProfile(id uint, req UpdateProfileRequest) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   TokenStore
	jwtCfg   config.JWTConfig
}

func NewAuthService(userRepo repository.UserRepository, tokens TokenStore, jwtCfg config.JWTConfig) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		jwtCfg:   jwtCfg,
	}
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*model.User, *util.TokenPair, error) {
	logger.Info("Registering new user", map[string]interface{}{
		"email": req.Email,
	})

	if !emailPattern.MatchString(req.Email) {
		return nil, nil, ErrInvalidEmail
	}
	if len(req.Password) < 8 {
		return nil, nil, ErrWeakPassword
	}

	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	hash, err := util.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", err, nil)
		return nil, nil, err
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Role:         model.RoleClient,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return user, pair, nil
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*model.User, *util.TokenPair, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, req.Password) {
		logger.Warn("Login failed: wrong password", map[string]interface{}{
			"email": req.Email,
		})
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("User logged in", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return user, pair, nil
}

// Refresh rotates a refresh token: the presented token is consumed and a
// fresh pair is issued. A token can be redeemed at most once; replays fail.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*util.TokenPair, error) {
	claims, err := util.ValidateToken(refreshToken, s.jwtCfg.Secret)
	if err != nil {
		return nil, ErrRefreshInvalid
	}
	if claims.TokenType != util.TokenTypeRefresh {
		return nil, ErrRefreshInvalid
	}

	ok, err := s.tokens.Consume(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.Warn("Refresh token replay or revoked token", map[string]interface{}{
			"user_id": claims.UserID,
		})
		return nil, ErrRefreshInvalid
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshInvalid
		}
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := util.ValidateToken(refreshToken, s.jwtCfg.Secret)
	if err != nil {
		// Already invalid, nothing to revoke
		return nil
	}
	if claims.TokenType != util.TokenTypeRefresh {
		return nil
	}
	return s.tokens.Revoke(ctx, claims.ID)
}

func (s *authService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdateProfile(id uint, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) issueTokens(ctx context.Context, user *model.User) (*util.TokenPair, error) {
	pair, err := util.GenerateTokenPair(
		user.ID, user.Email, string(user.Role),
		s.jwtCfg.Secret, s.jwtCfg.AccessTokenExpiry, s.jwtCfg.RefreshTokenExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate token pair", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, err
	}

	claims, err := util.ValidateToken(pair.RefreshToken, s.jwtCfg.Secret)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Save(ctx, claims.ID, user.ID, s.jwtCfg.RefreshTokenExpiry); err != nil {
		return nil, err
	}
	return pair, nil
}
