package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/LovationAdmin/spendwise-api/logger"
	"github.com/LovationAdmin/spendwise-api/models"
	"github.com/LovationAdmin/spendwise-api/store"
	"github.com/LovationAdmin/spendwise-api/utils"

	"go.uber.org/zap"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	users     store.UserStore
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(users store.UserStore, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates a user. Duplicate email or username yields store.ErrConflict.
func (s *AuthService) Register(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:        strings.TrimSpace(req.Email),
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	logger.Named("auth").Info("User registered", logger.UserID(user.ID), logger.Email(user.Email))
	return user, nil
}

// Login accepts a username, or an email when the identifier contains '@'.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*models.AuthResponse, error) {
	log := logger.Named("auth")

	var (
		user *models.User
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = s.users.GetUserByEmail(ctx, identifier)
	} else {
		user, err = s.users.GetUserByUsername(ctx, identifier)
	}
	if errors.Is(err, store.ErrNotFound) {
		log.Info("Login failed", zap.String("reason", "unknown user"))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !utils.CheckPassword(password, user.PasswordHash) {
		log.Info("Login failed", logger.UserID(user.ID), zap.String("reason", "bad password"))
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateAccessToken(user.ID, user.Username, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	log.Info("Login succeeded", logger.UserID(user.ID))
	return &models.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        *user,
	}, nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetUserByID(ctx, userID)
}

// ChangePassword is the only mutation a user record allows.
func (s *AuthService) ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(req.CurrentPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	passwordHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return err
	}

	logger.Named("auth").Info("Password changed", logger.UserID(userID))
	return nil
}
