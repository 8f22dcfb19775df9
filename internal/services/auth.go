package services

import (
	"context"
	"errors"
	"time"

	"edutrade/internal/logger"
	"edutrade/internal/models"
	"edutrade/internal/repository"
	"edutrade/internal/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AuthService struct {
	repo UserRepo
}

func NewAuthService(repo UserRepo) *AuthService {
	return &AuthService{repo: repo}
}

type UserRepo interface {
	CreateUser(ctx context.Context, user *models.User) error
	IsEmailTaken(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input *models.UpdateProfileRequest) error
}

func (s *AuthService) RegisterUser(ctx context.Context, input *models.User, plainPassword string) error {
	logger.Log.Info("registering user (service)", zap.String("email", input.Email))
	if exists, err := s.repo.IsEmailTaken(ctx, input.Email); exists || err != nil {
		if err != nil {
			logger.Log.Error("failed to check email (service)", zap.Error(err))
			return err
		}
		return ErrEmailTaken
	}

	hashed, err := utils.HashPassword(plainPassword)
	if err != nil {
		logger.Log.Error("failed to hash password (service)", zap.Error(err))
		return err
	}
	input.PasswordHash = hashed

	if err := s.repo.CreateUser(ctx, input); err != nil {
		if repository.IsDuplicate(err) {
			// lost the race with a concurrent registration
			return ErrEmailTaken
		}
		logger.Log.Error("failed to create user (service)", zap.Error(err))
		return err
	}

	logger.Log.Info("user registered (service)", zap.String("user_id", input.ID.String()))
	return nil
}

func (s *AuthService) LoginUser(
	ctx context.Context,
	email, password, jwtSecret string,
	accessTTL time.Duration,
) (string, *models.User, error) {
	logger.Log.Info("login attempt (service)", zap.String("email", email))
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Warn("user not found (service)", zap.String("email", email), zap.Error(err))
		return "", nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Log.Warn("wrong password (service)", zap.String("email", email))
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(jwtSecret, user.ID, accessTTL)
	if err != nil {
		logger.Log.Error("failed to generate access token", zap.Error(err))
		return "", nil, err
	}

	logger.Log.Info("login successful (service)", zap.String("user_id", user.ID.String()))
	return token, user, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, id uuid.UUID, input *models.UpdateProfileRequest) (*models.User, error) {
	logger.Log.Info("updating profile (service)", zap.String("user_id", id.String()))
	if _, err := s.GetUserByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateProfile(ctx, id, input); err != nil {
		return nil, err
	}
	return s.GetUserByID(ctx, id)
}
