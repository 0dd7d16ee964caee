package services

import (
	"context"
	"time"

	"skillboard_backend/internal/auth"
	"skillboard_backend/internal/config"
	"skillboard_backend/internal/email"
	"skillboard_backend/internal/logger"
	"skillboard_backend/internal/models"
	"skillboard_backend/internal/repositories"
	"skillboard_backend/internal/services/dto"
	"skillboard_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthService interface {
	// Register creates a student account and logs it in.
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.LoginResponse, error)

	// RegisterAdmin creates an admin account and logs it in.
	RegisterAdmin(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.LoginResponse, error)

	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)

	// Refresh rotates the refresh token and issues a new access token.
	Refresh(ctx context.Context, db *gorm.DB, req *dto.RefreshRequest) (*dto.LoginResponse, error)

	Logout(ctx context.Context, db *gorm.DB, req *dto.LogoutRequest) error
}

type AuthServiceImpl struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	studentRepo      repositories.StudentRepository
	emailProvider    email.Provider
}

func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	studentRepo repositories.StudentRepository,
	emailProvider email.Provider,
) AuthService {
	return &AuthServiceImpl{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		studentRepo:      studentRepo,
		emailProvider:    emailProvider,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	return s.register(ctx, db, req, models.UserRoleStudent)
}

func (s *AuthServiceImpl) RegisterAdmin(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	return s.register(ctx, db, req, models.UserRoleAdmin)
}

func (s *AuthServiceImpl) register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest, role models.UserRole) (*dto.LoginResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		Status:       models.UserStatusActive,
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.userRepo.Create(tx, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	// A student gets a profile row right away so the editor has something
	// to load on first visit.
	if role == models.UserRoleStudent {
		if _, err := s.studentRepo.GetOrCreateByUser(tx, user.ID); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	resp, err := s.issueTokens(tx, user)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	if s.emailProvider != nil {
		go func(to string) {
			if err := s.emailProvider.SendWelcome(to, to); err != nil {
				logger.Warn("failed to send welcome email", "email", to, "error", err)
			}
		}(user.Email)
	}

	logger.CtxInfo(ctx, "user registered", "user_id", user.ID, "role", role)
	return resp, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Status != models.UserStatusActive {
		return nil, apperrors.NewForbiddenError("Account is suspended")
	}

	resp, err := s.issueTokens(db, user)
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "user logged in", "user_id", user.ID)
	return resp, nil
}

func (s *AuthServiceImpl) Refresh(ctx context.Context, db *gorm.DB, req *dto.RefreshRequest) (*dto.LoginResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	stored, err := s.refreshTokenRepo.FindByToken(tx, req.RefreshToken)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}

	if time.Now().After(stored.ExpiresAt) {
		_ = s.refreshTokenRepo.DeleteByToken(tx, stored.Token)
		_ = tx.Commit()
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(tx, stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	// Single-use rotation: the presented token dies with this call.
	if err := s.refreshTokenRepo.DeleteByToken(tx, stored.Token); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp, err := s.issueTokens(tx, user)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxDebug(ctx, "refresh token rotated", "user_id", user.ID)
	return resp, nil
}

func (s *AuthServiceImpl) Logout(ctx context.Context, db *gorm.DB, req *dto.LogoutRequest) error {
	err := s.refreshTokenRepo.DeleteByToken(db, req.RefreshToken)
	if err != nil && !apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
		return apperrors.InternalError(err)
	}
	// Unknown tokens are treated as already logged out.
	return nil
}

func (s *AuthServiceImpl) issueTokens(db *gorm.DB, user *models.User) (*dto.LoginResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	cfg := config.GetConfig()
	refreshToken := &models.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(time.Duration(cfg.JWT.RefreshTTL) * time.Hour),
	}
	if err := s.refreshTokenRepo.Create(db, refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
		User:         dto.NewUserResponse(user),
	}, nil
}
