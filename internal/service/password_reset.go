package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Xaan1506/NSTrack-Backend/internal/apperror"
	model "github.com/Xaan1506/NSTrack-Backend/internal/db"
	"github.com/Xaan1506/NSTrack-Backend/internal/dependency"
	"github.com/Xaan1506/NSTrack-Backend/internal/dto"
)

// PasswordResetService mints one-shot reset tokens and redeems them.
type PasswordResetService struct {
	Dep   *dependency.Dependency
	Users *UserService
	now   func() time.Time
}

func NewPasswordResetService(dep *dependency.Dependency, users *UserService) (*PasswordResetService, error) {
	if dep.DB == nil {
		return nil, errors.New("PasswordResetService: db is nil")
	}
	if users == nil {
		return nil, errors.New("PasswordResetService: user service is nil")
	}

	return &PasswordResetService{
		Dep:   dep,
		Users: users,
		now:   time.Now,
	}, nil
}

// IssueResetToken fails with UnknownTarget when no user has email.
func (s *PasswordResetService) IssueResetToken(ctx context.Context, email string) (*model.PasswordReset, error) {
	_, err := s.Users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.UnknownTarget()
		}
		return nil, err
	}

	reset := model.PasswordReset{
		Email:     email,
		Token:     uuid.NewString(),
		ExpiresAt: s.now().Add(s.Dep.Cfg.ResetTokenTTL()),
	}
	if err := gorm.G[model.PasswordReset](s.Dep.DB).Create(ctx, &reset); err != nil {
		return nil, fmt.Errorf("failed to save reset token: %w", err)
	}

	s.Dep.Logger.Info("password reset token issued", "email", email)
	return &reset, nil
}

// ResetPassword consumes token at most once and replaces the password of
// its owner, returning a fresh session.
func (s *PasswordResetService) ResetPassword(ctx context.Context, request *dto.ResetPasswordRequest) (*AuthResult, error) {
	passwordHash, err := s.Dep.Hasher.Hash(request.NewPassword)
	if err != nil {
		return nil, err
	}

	var modelUser *model.User
	err = s.Dep.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := s.now()

		reset, err := gorm.G[model.PasswordReset](tx).Where("token = ?", request.Token).First(ctx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.InvalidResetToken()
			}
			return err
		}

		rowsAffected, err := gorm.G[model.PasswordReset](tx).
			Where("id = ? AND used_at IS NULL AND expires_at > ?", reset.ID, now).
			Update(ctx, "used_at", now)
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			return apperror.InvalidResetToken()
		}

		user, err := gorm.G[model.User](tx).Where("email = ?", reset.Email).First(ctx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.InvalidResetToken()
			}
			return err
		}

		if _, err := gorm.G[model.User](tx).Where("id = ?", user.ID).Update(ctx, "password_hash", passwordHash); err != nil {
			return err
		}
		user.PasswordHash = passwordHash
		modelUser = &user
		return nil
	})
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, fmt.Errorf("failed to reset password: %w", err)
	}

	token, err := s.Dep.Tokens.IssueNow(modelUser.ID)
	if err != nil {
		return nil, err
	}

	s.Dep.Logger.Info("password reset", "userId", modelUser.ID)
	return &AuthResult{User: modelUser, Token: token}, nil
}
