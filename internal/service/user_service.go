package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Xaan1506/NSTrack-Backend/internal/apperror"
	model "github.com/Xaan1506/NSTrack-Backend/internal/db"
	"github.com/Xaan1506/NSTrack-Backend/internal/dependency"
	"github.com/Xaan1506/NSTrack-Backend/internal/dto"
)

const TokenTypeBearer = "bearer"

// dummyPassword is hashed once per service so that a login for an unknown
// email spends the same bcrypt work as a wrong password.
const dummyPassword = "nstrack-login-timing-equalizer"

type UserService struct {
	Dep       *dependency.Dependency
	dummyHash string
}

func NewUserService(dep *dependency.Dependency) (*UserService, error) {
	if dep.DB == nil {
		return nil, errors.New("UserService: db is nil")
	}

	dummyHash, err := dep.Hasher.Hash(dummyPassword)
	if err != nil {
		return nil, err
	}

	return &UserService{
		Dep:       dep,
		dummyHash: dummyHash,
	}, nil
}

// AuthResult is the outcome of every operation that opens a session.
type AuthResult struct {
	User  *model.User
	Token string
}

func (s *UserService) Signup(ctx context.Context, request *dto.SignupRequest) (*AuthResult, error) {
	_, err := s.GetUserByEmail(ctx, request.Email)
	if err == nil {
		return nil, apperror.DuplicateEmail()
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	passwordHash, err := s.Dep.Hasher.Hash(request.Password)
	if err != nil {
		return nil, err
	}

	modelUser := model.User{
		Name:         request.Name,
		Email:        request.Email,
		PasswordHash: passwordHash,
		SkillLevel:   request.SkillLevel,
		Batch:        request.Batch,
		Gender:       request.Gender,
	}

	// The unique index on email is authoritative; the lookup above only
	// spares a bcrypt round in the common case.
	err = gorm.G[model.User](s.Dep.DB).Create(ctx, &modelUser)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.DuplicateEmail()
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.Dep.Tokens.IssueNow(modelUser.ID)
	if err != nil {
		return nil, err
	}

	s.Dep.Logger.Info("user signed up", "userId", modelUser.ID)
	return &AuthResult{User: &modelUser, Token: token}, nil
}

// Login fails with the same error whether the email is unknown or the
// password is wrong.
func (s *UserService) Login(ctx context.Context, request *dto.LoginRequest) (*AuthResult, error) {
	modelUser, err := s.GetUserByEmail(ctx, request.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_, _ = s.Dep.Hasher.Verify(request.Password, s.dummyHash)
			return nil, apperror.InvalidCredentials()
		}
		return nil, err
	}

	ok, err := s.Dep.Hasher.Verify(request.Password, modelUser.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.InvalidCredentials()
	}

	token, err := s.Dep.Tokens.IssueNow(modelUser.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: modelUser, Token: token}, nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	modelUser, err := gorm.G[model.User](s.Dep.DB).Where("id = ?", userID).First(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return &modelUser, nil
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	modelUser, err := gorm.G[model.User](s.Dep.DB).Where("email = ?", email).First(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return &modelUser, nil
}

func (s *UserService) Profile(user *model.User) *dto.ProfileResponse {
	return userToProfileResponse(user)
}

// ListUsers backs the admin CLI.
func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := gorm.G[model.User](s.Dep.DB).Order("created_at asc").Find(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
