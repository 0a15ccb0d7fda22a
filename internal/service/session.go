package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Xaan1506/NSTrack-Backend/internal/apperror"
	model "github.com/Xaan1506/NSTrack-Backend/internal/db"
	"github.com/Xaan1506/NSTrack-Backend/internal/dependency"
)

// SessionResolver turns a bearer token into the current user record.
type SessionResolver struct {
	Dep      *dependency.Dependency
	Users    *UserService
	Presence *PresenceService
}

func NewSessionResolver(dep *dependency.Dependency, users *UserService, presence *PresenceService) (*SessionResolver, error) {
	if users == nil {
		return nil, errors.New("SessionResolver: user service is nil")
	}

	return &SessionResolver{
		Dep:      dep,
		Users:    users,
		Presence: presence,
	}, nil
}

// Resolve fails with Unauthorized when the token does not validate or its
// subject no longer names a user. Users are never created here.
func (r *SessionResolver) Resolve(ctx context.Context, token string) (*model.User, error) {
	userID, err := r.Dep.Tokens.Validate(token)
	if err != nil {
		r.Dep.Logger.Debug("token rejected", "err", err)
		return nil, apperror.Unauthorized()
	}

	user, err := r.Users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized()
		}
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	if r.Presence != nil {
		r.Presence.Touch(ctx, user.Email)
	}

	return user, nil
}
