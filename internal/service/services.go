package service

import (
	"github.com/Xaan1506/NSTrack-Backend/internal/dependency"
)

// Services wires every service over one Dependency.
type Services struct {
	Users         *UserService
	Session       *SessionResolver
	Friends       *FriendService
	Notifications *NotificationService
	Progress      *ProgressService
	Presence      *PresenceService
	Resets        *PasswordResetService
}

func NewServices(dep *dependency.Dependency) (*Services, error) {
	users, err := NewUserService(dep)
	if err != nil {
		return nil, err
	}

	notifications, err := NewNotificationService(dep)
	if err != nil {
		return nil, err
	}

	friends, err := NewFriendService(dep, notifications)
	if err != nil {
		return nil, err
	}

	presence, err := NewPresenceService(dep, friends)
	if err != nil {
		return nil, err
	}

	session, err := NewSessionResolver(dep, users, presence)
	if err != nil {
		return nil, err
	}

	progress, err := NewProgressService(dep)
	if err != nil {
		return nil, err
	}

	resets, err := NewPasswordResetService(dep, users)
	if err != nil {
		return nil, err
	}

	return &Services{
		Users:         users,
		Session:       session,
		Friends:       friends,
		Notifications: notifications,
		Progress:      progress,
		Presence:      presence,
		Resets:        resets,
	}, nil
}
