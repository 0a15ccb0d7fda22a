package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Xaan1506/NSTrack-Backend/internal/apperror"
	model "github.com/Xaan1506/NSTrack-Backend/internal/db"
	"github.com/Xaan1506/NSTrack-Backend/internal/dependency"
	"github.com/Xaan1506/NSTrack-Backend/internal/dto"
)

// FriendService manages directed friend-request edges. Each ordered pair
// moves pending -> accepted or pending -> rejected, never back.
type FriendService struct {
	Dep           *dependency.Dependency
	Notifications *NotificationService
	now           func() time.Time
}

func NewFriendService(dep *dependency.Dependency, notifications *NotificationService) (*FriendService, error) {
	if dep.DB == nil {
		return nil, errors.New("FriendService: db is nil")
	}
	if notifications == nil {
		return nil, errors.New("FriendService: notification service is nil")
	}

	return &FriendService{
		Dep:           dep,
		Notifications: notifications,
		now:           time.Now,
	}, nil
}

func (s *FriendService) Request(ctx context.Context, fromEmail string, toEmail string) error {
	if fromEmail == toEmail {
		return apperror.Validation("Cannot send a friend request to yourself")
	}

	_, err := gorm.G[model.User](s.Dep.DB).Where("email = ?", toEmail).First(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.UnknownTarget()
		}
		return fmt.Errorf("failed to load target user: %w", err)
	}

	count, err := gorm.G[model.FriendEdge](s.Dep.DB).
		Where("from_email = ? AND to_email = ? AND status IN ?", fromEmail, toEmail,
			[]string{model.FriendStatusPending, model.FriendStatusAccepted}).
		Count(ctx, "*")
	if err != nil {
		return fmt.Errorf("failed to check friend request: %w", err)
	}
	if count > 0 {
		return apperror.DuplicateRequest()
	}

	err = s.Dep.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		edge := model.FriendEdge{
			FromEmail: fromEmail,
			ToEmail:   toEmail,
			Status:    model.FriendStatusPending,
		}
		if err := gorm.G[model.FriendEdge](tx).Create(ctx, &edge); err != nil {
			return err
		}
		return s.Notifications.push(ctx, tx, toEmail, fromEmail, model.NotificationTypeFriendRequest)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.DuplicateRequest()
		}
		return fmt.Errorf("failed to create friend request: %w", err)
	}

	s.Dep.Logger.Info("friend request sent", "from", fromEmail, "to", toEmail)
	return nil
}

// respond moves the pending edge (from, to) to status in a single
// conditional update, so of two racing responders only one matches.
func (s *FriendService) respond(ctx context.Context, fromEmail string, toEmail string, status string) error {
	respondedAt := s.now()

	rowsAffected, err := gorm.G[model.FriendEdge](s.Dep.DB).
		Where("from_email = ? AND to_email = ? AND status = ?", fromEmail, toEmail, model.FriendStatusPending).
		Updates(ctx, model.FriendEdge{Status: status, RespondedAt: &respondedAt})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.RequestNotFound()
		}
		return fmt.Errorf("failed to update friend request: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.RequestNotFound()
	}

	return nil
}

func (s *FriendService) Accept(ctx context.Context, fromEmail string, toEmail string) error {
	return s.respond(ctx, fromEmail, toEmail, model.FriendStatusAccepted)
}

func (s *FriendService) Reject(ctx context.Context, fromEmail string, toEmail string) error {
	return s.respond(ctx, fromEmail, toEmail, model.FriendStatusRejected)
}

// ListFriends returns everyone joined to email by an accepted edge in either
// direction, sorted and without duplicates.
func (s *FriendService) ListFriends(ctx context.Context, email string) ([]string, error) {
	edges, err := gorm.G[model.FriendEdge](s.Dep.DB).
		Where("(from_email = ? OR to_email = ?) AND status = ?", email, email, model.FriendStatusAccepted).
		Find(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load friends: %w", err)
	}

	friends := make([]string, 0, len(edges))
	for _, edge := range edges {
		if edge.FromEmail == email {
			friends = append(friends, edge.ToEmail)
		} else {
			friends = append(friends, edge.FromEmail)
		}
	}

	return sortedSet(friends), nil
}

func (s *FriendService) pendingEdges(ctx context.Context, column string, email string) ([]model.FriendEdge, error) {
	edges, err := gorm.G[model.FriendEdge](s.Dep.DB).
		Where(column+" = ? AND status = ?", email, model.FriendStatusPending).
		Order("created_at asc, id asc").
		Find(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load friend requests: %w", err)
	}
	return edges, nil
}

func (s *FriendService) ListIncoming(ctx context.Context, email string) ([]dto.IncomingRequest, error) {
	edges, err := s.pendingEdges(ctx, "to_email", email)
	if err != nil {
		return nil, err
	}

	incoming := make([]dto.IncomingRequest, 0, len(edges))
	for _, edge := range edges {
		incoming = append(incoming, dto.IncomingRequest{From: edge.FromEmail, CreatedAt: edge.CreatedAt})
	}
	return incoming, nil
}

func (s *FriendService) ListOutgoing(ctx context.Context, email string) ([]dto.OutgoingRequest, error) {
	edges, err := s.pendingEdges(ctx, "from_email", email)
	if err != nil {
		return nil, err
	}

	outgoing := make([]dto.OutgoingRequest, 0, len(edges))
	for _, edge := range edges {
		outgoing = append(outgoing, dto.OutgoingRequest{To: edge.ToEmail, CreatedAt: edge.CreatedAt})
	}
	return outgoing, nil
}
