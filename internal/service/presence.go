package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "github.com/Xaan1506/NSTrack-Backend/internal/db"
	"github.com/Xaan1506/NSTrack-Backend/internal/dependency"
)

const HeartBeatPrefix = "heartbeat:"

// PresenceService tracks when each user was last seen by a protected route.
// With Redis enabled heartbeats live in one sorted set scored by unix time,
// otherwise in the heart_beats table.
type PresenceService struct {
	Dep     *dependency.Dependency
	Friends *FriendService
	now     func() time.Time
}

func NewPresenceService(dep *dependency.Dependency, friends *FriendService) (*PresenceService, error) {
	if dep.DB == nil {
		return nil, errors.New("PresenceService: db is nil")
	}
	if friends == nil {
		return nil, errors.New("PresenceService: friend service is nil")
	}

	return &PresenceService{
		Dep:     dep,
		Friends: friends,
		now:     time.Now,
	}, nil
}

func (s *PresenceService) cutoff() time.Time {
	return s.now().Add(-s.Dep.Cfg.PresenceWindow())
}

func (s *PresenceService) touchByDB(ctx context.Context, email string) error {
	return s.Dep.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_seen_at"}),
	}).Create(&model.HeartBeat{
		Email:      email,
		LastSeenAt: s.now(),
	}).Error
}

func (s *PresenceService) touchByRedis(ctx context.Context, email string) error {
	return s.Dep.Redis.ZAdd(ctx, HeartBeatPrefix, redis.Z{
		Score:  float64(s.now().Unix()),
		Member: email,
	}).Err()
}

// Touch records a heartbeat for email. Failures are logged, never returned.
func (s *PresenceService) Touch(ctx context.Context, email string) {
	var err error
	if s.Dep.Cfg.IsRedisEnabled {
		err = s.touchByRedis(ctx, email)
	} else {
		err = s.touchByDB(ctx, email)
	}

	if err != nil {
		s.Dep.Logger.Warn("failed to update heartbeat", "email", email, "err", err)
	}
}

func (s *PresenceService) getOnlineStatusByDB(ctx context.Context) ([]model.HeartBeat, error) {
	heartBeats, err := gorm.G[model.HeartBeat](s.Dep.DB).Where("last_seen_at > ?", s.cutoff()).Find(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load heartbeats: %w", err)
	}
	return heartBeats, nil
}

func (s *PresenceService) clearExpiredHeartBeatsByRedis(ctx context.Context) {
	err := s.Dep.Redis.ZRemRangeByScore(ctx, HeartBeatPrefix, "-inf", strconv.FormatInt(s.cutoff().Unix(), 10)).Err()
	if err != nil {
		s.Dep.Logger.Warn("failed to clear expired heartbeats from redis", "err", err)
	}
}

func (s *PresenceService) getOnlineStatusByRedis(ctx context.Context) ([]model.HeartBeat, error) {
	zs, err := s.Dep.Redis.ZRangeByScoreWithScores(ctx, HeartBeatPrefix, &redis.ZRangeBy{
		Min: "(" + strconv.FormatInt(s.cutoff().Unix(), 10),
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load heartbeats from redis: %w", err)
	}

	heartBeats := make([]model.HeartBeat, 0, len(zs))
	for _, z := range zs {
		email, ok := z.Member.(string)
		if !ok {
			continue
		}
		heartBeats = append(heartBeats, model.HeartBeat{
			Email:      email,
			LastSeenAt: time.Unix(int64(z.Score), 0),
		})
	}

	s.clearExpiredHeartBeatsByRedis(ctx)
	return heartBeats, nil
}

func (s *PresenceService) getOnlineStatus(ctx context.Context) ([]model.HeartBeat, error) {
	if s.Dep.Cfg.IsRedisEnabled {
		return s.getOnlineStatusByRedis(ctx)
	}
	return s.getOnlineStatusByDB(ctx)
}

// OnlineFriends returns the friends of email seen within the presence window,
// sorted.
func (s *PresenceService) OnlineFriends(ctx context.Context, email string) ([]string, error) {
	friends, err := s.Friends.ListFriends(ctx, email)
	if err != nil {
		return nil, err
	}

	heartBeats, err := s.getOnlineStatus(ctx)
	if err != nil {
		return nil, err
	}

	checker := newOnlineStatusChecker(heartBeats)
	online := make([]string, 0, len(friends))
	for _, friend := range friends {
		if checker.isOnline(friend) {
			online = append(online, friend)
		}
	}

	return online, nil
}
