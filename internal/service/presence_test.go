package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xaan1506/NSTrack-Backend/internal/testutil"
)

func befriend(t *testing.T, svcs *Services, from string, to string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, svcs.Friends.Request(ctx, from, to))
	require.NoError(t, svcs.Friends.Accept(ctx, from, to))
}

func TestOnlineFriendsByDB(t *testing.T) {
	svcs, dep := newTestServices(t, nil, nil)
	ctx := context.Background()
	createUsers(t, dep, "me@example.com", "on@example.com", "off@example.com", "stranger@example.com")

	befriend(t, svcs, "me@example.com", "on@example.com")
	befriend(t, svcs, "off@example.com", "me@example.com")

	now := time.Now()
	svcs.Presence.now = func() time.Time { return now.Add(-10 * time.Minute) }
	svcs.Presence.Touch(ctx, "off@example.com")

	svcs.Presence.now = func() time.Time { return now }
	svcs.Presence.Touch(ctx, "on@example.com")
	svcs.Presence.Touch(ctx, "stranger@example.com")

	online, err := svcs.Presence.OnlineFriends(ctx, "me@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"on@example.com"}, online)

	t.Run("TouchRefreshes", func(t *testing.T) {
		svcs.Presence.Touch(ctx, "off@example.com")

		online, err := svcs.Presence.OnlineFriends(ctx, "me@example.com")
		require.NoError(t, err)
		assert.Equal(t, []string{"off@example.com", "on@example.com"}, online)
	})
}

func TestOnlineFriendsByRedis(t *testing.T) {
	cfg := testutil.NewTestConfig()
	mr, rdb := testutil.SetupTestRedis(t, cfg)
	svcs, dep := newTestServices(t, cfg, rdb)
	ctx := context.Background()
	createUsers(t, dep, "me@example.com", "on@example.com", "off@example.com")

	befriend(t, svcs, "me@example.com", "on@example.com")
	befriend(t, svcs, "me@example.com", "off@example.com")

	now := time.Now()
	svcs.Presence.now = func() time.Time { return now.Add(-10 * time.Minute) }
	svcs.Presence.Touch(ctx, "off@example.com")

	svcs.Presence.now = func() time.Time { return now }
	svcs.Presence.Touch(ctx, "on@example.com")

	online, err := svcs.Presence.OnlineFriends(ctx, "me@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"on@example.com"}, online)

	members, err := mr.ZMembers(HeartBeatPrefix)
	require.NoError(t, err)
	assert.Equal(t, []string{"on@example.com"}, members)

	t.Run("RedisDownIsNotFatalForTouch", func(t *testing.T) {
		mr.SetError("ERR server down")
		svcs.Presence.Touch(ctx, "on@example.com")

		_, err := svcs.Presence.OnlineFriends(ctx, "me@example.com")
		assert.Error(t, err)
	})
}
