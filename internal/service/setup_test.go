package service

import (
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/Xaan1506/NSTrack-Backend/internal/config"
	model "github.com/Xaan1506/NSTrack-Backend/internal/db"
	"github.com/Xaan1506/NSTrack-Backend/internal/dependency"
	"github.com/Xaan1506/NSTrack-Backend/internal/testutil"
)

func newTestServices(t *testing.T, cfg *config.Config, rdb *redis.Client) (*Services, *dependency.Dependency) {
	t.Helper()

	myDB := testutil.SetupTestDB(t)
	dep := testutil.NewTestDependency(t, cfg, myDB, rdb)

	svcs, err := NewServices(dep)
	require.NoError(t, err)

	return svcs, dep
}

func createUsers(t *testing.T, dep *dependency.Dependency, emails ...string) []model.User {
	t.Helper()

	users := make([]model.User, 0, len(emails))
	for _, email := range emails {
		users = append(users, testutil.CreateUser(t, dep, "user "+email, email))
	}
	return users
}
