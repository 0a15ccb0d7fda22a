package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xaan1506/NSTrack-Backend/internal/apperror"
	"github.com/Xaan1506/NSTrack-Backend/internal/dto"
	"github.com/Xaan1506/NSTrack-Backend/internal/testutil"
)

func strPtr(s string) *string {
	return &s
}

func TestSignup(t *testing.T) {
	svcs, dep := newTestServices(t, nil, nil)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		result, err := svcs.Users.Signup(ctx, &dto.SignupRequest{
			Name:       "Ada",
			Email:      "ada@example.com",
			Password:   testutil.TestPassword,
			SkillLevel: strPtr("beginner"),
		})
		require.NoError(t, err)
		require.NotEmpty(t, result.Token)

		assert.Equal(t, "Ada", result.User.Name)
		assert.NotEqual(t, testutil.TestPassword, result.User.PasswordHash)
		assert.Zero(t, result.User.Points)
		assert.Zero(t, result.User.Streak)
		assert.Zero(t, result.User.TopicsCompleted)
		assert.Zero(t, result.User.ProblemsSolved)

		subject, err := dep.Tokens.Validate(result.Token)
		require.NoError(t, err)
		assert.Equal(t, result.User.ID, subject)

		resp := result.AuthResponse()
		assert.Equal(t, "bearer", resp.TokenType)
		assert.Equal(t, "ada@example.com", resp.User.Email)
		assert.Equal(t, "beginner", *resp.User.SkillLevel)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		_, err := svcs.Users.Signup(ctx, &dto.SignupRequest{
			Name:     "Other",
			Email:    "ada@example.com",
			Password: "another-password",
		})
		require.ErrorIs(t, err, apperror.ErrDuplicateEmail)
	})
}

func TestLogin(t *testing.T) {
	svcs, dep := newTestServices(t, nil, nil)
	ctx := context.Background()

	user := testutil.CreateUser(t, dep, "Bob", "bob@example.com")

	t.Run("SuccessResolvesToSameUser", func(t *testing.T) {
		result, err := svcs.Users.Login(ctx, &dto.LoginRequest{Email: "bob@example.com", Password: testutil.TestPassword})
		require.NoError(t, err)

		resolved, err := svcs.Session.Resolve(ctx, result.Token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, resolved.ID)
		assert.Equal(t, user.Email, resolved.Email)
	})

	t.Run("FailuresAreIndistinguishable", func(t *testing.T) {
		_, wrongPassword := svcs.Users.Login(ctx, &dto.LoginRequest{Email: "bob@example.com", Password: "wrong"})
		_, unknownEmail := svcs.Users.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: testutil.TestPassword})

		require.ErrorIs(t, wrongPassword, apperror.ErrInvalidCredentials)
		require.ErrorIs(t, unknownEmail, apperror.ErrInvalidCredentials)
		assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
		assert.Equal(t, wrongPassword, unknownEmail)
	})

	t.Run("PasswordsSharingFirst72BytesAreEquivalent", func(t *testing.T) {
		long := strings.Repeat("a", 72)
		_, err := svcs.Users.Signup(ctx, &dto.SignupRequest{Name: "Long", Email: "long@example.com", Password: long + "first"})
		require.NoError(t, err)

		_, err = svcs.Users.Login(ctx, &dto.LoginRequest{Email: "long@example.com", Password: long + "second"})
		assert.NoError(t, err)
	})
}

func TestProfile(t *testing.T) {
	svcs, dep := newTestServices(t, nil, nil)

	user := testutil.CreateUser(t, dep, "Cy", "cy@example.com")
	profile := svcs.Users.Profile(&user)

	assert.Equal(t, "Cy", profile.Name)
	assert.Equal(t, "cy@example.com", profile.Email)
	require.NotNil(t, profile.CreatedAt)
	assert.Zero(t, profile.Points)
}

func TestListUsers(t *testing.T) {
	svcs, dep := newTestServices(t, nil, nil)
	createUsers(t, dep, "a@example.com", "b@example.com")

	users, err := svcs.Users.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
