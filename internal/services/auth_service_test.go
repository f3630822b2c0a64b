package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.auth.Register(ctx, "alice", "alice@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "hunter2hunter2", user.PasswordHash)

	got, err := env.auth.Authenticate(ctx, "alice", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createUser(t, "alice")

	_, err := env.auth.Authenticate(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown usernames fail the same way as bad passwords.
	_, err = env.auth.Authenticate(ctx, "mallory", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createUser(t, "alice")

	_, err := env.auth.Register(ctx, "alice", "other@example.com", "secret-password")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = env.auth.Register(ctx, "alice2", "alice@example.com", "secret-password")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestGetProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	film := env.createFilm(t, "Chinatown")
	env.createReview(t, film.ID, alice.ID, 9.5)

	_, err := env.social.ToggleFollow(ctx, bob.ID, alice.ID)
	require.NoError(t, err)

	profile, err := env.auth.GetProfile(ctx, alice.ID)
	require.NoError(t, err)

	assert.Equal(t, "alice", profile.User.Username)
	require.Len(t, profile.Reviews, 1)
	assert.InDelta(t, 9.5, profile.Reviews[0].Rating, 0.001)
	assert.EqualValues(t, 1, profile.FollowersCount)
	assert.Zero(t, profile.FollowingCount)
}

func TestUpdateProfileKeepsPicture(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice")

	require.NoError(t, env.auth.UpdateProfile(ctx, alice.ID, "cinephile", "avatars/alice.png"))

	// An empty picture leaves the stored one untouched.
	require.NoError(t, env.auth.UpdateProfile(ctx, alice.ID, "still a cinephile", ""))

	got, err := env.auth.GetUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "still a cinephile", got.Bio)
	assert.Equal(t, "avatars/alice.png", got.ProfilePic)
}
