package services

import (
	"context"
	"testing"

	"cineview-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleDefaultWatchlist(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "alice")
	film := env.createFilm(t, "Duel")

	action, err := env.watchlist.ToggleDefault(ctx, user.ID, film.ID)
	require.NoError(t, err)
	assert.Equal(t, repository.WatchlistActionAdded, action)

	films, err := env.watchlists.DefaultFilms(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, films, 1)

	action, err = env.watchlist.ToggleDefault(ctx, user.ID, film.ID)
	require.NoError(t, err)
	assert.Equal(t, repository.WatchlistActionRemoved, action)

	films, err = env.watchlists.DefaultFilms(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, films)
}

func TestToggleDefaultUnknownFilm(t *testing.T) {
	env := newTestEnv(t)

	user := env.createUser(t, "alice")

	_, err := env.watchlist.ToggleDefault(context.Background(), user.ID, 123)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddToCustomWatchlistCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "alice")
	first := env.createFilm(t, "Casablanca")
	second := env.createFilm(t, "Notorious")

	added, err := env.watchlist.AddToCustom(ctx, user.ID, first.ID, "Classics")
	require.NoError(t, err)
	assert.True(t, added)

	// "classics" resolves to the same list as "Classics".
	added, err = env.watchlist.AddToCustom(ctx, user.ID, second.ID, "classics")
	require.NoError(t, err)
	assert.True(t, added)

	lists, err := env.watchlist.Lists(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, "Classics", lists[0].Name)
	assert.Len(t, lists[0].Films, 2)
}

func TestAddToCustomWatchlistIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "alice")
	film := env.createFilm(t, "Metropolis")

	added, err := env.watchlist.AddToCustom(ctx, user.ID, film.ID, "Silent Era")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = env.watchlist.AddToCustom(ctx, user.ID, film.ID, "Silent Era")
	require.NoError(t, err)
	assert.False(t, added)

	lists, err := env.watchlist.Lists(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Len(t, lists[0].Films, 1)
}

func TestAddToCustomWatchlistNameRequired(t *testing.T) {
	env := newTestEnv(t)

	user := env.createUser(t, "alice")
	film := env.createFilm(t, "Nosferatu")

	_, err := env.watchlist.AddToCustom(context.Background(), user.ID, film.ID, "   ")
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestWatchlistsArePerUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	film := env.createFilm(t, "M")

	_, err := env.watchlist.AddToCustom(ctx, alice.ID, film.ID, "Thrillers")
	require.NoError(t, err)

	lists, err := env.watchlist.Lists(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, lists)
}
