package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cineview-backend/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOMDBStub(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func (e *testEnv) newFilmService(baseURL string) FilmService {
	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := &config.Config{
		OMDB: config.OMDBConfig{
			APIKey:      "test-key",
			BaseURL:     baseURL,
			HTTPTimeout: 5 * time.Second,
		},
	}
	return NewFilmService(e.films, e.genres, e.languages, e.reviews, cfg, log)
}

func TestImportByIMDBID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	var requests int
	stub := newOMDBStub(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "tt0133093", r.URL.Query().Get("i"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		fmt.Fprint(w, `{
			"Response": "True",
			"imdbID": "tt0133093",
			"Title": "The Matrix",
			"Year": "1999",
			"Genre": "Action, Sci-Fi",
			"Language": "English",
			"Released": "31 Mar 1999",
			"Poster": "http://img.example/matrix.jpg",
			"Plot": "A hacker learns the truth."
		}`)
	})

	svc := env.newFilmService(stub.URL)

	film, created, err := svc.ImportByIMDBID(ctx, "tt0133093")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "The Matrix", film.Title)
	assert.Equal(t, "1999", film.Year)
	require.NotNil(t, film.ReleaseDate)
	assert.Equal(t, 1999, film.ReleaseDate.Year())
	assert.Len(t, film.Genres, 2)
	require.NotNil(t, film.LanguageID)

	// A second import returns the stored film without refetching.
	again, created, err := svc.ImportByIMDBID(ctx, "tt0133093")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, film.ID, again.ID)
	assert.Equal(t, 1, requests)
}

func TestImportByIMDBIDHandlesPlaceholders(t *testing.T) {
	env := newTestEnv(t)

	stub := newOMDBStub(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"Response": "True",
			"imdbID": "tt0000001",
			"Title": "Obscure Short",
			"Year": "1901",
			"Genre": "N/A",
			"Language": "N/A",
			"Released": "N/A",
			"Poster": "N/A",
			"Plot": "N/A"
		}`)
	})

	svc := env.newFilmService(stub.URL)

	film, created, err := svc.ImportByIMDBID(context.Background(), "tt0000001")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Empty(t, film.PosterURL)
	assert.Empty(t, film.Plot)
	assert.Nil(t, film.ReleaseDate)
	assert.Empty(t, film.Genres)
	assert.Nil(t, film.LanguageID)
}

func TestImportByIMDBIDUnknownID(t *testing.T) {
	env := newTestEnv(t)

	stub := newOMDBStub(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Response": "False", "Error": "Incorrect IMDb ID."}`)
	})

	svc := env.newFilmService(stub.URL)

	_, _, err := svc.ImportByIMDBID(context.Background(), "tt9999999")
	assert.ErrorIs(t, err, ErrFilmNotInCatalog)
}

func TestImportByIMDBIDProviderDown(t *testing.T) {
	env := newTestEnv(t)

	stub := newOMDBStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	svc := env.newFilmService(stub.URL)

	_, _, err := svc.ImportByIMDBID(context.Background(), "tt0133093")
	assert.ErrorIs(t, err, ErrMetadataLookup)
}

func TestSearchOMDB(t *testing.T) {
	env := newTestEnv(t)

	stub := newOMDBStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "matrix", r.URL.Query().Get("s"))
		fmt.Fprint(w, `{
			"Response": "True",
			"Search": [
				{"imdbID": "tt0133093", "Title": "The Matrix", "Year": "1999", "Poster": "http://img.example/matrix.jpg"},
				{"imdbID": "tt0234215", "Title": "The Matrix Reloaded", "Year": "2003", "Poster": "N/A"}
			]
		}`)
	})

	svc := env.newFilmService(stub.URL)

	results, err := svc.SearchOMDB(context.Background(), "matrix")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "The Matrix", results[0].Title)
}

func TestSearchOMDBNoResults(t *testing.T) {
	env := newTestEnv(t)

	stub := newOMDBStub(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Response": "False", "Error": "Movie not found!"}`)
	})

	svc := env.newFilmService(stub.URL)

	results, err := svc.SearchOMDB(context.Background(), "zzzzzz")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGetFilmDetailCountsViews(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	film := env.createFilm(t, "Akira")
	alice := env.createUser(t, "alice")
	env.createReview(t, film.ID, alice.ID, 9)

	svc := env.newFilmService("http://omdb.invalid")

	detail, err := svc.GetFilmDetail(ctx, film.ID, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, detail.Film.Views)
	assert.Len(t, detail.Reviews, 1)
	assert.True(t, detail.UserReviewed)

	detail, err = svc.GetFilmDetail(ctx, film.ID, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, detail.Film.Views)
	assert.False(t, detail.UserReviewed)

	_, err = svc.GetFilmDetail(ctx, 404, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchLocal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createFilm(t, "The Godfather")
	env.createFilm(t, "The Godfather Part II")
	env.createFilm(t, "Goodfellas")

	svc := env.newFilmService("http://omdb.invalid")

	films, err := svc.SearchLocal(ctx, "godfather", 10)
	require.NoError(t, err)
	assert.Len(t, films, 2)

	films, err = svc.SearchLocal(ctx, "GOODFELLAS", 10)
	require.NoError(t, err)
	assert.Len(t, films, 1)
}
