package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cineview-backend/internal/config"
	"cineview-backend/internal/models"
	"cineview-backend/internal/repository"

	"github.com/sirupsen/logrus"
)

// omdbReleasedLayout matches OMDb's "Released" field, e.g. "15 Oct 1999".
const omdbReleasedLayout = "02 Jan 2006"

type FilmDetail struct {
	Film         models.Film     `json:"film"`
	Reviews      []models.Review `json:"reviews"`
	UserReviewed bool            `json:"user_reviewed"`
}

type FilmService interface {
	ListFilms(ctx context.Context, page, limit int) ([]models.Film, int64, error)
	// GetFilmDetail bumps the view counter, joins reviews with their
	// authors, and reports whether the viewer already reviewed the film.
	// viewerID is zero for anonymous requests.
	GetFilmDetail(ctx context.Context, id, viewerID uint) (*FilmDetail, error)
	SearchOMDB(ctx context.Context, query string) ([]models.OMDBSearchItem, error)
	SearchLocal(ctx context.Context, query string, limit int) ([]models.Film, error)
	// ImportByIMDBID returns the existing film for an already-imported id,
	// otherwise fetches OMDb metadata and inserts a new film.
	ImportByIMDBID(ctx context.Context, imdbID string) (*models.Film, bool, error)
}

type filmService struct {
	repo       repository.FilmRepository
	genreRepo  repository.GenreRepository
	langRepo   repository.LanguageRepository
	reviews    repository.ReviewRepository
	config     *config.Config
	logger     *logrus.Logger
	httpClient *http.Client
}

func NewFilmService(repo repository.FilmRepository, genreRepo repository.GenreRepository, langRepo repository.LanguageRepository, reviews repository.ReviewRepository, cfg *config.Config, logger *logrus.Logger) FilmService {
	return &filmService{
		repo:      repo,
		genreRepo: genreRepo,
		langRepo:  langRepo,
		reviews:   reviews,
		config:    cfg,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: cfg.OMDB.HTTPTimeout,
		},
	}
}

func (s *filmService) ListFilms(ctx context.Context, page, limit int) ([]models.Film, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.FindAll(ctx, page, limit)
}

func (s *filmService) GetFilmDetail(ctx context.Context, id, viewerID uint) (*FilmDetail, error) {
	film, err := s.repo.IncrementViews(ctx, id)
	if err != nil {
		return nil, err
	}
	if film == nil {
		return nil, ErrNotFound
	}

	reviews, err := s.reviews.FindByFilm(ctx, id)
	if err != nil {
		return nil, err
	}

	userReviewed := false
	if viewerID != 0 {
		userReviewed, err = s.reviews.ExistsByFilmAndUser(ctx, id, viewerID)
		if err != nil {
			return nil, err
		}
	}

	return &FilmDetail{
		Film:         *film,
		Reviews:      reviews,
		UserReviewed: userReviewed,
	}, nil
}

func (s *filmService) SearchOMDB(ctx context.Context, query string) ([]models.OMDBSearchItem, error) {
	u := fmt.Sprintf("%s/?s=%s&apikey=%s&type=movie",
		s.config.OMDB.BaseURL,
		url.QueryEscape(query),
		url.QueryEscape(s.config.OMDB.APIKey),
	)

	var out models.OMDBSearchResponse
	if err := s.fetchOMDB(ctx, u, &out); err != nil {
		return nil, err
	}
	if out.Response != "True" {
		// "Movie not found!" is a normal empty result, not an outage.
		return nil, nil
	}
	return out.Search, nil
}

func (s *filmService) SearchLocal(ctx context.Context, query string, limit int) ([]models.Film, error) {
	if limit < 1 {
		limit = 20
	}
	return s.repo.SearchByTitle(ctx, query, limit)
}

func (s *filmService) ImportByIMDBID(ctx context.Context, imdbID string) (*models.Film, bool, error) {
	existing, err := s.repo.FindByIMDBID(ctx, imdbID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check existing film: %w", err)
	}
	if existing != nil {
		return existing, false, nil
	}

	u := fmt.Sprintf("%s/?i=%s&apikey=%s",
		s.config.OMDB.BaseURL,
		url.QueryEscape(imdbID),
		url.QueryEscape(s.config.OMDB.APIKey),
	)

	var resp models.OMDBFilmResponse
	if err := s.fetchOMDB(ctx, u, &resp); err != nil {
		return nil, false, err
	}
	if resp.Response != "True" {
		return nil, false, ErrFilmNotInCatalog
	}

	film := &models.Film{
		IMDBID:    &imdbID,
		Title:     resp.Title,
		Year:      resp.Year,
		PosterURL: nullableOMDB(resp.Poster),
		Plot:      nullableOMDB(resp.Plot),
	}

	if released := nullableOMDB(resp.Released); released != "" {
		if t, err := time.Parse(omdbReleasedLayout, released); err == nil {
			film.ReleaseDate = &t
		}
	}

	for _, name := range splitOMDBList(resp.Genre) {
		genre, err := s.genreRepo.FindOrCreate(ctx, name)
		if err != nil {
			s.logger.WithError(err).WithField("genre", name).Error("Error creating genre")
			continue
		}
		film.Genres = append(film.Genres, *genre)
	}

	if names := splitOMDBList(resp.Language); len(names) > 0 {
		language, err := s.langRepo.FindOrCreate(ctx, names[0])
		if err != nil {
			s.logger.WithError(err).WithField("language", names[0]).Error("Error creating language")
		} else {
			film.LanguageID = &language.ID
		}
	}

	if err := s.repo.Create(ctx, film); err != nil {
		return nil, false, fmt.Errorf("failed to create film: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"imdb_id": imdbID,
		"title":   film.Title,
	}).Info("Film imported from OMDb")

	return film, true, nil
}

func (s *filmService) fetchOMDB(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.WithError(err).Error("OMDb request failed")
		return ErrMetadataLookup
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		s.logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   string(body),
		}).Error("OMDb returned non-OK status")
		return ErrMetadataLookup
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		s.logger.WithError(err).Error("Failed to decode OMDb response")
		return ErrMetadataLookup
	}
	return nil
}

// nullableOMDB maps OMDb's "N/A" placeholder to the empty string.
func nullableOMDB(v string) string {
	if v == "N/A" {
		return ""
	}
	return v
}

func splitOMDBList(v string) []string {
	v = nullableOMDB(v)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
