package services

import (
	"context"

	"cineview-backend/internal/models"
	"cineview-backend/internal/repository"

	"github.com/sirupsen/logrus"
)

const (
	feedTrendingLimit = 10
	feedReviewLimit   = 10

	homePopularLimit = 10
	homeNewFilmLimit = 10
	homeArticleLimit = 3
)

type SocialService interface {
	ToggleFollow(ctx context.Context, followerID, targetID uint) (string, error)
	Followers(ctx context.Context, username string) (*models.User, []models.User, error)
	Following(ctx context.Context, username string) (*models.User, []models.User, error)
	// UserPage is the public profile: reviews with films resolved, edge
	// counts, and whether the viewer follows this user. viewerID is zero
	// for anonymous requests.
	UserPage(ctx context.Context, username string, viewerID uint) (*models.UserPage, error)
	// Feed computes the "for you" page for the viewer at request time.
	Feed(ctx context.Context, viewerID uint) (*models.Feed, error)
	// Home is the anonymous landing page: popular films, newest
	// releases, and the latest articles.
	Home(ctx context.Context) (*models.Home, error)
}

type socialService struct {
	follows    repository.FollowRepository
	users      repository.UserRepository
	films      repository.FilmRepository
	reviews    repository.ReviewRepository
	watchlists repository.WatchlistRepository
	articles   repository.ArticleRepository
	logger     *logrus.Logger
}

func NewSocialService(follows repository.FollowRepository, users repository.UserRepository, films repository.FilmRepository, reviews repository.ReviewRepository, watchlists repository.WatchlistRepository, articles repository.ArticleRepository, logger *logrus.Logger) SocialService {
	return &socialService{
		follows:    follows,
		users:      users,
		films:      films,
		reviews:    reviews,
		watchlists: watchlists,
		articles:   articles,
		logger:     logger,
	}
}

func (s *socialService) ToggleFollow(ctx context.Context, followerID, targetID uint) (string, error) {
	if followerID == targetID {
		return "", ErrSelfFollow
	}

	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return "", err
	}
	if target == nil {
		return "", ErrNotFound
	}

	return s.follows.Toggle(ctx, followerID, targetID)
}

func (s *socialService) Followers(ctx context.Context, username string) (*models.User, []models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrNotFound
	}
	followers, err := s.follows.FollowersOf(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, followers, nil
}

func (s *socialService) Following(ctx context.Context, username string) (*models.User, []models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrNotFound
	}
	following, err := s.follows.FollowingOf(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, following, nil
}

func (s *socialService) UserPage(ctx context.Context, username string, viewerID uint) (*models.UserPage, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	reviews, err := s.reviews.FindByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	followers, err := s.follows.CountFollowers(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	following, err := s.follows.CountFollowing(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	isFollowing := false
	if viewerID != 0 && viewerID != user.ID {
		isFollowing, err = s.follows.IsFollowing(ctx, viewerID, user.ID)
		if err != nil {
			return nil, err
		}
	}

	return &models.UserPage{
		User:           *user,
		Reviews:        reviews,
		FollowersCount: followers,
		FollowingCount: following,
		IsFollowing:    isFollowing,
	}, nil
}

func (s *socialService) Feed(ctx context.Context, viewerID uint) (*models.Feed, error) {
	trending, err := s.films.MostViewed(ctx, feedTrendingLimit)
	if err != nil {
		return nil, err
	}

	feed := &models.Feed{
		Trending:       trending,
		GenreWatchlist: map[string][]models.Film{},
	}
	if len(trending) > 0 {
		feed.Highlight = &trending[0]
	}

	recent, err := s.reviews.Recent(ctx, feedReviewLimit)
	if err != nil {
		return nil, err
	}
	for _, review := range recent {
		if review.User == nil {
			continue
		}
		author := *review.User
		isFollowing := false
		if author.ID != viewerID {
			isFollowing, err = s.follows.IsFollowing(ctx, viewerID, author.ID)
			if err != nil {
				return nil, err
			}
		}
		review.User = nil
		feed.RecentReviews = append(feed.RecentReviews, models.FeedReview{
			Review:      review,
			Author:      author,
			IsFollowing: isFollowing,
		})
	}

	watchlist, err := s.watchlists.DefaultFilms(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	for _, film := range watchlist {
		for _, genre := range film.Genres {
			feed.GenreWatchlist[genre.Name] = append(feed.GenreWatchlist[genre.Name], film)
		}
	}

	custom, err := s.watchlists.ListByOwner(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	feed.CustomWatchlists = custom

	return feed, nil
}

func (s *socialService) Home(ctx context.Context) (*models.Home, error) {
	popular, err := s.films.MostViewed(ctx, homePopularLimit)
	if err != nil {
		return nil, err
	}

	newest, _, err := s.films.FindAll(ctx, 1, homeNewFilmLimit)
	if err != nil {
		return nil, err
	}

	articles, err := s.articles.FindAll(ctx, homeArticleLimit)
	if err != nil {
		return nil, err
	}

	return &models.Home{
		Popular:        popular,
		NewReleases:    newest,
		RecentArticles: articles,
	}, nil
}
