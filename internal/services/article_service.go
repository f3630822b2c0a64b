package services

import (
	"context"
	"strings"

	"cineview-backend/internal/models"
	"cineview-backend/internal/repository"

	"github.com/sirupsen/logrus"
)

const relatedArticleLimit = 2

type ArticleService interface {
	List(ctx context.Context, limit int) ([]models.Article, error)
	// Detail bumps the view counter and resolves author plus the most
	// recent other articles.
	Detail(ctx context.Context, id uint) (*models.ArticleDetail, error)
	Create(ctx context.Context, authorID uint, title, content, tags, featuredImage string) (*models.Article, error)
	Update(ctx context.Context, id uint, title, content, tags, featuredImage string) (*models.Article, error)
	Delete(ctx context.Context, id uint) error
}

type articleService struct {
	repo   repository.ArticleRepository
	logger *logrus.Logger
}

func NewArticleService(repo repository.ArticleRepository, logger *logrus.Logger) ArticleService {
	return &articleService{
		repo:   repo,
		logger: logger,
	}
}

func (s *articleService) List(ctx context.Context, limit int) ([]models.Article, error) {
	return s.repo.FindAll(ctx, limit)
}

func (s *articleService) Detail(ctx context.Context, id uint) (*models.ArticleDetail, error) {
	article, err := s.repo.IncrementViews(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}

	detail := &models.ArticleDetail{Article: *article}
	if article.Author != nil {
		detail.AuthorUsername = article.Author.Username
		detail.AuthorPic = article.Author.ProfilePic
	}

	related, err := s.repo.Related(ctx, id, relatedArticleLimit)
	if err != nil {
		return nil, err
	}
	detail.Related = related

	return detail, nil
}

func (s *articleService) Create(ctx context.Context, authorID uint, title, content, tags, featuredImage string) (*models.Article, error) {
	article := &models.Article{
		Title:         title,
		Content:       content,
		AuthorID:      authorID,
		Tags:          splitTags(tags),
		FeaturedImage: featuredImage,
	}
	if err := s.repo.Create(ctx, article); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"article_id": article.ID,
		"title":      title,
	}).Info("Article created")

	return article, nil
}

func (s *articleService) Update(ctx context.Context, id uint, title, content, tags, featuredImage string) (*models.Article, error) {
	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}

	article.Title = title
	article.Content = content
	article.Tags = splitTags(tags)
	if featuredImage != "" {
		article.FeaturedImage = featuredImage
	}
	article.Author = nil

	if err := s.repo.Update(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

func (s *articleService) Delete(ctx context.Context, id uint) error {
	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if article == nil {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func splitTags(tags string) []string {
	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
