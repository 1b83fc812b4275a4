package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"book-catalog/internal/domains/author/model"
	"book-catalog/internal/domains/author/repository"
	"book-catalog/pkg/cache"
	"book-catalog/pkg/metrics"

	"github.com/rs/zerolog/log"
)

const authorListCacheKey = "authors:list"

type ServiceInterface interface {
	ListAuthors(ctx context.Context) ([]model.Author, error)

	// ResolveByName: tìm author theo name; nếu chưa có và allowCreate thì
	// get-or-create, ngược lại trả ErrAuthorNotFound
	ResolveByName(ctx context.Context, name string, allowCreate bool) (*model.Author, error)
}

type AuthorService struct {
	repo     repository.RepositoryInterface
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewAuthorService(repo repository.RepositoryInterface, c cache.Cache, cacheTTL time.Duration) ServiceInterface {
	return &AuthorService{repo: repo, cache: c, cacheTTL: cacheTTL}
}

func (s *AuthorService) ListAuthors(ctx context.Context) ([]model.Author, error) {
	var cached []model.Author
	if found, err := s.cache.Get(ctx, authorListCacheKey, &cached); err == nil && found {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("[AuthorService] cache read failed")
	}

	authors, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if authors == nil {
		authors = []model.Author{}
	}

	if err := s.cache.Set(ctx, authorListCacheKey, authors, s.cacheTTL); err != nil {
		log.Warn().Err(err).Msg("[AuthorService] cache write failed")
	}
	return authors, nil
}

func (s *AuthorService) ResolveByName(ctx context.Context, name string, allowCreate bool) (*model.Author, error) {
	author, err := s.repo.FindByName(ctx, name)
	if err == nil {
		return author, nil
	}
	if !errors.Is(err, model.ErrAuthorNotFound) {
		return nil, fmt.Errorf("resolve author: %w", err)
	}
	if !allowCreate {
		return nil, model.ErrAuthorNotFound
	}

	author, created, err := s.repo.GetOrCreateByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("resolve author: %w", err)
	}

	if created {
		metrics.AuthorsCreatedTotal.Inc()
		if err := s.cache.Delete(ctx, authorListCacheKey); err != nil {
			log.Warn().Err(err).Msg("[AuthorService] cache invalidate failed")
		}
		log.Info().Int64("author_id", author.ID).Str("name", author.Name).Msg("Author created")
	}
	return author, nil
}
