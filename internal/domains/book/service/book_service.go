package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	authorModel "book-catalog/internal/domains/author/model"
	"book-catalog/internal/domains/book/model"
	"book-catalog/internal/domains/book/repository"
	"book-catalog/internal/shared/apperror"
	"book-catalog/internal/shared/validator"
	"book-catalog/pkg/cache"

	"github.com/rs/zerolog/log"
)

type Config struct {
	PageSize          int
	AllowAuthorCreate bool
	CacheTTL          time.Duration
}

// BookService - implements ServiceInterface
type BookService struct {
	repo    repository.RepositoryInterface
	authors AuthorResolver
	cache   cache.Cache
	cfg     Config
}

func NewService(repo repository.RepositoryInterface, authors AuthorResolver, c cache.Cache, cfg Config) ServiceInterface {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	return &BookService{repo: repo, authors: authors, cache: c, cfg: cfg}
}

func (s *BookService) ListBooks(ctx context.Context, page int, author string) ([]model.BookResponse, error) {
	effective := model.EffectivePage(page)
	cacheKey := model.ListCacheKey(effective, author)

	var cached []model.BookResponse
	if found, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("[BookService] cache read failed")
	} else if found && len(cached) > 0 {
		return cached, nil
	}

	books, err := s.repo.List(ctx, model.ListFilter{
		Author: author,
		Offset: uint64(effective) * uint64(s.cfg.PageSize),
		Limit:  uint64(s.cfg.PageSize),
	})
	if err != nil {
		return nil, apperror.System(err)
	}
	if len(books) == 0 {
		return nil, apperror.NotFound(nil)
	}

	s.cacheSet(ctx, cacheKey, books)
	return books, nil
}

func (s *BookService) GetBook(ctx context.Context, id int64) (*model.BookResponse, error) {
	cacheKey := model.DetailCacheKey(id)

	var cached model.BookResponse
	if found, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("[BookService] cache read failed")
	} else if found {
		return &cached, nil
	}

	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}

	s.cacheSet(ctx, cacheKey, book)
	return book, nil
}

func (s *BookService) CreateBook(ctx context.Context, input map[string]interface{}) (*model.CreatedResponse, error) {
	if len(input) == 0 {
		return nil, apperror.MissingParams()
	}
	if err := model.Rules.Validate(input); err != nil {
		return nil, err
	}

	price, err := validator.MustFloat(input[model.FieldPrice])
	if err != nil {
		return nil, apperror.Validation(fmt.Sprintf("The %s parameter must be a number.", model.FieldPrice))
	}

	author, err := s.resolveAuthor(ctx, input[model.FieldAuthorName].(string))
	if err != nil {
		return nil, err
	}

	newBook := model.NewBook{
		Title:    input[model.FieldTitle].(string),
		Price:    price,
		AuthorID: author.ID,
	}
	if desc, ok := input[model.FieldDescription].(string); ok {
		newBook.Description = &desc
	}

	id, err := s.repo.Create(ctx, newBook)
	if err != nil {
		return nil, apperror.System(err)
	}

	s.invalidateLists(ctx)
	log.Info().Int64("book_id", id).Int64("author_id", author.ID).Msg("Book created")

	return &model.CreatedResponse{ID: id}, nil
}

func (s *BookService) UpdateBook(ctx context.Context, id int64, input map[string]interface{}) (*model.BookResponse, error) {
	// book phải tồn tại trước khi xét body
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, mapStoreError(err)
	}

	if !model.Rules.AnyPresent(input) {
		return nil, apperror.MissingParams()
	}
	if err := model.Rules.ValidatePartial(input); err != nil {
		return nil, err
	}

	var patch model.BookPatch
	if title, ok := input[model.FieldTitle].(string); ok {
		patch.Title = &title
	}
	if desc, ok := input[model.FieldDescription].(string); ok {
		patch.Description = &desc
	}
	if raw, ok := input[model.FieldPrice]; ok && raw != nil {
		price, err := validator.MustFloat(raw)
		if err != nil {
			return nil, apperror.Validation(fmt.Sprintf("The %s parameter must be a number.", model.FieldPrice))
		}
		patch.Price = &price
	}
	if name, ok := input[model.FieldAuthorName].(string); ok {
		author, err := s.resolveAuthor(ctx, name)
		if err != nil {
			return nil, err
		}
		patch.AuthorID = &author.ID
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, mapStoreError(err)
	}

	s.invalidateBook(ctx, id)
	log.Info().Int64("book_id", id).Msg("Book updated")

	return updated, nil
}

func (s *BookService) DeleteBook(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapStoreError(err)
	}

	s.invalidateBook(ctx, id)
	log.Info().Int64("book_id", id).Msg("Book deleted")
	return nil
}

// resolveAuthor: lookup theo name -> tạo mới nếu được phép -> NotFound
func (s *BookService) resolveAuthor(ctx context.Context, name string) (*authorModel.Author, error) {
	author, err := s.authors.ResolveByName(ctx, name, s.cfg.AllowAuthorCreate)
	if err != nil {
		if errors.Is(err, authorModel.ErrAuthorNotFound) {
			return nil, apperror.NotFound(err)
		}
		return nil, apperror.System(err)
	}
	return author, nil
}

func (s *BookService) cacheSet(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value, s.cfg.CacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[BookService] cache write failed")
	}
}

func (s *BookService) invalidateLists(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, model.BookListKeyPattern); err != nil {
		log.Warn().Err(err).Msg("[BookService] list cache invalidation failed")
	}
}

func (s *BookService) invalidateBook(ctx context.Context, id int64) {
	if err := s.cache.Delete(ctx, model.DetailCacheKey(id)); err != nil {
		log.Warn().Err(err).Int64("book_id", id).Msg("[BookService] detail cache invalidation failed")
	}
	s.invalidateLists(ctx)
}

func mapStoreError(err error) error {
	if errors.Is(err, model.ErrBookNotFound) {
		return apperror.NotFound(err)
	}
	return apperror.System(err)
}
