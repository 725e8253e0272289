package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"notemark-be/internal/dto"
	"notemark-be/internal/entity"
	"notemark-be/internal/repository/specification"
	"notemark-be/internal/repository/unitofwork"
	"notemark-be/pkg/events"
	pktNats "notemark-be/pkg/nats"

	"github.com/google/uuid"
)

type IBookmarkService interface {
	List(ctx context.Context, userId uuid.UUID, filter *dto.ListFilter) ([]*dto.BookmarkResponse, error)
	AllTags(ctx context.Context, userId uuid.UUID) ([]string, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateBookmarkRequest) (*dto.CreateBookmarkResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.BookmarkResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateBookmarkRequest) (*dto.UpdateBookmarkResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	ToggleFavorite(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type bookmarkService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewBookmarkService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher) IBookmarkService {
	return &bookmarkService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (s *bookmarkService) List(ctx context.Context, userId uuid.UUID, filter *dto.ListFilter) ([]*dto.BookmarkResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	}
	if filter != nil && filter.Search != "" {
		specs = append(specs, specification.TextSearch{
			Query:   filter.Search,
			Columns: []string{"title", "url", "description"},
		})
	}
	if filter != nil && len(filter.Tags) > 0 {
		specs = append(specs, specification.TagsContain{Tags: entity.NormalizeTags(filter.Tags)})
	}
	if filter != nil && filter.Limit > 0 {
		specs = append(specs, specification.Pagination{Limit: filter.Limit, Offset: filter.Offset})
	}

	bookmarks, err := uow.BookmarkRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	bookmarks = favoritesFirst(bookmarks, func(b *entity.Bookmark) bool { return b.IsFavorite })

	res := make([]*dto.BookmarkResponse, len(bookmarks))
	for i, b := range bookmarks {
		res[i] = toBookmarkResponse(b)
	}
	return res, nil
}

func (s *bookmarkService) AllTags(ctx context.Context, userId uuid.UUID) ([]string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	bookmarks, err := uow.BookmarkRepository().FindAll(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	tagSets := make([][]string, len(bookmarks))
	for i, b := range bookmarks {
		tagSets[i] = b.Tags
	}
	return collectTags(tagSets), nil
}

// Create rejects a URL that does not parse as absolute before any store
// write happens.
func (s *bookmarkService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateBookmarkRequest) (*dto.CreateBookmarkResponse, error) {
	if !isValidUrl(req.Url) {
		return nil, errors.New("Please enter a valid URL")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	bookmark := entity.Bookmark{
		Id:          uuid.New(),
		Url:         strings.TrimSpace(req.Url),
		Title:       optionalString(req.Title),
		Description: optionalString(req.Description),
		Tags:        entity.NormalizeTags(req.Tags),
		UserId:      userId,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := uow.BookmarkRepository().Create(ctx, &bookmark); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "BOOKMARK_CREATED",
			Data: map[string]interface{}{
				"url":         bookmark.Url,
				"bookmark_id": bookmark.Id,
				"user_id":     userId,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish BOOKMARK_CREATED event: %v\n", err)
		}
	}

	return &dto.CreateBookmarkResponse{Id: bookmark.Id}, nil
}

func (s *bookmarkService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.BookmarkResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	bookmark, err := uow.BookmarkRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if bookmark == nil {
		return nil, nil // Not found
	}

	return toBookmarkResponse(bookmark), nil
}

func (s *bookmarkService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateBookmarkRequest) (*dto.UpdateBookmarkResponse, error) {
	if !isValidUrl(req.Url) {
		return nil, errors.New("Please enter a valid URL")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	bookmark, err := uow.BookmarkRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if bookmark == nil {
		return nil, nil
	}

	bookmark.Url = strings.TrimSpace(req.Url)
	bookmark.Title = optionalString(req.Title)
	bookmark.Description = optionalString(req.Description)
	bookmark.Tags = entity.NormalizeTags(req.Tags)
	bookmark.UpdatedAt = time.Now()

	if err := uow.BookmarkRepository().Update(ctx, bookmark); err != nil {
		return nil, err
	}

	return &dto.UpdateBookmarkResponse{Id: bookmark.Id}, nil
}

func (s *bookmarkService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	bookmark, err := uow.BookmarkRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if bookmark == nil {
		return nil
	}

	return uow.BookmarkRepository().Delete(ctx, id)
}

func (s *bookmarkService) ToggleFavorite(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	bookmark, err := uow.BookmarkRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if bookmark == nil {
		return errors.New("Bookmark not found")
	}

	bookmark.IsFavorite = !bookmark.IsFavorite
	bookmark.UpdatedAt = time.Now()

	return uow.BookmarkRepository().Update(ctx, bookmark)
}

func toBookmarkResponse(b *entity.Bookmark) *dto.BookmarkResponse {
	return &dto.BookmarkResponse{
		Id:          b.Id,
		Url:         b.Url,
		Title:       b.Title,
		Description: b.Description,
		Tags:        b.Tags,
		IsFavorite:  b.IsFavorite,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
