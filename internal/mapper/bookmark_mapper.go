package mapper

import (
	"notemark-be/internal/entity"
	"notemark-be/internal/model"
)

type BookmarkMapper struct{}

func NewBookmarkMapper() *BookmarkMapper {
	return &BookmarkMapper{}
}

func (m *BookmarkMapper) ToEntity(b *model.Bookmark) *entity.Bookmark {
	if b == nil {
		return nil
	}

	return &entity.Bookmark{
		Id:          b.Id,
		Url:         b.Url,
		Title:       b.Title,
		Description: b.Description,
		Tags:        tagsFromJSON(b.Tags),
		IsFavorite:  b.IsFavorite,
		UserId:      b.UserId,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (m *BookmarkMapper) ToModel(b *entity.Bookmark) *model.Bookmark {
	if b == nil {
		return nil
	}

	return &model.Bookmark{
		Id:          b.Id,
		Url:         b.Url,
		Title:       b.Title,
		Description: b.Description,
		Tags:        tagsToJSON(b.Tags),
		IsFavorite:  b.IsFavorite,
		UserId:      b.UserId,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (m *BookmarkMapper) ToEntities(bookmarks []*model.Bookmark) []*entity.Bookmark {
	entities := make([]*entity.Bookmark, len(bookmarks))
	for i, b := range bookmarks {
		entities[i] = m.ToEntity(b)
	}
	return entities
}
