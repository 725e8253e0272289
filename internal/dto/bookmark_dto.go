package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateBookmarkRequest struct {
	Url         string   `json:"url" validate:"required"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type CreateBookmarkResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateBookmarkRequest struct {
	Id          uuid.UUID
	Url         string   `json:"url" validate:"required"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type UpdateBookmarkResponse struct {
	Id uuid.UUID `json:"id"`
}

type BookmarkResponse struct {
	Id          uuid.UUID `json:"id"`
	Url         string    `json:"url"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Tags        []string  `json:"tags"`
	IsFavorite  bool      `json:"is_favorite"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
