package entity

import (
	"time"

	"github.com/google/uuid"
)

type Bookmark struct {
	Id          uuid.UUID
	Url         string
	Title       *string
	Description *string
	Tags        []string
	IsFavorite  bool
	UserId      uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
