package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Bookmark struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Url         string         `gorm:"type:text;not null"`
	Title       *string        `gorm:"type:varchar(255)"`
	Description *string        `gorm:"type:text"`
	Tags        datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	IsFavorite  bool           `gorm:"not null;default:false;index"`
	UserId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime;index"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}
