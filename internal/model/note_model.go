package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Note has no DeletedAt column: delete is permanent, a removed record
// leaves no tombstone.
type Note struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title      string         `gorm:"type:varchar(255);not null"`
	Content    *string        `gorm:"type:text"`
	Tags       datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	IsFavorite bool           `gorm:"not null;default:false;index"`
	UserId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime;index"`
}

func (Note) TableName() string {
	return "notes"
}
