package specification

import (
	"encoding/json"
	"strings"

	"gorm.io/gorm"
)

// TextSearch matches a substring (case-insensitive) against any of the
// given columns, OR-ed together. Nullable columns simply fail the ILIKE.
type TextSearch struct {
	Query   string
	Columns []string
}

func (s TextSearch) Apply(db *gorm.DB) *gorm.DB {
	if s.Query == "" || len(s.Columns) == 0 {
		return db
	}

	pattern := "%" + s.Query + "%"
	conditions := make([]string, len(s.Columns))
	args := make([]interface{}, len(s.Columns))
	for i, col := range s.Columns {
		conditions[i] = col + " ILIKE ?"
		args[i] = pattern
	}

	return db.Where(strings.Join(conditions, " OR "), args...)
}

// TagsContain keeps rows whose jsonb tag array contains every given tag.
type TagsContain struct {
	Tags []string
}

func (s TagsContain) Apply(db *gorm.DB) *gorm.DB {
	if len(s.Tags) == 0 {
		return db
	}

	raw, err := json.Marshal(s.Tags)
	if err != nil {
		return db
	}

	return db.Where("tags @> ?::jsonb", string(raw))
}
