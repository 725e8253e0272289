package unitofwork

import (
	"context"

	"notemark-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	NoteRepository() contract.NoteRepository
	BookmarkRepository() contract.BookmarkRepository
}
