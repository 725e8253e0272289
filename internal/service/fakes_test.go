package service

import (
	"context"
	"time"

	"notemark-be/internal/entity"
	"notemark-be/internal/repository/contract"
	"notemark-be/internal/repository/specification"
	"notemark-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// In-memory repositories that interpret the concrete specification types,
// so service flows can be exercised without a database.

var (
	_ contract.UserRepository      = (*fakeUserRepository)(nil)
	_ contract.NoteRepository      = (*fakeNoteRepository)(nil)
	_ contract.BookmarkRepository  = (*fakeBookmarkRepository)(nil)
	_ unitofwork.UnitOfWork        = (*fakeUnitOfWork)(nil)
	_ unitofwork.RepositoryFactory = (*fakeFactory)(nil)
)

type fakeUnitOfWork struct {
	users     *fakeUserRepository
	notes     *fakeNoteRepository
	bookmarks *fakeBookmarkRepository
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{
		users:     &fakeUserRepository{},
		notes:     &fakeNoteRepository{},
		bookmarks: &fakeBookmarkRepository{},
	}
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository         { return u.users }
func (u *fakeUnitOfWork) NoteRepository() contract.NoteRepository         { return u.notes }
func (u *fakeUnitOfWork) BookmarkRepository() contract.BookmarkRepository { return u.bookmarks }

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

// capturingPublisher records queued payloads and can be told to fail.
type capturingPublisher struct {
	payloads [][]byte
	err      error
}

func (p *capturingPublisher) Publish(ctx context.Context, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	p.payloads = append(p.payloads, payload)
	return nil
}

// applyPage slices the result set when a Pagination spec is present.
func applyPage[T any](items []T, specs []specification.Specification) []T {
	for _, s := range specs {
		p, ok := s.(specification.Pagination)
		if !ok {
			continue
		}
		if p.Offset >= len(items) {
			return nil
		}
		items = items[p.Offset:]
		if p.Limit > 0 && p.Limit < len(items) {
			items = items[:p.Limit]
		}
	}
	return items
}

// Users

type fakeUserRepository struct {
	users         []*entity.User
	tokens        []*entity.EmailVerificationToken
	refreshTokens []*entity.UserRefreshToken
}

func userMatches(u *entity.User, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if u.Id != sp.ID {
				return false
			}
		case specification.ByEmail:
			if u.Email != sp.Email {
				return false
			}
		}
	}
	return true
}

func tokenMatches(t *entity.EmailVerificationToken, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.UserOwnedBy:
			if t.UserId != sp.UserID {
				return false
			}
		case specification.ByToken:
			if t.Token != sp.Token {
				return false
			}
		}
	}
	return true
}

func (r *fakeUserRepository) Create(ctx context.Context, user *entity.User) error {
	c := *user
	r.users = append(r.users, &c)
	return nil
}

func (r *fakeUserRepository) Update(ctx context.Context, user *entity.User) error {
	for i, u := range r.users {
		if u.Id == user.Id {
			c := *user
			r.users[i] = &c
		}
	}
	return nil
}

func (r *fakeUserRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, u := range r.users {
		if userMatches(u, specs) {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var n int64
	for _, u := range r.users {
		if userMatches(u, specs) {
			n++
		}
	}
	return n, nil
}

func (r *fakeUserRepository) CreateEmailVerificationToken(ctx context.Context, token *entity.EmailVerificationToken) error {
	c := *token
	r.tokens = append(r.tokens, &c)
	return nil
}

func (r *fakeUserRepository) FindEmailVerificationToken(ctx context.Context, specs ...specification.Specification) (*entity.EmailVerificationToken, error) {
	for _, t := range r.tokens {
		if tokenMatches(t, specs) {
			c := *t
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) DeleteEmailVerificationToken(ctx context.Context, id uuid.UUID) error {
	kept := r.tokens[:0]
	for _, t := range r.tokens {
		if t.Id != id {
			kept = append(kept, t)
		}
	}
	r.tokens = kept
	return nil
}

func (r *fakeUserRepository) DeleteEmailVerificationTokensByUser(ctx context.Context, userId uuid.UUID) error {
	kept := r.tokens[:0]
	for _, t := range r.tokens {
		if t.UserId != userId {
			kept = append(kept, t)
		}
	}
	r.tokens = kept
	return nil
}

func (r *fakeUserRepository) CreateRefreshToken(ctx context.Context, token *entity.UserRefreshToken) error {
	c := *token
	r.refreshTokens = append(r.refreshTokens, &c)
	return nil
}

func (r *fakeUserRepository) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	for _, t := range r.refreshTokens {
		if t.TokenHash == tokenHash {
			t.Revoked = true
		}
	}
	return nil
}

func (r *fakeUserRepository) MarkEmailVerified(ctx context.Context, userId uuid.UUID) error {
	now := time.Now()
	for _, u := range r.users {
		if u.Id == userId {
			u.EmailVerified = true
			u.EmailVerifiedAt = &now
			u.Status = entity.UserStatusActive
		}
	}
	return nil
}

func (r *fakeUserRepository) UpdatePassword(ctx context.Context, userId uuid.UUID, hash string) error {
	for _, u := range r.users {
		if u.Id == userId {
			h := hash
			u.PasswordHash = &h
		}
	}
	return nil
}

// Notes

type fakeNoteRepository struct {
	notes []*entity.Note
}

func noteMatches(n *entity.Note, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if n.Id != sp.ID {
				return false
			}
		case specification.UserOwnedBy:
			if n.UserId != sp.UserID {
				return false
			}
		}
	}
	return true
}

func (r *fakeNoteRepository) Create(ctx context.Context, note *entity.Note) error {
	c := *note
	r.notes = append(r.notes, &c)
	return nil
}

func (r *fakeNoteRepository) Update(ctx context.Context, note *entity.Note) error {
	for i, n := range r.notes {
		if n.Id == note.Id {
			c := *note
			r.notes[i] = &c
		}
	}
	return nil
}

func (r *fakeNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	kept := r.notes[:0]
	for _, n := range r.notes {
		if n.Id != id {
			kept = append(kept, n)
		}
	}
	r.notes = kept
	return nil
}

func (r *fakeNoteRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	for _, n := range r.notes {
		if noteMatches(n, specs) {
			c := *n
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeNoteRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	var out []*entity.Note
	for _, n := range r.notes {
		if noteMatches(n, specs) {
			c := *n
			out = append(out, &c)
		}
	}
	return applyPage(out, specs), nil
}

// Bookmarks

type fakeBookmarkRepository struct {
	bookmarks []*entity.Bookmark
}

func bookmarkMatches(b *entity.Bookmark, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if b.Id != sp.ID {
				return false
			}
		case specification.UserOwnedBy:
			if b.UserId != sp.UserID {
				return false
			}
		}
	}
	return true
}

func (r *fakeBookmarkRepository) Create(ctx context.Context, bookmark *entity.Bookmark) error {
	c := *bookmark
	r.bookmarks = append(r.bookmarks, &c)
	return nil
}

func (r *fakeBookmarkRepository) Update(ctx context.Context, bookmark *entity.Bookmark) error {
	for i, b := range r.bookmarks {
		if b.Id == bookmark.Id {
			c := *bookmark
			r.bookmarks[i] = &c
		}
	}
	return nil
}

func (r *fakeBookmarkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	kept := r.bookmarks[:0]
	for _, b := range r.bookmarks {
		if b.Id != id {
			kept = append(kept, b)
		}
	}
	r.bookmarks = kept
	return nil
}

func (r *fakeBookmarkRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Bookmark, error) {
	for _, b := range r.bookmarks {
		if bookmarkMatches(b, specs) {
			c := *b
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeBookmarkRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Bookmark, error) {
	var out []*entity.Bookmark
	for _, b := range r.bookmarks {
		if bookmarkMatches(b, specs) {
			c := *b
			out = append(out, &c)
		}
	}
	return applyPage(out, specs), nil
}
