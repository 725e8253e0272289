package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"notemark-be/internal/entity"
	"notemark-be/internal/repository/specification"
	"notemark-be/internal/repository/unitofwork"
	"notemark-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.NoteRepository())
	assert.NotNil(t, uow.BookmarkRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	ctx := context.Background()

	// Verify Data Access (implies columns exist)
	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(ctx)
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Note lifecycle with tag filter", func(t *testing.T) {
		user := &entity.User{
			Id:     uuid.New(),
			Email:  "test-integration-" + uuid.New().String() + "@example.com",
			Status: entity.UserStatusActive,
		}
		err := uow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)

		note := &entity.Note{
			Id:     uuid.New(),
			Title:  "Integration Note",
			Tags:   entity.NormalizeTags([]string{"Integration", "integration", " Test "}),
			UserId: user.Id,
		}
		err = uow.NoteRepository().Create(ctx, note)
		assert.NoError(t, err)

		// Containment filter must find the normalized tags
		found, err := uow.NoteRepository().FindAll(ctx,
			specification.UserOwnedBy{UserID: user.Id},
			specification.TagsContain{Tags: []string{"integration", "test"}},
		)
		assert.NoError(t, err)
		if assert.Len(t, found, 1) {
			assert.Equal(t, note.Id, found[0].Id)
			assert.Equal(t, []string{"integration", "test"}, found[0].Tags)
		}

		// Delete is permanent
		err = uow.NoteRepository().Delete(ctx, note.Id)
		assert.NoError(t, err)

		gone, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: note.Id})
		assert.NoError(t, err)
		assert.Nil(t, gone)
	})

	t.Run("Bookmark search by url", func(t *testing.T) {
		user := &entity.User{
			Id:     uuid.New(),
			Email:  "test-integration-" + uuid.New().String() + "@example.com",
			Status: entity.UserStatusActive,
		}
		err := uow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)

		bookmark := &entity.Bookmark{
			Id:     uuid.New(),
			Url:    "https://go.dev/blog/intro-generics",
			Tags:   []string{},
			UserId: user.Id,
		}
		err = uow.BookmarkRepository().Create(ctx, bookmark)
		assert.NoError(t, err)

		found, err := uow.BookmarkRepository().FindAll(ctx,
			specification.UserOwnedBy{UserID: user.Id},
			specification.TextSearch{Query: "generics", Columns: []string{"title", "url", "description"}},
		)
		assert.NoError(t, err)
		if assert.Len(t, found, 1) {
			assert.Equal(t, bookmark.Id, found[0].Id)
		}

		err = uow.BookmarkRepository().Delete(ctx, bookmark.Id)
		assert.NoError(t, err)
	})
}
