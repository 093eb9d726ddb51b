package repositories_test

import (
	"context"
	"fmt"
	"testing"

	"productos/internal/database"
	"productos/internal/errs"
	"productos/internal/models"
	"productos/internal/repositories"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory SQLite database with the schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard, TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func productRepositories(t *testing.T) map[string]repositories.ProductRepository {
	return map[string]repositories.ProductRepository{
		"memory": repositories.NewMemoryProductRepository(),
		"gorm":   repositories.NewGORMProductRepository(newTestDB(t)),
	}
}

func newProduct(name string, category models.Category, stock int) *models.Product {
	return &models.Product{
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString("9.99"),
		Stock:       stock,
		Category:    category,
	}
}

func assertNotFound(t *testing.T, err error) {
	t.Helper()
	var notFound *errs.NotFoundError
	assert.True(t, errors.As(err, &notFound), "expected NotFoundError, got %v", err)
}

func TestProductRepository_CRUD(t *testing.T) {
	ctx := context.Background()

	for name, repo := range productRepositories(t) {
		t.Run(name, func(t *testing.T) {
			widget := newProduct("Widget", models.CategoryHerramientas, 10)
			require.NoError(t, repo.Create(ctx, widget))
			assert.NotZero(t, widget.ID)

			ball := newProduct("Ball", models.CategoryDeportes, 3)
			require.NoError(t, repo.Create(ctx, ball))
			assert.NotEqual(t, widget.ID, ball.ID)

			fetched, err := repo.GetByID(ctx, widget.ID)
			require.NoError(t, err)
			assert.Equal(t, "Widget", fetched.Name)
			assert.True(t, widget.Price.Equal(fetched.Price))
			assert.Equal(t, models.CategoryHerramientas, fetched.Category)

			all, err := repo.GetAll(ctx)
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, widget.ID, all[0].ID)
			assert.Equal(t, ball.ID, all[1].ID)

			tools, err := repo.GetByCategory(ctx, models.CategoryHerramientas)
			require.NoError(t, err)
			require.Len(t, tools, 1)
			assert.Equal(t, widget.ID, tools[0].ID)

			none, err := repo.GetByCategory(ctx, models.CategoryRopa)
			require.NoError(t, err)
			assert.NotNil(t, none)
			assert.Empty(t, none)

			updated := newProduct("Widget Pro", models.CategoryElectronica, 7)
			updated.ID = widget.ID
			updated.Price = decimal.RequireFromString("19.50")
			require.NoError(t, repo.Update(ctx, updated))

			fetched, err = repo.GetByID(ctx, widget.ID)
			require.NoError(t, err)
			assert.Equal(t, "Widget Pro", fetched.Name)
			assert.Equal(t, 7, fetched.Stock)
			assert.True(t, decimal.RequireFromString("19.5").Equal(fetched.Price))
			assert.Equal(t, models.CategoryElectronica, fetched.Category)

			stocked, err := repo.UpdateStock(ctx, widget.ID, 5)
			require.NoError(t, err)
			assert.Equal(t, 5, stocked.Stock)
			assert.Equal(t, "Widget Pro", stocked.Name)

			require.NoError(t, repo.Delete(ctx, widget.ID))
			_, err = repo.GetByID(ctx, widget.ID)
			assertNotFound(t, err)
		})
	}
}

func TestProductRepository_MissingID(t *testing.T) {
	ctx := context.Background()

	for name, repo := range productRepositories(t) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.GetByID(ctx, 42)
			assertNotFound(t, err)

			ghost := newProduct("Ghost", models.CategoryOtros, 1)
			ghost.ID = 42
			assertNotFound(t, repo.Update(ctx, ghost))

			_, err = repo.UpdateStock(ctx, 42, 1)
			assertNotFound(t, err)

			assertNotFound(t, repo.Delete(ctx, 42))
		})
	}
}

func TestProductRepository_IDsAreNotReused(t *testing.T) {
	ctx := context.Background()

	for name, repo := range productRepositories(t) {
		t.Run(name, func(t *testing.T) {
			first := newProduct("First", models.CategoryHogar, 1)
			require.NoError(t, repo.Create(ctx, first))
			second := newProduct("Second", models.CategoryHogar, 1)
			require.NoError(t, repo.Create(ctx, second))
			require.NoError(t, repo.Delete(ctx, second.ID))

			third := newProduct("Third", models.CategoryHogar, 1)
			require.NoError(t, repo.Create(ctx, third))
			assert.Greater(t, third.ID, second.ID)
		})
	}
}
