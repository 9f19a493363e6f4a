package cart

import (
	"context"
	"testing"

	"github.com/adebayof/gromart-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	cartItemsTable := `
CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (user_id, product_id)
);`
	require.NoError(t, db.Exec(cartItemsTable).Error)

	return db
}

func seedCartItem(t *testing.T, db *gorm.DB, userID uuid.UUID, qty int) *models.CartItem {
	t.Helper()

	item := &models.CartItem{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: uuid.New(),
		Quantity:  qty,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func remainingProductIDs(t *testing.T, db *gorm.DB, userID uuid.UUID) []uuid.UUID {
	t.Helper()

	var items []models.CartItem
	require.NoError(t, db.Where("user_id = ?", userID).Find(&items).Error)
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	return ids
}

func TestDeleteItemsRemovesOnlyNamedProducts(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	ordered := seedCartItem(t, db, userID, 2)
	kept := seedCartItem(t, db, userID, 1)

	require.NoError(t, repo.DeleteItems(ctx, userID, []uuid.UUID{ordered.ProductID}))

	remaining := remainingProductIDs(t, db, userID)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.ProductID, remaining[0])
}

func TestDeleteItemsLeavesOtherUsersAlone(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	otherID := uuid.New()
	mine := seedCartItem(t, db, userID, 1)
	seedCartItem(t, db, otherID, 3)

	require.NoError(t, repo.DeleteItems(ctx, userID, []uuid.UUID{mine.ProductID}))

	assert.Empty(t, remainingProductIDs(t, db, userID))
	assert.Len(t, remainingProductIDs(t, db, otherID), 1)
}

func TestDeleteItemsEmptyListIsNoop(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	seedCartItem(t, db, userID, 1)

	require.NoError(t, repo.DeleteItems(ctx, userID, nil))
	assert.Len(t, remainingProductIDs(t, db, userID), 1)
}

func TestClearForUserWipesCart(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	seedCartItem(t, db, userID, 1)
	seedCartItem(t, db, userID, 2)

	require.NoError(t, repo.ClearForUser(ctx, userID))
	require.NoError(t, repo.ClearForUser(ctx, userID))

	assert.Empty(t, remainingProductIDs(t, db, userID))
}
