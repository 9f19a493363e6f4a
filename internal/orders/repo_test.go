package orders

import (
	"context"
	"testing"
	"time"

	"github.com/adebayof/gromart-backend/pkg/db/models"
	"github.com/adebayof/gromart-backend/pkg/enums"
	"github.com/adebayof/gromart-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ordersTable := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  delivery_address TEXT NOT NULL,
  estate_or_hotel TEXT NOT NULL,
  phone_number TEXT NOT NULL,
  total_amount TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItemsTable := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT,
  product_name TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  price TEXT NOT NULL,
  created_at DATETIME
);`

	profilesTable := `
CREATE TABLE IF NOT EXISTS profiles (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL,
  full_name TEXT NOT NULL,
  phone TEXT,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'customer',
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`

	require.NoError(t, db.Exec(ordersTable).Error)
	require.NoError(t, db.Exec(orderItemsTable).Error)
	require.NoError(t, db.Exec(profilesTable).Error)
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, userID uuid.UUID, status enums.OrderStatus, createdAt time.Time) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:              uuid.New(),
		UserID:          userID,
		DeliveryAddress: "12 Market Road",
		EstateOrHotel:   "FUTA Estate",
		PhoneNumber:     "+2348012345678",
		TotalAmount:     decimal.NewFromInt(2500),
		Status:          status,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestUpdateStatusIfMatchesOnlyExpected(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, uuid.New(), enums.OrderStatusPending, time.Now().UTC())

	affected, err := repo.UpdateStatusIf(ctx, order.ID, enums.OrderStatusPending, enums.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// Same expected status again must hit zero rows now.
	affected, err = repo.UpdateStatusIf(ctx, order.ID, enums.OrderStatusPending, enums.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	stored, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusConfirmed, stored.Status)
}

func TestUpdateStatusIfUnknownOrder(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	affected, err := repo.UpdateStatusIf(context.Background(), uuid.New(), enums.OrderStatusPending, enums.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestListByUserNewestFirst(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	base := time.Now().UTC().Truncate(time.Second)
	older := seedOrder(t, db, userID, enums.OrderStatusDelivered, base.Add(-2*time.Hour))
	newer := seedOrder(t, db, userID, enums.OrderStatusPending, base)
	seedOrder(t, db, uuid.New(), enums.OrderStatusPending, base) // other user

	list, err := repo.ListByUser(ctx, userID, nil, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}

func TestListAllCursorPagination(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	var seeded []*models.Order
	for i := 0; i < 3; i++ {
		seeded = append(seeded, seedOrder(t, db, uuid.New(), enums.OrderStatusPending, base.Add(time.Duration(i)*time.Minute)))
	}

	first, err := repo.ListAll(ctx, nil, 2)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, seeded[2].ID, first[0].ID)

	cursor := &pagination.Cursor{CreatedAt: first[1].CreatedAt, ID: first[1].ID}
	second, err := repo.ListAll(ctx, cursor, 2)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, seeded[0].ID, second[0].ID)
}
