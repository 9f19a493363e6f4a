package orders

import (
	"context"

	"github.com/adebayof/gromart-backend/pkg/db/models"
	"github.com/adebayof/gromart-backend/pkg/enums"
	"github.com/adebayof/gromart-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the persistence surface for orders.
type Repository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Order, error)
	ListAll(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.Order, error)
	UpdateStatusIf(ctx context.Context, id uuid.UUID, expected, next enums.OrderStatus) (int64, error)

	WithTx(tx *gorm.DB) Repository
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// Create persists the order together with its items in one insert chain.
func (r *repository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Order, error) {
	query := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID)
	return r.listNewestFirst(query, cursor, limit)
}

func (r *repository) ListAll(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.Order, error) {
	query := r.db.WithContext(ctx).
		Preload("Items").
		Preload("User")
	return r.listNewestFirst(query, cursor, limit)
}

func (r *repository) listNewestFirst(query *gorm.DB, cursor *pagination.Cursor, limit int) ([]models.Order, error) {
	if cursor != nil {
		query = query.Where(
			"(created_at, id) < (?, ?)",
			cursor.CreatedAt, cursor.ID,
		)
	}

	var list []models.Order
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateStatusIf flips the status only when the stored value still matches
// expected. A zero row count means the order moved or does not exist; callers
// re-read to tell the two apart.
func (r *repository) UpdateStatusIf(ctx context.Context, id uuid.UUID, expected, next enums.OrderStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", id, expected).
		Update("status", next)
	return result.RowsAffected, result.Error
}
