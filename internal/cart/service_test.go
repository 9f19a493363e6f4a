package cart

import (
	"context"
	"testing"

	"github.com/adebayof/gromart-backend/pkg/db/models"
	pkgerrors "github.com/adebayof/gromart-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubCartRepo struct {
	items        []models.CartItem
	upserted     []*models.CartItem
	updatedRows  int64
	deletedRows  int64
	clearedUsers []uuid.UUID
}

func (s *stubCartRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	return s.items, nil
}

func (s *stubCartRepo) Upsert(ctx context.Context, item *models.CartItem) error {
	s.upserted = append(s.upserted, item)
	return nil
}

func (s *stubCartRepo) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (int64, error) {
	return s.updatedRows, nil
}

func (s *stubCartRepo) DeleteItem(ctx context.Context, userID, productID uuid.UUID) (int64, error) {
	return s.deletedRows, nil
}

func (s *stubCartRepo) DeleteItems(ctx context.Context, userID uuid.UUID, productIDs []uuid.UUID) error {
	return nil
}

func (s *stubCartRepo) ClearForUser(ctx context.Context, userID uuid.UUID) error {
	s.clearedUsers = append(s.clearedUsers, userID)
	return nil
}

func (s *stubCartRepo) WithTx(tx *gorm.DB) Repository { return s }

type stubProductsRepo struct {
	product *models.Product
	err     error
}

func (s *stubProductsRepo) ListInStock(ctx context.Context) ([]models.Product, error) {
	return nil, nil
}

func (s *stubProductsRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.product, s.err
}

func (s *stubProductsRepo) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	return product, nil
}

func (s *stubProductsRepo) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	return product, nil
}

func cartItem(name string, price int64, qty int) models.CartItem {
	id := uuid.New()
	return models.CartItem{
		ID:        uuid.New(),
		ProductID: id,
		Quantity:  qty,
		Product: &models.Product{
			ID:      id,
			Name:    name,
			Price:   decimal.NewFromInt(price),
			InStock: true,
		},
	}
}

func TestGetComputesTotal(t *testing.T) {
	repo := &stubCartRepo{items: []models.CartItem{
		cartItem("Rice 5kg", 1000, 2),
		cartItem("Palm Oil 1L", 500, 1),
	}}
	svc, err := NewService(repo, &stubProductsRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	view, err := svc.Get(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(view.Items) != 2 {
		t.Fatalf("expected 2 distinct items got %d", len(view.Items))
	}
	if !view.Total.Equal(decimal.NewFromInt(2500)) {
		t.Fatalf("expected total 2500 got %s", view.Total)
	}
	if !view.Items[0].LineTotal.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("expected line total 2000 got %s", view.Items[0].LineTotal)
	}
}

func TestGetEmptyCart(t *testing.T) {
	svc, _ := NewService(&stubCartRepo{}, &stubProductsRepo{})

	view, err := svc.Get(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("expected empty cart got %d items", len(view.Items))
	}
	if !view.Total.IsZero() {
		t.Fatalf("expected zero total got %s", view.Total)
	}
}

func TestAddRejectsOutOfStock(t *testing.T) {
	products := &stubProductsRepo{product: &models.Product{ID: uuid.New(), InStock: false}}
	repo := &stubCartRepo{}
	svc, _ := NewService(repo, products)

	_, err := svc.Add(context.Background(), uuid.New(), products.product.ID, 1)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(repo.upserted) != 0 {
		t.Fatal("out of stock product must not be written")
	}
}

func TestAddRejectsUnknownProduct(t *testing.T) {
	svc, _ := NewService(&stubCartRepo{}, &stubProductsRepo{err: gorm.ErrRecordNotFound})

	_, err := svc.Add(context.Background(), uuid.New(), uuid.New(), 1)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddRejectsZeroQuantity(t *testing.T) {
	svc, _ := NewService(&stubCartRepo{}, &stubProductsRepo{})

	_, err := svc.Add(context.Background(), uuid.New(), uuid.New(), 0)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	repo := &stubCartRepo{deletedRows: 1}
	svc, _ := NewService(repo, &stubProductsRepo{})

	if _, err := svc.UpdateQuantity(context.Background(), uuid.New(), uuid.New(), 0); err != nil {
		t.Fatalf("update to zero: %v", err)
	}
}

func TestUpdateQuantityMissingLine(t *testing.T) {
	repo := &stubCartRepo{updatedRows: 0}
	svc, _ := NewService(repo, &stubProductsRepo{})

	_, err := svc.UpdateQuantity(context.Background(), uuid.New(), uuid.New(), 3)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	repo := &stubCartRepo{}
	svc, _ := NewService(repo, &stubProductsRepo{})
	userID := uuid.New()

	if err := svc.Clear(context.Background(), userID); err != nil {
		t.Fatalf("first clear: %v", err)
	}
	if err := svc.Clear(context.Background(), userID); err != nil {
		t.Fatalf("second clear on empty cart: %v", err)
	}
	if len(repo.clearedUsers) != 2 {
		t.Fatalf("expected 2 clear calls got %d", len(repo.clearedUsers))
	}
}
