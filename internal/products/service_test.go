package products

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adebayof/gromart-backend/pkg/config"
	"github.com/adebayof/gromart-backend/pkg/db/models"
	"github.com/adebayof/gromart-backend/pkg/enums"
	pkgerrors "github.com/adebayof/gromart-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type flakyRepo struct {
	failures int
	calls    int
	list     []models.Product
	found    *models.Product
}

func (f *flakyRepo) ListInStock(ctx context.Context) ([]models.Product, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("connection reset")
	}
	return f.list, nil
}

func (f *flakyRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if f.found == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.found, nil
}

func (f *flakyRepo) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	return product, nil
}

func (f *flakyRepo) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	return product, nil
}

func testCatalogConfig() config.CatalogConfig {
	return config.CatalogConfig{
		ReadTimeout:  time.Second,
		ReadRetries:  3,
		RetryBackoff: time.Millisecond,
	}
}

func TestFetchAvailableRetriesTransientFailures(t *testing.T) {
	repo := &flakyRepo{
		failures: 2,
		list:     []models.Product{{ID: uuid.New(), Name: "Rice 5kg", InStock: true}},
	}
	svc, err := NewService(repo, testCatalogConfig())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	list, err := svc.FetchAvailable(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 product got %d", len(list))
	}
	if repo.calls != 3 {
		t.Fatalf("expected 3 attempts got %d", repo.calls)
	}
}

func TestFetchAvailableExhaustsRetries(t *testing.T) {
	repo := &flakyRepo{failures: 10}
	svc, _ := NewService(repo, testCatalogConfig())

	_, err := svc.FetchAvailable(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if repo.calls != 3 {
		t.Fatalf("expected exactly 3 attempts got %d", repo.calls)
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc, _ := NewService(&flakyRepo{}, testCatalogConfig())

	cases := []struct {
		name  string
		input CreateProductInput
	}{
		{"empty name", CreateProductInput{Price: decimal.NewFromInt(100), Category: enums.ProductCategoryGrains}},
		{"negative price", CreateProductInput{Name: "Rice", Price: decimal.NewFromInt(-1), Category: enums.ProductCategoryGrains}},
		{"bad category", CreateProductInput{Name: "Rice", Price: decimal.NewFromInt(100), Category: enums.ProductCategory("toys")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(context.Background(), tc.input)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateProduct(t *testing.T) {
	svc, _ := NewService(&flakyRepo{}, testCatalogConfig())

	created, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:     "  Rice 5kg ",
		Price:    decimal.NewFromInt(1000),
		Category: enums.ProductCategoryGrains,
		InStock:  true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Name != "Rice 5kg" {
		t.Fatalf("name should be trimmed, got %q", created.Name)
	}
}

func TestUpdateProductUnknown(t *testing.T) {
	svc, _ := NewService(&flakyRepo{}, testCatalogConfig())

	name := "Rice"
	_, err := svc.UpdateProduct(context.Background(), uuid.New(), UpdateProductInput{Name: &name})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateProductTogglesStock(t *testing.T) {
	repo := &flakyRepo{found: &models.Product{
		ID:      uuid.New(),
		Name:    "Rice 5kg",
		Price:   decimal.NewFromInt(1000),
		InStock: true,
	}}
	svc, _ := NewService(repo, testCatalogConfig())

	off := false
	updated, err := svc.UpdateProduct(context.Background(), repo.found.ID, UpdateProductInput{InStock: &off})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.InStock {
		t.Fatal("expected product marked out of stock")
	}
	if updated.Name != "Rice 5kg" {
		t.Fatalf("untouched fields must survive, got %q", updated.Name)
	}
}
