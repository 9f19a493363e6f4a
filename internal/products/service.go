package products

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adebayof/gromart-backend/pkg/config"
	"github.com/adebayof/gromart-backend/pkg/db/models"
	"github.com/adebayof/gromart-backend/pkg/enums"
	pkgerrors "github.com/adebayof/gromart-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sethvargo/go-retry"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes catalog reads for the storefront and writes for admins.
type Service interface {
	FetchAvailable(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*models.Product, error)
}

// CreateProductInput holds the validated payload to create a listing.
type CreateProductInput struct {
	Name        string
	Description *string
	Price       decimal.Decimal
	ImageURL    *string
	Category    enums.ProductCategory
	Tags        []string
	InStock     bool
}

// UpdateProductInput holds optional mutation values for a listing.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	ImageURL    *string
	Category    *enums.ProductCategory
	Tags        *[]string
	InStock     *bool
}

type service struct {
	repo Repository
	cfg  config.CatalogConfig
}

// NewService builds the catalog service.
func NewService(repo Repository, cfg config.CatalogConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 5 * time.Second
	}
	if cfg.ReadRetries <= 0 {
		cfg.ReadRetries = 1
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 300 * time.Millisecond
	}
	return &service{repo: repo, cfg: cfg}, nil
}

// FetchAvailable returns every in-stock listing ordered by category then name.
// Each attempt runs under its own deadline; transient failures are retried a
// bounded number of times before surfacing a dependency error.
func (s *service) FetchAvailable(ctx context.Context) ([]models.Product, error) {
	var list []models.Product

	backoff := retry.WithMaxRetries(uint64(s.cfg.ReadRetries-1), retry.NewConstant(s.cfg.RetryBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attemptCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
		defer cancel()

		result, err := s.repo.ListInStock(attemptCtx)
		if err != nil {
			return retry.RetryableError(err)
		}
		list = result
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list catalog")
	}
	return list, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product price must be non-negative")
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product category")
	}

	tags := pq.StringArray(input.Tags)
	if tags == nil {
		tags = pq.StringArray{}
	}

	product := &models.Product{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
		Tags:        tags,
		InStock:     input.InStock,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return created, nil
}

func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*models.Product, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name cannot be empty")
		}
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product price must be non-negative")
		}
		product.Price = *input.Price
	}
	if input.ImageURL != nil {
		product.ImageURL = input.ImageURL
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product category")
		}
		product.Category = *input.Category
	}
	if input.Tags != nil {
		product.Tags = pq.StringArray(*input.Tags)
	}
	if input.InStock != nil {
		product.InStock = *input.InStock
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return updated, nil
}
