package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/adebayof/gromart-backend/internal/products"
	"github.com/adebayof/gromart-backend/pkg/db/models"
	pkgerrors "github.com/adebayof/gromart-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Line is one cart row joined with its current catalog listing.
type Line struct {
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
	ImageURL    *string         `json:"imageUrl,omitempty"`
	InStock     bool            `json:"inStock"`
}

// View is the full cart as returned to the storefront.
type View struct {
	Items []Line          `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// Service exposes cart mutations for an authenticated customer.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*View, error)
	Add(ctx context.Context, userID, productID uuid.UUID, quantity int) (*View, error)
	UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*View, error)
	Remove(ctx context.Context, userID, productID uuid.UUID) (*View, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo     Repository
	products products.Repository
}

// NewService builds the cart service.
func NewService(repo Repository, productsRepo products.Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if productsRepo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	return &service{repo: repo, products: productsRepo}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*View, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return buildView(items), nil
}

// Add puts quantity units of a product into the cart, merging with any
// existing row for the same product.
func (s *service) Add(ctx context.Context, userID, productID uuid.UUID, quantity int) (*View, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.InStock {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "product is out of stock")
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.repo.Upsert(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add cart item")
	}
	return s.Get(ctx, userID)
}

// UpdateQuantity sets the exact quantity for a product already in the cart.
// A quantity at or below zero removes the row.
func (s *service) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*View, error) {
	if quantity <= 0 {
		return s.Remove(ctx, userID, productID)
	}

	affected, err := s.repo.UpdateQuantity(ctx, userID, productID, quantity)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart item")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not in cart")
	}
	return s.Get(ctx, userID)
}

func (s *service) Remove(ctx context.Context, userID, productID uuid.UUID) (*View, error) {
	affected, err := s.repo.DeleteItem(ctx, userID, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart item")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not in cart")
	}
	return s.Get(ctx, userID)
}

// Clear empties the cart. Clearing an already-empty cart succeeds.
func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.ClearForUser(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func buildView(items []models.CartItem) *View {
	view := &View{
		Items: make([]Line, 0, len(items)),
		Total: decimal.Zero,
	}
	for _, item := range items {
		line := Line{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if item.Product != nil {
			line.ProductName = item.Product.Name
			line.UnitPrice = item.Product.Price
			line.ImageURL = item.Product.ImageURL
			line.InStock = item.Product.InStock
		}
		line.LineTotal = line.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		view.Items = append(view.Items, line)
		view.Total = view.Total.Add(line.LineTotal)
	}
	return view
}
