package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/adebayof/gromart-backend/internal/cart"
	"github.com/adebayof/gromart-backend/internal/delivery"
	"github.com/adebayof/gromart-backend/internal/notifications"
	"github.com/adebayof/gromart-backend/internal/orders"
	"github.com/adebayof/gromart-backend/pkg/config"
	"github.com/adebayof/gromart-backend/pkg/db/models"
	"github.com/adebayof/gromart-backend/pkg/enums"
	pkgerrors "github.com/adebayof/gromart-backend/pkg/errors"
	"github.com/adebayof/gromart-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TxRunner executes fn inside one database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// SubmitInput is the validated checkout payload.
type SubmitInput struct {
	DeliveryAddress string
	EstateOrHotel   string
	PhoneNumber     string
}

// ManualOrderView is the WhatsApp fallback for customers who prefer to order
// over chat instead of submitting in-app.
type ManualOrderView struct {
	Message string `json:"message"`
	Link    string `json:"link"`
}

// Service turns a cart into an order.
type Service interface {
	Submit(ctx context.Context, userID uuid.UUID, input SubmitInput) (*models.Order, error)
	ManualOrder(ctx context.Context, userID uuid.UUID, input SubmitInput) (*ManualOrderView, error)
}

type service struct {
	tx       TxRunner
	cartRepo cart.Repository
	orders   orders.Repository
	cfg      config.CheckoutConfig
	log      *logger.Logger
}

// NewService builds the checkout service.
func NewService(tx TxRunner, cartRepo cart.Repository, ordersRepo orders.Repository, cfg config.CheckoutConfig, log *logger.Logger) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{tx: tx, cartRepo: cartRepo, orders: ordersRepo, cfg: cfg, log: log}, nil
}

// Submit snapshots the cart into a pending order and empties the cart, all
// inside one transaction. Validation failures leave the cart untouched.
func (s *service) Submit(ctx context.Context, userID uuid.UUID, input SubmitInput) (*models.Order, error) {
	if err := validateDelivery(input); err != nil {
		return nil, err
	}

	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	order, err := buildOrder(userID, input, items)
	if err != nil {
		return nil, err
	}

	// Only the snapshotted lines are removed; a product added to the cart
	// between the snapshot read and the commit stays in the cart.
	snapshotIDs := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		snapshotIDs = append(snapshotIDs, item.ProductID)
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.orders.WithTx(tx).Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		if err := s.cartRepo.WithTx(tx).DeleteItems(ctx, userID, snapshotIDs); err != nil {
			return fmt.Errorf("clear ordered cart lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "submit order")
	}

	logCtx := s.log.WithOrderID(s.log.WithUserID(ctx, userID.String()), order.ID.String())
	s.log.Info(logCtx, "order submitted")

	return order, nil
}

// ManualOrder renders the current cart as a WhatsApp message plus deep link.
// Nothing is persisted; the customer completes the order over chat.
func (s *service) ManualOrder(ctx context.Context, userID uuid.UUID, input SubmitInput) (*ManualOrderView, error) {
	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	manual := notifications.ManualOrder{
		Total:           decimal.Zero,
		DeliveryAddress: strings.TrimSpace(input.DeliveryAddress),
		EstateOrHotel:   strings.TrimSpace(input.EstateOrHotel),
		PhoneNumber:     strings.TrimSpace(input.PhoneNumber),
	}
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		manual.Lines = append(manual.Lines, notifications.ManualOrderLine{
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.Product.Price,
		})
		manual.Total = manual.Total.Add(
			item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return &ManualOrderView{
		Message: notifications.BuildManualOrderMessage(manual),
		Link:    notifications.BuildWhatsAppLink(s.cfg.WhatsAppNumber, manual),
	}, nil
}

func validateDelivery(input SubmitInput) error {
	if strings.TrimSpace(input.DeliveryAddress) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "delivery address is required")
	}
	if !delivery.IsKnownArea(input.EstateOrHotel) {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown estate or hotel").
			WithDetails(map[string]any{"allowed": delivery.Areas})
	}
	if strings.TrimSpace(input.PhoneNumber) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "phone number is required")
	}
	return nil
}

// buildOrder snapshots cart lines into order items. Prices and names are
// copied so later catalog edits never change what the customer agreed to.
func buildOrder(userID uuid.UUID, input SubmitInput, items []models.CartItem) (*models.Order, error) {
	order := &models.Order{
		UserID:          userID,
		DeliveryAddress: strings.TrimSpace(input.DeliveryAddress),
		EstateOrHotel:   strings.TrimSpace(input.EstateOrHotel),
		PhoneNumber:     strings.TrimSpace(input.PhoneNumber),
		TotalAmount:     decimal.Zero,
		Status:          enums.OrderStatusPending,
	}

	for _, item := range items {
		if item.Product == nil {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "cart references a removed product")
		}
		productID := item.ProductID
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   &productID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			Price:       item.Product.Price,
		})
		order.TotalAmount = order.TotalAmount.Add(
			item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return order, nil
}
