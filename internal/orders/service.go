package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/adebayof/gromart-backend/pkg/db/models"
	"github.com/adebayof/gromart-backend/pkg/enums"
	pkgerrors "github.com/adebayof/gromart-backend/pkg/errors"
	"github.com/adebayof/gromart-backend/pkg/logger"
	"github.com/adebayof/gromart-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Page is one slice of an order listing plus the cursor for the next slice.
type Page struct {
	Orders     []models.Order
	NextCursor string
}

// Service exposes order history reads and the admin status transition.
type Service interface {
	ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) (*Page, error)
	ListAll(ctx context.Context, params pagination.Params) (*Page, error)
	Transition(ctx context.Context, orderID uuid.UUID, target enums.OrderStatus) (*models.Order, error)
}

type service struct {
	repo Repository
	log  *logger.Logger
}

// NewService builds the orders service.
func NewService(repo Repository, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, log: log}, nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) (*Page, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	list, err := s.repo.ListByUser(ctx, userID, cursor, limit+1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return buildPage(list, limit), nil
}

func (s *service) ListAll(ctx context.Context, params pagination.Params) (*Page, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	list, err := s.repo.ListAll(ctx, cursor, limit+1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return buildPage(list, limit), nil
}

// Transition moves an order to target. The allowed moves are fixed:
// pending -> confirmed -> out_for_delivery -> delivered, with cancelled
// reachable from any non-terminal state. The write is conditional on the
// current status so concurrent admins cannot double-apply a move.
func (s *service) Transition(ctx context.Context, orderID uuid.UUID, target enums.OrderStatus) (*models.Order, error) {
	if !target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	if !order.Status.CanTransition(target) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, target)).
			WithDetails(map[string]string{
				"currentStatus":   order.Status.String(),
				"requestedStatus": target.String(),
			})
	}

	affected, err := s.repo.UpdateStatusIf(ctx, orderID, order.Status, target)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	if affected == 0 {
		// Someone moved the order between our read and write. Re-read to
		// report the status the caller actually lost to.
		current, rereadErr := s.repo.FindByID(ctx, orderID)
		if rereadErr != nil {
			if errors.Is(rereadErr, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, rereadErr, "reload order")
		}
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("order status changed concurrently, now %s", current.Status)).
			WithDetails(map[string]string{
				"currentStatus":   current.Status.String(),
				"requestedStatus": target.String(),
			})
	}

	logCtx := s.log.WithOrderID(ctx, orderID.String())
	logCtx = s.log.WithFields(logCtx, map[string]any{
		"from": order.Status.String(),
		"to":   target.String(),
	})
	s.log.Info(logCtx, "order status updated")

	order.Status = target
	return order, nil
}

func buildPage(list []models.Order, limit int) *Page {
	page := &Page{Orders: list}
	if len(list) > limit {
		page.Orders = list[:limit]
		last := page.Orders[limit-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return page
}
