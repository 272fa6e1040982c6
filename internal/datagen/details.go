package datagen

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Dejatori/amaluz-proyecto-betek/internal/model"
)

// createOrderDetails materializes the session's cart rows as order
// lines, skipping products that were not yet on sale or are out of
// stock, and capping quantities to the available stock. Returns the
// gross merchandise total.
func (s *Seeder) createOrderDetails(tx *gorm.DB, order model.Order, carts []model.CartItem) (decimal.Decimal, error) {
	gross := decimal.Zero
	for _, cart := range carts {
		var product model.Product
		if err := tx.First(&product, cart.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.log.Warn().Uint("product", cart.ProductID).Msg("cart references a missing product")
				continue
			}
			return gross, errors.Wrap(err, "load product")
		}
		if product.RegisteredAt.After(order.RegisteredAt) {
			continue
		}

		available := s.AvailableStock(tx, product.ID)
		if available <= 0 {
			continue
		}
		quantity := min(cart.Quantity, available)

		subtotal := product.SalePrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
		detail := model.OrderDetail{
			OrderID:      order.ID,
			ProductID:    product.ID,
			Quantity:     quantity,
			UnitPrice:    product.SalePrice,
			Subtotal:     subtotal,
			RegisteredAt: order.RegisteredAt,
			UpdatedAt:    order.RegisteredAt,
		}
		if err := tx.Create(&detail).Error; err != nil {
			return gross, errors.Wrap(err, "insert order detail")
		}
		gross = gross.Add(subtotal)
	}
	return gross, nil
}

// applyOrderTransition moves the order to a new state at the given
// instant. Transitions that would go backwards in time or past the end
// of the simulated period are silently dropped.
func (s *Seeder) applyOrderTransition(order *model.Order, state model.OrderState, at time.Time) (bool, error) {
	if !at.After(order.UpdatedAt) || at.After(SimulationEnd) {
		return false, nil
	}
	err := s.db.Model(order).Updates(map[string]interface{}{
		"estado_pedido":       state,
		"fecha_actualizacion": at,
	}).Error
	if err != nil {
		return false, errors.Wrapf(err, "transition order %s to %s", order.Code, state)
	}
	order.State = state
	order.UpdatedAt = at
	return true, nil
}

// runOrderLifecycle plays out the rest of the order's life: a few are
// cancelled right away, the rest move through processing, dispatch and
// delivery, with a small tail of refunds. Delivered products collect
// customer reviews and sold stock is deducted from inventory.
func (s *Seeder) runOrderLifecycle(ctx context.Context, order model.Order, user model.User) error {
	var details []model.OrderDetail
	if err := s.db.Where("pedido_id = ?", order.ID).Find(&details).Error; err != nil {
		return errors.Wrap(err, "load order details")
	}

	if s.rng.Float64() < 0.05 {
		cancelled, err := s.cancelOrder(&order, details)
		if err != nil || cancelled {
			return err
		}
		// The cancellation date collided with the order's timeline, so
		// the order lives on through the normal flow.
	}

	return s.progressOrder(ctx, order, user, details)
}

// progressOrder deducts sold stock and walks the order through
// processing, dispatch and delivery, collecting reviews and the
// occasional refund at the end.
func (s *Seeder) progressOrder(ctx context.Context, order model.Order, user model.User, details []model.OrderDetail) error {
	for _, detail := range details {
		if _, err := s.DebitInventory(s.db, detail, order.RegisteredAt); err != nil {
			return err
		}
	}

	processingAt := order.RegisteredAt.Add(time.Duration(s.intBetween(30, 60)) * time.Minute)
	moved, err := s.applyOrderTransition(&order, model.OrderProcessing, processingAt)
	if err != nil || !moved {
		return err
	}

	shippedAt := order.RegisteredAt.
		AddDate(0, 0, s.intBetween(1, 2)).
		Add(time.Duration(s.intBetween(0, 86399)) * time.Second)
	if !shippedAt.After(order.UpdatedAt) {
		shippedAt = order.UpdatedAt.Add(time.Second)
	}
	moved, err = s.applyOrderTransition(&order, model.OrderShipped, shippedAt)
	if err != nil || !moved {
		return err
	}
	if err := s.UpdateShipmentState(s.db, order.ID, model.ShipmentInTransit, shippedAt); err != nil {
		return err
	}

	deliveredAt := order.RegisteredAt.
		AddDate(0, 0, s.intBetween(4, 10)).
		Add(time.Duration(s.intBetween(0, 86399)) * time.Second)
	if !deliveredAt.After(order.UpdatedAt) {
		deliveredAt = order.UpdatedAt.Add(time.Second)
	}
	moved, err = s.applyOrderTransition(&order, model.OrderDelivered, deliveredAt)
	if err != nil || !moved {
		return err
	}
	if err := s.UpdateShipmentState(s.db, order.ID, model.ShipmentDelivered, deliveredAt); err != nil {
		return err
	}

	if err := s.CreateCommentsForOrder(ctx, order, user, details, deliveredAt); err != nil {
		return err
	}

	if s.rng.Float64() < 0.03 {
		return s.refundOrder(order)
	}
	return nil
}

// cancelOrder tries to cancel the order minutes after it was placed.
// Reports whether the cancellation actually applied: a cancel date that
// does not move the order forward in time leaves it untouched and the
// caller continues with the regular flow.
func (s *Seeder) cancelOrder(order *model.Order, details []model.OrderDetail) (bool, error) {
	cancelledAt := minTime(
		order.RegisteredAt.Add(time.Duration(s.intBetween(1, 29))*time.Minute),
		SimulationEnd,
	)
	moved, err := s.applyOrderTransition(order, model.OrderCancelled, cancelledAt)
	if err != nil || !moved {
		return false, err
	}

	for _, detail := range details {
		if err := s.RestoreStockAfterCancel(s.db, detail.ProductID, detail.Quantity, cancelledAt); err != nil {
			return true, err
		}
	}
	if err := s.UpdateShipmentState(s.db, order.ID, model.ShipmentIncident, cancelledAt); err != nil {
		return true, err
	}

	if s.rng.Float64() < 0.01 {
		return true, s.refundOrder(*order)
	}
	return true, nil
}

// refundOrder issues a refund shortly after the order's latest update
// and marks the shipment returned.
func (s *Seeder) refundOrder(order model.Order) error {
	refundedAt := NextUpdateTime(s.rng, order.UpdatedAt, time.Minute, 2*time.Hour, SimulationEnd)
	moved, err := s.applyOrderTransition(&order, model.OrderRefunded, refundedAt)
	if err != nil || !moved {
		return err
	}
	return s.UpdateShipmentState(s.db, order.ID, model.ShipmentReturned, refundedAt)
}
