package datagen

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Dejatori/amaluz-proyecto-betek/internal/model"
)

// CreateShipmentForOrder books a carrier for a freshly registered order
// and records the chosen method in the user's shipping history.
func (s *Seeder) CreateShipmentForOrder(tx *gorm.DB, order model.Order) (*model.Shipment, error) {
	shippedAt := order.RegisteredAt.Add(time.Duration(s.intBetween(30, 120)) * time.Second)
	estimated := shippedAt.AddDate(0, 0, s.intBetween(2, 14))
	cost := decimal.NewFromInt(int64(s.intBetween(5000, 20000)))
	carrier := Carriers[s.rng.Intn(len(Carriers))]

	shipment := model.Shipment{
		OrderID:           order.ID,
		Carrier:           carrier,
		TrackingNumber:    s.trackingNumber(tx),
		Cost:              cost,
		ShippedAt:         shippedAt,
		EstimatedDelivery: estimated,
		State:             model.ShipmentPending,
		RegisteredAt:      order.RegisteredAt,
		UpdatedAt:         order.RegisteredAt,
	}
	if err := tx.Create(&shipment).Error; err != nil {
		return nil, errors.Wrap(err, "insert shipment")
	}

	history := model.ShippingMethodHistory{
		UserID:       order.UserID,
		Carrier:      carrier,
		Cost:         cost,
		RegisteredAt: order.RegisteredAt,
		UpdatedAt:    order.RegisteredAt,
	}
	if err := tx.Create(&history).Error; err != nil {
		return nil, errors.Wrap(err, "insert shipping method history")
	}
	return &shipment, nil
}

func (s *Seeder) trackingNumber(tx *gorm.DB) string {
	for {
		candidate := fmt.Sprintf("GUIA-%d", s.intBetween(1000000, 9999999))
		var count int64
		if err := tx.Model(&model.Shipment{}).Where("numero_guia = ?", candidate).Count(&count).Error; err == nil && count == 0 {
			return candidate
		}
	}
}

// UpdateShipmentState moves the shipment of an order to a new state.
// Reaching "Entregado" stamps the actual delivery date, never earlier
// than the dispatch date.
func (s *Seeder) UpdateShipmentState(tx *gorm.DB, orderID uint, state model.ShipmentState, at time.Time) error {
	var shipment model.Shipment
	err := tx.Where("pedido_id = ?", orderID).First(&shipment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn().Uint("order", orderID).Msg("order has no shipment to update")
			return nil
		}
		return errors.Wrap(err, "load shipment")
	}

	shipment.State = state
	shipment.UpdatedAt = at
	if state == model.ShipmentDelivered {
		delivered := at
		if delivered.Before(shipment.ShippedAt) {
			delivered = shipment.ShippedAt
		}
		shipment.ActualDelivery = &delivered
	}
	if err := tx.Save(&shipment).Error; err != nil {
		return errors.Wrap(err, "update shipment")
	}
	return nil
}
