package datagen

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dejatori/amaluz-proyecto-betek/internal/model"
)

func TestCollectSessionsGroupsByInactivityGap(t *testing.T) {
	s := newTestSeeder(t, 71)
	clients := s.mustActiveClients(t, 20)
	products := s.mustCatalog(t, 1, 4)
	user := clients[0]

	base := user.RegisteredAt.Add(48 * time.Hour)
	items := []model.CartItem{
		{UserID: user.ID, ProductID: products[0].ID, Quantity: 1, RegisteredAt: base, UpdatedAt: base},
		{UserID: user.ID, ProductID: products[1].ID, Quantity: 1, RegisteredAt: base.Add(5 * time.Minute), UpdatedAt: base.Add(5 * time.Minute)},
		{UserID: user.ID, ProductID: products[2].ID, Quantity: 1, RegisteredAt: base.Add(10 * time.Minute), UpdatedAt: base.Add(10 * time.Minute)},
		// A second visit well past the inactivity gap.
		{UserID: user.ID, ProductID: products[3].ID, Quantity: 1, RegisteredAt: base.Add(2 * time.Hour), UpdatedAt: base.Add(2 * time.Hour)},
	}
	require.NoError(t, s.db.Create(&items).Error)

	sessions, err := s.collectSessions([]model.User{user})
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Len(t, sessions[0].items, 3, "three items within ten minutes form one session")
	assert.Len(t, sessions[1].items, 1)
	assert.True(t, sessions[0].lastActivity().Before(sessions[1].lastActivity()))
}

func TestCreateOrdersPipeline(t *testing.T) {
	s := newTestSeeder(t, 72)
	clients := s.mustActiveClients(t, 40)
	products := s.mustCatalog(t, 3, 12)

	_, err := s.CreateInitialInventory(products)
	require.NoError(t, err)
	_, err = s.CreateDiscounts()
	require.NoError(t, err)
	_, err = s.CreateCarts(clients)
	require.NoError(t, err)

	created, err := s.CreateOrders(context.Background(), clients)
	require.NoError(t, err)
	require.Positive(t, created)

	var orders []model.Order
	require.NoError(t, s.db.Find(&orders).Error)
	require.Len(t, orders, created)

	shipmentFor := map[model.OrderState]model.ShipmentState{
		model.OrderPending:    model.ShipmentPending,
		model.OrderProcessing: model.ShipmentPending,
		model.OrderShipped:    model.ShipmentInTransit,
		model.OrderDelivered:  model.ShipmentDelivered,
		model.OrderCancelled:  model.ShipmentIncident,
		model.OrderRefunded:   model.ShipmentReturned,
	}

	for _, order := range orders {
		assert.Regexp(t, `^PED-\d{14}-\d+-[A-F0-9]{4}$`, order.Code)
		assert.False(t, order.UpdatedAt.Before(order.RegisteredAt))
		assert.False(t, order.UpdatedAt.After(SimulationEnd))

		var location model.OrderLocation
		require.NoError(t, s.db.First(&location, order.LocationID).Error)
		assert.Equal(t, order.UserID, location.UserID)
		assert.True(t, location.RegisteredAt.Before(order.RegisteredAt),
			"the delivery address is captured before the order")

		var shipment model.Shipment
		require.NoError(t, s.db.Where("pedido_id = ?", order.ID).First(&shipment).Error)
		assert.Equal(t, shipmentFor[order.State], shipment.State,
			"order %s in state %s has shipment state %s", order.Code, order.State, shipment.State)
		assert.True(t, shipment.ShippedAt.After(order.RegisteredAt))
		assert.True(t, shipment.EstimatedDelivery.After(shipment.ShippedAt))
		if shipment.ActualDelivery != nil {
			assert.False(t, shipment.ActualDelivery.Before(shipment.ShippedAt),
				"an order cannot arrive before it leaves the warehouse")
		}

		var details []model.OrderDetail
		require.NoError(t, s.db.Where("pedido_id = ?", order.ID).Find(&details).Error)
		require.NotEmpty(t, details, "order %s has no lines", order.Code)

		gross := decimal.Zero
		for _, d := range details {
			assert.Positive(t, d.Quantity)
			assert.True(t, d.Subtotal.Equal(d.UnitPrice.Mul(decimal.NewFromInt(int64(d.Quantity))).Round(2)))
			gross = gross.Add(d.Subtotal)
		}

		// Total is the merchandise minus at most half off, plus shipping.
		assert.True(t, order.TotalCost.GreaterThanOrEqual(gross.Mul(decimal.NewFromFloat(0.5)).Add(shipment.Cost).Round(2)),
			"order %s total %s too low for gross %s", order.Code, order.TotalCost, gross)
		assert.True(t, order.TotalCost.LessThanOrEqual(gross.Add(shipment.Cost)),
			"order %s total %s exceeds gross plus shipping", order.Code, order.TotalCost)
	}
}

func TestCancelOrderRestoresStock(t *testing.T) {
	s := newTestSeeder(t, 73)
	clients := s.mustActiveClients(t, 20)
	products := s.mustCatalog(t, 1, 1)
	_, err := s.CreateInitialInventory(products)
	require.NoError(t, err)

	user := clients[0]
	orderDate := user.RegisteredAt.AddDate(0, 1, 0)
	order := model.Order{
		UserID:        user.ID,
		LocationID:    1,
		Code:          "PED-TEST-CANCEL",
		TotalCost:     decimal.NewFromInt(30000),
		PaymentMethod: model.PaymentPSE,
		State:         model.OrderPending,
		RegisteredAt:  orderDate,
		UpdatedAt:     orderDate,
	}
	require.NoError(t, s.db.Create(&order).Error)
	_, err = s.CreateShipmentForOrder(s.db, order)
	require.NoError(t, err)

	detail := model.OrderDetail{
		OrderID: order.ID, ProductID: products[0].ID, Quantity: 3,
		UnitPrice: decimal.NewFromInt(10000), Subtotal: decimal.NewFromInt(30000),
		RegisteredAt: orderDate, UpdatedAt: orderDate,
	}
	require.NoError(t, s.db.Create(&detail).Error)

	cancelled, err := s.cancelOrder(&order, []model.OrderDetail{detail})
	require.NoError(t, err)
	require.True(t, cancelled)

	var reloaded model.Order
	require.NoError(t, s.db.First(&reloaded, order.ID).Error)
	assert.Contains(t, []model.OrderState{model.OrderCancelled, model.OrderRefunded}, reloaded.State)
	assert.True(t, reloaded.UpdatedAt.After(orderDate))

	var inv model.Inventory
	require.NoError(t, s.db.Where("producto_id = ?", products[0].ID).First(&inv).Error)
	assert.Equal(t, initialStock+3, inv.Available, "cancelled quantities return to stock")

	var shipment model.Shipment
	require.NoError(t, s.db.Where("pedido_id = ?", order.ID).First(&shipment).Error)
	assert.Contains(t, []model.ShipmentState{model.ShipmentIncident, model.ShipmentReturned}, shipment.State)
}

func TestCancelOrderClampsToSimulationEnd(t *testing.T) {
	s := newTestSeeder(t, 75)
	clients := s.mustActiveClients(t, 20)
	products := s.mustCatalog(t, 1, 1)
	_, err := s.CreateInitialInventory(products)
	require.NoError(t, err)

	// Placed so close to the end that any cancel date overshoots it.
	orderDate := SimulationEnd.Add(-30 * time.Second)
	order := model.Order{
		UserID: clients[0].ID, LocationID: 1, Code: "PED-TEST-LATE-CANCEL",
		TotalCost: decimal.NewFromInt(10000), PaymentMethod: model.PaymentPSE,
		State: model.OrderPending, RegisteredAt: orderDate, UpdatedAt: orderDate,
	}
	require.NoError(t, s.db.Create(&order).Error)
	_, err = s.CreateShipmentForOrder(s.db, order)
	require.NoError(t, err)

	detail := model.OrderDetail{
		OrderID: order.ID, ProductID: products[0].ID, Quantity: 2,
		UnitPrice: decimal.NewFromInt(5000), Subtotal: decimal.NewFromInt(10000),
		RegisteredAt: orderDate, UpdatedAt: orderDate,
	}
	require.NoError(t, s.db.Create(&detail).Error)

	cancelled, err := s.cancelOrder(&order, []model.OrderDetail{detail})
	require.NoError(t, err)
	require.True(t, cancelled, "the cancel date is clamped, not dropped")

	var reloaded model.Order
	require.NoError(t, s.db.First(&reloaded, order.ID).Error)
	assert.Equal(t, model.OrderCancelled, reloaded.State)
	assert.True(t, reloaded.UpdatedAt.Equal(SimulationEnd),
		"cancellation lands exactly on the simulation end, got %s", reloaded.UpdatedAt)
}

func TestSkippedCancellationContinuesLifecycle(t *testing.T) {
	s := newTestSeeder(t, 76)
	clients := s.mustActiveClients(t, 20)
	products := s.mustCatalog(t, 1, 1)
	_, err := s.CreateInitialInventory(products)
	require.NoError(t, err)

	user := clients[0]
	orderDate := user.RegisteredAt.AddDate(0, 1, 0)
	order := model.Order{
		UserID: user.ID, LocationID: 1, Code: "PED-TEST-CANCEL-SKIP",
		TotalCost: decimal.NewFromInt(30000), PaymentMethod: model.PaymentPSE,
		State: model.OrderPending, RegisteredAt: orderDate,
		// Already updated past every possible cancel date.
		UpdatedAt: orderDate.Add(29 * time.Minute),
	}
	require.NoError(t, s.db.Create(&order).Error)
	_, err = s.CreateShipmentForOrder(s.db, order)
	require.NoError(t, err)

	detail := model.OrderDetail{
		OrderID: order.ID, ProductID: products[0].ID, Quantity: 3,
		UnitPrice: decimal.NewFromInt(10000), Subtotal: decimal.NewFromInt(30000),
		RegisteredAt: orderDate, UpdatedAt: orderDate,
	}
	require.NoError(t, s.db.Create(&detail).Error)

	cancelled, err := s.cancelOrder(&order, []model.OrderDetail{detail})
	require.NoError(t, err)
	assert.False(t, cancelled)

	var untouched model.Order
	require.NoError(t, s.db.First(&untouched, order.ID).Error)
	assert.Equal(t, model.OrderPending, untouched.State, "a skipped cancellation leaves the order alone")

	var inv model.Inventory
	require.NoError(t, s.db.Where("producto_id = ?", products[0].ID).First(&inv).Error)
	assert.Equal(t, initialStock, inv.Available, "stock untouched until the regular flow runs")

	// The order then lives out the regular flow instead of sitting in
	// Pendiente forever.
	require.NoError(t, s.progressOrder(context.Background(), order, user, []model.OrderDetail{detail}))

	require.NoError(t, s.db.First(&untouched, order.ID).Error)
	assert.Contains(t, []model.OrderState{model.OrderDelivered, model.OrderRefunded}, untouched.State)

	require.NoError(t, s.db.Where("producto_id = ?", products[0].ID).First(&inv).Error)
	assert.Equal(t, initialStock-3, inv.Available, "sold quantities leave inventory")
}

func TestApplyOrderTransitionRejectsBackwardsDates(t *testing.T) {
	s := newTestSeeder(t, 74)
	clients := s.mustActiveClients(t, 20)

	orderDate := clients[0].RegisteredAt.AddDate(0, 1, 0)
	order := model.Order{
		UserID: clients[0].ID, LocationID: 1, Code: "PED-TEST-TRANSITION",
		TotalCost: decimal.NewFromInt(1000), PaymentMethod: model.PaymentPSE,
		State: model.OrderPending, RegisteredAt: orderDate, UpdatedAt: orderDate,
	}
	require.NoError(t, s.db.Create(&order).Error)

	moved, err := s.applyOrderTransition(&order, model.OrderProcessing, orderDate.Add(-time.Minute))
	require.NoError(t, err)
	assert.False(t, moved, "time cannot flow backwards")

	moved, err = s.applyOrderTransition(&order, model.OrderProcessing, SimulationEnd.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, moved, "nothing happens after the simulated period")

	moved, err = s.applyOrderTransition(&order, model.OrderProcessing, orderDate.Add(45*time.Minute))
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, model.OrderProcessing, order.State)
}
