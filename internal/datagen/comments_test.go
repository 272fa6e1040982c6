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

func TestCreateCommentsForOrder(t *testing.T) {
	s := newTestSeeder(t, 81)
	clients := s.mustActiveClients(t, 20)
	products := s.mustCatalog(t, 1, 3)

	user := clients[0]
	orderDate := user.RegisteredAt.AddDate(0, 2, 0)
	deliveredAt := orderDate.AddDate(0, 0, 6)

	order := model.Order{
		UserID: user.ID, LocationID: 1, Code: "PED-TEST-COMMENTS",
		TotalCost: decimal.NewFromInt(10000), PaymentMethod: model.PaymentPSE,
		State: model.OrderDelivered, RegisteredAt: orderDate, UpdatedAt: deliveredAt,
	}
	require.NoError(t, s.db.Create(&order).Error)

	var details []model.OrderDetail
	for _, p := range products {
		details = append(details, model.OrderDetail{
			OrderID: order.ID, ProductID: p.ID, Quantity: 1,
			UnitPrice: p.SalePrice, Subtotal: p.SalePrice,
			RegisteredAt: orderDate, UpdatedAt: orderDate,
		})
	}
	require.NoError(t, s.db.Create(&details).Error)

	require.NoError(t, s.CreateCommentsForOrder(context.Background(), order, user, details, deliveredAt))

	var comments []model.Comment
	require.NoError(t, s.db.Find(&comments).Error)
	for _, c := range comments {
		assert.Equal(t, user.ID, c.UserID)
		assert.NotEmpty(t, c.Text)
		assert.GreaterOrEqual(t, c.Rating, 1)
		assert.LessOrEqual(t, c.Rating, 5)
		assert.False(t, c.RegisteredAt.Before(deliveredAt), "a review cannot predate the delivery")
		assert.False(t, c.RegisteredAt.After(SimulationEnd))
		assert.False(t, c.UpdatedAt.Before(c.RegisteredAt))
		assert.LessOrEqual(t, c.RegisteredAt.Sub(deliveredAt), 8*24*time.Hour)
	}
}
