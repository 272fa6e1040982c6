package datagen

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dejatori/amaluz-proyecto-betek/internal/model"
)

func (s *Seeder) mustCatalog(t *testing.T, providerCount, productCount int) []model.Product {
	t.Helper()
	providers, err := s.CreateProviders(providerCount)
	require.NoError(t, err)
	products, err := s.CreateProducts(context.Background(), productCount, providers)
	require.NoError(t, err)
	require.NotEmpty(t, products)
	return products
}

func TestCreateInitialInventory(t *testing.T) {
	s := newTestSeeder(t, 41)
	products := s.mustCatalog(t, 2, 4)

	inventories, err := s.CreateInitialInventory(products)
	require.NoError(t, err)
	require.Len(t, inventories, len(products))

	byProduct := map[uint]model.Product{}
	for _, p := range products {
		byProduct[p.ID] = p
	}
	for _, inv := range inventories {
		assert.Equal(t, initialStock, inv.OnHand)
		assert.Equal(t, initialStock, inv.Available)
		assert.False(t, inv.RegisteredAt.Before(byProduct[inv.ProductID].RegisteredAt),
			"stock cannot arrive before the product exists")
		assert.False(t, inv.RegisteredAt.After(InventoryWindowEnd))
	}
}

func TestRestockTrackerCooldown(t *testing.T) {
	tracker := NewRestockTracker()
	at := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, tracker.CanRestock(1, at))
	tracker.MarkRestocked(1, at)
	assert.False(t, tracker.CanRestock(1, at.AddDate(0, 0, 19)))
	assert.True(t, tracker.CanRestock(1, at.AddDate(0, 0, 20)))
	assert.True(t, tracker.CanRestock(2, at), "the cooldown is per product")
}

func TestDebitInventoryDeactivatesAndRestocks(t *testing.T) {
	s := newTestSeeder(t, 42)
	products := s.mustCatalog(t, 1, 1)
	_, err := s.CreateInitialInventory(products)
	require.NoError(t, err)

	product := products[0]
	orderDate := product.RegisteredAt.AddDate(0, 1, 0)
	detail := model.OrderDetail{ProductID: product.ID, Quantity: initialStock}

	ok, err := s.DebitInventory(s.db, detail, orderDate)
	require.NoError(t, err)
	require.True(t, ok)

	// Draining the stock deactivates the product, then the low-stock
	// check replenishes it and brings the product back.
	var inv model.Inventory
	require.NoError(t, s.db.Where("producto_id = ?", product.ID).First(&inv).Error)
	assert.Positive(t, inv.Available)
	assert.Equal(t, inv.Available, inv.OnHand)
	assert.True(t, inv.UpdatedAt.After(orderDate))

	var reloaded model.Product
	require.NoError(t, s.db.First(&reloaded, product.ID).Error)
	assert.Equal(t, model.ProductActive, reloaded.State)
}

func TestDebitInventoryRejectsOversell(t *testing.T) {
	s := newTestSeeder(t, 43)
	products := s.mustCatalog(t, 1, 1)
	_, err := s.CreateInitialInventory(products)
	require.NoError(t, err)

	detail := model.OrderDetail{ProductID: products[0].ID, Quantity: initialStock + 1}
	ok, err := s.DebitInventory(s.db, detail, products[0].RegisteredAt.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.False(t, ok)

	var inv model.Inventory
	require.NoError(t, s.db.Where("producto_id = ?", products[0].ID).First(&inv).Error)
	assert.Equal(t, initialStock, inv.Available, "a rejected sale must not touch stock")
}

func TestRestoreStockAfterCancelReactivatesProduct(t *testing.T) {
	s := newTestSeeder(t, 44)
	products := s.mustCatalog(t, 1, 1)
	_, err := s.CreateInitialInventory(products)
	require.NoError(t, err)

	product := products[0]
	now := product.RegisteredAt.AddDate(0, 1, 0)
	require.NoError(t, s.db.Model(&model.Inventory{}).Where("producto_id = ?", product.ID).
		Updates(map[string]interface{}{"cantidad_disponible": 0, "cantidad_mano": 0}).Error)
	require.NoError(t, s.db.Model(&model.Product{}).Where("id = ?", product.ID).
		Update("estado", model.ProductInactive).Error)

	require.NoError(t, s.RestoreStockAfterCancel(s.db, product.ID, 5, now))

	var inv model.Inventory
	require.NoError(t, s.db.Where("producto_id = ?", product.ID).First(&inv).Error)
	assert.Equal(t, 5, inv.Available)
	assert.Equal(t, 5, inv.OnHand)

	var reloaded model.Product
	require.NoError(t, s.db.First(&reloaded, product.ID).Error)
	assert.Equal(t, model.ProductActive, reloaded.State)
}

func TestRestockQuantityTable(t *testing.T) {
	assert.Equal(t, 108, restockQuantity(9, 1))
	assert.Equal(t, 96, restockQuantity(9, 3))
	assert.Equal(t, 84, restockQuantity(8, 7))
	assert.Equal(t, 72, restockQuantity(5, 1))
	assert.Equal(t, 64, restockQuantity(5, 2))
	assert.Equal(t, 48, restockQuantity(4, 5))
	assert.Equal(t, 36, restockQuantity(1, 1))
	assert.Equal(t, 24, restockQuantity(0, 3))
	assert.Equal(t, 12, restockQuantity(2, 4))
}
