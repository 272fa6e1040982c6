package datagen

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dejatori/amaluz-proyecto-betek/internal/model"
)

func (s *Seeder) mustActiveClients(t *testing.T, userCount int) []model.User {
	t.Helper()
	_, err := s.CreateUsers(context.Background(), userCount)
	require.NoError(t, err)
	require.NoError(t, s.ActivateUsers(1))
	clients, err := s.ActiveClients()
	require.NoError(t, err)
	require.NotEmpty(t, clients)
	return clients
}

func TestCreateCarts(t *testing.T) {
	s := newTestSeeder(t, 51)
	clients := s.mustActiveClients(t, 30)
	s.mustCatalog(t, 2, 10)

	created, err := s.CreateCarts(clients)
	require.NoError(t, err)
	assert.Positive(t, created)

	byUser := map[uint]map[uint]bool{}
	registeredAt := map[uint]time.Time{}
	for _, c := range clients {
		registeredAt[c.ID] = c.RegisteredAt
	}

	var items []model.CartItem
	require.NoError(t, s.db.Find(&items).Error)
	for _, item := range items {
		if byUser[item.UserID] == nil {
			byUser[item.UserID] = map[uint]bool{}
		}
		assert.False(t, byUser[item.UserID][item.ProductID],
			"user %d holds product %d twice", item.UserID, item.ProductID)
		byUser[item.UserID][item.ProductID] = true

		assert.GreaterOrEqual(t, item.Quantity, 1)
		assert.LessOrEqual(t, item.Quantity, cartMaxQuantity)
		assert.True(t, item.UpdatedAt.After(item.RegisteredAt))
		assert.False(t, item.RegisteredAt.Before(registeredAt[item.UserID]),
			"cart activity cannot predate the account")
	}

	for userID, products := range byUser {
		assert.LessOrEqual(t, len(products), cartMaxProducts, "user %d has too many cart products", userID)
	}
}

func TestCartSessionNeverPredatesCatalog(t *testing.T) {
	s := newTestSeeder(t, 53)

	// Client from opening week browsing a catalog that only shows up
	// two and a half years later. The session must shift forward past
	// the newest product instead of dating items before it exists.
	client := model.User{
		Name:         "Laura Quintero",
		Email:        "laura.quintero@gmail.com",
		Password:     "x",
		Phone:        "30012345678",
		Gender:       model.GenderFemale,
		Role:         model.RoleClient,
		State:        model.UserActive,
		RegisteredAt: SimulationStart,
		UpdatedAt:    SimulationStart.Add(5 * time.Minute),
	}
	require.NoError(t, s.db.Create(&client).Error)

	catalogStart := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	products := make([]model.Product, 0, 4)
	for i := 0; i < 4; i++ {
		registered := catalogStart.Add(time.Duration(i) * 36 * time.Hour)
		p := model.Product{
			Name:          fmt.Sprintf("Vela Nocturna %d", i+1),
			SalePrice:     decimal.NewFromInt(15000),
			SupplierPrice: decimal.NewFromInt(8000),
			Category:      model.CategoryAromatic,
			Fragrance:     model.FragranceLavender,
			State:         model.ProductActive,
			ProviderID:    1,
			RegisteredAt:  registered,
			UpdatedAt:     registered.Add(10 * time.Minute),
		}
		require.NoError(t, s.db.Create(&p).Error)
		products = append(products, p)
	}
	newest := products[len(products)-1].RegisteredAt

	created, err := s.cartSessionFor(client, products)
	require.NoError(t, err)
	require.Positive(t, created)

	registeredAt := map[uint]time.Time{}
	for _, p := range products {
		registeredAt[p.ID] = p.RegisteredAt
	}

	var items []model.CartItem
	require.NoError(t, s.db.Where("usuario_id = ?", client.ID).Find(&items).Error)
	require.NotEmpty(t, items)
	for _, item := range items {
		assert.False(t, item.RegisteredAt.Before(registeredAt[item.ProductID]),
			"cart item dated %s predates product %d registered %s",
			item.RegisteredAt, item.ProductID, registeredAt[item.ProductID])
		assert.True(t, item.RegisteredAt.After(newest),
			"session must land after the newest product")
	}
}

func TestCreateCartsSkipsFilledCarts(t *testing.T) {
	s := newTestSeeder(t, 52)
	clients := s.mustActiveClients(t, 25)
	s.mustCatalog(t, 2, 8)

	_, err := s.CreateCarts(clients)
	require.NoError(t, err)
	var before int64
	require.NoError(t, s.db.Model(&model.CartItem{}).Count(&before).Error)

	// Users already holding a cart are left alone on a second pass.
	again, err := s.CreateCarts(clients)
	require.NoError(t, err)
	assert.Zero(t, again)

	var after int64
	require.NoError(t, s.db.Model(&model.CartItem{}).Count(&after).Error)
	assert.Equal(t, before, after)
}
