package datagen

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Dejatori/amaluz-proyecto-betek/internal/model"
)

const (
	cartMinProducts = 2
	cartMaxProducts = 5
	cartMaxQuantity = 12
)

// CreateCarts fills a shopping cart for every active client that does
// not already hold one. Each client gets a browsing session shortly
// after registration with 2-5 distinct products added a few minutes
// apart.
func (s *Seeder) CreateCarts(clients []model.User) (int, error) {
	if len(clients) == 0 {
		s.log.Warn().Msg("no active clients, skipping carts")
		return 0, nil
	}

	products, err := s.Products()
	if err != nil {
		return 0, err
	}
	if len(products) == 0 {
		s.log.Warn().Msg("no products, skipping carts")
		return 0, nil
	}

	created := 0
	for _, client := range clients {
		n, err := s.cartSessionFor(client, products)
		if err != nil {
			s.log.Error().Err(err).Uint("user", client.ID).Msg("cart session failed")
			continue
		}
		created += n
	}
	s.log.Info().Int("count", created).Msg("cart items created")
	return created, nil
}

func (s *Seeder) cartSessionFor(client model.User, products []model.Product) (int, error) {
	var existing int64
	err := s.db.Model(&model.CartItem{}).Where("usuario_id = ?", client.ID).Count(&existing).Error
	if err != nil {
		return 0, errors.Wrap(err, "count existing cart items")
	}
	if existing >= cartMinProducts {
		return 0, nil
	}

	baseDate := maxTime(SimulationStart, client.RegisteredAt.Add(time.Hour))
	if !baseDate.Before(CartWindowEnd) {
		return 0, nil
	}

	// Only products the client could have seen by the session date.
	visible := make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.RegisteredAt.Before(baseDate) {
			visible = append(visible, p)
		}
	}
	if len(visible) == 0 {
		// Catalog starts after this client's session. Push the session
		// past the newest product so cart rows never predate it.
		newest := products[0].RegisteredAt
		for _, p := range products[1:] {
			if p.RegisteredAt.After(newest) {
				newest = p.RegisteredAt
			}
		}
		baseDate = newest.Add(24 * time.Hour)
		if !baseDate.Before(CartWindowEnd) {
			return 0, nil
		}
		visible = products
	}

	count := s.intBetween(cartMinProducts, cartMaxProducts)
	if count > len(visible) {
		count = len(visible)
	}

	picked := make([]model.Product, 0, count)
	seen := make(map[uint]bool, count)
	for _, idx := range s.rng.Perm(len(visible)) {
		if len(picked) == count {
			break
		}
		p := visible[idx]
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		picked = append(picked, p)
	}

	daysLeft := int(CartWindowEnd.Sub(baseDate).Hours() / 24)
	maxOffset := min(30, daysLeft-1)
	if maxOffset < 0 {
		maxOffset = 0
	}
	sessionDate := baseDate.
		AddDate(0, 0, s.intBetween(0, maxOffset)).
		Add(time.Duration(s.intBetween(0, 23))*time.Hour +
			time.Duration(s.intBetween(0, 59))*time.Minute)
	if sessionDate.After(CartWindowEnd) {
		sessionDate = CartWindowEnd
	}

	created := 0
	for i, p := range picked {
		registeredAt := sessionDate.Add(time.Duration(i) * time.Duration(s.intBetween(1, 3)) * time.Minute)
		updatedAt := registeredAt.Add(time.Duration(s.intBetween(10, 120)) * time.Second)

		var prior model.CartItem
		err := s.db.Where("usuario_id = ? AND producto_id = ?", client.ID, p.ID).First(&prior).Error
		if err == nil {
			prior.Quantity = s.intBetween(1, cartMaxQuantity)
			prior.UpdatedAt = updatedAt
			if err := s.db.Save(&prior).Error; err != nil {
				return created, errors.Wrap(err, "update cart item")
			}
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, errors.Wrap(err, "look up cart item")
		}

		item := model.CartItem{
			UserID:       client.ID,
			ProductID:    p.ID,
			Quantity:     s.intBetween(1, cartMaxQuantity),
			RegisteredAt: registeredAt,
			UpdatedAt:    updatedAt,
		}
		if err := s.db.Create(&item).Error; err != nil {
			return created, errors.Wrap(err, "insert cart item")
		}
		created++
	}
	return created, nil
}
