package datagen

import (
	"sort"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Dejatori/amaluz-proyecto-betek/internal/model"
)

const (
	initialStock    = 24
	restockLowWater = 12
	restockCooldown = 20 * 24 * time.Hour
)

// RestockTracker remembers when each product was last restocked so the
// cooldown can be enforced without another table. Lives for one run.
type RestockTracker struct {
	lastRestock map[uint]time.Time
}

func NewRestockTracker() *RestockTracker {
	return &RestockTracker{lastRestock: make(map[uint]time.Time)}
}

// CanRestock reports whether the cooldown has elapsed for productID at
// the given instant.
func (t *RestockTracker) CanRestock(productID uint, at time.Time) bool {
	last, ok := t.lastRestock[productID]
	if !ok {
		return true
	}
	return !at.Before(last.Add(restockCooldown))
}

func (t *RestockTracker) MarkRestocked(productID uint, at time.Time) {
	t.lastRestock[productID] = at
}

// CreateInitialInventory opens stock for each product shortly after its
// registration: 24 on hand, 24 available.
func (s *Seeder) CreateInitialInventory(products []model.Product) ([]model.Inventory, error) {
	if len(products) == 0 {
		s.log.Warn().Msg("no products, skipping initial inventory")
		return nil, nil
	}

	inventories := make([]model.Inventory, 0, len(products))
	for _, p := range products {
		floor := p.RegisteredAt
		ceil := minTime(p.RegisteredAt.Add(time.Duration(s.intBetween(10, 300))*time.Second), InventoryWindowEnd)
		registeredAt := floor
		if floor.Before(ceil) {
			registeredAt = RandomDateIn(s.rng, floor, ceil)
		}
		inventories = append(inventories, model.Inventory{
			ProductID:    p.ID,
			OnHand:       initialStock,
			Available:    initialStock,
			RegisteredAt: registeredAt,
			UpdatedAt:    registeredAt,
		})
	}

	if err := s.db.Create(&inventories).Error; err != nil {
		return nil, errors.Wrap(err, "insert initial inventory")
	}
	s.log.Info().Int("count", len(inventories)).Msg("initial inventory created")
	return inventories, nil
}

// popularityScores returns a 0-10 score per active product: a weighted
// blend of delivered/shipped sales (0.6), positive ratings (0.3) and
// cart volume (0.1), each normalized against the catalog maximum.
func (s *Seeder) popularityScores() (map[uint]float64, error) {
	type idCount struct {
		ProductID uint `gorm:"column:producto_id"`
		Total     int  `gorm:"column:total"`
	}

	var sales []idCount
	err := s.db.Model(&model.OrderDetail{}).
		Select("detalle_pedido.producto_id AS producto_id, SUM(detalle_pedido.cantidad) AS total").
		Joins("JOIN pedidos ON pedidos.id = detalle_pedido.pedido_id").
		Where("pedidos.estado_pedido IN ?", []model.OrderState{model.OrderDelivered, model.OrderShipped}).
		Group("detalle_pedido.producto_id").
		Scan(&sales).Error
	if err != nil {
		return nil, errors.Wrap(err, "aggregate sales")
	}

	var ratings []idCount
	err = s.db.Model(&model.Comment{}).
		Select("producto_id, COUNT(id) AS total").
		Where("calificacion >= ?", 4).
		Group("producto_id").
		Scan(&ratings).Error
	if err != nil {
		return nil, errors.Wrap(err, "aggregate positive ratings")
	}

	var carts []idCount
	err = s.db.Model(&model.CartItem{}).
		Select("producto_id, SUM(cantidad) AS total").
		Group("producto_id").
		Scan(&carts).Error
	if err != nil {
		return nil, errors.Wrap(err, "aggregate cart volume")
	}

	toMap := func(rows []idCount) (map[uint]int, int) {
		m := make(map[uint]int, len(rows))
		maxVal := 1
		for _, r := range rows {
			m[r.ProductID] = r.Total
			if r.Total > maxVal {
				maxVal = r.Total
			}
		}
		return m, maxVal
	}
	salesBy, maxSales := toMap(sales)
	ratingsBy, maxRatings := toMap(ratings)
	cartsBy, maxCarts := toMap(carts)

	var active []model.Product
	if err := s.db.Where("estado = ?", model.ProductActive).Find(&active).Error; err != nil {
		return nil, errors.Wrap(err, "load active products")
	}

	scores := make(map[uint]float64, len(active))
	for _, p := range active {
		score := 0.6*float64(salesBy[p.ID])/float64(maxSales)*10 +
			0.3*float64(ratingsBy[p.ID])/float64(maxRatings)*10 +
			0.1*float64(cartsBy[p.ID])/float64(maxCarts)*10
		if score > 10 {
			score = 10
		}
		scores[p.ID] = score
	}
	return scores, nil
}

// restockQuantity maps a popularity bucket and the product's rank
// inside it to a replenishment size between 12 and 108 units.
func restockQuantity(score float64, rank int) int {
	switch {
	case score >= 8:
		switch {
		case rank == 1:
			return 108
		case rank <= 4:
			return 96
		default:
			return 84
		}
	case score >= 4:
		switch {
		case rank == 1:
			return 72
		case rank <= 3:
			return 64
		default:
			return 48
		}
	default:
		switch {
		case rank == 1:
			return 36
		case rank <= 3:
			return 24
		default:
			return 12
		}
	}
}

// restockQuantityFor computes the replenishment size for productID by
// ranking it inside its popularity bucket.
func (s *Seeder) restockQuantityFor(productID uint) (int, error) {
	scores, err := s.popularityScores()
	if err != nil {
		return 0, err
	}

	type scored struct {
		id    uint
		score float64
	}
	var high, mid, low []scored
	for id, score := range scores {
		switch {
		case score >= 8:
			high = append(high, scored{id, score})
		case score >= 4:
			mid = append(mid, scored{id, score})
		default:
			low = append(low, scored{id, score})
		}
	}
	for _, bucket := range [][]scored{high, mid, low} {
		sort.SliceStable(bucket, func(i, j int) bool {
			if bucket[i].score != bucket[j].score {
				return bucket[i].score > bucket[j].score
			}
			return bucket[i].id < bucket[j].id
		})
		for rank, entry := range bucket {
			if entry.id == productID {
				return restockQuantity(entry.score, rank+1), nil
			}
		}
	}

	s.log.Warn().Uint("product", productID).Msg("product missing from popularity buckets, using minimum restock")
	return 24, nil
}

// DebitInventory reduces stock for one order detail at the given
// instant. The product is deactivated when available stock hits zero,
// and a restock is scheduled when it falls under the threshold.
func (s *Seeder) DebitInventory(tx *gorm.DB, detail model.OrderDetail, at time.Time) (bool, error) {
	var inv model.Inventory
	if err := tx.Where("producto_id = ?", detail.ProductID).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn().Uint("product", detail.ProductID).Msg("no inventory row for product")
			return false, nil
		}
		return false, errors.Wrap(err, "load inventory")
	}

	if inv.Available < detail.Quantity {
		s.log.Warn().Uint("product", detail.ProductID).
			Int("requested", detail.Quantity).Int("available", inv.Available).
			Msg("insufficient stock")
		return false, nil
	}

	inv.Available -= detail.Quantity
	inv.OnHand -= detail.Quantity
	inv.UpdatedAt = at
	if err := tx.Save(&inv).Error; err != nil {
		return false, errors.Wrap(err, "update inventory")
	}

	if inv.Available == 0 {
		err := tx.Model(&model.Product{}).Where("id = ? AND estado <> ?", detail.ProductID, model.ProductInactive).
			Updates(map[string]interface{}{
				"estado":              model.ProductInactive,
				"fecha_actualizacion": at,
			}).Error
		if err != nil {
			return false, errors.Wrap(err, "deactivate product")
		}
		s.log.Info().Uint("product", detail.ProductID).Msg("product deactivated, stock exhausted")
	}

	if err := s.maybeRestock(tx, &inv, at); err != nil {
		return false, err
	}
	return true, nil
}

// maybeRestock replenishes inv when it has fallen under the threshold
// and the per-product cooldown has elapsed. The restock lands 1-5 days
// after the triggering operation, with the update timestamp always
// advancing.
func (s *Seeder) maybeRestock(tx *gorm.DB, inv *model.Inventory, at time.Time) error {
	if inv.Available >= restockLowWater {
		return nil
	}
	if !s.restocks.CanRestock(inv.ProductID, at) {
		s.log.Debug().Uint("product", inv.ProductID).Msg("restock still in cooldown")
		return nil
	}

	quantity, err := s.restockQuantityFor(inv.ProductID)
	if err != nil {
		return err
	}

	restockAt := at.Add(time.Duration(s.intBetween(1, 5)) * 24 * time.Hour)
	if restockAt.After(InventoryWindowEnd) {
		restockAt = InventoryWindowEnd
	}
	if !restockAt.After(inv.UpdatedAt) {
		restockAt = inv.UpdatedAt.Add(time.Second)
	}

	inv.Available += quantity
	inv.OnHand += quantity
	inv.UpdatedAt = restockAt
	if err := tx.Save(inv).Error; err != nil {
		return errors.Wrap(err, "apply restock")
	}
	s.restocks.MarkRestocked(inv.ProductID, restockAt)

	var product model.Product
	if err := tx.First(&product, inv.ProductID).Error; err == nil && product.State == model.ProductInactive {
		reactivateAt := restockAt
		if !reactivateAt.After(product.UpdatedAt) {
			reactivateAt = product.UpdatedAt.Add(time.Second)
		}
		err := tx.Model(&product).Updates(map[string]interface{}{
			"estado":              model.ProductActive,
			"fecha_actualizacion": reactivateAt,
		}).Error
		if err != nil {
			return errors.Wrap(err, "reactivate product")
		}
		s.log.Info().Uint("product", inv.ProductID).Time("at", reactivateAt).Msg("product reactivated after restock")
	}

	s.log.Info().Uint("product", inv.ProductID).Int("quantity", quantity).
		Time("at", restockAt).Msg("inventory restocked")
	return nil
}

// RestoreStockAfterCancel returns the cancelled quantity to inventory,
// reactivating the product when stock comes back from zero. The row is
// locked for the update.
func (s *Seeder) RestoreStockAfterCancel(tx *gorm.DB, productID uint, quantity int, at time.Time) error {
	var inv model.Inventory
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("producto_id = ?", productID).
		First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn().Uint("product", productID).Msg("no inventory row to restore after cancellation")
			return nil
		}
		return errors.Wrap(err, "lock inventory")
	}

	wasEmpty := inv.Available <= 0
	inv.Available += quantity
	inv.OnHand += quantity
	inv.UpdatedAt = at
	if err := tx.Save(&inv).Error; err != nil {
		return errors.Wrap(err, "restore inventory")
	}

	if wasEmpty && inv.Available > 0 {
		err := tx.Model(&model.Product{}).
			Where("id = ? AND estado = ?", productID, model.ProductInactive).
			Updates(map[string]interface{}{
				"estado":              model.ProductActive,
				"fecha_actualizacion": at,
			}).Error
		if err != nil {
			return errors.Wrap(err, "reactivate product after cancellation")
		}
	}
	s.log.Info().Uint("product", productID).Int("quantity", quantity).Msg("stock restored after cancellation")
	return nil
}

// AvailableStock returns the available quantity for a product, zero
// when no inventory row exists.
func (s *Seeder) AvailableStock(tx *gorm.DB, productID uint) int {
	var inv model.Inventory
	if err := tx.Where("producto_id = ?", productID).First(&inv).Error; err != nil {
		return 0
	}
	return inv.Available
}
