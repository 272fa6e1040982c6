package datagen

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Dejatori/amaluz-proyecto-betek/internal/model"
)

// Cart rows whose updates are closer than this belong to the same
// browsing session.
const sessionGap = 15 * time.Minute

var errEmptyOrder = errors.New("order has no sellable items")

// cartSession is one user's batch of cart activity that may convert
// into an order.
type cartSession struct {
	user  model.User
	items []model.CartItem
}

func (cs cartSession) lastActivity() time.Time {
	return cs.items[len(cs.items)-1].UpdatedAt
}

// CreateOrders converts a fraction of the recorded cart sessions into
// orders, each with an address, a shipment and a full lifecycle. The
// conversion rate is sampled once per run between 60% and 90%.
func (s *Seeder) CreateOrders(ctx context.Context, clients []model.User) (int, error) {
	sessions, err := s.collectSessions(clients)
	if err != nil {
		return 0, err
	}
	if len(sessions) == 0 {
		s.log.Warn().Msg("no cart sessions, skipping orders")
		return 0, nil
	}

	conversion := s.floatBetween(0.6, 0.9)
	target := max(1, int(float64(len(sessions))*conversion))
	s.log.Info().Int("sessions", len(sessions)).Int("target", target).
		Float64("conversion", conversion).Msg("converting cart sessions into orders")

	created := 0
	orderSeq := 0
	for i, session := range sessions {
		remainingSessions := len(sessions) - i
		probability := 1.0
		if remainingSessions > 1 {
			probability = float64(target-created) / float64(remainingSessions)
		}
		if created >= target || s.rng.Float64() >= probability {
			continue
		}

		orderSeq++
		order, err := s.placeOrder(ctx, session, orderSeq)
		if err != nil {
			if errors.Is(err, errEmptyOrder) {
				continue
			}
			s.log.Error().Err(err).Uint("user", session.user.ID).Msg("order placement failed")
			continue
		}
		if order == nil {
			continue
		}
		created++

		if err := s.runOrderLifecycle(ctx, *order, session.user); err != nil {
			s.log.Error().Err(err).Str("order", order.Code).Msg("order lifecycle failed")
		}
	}
	s.log.Info().Int("count", created).Msg("orders created")
	return created, nil
}

// collectSessions splits each user's cart rows into sessions by the
// inactivity gap and returns them in chronological order.
func (s *Seeder) collectSessions(clients []model.User) ([]cartSession, error) {
	var sessions []cartSession
	for _, client := range clients {
		var items []model.CartItem
		err := s.db.Where("usuario_id = ?", client.ID).
			Order("fecha_actualizacion").
			Find(&items).Error
		if err != nil {
			return nil, errors.Wrap(err, "load cart items")
		}
		if len(items) == 0 {
			continue
		}

		current := cartSession{user: client, items: items[:1]}
		for _, item := range items[1:] {
			if item.UpdatedAt.Sub(current.lastActivity()) > sessionGap {
				sessions = append(sessions, current)
				current = cartSession{user: client, items: nil}
			}
			current.items = append(current.items, item)
		}
		sessions = append(sessions, current)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].lastActivity().Before(sessions[j].lastActivity())
	})
	return sessions, nil
}

// placeOrder turns one session into an order inside a single
// transaction: address, order row, shipment, details, optional
// discount, final total. A session whose products are all unavailable
// is rolled back without trace.
func (s *Seeder) placeOrder(ctx context.Context, session cartSession, seq int) (*model.Order, error) {
	var placed *model.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		lastCart := session.lastActivity()

		locMin := lastCart.Add(time.Minute)
		locMax := lastCart.Add(3 * time.Minute)
		if !locMax.Before(SimulationEnd) {
			locMax = SimulationEnd.Add(-10 * time.Minute)
		}
		if !locMin.Before(locMax) {
			return errEmptyOrder
		}
		location, err := s.CreateLocationForUser(ctx, tx, session.user, &locMin, locMax)
		if err != nil {
			return err
		}
		if location == nil {
			return errEmptyOrder
		}

		orderMin := location.RegisteredAt.Add(time.Minute)
		orderMax := location.RegisteredAt.Add(3 * time.Minute)
		if !orderMax.Before(SimulationEnd) {
			orderMax = SimulationEnd.Add(-5 * time.Minute)
		}
		if !orderMin.Before(orderMax) {
			return errEmptyOrder
		}
		orderDate := RandomDateIn(s.rng, orderMin, orderMax)

		order := model.Order{
			UserID:        session.user.ID,
			LocationID:    location.ID,
			Code:          s.orderCode(orderDate, seq),
			TotalCost:     decimal.Zero,
			PaymentMethod: model.PaymentMethods[s.rng.Intn(len(model.PaymentMethods))],
			State:         model.OrderPending,
			RegisteredAt:  orderDate,
			UpdatedAt:     orderDate,
		}
		if err := tx.Create(&order).Error; err != nil {
			return errors.Wrap(err, "insert order")
		}

		if _, err := s.CreateShipmentForOrder(tx, order); err != nil {
			return err
		}

		gross, err := s.createOrderDetails(tx, order, session.items)
		if err != nil {
			return err
		}
		if gross.IsZero() {
			return errEmptyOrder
		}

		total := gross
		if discount := s.applicableDiscount(tx, session.user.ID, orderDate); discount != nil {
			pct := decimal.NewFromInt(int64(discount.Percentage)).Div(decimal.NewFromInt(100))
			total = total.Sub(gross.Mul(pct))
			usage := model.DiscountUsage{
				UserID:       session.user.ID,
				DiscountID:   discount.ID,
				RegisteredAt: orderDate,
				UpdatedAt:    orderDate,
			}
			if err := tx.Create(&usage).Error; err != nil {
				return errors.Wrap(err, "insert discount usage")
			}
		}

		var shipment model.Shipment
		if err := tx.Where("pedido_id = ?", order.ID).First(&shipment).Error; err != nil {
			return errors.Wrap(err, "load shipment cost")
		}
		total = total.Add(shipment.Cost).Round(2)

		order.TotalCost = total
		order.UpdatedAt = orderDate.Add(time.Duration(s.intBetween(10, 60)) * time.Second)
		if err := tx.Save(&order).Error; err != nil {
			return errors.Wrap(err, "finalize order")
		}
		placed = &order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

// applicableDiscount picks a discount valid at the order date that the
// user has not redeemed yet. Most eligible orders take it; some leave
// it on the table.
func (s *Seeder) applicableDiscount(tx *gorm.DB, userID uint, orderDate time.Time) *model.Discount {
	var candidates []model.Discount
	err := tx.Where("fecha_inicio <= ? AND fecha_fin >= ?", orderDate, orderDate).
		Order("fecha_inicio").
		Find(&candidates).Error
	if err != nil || len(candidates) == 0 {
		return nil
	}

	for _, idx := range s.rng.Perm(len(candidates)) {
		candidate := candidates[idx]
		var used int64
		err := tx.Model(&model.DiscountUsage{}).
			Where("usuario_id = ? AND descuento_id = ?", userID, candidate.ID).
			Count(&used).Error
		if err != nil || used > 0 {
			continue
		}
		if s.rng.Float64() < s.floatBetween(0.75, 0.95) {
			return &candidate
		}
		return nil
	}
	return nil
}

func (s *Seeder) orderCode(orderDate time.Time, seq int) string {
	suffix := strings.ToUpper(uuid.NewString()[:4])
	return fmt.Sprintf("PED-%s-%d-%s", orderDate.Format("20060102150405"), seq, suffix)
}
