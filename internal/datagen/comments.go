package datagen

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Dejatori/amaluz-proyecto-betek/internal/model"
)

const commentChance = 0.7

// CreateCommentsForOrder posts a review for most products of a
// delivered order, dated a few days after the delivery.
func (s *Seeder) CreateCommentsForOrder(ctx context.Context, order model.Order, user model.User, details []model.OrderDetail, deliveredAt time.Time) error {
	for _, detail := range details {
		if s.rng.Float64() >= commentChance {
			continue
		}

		var product model.Product
		if err := s.db.First(&product, detail.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return errors.Wrap(err, "load product for review")
		}

		minDate := maxTime(deliveredAt, maxTime(user.RegisteredAt, product.RegisteredAt))
		registeredAt := minDate.
			AddDate(0, 0, s.intBetween(0, 7)).
			Add(time.Duration(s.intBetween(0, 86399)) * time.Second)
		if registeredAt.After(SimulationEnd) {
			registeredAt = SimulationEnd
		}
		updatedAt := registeredAt.Add(time.Duration(s.intBetween(0, 3600)) * time.Second)
		if updatedAt.After(SimulationEnd) {
			updatedAt = SimulationEnd
		}

		rating := s.intBetween(1, 5)
		text, err := s.text.ReviewComment(ctx, s.reviewContext(product, rating))
		if err != nil {
			s.log.Debug().Err(err).Uint("product", product.ID).Msg("review generation failed, using fallback")
			text = faker.Sentence()
		}

		comment := model.Comment{
			UserID:       user.ID,
			ProductID:    product.ID,
			Text:         text,
			Rating:       rating,
			RegisteredAt: registeredAt,
			UpdatedAt:    updatedAt,
		}
		if err := s.db.Create(&comment).Error; err != nil {
			return errors.Wrap(err, "insert comment")
		}
	}
	return nil
}

// reviewContext describes the purchase for the text generator so the
// review matches the product and the rating.
func (s *Seeder) reviewContext(product model.Product, rating int) string {
	return fmt.Sprintf(
		"Eres un usuario que ha comprado el producto con las siguientes características: "+
			"Producto: %s, Descripción: %s, Categoría: %s, Calificación: %d. ",
		product.Name, product.Description, product.Category, rating,
	)
}
