// Package datagen generates a temporally coherent synthetic dataset for
// the Amaluz candle store: users, providers, products, inventory, carts,
// orders with their lifecycle, shipments, discounts and comments.
package datagen

import (
	"context"
	"math/rand"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// TextGenerator produces Spanish prose for products, locations and
// reviews. Implementations may fail; every caller has a local fallback.
type TextGenerator interface {
	InferGender(ctx context.Context, name string) (string, error)
	ProductName(ctx context.Context, category, fragrance string) (string, error)
	ProductDescription(ctx context.Context, name, category, fragrance string) (string, error)
	LocationDescription(ctx context.Context) (string, error)
	DeliveryNotes(ctx context.Context) (string, error)
	ReviewComment(ctx context.Context, reviewContext string) (string, error)
}

// ImageGenerator produces product image URLs.
type ImageGenerator interface {
	ProductImageURL(ctx context.Context, category, size, fragrance, description string) (string, error)
}

// Seeder holds the shared state of a generation run. The rng is seeded
// once so runs are reproducible.
type Seeder struct {
	db       *gorm.DB
	rng      *rand.Rand
	log      zerolog.Logger
	text     TextGenerator
	image    ImageGenerator
	restocks *RestockTracker
}

func NewSeeder(db *gorm.DB, rng *rand.Rand, log zerolog.Logger, text TextGenerator, image ImageGenerator) *Seeder {
	return &Seeder{
		db:       db,
		rng:      rng,
		log:      log,
		text:     text,
		image:    image,
		restocks: NewRestockTracker(),
	}
}

func (s *Seeder) intBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.rng.Intn(max-min+1)
}

func (s *Seeder) floatBetween(min, max float64) float64 {
	return min + s.rng.Float64()*(max-min)
}
