package datagen

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/Dejatori/amaluz-proyecto-betek/internal/model"
)

const productNameRetries = 5

type candleSize struct {
	name                   string
	heightMin, heightMax   int
	widthMin, widthMax     int
	depthMin, depthMax     int
	weightMin, weightMax   float64
}

var candleSizes = []candleSize{
	{"Pequeña", 5, 8, 5, 8, 5, 8, 0.150, 0.200},
	{"Mediana", 9, 15, 7, 8, 7, 8, 0.201, 0.270},
	{"Grande", 16, 25, 10, 12, 10, 12, 0.271, 0.350},
}

// CreateProducts registers count products distributed across providers
// proportionally to how long each provider has been available, on a
// single monotone registration timeline. Hitting the window ceiling
// stops creation and keeps what was produced.
func (s *Seeder) CreateProducts(ctx context.Context, count int, providers []model.Provider) ([]model.Product, error) {
	if len(providers) == 0 {
		s.log.Warn().Msg("no providers available, skipping products")
		return nil, nil
	}

	sorted := make([]model.Provider, len(providers))
	copy(sorted, providers)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].RegisteredAt.Before(sorted[j].RegisteredAt)
	})

	perProvider := s.distributeProducts(count, sorted)

	// Global registration cursor: products across all providers form a
	// single increasing sequence.
	clock := NewSimulationClock(
		maxTime(ProductWindowStart, sorted[0].RegisteredAt.Add(-time.Second)),
		ProductWindowEnd,
	)

	usedNames := make(map[string]bool)
	var created []model.Product
	stopped := false

	for _, provider := range sorted {
		if stopped {
			break
		}
		quota := perProvider[provider.ID]
		if quota == 0 {
			continue
		}

		// First product of a provider waits at least an hour after its
		// registration; skip providers that can no longer fit one.
		earliest := maxTime(provider.RegisteredAt.Add(time.Hour), clock.Now().Add(time.Second))
		if !earliest.Before(clock.Ceiling()) {
			s.log.Warn().Uint("provider", provider.ID).
				Time("earliest", earliest).
				Msg("provider registered too late for products, skipping")
			continue
		}

		for i := 0; i < quota; i++ {
			registeredAt, err := s.nextProductDate(clock, provider, i == 0)
			if err != nil {
				s.log.Warn().Uint("provider", provider.ID).
					Msg("product window exhausted, stopping product creation")
				stopped = true
				break
			}

			product, err := s.buildProduct(ctx, provider, registeredAt, clock.Ceiling(), usedNames)
			if err != nil {
				return created, err
			}
			if err := s.db.Create(&product).Error; err != nil {
				s.log.Error().Err(err).Uint("provider", provider.ID).Msg("product insert failed, skipping")
				continue
			}
			created = append(created, product)
		}
	}

	s.log.Info().Int("created", len(created)).Int("requested", count).Msg("products created")
	return created, nil
}

// distributeProducts assigns each provider at least one product when
// count allows, then splits the remainder proportionally to available
// days, settling rounding with a largest-remainder pass.
func (s *Seeder) distributeProducts(count int, sorted []model.Provider) map[uint]int {
	perProvider := make(map[uint]int, len(sorted))
	assigned := 0
	if count >= len(sorted) {
		for _, p := range sorted {
			perProvider[p.ID] = 1
		}
		assigned = len(sorted)
	} else {
		for i := 0; i < count; i++ {
			perProvider[sorted[i].ID] = 1
		}
		assigned = count
	}

	rest := count - assigned
	if rest > 0 {
		days := make(map[uint]float64, len(sorted))
		var totalDays float64
		for _, p := range sorted {
			d := math.Max(1, ProductWindowEnd.Sub(p.RegisteredAt).Hours()/24)
			days[p.ID] = d
			totalDays += d
		}

		fractions := make(map[uint]float64, len(sorted))
		for _, p := range sorted {
			exact := days[p.ID] / totalDays * float64(rest)
			perProvider[p.ID] += int(exact)
			fractions[p.ID] = exact - math.Trunc(exact)
		}

		total := 0
		for _, n := range perProvider {
			total += n
		}
		if missing := count - total; missing > 0 {
			byFraction := make([]model.Provider, len(sorted))
			copy(byFraction, sorted)
			sort.SliceStable(byFraction, func(i, j int) bool {
				return fractions[byFraction[i].ID] > fractions[byFraction[j].ID]
			})
			for i := 0; i < missing; i++ {
				perProvider[byFraction[i%len(byFraction)].ID]++
			}
		}
	}
	for id, n := range perProvider {
		s.log.Debug().Uint("provider", id).Int("planned", n).Msg("product quota")
	}
	return perProvider
}

// nextProductDate advances the global clock for one more product. The
// first product of a provider additionally waits 1-12 hours after the
// provider registered. When the regular increment would pass the
// ceiling a tight 1-300s increment is tried before giving up.
func (s *Seeder) nextProductDate(clock *SimulationClock, provider model.Provider, firstOfProvider bool) (time.Time, error) {
	providerFloor := provider.RegisteredAt
	if firstOfProvider {
		providerFloor = providerFloor.
			Add(time.Duration(s.intBetween(1, 12)) * time.Hour).
			Add(time.Duration(s.intBetween(0, 59)) * time.Minute)
	}

	increment := time.Duration(s.intBetween(0, 1))*24*time.Hour +
		time.Duration(s.intBetween(0, 8))*time.Hour +
		time.Duration(s.intBetween(1, 59))*time.Minute +
		time.Duration(s.intBetween(0, 59))*time.Second

	candidate := maxTime(providerFloor, clock.Now().Add(increment))
	if _, err := clock.AdvanceTo(candidate); err == nil {
		return clock.Now(), nil
	}

	tight := maxTime(providerFloor, clock.Now().Add(time.Duration(s.intBetween(1, 300))*time.Second))
	if _, err := clock.AdvanceTo(tight); err != nil {
		return time.Time{}, err
	}
	s.log.Warn().Msg("using tight date increment to stay inside product window")
	return clock.Now(), nil
}

func (s *Seeder) buildProduct(ctx context.Context, provider model.Provider, registeredAt, ceiling time.Time, usedNames map[string]bool) (model.Product, error) {
	category := model.ProductCategories[s.rng.Intn(len(model.ProductCategories))]
	fragrance := model.Fragrances[s.rng.Intn(len(model.Fragrances))]

	name, description := s.productCopy(ctx, category, fragrance, usedNames)

	size := candleSizes[s.rng.Intn(len(candleSizes))]
	dimensions := fmt.Sprintf("%dx%dx%dcm",
		s.intBetween(size.heightMin, size.heightMax),
		s.intBetween(size.widthMin, size.widthMax),
		s.intBetween(size.depthMin, size.depthMax))
	weight := decimal.NewFromFloat(s.floatBetween(size.weightMin, size.weightMax)).Round(3)

	imageURL, err := s.image.ProductImageURL(ctx, string(category), size.name, string(fragrance), description)
	if err != nil || imageURL == "" {
		s.log.Warn().Err(err).Msg("image generation failed, using placeholder")
		imageURL = fmt.Sprintf("https://placekitten.com/300/%d", 300+len(usedNames)%100)
	}

	// COP prices in multiples of 100; half the catalog ends in 50.
	supplierPrice := decimal.NewFromInt(int64(s.intBetween(50, 300)) * 100)
	markup := int64(s.intBetween(50, 200)) * 100
	if s.rng.Float64() < 0.5 {
		markup += 50
	}
	salePrice := supplierPrice.Add(decimal.NewFromInt(markup))

	updatedAt := registeredAt.Add(time.Duration(s.intBetween(1, 30)) * time.Minute)
	if !updatedAt.Before(ceiling) {
		updatedAt = ceiling.Add(-time.Second)
	}
	if !updatedAt.After(registeredAt) {
		updatedAt = registeredAt.Add(time.Second)
	}

	return model.Product{
		Name:          name,
		Description:   description,
		SalePrice:     salePrice,
		Category:      category,
		Weight:        weight,
		Dimensions:    dimensions,
		ImageURL:      imageURL,
		Fragrance:     fragrance,
		WarrantyDays:  90,
		State:         model.ProductActive,
		SupplierPrice: supplierPrice,
		ProviderID:    provider.ID,
		RegisteredAt:  registeredAt,
		UpdatedAt:     updatedAt,
	}, nil
}

// productCopy asks the text generator for a unique name (retrying a
// few times on duplicates, then disambiguating with a numeric suffix)
// and a description. Failures fall back to local word pools.
func (s *Seeder) productCopy(ctx context.Context, category model.ProductCategory, fragrance model.Fragrance, usedNames map[string]bool) (string, string) {
	var firstProposal string
	for attempt := 0; attempt < productNameRetries; attempt++ {
		proposal, err := s.text.ProductName(ctx, string(category), string(fragrance))
		if err != nil {
			break
		}
		if firstProposal == "" {
			firstProposal = proposal
		}
		if proposal != "" && !usedNames[proposal] {
			usedNames[proposal] = true
			description, derr := s.text.ProductDescription(ctx, proposal, string(category), string(fragrance))
			if derr != nil {
				description = s.fallbackDescription(fragrance)
			}
			return proposal, description
		}
	}

	base := firstProposal
	if base == "" {
		base = fmt.Sprintf("%s de %s", capitalize(randomFallbackWord(s.rng)), fragrance)
	}
	name := base
	for suffix := 1; usedNames[name]; suffix++ {
		name = fmt.Sprintf("%s (%d)", base, suffix)
	}
	usedNames[name] = true
	return name, s.fallbackDescription(fragrance)
}

func (s *Seeder) fallbackDescription(fragrance model.Fragrance) string {
	return fmt.Sprintf("Vela aromática de %s. Ideal para ambientes acogedores.", fragrance)
}

// Products returns the whole catalog in registration order.
func (s *Seeder) Products() ([]model.Product, error) {
	var products []model.Product
	if err := s.db.Order("fecha_registro").Find(&products).Error; err != nil {
		return nil, errors.Wrap(err, "load products")
	}
	return products, nil
}
