package datagen

import (
	"time"

	"github.com/pkg/errors"

	"github.com/Dejatori/amaluz-proyecto-betek/internal/model"
)

// CreateProviders registers count providers spaced evenly over the
// provider window with random jitter. The first provider lands exactly
// on the window start so the earliest products have a supplier.
func (s *Seeder) CreateProviders(count int) ([]model.Provider, error) {
	if count <= 0 {
		return nil, nil
	}

	var step time.Duration
	if count > 1 {
		step = ProviderWindowEnd.Sub(ProviderWindowStart) / time.Duration(count-1)
	}

	providers := make([]model.Provider, 0, count)
	for i := 0; i < count; i++ {
		var registeredAt time.Time
		if i == 0 {
			registeredAt = ProviderWindowStart
		} else {
			jitter := time.Duration(s.rng.Int63n(int64(step) + 1))
			if step == 0 {
				jitter = time.Duration(s.rng.Int63n(int64(60 * time.Second)))
			}
			registeredAt = ProviderWindowStart.Add(step*time.Duration(i) + jitter)
			if registeredAt.After(ProviderWindowEnd) {
				registeredAt = ProviderWindowEnd.AddDate(0, 0, -s.intBetween(1, 3))
			}
		}

		providers = append(providers, model.Provider{
			Name:         randomCompanyName(s.rng),
			Phone:        randomColombianMobile(s.rng),
			Address:      randomStreetAddress(s.rng),
			RegisteredAt: registeredAt,
			UpdatedAt:    registeredAt,
		})
	}

	if err := s.db.Create(&providers).Error; err != nil {
		return nil, errors.Wrap(err, "insert providers")
	}
	s.log.Info().Int("count", len(providers)).Msg("providers created")
	return providers, nil
}
