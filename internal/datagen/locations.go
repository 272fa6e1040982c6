package datagen

import (
	"context"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Dejatori/amaluz-proyecto-betek/internal/model"
)

// CreateLocationForUser records a delivery address for the user inside
// [minDate, maxDate]. Addresses for the same user always advance in
// time; a nil minDate anchors the window one day after the user's
// registration (or the previous address). Returns nil when the window
// collapses.
func (s *Seeder) CreateLocationForUser(ctx context.Context, tx *gorm.DB, user model.User, minDate *time.Time, maxDate time.Time) (*model.OrderLocation, error) {
	var last model.OrderLocation
	err := tx.Where("usuario_id = ?", user.ID).Order("fecha_registro DESC").First(&last).Error
	hasLast := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "load latest location")
	}

	var floor time.Time
	if minDate != nil {
		floor = *minDate
		if hasLast && !floor.After(last.RegisteredAt) {
			floor = last.RegisteredAt.Add(time.Second)
		}
	} else {
		floor = user.RegisteredAt
		if hasLast {
			floor = last.RegisteredAt.Add(time.Second)
		}
		floor = floor.AddDate(0, 0, 1)
	}
	if !floor.Before(maxDate) {
		s.log.Debug().Uint("user", user.ID).Msg("no room for a new location, skipping")
		return nil, nil
	}

	department, city := RandomLocation(s.rng)

	var address2 *string
	if s.rng.Float64() < 0.3 {
		secondary := randomSecondaryAddress(s.rng)
		address2 = &secondary
	}

	description, err := s.text.LocationDescription(ctx)
	if err != nil {
		s.log.Debug().Err(err).Msg("location description generation failed, using fallback")
		description = faker.Sentence()
	}
	notes, err := s.text.DeliveryNotes(ctx)
	if err != nil {
		s.log.Debug().Err(err).Msg("delivery notes generation failed, using fallback")
		notes = faker.Sentence()
	}

	registeredAt := RandomDateIn(s.rng, floor, maxDate)
	location := model.OrderLocation{
		UserID:        user.ID,
		Address1:      randomStreetAddress(s.rng),
		Address2:      address2,
		City:          city.City,
		Department:    department,
		PostalCode:    city.PostalCode,
		Description:   description,
		DeliveryNotes: notes,
		RegisteredAt:  registeredAt,
		UpdatedAt:     registeredAt,
	}
	if err := tx.Create(&location).Error; err != nil {
		return nil, errors.Wrap(err, "insert location")
	}
	return &location, nil
}
