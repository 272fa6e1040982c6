package datagen

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/Dejatori/amaluz-proyecto-betek/internal/model"
)

// Holiday is a commercial date the store runs a campaign around.
type Holiday struct {
	Name string
	Date time.Time
}

func holiday(name string, year, month, day int) Holiday {
	return Holiday{Name: name, Date: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// CampaignHolidays lists every Colombian commercial date the store has
// discounted since opening.
var CampaignHolidays = []Holiday{
	holiday("san_valentin_2022", 2022, 2, 14),
	holiday("san_jose_2022", 2022, 3, 21),
	holiday("semana_santa_2022", 2022, 4, 10),
	holiday("dia_trabajo_2022", 2022, 5, 1),
	holiday("dia_madre_2022", 2022, 5, 8),
	holiday("ascension_2022", 2022, 5, 30),
	holiday("dia_padre_2022", 2022, 6, 19),
	holiday("independencia_2022", 2022, 7, 20),
	holiday("dia_amor_y_amistad_2022", 2022, 9, 17),
	holiday("halloween_2022", 2022, 10, 31),
	holiday("black_friday_2022", 2022, 11, 25),
	holiday("cyber_monday_2022", 2022, 11, 28),
	holiday("dia_velitas_2022", 2022, 12, 7),
	holiday("navidad_2022", 2022, 12, 25),
	holiday("fin_año_2022", 2022, 12, 31),
	holiday("año_nuevo_2023", 2023, 1, 1),
	holiday("reyes_magos_2023", 2023, 1, 9),
	holiday("san_valentin_2023", 2023, 2, 14),
	holiday("dia_de_la_mujer_2023", 2023, 3, 8),
	holiday("san_jose_2023", 2023, 3, 20),
	holiday("semana_santa_2023", 2023, 4, 2),
	holiday("dia_trabajo_2023", 2023, 5, 1),
	holiday("dia_madre_2023", 2023, 5, 14),
	holiday("ascension_2023", 2023, 5, 22),
	holiday("dia_padre_2023", 2023, 6, 18),
	holiday("independencia_2023", 2023, 7, 20),
	holiday("dia_amor_y_amistad_2023", 2023, 9, 16),
	holiday("halloween_2023", 2023, 10, 31),
	holiday("black_friday_2023", 2023, 11, 24),
	holiday("cyber_monday_2023", 2023, 11, 27),
	holiday("dia_velitas_2023", 2023, 12, 7),
	holiday("navidad_2023", 2023, 12, 25),
	holiday("fin_año_2023", 2023, 12, 31),
	holiday("año_nuevo_2024", 2024, 1, 1),
	holiday("reyes_magos_2024", 2024, 1, 8),
	holiday("san_valentin_2024", 2024, 2, 14),
	holiday("dia_de_la_mujer_2024", 2024, 3, 8),
	holiday("san_jose_2024", 2024, 3, 25),
	holiday("semana_santa_2024", 2024, 3, 24),
	holiday("dia_trabajo_2024", 2024, 5, 1),
	holiday("dia_madre_2024", 2024, 5, 12),
	holiday("ascension_2024", 2024, 5, 13),
	holiday("dia_padre_2024", 2024, 6, 16),
	holiday("independencia_2024", 2024, 7, 20),
	holiday("dia_amor_y_amistad_2024", 2024, 9, 21),
	holiday("halloween_2024", 2024, 10, 31),
	holiday("black_friday_2024", 2024, 11, 29),
	holiday("cyber_monday_2024", 2024, 12, 2),
	holiday("dia_velitas_2024", 2024, 12, 7),
	holiday("navidad_2024", 2024, 12, 25),
	holiday("fin_año_2024", 2024, 12, 31),
	holiday("año_nuevo_2025", 2025, 1, 1),
	holiday("reyes_magos_2025", 2025, 1, 6),
	holiday("san_valentin_2025", 2025, 2, 14),
	holiday("dia_de_la_mujer_2025", 2025, 3, 8),
	holiday("san_jose_2025", 2025, 3, 24),
	holiday("semana_santa_2025", 2025, 4, 13),
	holiday("dia_trabajo_2025", 2025, 5, 1),
}

const discountCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CreateDiscounts generates one campaign per holiday inside the
// discount window. Registration dates advance monotonically so the
// table reads like a real back-office history.
func (s *Seeder) CreateDiscounts() ([]model.Discount, error) {
	holidays := make([]Holiday, 0, len(CampaignHolidays))
	for _, h := range CampaignHolidays {
		if h.Date.Before(DiscountWindowStart) || h.Date.After(DiscountWindowEnd) {
			continue
		}
		holidays = append(holidays, h)
	}
	sort.Slice(holidays, func(i, j int) bool { return holidays[i].Date.Before(holidays[j].Date) })

	usedCodes := make(map[string]bool)
	var lastRegistered time.Time
	discounts := make([]model.Discount, 0, len(holidays))
	now := time.Now().UTC()

	for _, h := range holidays {
		start := h.Date.AddDate(0, 0, -s.intBetween(7, 14))
		if start.Before(DiscountWindowStart) {
			start = DiscountWindowStart
		}
		end := h.Date.AddDate(0, 0, s.intBetween(1, 3))
		if end.After(DiscountWindowEnd) {
			end = DiscountWindowEnd
		}

		registeredAt := start.AddDate(0, 0, -s.intBetween(0, 30))
		if registeredAt.Before(DiscountWindowStart) {
			registeredAt = DiscountWindowStart
		}
		if registeredAt.After(start) {
			registeredAt = start
		}
		if !lastRegistered.IsZero() && !registeredAt.After(lastRegistered) {
			registeredAt = lastRegistered.Add(time.Minute)
		}
		lastRegistered = registeredAt

		state := model.DiscountActive
		if end.Before(now) {
			state = model.DiscountInactive
		}

		discounts = append(discounts, model.Discount{
			Code:         s.discountCode(h.Name, usedCodes),
			Percentage:   s.intBetween(10, 50),
			StartDate:    start,
			EndDate:      end,
			State:        state,
			RegisteredAt: registeredAt,
			UpdatedAt:    registeredAt,
		})
	}

	if len(discounts) == 0 {
		return nil, nil
	}
	if err := s.db.Create(&discounts).Error; err != nil {
		return nil, errors.Wrap(err, "insert discounts")
	}
	s.log.Info().Int("count", len(discounts)).Msg("discounts created")
	return discounts, nil
}

// discountCode builds codes like SAN_9X2L4B from the first token of the
// holiday name plus six random characters, retrying on collision.
func (s *Seeder) discountCode(holidayName string, used map[string]bool) string {
	prefix := strings.ToUpper(strings.SplitN(holidayName, "_", 2)[0])
	for {
		suffix := make([]byte, 6)
		for i := range suffix {
			suffix[i] = discountCodeAlphabet[s.rng.Intn(len(discountCodeAlphabet))]
		}
		code := fmt.Sprintf("%s_%s", prefix, suffix)
		if !used[code] {
			used[code] = true
			return code
		}
	}
}
