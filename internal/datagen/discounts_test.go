package datagen

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discountCodeRe = regexp.MustCompile(`^[A-ZÑÁÉÍÓÚ0-9]+_[A-Z0-9]{6}$`)

func TestCreateDiscounts(t *testing.T) {
	s := newTestSeeder(t, 61)
	discounts, err := s.CreateDiscounts()
	require.NoError(t, err)
	require.NotEmpty(t, discounts)

	codes := map[string]bool{}
	for i, d := range discounts {
		assert.False(t, codes[d.Code], "duplicate discount code %s", d.Code)
		codes[d.Code] = true
		assert.Regexp(t, discountCodeRe, d.Code)

		assert.GreaterOrEqual(t, d.Percentage, 10)
		assert.LessOrEqual(t, d.Percentage, 50)

		assert.True(t, d.StartDate.Before(d.EndDate))
		assert.False(t, d.StartDate.Before(DiscountWindowStart))
		assert.False(t, d.EndDate.After(DiscountWindowEnd))
		if i > 0 {
			assert.True(t, d.RegisteredAt.After(discounts[i-1].RegisteredAt),
				"campaign registrations must advance strictly")
		}
	}
}

func TestCreateDiscountsCoversEveryHolidayInWindow(t *testing.T) {
	s := newTestSeeder(t, 62)
	discounts, err := s.CreateDiscounts()
	require.NoError(t, err)

	inWindow := 0
	for _, h := range CampaignHolidays {
		if !h.Date.Before(DiscountWindowStart) && !h.Date.After(DiscountWindowEnd) {
			inWindow++
		}
	}
	assert.Len(t, discounts, inWindow)
}
