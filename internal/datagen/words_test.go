package datagen

import (
	"math/rand"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeForEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"David Toscano", "david_toscano"},
		{"María José Pérez", "maria_jose_perez"},
		{"  Ángela   Ñuñez ", "angela_nunez"},
		{"Jean-Paul O'Connor", "jeanpaul_oconnor"},
		{"123 Apellido", "123_apellido"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SanitizeForEmail(tc.in), "input %q", tc.in)
	}
}

func TestRandomLocationReturnsKnownCity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		department, city := RandomLocation(rng)
		cities, ok := DepartmentCities[department]
		assert.True(t, ok, "unknown department %q", department)
		assert.Contains(t, cities, city)
		assert.NotEmpty(t, city.PostalCode)
	}
}

func TestRandomColombianMobile(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	pattern := regexp.MustCompile(`^3\d{10}$`)
	for i := 0; i < 50; i++ {
		assert.Regexp(t, pattern, randomColombianMobile(rng))
	}
}
