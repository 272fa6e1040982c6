package datagen

import (
	"context"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Dejatori/amaluz-proyecto-betek/internal/model"
)

// stubText returns canned Spanish prose so tests never hit the network.
type stubText struct{}

func (stubText) InferGender(context.Context, string) (string, error) { return "Masculino", nil }
func (stubText) ProductName(context.Context, string, string) (string, error) {
	return "", errStub
}
func (stubText) ProductDescription(context.Context, string, string, string) (string, error) {
	return "", errStub
}
func (stubText) LocationDescription(context.Context) (string, error) {
	return "Casa de dos pisos con fachada blanca.", nil
}
func (stubText) DeliveryNotes(context.Context) (string, error) {
	return "Timbrar dos veces.", nil
}
func (stubText) ReviewComment(context.Context, string) (string, error) {
	return "Muy buen producto, lo recomiendo.", nil
}

type stubImage struct{}

func (stubImage) ProductImageURL(context.Context, string, string, string, string) (string, error) {
	return "", errStub
}

var errStub = errors.New("generator unavailable")

func newTestSeeder(t *testing.T, seed int64) *Seeder {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps the in-memory database alive for the whole test.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(model.All()...))

	rng := rand.New(rand.NewSource(seed))
	return NewSeeder(db, rng, zerolog.Nop(), stubText{}, stubImage{})
}
