package main

import (
	"context"
	"math/rand"

	zlog "github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/Dejatori/amaluz-proyecto-betek/internal/aigen"
	"github.com/Dejatori/amaluz-proyecto-betek/internal/datagen"
	"github.com/Dejatori/amaluz-proyecto-betek/internal/model"
	"github.com/Dejatori/amaluz-proyecto-betek/internal/pkg/bootstrap"
	"github.com/Dejatori/amaluz-proyecto-betek/internal/pkg/httpclient"
	"github.com/Dejatori/amaluz-proyecto-betek/internal/pkg/tracing"
)

const serviceName = "amaluz-seed"

// main runs the full seeding pipeline against the configured database.
// Individual stages log and continue on failure so a partial dataset is
// still produced.
func main() {
	cfg := bootstrap.Init(serviceName)
	ctx := context.Background()

	db, err := bootstrap.OpenDB(cfg)
	if err != nil {
		zlog.Fatal().Err(err).Msg("database connection failed")
	}
	if err := db.AutoMigrate(model.All()...); err != nil {
		zlog.Fatal().Err(err).Msg("schema migration failed")
	}

	tp, err := tracing.InitTracerProvider(serviceName, cfg.JaegerEndpoint)
	if err != nil {
		zlog.Fatal().Err(err).Msg("tracer initialization failed")
	}
	if tp != nil {
		defer func() {
			if err := tp.Shutdown(ctx); err != nil {
				zlog.Warn().Err(err).Msg("tracer shutdown failed")
			}
		}()
	}

	tracer := otel.Tracer(serviceName)
	httpClient := httpclient.NewClient(tracer)
	text := aigen.NewTextClient(httpClient, cfg.OllamaAPIURL)
	image := aigen.NewImageClient(httpClient)

	rng := rand.New(rand.NewSource(cfg.RandomSeed))
	zlog.Info().Int64("seed", cfg.RandomSeed).
		Int("users", cfg.UserCount).Int("providers", cfg.ProviderCount).Int("products", cfg.ProductCount).
		Msg("starting data generation")

	seeder := datagen.NewSeeder(db, rng, zlog.Logger, text, image)

	runCtx, runSpan := tracer.Start(ctx, "seed-run")
	defer runSpan.End()

	stage := func(name string, fn func(context.Context) error) {
		stageCtx, span := tracer.Start(runCtx, name)
		defer span.End()
		if err := fn(stageCtx); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			zlog.Error().Err(err).Str("stage", name).Msg("stage failed")
		}
	}

	var users, clients []model.User
	stage("users", func(c context.Context) error {
		users, err = seeder.CreateUsers(c, cfg.UserCount)
		if err != nil {
			return err
		}
		lower := max(1, cfg.UserCount*5/100)
		upper := max(lower, cfg.UserCount*10/100)
		leaveUnconfirmed := lower + rng.Intn(upper-lower+1)
		if err := seeder.ActivateUsers(leaveUnconfirmed); err != nil {
			return err
		}
		clients, err = seeder.ActiveClients()
		return err
	})

	var providers []model.Provider
	stage("providers", func(context.Context) error {
		providers, err = seeder.CreateProviders(cfg.ProviderCount)
		return err
	})

	var products []model.Product
	stage("products", func(c context.Context) error {
		products, err = seeder.CreateProducts(c, cfg.ProductCount, providers)
		return err
	})

	stage("inventory", func(context.Context) error {
		_, err := seeder.CreateInitialInventory(products)
		return err
	})

	stage("discounts", func(context.Context) error {
		_, err := seeder.CreateDiscounts()
		return err
	})

	stage("carts", func(context.Context) error {
		_, err := seeder.CreateCarts(clients)
		return err
	})

	stage("orders", func(c context.Context) error {
		_, err := seeder.CreateOrders(c, clients)
		return err
	})

	zlog.Info().Int("users", len(users)).Int("providers", len(providers)).Int("products", len(products)).
		Msg("data generation finished")
}
