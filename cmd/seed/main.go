// cmd/seed/main.go
package main

import (
	"context"
	"flag"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/realestate-backend/internal/config"
	"github.com/javajoker/realestate-backend/internal/database"
	"github.com/javajoker/realestate-backend/internal/seed"
	"github.com/javajoker/realestate-backend/internal/utils"
)

func main() {
	opts := seed.DefaultOptions()
	flag.IntVar(&opts.Properties, "properties", opts.Properties, "number of properties to create")
	flag.IntVar(&opts.Owners, "owners", opts.Owners, "number of owners to create")
	flag.Int64Var(&opts.Seed, "seed", opts.Seed, "random seed for generated content")
	reset := flag.Bool("reset", false, "delete existing data before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}
	log := utils.NewLogger(cfg.Log.Level, cfg.IsProduction())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	backend, closeStore, err := database.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize store: ", err)
	}
	defer closeStore()

	if *reset {
		if err := backend.Reset(ctx); err != nil {
			log.WithError(err).Error("Failed to reset store")
			return
		}
		log.Info("Store reset")
	}

	dataset := seed.Generate(opts, backend.NewID)
	if err := backend.SeedDataset(ctx, dataset); err != nil {
		log.WithError(err).Error("Failed to seed store")
		return
	}

	log.WithFields(logrus.Fields{
		"store":      cfg.Store.Driver,
		"owners":     len(dataset.Owners),
		"properties": len(dataset.Properties),
		"images":     len(dataset.Images),
		"traces":     len(dataset.Traces),
	}).Info("Seeding completed")
}
