package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotelchain/internal/adapters/observability"
	"hotelchain/internal/app"
	"hotelchain/internal/shared"
	mysqlrepo "hotelchain/internal/storage/mysql"
)

// The seeder provisions the catalog (chains, hotels, rooms, clients,
// employees) the booking core reads. Chains are seeded concurrently; each
// chain seeds its own hotels and rooms in order so foreign keys hold.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("file", cfg.SeedFile).
		Int("workers", cfg.SeedWorkers).
		Msg("seeder starting")

	cat, err := app.LoadCatalog(cfg.SeedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load catalog failed")
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db, cfg.ReservationsHold)
	seeder := app.NewSeedService(repo)

	if err := seeder.SeedPeople(ctx, cat); err != nil {
		log.Fatal().Err(err).Msg("seed clients/employees failed")
	}

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for _, chain := range cat.Chains {
		chain := chain

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(c app.CatalogChain) {
			defer wg.Done()
			defer sem.Release(int64(1))

			if err := seeder.SeedChain(ctx, c); err != nil {
				log.Warn().Int64("chain", c.ID).Err(err).Msg("seed failed")
				return
			}
			log.Info().Int64("chain", c.ID).Int("hotels", len(c.Hotels)).Msg("seed ok")
		}(chain)
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}
