package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shinyyama/commerce-seed/internal/config"
	"github.com/shinyyama/commerce-seed/internal/db"
	"github.com/shinyyama/commerce-seed/internal/metrics"
	"github.com/shinyyama/commerce-seed/internal/repository"
	"github.com/shinyyama/commerce-seed/internal/server"
	"github.com/shinyyama/commerce-seed/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("sql db: %w", err)
	}
	defer sqlDB.Close()
	log.Printf("connected (%s); running steps %v", cfg.DBDriver, cfg.Steps)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewDBStatsCollector(sqlDB, cfg.DBName))

	rt := service.Runtime{
		Rand:          service.NewRand(cfg.RandomSeed),
		Clock:         service.SystemClock{},
		IDs:           service.UUIDGenerator{},
		Logger:        log.Default(),
		Metrics:       metrics.NewRecorder(reg),
		ProgressEvery: cfg.ProgressEvery,
	}
	if cfg.RandomSeed != 0 {
		rt.IDs = service.NewSeededUUIDGenerator(cfg.RandomSeed)
	}

	refs := service.NewReferenceLoader(repository.NewReferenceRepository(gdb))
	orderRepo := repository.NewOrderRepository(gdb)
	seeder := service.NewSeederService(
		service.NewOrderComposer(rt, refs, orderRepo),
		service.NewFulfiller(rt, refs, orderRepo, repository.NewFulfillmentRepository(gdb)),
		service.NewCouponLinker(rt, refs, repository.NewCouponRepository(gdb), cfg.AllowCouponReuse),
		service.NewRatingAggregator(rt, repository.NewRatingRepository(gdb)),
		cfg.OrderCount,
		cfg.RedemptionCount,
	)

	if cfg.MetricsAddr != "" {
		srv := server.New(reg, seeder)
		go func() {
			log.Printf("serving metrics on %s", cfg.MetricsAddr)
			if err := srv.Start(cfg.MetricsAddr); err != nil {
				log.Printf("metrics server stopped: %v", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	all, err := seeder.Run(ctx, cfg.Steps)
	for _, s := range all {
		log.Printf("done %s", s)
	}
	if err != nil {
		return err
	}
	log.Printf("seed complete")
	return nil
}
