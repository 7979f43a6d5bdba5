package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/shinyyama/commerce-seed/internal/config"
	"github.com/shinyyama/commerce-seed/internal/db"
	"github.com/shinyyama/commerce-seed/internal/repository"
	"github.com/shinyyama/commerce-seed/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("verify failed: %v", err)
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

	verifier := service.NewVerifier(
		service.Runtime{Logger: log.Default()},
		repository.NewAuditRepository(gdb),
		repository.ConsistencyChecks,
	)
	results, err := verifier.Run(ctx)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	log.Printf("verify complete: checks=%d failed=%d", len(results), failed)
	if failed > 0 {
		return fmt.Errorf("%d consistency checks failed", failed)
	}
	return nil
}
