package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"authgate/core"
)

// seed resets the configured credential store to the default accounts and
// exits. Unlike the API server it fails hard when the store is unreachable.
func main() {
	cfg, err := core.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logCloser, err := core.SetupLogging(cfg, "seed.log")
	if err != nil {
		log.Fatalf("failed to setup logging: %v", err)
	}
	defer logCloser.Close()

	if cfg.StoreDriver == core.StoreDriverMemory {
		log.Fatalf("store driver %q keeps no state between processes; nothing to seed", cfg.StoreDriver)
	}

	var store core.CredentialStore
	if cfg.StoreDriver == core.StoreDriverPostgres {
		db, err := core.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect database: %v", err)
		}
		defer db.Close()
		store = core.NewPgCredentialStore(db)
	} else {
		s, closeStore, err := core.OpenCredentialStore(ctx, cfg)
		if err != nil {
			log.Fatalf("failed to open credential store: %v", err)
		}
		defer closeStore()
		store = s
	}

	if err := core.ResetAndSeed(ctx, store, core.NewBcryptHasher(cfg.HashCost)); err != nil {
		log.Fatalf("reset failed: %v", err)
	}

	records, err := store.List(ctx)
	if err != nil {
		log.Fatalf("list credentials: %v", err)
	}
	for _, r := range records {
		log.Printf("seeded user=%s role=%s", r.Username, r.Role)
	}
}
