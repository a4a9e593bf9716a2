package main

import (
	"context"
	"fmt"
	"log"

	"authgate/core"
)

func main() {
	cfg, err := core.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	ctx := context.Background()

	logCloser, err := core.SetupLogging(cfg, "api.log")
	if err != nil {
		log.Fatalf("failed to setup logging: %v", err)
	}
	defer logCloser.Close()

	credentials, closeStore, err := core.OpenCredentialStore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open credential store: %v", err)
	}
	defer closeStore()

	hasher := core.NewBcryptHasher(cfg.HashCost)

	// A failed reset is logged and the server still starts; logins then fail
	// until the store recovers.
	if cfg.SeedOnStart {
		if err := core.ResetAndSeed(ctx, credentials, hasher); err != nil {
			log.Printf("Error creating default users: %v", err)
		}
	}

	sessionStore, closeSessions, err := core.NewSessionStore(cfg)
	if err != nil {
		log.Fatalf("failed to create session store: %v", err)
	}
	defer closeSessions()

	authority := core.NewSessionAuthority(cfg, sessionStore)
	authService := core.NewRepositoryAuthService(credentials, hasher, cfg.RequestTimeout)

	router := core.NewRouter(cfg, authority, authService)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Server is running on http://localhost%s (store=%s sessions=%s)", addr, cfg.StoreDriver, cfg.SessionBackend)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
