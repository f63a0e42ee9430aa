// Copyright (c) 2026 Guidora. All rights reserved.
// Author: dev@guidora.app

// Command guidora is the developer console for the Guidora mobile core.
//
// # Purpose
//
// The mobile UI is not part of this repository. This CLI stands in for it:
// every subcommand drives the same session manager the app screens use, so
// the whole credential lifecycle can be exercised against a real or staged
// backend from a terminal.
//
// # Startup Sequence
//
//  1. Load .env (best-effort) and environment configuration.
//  2. Initialize structured logger.
//  3. Construct the HTTP client, backend wrappers, and credential store.
//  4. Wire the session manager and register the global 401 hook.
//
// No session logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/guidora/mobile-core/internal/backend"
	"github.com/guidora/mobile-core/internal/platform/config"
	"github.com/guidora/mobile-core/internal/platform/constants"
	"github.com/guidora/mobile-core/internal/platform/httpclient"
	redisstore "github.com/guidora/mobile-core/internal/platform/redis"
	"github.com/guidora/mobile-core/internal/session"
)

// app bundles the wired components shared by every subcommand.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	api     *backend.Client
	manager *session.Manager
}

func newApp(ctx context.Context) (*app, error) {
	// ── 1. Environment ────────────────────────────────────────────────────

	// Missing .env is fine; real environments configure via the OS.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	// ── 2. Logger ─────────────────────────────────────────────────────────

	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	// ── 3. HTTP Client & Backend Wrappers ─────────────────────────────────

	client := httpclient.New(httpclient.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.RequestTimeout,
		Logger:  log,
	})
	api := backend.New(client)

	// ── 4. Credential Store ───────────────────────────────────────────────

	store, err := buildCredentialStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	// ── 5. Session Manager & Global 401 Rule ──────────────────────────────

	manager := session.NewManager(store, api, client, log)
	client.OnUnauthorized(manager.InvalidateCredential)

	return &app{cfg: cfg, log: log, api: api, manager: manager}, nil
}

// buildCredentialStore selects the store implementation from configuration:
// shared Redis when REDIS_URL is set, sealed file when a seal key is set,
// plain on-device file otherwise.
func buildCredentialStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (session.CredentialStore, error) {
	if cfg.RedisURL != "" {
		client, err := redisstore.NewClient(ctx, cfg.RedisURL, log)
		if err != nil {
			return nil, err
		}
		return session.NewRedisStore(client, "cli", 0), nil
	}

	path, err := cfg.ResolveCredentialPath(constants.CredentialFileName)
	if err != nil {
		return nil, err
	}

	if cfg.CredentialSealKey != "" {
		key, err := hex.DecodeString(cfg.CredentialSealKey)
		if err != nil {
			return nil, fmt.Errorf("CREDENTIAL_SEAL_KEY must be hex: %w", err)
		}
		return session.NewSealedFileStore(path, key)
	}

	return session.NewFileStore(path), nil
}

func main() {
	root := &cobra.Command{
		Use:           "guidora",
		Short:         "Developer console for the Guidora session core",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCmd(),
		newRegisterCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newRefreshCmd(),
		newUpdateCmd(),
		newRequestRoleCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "guidora: %v\n", err)
		os.Exit(1)
	}
}
