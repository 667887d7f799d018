package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/iudanet/nexstore/internal/account"
	"github.com/iudanet/nexstore/internal/admin"
	"github.com/iudanet/nexstore/internal/catalog"
	"github.com/iudanet/nexstore/internal/cli"
	"github.com/iudanet/nexstore/internal/config"
	"github.com/iudanet/nexstore/internal/refdata"
	"github.com/iudanet/nexstore/internal/storage"
	"github.com/iudanet/nexstore/internal/storage/boltdb"
	"github.com/iudanet/nexstore/internal/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// store объединяет все семейства хранения, которые предоставляет
// каждый бэкенд
type store interface {
	storage.CatalogStorage
	storage.UserStorage
	storage.SessionStorage
	storage.SettingsStorage
	io.Closer
}

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	configPath := flag.String("config", "nexstore.yaml", "Path to config file")
	dbPath := flag.String("db", "", "Path to local database (overrides config)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.Storage.Path = *dbPath
	}

	logger := newLogger(cfg.Log.Level)
	ctx := context.Background()

	st, err := openStorage(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	cat := catalog.New(logger, st, refdata.SeedApps())
	if err := cat.Initialize(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize catalog: %v\n", err)
		os.Exit(1)
	}

	accounts := account.NewService(logger, st, st)
	if err := accounts.Initialize(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize accounts: %v\n", err)
		os.Exit(1)
	}

	gate := admin.NewGate(logger, admin.Secrets{
		PrimaryPINHash:     cfg.Admin.PrimaryPINHash,
		SecurityPINHash:    cfg.Admin.SecurityPINHash,
		SecurityAnswerHash: cfg.Admin.SecurityAnswerHash,
	}, cfg.Admin.TokenSecret, cfg.Admin.TokenTTL.Std())

	app := cli.New(cat, accounts, gate, st)
	app.Run(ctx, args[0], args[1:])
}

// openStorage открывает бэкенд, выбранный в конфигурации
func openStorage(ctx context.Context, cfg *config.Config) (store, error) {
	switch cfg.Storage.Backend {
	case "sqlite":
		return sqlite.New(ctx, cfg.Storage.Path)
	default:
		return boltdb.New(ctx, cfg.Storage.Path)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func printVersion() {
	fmt.Printf("NexStore\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
