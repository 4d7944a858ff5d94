// cogd is the COG analysis workbench API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/irregularchat/irregular-researchtools-sub006/pkg/api"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/auth"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/logging"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/metrics"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/store"
)

const version = "1.0.0"

// Config is the cogd YAML configuration file.
type Config struct {
	Port     int    `yaml:"port"`
	LogLevel string `yaml:"log_level"`

	// Storage selects the backing store: "postgres", "snapshot", or "memory".
	Storage     string `yaml:"storage"`
	DatabaseURL string `yaml:"database_url"`
	SnapshotDir string `yaml:"snapshot_dir"`

	// Auth is optional; when the secret is empty the server runs in local
	// single-user mode with no token checks.
	Auth struct {
		JWTSecret     string        `yaml:"jwt_secret"`
		TokenDuration time.Duration `yaml:"token_duration"`
		AdminUser     string        `yaml:"admin_user"`
		AdminPassword string        `yaml:"admin_password"`
	} `yaml:"auth"`
}

func defaultConfig() Config {
	cfg := Config{
		Port:        8080,
		LogLevel:    "info",
		Storage:     "memory",
		SnapshotDir: "./data/snapshots",
	}
	cfg.Auth.TokenDuration = 12 * time.Hour
	return cfg
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func buildStore(ctx context.Context, cfg Config) (store.Store, error) {
	switch cfg.Storage {
	case "postgres":
		return store.NewPGStore(ctx, cfg.DatabaseURL)
	case "snapshot":
		return store.NewSnapshotStore(cfg.SnapshotDir)
	case "memory", "":
		return store.NewMemStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to YAML configuration file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.LogLevel))
	logger.Info("starting cogd",
		logging.String("version", version),
		logging.String("storage", cfg.Storage))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := buildStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	var jwtManager *auth.JWTManager
	var users *auth.UserStore
	if cfg.Auth.JWTSecret != "" {
		jwtManager, err = auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenDuration)
		if err != nil {
			return fmt.Errorf("failed to configure auth: %w", err)
		}
		users = auth.NewUserStore()
		if cfg.Auth.AdminUser != "" {
			if _, err := users.CreateUser(cfg.Auth.AdminUser, cfg.Auth.AdminPassword, auth.RoleAdmin); err != nil {
				return fmt.Errorf("failed to create admin user: %w", err)
			}
		}
	} else {
		logger.Warn("auth disabled: no jwt_secret configured")
	}

	server := api.NewServer(api.Config{
		Port:       cfg.Port,
		Store:      st,
		JWTManager: jwtManager,
		Users:      users,
		Logger:     logger,
		Metrics:    metrics.NewRegistry(),
		Version:    version,
	})

	return server.Start(ctx)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "cogd: %v\n", err)
		os.Exit(1)
	}
}
