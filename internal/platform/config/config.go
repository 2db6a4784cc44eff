// Package config resolves server settings from flags, environment variables and an optional
// .env file, in that order of precedence.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

const (
	defaultPort            = "8080"
	defaultShutdownTimeout = 10 * time.Second

	// DefaultEnvFile is read when ENV_FILE is unset.
	DefaultEnvFile = ".env"
)

// Config holds the resolved server settings.
type Config struct {
	Port            string
	ShutdownTimeout time.Duration
}

// Addr returns the listen address for http.Server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// LoadEnvFile copies variables from path into the process environment. Variables that are
// already set win, and a missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// NewCommand returns the server command. run is invoked with the validated configuration.
func NewCommand(version string, run func(context.Context, Config) error) *cli.Command {
	return &cli.Command{
		Name:    "greeting-server",
		Usage:   "Serve the greeting API",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "port",
				Usage:   "TCP port to listen on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.DurationFlag{
				Name:    "shutdown-timeout",
				Usage:   "Grace period for in-flight requests on shutdown",
				Value:   defaultShutdownTimeout,
				Sources: cli.EnvVars("SHUTDOWN_TIMEOUT"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := fromCommand(cmd)
			if err != nil {
				return err
			}
			return run(ctx, cfg)
		},
	}
}

func fromCommand(cmd *cli.Command) (Config, error) {
	cfg := Config{
		Port:            cmd.String("port"),
		ShutdownTimeout: cmd.Duration("shutdown-timeout"),
	}
	if p, err := strconv.Atoi(cfg.Port); err != nil || p < 1 || p > 65535 {
		return Config{}, fmt.Errorf("invalid port %q", cfg.Port)
	}
	if cfg.ShutdownTimeout <= 0 {
		return Config{}, fmt.Errorf("shutdown timeout must be positive, got %s", cfg.ShutdownTimeout)
	}
	return cfg, nil
}
