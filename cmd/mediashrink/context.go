package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"mediashrink/internal/config"
	"mediashrink/internal/logging"
)

// globalFlags holds the persistent flag values shared by every command.
type globalFlags struct {
	config     string
	root       string
	tool       string
	workers    int
	timeout    time.Duration
	logLevel   string
	logFormat  string
	noProgress bool
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

// ensureConfig loads the configuration once and applies flags explicitly set
// on cmd on top of the file and environment values.
func (c *commandContext) ensureConfig(cmd *cobra.Command) (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		if err := c.applyFlags(cmd, cfg); err != nil {
			c.configErr = err
			return
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("root") {
		root, err := config.ExpandPath(strings.TrimSpace(c.flags.root))
		if err != nil {
			return fmt.Errorf("--root: %w", err)
		}
		cfg.Paths.AssetRoot = root
	}
	if flags.Changed("tool") {
		cfg.Encoder.Binary = strings.TrimSpace(c.flags.tool)
	}
	if flags.Changed("workers") {
		cfg.Encoder.Workers = c.flags.workers
	}
	if flags.Changed("timeout") {
		if c.flags.timeout < 0 {
			return errors.New("--timeout must be >= 0")
		}
		cfg.Encoder.TimeoutSeconds = int(c.flags.timeout.Round(time.Second) / time.Second)
		if c.flags.timeout > 0 && cfg.Encoder.TimeoutSeconds == 0 {
			cfg.Encoder.TimeoutSeconds = 1
		}
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = strings.ToLower(strings.TrimSpace(c.flags.logLevel))
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = strings.ToLower(strings.TrimSpace(c.flags.logFormat))
	}
	return nil
}

func (c *commandContext) logger(cfg *config.Config) (*slog.Logger, func() error, error) {
	logger, closeLogs, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, closeLogs, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
