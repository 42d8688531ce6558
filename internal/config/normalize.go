package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeEncoder()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv(EnvAssetRoot); ok && strings.TrimSpace(value) != "" {
		c.Paths.AssetRoot = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.AssetRoot) == "" {
		root, err := DefaultAssetRoot()
		if err != nil {
			return fmt.Errorf("paths.asset_root: %w", err)
		}
		c.Paths.AssetRoot = root
	}

	var err error
	if c.Paths.AssetRoot, err = expandPath(strings.TrimSpace(c.Paths.AssetRoot)); err != nil {
		return fmt.Errorf("paths.asset_root: %w", err)
	}
	if c.Paths.ScratchDir, err = expandPath(strings.TrimSpace(c.Paths.ScratchDir)); err != nil {
		return fmt.Errorf("paths.scratch_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeEncoder() {
	if value, ok := os.LookupEnv(EnvTool); ok && strings.TrimSpace(value) != "" {
		c.Encoder.Binary = value
	}
	c.Encoder.Binary = strings.TrimSpace(c.Encoder.Binary)
	if c.Encoder.Binary == "" {
		c.Encoder.Binary = defaultEncoderBin
	}
	if c.Encoder.Workers == 0 {
		c.Encoder.Workers = defaultWorkers
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
