package config

import (
	"fmt"

	"github.com/MeKo-Tech/paperforge/internal/detector"
	"github.com/MeKo-Tech/paperforge/internal/pdf"
	"github.com/MeKo-Tech/paperforge/internal/utils"
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		DataDir:  "data",
		LogLevel: "info",
		Verbose:  false,
		Detector: detector.DefaultParams(),
		Paper: PaperConfig{
			FrameWidth:   utils.DefaultFrame.Width,
			FrameHeight:  utils.DefaultFrame.Height,
			DefaultTotal: 20,
			OutputDir:    "papers",
			Layout:       pdf.DefaultLayoutOptions(),
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			CORSOrigin:      "*",
			MaxUploadMB:     50,
			TimeoutSec:      60,
			ShutdownTimeout: 10,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir cannot be empty")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q (must be debug, info, warn or error)", c.LogLevel)
	}
	if err := c.Detector.Validate(); err != nil {
		return fmt.Errorf("detector: %w", err)
	}
	if err := c.Paper.Validate(); err != nil {
		return fmt.Errorf("paper: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// Validate checks paper generation settings.
func (c *PaperConfig) Validate() error {
	if c.FrameWidth < 1 || c.FrameHeight < 1 {
		return fmt.Errorf("reference frame %dx%d must be positive", c.FrameWidth, c.FrameHeight)
	}
	if c.DefaultTotal < 1 {
		return fmt.Errorf("default_total must be positive, got %d", c.DefaultTotal)
	}
	return c.Layout.Validate()
}

// Validate checks server settings.
func (c *ServerConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.MaxUploadMB < 1 {
		return fmt.Errorf("max_upload_mb must be positive, got %d", c.MaxUploadMB)
	}
	if c.TimeoutSec < 1 || c.ShutdownTimeout < 1 {
		return fmt.Errorf("timeouts must be positive")
	}
	return nil
}

// Frame returns the configured reference page frame.
func (c *PaperConfig) Frame() utils.FrameSize {
	return utils.FrameSize{Width: c.FrameWidth, Height: c.FrameHeight}
}
