package config

import (
	"github.com/MeKo-Tech/paperforge/internal/detector"
	"github.com/MeKo-Tech/paperforge/internal/pdf"
)

// Config is the complete configuration for paperforge. It is populated from
// configuration files, environment variables, and command-line flags.
type Config struct {
	// Global settings
	DataDir  string `mapstructure:"data_dir" yaml:"data_dir" json:"data_dir"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Region suggestion tuning
	Detector detector.Params `mapstructure:"detector" yaml:"detector" json:"detector"`

	// Paper generation settings
	Paper PaperConfig `mapstructure:"paper" yaml:"paper" json:"paper"`

	// Server settings (for serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`
}

// PaperConfig contains practice-paper generation settings.
type PaperConfig struct {
	// FrameWidth/FrameHeight define the reference page canvas stored
	// question regions are expressed in.
	FrameWidth  int `mapstructure:"frame_width" yaml:"frame_width" json:"frame_width"`
	FrameHeight int `mapstructure:"frame_height" yaml:"frame_height" json:"frame_height"`

	DefaultTotal int    `mapstructure:"default_total" yaml:"default_total" json:"default_total"`
	OutputDir    string `mapstructure:"output_dir" yaml:"output_dir" json:"output_dir"`

	Layout pdf.LayoutOptions `mapstructure:"layout" yaml:"layout" json:"layout"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string `mapstructure:"host" yaml:"host" json:"host"`
	Port            int    `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin      string `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	MaxUploadMB     int64  `mapstructure:"max_upload_mb" yaml:"max_upload_mb" json:"max_upload_mb"`
	TimeoutSec      int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
}
