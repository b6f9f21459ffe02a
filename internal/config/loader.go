package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "paperforge"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "PAPERFORGE"
)

// Loader handles loading configuration from files, environment variables and
// bound command-line flags.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a configuration loader backed by the global viper
// instance, so cobra flag bindings are visible to it.
func NewLoader() *Loader {
	return &Loader{v: viper.GetViper()}
}

// Load reads configuration from the default search paths, applies
// environment variables and defaults, and validates the result.
func (l *Loader) Load() (*Config, error) {
	l.v.SetConfigName(ConfigFileName)
	l.v.SetConfigType("yaml")
	l.addConfigPaths()
	l.setupEnvironment()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env vars apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return l.unmarshalAndValidate()
}

// LoadWithFile reads configuration from a specific file path.
func (l *Loader) LoadWithFile(configFile string) (*Config, error) {
	if configFile == "" {
		return l.Load()
	}
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configFile)
	}

	l.v.SetConfigFile(configFile)
	l.setupEnvironment()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
	}
	return l.unmarshalAndValidate()
}

func (l *Loader) unmarshalAndValidate() (*Config, error) {
	var config Config
	if err := l.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// GetViper returns the underlying viper instance.
func (l *Loader) GetViper() *viper.Viper { return l.v }

// ConfigFileUsed returns the path of the config file that was loaded, if any.
func (l *Loader) ConfigFileUsed() string { return l.v.ConfigFileUsed() }

func (l *Loader) addConfigPaths() {
	l.v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(home)
	}
	if configDir, exists := os.LookupEnv("XDG_CONFIG_HOME"); exists {
		l.v.AddConfigPath(filepath.Join(configDir, "paperforge"))
	} else if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(filepath.Join(home, ".config", "paperforge"))
	}
	l.v.AddConfigPath("/etc/paperforge")
}

func (l *Loader) setupEnvironment() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.AutomaticEnv()
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

func (l *Loader) setDefaults() {
	d := DefaultConfig()

	l.v.SetDefault("data_dir", d.DataDir)
	l.v.SetDefault("log_level", d.LogLevel)
	l.v.SetDefault("verbose", d.Verbose)

	l.v.SetDefault("detector.max_working_width", d.Detector.MaxWorkingWidth)
	l.v.SetDefault("detector.min_working_width", d.Detector.MinWorkingWidth)
	l.v.SetDefault("detector.min_working_height", d.Detector.MinWorkingHeight)
	l.v.SetDefault("detector.luma_sample_stride", d.Detector.LumaSampleStride)
	l.v.SetDefault("detector.threshold_scale", d.Detector.ThresholdScale)
	l.v.SetDefault("detector.threshold_min", d.Detector.ThresholdMin)
	l.v.SetDefault("detector.threshold_max", d.Detector.ThresholdMax)
	l.v.SetDefault("detector.cell_size", d.Detector.CellSize)
	l.v.SetDefault("detector.ink_cell_ratio", d.Detector.InkCellRatio)
	l.v.SetDefault("detector.min_cell_count", d.Detector.MinCellCount)
	l.v.SetDefault("detector.min_cell_span", d.Detector.MinCellSpan)
	l.v.SetDefault("detector.min_width_frac", d.Detector.MinWidthFrac)
	l.v.SetDefault("detector.min_height_frac", d.Detector.MinHeightFrac)
	l.v.SetDefault("detector.max_width_frac", d.Detector.MaxWidthFrac)
	l.v.SetDefault("detector.max_height_frac", d.Detector.MaxHeightFrac)
	l.v.SetDefault("detector.merge_iou", d.Detector.MergeIoU)
	l.v.SetDefault("detector.row_band_frac", d.Detector.RowBandFrac)
	l.v.SetDefault("detector.pad_side_frac", d.Detector.PadSideFrac)
	l.v.SetDefault("detector.pad_top_frac", d.Detector.PadTopFrac)
	l.v.SetDefault("detector.pad_bottom_frac", d.Detector.PadBottomFrac)
	l.v.SetDefault("detector.max_regions", d.Detector.MaxRegions)

	l.v.SetDefault("paper.frame_width", d.Paper.FrameWidth)
	l.v.SetDefault("paper.frame_height", d.Paper.FrameHeight)
	l.v.SetDefault("paper.default_total", d.Paper.DefaultTotal)
	l.v.SetDefault("paper.output_dir", d.Paper.OutputDir)
	l.v.SetDefault("paper.layout.page_width", d.Paper.Layout.PageWidth)
	l.v.SetDefault("paper.layout.page_height", d.Paper.Layout.PageHeight)
	l.v.SetDefault("paper.layout.margin", d.Paper.Layout.Margin)
	l.v.SetDefault("paper.layout.gap", d.Paper.Layout.Gap)

	l.v.SetDefault("server.host", d.Server.Host)
	l.v.SetDefault("server.port", d.Server.Port)
	l.v.SetDefault("server.cors_origin", d.Server.CORSOrigin)
	l.v.SetDefault("server.max_upload_mb", d.Server.MaxUploadMB)
	l.v.SetDefault("server.timeout_sec", d.Server.TimeoutSec)
	l.v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
}
