package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	LogLevel         string
	LogFormat        string
	TelemetryEnabled bool
	ServerAddress    string
	LibvirtURI       string
	ParamsFile       string
	WarningsFile     string
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("telemetry_enabled", false)
	v.SetDefault("server_address", ":8080")
	v.SetDefault("libvirt_uri", "qemu:///system")
	v.SetDefault("params_file", "")
	v.SetDefault("warnings_file", "")

	v.SetEnvPrefix("geniprofile")
	v.AutomaticEnv()

	// The portal hands parameters and collects warnings through these.
	if err := v.BindEnv("params_file", "GENIPROFILE_PARAMS_FILE", "GENILIB_PORTAL_PARAMS_PATH"); err != nil {
		return nil, fmt.Errorf("could not bind params_file: %w", err)
	}
	if err := v.BindEnv("warnings_file", "GENIPROFILE_WARNINGS_FILE", "GENILIB_PORTAL_WARNINGS_PATH"); err != nil {
		return nil, fmt.Errorf("could not bind warnings_file: %w", err)
	}

	cfg := &Config{
		LogLevel:         v.GetString("log_level"),
		LogFormat:        v.GetString("log_format"),
		TelemetryEnabled: v.GetBool("telemetry_enabled"),
		ServerAddress:    v.GetString("server_address"),
		LibvirtURI:       v.GetString("libvirt_uri"),
		ParamsFile:       v.GetString("params_file"),
		WarningsFile:     v.GetString("warnings_file"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.LogLevel)
	}

	validLogFormats := map[string]bool{"text": true, "json": true}
	if !validLogFormats[c.LogFormat] {
		return fmt.Errorf("invalid log format: %s (valid: text, json)", c.LogFormat)
	}

	if c.ParamsFile != "" {
		if err := validateFileExists(c.ParamsFile); err != nil {
			return fmt.Errorf("params file: %w", err)
		}
	}

	return nil
}

func validateFileExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", path)
	} else if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	return nil
}
