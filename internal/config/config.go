// Package config loads service configuration from an optional yaml file,
// with environment fallbacks for deployment.
package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

// Config carries everything the service needs at startup.
type Config struct {
	Addr         string
	TemplatesDir string
	DesignsPath  string
	ModuleSize   int
	Debug        bool
}

// Load reads config.yaml from the working directory. A missing file is fine;
// defaults apply. The PORT environment variable overrides the listen address.
func Load() (Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("templates.dir", "templates")
	viper.SetDefault("designs.path", "data/designs.json")
	viper.SetDefault("render.module-size", 16)
	viper.SetDefault("settings.debug", false)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	cfg := Config{
		Addr:         viper.GetString("server.addr"),
		TemplatesDir: viper.GetString("templates.dir"),
		DesignsPath:  viper.GetString("designs.path"),
		ModuleSize:   viper.GetInt("render.module-size"),
		Debug:        viper.GetBool("settings.debug"),
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	return cfg, nil
}
