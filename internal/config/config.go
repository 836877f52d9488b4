// Package config loads persisted CLI defaults from ~/.gffstat.yaml via
// viper, overridable by GFFSTAT_-prefixed environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix viper applies when reading environment
// variable overrides (e.g. GFFSTAT_OUTPUT_PRETTY).
const EnvPrefix = "GFFSTAT"

// Init registers default values and reads the config file, if present.
// A missing config file is not an error; any other read failure is.
func Init() error {
	viper.SetConfigName(".gffstat")
	viper.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("output.pretty", false)
	viper.SetDefault("source.gzipped", false)
	viper.SetDefault("source.allow_ftp", true)
	viper.SetDefault("cache.path", "")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}
	return nil
}

// Settings is the resolved set of CLI defaults after config file,
// environment, and viper default precedence has been applied.
type Settings struct {
	Pretty    bool
	Gzipped   bool
	AllowFTP  bool
	CachePath string
}

// Load reads the current Settings from viper's merged configuration.
func Load() Settings {
	return Settings{
		Pretty:    viper.GetBool("output.pretty"),
		Gzipped:   viper.GetBool("source.gzipped"),
		AllowFTP:  viper.GetBool("source.allow_ftp"),
		CachePath: viper.GetString("cache.path"),
	}
}

// FilePath returns the config file viper would write to: the one it
// loaded from, or ~/.gffstat.yaml if none exists yet.
func FilePath() (string, error) {
	if used := viper.ConfigFileUsed(); used != "" {
		return used, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".gffstat.yaml"), nil
}
