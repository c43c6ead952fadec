package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/foodblog/internal/paths"
	"github.com/petar-djukic/foodblog/internal/sqlite"
	"github.com/petar-djukic/foodblog/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "FOODBLOG"

	cfgKeyLogLevel     = "log_level"
	cfgKeyStrictSearch = "strict_search"
	cfgKeyStateDir     = "state_dir"
	cfgKeySeeds        = "seeds"

	defaultLogLevel = "warn"
)

// settings is the merged configuration: flags over FOODBLOG_* env over
// config.yaml over defaults.
type settings struct {
	LogLevel     string      `mapstructure:"log_level" yaml:"log_level"`
	StrictSearch bool        `mapstructure:"strict_search" yaml:"strict_search"`
	StateDir     string      `mapstructure:"state_dir" yaml:"state_dir,omitempty"`
	Seeds        types.Seeds `mapstructure:"seeds" yaml:"seeds"`
}

// defaultSettings returns the values used when nothing overrides them.
func defaultSettings() settings {
	return settings{
		LogLevel: defaultLogLevel,
		Seeds:    sqlite.DefaultSeeds(),
	}
}

// loadSettings reads config.yaml from configDir with Viper. A missing file
// is not an error. Flags of cmd that were set take precedence.
func loadSettings(configDir string, cmd *cobra.Command) (settings, error) {
	def := defaultSettings()

	v := viper.New()
	v.SetDefault(cfgKeyLogLevel, def.LogLevel)
	v.SetDefault(cfgKeyStrictSearch, def.StrictSearch)
	v.SetDefault(cfgKeyStateDir, "")
	v.SetDefault(cfgKeySeeds+".meals", def.Seeds.Meals)
	v.SetDefault(cfgKeySeeds+".ingredients", def.Seeds.Ingredients)
	v.SetDefault(cfgKeySeeds+".measures", def.Seeds.Measures)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if f := cmd.Flags().Lookup("log-level"); f != nil {
		if err := v.BindPFlag(cfgKeyLogLevel, f); err != nil {
			return settings{}, fmt.Errorf("bind --log-level: %w", err)
		}
	}
	if f := cmd.Flags().Lookup("strict-search"); f != nil {
		if err := v.BindPFlag(cfgKeyStrictSearch, f); err != nil {
			return settings{}, fmt.Errorf("bind --strict-search: %w", err)
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return settings{}, fmt.Errorf("read %s: %w", paths.ConfigFile(configDir), err)
		}
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return settings{}, fmt.Errorf("decode config: %w", err)
	}
	return s, nil
}
