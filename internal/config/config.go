// Package config loads the NoctuaLight configuration from file,
// environment, and defaults.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full NoctuaLight configuration.
type Config struct {
	Output  OutputConfig  `mapstructure:"output"`
	Collect CollectConfig `mapstructure:"collect"`
	History HistoryConfig `mapstructure:"history"`
	Server  ServerConfig  `mapstructure:"server"`
	Push    PushConfig    `mapstructure:"push"`
	Watch   WatchConfig   `mapstructure:"watch"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type OutputConfig struct {
	Directory string `mapstructure:"directory"`
}

type CollectConfig struct {
	Timeout  time.Duration `mapstructure:"timeout"`
	Parallel bool          `mapstructure:"parallel"`
}

type HistoryConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	Database      string        `mapstructure:"database"`
	RetentionDays int           `mapstructure:"retention_days"`
	PurgeInterval time.Duration `mapstructure:"purge_interval"`
}

type ServerConfig struct {
	Listen    string `mapstructure:"listen"`
	APISecret string `mapstructure:"api_secret"`
	Swagger   bool   `mapstructure:"swagger"`
}

type PushConfig struct {
	URL       string `mapstructure:"url"`
	APISecret string `mapstructure:"api_secret"`
}

type WatchConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	Push     bool          `mapstructure:"push"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// DatabasePath resolves the history database location. Relative paths
// join the output directory so all artifacts live together.
func (c *Config) DatabasePath() string {
	if filepath.IsAbs(c.History.Database) {
		return c.History.Database
	}
	return filepath.Join(c.Output.Directory, c.History.Database)
}

// Load reads configuration from file and environment.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("noctualight")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/noctualight")
	}

	setDefaults(v)

	v.SetEnvPrefix("NOCTUALIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output.directory", "result")
	v.SetDefault("collect.timeout", "30s")
	v.SetDefault("collect.parallel", true)
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.database", "noctualight.db")
	v.SetDefault("history.retention_days", 90)
	v.SetDefault("history.purge_interval", "1h")
	v.SetDefault("server.listen", ":9650")
	v.SetDefault("server.api_secret", "")
	v.SetDefault("server.swagger", true)
	v.SetDefault("push.url", "")
	v.SetDefault("push.api_secret", "")
	v.SetDefault("watch.interval", "1h")
	v.SetDefault("watch.push", false)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")
}
