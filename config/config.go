package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Pipeline struct {
	Name      string `mapstructure:"name" yaml:"name"`
	Version   string `mapstructure:"version" yaml:"version"`
	LogLvl    string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

type Source struct {
	URL     string `mapstructure:"url" yaml:"url"`
	Archive string `mapstructure:"archive" yaml:"archive"`
	Dir     string `mapstructure:"dir" yaml:"dir"`
	Audio   string `mapstructure:"audio" yaml:"audio"`
	Table   string `mapstructure:"table" yaml:"table"`
	Timeout int    `mapstructure:"timeout" yaml:"timeout"`
}

type Media struct {
	Verify     bool   `mapstructure:"verify" yaml:"verify"`
	SampleRate int    `mapstructure:"sample_rate" yaml:"sample_rate"`
	Channels   int    `mapstructure:"channels" yaml:"channels"`
	Format     string `mapstructure:"format" yaml:"format"`
}

type Storage struct {
	SQLite bool `mapstructure:"sqlite" yaml:"sqlite"`
}

type Root struct {
	Pipeline Pipeline `mapstructure:"pipeline" yaml:"pipeline"`
	Source   Source   `mapstructure:"source" yaml:"source"`
	Media    Media    `mapstructure:"media" yaml:"media"`
	Storage  Storage  `mapstructure:"storage" yaml:"storage"`
	Paths    struct {
		Outputs string `mapstructure:"outputs" yaml:"outputs"`
	} `mapstructure:"paths" yaml:"paths"`
}

// EnvPrefix prefixes environment overrides, e.g. EMODB_PATHS_OUTPUTS.
const EnvPrefix = "EMODB"

// New returns a viper instance carrying the defaults, the config file search
// path and environment bindings. Callers may bind flags before Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("pipeline.name", "emodb")
	v.SetDefault("pipeline.version", "1.0.0")
	v.SetDefault("pipeline.log_level", "info")
	v.SetDefault("pipeline.log_format", "text")
	v.SetDefault("source.url", "http://emodb.bilderbar.info/download/download.zip")
	v.SetDefault("source.archive", "emodb.zip")
	v.SetDefault("source.dir", "emodb-src")
	v.SetDefault("source.audio", "wav")
	v.SetDefault("source.table", "erkennung.txt")
	v.SetDefault("source.timeout", 600)
	v.SetDefault("media.verify", false)
	v.SetDefault("media.sample_rate", 16000)
	v.SetDefault("media.channels", 1)
	v.SetDefault("media.format", "wav")
	v.SetDefault("storage.sqlite", false)
	v.SetDefault("paths.outputs", "emodb")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join("config", env))
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file if one is found (a missing file is fine, the
// defaults describe the public corpus) and decodes the result.
func Load(v *viper.Viper) (*Root, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Root) Validate() error {
	var errs []error
	if c.Source.URL == "" {
		errs = append(errs, errors.New("source.url is required"))
	}
	if c.Source.Dir == "" {
		errs = append(errs, errors.New("source.dir is required"))
	}
	if c.Paths.Outputs == "" {
		errs = append(errs, errors.New("paths.outputs is required"))
	}
	if filepath.Clean(c.Paths.Outputs) == filepath.Clean(c.Source.Dir) {
		errs = append(errs, errors.New("paths.outputs must differ from source.dir"))
	}
	if c.Media.SampleRate <= 0 || c.Media.Channels <= 0 {
		errs = append(errs, errors.New("media.sample_rate and media.channels must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// TableFile is the path of the confidence table inside the source dir.
func (c *Root) TableFile() string { return filepath.Join(c.Source.Dir, c.Source.Table) }

func DurSeconds(n int) time.Duration { return time.Duration(n) * time.Second }
