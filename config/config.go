// Package config loads the typedkv command line settings.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/spf13/viper"

	"github.com/arloliu/typedkv"
	"github.com/arloliu/typedkv/format"
)

// EnvPrefix prefixes every environment variable Load consults.
const EnvPrefix = "TYPEDKV"

// Config holds the settings of the typedkv tool.
type Config struct {
	// File is the snapshot file the store is loaded from and saved to.
	File string `mapstructure:"file"`
	// Compression names the snapshot compression: none, zstd, s2 or lz4.
	Compression string       `mapstructure:"compression"`
	Detect      DetectConfig `mapstructure:"detect"`
	Log         LogConfig    `mapstructure:"log"`
}

type DetectConfig struct {
	QuaternionTolerance float64 `mapstructure:"quaternion_tolerance"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	// File, when set, receives a JSON copy of every log record.
	File string `mapstructure:"file"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		File:        "prefs.tkv",
		Compression: format.CompressionZstd.String(),
		Detect: DetectConfig{
			QuaternionTolerance: typedkv.DefaultQuaternionTolerance,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads typedkv.yaml from the given directories (the working directory
// when none are given) and overlays environment variables.
//
// Environment variables use the prefix "TYPEDKV" and replace dots in keys
// with underscores, so "log.level" becomes "TYPEDKV_LOG_LEVEL". A missing
// config file is not an error.
func Load(dirs ...string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName("typedkv")
	v.SetConfigType("yaml")
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the fields that are parsed later.
func (c *Config) Validate() error {
	if c.File == "" {
		return errors.New("config: file must not be empty")
	}
	if _, err := c.CompressionType(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Detect.QuaternionTolerance < 0 {
		return fmt.Errorf("config: negative quaternion tolerance %v", c.Detect.QuaternionTolerance)
	}

	return nil
}

// CompressionType parses Compression.
func (c *Config) CompressionType() (format.CompressionType, error) {
	return format.ParseCompressionType(c.Compression)
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, err
	}

	return level, nil
}

// bindEnvs registers all keys within cfg so that viper will look up
// corresponding environment variables when unmarshalling.
func bindEnvs(v *viper.Viper, cfg any, parts ...string) {
	val := reflect.ValueOf(cfg)
	typ := reflect.TypeOf(cfg)
	if typ.Kind() == reflect.Ptr {
		val = val.Elem()
		typ = typ.Elem()
	}
	for i := range typ.NumField() {
		f := typ.Field(i)
		tag := f.Tag.Get("mapstructure")
		if tag == "" {
			tag = strings.ToLower(f.Name)
		}
		key := append(parts, tag) //nolint:gocritic
		if f.Type.Kind() == reflect.Struct {
			bindEnvs(v, val.Field(i).Interface(), key...)
			continue
		}
		_ = v.BindEnv(strings.Join(key, "."))
	}
}
