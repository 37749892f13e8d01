package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	DataPath    string `mapstructure:"data_path" yaml:"data_path"`
	Sheet       string `mapstructure:"sheet" yaml:"sheet,omitempty"`
	MaxRows     int    `mapstructure:"max_rows" yaml:"max_rows"`
	OutputDir   string `mapstructure:"output_dir" yaml:"output_dir"`
	AgeScheme   string `mapstructure:"age_scheme" yaml:"age_scheme"`
	ChartWidth  int    `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight int    `mapstructure:"chart_height" yaml:"chart_height"`
	// AnimationMs is the bar grow-in duration; 0 renders static charts.
	AnimationMs int    `mapstructure:"animation_ms" yaml:"animation_ms"`
	LogLevel    string `mapstructure:"log_level" yaml:"log_level"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file,omitempty"`
	ListenAddr  string `mapstructure:"listen_addr" yaml:"listen_addr"`
}

// Keys lists the settable configuration keys in display order.
var Keys = []string{
	"data_path", "sheet", "max_rows", "output_dir", "age_scheme",
	"chart_width", "chart_height", "animation_ms",
	"log_level", "log_file", "listen_addr",
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".heartviz"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.heartviz/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_path", filepath.Join("data", "project_heart_disease.csv"))
	v.SetDefault("sheet", "")
	v.SetDefault("max_rows", 0)
	v.SetDefault("output_dir", "dist")
	v.SetDefault("age_scheme", "age-5")
	v.SetDefault("chart_width", 900)
	v.SetDefault("chart_height", 500)
	v.SetDefault("animation_ms", 1000)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("listen_addr", ":8080")
}

// Defaults returns the built-in configuration, ignoring files and env.
func Defaults() *Global {
	v := viper.New()
	setDefaults(v)
	var c Global
	_ = v.Unmarshal(&c)
	return &c
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
// A .env file in the working directory is loaded into the environment first;
// variables already set are not overridden.
func Load(cfgFile string) (*Global, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("HEARTVIZ")
	v.AutomaticEnv()
	setDefaults(v)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Set assigns a key from its string form. A rejected value leaves c
// unchanged.
func (c *Global) Set(key, val string) error {
	setInt := func(dst *int) error {
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid non-negative int for %s: %v", key, val)
		}
		*dst = i
		return nil
	}
	switch key {
	case "data_path":
		c.DataPath = val
	case "sheet":
		c.Sheet = val
	case "max_rows":
		return setInt(&c.MaxRows)
	case "output_dir":
		c.OutputDir = val
	case "age_scheme":
		c.AgeScheme = val
	case "chart_width":
		return setInt(&c.ChartWidth)
	case "chart_height":
		return setInt(&c.ChartHeight)
	case "animation_ms":
		return setInt(&c.AnimationMs)
	case "log_level":
		switch strings.ToLower(val) {
		case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
			c.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
		}
	case "log_file":
		c.LogFile = val
	case "listen_addr":
		c.ListenAddr = val
	default:
		return fmt.Errorf("unknown key: %s (available: %s)", key, strings.Join(Keys, ", "))
	}
	return nil
}

// Get returns a key in its string form.
func (c *Global) Get(key string) (string, bool) {
	switch key {
	case "data_path":
		return c.DataPath, true
	case "sheet":
		return c.Sheet, true
	case "max_rows":
		return strconv.Itoa(c.MaxRows), true
	case "output_dir":
		return c.OutputDir, true
	case "age_scheme":
		return c.AgeScheme, true
	case "chart_width":
		return strconv.Itoa(c.ChartWidth), true
	case "chart_height":
		return strconv.Itoa(c.ChartHeight), true
	case "animation_ms":
		return strconv.Itoa(c.AnimationMs), true
	case "log_level":
		return c.LogLevel, true
	case "log_file":
		return c.LogFile, true
	case "listen_addr":
		return c.ListenAddr, true
	}
	return "", false
}
