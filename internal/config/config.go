package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/fooddash/internal/chart"
)

// Global configuration structure.
type Global struct {
	DataPath string `mapstructure:"data_path" yaml:"data_path"`
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Debug    bool   `mapstructure:"debug" yaml:"debug"`
	// text or json
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`

	// Page
	StylesheetURL string   `mapstructure:"stylesheet_url" yaml:"stylesheet_url"`
	Footer        string   `mapstructure:"footer" yaml:"footer"`
	ChartWidth    int      `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight   int      `mapstructure:"chart_height" yaml:"chart_height"`
	Palette       []string `mapstructure:"palette" yaml:"palette"`
}

// Addr joins host and port.
func (c *Global) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate rejects values the pipeline cannot start with.
func (c *Global) Validate() error {
	if c.DataPath == "" {
		return fmt.Errorf("data_path is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		return fmt.Errorf("invalid chart size: %dx%d", c.ChartWidth, c.ChartHeight)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log_format: %s (use text or json)", c.LogFormat)
	}
	if err := chart.Palette(c.Palette).Validate(); err != nil {
		return err
	}
	return nil
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".fooddash"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.fooddash/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := configDir()
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

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults; flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("FOODDASH")
	v.AutomaticEnv()

	v.SetDefault("data_path", "onlinedeliverydata.csv")
	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("port", 8050)
	v.SetDefault("debug", false)
	v.SetDefault("log_format", "text")
	v.SetDefault("stylesheet_url", "https://codepen.io/chriddyp/pen/bWLwgP.css")
	v.SetDefault("footer", "Online Food Delivery Preferences survey, Bangalore")
	v.SetDefault("chart_width", chart.DefaultSize.Width)
	v.SetDefault("chart_height", chart.DefaultSize.Height)
	v.SetDefault("palette", []string(chart.DefaultPalette))

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
