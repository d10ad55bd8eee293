// Package config loads goglass settings from a YAML file, GOGLASS_*
// environment variables and built-in defaults, in that order of
// precedence after command-line flags.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/alexiusacademia/goglass/internal/connect"
	"github.com/alexiusacademia/goglass/internal/generate"
)

// EnvPrefix is the prefix of environment overrides, e.g. GOGLASS_DB
const EnvPrefix = "GOGLASS"

// Config holds every setting of the tool
type Config struct {
	// DB is the path of the SQLite model database
	DB string `mapstructure:"db"`

	// Model is the name of the model commands work on
	Model string `mapstructure:"model"`

	Panel  PanelConfig  `mapstructure:"panel"`
	Grid   GridConfig   `mapstructure:"grid"`
	Spider SpiderConfig `mapstructure:"spider"`
	Wind   WindConfig   `mapstructure:"wind"`
	Lines  LinesConfig  `mapstructure:"lines"`
}

// PanelConfig holds single panel defaults
type PanelConfig struct {
	Width     float64 `mapstructure:"width"`
	Height    float64 `mapstructure:"height"`
	Thickness float64 `mapstructure:"thickness"`
	Material  string  `mapstructure:"material"`
}

// GridConfig holds panel grid defaults
type GridConfig struct {
	PanelWidth  float64 `mapstructure:"panel_width"`
	PanelHeight float64 `mapstructure:"panel_height"`
	Rows        int     `mapstructure:"rows"`
	Cols        int     `mapstructure:"cols"`
}

// SpiderConfig holds spider fitting defaults
type SpiderConfig struct {
	Offset      float64 `mapstructure:"offset"`
	Tolerance   float64 `mapstructure:"tolerance"`
	ZAxisUpward bool    `mapstructure:"z_axis_upward"`
	Mode        string  `mapstructure:"mode"`
}

// WindConfig holds wind load defaults
type WindConfig struct {
	Magnitude float64 `mapstructure:"magnitude"`
	CaseName  string  `mapstructure:"case_name"`
}

// LinesConfig holds nearest-pair connector defaults
type LinesConfig struct {
	MaxDegree int `mapstructure:"max_degree"`
}

// SetDefaults registers the default of every key on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("db", "goglass.db")
	v.SetDefault("model", "default")

	v.SetDefault("panel.width", generate.DefaultPanelWidth)
	v.SetDefault("panel.height", generate.DefaultPanelHeight)
	v.SetDefault("panel.thickness", generate.DefaultThickness)
	v.SetDefault("panel.material", generate.DefaultMaterial)

	v.SetDefault("grid.panel_width", generate.DefaultPanelWidth)
	v.SetDefault("grid.panel_height", generate.DefaultPanelHeight)
	v.SetDefault("grid.rows", 3)
	v.SetDefault("grid.cols", 3)

	v.SetDefault("spider.offset", generate.DefaultSpiderOffset)
	v.SetDefault("spider.tolerance", generate.DefaultTolerance)
	v.SetDefault("spider.z_axis_upward", false)
	v.SetDefault("spider.mode", string(generate.InsetCentroid))

	v.SetDefault("wind.magnitude", generate.DefaultWindLoad)
	v.SetDefault("wind.case_name", "Wind")

	v.SetDefault("lines.max_degree", connect.DefaultMaxDegree)
}

// Init prepares v to read cfgFile, or goglass.yaml from the working
// directory or ~/.config/goglass when cfgFile is empty.
func Init(v *viper.Viper, cfgFile string) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("goglass")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "goglass"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Read loads the config file into v. A missing file is not an error unless
// it was named explicitly.
func Read(v *viper.Viper, explicit bool) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if !explicit && errors.As(err, &notFound) {
		return nil
	}
	return errors.Wrap(err, "reading config")
}

// Load decodes the settings held by v
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	if cfg.Lines.MaxDegree <= 0 {
		return nil, errors.Errorf("lines.max_degree must be positive (got %d)", cfg.Lines.MaxDegree)
	}
	return &cfg, nil
}
