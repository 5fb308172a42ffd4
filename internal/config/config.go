package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/blinklabs-io/bankbot/internal/common"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Logging      LoggingConfig          `yaml:"logging"`
	Debug        DebugConfig            `yaml:"debug"`
	Ingest       IngestConfig           `yaml:"ingest"`
	Storage      StorageConfig          `yaml:"storage"`
	Coefficients map[string]Coefficient `yaml:"coefficients"`
}

type LoggingConfig struct {
	Level string `yaml:"level" envconfig:"LOGGING_LEVEL"`
}

type DebugConfig struct {
	ListenAddress string `yaml:"address" envconfig:"DEBUG_ADDRESS"`
	ListenPort    uint   `yaml:"port" envconfig:"DEBUG_PORT"`
}

type IngestConfig struct {
	ListenAddress string `yaml:"address" envconfig:"INGEST_ADDRESS"`
	ListenPort    uint   `yaml:"port" envconfig:"INGEST_PORT"`
}

type StorageConfig struct {
	Directory string `yaml:"dir" envconfig:"STORAGE_DIR"`
	// ProcessedRetention bounds how long processed-message markers are kept.
	// Zero keeps them forever. A short window weakens duplicate detection
	// across retries that arrive after expiry.
	ProcessedRetention time.Duration `yaml:"processedRetention" envconfig:"PROCESSED_RETENTION"`
}

// Coefficient is a game multiplier carried as an exact decimal. YAML integer
// and string scalars parse losslessly; float scalars go through their
// shortest exact decimal form, so quote values that need digits a binary
// float cannot carry.
type Coefficient struct {
	decimal.Decimal
}

func (c *Coefficient) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	d, err := decimalFromScalar(raw)
	if err != nil {
		return err
	}
	c.Decimal = d
	return nil
}

func decimalFromScalar(raw interface{}) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case uint64:
		return decimal.NewFromString(strconv.FormatUint(v, 10))
	case float64:
		return decimal.NewFromString(strconv.FormatFloat(v, 'f', -1, 64))
	case string:
		return decimal.NewFromString(v)
	}
	return decimal.Decimal{}, fmt.Errorf("unsupported coefficient value: %v", raw)
}

// Singleton config instance with default values
var globalConfig = &Config{
	Logging: LoggingConfig{
		Level: "info",
	},
	Debug: DebugConfig{
		ListenAddress: "localhost",
		ListenPort:    0,
	},
	Ingest: IngestConfig{
		ListenPort: 3000,
	},
	Storage: StorageConfig{
		Directory: ".bankbot",
	},
	Coefficients: map[string]Coefficient{
		string(common.GameGDCards):       {decimal.NewFromInt(2)},
		string(common.GameShmalala):      {decimal.NewFromInt(1)},
		string(common.GameShmalalaKarma): {decimal.NewFromInt(10)},
		string(common.GameTrueMafia):     {decimal.NewFromInt(15)},
		string(common.GameBunkerRP):      {decimal.NewFromInt(20)},
	},
}

func Load(configFile string) (*Config, error) {
	// Load config file as YAML if provided
	if configFile != "" {
		buf, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %s", err)
		}
		err = yaml.Unmarshal(buf, globalConfig)
		if err != nil {
			return nil, fmt.Errorf("error parsing config file: %s", err)
		}
	}
	// Load config values from environment variables
	// We use "dummy" as the app name here to (mostly) prevent picking up env
	// vars that we hadn't explicitly specified in annotations above
	err := envconfig.Process("dummy", globalConfig)
	if err != nil {
		return nil, fmt.Errorf("error processing environment: %s", err)
	}
	// Every handled game needs a coefficient before any message can be
	// credited against it
	if err := globalConfig.validateCoefficients(); err != nil {
		return nil, err
	}
	return globalConfig, nil
}

func (cfg *Config) validateCoefficients() error {
	for _, game := range common.Games() {
		if _, ok := cfg.Coefficients[string(game)]; !ok {
			return fmt.Errorf("no coefficient configured for game %q", game)
		}
	}
	// Defaults cover every handled game, so a typo'd name in the config
	// file would otherwise sit unused without any signal
	for name := range cfg.Coefficients {
		if !common.Game(name).Known() {
			return fmt.Errorf("coefficient configured for unknown game %q", name)
		}
	}
	return nil
}

// CoefficientMap returns the configured coefficients keyed by game
func (cfg *Config) CoefficientMap() map[common.Game]decimal.Decimal {
	ret := make(map[common.Game]decimal.Decimal, len(cfg.Coefficients))
	for name, coeff := range cfg.Coefficients {
		ret[common.Game(name)] = coeff.Decimal
	}
	return ret
}

// Return global config instance
func GetConfig() *Config {
	return globalConfig
}
