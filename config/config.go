package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// TokenConfig declares a settlement currency registered at genesis.
type TokenConfig struct {
	Symbol   string `toml:"Symbol"`
	Name     string `toml:"Name"`
	Decimals uint8  `toml:"Decimals"`
}

type Config struct {
	MetricsAddress string        `toml:"MetricsAddress"`
	DataDir        string        `toml:"DataDir"`
	Environment    string        `toml:"Environment"`
	LogDirectory   string        `toml:"LogDirectory"`
	LogMaxSizeMB   int           `toml:"LogMaxSizeMB"`
	LogMaxBackups  int           `toml:"LogMaxBackups"`
	LogMaxAgeDays  int           `toml:"LogMaxAgeDays"`
	Tokens         []TokenConfig `toml:"Tokens"`
}

// Load loads the configuration from the given path. A missing file is created
// with defaults so a fresh checkout boots without manual setup.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.MetricsAddress) == "" {
		cfg.MetricsAddress = ":9090"
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		cfg.DataDir = "./hestia-data"
	}
	if strings.TrimSpace(cfg.Environment) == "" {
		cfg.Environment = "local"
	}
	if cfg.Tokens == nil {
		cfg.Tokens = []TokenConfig{}
	}
}

func validate(cfg *Config) error {
	seen := map[string]struct{}{}
	for i, token := range cfg.Tokens {
		symbol := strings.ToUpper(strings.TrimSpace(token.Symbol))
		if symbol == "" {
			return fmt.Errorf("token %d: symbol must not be empty", i)
		}
		if _, dup := seen[symbol]; dup {
			return fmt.Errorf("token %s declared twice", symbol)
		}
		seen[symbol] = struct{}{}
	}
	return nil
}

// createDefault creates and saves a default configuration file.
func createDefault(path string) (*Config, error) {
	cfg := &Config{
		MetricsAddress: ":9090",
		DataDir:        "./hestia-data",
		Environment:    "local",
		LogMaxSizeMB:   64,
		LogMaxBackups:  5,
		LogMaxAgeDays:  14,
		Tokens: []TokenConfig{
			{Symbol: "USDH", Name: "Hestia Dollar", Decimals: 2},
		},
	}
	if err := persist(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func persist(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
