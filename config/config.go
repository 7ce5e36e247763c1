package config

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config carries the connection settings for the staking backend.
type Config struct {
	BaseUrl string `mapstructure:"base_url,omitempty" json:"base_url,omitempty" toml:"base_url,omitempty"`
	ApiKey  Secret `mapstructure:"api_key,omitempty" json:"api_key,omitempty" toml:"api_key,omitempty"`
	// Network used when a command does not name one.
	Network string `mapstructure:"network,omitempty" json:"network,omitempty" toml:"network,omitempty"`
}

const ConfigFileEnv = "STAKER_CONFIG"

func DefaultConfig() *Config {
	return &Config{
		BaseUrl: "https://api.cdp.coinbase.com/platform",
		ApiKey:  "env:STAKER_API_KEY",
		Network: "ethereum-mainnet",
	}
}

func LoadConfig() (*Config, error) {
	v := getViper()
	return loadWithViper(v)
}

func LoadConfigFromFile(file string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigFile(file)
	return loadWithViper(v)
}

func loadWithViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()
	if v.ConfigFileUsed() == "" {
		return cfg, nil
	}
	if err := v.ReadInConfig(); err != nil {
		return cfg, err
	}
	if err := v.Unmarshal(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func getViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("toml")
	if os.Getenv(ConfigFileEnv) != "" {
		logrus.WithField("config", os.Getenv(ConfigFileEnv)).Debug("loading staker configuration")
		v.SetConfigFile(os.Getenv(ConfigFileEnv))
	}
	return v
}
