package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API     API     `json:"api" yaml:"api" mapstructure:"api"`
	Server  Server  `json:"server" yaml:"server" mapstructure:"server"`
	Catalog Catalog `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
}

// API locates the remote movie service.
type API struct {
	Scheme      string        `json:"scheme" yaml:"scheme" mapstructure:"scheme"`
	Host        string        `json:"host" yaml:"host" mapstructure:"host"`
	APIKey      string        `json:"apiKey" yaml:"apiKey" mapstructure:"apiKey"`
	BaseBackoff time.Duration `json:"backoff" yaml:"backoff" mapstructure:"backoff"`
	MaxRetries  int           `json:"maxRetries" yaml:"maxRetries" mapstructure:"maxRetries"`
}

type Server struct {
	Port int `json:"port" yaml:"port" mapstructure:"port"`
}

// Catalog holds display defaults for the browsing engine.
type Catalog struct {
	PageSize int `json:"pageSize" yaml:"pageSize" mapstructure:"pageSize"`
}

type ConfigUnmarshaler interface {
	ReadInConfig() error
	Unmarshal(any, ...viper.DecoderConfigOption) error
	ConfigFileUsed() string
}

// New reads a new configuration
func New(cu ConfigUnmarshaler) (Config, error) {
	var c Config

	if cu.ConfigFileUsed() != "" {
		err := cu.ReadInConfig()
		if err != nil {
			return c, err
		}
	}

	err := cu.Unmarshal(&c)
	return c, err
}
