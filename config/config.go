package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	TMDB    TMDB    `json:"tmdb" yaml:"tmdb" mapstructure:"tmdb"`
	Storage Storage `json:"storage" yaml:"storage" mapstructure:"storage"`
	Server  Server  `json:"server" yaml:"server" mapstructure:"server"`
	Tracker Tracker `json:"tracker" yaml:"tracker" mapstructure:"tracker"`
}

type TMDB struct {
	Scheme          string        `json:"scheme" yaml:"scheme" mapstructure:"scheme"`
	Host            string        `json:"host" yaml:"host" mapstructure:"host"`
	APIKey          string        `json:"apiKey" yaml:"apiKey" mapstructure:"apiKey"`
	Language        string        `json:"language" yaml:"language" mapstructure:"language"`
	BaseBackoff     time.Duration `json:"backoff" yaml:"backoff" mapstructure:"backoff"`
	MaxRetries      int           `json:"maxRetries" yaml:"maxRetries" mapstructure:"maxRetries"`
	RequestInterval time.Duration `json:"requestInterval" yaml:"requestInterval" mapstructure:"requestInterval"`
}

type Server struct {
	Port int `json:"port" yaml:"port" mapstructure:"port"`
}

// Storage configuration is for the embedded sqlite database
type Storage struct {
	FilePath string `json:"filePath" yaml:"filePath" mapstructure:"filePath"`
}

// Tracker houses configuration for the watch-state engine and the
// reconciliation sweep
type Tracker struct {
	User           string        `json:"user" yaml:"user" mapstructure:"user"`
	SweepOnStart   bool          `json:"sweepOnStart" yaml:"sweepOnStart" mapstructure:"sweepOnStart"`
	SweepThrottle  time.Duration `json:"sweepThrottle" yaml:"sweepThrottle" mapstructure:"sweepThrottle"`
	SeasonCacheTTL time.Duration `json:"seasonCacheTTL" yaml:"seasonCacheTTL" mapstructure:"seasonCacheTTL"`
	DrainTimeout   time.Duration `json:"drainTimeout" yaml:"drainTimeout" mapstructure:"drainTimeout"`
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
