package configloader

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultMixinBaseURL      = "https://api.mixin.one"
	defaultBenchmarkAssetID  = "c6d0c728-2624-429b-8e0d-d9d19b6592fa" // BTC
	defaultPayBaseURL        = "https://mixin.one/pay"
	defaultShareScheme       = "mixin://send"
	defaultTokenKey          = "mixin-oauth"
	defaultTokenStoreDir     = "data/session"
	defaultServerPort        = "8080"
	defaultRequestTimeoutMs  = 10000
	defaultRateLimitPerSec   = 10
	defaultValuationParallel = 4
	defaultOutputsLimit      = 1000
)

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
	EnablePprof  bool   `yaml:"enablePprof"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// MixinConfig holds provider API specific configurations.
type MixinConfig struct {
	BaseURL              string `yaml:"baseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
	RateLimitPerSecond   int    `yaml:"rateLimitPerSecond"`
	OutputsLimit         int    `yaml:"outputsLimit"`
}

// AppConfig describes the application as registered with the provider.
type AppConfig struct {
	BotID       string `yaml:"botID"`
	AppURL      string `yaml:"appURL"`
	PayBaseURL  string `yaml:"payBaseURL"`
	ShareScheme string `yaml:"shareScheme"`
}

// PortfolioConfig holds valuation settings.
type PortfolioConfig struct {
	BenchmarkAssetID     string `yaml:"benchmarkAssetID"`
	ValuationConcurrency int    `yaml:"valuationConcurrency"`
}

// SessionConfig holds token persistence settings.
type SessionConfig struct {
	TokenKey      string `yaml:"tokenKey"`
	TokenStoreDir string `yaml:"tokenStoreDir"`
	// InMemory keeps the token in process memory only.
	InMemory bool `yaml:"inMemory"`
}

// HostConfig describes the companion wallet host the service is embedded in, if any.
type HostConfig struct {
	UserAgent            string `yaml:"userAgent"`
	WebkitMessageHandler bool   `yaml:"webkitMessageHandler"`
	GlobalContext        bool   `yaml:"globalContext"`
	GlobalContextGetter  bool   `yaml:"globalContextGetter"`
}

// SwaggerConfig holds configuration for Swagger UI.
type SwaggerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	SpecFile string `yaml:"specFile"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server    ServerConfig      `yaml:"server"`
	Logging   LoggingConfig     `yaml:"logging"`
	Mixin     MixinConfig       `yaml:"mixin"`
	App       AppConfig         `yaml:"app"`
	Portfolio PortfolioConfig   `yaml:"portfolio"`
	Session   SessionConfig     `yaml:"session"`
	Host      HostConfig        `yaml:"host"`
	Swagger   SwaggerConfig     `yaml:"swagger"`
	Assets    map[string]string `yaml:"assets"` // trading symbol -> asset id
}

// Load reads the YAML configuration file from the given path and unmarshals it.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML configuration and applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = defaultServerPort
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 30
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.Mixin.BaseURL == "" {
		cfg.Mixin.BaseURL = defaultMixinBaseURL
		logrus.Infof("Mixin.BaseURL not set, defaulting to %s", cfg.Mixin.BaseURL)
	}
	if cfg.Mixin.RequestTimeoutMillis <= 0 {
		cfg.Mixin.RequestTimeoutMillis = defaultRequestTimeoutMs
		logrus.Infof("Mixin.RequestTimeoutMillis not set, defaulting to %d ms", cfg.Mixin.RequestTimeoutMillis)
	}
	if cfg.Mixin.RateLimitPerSecond <= 0 {
		cfg.Mixin.RateLimitPerSecond = defaultRateLimitPerSec
	}
	if cfg.Mixin.OutputsLimit <= 0 {
		cfg.Mixin.OutputsLimit = defaultOutputsLimit
	}

	if cfg.App.PayBaseURL == "" {
		cfg.App.PayBaseURL = defaultPayBaseURL
	}
	if cfg.App.ShareScheme == "" {
		cfg.App.ShareScheme = defaultShareScheme
	}

	if cfg.Portfolio.BenchmarkAssetID == "" {
		cfg.Portfolio.BenchmarkAssetID = defaultBenchmarkAssetID
	}
	if cfg.Portfolio.ValuationConcurrency <= 0 {
		cfg.Portfolio.ValuationConcurrency = defaultValuationParallel
	}

	if cfg.Session.TokenKey == "" {
		cfg.Session.TokenKey = defaultTokenKey
	}
	if cfg.Session.TokenStoreDir == "" {
		cfg.Session.TokenStoreDir = defaultTokenStoreDir
	}

	if cfg.Swagger.SpecFile == "" {
		cfg.Swagger.SpecFile = "./docs/swagger.yaml"
	}

	if len(cfg.Assets) == 0 {
		cfg.Assets = DefaultAssets()
		logrus.Infof("Assets symbol table not set, using %d built-in symbols", len(cfg.Assets))
	}
}

func validate(cfg *Config) error {
	if cfg.App.BotID == "" {
		logrus.Warn("App.BotID is empty. Payment and share URIs cannot be built.")
	}
	if cfg.App.AppURL == "" {
		logrus.Warn("App.AppURL is empty. Shared app cards will carry relative actions.")
	}
	for symbol, id := range cfg.Assets {
		if symbol == "" || id == "" {
			return fmt.Errorf("assets table contains an empty symbol or asset id (%q: %q)", symbol, id)
		}
	}
	return nil
}

// DefaultAssets returns the built-in symbol table for the common Mixin assets.
func DefaultAssets() map[string]string {
	return map[string]string{
		"BTC":  "c6d0c728-2624-429b-8e0d-d9d19b6592fa",
		"ETH":  "43d61dcd-e413-450d-80b8-101d5e903357",
		"XIN":  "c94ac88f-4671-3976-b60a-09064f1811e8",
		"USDT": "4d8c508b-91c5-375b-92b0-ee702ed2dac5",
		"USDC": "9b180ab6-6abe-3dc0-a13f-04169eb34bfa",
		"DOGE": "6770a1e5-6086-44d5-b60f-545f9d9e8ffd",
		"SOL":  "64692c23-8971-4cf4-84a7-4dd1271dd887",
	}
}
