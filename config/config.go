package config

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultGeminiModel       = "gemini-1.5-flash"
	DefaultGeminiBaseURL     = "https://generativelanguage.googleapis.com"
	DefaultGeocoderBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultGeocoderUserAgent = "ItineraryGenerator/1.0"
)

// ErrMissingAPIKey is returned when no Gemini credential is configured.
var ErrMissingAPIKey = errors.New("please set the GEMINI_API_KEY environment variable")

// The global, read-only config variable.
var (
	cfg  *Config
	once sync.Once
)

// LoadConfig reads the optional config file and the environment, and initializes the
// global cfg variable. It ensures that the configuration is set only once.
func LoadConfig(configFile string) (*Config, error) {
	var err error
	once.Do(func() {
		// A missing .env is fine, the real environment still applies.
		_ = godotenv.Load()

		var configuration *Config
		configuration, err = load(viper.New(), configFile)
		if err != nil {
			return
		}
		cfg = configuration
	})

	if err != nil {
		return nil, err
	}

	if cfg == nil {
		return nil, errors.New("configuration was not set")
	}

	return cfg, nil
}

// GetConfig returns the loaded configuration.
// It panics if the configuration has not been set.
func GetConfig() *Config {
	if cfg == nil {
		panic("Config has not been set! Call LoadConfig first.")
	}
	return cfg
}

func load(v *viper.Viper, configFile string) (*Config, error) {
	setDefaults(v)

	// Every key is overridable by its upper-cased name, e.g. GEMINI_API_KEY.
	v.AutomaticEnv()
	if err := v.BindEnv("gemini_api_key"); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var configuration Config
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&configuration); err != nil {
		return nil, err
	}
	return &configuration, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen_address", "0.0.0.0:8080")
	v.SetDefault("gemini_model", DefaultGeminiModel)
	v.SetDefault("gemini_base_url", DefaultGeminiBaseURL)
	v.SetDefault("geocoder_base_url", DefaultGeocoderBaseURL)
	v.SetDefault("geocoder_user_agent", DefaultGeocoderUserAgent)
	v.SetDefault("upstream_timeout", 60*time.Second)
	v.SetDefault("slot_wait", 30*time.Second)
	v.SetDefault("allowed_origins", []string{"https://*", "http://*"})
	v.SetDefault("upstreams.gemini.size", 8)
	// Nominatim's usage policy allows a single client at most one request at a time.
	v.SetDefault("upstreams.nominatim.size", 1)
}

func validate(c *Config) error {
	if c.GeminiAPIKey == "" {
		return ErrMissingAPIKey
	}
	if c.GeminiModel == "" {
		return errors.New("gemini_model is required")
	}
	if c.UpstreamTimeout <= 0 {
		return errors.New("upstream_timeout must be positive")
	}
	if c.SlotWait <= 0 {
		return errors.New("slot_wait must be positive")
	}
	return nil
}
