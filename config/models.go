package config

import "time"

// UpstreamConfigEntry represents the concurrency limit for a single upstream API.
type UpstreamConfigEntry struct {
	Size int `mapstructure:"size"`
}

// Config holds the application configuration.
type Config struct {
	ListenAddress     string                         `mapstructure:"listen_address"`
	GeminiAPIKey      string                         `mapstructure:"gemini_api_key"`
	GeminiModel       string                         `mapstructure:"gemini_model"`
	GeminiBaseURL     string                         `mapstructure:"gemini_base_url"`
	GeocoderBaseURL   string                         `mapstructure:"geocoder_base_url"`
	GeocoderUserAgent string                         `mapstructure:"geocoder_user_agent"`
	UpstreamTimeout   time.Duration                  `mapstructure:"upstream_timeout"`
	SlotWait          time.Duration                  `mapstructure:"slot_wait"`
	AllowedOrigins    []string                       `mapstructure:"allowed_origins"`
	Upstreams         map[string]UpstreamConfigEntry `mapstructure:"upstreams"`
}
