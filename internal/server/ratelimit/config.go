package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig loads rate limiting configuration from RATE_LIMIT_* environment variables.
func LoadConfig() *Config {
	return LoadConfigFrom(os.Getenv)
}

// LoadConfigFrom is LoadConfig reading variables through getenv.
func LoadConfigFrom(getenv func(string) string) *Config {
	env := envReader(getenv)
	if !env.boolean("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    env.integer("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   env.duration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: env.duration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-endpoint limits of the remix API.
// Routes that may call the language model are the strictest, preset writes come next,
// and everything else uses the default limit. /health is never limited.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/remix", Method: "POST", Limit: 60, Window: time.Hour, Burst: 10},
		{Path: "/remix/stream", Method: "POST", Limit: 60, Window: time.Hour, Burst: 10},
		{Path: "/style/parse", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},

		{Path: "/presets", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/presets/", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/presets/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/config/current", Method: "PUT", Limit: 100, Window: time.Minute, Burst: 10},
	}
}

// envReader reads typed values, falling back to a default when unset or malformed.
type envReader func(string) string

func (e envReader) integer(key string, defaultValue int) int {
	if value, err := strconv.Atoi(e(key)); err == nil {
		return value
	}
	return defaultValue
}

func (e envReader) boolean(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(e(key)); err == nil {
		return value
	}
	return defaultValue
}

func (e envReader) duration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(e(key)); err == nil {
		return value
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	if list == "" {
		return result
	}

	ips := strings.Split(list, ",")
	for _, ip := range ips {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}

	return result
}
