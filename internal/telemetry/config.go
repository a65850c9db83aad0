package telemetry

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	envEndpoint    = "WALLE_OTEL_ENDPOINT"
	envInsecure    = "WALLE_OTEL_INSECURE"
	envService     = "WALLE_OTEL_SERVICE"
	envDialTimeout = "WALLE_OTEL_DIAL_TIMEOUT"
	envHeaders     = "WALLE_OTEL_HEADERS"

	DefaultServiceName = "walle"
)

type Config struct {
	Endpoint    string
	Insecure    bool
	ServiceName string
	Version     string
	DialTimeout time.Duration
	Headers     map[string]string
}

// Enabled reports whether an exporter endpoint is configured.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.Endpoint) != ""
}

// ConfigFromEnv reads WALLE_OTEL_* variables through getenv. Malformed
// optional values are ignored.
func ConfigFromEnv(getenv func(string) string) Config {
	cfg := Config{ServiceName: DefaultServiceName}
	if getenv == nil {
		return cfg
	}

	cfg.Endpoint = strings.TrimSpace(getenv(envEndpoint))
	if v := strings.TrimSpace(getenv(envInsecure)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Insecure = b
		}
	}
	if v := strings.TrimSpace(getenv(envService)); v != "" {
		cfg.ServiceName = v
	}
	if v := strings.TrimSpace(getenv(envDialTimeout)); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.DialTimeout = d
		}
	}
	if h, err := ParseHeaders(getenv(envHeaders)); err == nil {
		cfg.Headers = h
	}
	return cfg
}

// ParseHeaders parses "k=v, k2=v2". Blank input yields nil.
func ParseHeaders(raw string) (map[string]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	out := map[string]string{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, ok := strings.Cut(part, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid header %q", part)
		}
		out[k] = strings.TrimSpace(v)
	}
	return out, nil
}
