package config

import (
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

type Config struct {
	APIBaseURL    string
	APIToken      string
	Timeout       time.Duration
	RateInterval  time.Duration
	UserAgent     string
	Transport     string
	HTTPAddr      string
	HTTPPath      string
	ServerName    string
	ServerVersion string
}

const (
	defaultAPIBaseURL     = "https://api.pinboard.in/v1"
	defaultTimeoutSeconds = 20
	defaultRateSeconds    = 3
	defaultUserAgent      = "pinboard-mcp/0.1"
	defaultHTTPAddr       = "127.0.0.1:8722"
	defaultHTTPPath       = "/mcp"
)

// Load reads configuration from the environment. A missing or malformed
// PINBOARD_TOKEN is the one fatal condition: the process must not come up
// without a credential.
func Load() (Config, error) {
	token := strings.TrimSpace(os.Getenv("PINBOARD_TOKEN"))
	if token == "" {
		return Config{}, errors.New("PINBOARD_TOKEN is required")
	}
	if !strings.Contains(token, ":") {
		return Config{}, errors.New("PINBOARD_TOKEN must be in user:TOKEN form")
	}

	apiBase := strings.TrimSpace(os.Getenv("PINBOARD_API_URL"))
	if apiBase == "" {
		apiBase = defaultAPIBaseURL
	}
	baseURL, err := url.Parse(apiBase)
	if err != nil {
		return Config{}, errors.WithMessage(err, "parse PINBOARD_API_URL")
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return Config{}, errors.New("PINBOARD_API_URL must include scheme and host")
	}
	if err := validateScheme(baseURL); err != nil {
		return Config{}, err
	}

	timeoutSeconds, err := readIntEnv("PINBOARD_TIMEOUT_SECONDS", defaultTimeoutSeconds)
	if err != nil {
		return Config{}, err
	}
	if timeoutSeconds <= 0 {
		return Config{}, errors.New("PINBOARD_TIMEOUT_SECONDS must be > 0")
	}

	rateSeconds, err := readIntEnv("PINBOARD_RATE_LIMIT_SECONDS", defaultRateSeconds)
	if err != nil {
		return Config{}, err
	}
	if rateSeconds < 0 {
		return Config{}, errors.New("PINBOARD_RATE_LIMIT_SECONDS must be >= 0")
	}

	userAgent := strings.TrimSpace(os.Getenv("PINBOARD_USER_AGENT"))
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	transport := strings.TrimSpace(os.Getenv("MCP_TRANSPORT"))
	if transport == "" {
		transport = "stdio"
	}

	httpAddr := strings.TrimSpace(os.Getenv("MCP_HTTP_ADDR"))
	if httpAddr == "" {
		httpAddr = defaultHTTPAddr
	}
	httpPath := strings.TrimSpace(os.Getenv("MCP_HTTP_PATH"))
	if httpPath == "" {
		httpPath = defaultHTTPPath
	}

	cfg := Config{
		APIBaseURL:    strings.TrimRight(baseURL.String(), "/"),
		APIToken:      token,
		Timeout:       time.Duration(timeoutSeconds) * time.Second,
		RateInterval:  time.Duration(rateSeconds) * time.Second,
		UserAgent:     userAgent,
		Transport:     transport,
		HTTPAddr:      httpAddr,
		HTTPPath:      httpPath,
		ServerName:    "pinboard-mcp",
		ServerVersion: "0.1.0",
	}
	return cfg, nil
}

func NewHTTPClient(cfg Config) *http.Client {
	return &http.Client{Timeout: cfg.Timeout}
}

func readIntEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Newf("%s must be an integer", key)
	}
	return v, nil
}

func validateScheme(u *url.URL) error {
	if u.Scheme == "https" {
		return nil
	}
	if u.Scheme != "http" {
		return errors.New("PINBOARD_API_URL must use https (or http for localhost)")
	}
	host := strings.ToLower(u.Hostname())
	if host == "localhost" || host == "127.0.0.1" || host == "::1" {
		return nil
	}
	return errors.New("PINBOARD_API_URL must use https unless pointing to localhost")
}
