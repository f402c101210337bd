package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/yosuke-furukawa/json5/encoding/json5"
	"gopkg.in/yaml.v3"
)

const (
	DirName            = "urnscraper"
	ConfigFileName     = "config.json"
	YAMLConfigFileName = "config.yaml"
	ProxiesFileName    = "proxies.txt"
)

// Config contains server and fetcher settings.
type Config struct {
	Addr                string `json:"addr" yaml:"addr"`
	Fetcher             string `json:"fetcher" yaml:"fetcher"`
	TimeoutSeconds      int    `json:"timeout_seconds" yaml:"timeout_seconds"`
	ReadTimeoutSeconds  int    `json:"read_timeout_seconds" yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `json:"write_timeout_seconds" yaml:"write_timeout_seconds"`
	ProxyBanMinutes     int    `json:"proxy_ban_minutes" yaml:"proxy_ban_minutes"`
	DefaultLocation     string `json:"default_location" yaml:"default_location"`
}

func DefaultConfig() Config {
	return Config{
		Addr:                envString("URNSCRAPER_ADDR", ":8000"),
		Fetcher:             envString("URNSCRAPER_FETCHER", "tls"),
		TimeoutSeconds:      envInt("URNSCRAPER_TIMEOUT", 30),
		ReadTimeoutSeconds:  15,
		WriteTimeoutSeconds: 60,
		ProxyBanMinutes:     10,
		DefaultLocation:     envString("URNSCRAPER_DEFAULT_LOCATION", ""),
	}
}

func (c Config) Timeout() time.Duration {
	return seconds(c.TimeoutSeconds)
}

func (c Config) ReadTimeout() time.Duration {
	return seconds(c.ReadTimeoutSeconds)
}

func (c Config) WriteTimeout() time.Duration {
	return seconds(c.WriteTimeoutSeconds)
}

func (c Config) ProxyBanDuration() time.Duration {
	if c.ProxyBanMinutes <= 0 {
		return 0
	}
	return time.Duration(c.ProxyBanMinutes) * time.Minute
}

func ConfigDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv("URNSCRAPER_CONFIG_DIR")); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func ProxiesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ProxiesFileName), nil
}

// Load reads config.json (JSON5) from the config directory, falling back to
// config.yaml. Missing or empty files leave the defaults in place.
func Load() (Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return DefaultConfig(), err
	}
	return LoadDir(dir)
}

func LoadDir(dir string) (Config, error) {
	cfg := DefaultConfig()

	loaded, err := loadFile(filepath.Join(dir, ConfigFileName), &cfg, json5.Unmarshal)
	if err != nil || loaded {
		return cfg, err
	}
	_, err = loadFile(filepath.Join(dir, YAMLConfigFileName), &cfg, yaml.Unmarshal)
	return cfg, err
}

func loadFile(path string, cfg *Config, unmarshal func([]byte, any) error) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return true, nil
	}

	if err := unmarshal(data, cfg); err != nil {
		return true, err
	}
	return true, nil
}

// Init writes default config.json and proxies.txt if they don't already exist.
func Init() ([]string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return InitDir(dir)
}

func InitDir(dir string) ([]string, error) {
	var created []string

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return created, err
	}

	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := writeConfig(configPath, DefaultConfig()); err != nil {
			return created, err
		}
		created = append(created, configPath)
	}

	proxiesPath := filepath.Join(dir, ProxiesFileName)
	if _, err := os.Stat(proxiesPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(proxiesPath, []byte(""), 0o644); err != nil {
			return created, err
		}
		created = append(created, proxiesPath)
	}

	return created, nil
}

func writeConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// LoadProxies resolves proxies from the flag value, URNSCRAPER_PROXIES, or
// proxies.txt, in that order.
func LoadProxies(flagValue string) ([]string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return splitCSV(flagValue), nil
	}

	if env := strings.TrimSpace(os.Getenv("URNSCRAPER_PROXIES")); env != "" {
		return splitCSV(env), nil
	}

	path, err := ProxiesPath()
	if err != nil {
		return nil, err
	}
	return readProxiesFile(path)
}

func readProxiesFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var proxies []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		proxies = append(proxies, line)
	}
	return proxies, nil
}

func seconds(value int) time.Duration {
	if value <= 0 {
		return 0
	}
	return time.Duration(value) * time.Second
}

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
