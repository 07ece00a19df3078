package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/studiowebux/resumedesk/internal/types"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// DefaultAPIURL is the backend base URL used when nothing else is configured
const DefaultAPIURL = "http://localhost:8000"

// Environment variable names
const (
	EnvAPIURL   = "RESUMEDESK_API_URL"
	EnvAPIToken = "RESUMEDESK_API_TOKEN"
	EnvLogLevel = "RESUMEDESK_LOG_LEVEL"
)

// Settings is the single explicit configuration value handed to every component
type Settings struct {
	APIURL         string           `json:"api_url" yaml:"api_url"`
	APIToken       string           `json:"api_token,omitempty" yaml:"api_token,omitempty"`
	RequestTimeout int              `json:"request_timeout" yaml:"request_timeout"` // seconds, 0 = none
	Journal        *bool            `json:"journal,omitempty" yaml:"journal,omitempty"`
	LogLevel       string           `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	StartDir       string           `json:"start_dir,omitempty" yaml:"start_dir,omitempty"`
	TLS            *types.TLSConfig `json:"tls,omitempty" yaml:"tls,omitempty"`
}

// Overrides carries values set on the command line; empty fields are ignored
type Overrides struct {
	APIURL   string
	APIToken string
	LogLevel string
}

// DefaultSettings returns settings with every default applied
func DefaultSettings() *Settings {
	enabled := true
	return &Settings{
		APIURL:   DefaultAPIURL,
		Journal:  &enabled,
		LogLevel: "info",
	}
}

// Load reads settings from path, then applies .env, environment and flag overrides.
// A missing file is not an error.
func Load(path string, overrides Overrides) (*Settings, error) {
	s := DefaultSettings()

	if path != "" {
		fileSettings, err := LoadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		if fileSettings != nil {
			s.merge(fileSettings)
		}
	}

	// .env is optional
	_ = godotenv.Load()
	s.applyEnv()
	s.applyOverrides(overrides)

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// LoadFile parses a YAML, JSON or JSONC settings file
func LoadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Settings
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to parse YAML settings: %w", err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &s); err != nil {
			return nil, fmt.Errorf("failed to parse JSON settings: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported settings file format: %s (use .yaml, .yml, .json or .jsonc)", ext)
	}

	return &s, nil
}

func (s *Settings) merge(other *Settings) {
	if other.APIURL != "" {
		s.APIURL = other.APIURL
	}
	if other.APIToken != "" {
		s.APIToken = other.APIToken
	}
	if other.RequestTimeout != 0 {
		s.RequestTimeout = other.RequestTimeout
	}
	if other.Journal != nil {
		s.Journal = other.Journal
	}
	if other.LogLevel != "" {
		s.LogLevel = other.LogLevel
	}
	if other.StartDir != "" {
		s.StartDir = other.StartDir
	}
	if other.TLS != nil {
		s.TLS = other.TLS
	}
}

func (s *Settings) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		s.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPIToken)); v != "" {
		s.APIToken = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		s.LogLevel = v
	}
}

func (s *Settings) applyOverrides(o Overrides) {
	if o.APIURL != "" {
		s.APIURL = o.APIURL
	}
	if o.APIToken != "" {
		s.APIToken = o.APIToken
	}
	if o.LogLevel != "" {
		s.LogLevel = o.LogLevel
	}
}

// Validate checks the base URL and timeout
func (s *Settings) Validate() error {
	u, err := url.Parse(s.APIURL)
	if err != nil {
		return fmt.Errorf("api_url %q: %w", s.APIURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_url %q must use http or https", s.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("api_url %q has no host", s.APIURL)
	}
	if s.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative")
	}
	return nil
}

// Timeout returns the request timeout; zero means none
func (s *Settings) Timeout() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}

// JournalEnabled reports whether uploads are recorded locally (default true)
func (s *Settings) JournalEnabled() bool {
	return s.Journal == nil || *s.Journal
}

// ResolveStartDir returns the directory the file picker opens in
func (s *Settings) ResolveStartDir() string {
	if s.StartDir != "" {
		if dir, err := ExpandHome(s.StartDir); err == nil {
			if info, err := os.Stat(dir); err == nil && info.IsDir() {
				return dir
			}
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}
