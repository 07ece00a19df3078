package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvAPIToken, "")
	t.Setenv(EnvLogLevel, "")

	s, err := Load("", Overrides{})
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, s.APIURL)
	assert.Equal(t, time.Duration(0), s.Timeout())
	assert.True(t, s.JournalEnabled())
	assert.Equal(t, "info", s.LogLevel)
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	s, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), Overrides{})
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, s.APIURL)
}

func TestLoadFile_Formats(t *testing.T) {
	dir := t.TempDir()

	yamlPath := writeFile(t, dir, "c.yaml", "api_url: https://api.example.com\nrequest_timeout: 15\njournal: false\ntls:\n  insecure_skip_verify: true\n")
	s, err := LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", s.APIURL)
	assert.Equal(t, 15, s.RequestTimeout)
	assert.False(t, s.JournalEnabled())
	require.NotNil(t, s.TLS)
	assert.True(t, s.TLS.InsecureSkipVerify)

	jsoncPath := writeFile(t, dir, "c.jsonc", `{
		// backend
		"api_url": "http://10.0.0.5:9000", /* trailing comma below */
		"log_level": "debug",
	}`)
	s, err = LoadFile(jsoncPath)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:9000", s.APIURL)
	assert.Equal(t, "debug", s.LogLevel)

	_, err = LoadFile(writeFile(t, dir, "c.toml", "x = 1"))
	assert.Error(t, err)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "c.yaml", "api_url: http://from-file:1\napi_token: file-token\n")

	t.Setenv(EnvAPIURL, "http://from-env:2")
	t.Setenv(EnvAPIToken, "")
	t.Setenv(EnvLogLevel, "")

	s, err := Load(path, Overrides{})
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:2", s.APIURL)
	assert.Equal(t, "file-token", s.APIToken)

	s, err = Load(path, Overrides{APIURL: "http://from-flag:3", APIToken: "flag-token"})
	require.NoError(t, err)
	assert.Equal(t, "http://from-flag:3", s.APIURL)
	assert.Equal(t, "flag-token", s.APIToken)
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		timeout int
		wantErr bool
	}{
		{"http ok", "http://localhost:8000", 0, false},
		{"https ok", "https://api.example.com/base", 30, false},
		{"no scheme", "localhost:8000", 0, true},
		{"ftp", "ftp://example.com", 0, true},
		{"no host", "http://", 0, true},
		{"negative timeout", "http://localhost", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			s.APIURL = tt.url
			s.RequestTimeout = tt.timeout
			err := s.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInitializeAt(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".resumedesk")
	require.NoError(t, InitializeAt(dir))

	assert.Equal(t, filepath.Join(dir, "resumedesk.db"), DatabasePath)
	assert.Equal(t, filepath.Join(dir, "keybinds.json"), KeybindsFile)

	s, err := LoadFile(SettingsFile)
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, s.APIURL)
	assert.True(t, s.JournalEnabled())
}

func TestResolveStartDir(t *testing.T) {
	dir := t.TempDir()
	s := DefaultSettings()
	s.StartDir = dir
	assert.Equal(t, dir, s.ResolveStartDir())

	s.StartDir = filepath.Join(dir, "missing")
	wd, _ := os.Getwd()
	assert.Equal(t, wd, s.ResolveStartDir())
}
