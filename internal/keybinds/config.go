package keybinds

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Config is the user's keybinding file.
// Each section maps an action name to a comma-separated key list, e.g. "refresh": "r,ctrl+r".
type Config struct {
	Version string            `json:"version"`
	Global  map[string]string `json:"global,omitempty"`
	Upload  map[string]string `json:"upload,omitempty"`
	List    map[string]string `json:"list,omitempty"`
	Picker  map[string]string `json:"picker,omitempty"`
	Search  map[string]string `json:"search,omitempty"`
	Viewer  map[string]string `json:"viewer,omitempty"`
	Help    map[string]string `json:"help,omitempty"`
}

// sections maps each context to its config section
func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal: c.Global,
		ContextUpload: c.Upload,
		ContextList:   c.List,
		ContextPicker: c.Picker,
		ContextSearch: c.Search,
		ContextViewer: c.Viewer,
		ContextHelp:   c.Help,
	}
}

// LoadConfig loads keybinding configuration from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds.json format: %w", err)
	}

	return &config, nil
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SplitKeys splits a comma-separated key list, trimming blanks
func SplitKeys(keys string) []string {
	var out []string
	for _, k := range strings.Split(keys, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// ApplyConfig applies user configuration to a registry.
// A configured action replaces every default key for that action in the same context.
func ApplyConfig(registry *Registry, config *Config) error {
	for _, context := range AllContexts {
		for actionStr, keys := range config.sections()[context] {
			action := Action(actionStr)
			if err := ValidateAction(actionStr); err != nil {
				return fmt.Errorf("%s: %w", context, err)
			}
			registry.Unbind(context, action)
			for _, key := range SplitKeys(keys) {
				if err := ValidateKey(key); err != nil {
					return fmt.Errorf("%s.%s: %w", context, action, err)
				}
				registry.Register(context, key, action)
			}
		}
	}

	return nil
}

// LoadOrDefault loads user config if it exists, otherwise returns the default registry.
// A config that fails validation is rejected as a whole; warnings go to log.
func LoadOrDefault(configPath string, log zerolog.Logger) (*Registry, error) {
	registry := NewDefaultRegistry()

	config, err := LoadConfig(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return registry, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load keybinds.json: %w", err)
	}

	result := NewValidator().ValidateConfig(config)
	for _, w := range result.Warnings {
		log.Warn().
			Str("context", string(w.Context)).
			Str("key", w.Key).
			Msg(w.Message)
	}
	if result.HasErrors() {
		return nil, fmt.Errorf("invalid keybinds.json: %w", result.Err())
	}

	if err := ApplyConfig(registry, config); err != nil {
		return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
	}

	return registry, nil
}

// ExportDefaults renders the default registry in config form
func ExportDefaults() *Config {
	r := NewDefaultRegistry()
	config := &Config{Version: "1.0"}

	for _, context := range AllContexts {
		section := make(map[string]string)
		byAction := make(map[Action][]string)
		for key, action := range r.bindings[context] {
			byAction[action] = append(byAction[action], key)
		}
		for action := range byAction {
			section[string(action)] = strings.Join(r.GetBinding(context, action), ",")
		}

		switch context {
		case ContextGlobal:
			config.Global = section
		case ContextUpload:
			config.Upload = section
		case ContextList:
			config.List = section
		case ContextPicker:
			config.Picker = section
		case ContextSearch:
			config.Search = section
		case ContextViewer:
			config.Viewer = section
		case ContextHelp:
			config.Help = section
		}
	}

	return config
}

// CreateExampleConfig writes the default bindings to path. An existing file is left alone.
func CreateExampleConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	return SaveConfig(ExportDefaults(), path)
}

// CheckFile validates the config at path without applying it
func CheckFile(path string) (*ValidationResult, error) {
	config, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return NewValidator().ValidateConfig(config), nil
}
