package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	Language    string `json:"language"`
	GitHubToken string `json:"github_token,omitempty"`
	// BaseURL points the API source at a GitHub Enterprise server
	BaseURL   string `json:"base_url,omitempty"`
	OutputDir string `json:"output_dir"`
	// Source is empty until LoadConfig picks one, see DefaultSource
	Source string `json:"source,omitempty"`

	PathFile string `json:"-"`
}

const (
	LangEN = "en"
	LangES = "es"

	SourceAPI  = "api"
	SourceGH   = "gh"
	SourceFile = "file"

	DefaultOutputDir = "data/issues"

	defaultLang   = LangEN
	configDirName = ".issue-export"
	configName    = "config.json"
)

// Environment variables consulted after the config file.
const (
	EnvGitHubToken = "GITHUB_TOKEN"
	EnvGHToken     = "GH_TOKEN"
	EnvLanguage    = "ISSUE_EXPORT_LANG"
)

// DefaultPath returns ~/.issue-export/config.json under homeDir.
func DefaultPath(homeDir string) string {
	return filepath.Join(homeDir, configDirName, configName)
}

// LoadConfig reads the JSON config at path, or a directory holding
// .issue-export/config.json. A missing file yields defaults and nothing is
// written to disk. Environment variables take precedence over the file.
func LoadConfig(path string) (*Config, error) {
	config, err := readConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnv(config)
	applyDefaults(config)
	if config.Source == "" {
		config.Source = DefaultSource(config.GitHubToken)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LoadFileConfig is LoadConfig without environment overrides, for callers
// that save the result back and must not persist tokens taken from the env.
func LoadFileConfig(path string) (*Config, error) {
	config, err := readConfig(path)
	if err != nil {
		return nil, err
	}
	applyDefaults(config)
	return config, nil
}

func readConfig(path string) (*Config, error) {
	configPath := path
	if filepath.Ext(path) != ".json" {
		configPath = DefaultPath(path)
	}

	config := defaultConfig(configPath)

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("error reading config file: %w", err)
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error decoding config file %s: %w", configPath, err)
		}
		config.PathFile = configPath
	}
	return config, nil
}

// SaveConfig writes the config back to its file, creating the directory.
func SaveConfig(config *Config) error {
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if config.PathFile == "" {
		return errors.New("config file path is not set")
	}

	if err := os.MkdirAll(filepath.Dir(config.PathFile), 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	// the token may live here, keep it private
	if err := os.WriteFile(config.PathFile, data, 0o600); err != nil {
		return fmt.Errorf("error saving config: %w", err)
	}

	return nil
}

func defaultConfig(path string) *Config {
	return &Config{
		Language:  defaultLang,
		OutputDir: DefaultOutputDir,
		PathFile:  path,
	}
}

func applyEnv(config *Config) {
	if token := os.Getenv(EnvGitHubToken); token != "" {
		config.GitHubToken = token
	} else if token := os.Getenv(EnvGHToken); token != "" {
		config.GitHubToken = token
	}

	if lang := os.Getenv(EnvLanguage); lang != "" {
		config.Language = lang
	}
}

func applyDefaults(config *Config) {
	if config.Language == "" {
		config.Language = defaultLang
	}
	if config.OutputDir == "" {
		config.OutputDir = DefaultOutputDir
	}
}

func validateConfig(config *Config) error {
	switch config.Language {
	case LangEN, LangES:
	default:
		return fmt.Errorf("language not supported: %s", config.Language)
	}

	if config.Source == "" {
		return nil
	}
	if err := ValidateSource(config.Source); err != nil {
		return err
	}
	return nil
}

// DefaultSource is the source used when none is configured: the REST API
// when a token is available, otherwise the gh CLI and its stored login.
func DefaultSource(token string) string {
	if token != "" {
		return SourceAPI
	}
	return SourceGH
}

// ValidateSource accepts api, gh or file.
func ValidateSource(source string) error {
	switch source {
	case SourceAPI, SourceGH, SourceFile:
		return nil
	default:
		return fmt.Errorf("issue source not supported: %s", source)
	}
}
