package app

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the merged configuration for a single netcli invocation.
type Config struct {
	// Parse mode inputs.
	Platform     string
	Key          string
	Command      string
	InputPath    string
	TemplatePath string
	Canonical    bool

	// Alternative modes, mutually exclusive with each other and with the
	// parse inputs above.
	List       bool
	Check      bool
	ListenAddr string

	TemplatesPath string
	ConfigPath    string
	LogFormat     string
	LogLevel      string
}

// fileConfig is the YAML shape of an optional netcli.yaml file.
type fileConfig struct {
	LogLevel      string `yaml:"log_level"`
	LogFormat     string `yaml:"log_format"`
	TemplatesPath string `yaml:"templates_path"`
	Listen        string `yaml:"listen"`
	Canonical     *bool  `yaml:"canonical"`
}

const defaultConfigPath = "netcli.yaml"

// NewConfig merges flag values over an optional YAML config file and the
// built-in defaults, then validates the result. Flags win over the file,
// the file wins over defaults.
func NewConfig(cfg Config) (*Config, error) {
	file, err := loadFileConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = file.LogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = file.LogFormat
	}
	if cfg.TemplatesPath == "" {
		cfg.TemplatesPath = file.TemplatesPath
	}
	if !cfg.Canonical && file.Canonical != nil {
		cfg.Canonical = *file.Canonical
	}
	// The file's listen address only puts the process into serve mode when
	// the command line asked for nothing else.
	if cfg.ListenAddr == "" && file.Listen != "" && !cfg.List && !cfg.Check &&
		cfg.Platform == "" && cfg.Key == "" && cfg.Command == "" && cfg.TemplatePath == "" {
		cfg.ListenAddr = file.Listen
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, errors.New("invalid log-format: must be 'text' or 'json'")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	modes := 0
	if cfg.List {
		modes++
	}
	if cfg.Check {
		modes++
	}
	if cfg.ListenAddr != "" {
		modes++
	}
	if modes > 1 {
		return nil, errors.New("-list, -check and -serve are mutually exclusive")
	}
	if modes == 1 {
		if cfg.Platform != "" || cfg.Key != "" || cfg.Command != "" || cfg.TemplatePath != "" {
			return nil, errors.New("-platform, -key, -command and -template only apply to parse mode")
		}
		return &cfg, nil
	}

	// No mode flag means parse mode.
	if cfg.Platform == "" {
		return nil, errors.New("parse mode requires -platform")
	}
	if cfg.Key == "" && cfg.Command == "" {
		return nil, errors.New("parse mode requires -key or -command")
	}
	if cfg.Key != "" && cfg.Command != "" {
		return nil, errors.New("-key and -command are mutually exclusive, pass one")
	}
	if cfg.InputPath == "" {
		cfg.InputPath = "-"
	}

	return &cfg, nil
}

// loadFileConfig reads the YAML config file. An explicitly configured path
// must exist; the default netcli.yaml is optional.
func loadFileConfig(path string) (*fileConfig, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return &fileConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &file, nil
}
