package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfigFile drops a YAML config into a temp dir and returns its path.
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "netcli.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(Config{Platform: "cisco_ios", Key: "show_version"})

	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "-", cfg.InputPath)
	assert.False(t, cfg.Canonical)
}

func TestNewConfigFileMerge(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
log_level: debug
log_format: json
templates_path: /opt/netcli/templates
canonical: true
`)

	cfg, err := NewConfig(Config{Platform: "cisco_ios", Key: "show_version", ConfigPath: path})

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "/opt/netcli/templates", cfg.TemplatesPath)
	assert.True(t, cfg.Canonical)
}

func TestNewConfigFlagsWinOverFile(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
log_level: debug
log_format: json
templates_path: /opt/netcli/templates
`)

	cfg, err := NewConfig(Config{
		Platform:      "cisco_ios",
		Key:           "show_version",
		ConfigPath:    path,
		LogLevel:      "warn",
		LogFormat:     "text",
		TemplatesPath: "/srv/packs",
	})

	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "/srv/packs", cfg.TemplatesPath)
}

func TestNewConfigFileListenEnablesServeMode(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, "listen: ':8455'\n")

	cfg, err := NewConfig(Config{ConfigPath: path})

	require.NoError(t, err)
	assert.Equal(t, ":8455", cfg.ListenAddr)
}

func TestNewConfigFileListenYieldsToExplicitMode(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, "listen: ':8455'\n")

	// A parse invocation on the command line must not be hijacked into
	// serve mode by the config file.
	cfg, err := NewConfig(Config{ConfigPath: path, Platform: "cisco_ios", Key: "show_version"})
	require.NoError(t, err)
	assert.Empty(t, cfg.ListenAddr)

	// Same for an explicit -list.
	cfg, err = NewConfig(Config{ConfigPath: path, List: true})
	require.NoError(t, err)
	assert.Empty(t, cfg.ListenAddr)
	assert.True(t, cfg.List)
}

func TestNewConfigCanonicalFileCannotDisable(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, "canonical: false\n")

	cfg, err := NewConfig(Config{
		Platform:   "cisco_ios",
		Key:        "show_version",
		ConfigPath: path,
		Canonical:  true,
	})

	require.NoError(t, err)
	assert.True(t, cfg.Canonical)
}

func TestNewConfigMissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(Config{
		Platform:   "cisco_ios",
		Key:        "show_version",
		ConfigPath: filepath.Join(t.TempDir(), "absent.yaml"),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestNewConfigMalformedFile(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, "log_level: [broken\n")

	_, err := NewConfig(Config{Platform: "cisco_ios", Key: "show_version", ConfigPath: path})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestNewConfigValidation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:    "modes are mutually exclusive",
			config:  Config{List: true, Check: true},
			wantErr: "-list, -check and -serve are mutually exclusive",
		},
		{
			name:    "serve excludes check",
			config:  Config{Check: true, ListenAddr: ":8455"},
			wantErr: "-list, -check and -serve are mutually exclusive",
		},
		{
			name:    "parse inputs rejected in list mode",
			config:  Config{List: true, Platform: "cisco_ios"},
			wantErr: "only apply to parse mode",
		},
		{
			name:    "template path rejected in serve mode",
			config:  Config{ListenAddr: ":8455", TemplatePath: "x.textfsm"},
			wantErr: "only apply to parse mode",
		},
		{
			name:    "parse mode requires platform",
			config:  Config{Key: "show_version"},
			wantErr: "parse mode requires -platform",
		},
		{
			name:    "parse mode requires key or command",
			config:  Config{Platform: "cisco_ios"},
			wantErr: "parse mode requires -key or -command",
		},
		{
			name:    "key and command are mutually exclusive",
			config:  Config{Platform: "cisco_ios", Key: "show_version", Command: "show version"},
			wantErr: "-key and -command are mutually exclusive",
		},
		{
			name:    "invalid log format",
			config:  Config{Platform: "cisco_ios", Key: "show_version", LogFormat: "xml"},
			wantErr: "invalid log-format",
		},
		{
			name:    "invalid log level",
			config:  Config{Platform: "cisco_ios", Key: "show_version", LogLevel: "trace"},
			wantErr: "invalid log-level",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewConfig(tc.config)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestNewConfigCheckModeKeepsTemplatesPath(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(Config{Check: true, TemplatesPath: "/srv/packs"})

	require.NoError(t, err)
	assert.True(t, cfg.Check)
	assert.Equal(t, "/srv/packs", cfg.TemplatesPath)
}
