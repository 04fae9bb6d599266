package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// envPrefix namespaces environment overrides, e.g. SIMPLEVI_EDITOR_CAPACITY.
const envPrefix = "SIMPLEVI"

// Config represents the root configuration structure
type Config struct {
	Editor EditorConfig `mapstructure:"editor" yaml:"editor"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
	Debug  bool         `mapstructure:"debug" yaml:"debug"`

	// File is the config file that was read, empty when running on defaults.
	File string `mapstructure:"-" yaml:"-"`
}

// LogConfig controls the log file.
type LogConfig struct {
	// File is the log path. Empty means ~/.config/simplevi/simplevi.log.
	File string `mapstructure:"file" yaml:"file"`

	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level"`
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() *Config {
	return &Config{
		Editor: DefaultEditorConfig(),
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the config file location created by WriteDefault.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "simplevi", "config.yaml"), nil
}

// Load reads configuration from a YAML file and SIMPLEVI_* environment
// variables. An empty path searches $HOME/.config/simplevi and the working
// directory for config.yaml and falls back to defaults if there is none. An
// explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("$HOME/.config/simplevi")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ValidateConfig validates the configuration values
func ValidateConfig(cfg *Config) error {
	if cfg.Editor.MaxLines < 1 {
		return fmt.Errorf("editor.max_lines must be >= 1, got %d", cfg.Editor.MaxLines)
	}
	if cfg.Editor.Capacity < 1 {
		return fmt.Errorf("editor.capacity must be >= 1, got %d", cfg.Editor.Capacity)
	}
	if _, _, err := cfg.Editor.EraseRune(); err != nil {
		return fmt.Errorf("editor.erase_char: %w", err)
	}

	validLevels := []string{"debug", "info", "warn", "warning", "error"}
	if !slices.Contains(validLevels, strings.ToLower(cfg.Log.Level)) {
		return fmt.Errorf("log.level must be one of: %v, got %s", validLevels, cfg.Log.Level)
	}

	return nil
}

// applyDefaults registers every key with viper so that environment
// variables are picked up by Unmarshal.
func applyDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("editor.max_lines", d.Editor.MaxLines)
	v.SetDefault("editor.capacity", d.Editor.Capacity)
	v.SetDefault("editor.erase_char", d.Editor.EraseChar)
	v.SetDefault("editor.scroll_on_left", d.Editor.ScrollOnLeft)
	v.SetDefault("editor.show_tildes", d.Editor.ShowTildes)

	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)

	v.SetDefault("debug", d.Debug)
}

// WriteDefault writes the default configuration as YAML to path, creating
// parent directories. An existing file is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	return writeConfig(f, data)
}

// writeConfig writes the header and data to f and closes it. A failed close
// is reported when the writes succeeded.
func writeConfig(f io.WriteCloser, data []byte) (err error) {
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close config file: %w", cerr)
		}
	}()

	header := "# simplevi configuration\n# Every key can be overridden with SIMPLEVI_<SECTION>_<KEY>.\n"
	if _, err := io.WriteString(f, header); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
