package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	todoerrors "github.com/abatilo/powertodo/internal/errors"
	"github.com/abatilo/powertodo/internal/storage"
	"github.com/abatilo/powertodo/internal/task"
)

const (
	appName    = "powertodo"
	configFile = "config.yaml"

	OutputHuman = "human"
	OutputJSON  = "json"
)

// Config holds user settings. Empty DataDir means ~/.powertodo.
type Config struct {
	DataDir  string `yaml:"data_dir,omitempty"`
	Profile  string `yaml:"profile"`
	Codec    string `yaml:"codec"`
	IDScheme string `yaml:"id_scheme"`
	Output   string `yaml:"output"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Profile:  "default",
		Codec:    string(storage.CodecJSON),
		IDScheme: string(task.SchemeShort),
		Output:   OutputHuman,
	}
}

// DefaultPath returns ~/.config/powertodo/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, configFile), nil
}

// Load reads the config at path. A missing file yields Default().
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	cfg.fillDefaults()
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating its directory.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.Profile == "" {
		c.Profile = def.Profile
	}
	if c.Codec == "" {
		c.Codec = def.Codec
	}
	if c.IDScheme == "" {
		c.IDScheme = def.IDScheme
	}
	if c.Output == "" {
		c.Output = def.Output
	}
}

// Validate checks every enumerated field.
func (c *Config) Validate() error {
	if _, err := storage.NewCodec(c.Codec); err != nil {
		return err
	}
	if _, err := task.ParseScheme(c.IDScheme); err != nil {
		return err
	}
	switch c.Output {
	case OutputHuman, OutputJSON:
	default:
		return todoerrors.InvalidOutputError{Value: c.Output}
	}
	return nil
}
