package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	Dataset string  `yaml:"dataset"`
	Assets  Assets  `yaml:"assets"`
	Server  Server  `yaml:"server"`
	Private bool    `yaml:"private"`
	Logging Logging `yaml:"logging"`
}

// Assets locates the static asset tree (figure images, logos, per-paper text
// documents), either a local directory or an http(s) base URL.
type Assets struct {
	Base string `yaml:"base"`
	// ImageDir is the preferred (compressed) image directory; FallbackDir is
	// used when the probe of ProbeSample under ImageDir fails.
	ImageDir    string `yaml:"image_dir"`
	FallbackDir string `yaml:"fallback_dir"`
	ProbeSample string `yaml:"probe_sample"`
}

type Server struct {
	Port int `yaml:"port"`
}

type Logging struct {
	Level string `yaml:"level"`
}

// ConfigDir returns the XDG config directory for paperdeck.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "paperdeck")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/paperdeck/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'paperdeck init' to create a default config",
		xdgConfig,
	)
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Dataset: "data/papers.json",
		Assets: Assets{
			Base:        ".",
			ImageDir:    "images_web",
			FallbackDir: "images",
			ProbeSample: "2.1/fig_1.png",
		},
		Server:  Server{Port: 8000},
		Logging: Logging{Level: "INFO"},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
