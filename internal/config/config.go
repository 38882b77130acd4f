// Package config holds the runtime configuration: where the three data
// sources live and how the program logs.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/kmodtui/kmodtui/internal/kmod"
)

// Config is the effective runtime configuration. Precedence is flag > env >
// config file > default, handled by viper bindings in the root command.
type Config struct {
	SysModuleDir string `json:"sys_module_dir" mapstructure:"sys_module_dir"`
	ModprobeDir  string `json:"modprobe_dir" mapstructure:"modprobe_dir"`
	ModinfoBin   string `json:"modinfo_bin" mapstructure:"modinfo_bin"`
	LogFile      string `json:"log_file,omitempty" mapstructure:"log_file"`
	LogLevel     string `json:"log_level,omitempty" mapstructure:"log_level"`
}

// Default returns the stock-Linux configuration.
func Default() *Config {
	return &Config{
		SysModuleDir: kmod.DefaultSysModuleDir,
		ModprobeDir:  kmod.DefaultModprobeDir,
		ModinfoBin:   kmod.DefaultModinfoBin,
		LogLevel:     "info",
	}
}

// FromViper builds Config from viper-bound flags, env, and file.
func FromViper() *Config {
	return &Config{
		SysModuleDir: viper.GetString("sys_module_dir"),
		ModprobeDir:  viper.GetString("modprobe_dir"),
		ModinfoBin:   viper.GetString("modinfo_bin"),
		LogFile:      viper.GetString("log_file"),
		LogLevel:     viper.GetString("log_level"),
	}
}

// Dir returns the config directory path (~/.kmodtui).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".kmodtui"), nil
}

// Path returns the config file path (~/.kmodtui/config.json).
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Save writes the config to ~/.kmodtui/config.json, creating the directory
// if needed.
func Save(cfg *Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	path, err := Path()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
