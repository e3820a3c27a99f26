package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/rileyhilliard/rig/internal/errors"
)

const (
	// ConfigFileName is the per-directory config file name.
	ConfigFileName = ".rig.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/rig"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'rig init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
//  1. Explicit path (from --config flag)
//  2. .rig.yaml in the current directory
//  3. ~/.config/rig/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	// 1. Explicit path takes precedence
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	// 2. Current directory
	cwd, err := os.Getwd()
	if err == nil {
		localConfig := filepath.Join(cwd, ConfigFileName)
		if _, err := os.Stat(localConfig); err == nil {
			return localConfig, nil
		}
	}

	// 3. Global config
	if home, err := os.UserHomeDir(); err == nil {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// LoadOrDefault loads config from the found path, or returns defaults if
// not found. Useful for commands like 'rig init' and for first runs on a
// bare machine, which is exactly when this tool gets used.
func LoadOrDefault(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}

	if path == "" {
		return DefaultConfig(), nil
	}

	return Load(path)
}

// GlobalConfigPath returns the path where 'rig init' writes its config.
func GlobalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine home directory",
			"Set the HOME environment variable")
	}
	return filepath.Join(home, GlobalConfigDir, GlobalConfigFile), nil
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	setDefaults(v)

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	return cfg, nil
}

// setDefaults registers defaults so omitted sections unmarshal sanely.
func setDefaults(v *viper.Viper) {
	v.SetDefault("smb.client", SMBClientAuto)
	v.SetDefault("keys.dest", "~/.ssh")
	v.SetDefault("keys.on_existing", OnExistingSkip)
	v.SetDefault("git.host", "github.com")
	v.SetDefault("git.api", "https://api.github.com")
	v.SetDefault("git.clone_dir", "~/src")
	v.SetDefault("tools.install", false)
	v.SetDefault("tools.extra", []string{"zoxide"})
	v.SetDefault("tools.asdf_plugins", []string{"nodejs", "python"})
}
