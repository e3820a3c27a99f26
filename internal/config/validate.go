package config

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/rig/internal/errors"
)

// Validate checks a loaded config for values that would only fail later,
// at the point of use, with a worse message.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"No configuration loaded",
			"Run 'rig init' to create one")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Config version %d is newer than this build understands (%d)", cfg.Version, CurrentConfigVersion),
			"Update rig, or regenerate the config with 'rig init'")
	}

	switch cfg.SMB.Client {
	case "", SMBClientAuto, SMBClientSmbclient, SMBClientNative:
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown smb.client value: %q", cfg.SMB.Client),
			"Use one of: auto, smbclient, native")
	}

	switch cfg.Keys.OnExisting {
	case "", OnExistingSkip, OnExistingOverwrite:
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown keys.on_existing value: %q", cfg.Keys.OnExisting),
			"Use one of: skip, overwrite")
	}

	if strings.Contains(cfg.SMB.Path, `\`) {
		return errors.New(errors.ErrConfig,
			"smb.path uses backslashes",
			"Use forward slashes; the transport converts separators itself")
	}

	return nil
}
