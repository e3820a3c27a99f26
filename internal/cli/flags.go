package cli

import (
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/rig/internal/config"
	"github.com/rileyhilliard/rig/internal/creds"
	"github.com/rileyhilliard/rig/internal/errors"
	"github.com/rileyhilliard/rig/internal/logger"
	"github.com/rileyhilliard/rig/internal/prompt"
	"github.com/rileyhilliard/rig/internal/share"
)

// ShareFlags holds the standard flags used by commands that talk to the
// network share (keys, ls, bootstrap).
type ShareFlags struct {
	Server         string
	Share          string
	Path           string
	User           string
	Password       string
	NonInteractive bool
}

// AddShareFlags registers the share connection flags on a command.
func AddShareFlags(cmd *cobra.Command, flags *ShareFlags) {
	cmd.Flags().StringVar(&flags.Server, "smb-server", "", "SMB server hostname or IP")
	cmd.Flags().StringVar(&flags.Share, "share", "", "share name on the server")
	cmd.Flags().StringVar(&flags.Path, "share-path", "", "directory inside the share")
	cmd.Flags().StringVar(&flags.User, "smb-user", "", "username for the share")
	cmd.Flags().StringVar(&flags.Password, "smb-pass", "", "password for the share (prompted when omitted)")
	cmd.Flags().BoolVar(&flags.NonInteractive, "non-interactive", false, "fail instead of prompting for missing values")
}

// loadConfig loads the effective config, falling back to defaults when
// no config file exists.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(Config())
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newPromptSource picks the prompt behavior for the run: interactive
// forms by default, fail-fast when --non-interactive is set.
func newPromptSource(nonInteractive bool) prompt.Source {
	if nonInteractive {
		return prompt.NewScripted()
	}
	return prompt.NewInteractive()
}

// resolveShare turns flags, config, and prompts into a share location
// and credential.
func resolveShare(flags *ShareFlags, cfg *config.Config, src prompt.Source) (share.Location, share.Credential, error) {
	return creds.Resolve(creds.Options{
		Server:   flags.Server,
		Share:    flags.Share,
		Path:     flags.Path,
		User:     flags.User,
		Password: flags.Password,
	}, cfg, src)
}

// newShareClient builds the SMB client the config asks for. Auto prefers
// the smbclient binary and falls back to the built-in SMB2 dialer when
// the binary is missing.
func newShareClient(cfg *config.Config, cred share.Credential, log logger.Logger) (share.Client, error) {
	switch cfg.SMB.Client {
	case config.SMBClientSmbclient:
		return share.NewSmbclientClient(cred, log)
	case config.SMBClientNative:
		return share.NewNativeClient(cred, log), nil
	default:
		client, err := share.NewSmbclientClient(cred, log)
		if err == nil {
			return client, nil
		}
		log.Debug("smbclient not found, using built-in SMB support")
		return share.NewNativeClient(cred, log), nil
	}
}

// requireShareReachable converts a listing error into the standard
// unreachable error with the location baked in.
func requireShareReachable(err error, loc share.Location) error {
	if err == nil {
		return nil
	}
	if errors.IsCode(err, errors.ErrShare) {
		return err
	}
	return errors.NewShareUnreachable(loc.Server, loc.Share, err)
}
