// Package creds resolves the share location and credential for a run from
// flags, config, and (in interactive mode) the controlling terminal.
package creds

import (
	"strings"

	"github.com/rileyhilliard/rig/internal/config"
	"github.com/rileyhilliard/rig/internal/prompt"
	"github.com/rileyhilliard/rig/internal/share"
)

// Options carries the flag values feeding the resolver. Empty fields fall
// back to config, then to the prompt source.
type Options struct {
	Server   string
	Share    string
	Path     string
	User     string
	Password string
}

// Resolve produces a fully populated Location and Credential, or fails.
// With a Scripted source, any required field still empty after flags and
// config becomes a fatal MissingCredential error before any network call.
func Resolve(opts Options, cfg *config.Config, src prompt.Source) (share.Location, share.Credential, error) {
	var loc share.Location
	var cred share.Credential

	server := firstNonEmpty(opts.Server, cfg.SMB.Server)
	shareName := firstNonEmpty(opts.Share, cfg.SMB.Share)
	path := firstNonEmpty(opts.Path, cfg.SMB.Path)
	user := firstNonEmpty(opts.User, cfg.SMB.User)
	password := opts.Password

	var err error
	if server == "" {
		server, err = src.Input("smb-server", "SMB server", "nas.local")
		if err != nil {
			return loc, cred, err
		}
	}
	if shareName == "" {
		shareName, err = src.Input("share", "Share name", "secrets")
		if err != nil {
			return loc, cred, err
		}
	}
	if user == "" {
		user, err = src.Input("smb-user", "Share username", "")
		if err != nil {
			return loc, cred, err
		}
	}
	if password == "" {
		password, err = src.Secret("smb-pass", "Share password")
		if err != nil {
			return loc, cred, err
		}
	}

	loc = share.Location{
		Server: server,
		Share:  shareName,
		Path:   SplitPath(path),
	}
	cred = share.Credential{
		Username: user,
		Password: password,
	}
	return loc, cred, nil
}

// SplitPath turns a forward-slash path into segments, dropping empties so
// "keys/ssh", "/keys/ssh/", and "keys//ssh" all mean the same location.
// An empty path means the share root.
func SplitPath(path string) []string {
	var segments []string
	for _, seg := range strings.Split(path, "/") {
		seg = strings.TrimSpace(seg)
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
