package creds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/rig/internal/config"
	"github.com/rileyhilliard/rig/internal/errors"
	"github.com/rileyhilliard/rig/internal/prompt"
)

func TestResolve_AllFromFlags(t *testing.T) {
	opts := Options{
		Server:   "nas.local",
		Share:    "secrets",
		Path:     "keys/ssh",
		User:     "me",
		Password: "hunter2",
	}

	loc, cred, err := Resolve(opts, config.DefaultConfig(), prompt.NewScripted())
	require.NoError(t, err)

	assert.Equal(t, "nas.local", loc.Server)
	assert.Equal(t, "secrets", loc.Share)
	assert.Equal(t, []string{"keys", "ssh"}, loc.Path)
	assert.Equal(t, "me", cred.Username)
	assert.Equal(t, "hunter2", cred.Password)
}

func TestResolve_ConfigFillsFlags(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.SMB.Server = "nas.local"
	cfg.SMB.Share = "secrets"
	cfg.SMB.User = "me"

	opts := Options{Password: "hunter2"}

	loc, cred, err := Resolve(opts, cfg, prompt.NewScripted())
	require.NoError(t, err)

	assert.Equal(t, "nas.local", loc.Server)
	assert.Equal(t, "me", cred.Username)
}

func TestResolve_FlagsOverrideConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.SMB.Server = "old.local"
	cfg.SMB.Share = "secrets"
	cfg.SMB.User = "me"

	opts := Options{Server: "new.local", Password: "x"}

	loc, _, err := Resolve(opts, cfg, prompt.NewScripted())
	require.NoError(t, err)
	assert.Equal(t, "new.local", loc.Server)
}

func TestResolve_NonInteractiveMissingPassword(t *testing.T) {
	opts := Options{
		Server: "nas.local",
		Share:  "secrets",
		User:   "me",
		// no password, scripted source
	}

	_, _, err := Resolve(opts, config.DefaultConfig(), prompt.NewScripted())

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "smb-pass")
}

func TestResolve_NonInteractiveMissingServer(t *testing.T) {
	opts := Options{Share: "secrets", User: "me", Password: "x"}

	_, _, err := Resolve(opts, config.DefaultConfig(), prompt.NewScripted())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "smb-server")
}

func TestResolve_EmptyPathMeansRoot(t *testing.T) {
	opts := Options{
		Server:   "nas.local",
		Share:    "secrets",
		User:     "me",
		Password: "x",
	}

	loc, _, err := Resolve(opts, config.DefaultConfig(), prompt.NewScripted())
	require.NoError(t, err)
	assert.Empty(t, loc.Path, "no path flag or config means the share root")
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "single", input: "keys", want: []string{"keys"}},
		{name: "nested", input: "keys/ssh", want: []string{"keys", "ssh"}},
		{name: "leading and trailing slashes", input: "/keys/ssh/", want: []string{"keys", "ssh"}},
		{name: "double slash", input: "keys//ssh", want: []string{"keys", "ssh"}},
		{name: "whitespace segments", input: " keys / ssh ", want: []string{"keys", "ssh"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitPath(tt.input))
		})
	}
}
