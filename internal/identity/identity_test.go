package identity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/rig/internal/logger"
)

func TestParseAccount(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
	}{
		{
			name:   "github greeting",
			output: "Hi octocat! You've successfully authenticated, but GitHub does not provide shell access.",
			want:   "octocat",
		},
		{
			name:   "gitlab greeting",
			output: "Welcome to GitLab, @jane.doe!",
			want:   "jane.doe",
		},
		{
			name:   "gitea greeting",
			output: "Hi there, dev-user! You've successfully authenticated with the key named laptop",
			want:   "dev-user",
		},
		{
			name:   "bitbucket greeting",
			output: "authenticated via ssh key.\n\nYou can use git to connect to Bitbucket. Shell access is disabled.\nlogged in as octocat.",
			want:   "octocat",
		},
		{
			name:   "unrecognized output",
			output: "PTY allocation request failed on channel 0",
			want:   "",
		},
		{
			name:   "empty output",
			output: "",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAccount(tt.output))
		})
	}
}

func TestResolveSettings(t *testing.T) {
	// Isolate from the developer's real ~/.ssh/config.
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name     string
		host     string
		hostname string
		port     string
		user     string
	}{
		{"bare host", "github.com", "github.com", "22", "git"},
		{"user at host", "deploy@gitea.local", "gitea.local", "22", "deploy"},
		{"host with port", "gitea.local:2222", "gitea.local", "2222", "git"},
		{"user host and port", "deploy@gitea.local:2222", "gitea.local", "2222", "deploy"},
		{"trailing colon without port", "gitea.local:", "gitea.local:", "22", "git"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveSettings(tt.host)
			assert.Equal(t, tt.hostname, got.hostname)
			assert.Equal(t, tt.port, got.port)
			assert.Equal(t, tt.user, got.user)
		})
	}
}

func TestResolveSettings_SSHConfigOverlay(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	sshDir := filepath.Join(home, ".ssh")
	require.NoError(t, os.MkdirAll(sshDir, 0700))
	cfg := `Host work-git
  HostName git.internal.example.com
  Port 2200
  User builder
`
	require.NoError(t, os.WriteFile(filepath.Join(sshDir, "config"), []byte(cfg), 0600))

	got := resolveSettings("work-git")
	assert.Equal(t, "git.internal.example.com", got.hostname)
	assert.Equal(t, "2200", got.port)
	assert.Equal(t, "builder", got.user)
	assert.Equal(t, "git.internal.example.com:2200", got.address())
}

func TestProbe_NoKeys(t *testing.T) {
	t.Setenv("SSH_AUTH_SOCK", "")

	log := logger.NewBufferLogger()
	p := &Prober{
		Host:   "github.com",
		KeyDir: t.TempDir(),
		Log:    log,
	}

	result, err := p.Probe()
	require.NoError(t, err)
	assert.True(t, result.NoKey)
	assert.Empty(t, result.Account)
	assert.True(t, log.Contains("info", "no private key available"))
}

func TestKeystoreSigners_SkipsNonKeys(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"id_ed25519.pub", "known_hosts", "config", "authorized_keys"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("not a key"), 0600))
	}
	// Garbage that fails to parse is skipped silently.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "id_rsa"), []byte("garbage"), 0600))

	signers := keystoreSigners(dir, logger.Noop())
	assert.Empty(t, signers)
}

func TestIsNonKeyFile(t *testing.T) {
	assert.True(t, isNonKeyFile("known_hosts"))
	assert.True(t, isNonKeyFile("config"))
	assert.False(t, isNonKeyFile("id_ed25519"))
}
