package identity

import (
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/kevinburke/ssh_config"
)

// sshSettings holds resolved SSH connection parameters for the git host.
type sshSettings struct {
	hostname string
	port     string
	user     string
}

// address returns the host:port string for dialing.
func (s *sshSettings) address() string {
	return net.JoinHostPort(s.hostname, s.port)
}

// resolveSettings parses the host string and overlays ~/.ssh/config.
// Git services authenticate as the fixed "git" user unless the config or
// the host string says otherwise.
func resolveSettings(host string) *sshSettings {
	settings := &sshSettings{
		port: "22",
		user: "git",
	}

	// user@host form takes precedence over everything
	if atIdx := strings.Index(host, "@"); atIdx != -1 {
		settings.user = host[:atIdx]
		host = host[atIdx+1:]
	}

	if colonIdx := strings.LastIndex(host, ":"); colonIdx != -1 {
		potentialPort := host[colonIdx+1:]
		if potentialPort != "" && isAllDigits(potentialPort) {
			settings.port = potentialPort
			host = host[:colonIdx]
		}
	}

	settings.hostname = host

	cfgPath := filepath.Join(homeDir(), ".ssh", "config")
	f, err := os.Open(cfgPath)
	if err != nil {
		// No SSH config, defaults stand.
		return settings
	}
	defer f.Close()

	cfg, err := ssh_config.Decode(f)
	if err != nil {
		return settings
	}

	if hostname, _ := cfg.Get(host, "HostName"); hostname != "" {
		settings.hostname = hostname
	}
	if port, _ := cfg.Get(host, "Port"); port != "" {
		settings.port = port
	}
	if user, _ := cfg.Get(host, "User"); user != "" {
		settings.user = user
	}

	return settings
}

func isAllDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.Getenv("HOME")
	}
	return home
}
