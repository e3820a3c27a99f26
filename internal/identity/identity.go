// Package identity tests installed SSH keys against a hosted git service
// and detects which account they belong to.
package identity

import (
	"bytes"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"

	"github.com/rileyhilliard/rig/internal/errors"
	"github.com/rileyhilliard/rig/internal/logger"
	"github.com/rileyhilliard/rig/internal/util"
)

// Result is the outcome of an identity probe.
type Result struct {
	Account string // detected account name, empty if not recognized
	NoKey   bool   // true when no usable private key was available
	Raw     string // raw service output, for diagnostics
}

// Prober dials the git host with the keystore's private keys and parses
// the service greeting for an account name.
type Prober struct {
	Host    string // git host, e.g. "github.com" or "git@gitea.local:2222"
	KeyDir  string // keystore directory to load private keys from
	Timeout time.Duration
	Log     logger.Logger
}

// Probe runs the identity test. A missing key is reported in the Result,
// not as an error: downstream steps handle "no identity" gracefully.
func (p *Prober) Probe() (Result, error) {
	log := p.Log
	if log == nil {
		log = logger.Noop()
	}
	timeout := p.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	signers := keystoreSigners(util.ExpandHome(p.KeyDir), log)
	if agentSigners := sshAgentSigners(); len(agentSigners) > 0 {
		signers = append(signers, agentSigners...)
	}
	if len(signers) == 0 {
		log.Info("no private key available, skipping identity test")
		return Result{NoKey: true}, nil
	}

	settings := resolveSettings(p.Host)

	var banner bytes.Buffer
	config := &ssh.ClientConfig{
		User: settings.user,
		Auth: []ssh.AuthMethod{ssh.PublicKeys(signers...)},
		BannerCallback: func(message string) error {
			banner.WriteString(message)
			return nil
		},
		// Host key verification is skipped: the probe targets fresh
		// workstations with an empty known_hosts, and it neither records
		// nor re-checks the key it sees.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec
		Timeout:         timeout,
	}

	address := settings.address()
	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return Result{}, errors.WrapWithCode(err, errors.ErrIdentity,
			fmt.Sprintf("Can't reach '%s' at %s", p.Host, address),
			"Check your network connection and the git host setting")
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, address, config)
	if err != nil {
		conn.Close()
		return Result{}, errors.WrapWithCode(err, errors.ErrIdentity,
			fmt.Sprintf("SSH authentication to '%s' failed", p.Host),
			"The installed keys may not be registered with this account")
	}
	client := ssh.NewClient(sshConn, chans, reqs)
	defer client.Close()

	output := banner.String() + sessionGreeting(client)
	account := ParseAccount(output)
	if account == "" {
		log.Warn("authenticated to %s but couldn't recognize the greeting", p.Host)
	} else {
		log.Info("detected account '%s' on %s", account, p.Host)
	}

	return Result{Account: account, Raw: output}, nil
}

// sessionGreeting opens a shell session and collects whatever the service
// prints. Git services refuse real shells: they emit their greeting and
// close, usually with a non-zero exit that we deliberately ignore.
func sessionGreeting(client *ssh.Client) string {
	session, err := client.NewSession()
	if err != nil {
		return ""
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	if err := session.Shell(); err != nil {
		return stdout.String() + stderr.String()
	}
	_ = session.Wait()

	return stdout.String() + stderr.String()
}

// keystoreSigners loads every parseable private key from the keystore.
// Public keys, config files, and encrypted keys are skipped; encrypted
// keys are noted so the user knows why they weren't used.
func keystoreSigners(dir string, log logger.Logger) []ssh.Signer {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var signers []ssh.Signer
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasSuffix(name, ".pub") || isNonKeyFile(name) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}

		signer, err := ssh.ParsePrivateKey(data)
		if err != nil {
			if strings.Contains(err.Error(), "encrypted") || strings.Contains(err.Error(), "passphrase") {
				log.Warn("key %s is passphrase-protected, add it to your agent to use it", name)
			}
			continue
		}
		signers = append(signers, signer)
	}
	return signers
}

// isNonKeyFile filters the well-known non-key residents of ~/.ssh.
func isNonKeyFile(name string) bool {
	switch name {
	case "config", "known_hosts", "known_hosts.old", "authorized_keys", "environment":
		return true
	}
	return false
}

// sshAgentSigners returns signers from the SSH agent when one is running.
func sshAgentSigners() []ssh.Signer {
	socket := os.Getenv("SSH_AUTH_SOCK")
	if socket == "" {
		return nil
	}

	conn, err := net.Dial("unix", socket)
	if err != nil {
		return nil
	}

	signers, err := agent.NewClient(conn).Signers()
	if err != nil {
		conn.Close()
		return nil
	}
	return signers
}
