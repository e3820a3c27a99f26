package share

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/rileyhilliard/rig/internal/errors"
	"github.com/rileyhilliard/rig/internal/logger"
)

// SmbclientClient talks to the share by shelling out to the smbclient
// binary. Remote calls block with no timeout; a hung transfer blocks the
// whole run.
type SmbclientClient struct {
	cred Credential
	bin  string
	log  logger.Logger
}

// FindSmbclient locates the smbclient binary on the local system.
func FindSmbclient() (string, error) {
	path, err := exec.LookPath("smbclient")
	if err != nil {
		return "", errors.New(errors.ErrShare,
			"smbclient isn't installed locally",
			"Grab it with: brew install samba (macOS) or apt install smbclient (Linux)")
	}
	return path, nil
}

// NewSmbclientClient creates a client backed by the smbclient binary.
func NewSmbclientClient(cred Credential, log logger.Logger) (*SmbclientClient, error) {
	bin, err := FindSmbclient()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Noop()
	}
	return &SmbclientClient{cred: cred, bin: bin, log: log}, nil
}

// List runs `smbclient -c ls` against the location and parses the output.
// A path that doesn't exist on the share yields an empty listing, not an
// error; only a share we can't reach at all is unreachable.
func (c *SmbclientClient) List(loc Location) ([]Entry, error) {
	out, err := c.run(loc, "ls")
	if err != nil {
		if strings.Contains(out, "NT_STATUS_OBJECT_NAME_NOT_FOUND") ||
			strings.Contains(out, "NT_STATUS_OBJECT_PATH_NOT_FOUND") {
			return nil, nil
		}
		return nil, errors.NewShareUnreachable(loc.Server, loc.Share, err)
	}
	return ParseListing(out), nil
}

// Fetch retrieves a single file from the location into dest.
func (c *SmbclientClient) Fetch(loc Location, name string, dest string) error {
	out, err := c.run(loc, fmt.Sprintf("get %q %q", name, dest))
	if err != nil {
		if strings.Contains(out, "NT_STATUS_OBJECT_NAME_NOT_FOUND") ||
			strings.Contains(out, "NT_STATUS_NO_SUCH_FILE") {
			return errors.NewKeyNotFound(name)
		}
		return errors.WrapWithCode(err, errors.ErrKeys,
			fmt.Sprintf("Couldn't fetch '%s' from %s", name, loc),
			"Check the file still exists on the share")
	}
	return nil
}

// run executes one smbclient command against the share. The password goes
// through the PASSWD environment variable so it never appears in process
// arguments visible to other processes.
func (c *SmbclientClient) run(loc Location, command string) (string, error) {
	args := []string{loc.UNC(), "-U", c.cred.Username}
	if c.cred.Password == "" {
		args = append(args, "-N")
	}
	if dir := loc.RemotePath("/"); dir != "" {
		args = append(args, "-D", dir)
	}
	args = append(args, "-c", command)

	cmd := exec.Command(c.bin, args...)
	cmd.Env = append(os.Environ(), "PASSWD="+c.cred.Password)

	c.log.Debug("smbclient %s -c %q", loc.UNC(), command)

	out, err := cmd.CombinedOutput()
	output := string(out)
	if err != nil {
		c.log.Debug("smbclient failed: %s", strings.TrimSpace(output))
		return output, fmt.Errorf("smbclient: %s", firstStatusLine(output, err))
	}
	return output, nil
}

// firstStatusLine pulls the most useful line out of smbclient's output for
// error reporting, falling back to the exec error.
func firstStatusLine(output string, err error) string {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if strings.Contains(line, "NT_STATUS_") || strings.Contains(line, "Connection") {
			return line
		}
	}
	return err.Error()
}
