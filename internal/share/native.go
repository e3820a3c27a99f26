package share

import (
	"fmt"
	"io"
	"net"
	"os"

	"github.com/hirochachacha/go-smb2"

	"github.com/rileyhilliard/rig/internal/errors"
	"github.com/rileyhilliard/rig/internal/logger"
)

// NativeClient talks SMB2 directly instead of shelling out to smbclient.
// Each call dials, authenticates, mounts the share, and tears everything
// down again; key fetching is a handful of small files, so connection
// reuse isn't worth the state.
type NativeClient struct {
	cred Credential
	log  logger.Logger
}

// NewNativeClient creates a client using the in-process SMB2 implementation.
func NewNativeClient(cred Credential, log logger.Logger) *NativeClient {
	if log == nil {
		log = logger.Noop()
	}
	return &NativeClient{cred: cred, log: log}
}

// List reads the directory at the location.
func (c *NativeClient) List(loc Location) ([]Entry, error) {
	fs, cleanup, err := c.mount(loc)
	if err != nil {
		return nil, errors.NewShareUnreachable(loc.Server, loc.Share, err)
	}
	defer cleanup()

	dir := loc.RemotePath(`\`)
	if dir == "" {
		dir = "."
	}

	infos, err := fs.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			// Nonexistent path is a recoverable "nothing found", not a crash.
			return nil, nil
		}
		return nil, errors.NewShareUnreachable(loc.Server, loc.Share, err)
	}

	var entries []Entry
	for _, info := range infos {
		kind := EntryFile
		if info.IsDir() {
			kind = EntryDir
		}
		entries = append(entries, Entry{Name: info.Name(), Kind: kind})
	}
	return entries, nil
}

// Fetch copies loc.Path/name into the local file at dest.
func (c *NativeClient) Fetch(loc Location, name string, dest string) error {
	fs, cleanup, err := c.mount(loc)
	if err != nil {
		return errors.NewShareUnreachable(loc.Server, loc.Share, err)
	}
	defer cleanup()

	remote := name
	if dir := loc.RemotePath(`\`); dir != "" {
		remote = dir + `\` + name
	}

	src, err := fs.Open(remote)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewKeyNotFound(name)
		}
		return errors.WrapWithCode(err, errors.ErrKeys,
			fmt.Sprintf("Couldn't fetch '%s' from %s", name, loc),
			"Check the file still exists on the share")
	}
	defer src.Close()

	dst, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrKeys,
			fmt.Sprintf("Couldn't write '%s' locally", dest),
			"Check permissions on the staging directory")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return errors.WrapWithCode(err, errors.ErrKeys,
			fmt.Sprintf("Transfer of '%s' failed midway", name),
			"Retry; the share connection may be flaky")
	}
	return nil
}

// mount dials the server, authenticates, and mounts the share. The
// returned cleanup tears down the mount, session, and connection.
func (c *NativeClient) mount(loc Location) (*smb2.Share, func(), error) {
	conn, err := net.Dial("tcp", net.JoinHostPort(loc.Server, "445"))
	if err != nil {
		return nil, nil, err
	}

	d := &smb2.Dialer{
		Initiator: &smb2.NTLMInitiator{
			User:     c.cred.Username,
			Password: c.cred.Password,
		},
	}

	session, err := d.Dial(conn)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}

	fs, err := session.Mount(loc.Share)
	if err != nil {
		session.Logoff()
		conn.Close()
		return nil, nil, err
	}

	c.log.Debug("mounted %s as %s", loc.UNC(), c.cred.Username)

	cleanup := func() {
		fs.Umount()
		session.Logoff()
		conn.Close()
	}
	return fs, cleanup, nil
}
