package keys

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rileyhilliard/rig/internal/config"
	"github.com/rileyhilliard/rig/internal/errors"
	"github.com/rileyhilliard/rig/internal/logger"
	"github.com/rileyhilliard/rig/internal/share"
	"github.com/rileyhilliard/rig/internal/util"
)

// Classification designates key material as private or public, driving the
// permission mode applied on install.
type Classification int

const (
	Private Classification = iota
	Public
)

// Classify derives the classification from the filename: a .pub suffix
// means public key material, everything else is treated as private.
func Classify(name string) Classification {
	if strings.HasSuffix(name, ".pub") {
		return Public
	}
	return Private
}

// Mode returns the file mode for a classification: world-readable for
// public keys, owner-only for private keys.
func (c Classification) Mode() os.FileMode {
	if c == Public {
		return 0644
	}
	return 0600
}

func (c Classification) String() string {
	if c == Public {
		return "public"
	}
	return "private"
}

// Policy controls what happens when a destination file already exists.
type Policy int

const (
	// PolicySkipExisting treats an existing destination as already
	// satisfied: no fetch, no rewrite. Safe to run every provision.
	PolicySkipExisting Policy = iota

	// PolicyOverwrite always fetches and rewrites the destination.
	PolicyOverwrite
)

// PolicyFromConfig maps the keys.on_existing config value to a Policy.
func PolicyFromConfig(value string) Policy {
	if value == config.OnExistingOverwrite {
		return PolicyOverwrite
	}
	return PolicySkipExisting
}

// Installer downloads selected share files into the keystore with the
// permissions their classification demands.
type Installer struct {
	Client share.Client
	Dest   string // keystore directory, ~ expanded at install time
	Policy Policy
	Log    logger.Logger
}

// Result summarizes one Install run.
type Result struct {
	Installed int // fetched and written this run
	Skipped   int // already present under skip-if-present
	Failed    int // per-item fetch failures
}

// Install fetches each selected name into a private staging area, then
// flattens it into the keystore under its basename with the right mode.
// One file's failure never aborts its siblings. Zero successes is a
// warning condition, not an error: the run continues without keys.
func (i *Installer) Install(loc share.Location, names []string) (Result, error) {
	log := i.Log
	if log == nil {
		log = logger.Noop()
	}

	var res Result

	dest := util.ExpandHome(i.Dest)
	if err := os.MkdirAll(dest, 0700); err != nil {
		return res, errors.WrapWithCode(err, errors.ErrKeys,
			fmt.Sprintf("Couldn't create keystore directory: %s", dest),
			"Check permissions on your home directory")
	}
	// MkdirAll leaves an existing directory's mode alone; the keystore
	// must be owner-only either way.
	if err := os.Chmod(dest, 0700); err != nil {
		return res, errors.WrapWithCode(err, errors.ErrKeys,
			fmt.Sprintf("Couldn't restrict keystore directory: %s", dest),
			"Check ownership of "+dest)
	}

	staging, cleanup, err := newStagingDir()
	if err != nil {
		return res, err
	}
	defer cleanup()

	for _, name := range names {
		base := filepath.Base(name)
		destPath := filepath.Join(dest, base)
		class := Classify(base)

		if i.Policy == PolicySkipExisting {
			if _, err := os.Stat(destPath); err == nil {
				log.Info("%s already present, skipping", base)
				res.Skipped++
				continue
			}
		}

		stagePath := filepath.Join(staging, base)
		if err := i.Client.Fetch(loc, name, stagePath); err != nil {
			log.Warn("fetch of '%s' failed: %v", name, err)
			res.Failed++
			continue
		}

		data, err := os.ReadFile(stagePath)
		if err != nil {
			log.Warn("staged copy of '%s' unreadable: %v", name, err)
			res.Failed++
			continue
		}

		if err := os.WriteFile(destPath, data, class.Mode()); err != nil {
			log.Warn("couldn't write '%s': %v", destPath, err)
			res.Failed++
			continue
		}
		// WriteFile's mode only applies on create; enforce on overwrite too.
		if err := os.Chmod(destPath, class.Mode()); err != nil {
			log.Warn("couldn't set mode on '%s': %v", destPath, err)
		}

		log.Info("installed %s (%s, %04o)", base, class, class.Mode())
		res.Installed++
	}

	if res.Installed == 0 && res.Skipped == 0 && len(names) > 0 {
		log.Warn("no keys installed")
	}

	return res, nil
}

// newStagingDir creates the scratch area for fetched files. The returned
// cleanup removes it, and an interrupt handler removes it on SIGINT/SIGTERM
// so key material never outlives the run.
func newStagingDir() (string, func(), error) {
	staging, err := os.MkdirTemp("", "rig-keys-")
	if err != nil {
		return "", nil, errors.WrapWithCode(err, errors.ErrKeys,
			"Couldn't create staging directory",
			"Check free space and permissions in your temp directory")
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		if _, ok := <-sig; ok {
			os.RemoveAll(staging)
			os.Exit(130)
		}
	}()

	cleanup := func() {
		signal.Stop(sig)
		close(sig)
		os.RemoveAll(staging)
	}
	return staging, cleanup, nil
}
