// Package gitrepo discovers a user's hosted repositories and clones them
// into the local source directory.
package gitrepo

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/rig/internal/errors"
	"github.com/rileyhilliard/rig/internal/logger"
	"github.com/rileyhilliard/rig/internal/util"
)

// FindGit locates the git binary on the local system.
// Returns the full path to git or an error if not found.
func FindGit() (string, error) {
	path, err := exec.LookPath("git")
	if err != nil {
		return "", errors.New(errors.ErrClone,
			"git isn't installed locally",
			"Grab it with: brew install git (macOS) or apt install git (Linux)")
	}
	return path, nil
}

// Cloner clones repositories over SSH into a destination directory.
type Cloner struct {
	Bin      string // path to the git binary
	Host     string // SSH host for clone URLs, e.g. "github.com"
	CloneDir string // destination directory, e.g. "~/src"
	Log      logger.Logger
}

// CloneResult summarizes a clone pass over multiple repositories.
type CloneResult struct {
	Cloned  []string
	Updated []string
	Failed  []string
}

// CloneAll clones each repository, pulling instead when a clone already
// exists. Individual failures are warned and skipped so one bad repo
// doesn't strand the rest.
func (c *Cloner) CloneAll(names []string) CloneResult {
	log := c.Log
	if log == nil {
		log = logger.Noop()
	}

	dest := util.ExpandHome(c.CloneDir)
	var result CloneResult

	for _, name := range names {
		target := filepath.Join(dest, repoDirName(name))
		var err error
		if isGitCheckout(target) {
			err = c.pull(target)
			if err == nil {
				result.Updated = append(result.Updated, name)
				log.Info("updated %s", name)
				continue
			}
		} else {
			err = c.clone(name, target)
			if err == nil {
				result.Cloned = append(result.Cloned, name)
				log.Info("cloned %s", name)
				continue
			}
		}
		result.Failed = append(result.Failed, name)
		log.Warn("%v", err)
	}

	return result
}

func (c *Cloner) clone(name, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.WrapWithCode(err, errors.ErrClone,
			fmt.Sprintf("Can't create clone directory for '%s'", name),
			"Check permissions on "+c.CloneDir)
	}

	url := fmt.Sprintf("git@%s:%s.git", c.Host, name)
	cmd := exec.Command(c.Bin, "clone", url, target)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return classifyGitError(err, string(out), name)
	}
	return nil
}

func (c *Cloner) pull(target string) error {
	cmd := exec.Command(c.Bin, "-C", target, "pull", "--ff-only")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return classifyGitError(err, string(out), filepath.Base(target))
	}
	return nil
}

// repoDirName maps "owner/repo" to the local directory name "repo".
func repoDirName(name string) string {
	if idx := strings.LastIndex(name, "/"); idx != -1 {
		return name[idx+1:]
	}
	return name
}

// isGitCheckout reports whether target already holds a git working copy.
func isGitCheckout(target string) bool {
	info, err := os.Stat(filepath.Join(target, ".git"))
	return err == nil && info.IsDir()
}

// classifyGitError maps git's output to an actionable error. Git prints
// its diagnostics to stderr with stable phrasing across versions.
func classifyGitError(err error, output, name string) error {
	var msg, suggestion string

	switch {
	case strings.Contains(output, "Permission denied (publickey)"):
		msg = fmt.Sprintf("SSH authentication failed while cloning '%s'", name)
		suggestion = "Make sure your key is installed and registered: rig identity"
	case strings.Contains(output, "Could not resolve hostname"):
		msg = fmt.Sprintf("Can't resolve the git host while cloning '%s'", name)
		suggestion = "Check your network connection and the git host setting"
	case strings.Contains(output, "Repository not found") || strings.Contains(output, "does not exist"):
		msg = fmt.Sprintf("Repository '%s' wasn't found on the remote", name)
		suggestion = "Check the repository name and your access to it"
	case strings.Contains(output, "already exists and is not an empty directory"):
		msg = fmt.Sprintf("Destination for '%s' exists but isn't a git checkout", name)
		suggestion = "Move the directory aside and run the clone again"
	case strings.Contains(output, "Not possible to fast-forward"):
		msg = fmt.Sprintf("Local checkout of '%s' has diverged from the remote", name)
		suggestion = "Resolve the divergence manually, then pull again"
	default:
		msg = fmt.Sprintf("git failed for '%s'", name)
		suggestion = "Run the git command manually to diagnose"
	}

	return errors.WrapWithCode(err, errors.ErrClone, msg, suggestion)
}

// FilterRepos keeps only the repositories whose short name appears in the
// include list. An empty include list keeps everything.
func FilterRepos(names, include []string) []string {
	if len(include) == 0 {
		return names
	}

	allowed := make(map[string]bool, len(include))
	for _, name := range include {
		allowed[name] = true
	}

	var kept []string
	for _, name := range names {
		if allowed[repoDirName(name)] || allowed[name] {
			kept = append(kept, name)
		}
	}
	return kept
}
