// Package keys implements selection and installation of SSH key material
// fetched from a remote share into the local keystore.
package keys

import (
	"github.com/rileyhilliard/rig/internal/errors"
	"github.com/rileyhilliard/rig/internal/logger"
	"github.com/rileyhilliard/rig/internal/prompt"
	"github.com/rileyhilliard/rig/internal/share"
	"github.com/rileyhilliard/rig/internal/util"
)

// AllToken is the literal --keys value meaning "every listed file".
const AllToken = "all"

// Select resolves which of the listed files to fetch.
//
// requested is the raw --keys value: a CSV include-list, the "all" token,
// or empty. Empty means ask the prompt source, which for scripted runs
// returns everything (implicit all). Requested names not present in the
// listing are warned about and skipped; the batch continues. Order follows
// the request, and caller-specified duplicates are kept.
func Select(entries []share.Entry, requested string, src prompt.Source, log logger.Logger) ([]string, error) {
	if log == nil {
		log = logger.Noop()
	}

	available := share.FileNames(entries)

	if requested == AllToken {
		return available, nil
	}

	if requested == "" {
		return src.MultiSelect("Select keys to install", available)
	}

	listed := make(map[string]bool, len(available))
	for _, name := range available {
		listed[name] = true
	}

	var selected []string
	for _, name := range util.SplitCSV(requested) {
		if !listed[name] {
			log.Warn("%s", errors.NewKeyNotFound(name).Message)
			continue
		}
		selected = append(selected, name)
	}
	return selected, nil
}
