package share

import (
	"strings"
)

// ParseListing converts raw smbclient "ls" output into entries.
//
// A listing looks like:
//
//	  .                             D        0  Mon Sep  1 12:00:14 2025
//	  ..                            D        0  Mon Sep  1 12:00:14 2025
//	  keys                          D        0  Mon Sep  1 12:01:02 2025
//	  id_ed25519                    A      411  Tue Sep  2 09:15:44 2025
//	  id_ed25519.pub                A       98  Tue Sep  2 09:15:44 2025
//
//	          1048576 blocks of size 4096. 524288 blocks available
//
// The contract is: first token is the name, and the entry is a directory
// when the attribute column contains the D marker. Blank lines, the ./..
// pseudo-entries, and the trailing blocks summary are discarded.
func ParseListing(raw string) []Entry {
	var entries []Entry

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if isListingNoise(trimmed) {
			continue
		}

		fields := strings.Fields(trimmed)
		name := fields[0]
		if name == "." || name == ".." {
			continue
		}

		kind := EntryFile
		if len(fields) > 1 && isAttrColumn(fields[1]) && strings.Contains(fields[1], "D") {
			kind = EntryDir
		}

		entries = append(entries, Entry{Name: name, Kind: kind})
	}

	return entries
}

// isListingNoise reports whether a line is part of the listing frame rather
// than an entry: the blocks summary, smbclient status chatter, or errors
// echoed into stdout.
func isListingNoise(line string) bool {
	if strings.Contains(line, "blocks of size") || strings.Contains(line, "blocks available") {
		return true
	}
	if strings.HasPrefix(line, "NT_STATUS_") || strings.Contains(line, "NT_STATUS_") {
		return true
	}
	if strings.HasPrefix(line, "Domain=") || strings.HasPrefix(line, "OS=") {
		return true
	}
	return false
}

// isAttrColumn reports whether a token looks like the smbclient attribute
// column (letters like D, A, H, S, R, N) rather than a size. A purely
// numeric token is the size column, which means the attribute column was
// empty and the entry is a plain file.
func isAttrColumn(token string) bool {
	for _, c := range token {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return len(token) > 0
}
