package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitCSV(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "simple list",
			input: "a,b,c",
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "whitespace trimmed",
			input: " id_ed25519 , id_ed25519.pub ",
			want:  []string{"id_ed25519", "id_ed25519.pub"},
		},
		{
			name:  "empty items dropped",
			input: "a,,b,",
			want:  []string{"a", "b"},
		},
		{
			name:  "duplicates preserved",
			input: "a,a,b",
			want:  []string{"a", "a", "b"},
		},
		{
			name:  "empty string",
			input: "",
			want:  nil,
		},
		{
			name:  "only whitespace",
			input: "   ",
			want:  nil,
		},
		{
			name:  "single item",
			input: "id_rsa",
			want:  []string{"id_rsa"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitCSV(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJoinOrNone(t *testing.T) {
	assert.Equal(t, "(none)", JoinOrNone(nil))
	assert.Equal(t, "(none)", JoinOrNone([]string{}))
	assert.Equal(t, "a", JoinOrNone([]string{"a"}))
	assert.Equal(t, "a, b", JoinOrNone([]string{"a", "b"}))
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "key", Pluralize(1, "key", "keys"))
	assert.Equal(t, "keys", Pluralize(0, "key", "keys"))
	assert.Equal(t, "keys", Pluralize(2, "key", "keys"))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "tilde slash",
			input: "~/.ssh",
			want:  filepath.Join(home, ".ssh"),
		},
		{
			name:  "bare tilde",
			input: "~",
			want:  home,
		},
		{
			name:  "absolute path unchanged",
			input: "/etc/ssh",
			want:  "/etc/ssh",
		},
		{
			name:  "relative path unchanged",
			input: "keys/ssh",
			want:  "keys/ssh",
		},
		{
			name:  "tilde in middle unchanged",
			input: "/data/~backup",
			want:  "/data/~backup",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.input))
		})
	}
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain string",
			input: "nodejs",
			want:  "'nodejs'",
		},
		{
			name:  "string with spaces",
			input: "my plugin",
			want:  "'my plugin'",
		},
		{
			name:  "string with single quote",
			input: "it's",
			want:  "'it'\\''s'",
		},
		{
			name:  "empty string",
			input: "",
			want:  "''",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShellQuote(tt.input))
		})
	}
}
