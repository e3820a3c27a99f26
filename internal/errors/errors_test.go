package errors

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	// Verify all expected error codes exist
	codes := []string{
		ErrConfig,
		ErrShare,
		ErrKeys,
		ErrIdentity,
		ErrClone,
		ErrTools,
		ErrExec,
	}

	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
	}

	// Verify codes are unique
	seen := make(map[string]bool)
	for _, code := range codes {
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "config error",
			code:       ErrConfig,
			message:    "Invalid configuration in config.yaml",
			suggestion: "Check your configuration file syntax",
		},
		{
			name:       "share error",
			code:       ErrShare,
			message:    "Cannot connect to //nas/secrets",
			suggestion: "Check the server address and credentials",
		},
		{
			name:       "keys error",
			code:       ErrKeys,
			message:    "Key 'id_ed25519' not found on share",
			suggestion: "Run 'rig ls' to see available keys",
		},
		{
			name:       "clone error",
			code:       ErrClone,
			message:    "git clone failed with exit code 128",
			suggestion: "Check the repository URL and your SSH access",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name          string
		err           *Error
		expectedParts []string
		notExpected   []string
	}{
		{
			name: "basic error formatting",
			err:  New(ErrConfig, "Invalid configuration", "Check config.yaml syntax"),
			expectedParts: []string{
				"Invalid configuration",
				"Check config.yaml syntax",
			},
		},
		{
			name: "error with failure symbol",
			err:  New(ErrShare, "Connection failed", "Try again"),
			expectedParts: []string{
				"✗",
				"Connection failed",
			},
		},
		{
			name: "error without suggestion",
			err:  New(ErrExec, "Command failed", ""),
			expectedParts: []string{
				"Command failed",
			},
			notExpected: []string{
				"suggestion", // Should not include suggestion header if empty
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := tt.err.Error()

			for _, part := range tt.expectedParts {
				assert.Contains(t, output, part, "output should contain %q", part)
			}

			for _, part := range tt.notExpected {
				assert.NotContains(t, output, part, "output should not contain %q", part)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying network error")
	wrapped := Wrap(cause, "Share connection failed")

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrShare, wrapped.Code, "Wrap should default to ErrShare code")
	assert.Equal(t, "Share connection failed", wrapped.Message)
	assert.Equal(t, cause, wrapped.Cause)
}

func TestWrapWithCode(t *testing.T) {
	cause := errors.New("file not found")
	wrapped := WrapWithCode(cause, ErrConfig, "Failed to load config", "Run 'rig init' to create one")

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrConfig, wrapped.Code)
	assert.Equal(t, "Failed to load config", wrapped.Message)
	assert.Equal(t, "Run 'rig init' to create one", wrapped.Suggestion)
	assert.Equal(t, cause, wrapped.Cause)
}

func TestErrorWrappingPreservesCause(t *testing.T) {
	original := errors.New("original error")
	wrapped := WrapWithCode(original, ErrKeys, "Fetch failed", "")

	assert.Equal(t, original, wrapped.Cause)

	// Error message should include cause information
	errStr := wrapped.Error()
	assert.Contains(t, errStr, "original error")
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	wrapped := WrapWithCode(cause, ErrExec, "Execution failed", "")

	unwrapped := wrapped.Unwrap()
	assert.Equal(t, cause, unwrapped)
}

func TestErrorsIs(t *testing.T) {
	cause := errors.New("specific error")
	wrapped := WrapWithCode(cause, ErrShare, "Share error", "")

	assert.True(t, errors.Is(wrapped, cause))
}

func TestErrorsAs(t *testing.T) {
	wrapped := New(ErrConfig, "Config error", "Fix config")

	var rigErr *Error
	ok := errors.As(wrapped, &rigErr)

	assert.True(t, ok)
	assert.Equal(t, ErrConfig, rigErr.Code)
}

func TestIsCode(t *testing.T) {
	err := New(ErrConfig, "Config error", "")

	assert.True(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(err, ErrShare))
	assert.False(t, IsCode(errors.New("standard error"), ErrConfig))
	assert.False(t, IsCode(nil, ErrConfig))
}

func TestNewMissingCredential(t *testing.T) {
	err := NewMissingCredential("smb-pass")

	require.NotNil(t, err)
	assert.Equal(t, ErrConfig, err.Code)
	assert.Contains(t, err.Message, "smb-pass")
	assert.Contains(t, err.Suggestion, "--smb-pass")
	assert.True(t, IsCode(err, ErrConfig))
}

func TestNewShareUnreachable(t *testing.T) {
	cause := errors.New("NT_STATUS_LOGON_FAILURE")
	err := NewShareUnreachable("nas.local", "secrets", cause)

	require.NotNil(t, err)
	assert.Equal(t, ErrShare, err.Code)
	assert.Contains(t, err.Message, "//nas.local/secrets")
	assert.Equal(t, cause, err.Cause)
	assert.Contains(t, err.Error(), "NT_STATUS_LOGON_FAILURE")
}

func TestNewKeyNotFound(t *testing.T) {
	err := NewKeyNotFound("id_dsa")

	require.NotNil(t, err)
	assert.Equal(t, ErrKeys, err.Code)
	assert.Contains(t, err.Message, "id_dsa")
}

func TestErrorMessageStructure(t *testing.T) {
	// ✗ <What failed>
	//
	//   <Why it failed - technical details>
	//
	//   <How to fix it - actionable steps>

	err := WrapWithCode(
		errors.New("Connection timed out after 2s"),
		ErrShare,
		"Cannot connect to the file share",
		"Run: rig doctor",
	)

	output := err.Error()
	lines := strings.Split(output, "\n")

	// First line should have failure symbol and main message
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[0]), "✗"), "First line should start with failure symbol")
	assert.Contains(t, lines[0], "Cannot connect to the file share")
}

func TestExitError(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		wantMsg string
	}{
		{
			name:    "zero exit code",
			code:    0,
			wantMsg: "exit code 0",
		},
		{
			name:    "non-zero exit code",
			code:    1,
			wantMsg: "exit code 1",
		},
		{
			name:    "signal exit code",
			code:    137,
			wantMsg: "exit code 137",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewExitError(tt.code)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantOk   bool
	}{
		{
			name:     "ExitError returns code",
			err:      NewExitError(42),
			wantCode: 42,
			wantOk:   true,
		},
		{
			name:     "standard error returns false",
			err:      errors.New("standard error"),
			wantCode: 0,
			wantOk:   false,
		},
		{
			name:     "nil error returns false",
			err:      nil,
			wantCode: 0,
			wantOk:   false,
		},
		{
			name:     "structured Error returns false",
			err:      New(ErrExec, "test", ""),
			wantCode: 0,
			wantOk:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := GetExitCode(tt.err)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}
