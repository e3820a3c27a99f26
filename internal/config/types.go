package config

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Existing-file policies for key installation.
const (
	OnExistingSkip      = "skip"
	OnExistingOverwrite = "overwrite"
)

// SMB client selection values.
const (
	SMBClientAuto      = "auto"
	SMBClientSmbclient = "smbclient"
	SMBClientNative    = "native"
)

// Config represents the complete rig configuration file.
type Config struct {
	Version int         `yaml:"version" mapstructure:"version"`
	SMB     SMBConfig   `yaml:"smb" mapstructure:"smb"`
	Keys    KeysConfig  `yaml:"keys" mapstructure:"keys"`
	Git     GitConfig   `yaml:"git" mapstructure:"git"`
	Tools   ToolsConfig `yaml:"tools" mapstructure:"tools"`
}

// SMBConfig identifies the share holding key material and how to reach it.
// The password is deliberately absent: it arrives via flag or prompt and
// never touches persistent storage.
type SMBConfig struct {
	// Server is the SMB host or IP.
	Server string `yaml:"server" mapstructure:"server"`

	// Share is the share name on the server.
	Share string `yaml:"share" mapstructure:"share"`

	// Path is the directory below the share root holding the keys,
	// forward-slash separated. Empty means the share root.
	Path string `yaml:"path" mapstructure:"path"`

	// User is the share username.
	User string `yaml:"user" mapstructure:"user"`

	// Client selects the transport: "auto", "smbclient", or "native".
	// Auto prefers the smbclient binary and falls back to native.
	Client string `yaml:"client" mapstructure:"client"`
}

// KeysConfig controls where fetched keys land and what happens when a
// destination file already exists.
type KeysConfig struct {
	// Dest is the keystore directory. Supports a leading ~.
	Dest string `yaml:"dest" mapstructure:"dest"`

	// OnExisting is "skip" (idempotent, default) or "overwrite".
	OnExisting string `yaml:"on_existing" mapstructure:"on_existing"`
}

// GitConfig controls the identity probe and repository cloning.
type GitConfig struct {
	// Host is the SSH host of the git service (e.g. github.com).
	Host string `yaml:"host" mapstructure:"host"`

	// API is the REST base URL for repository listing.
	API string `yaml:"api" mapstructure:"api"`

	// CloneDir is where repositories are cloned. Supports a leading ~.
	CloneDir string `yaml:"clone_dir" mapstructure:"clone_dir"`

	// Include restricts cloning to these repo names when non-empty.
	Include []string `yaml:"include" mapstructure:"include"`
}

// ToolsConfig controls prerequisite tooling during bootstrap.
type ToolsConfig struct {
	// Install makes bootstrap install missing tools instead of only
	// reporting them.
	Install bool `yaml:"install" mapstructure:"install"`

	// Extra are additional binaries to check beyond the core set.
	Extra []string `yaml:"extra" mapstructure:"extra"`

	// AsdfPlugins are asdf plugins to add after asdf itself is present.
	AsdfPlugins []string `yaml:"asdf_plugins" mapstructure:"asdf_plugins"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		SMB: SMBConfig{
			Client: SMBClientAuto,
		},
		Keys: KeysConfig{
			Dest:       "~/.ssh",
			OnExisting: OnExistingSkip,
		},
		Git: GitConfig{
			Host:     "github.com",
			API:      "https://api.github.com",
			CloneDir: "~/src",
		},
		Tools: ToolsConfig{
			Install:     false,
			Extra:       []string{"zoxide"},
			AsdfPlugins: []string{"nodejs", "python"},
		},
	}
}
