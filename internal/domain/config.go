package domain

// Config represents the forge configuration from plan/forge.toml.
// Secrets are never stored here; they come from the environment.
type Config struct {
	Engine    EngineConfig    `toml:"engine"`
	Registrar RegistrarConfig `toml:"registrar"`
	Publish   PublishConfig   `toml:"publish"`
	Relay     RelayConfig     `toml:"relay"`
	Log       LogConfig       `toml:"log"`

	// Warnings is populated by the loader for suspect values, never
	// read from the file.
	Warnings []string `toml:"-"`
}

// EngineConfig holds generation settings from [engine].
type EngineConfig struct {
	Solution string `toml:"solution"` // Aggregation descriptor path
}

// RegistrarConfig holds registration tool settings from [registrar].
type RegistrarConfig struct {
	Program string `toml:"program"` // External registration tool
}

// PublishConfig holds commit/push settings from [publish].
type PublishConfig struct {
	Remote string `toml:"remote"` // Remote the feature branch is pushed to
}

// RelayConfig holds webhook relay settings from [relay].
type RelayConfig struct {
	Addr  string `toml:"addr"`  // Listen address
	API   string `toml:"api"`   // Dispatch API base URL
	Owner string `toml:"owner"` // Dispatch repository owner
	Repo  string `toml:"repo"`  // Dispatch repository name
}

// LogConfig holds logging settings from [log].
type LogConfig struct {
	Level string `toml:"level"` // Log level: debug, info, warn, error
}

// NewDefaultConfig returns the configuration used when plan/forge.toml is
// absent or leaves fields unset.
func NewDefaultConfig() *Config {
	return &Config{
		Engine:    EngineConfig{Solution: DefaultSolution},
		Registrar: RegistrarConfig{Program: "dotnet"},
		Publish:   PublishConfig{Remote: "origin"},
		Relay: RelayConfig{
			Addr: ":8418",
			API:  "https://api.github.com",
		},
		Log: LogConfig{Level: "info"},
	}
}

// DispatchURL returns the repository-dispatch endpoint, or "" when the
// target repository is not configured.
func (c *RelayConfig) DispatchURL() string {
	if c.Owner == "" || c.Repo == "" {
		return ""
	}
	return c.API + "/repos/" + c.Owner + "/" + c.Repo + "/dispatches"
}
