package config

// Config holds all session configuration values.
// Defaults are set in DefaultConfig() and can be overridden via the project file.
// NOTE: Values in the project file override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Project ProjectConfig `mapstructure:"project" yaml:"project"`
	Shell   ShellConfig   `mapstructure:"shell" yaml:"shell"`
	Tests   TestsConfig   `mapstructure:"tests" yaml:"tests"`
	Tools   ToolsConfig   `mapstructure:"tools" yaml:"tools"`
	Git     GitConfig     `mapstructure:"git" yaml:"git"`
	LLM     LLMConfig     `mapstructure:"llm" yaml:"llm"`
}

type ProjectConfig struct {
	// Language drives test command detection and file naming for drafted code.
	// Empty means autodetect from marker files in the project root.
	Language string `mapstructure:"language" yaml:"language,omitempty"`
}

type ShellConfig struct {
	// AllowedCommands lists executables (or argv prefixes such as "npm test")
	// that may run. Empty means nothing runs.
	AllowedCommands []string `mapstructure:"allowed_commands" yaml:"allowed_commands"`
	DeniedCommands  []string `mapstructure:"denied_commands" yaml:"denied_commands,omitempty"`
	// EnvFiles are dotenv files, relative to the project root, loaded into
	// the environment of every shell command and test run.
	EnvFiles []string `mapstructure:"env_files" yaml:"env_files,omitempty"`

	TimeoutSeconds     int   `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`           // Default: 120
	MaxOutputBytes     int64 `mapstructure:"max_output_bytes" yaml:"max_output_bytes"`         // Default: 1MB
	GracefulShutdownMs int   `mapstructure:"graceful_shutdown_ms" yaml:"graceful_shutdown_ms"` // Default: 2000
}

type TestsConfig struct {
	Command string `mapstructure:"command" yaml:"command,omitempty"`
	// Linters run, in order, before Command on every verify. Each entry
	// must pass the shell policy like any other command.
	Linters        []string `mapstructure:"linters" yaml:"linters,omitempty"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds" yaml:"timeout_seconds,omitempty"` // 0 means shell.timeout_seconds
}

type ToolsConfig struct {
	MaxFileSize    int64 `mapstructure:"max_file_size" yaml:"max_file_size"`       // Default: 1MB
	MaxListResults int   `mapstructure:"max_list_results" yaml:"max_list_results"` // Default: 5000
}

type GitConfig struct {
	AuthorName  string `mapstructure:"author_name" yaml:"author_name"`
	AuthorEmail string `mapstructure:"author_email" yaml:"author_email"`
}

type LLMConfig struct {
	Model            string `mapstructure:"model" yaml:"model"`
	UseModelResolver bool   `mapstructure:"use_model_resolver" yaml:"use_model_resolver"`
	MaxOutputTokens  int32  `mapstructure:"max_output_tokens" yaml:"max_output_tokens"` // Default: 8192
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Shell: ShellConfig{
			AllowedCommands:    []string{},
			TimeoutSeconds:     120,
			MaxOutputBytes:     1024 * 1024,
			GracefulShutdownMs: 2000,
		},
		Tools: ToolsConfig{
			MaxFileSize:    1024 * 1024,
			MaxListResults: 5000,
		},
		Git: GitConfig{
			AuthorName:  "codeagent",
			AuthorEmail: "codeagent@localhost",
		},
		LLM: LLMConfig{
			Model:           "gemini-2.5-flash",
			MaxOutputTokens: 8192,
		},
	}
}
