package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
	Practice PracticeConfig `mapstructure:"practice" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL          string `mapstructure:"url" validate:"required,url"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gt=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lt=44640"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0,lt=525600"`
	BCryptCost                  int    `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
	// CredentialEncryptionKey seals users' stored model API keys at rest.
	CredentialEncryptionKey string `mapstructure:"credential_encryption_key" validate:"required,min=32"`
}

// LLMConfig contains settings for the hosted text-generation model.
// There is deliberately no API key here: each request uses the calling user's key.
type LLMConfig struct {
	ModelName string `mapstructure:"model_name" validate:"required"`
	// PromptTemplatePath optionally overrides the built-in prompt template.
	PromptTemplatePath    string `mapstructure:"prompt_template_path"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" validate:"gte=0"`
}

// PracticeConfig contains settings for in-memory practice sessions.
type PracticeConfig struct {
	SessionTTLMinutes  int `mapstructure:"session_ttl_minutes" validate:"required,gt=0"`
	MaxSessionsPerUser int `mapstructure:"max_sessions_per_user" validate:"gte=0"`
}
