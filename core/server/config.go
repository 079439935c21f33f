package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// Environment is the deployment environment (development, staging, production).
	Environment string `mapstructure:"environment" default:"development"`
	// BodyLimitBytes caps request bodies, which bounds the size of batch requests.
	BodyLimitBytes int `mapstructure:"body_limit_bytes" default:"1048576"`
	// ReadTimeoutSeconds is the maximum duration for reading a request.
	ReadTimeoutSeconds int `mapstructure:"read_timeout_seconds" default:"15"`
	// WriteTimeoutSeconds is the maximum duration for writing a response.
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" default:"60"`
}

const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// IsValidEnvironment checks if the configured environment is known.
func (c Config) IsValidEnvironment() bool {
	switch c.Environment {
	case EnvDevelopment, EnvStaging, EnvProduction:
		return true
	default:
		return false
	}
}

// IsProduction reports whether the server runs in production.
// Swagger documentation is not mounted in production.
func (c Config) IsProduction() bool {
	return c.Environment == EnvProduction
}
