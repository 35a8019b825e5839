package config

// CORSConfig holds cross-origin resource sharing settings for the HTTP API.
// The frontend is served from a different origin, so CORS is enabled by default.
type CORSConfig struct {
	// AllowedOrigins is the list of origins allowed to call the API
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" yaml:"cors_allowed_origins" default:"https://*,http://*"`

	// AllowedMethods is the list of HTTP methods allowed cross-origin
	AllowedMethods []string `env:"CORS_ALLOWED_METHODS" yaml:"cors_allowed_methods" default:"GET,POST,OPTIONS"`

	// AllowedHeaders is the list of request headers allowed cross-origin
	AllowedHeaders []string `env:"CORS_ALLOWED_HEADERS" yaml:"cors_allowed_headers" default:"Origin,Content-Type,Authorization"`

	// MaxAgeSeconds is how long preflight results may be cached by clients
	MaxAgeSeconds int `env:"CORS_MAX_AGE_SECONDS" yaml:"cors_max_age_seconds" default:"300"`
}
