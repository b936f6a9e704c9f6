package herald

import "github.com/rs/zerolog"

// Option configures a Registry.
type Option func(*registryConfig)

// registryConfig contains configuration for a registry.
type registryConfig struct {
	// logger receives dispatch traces and conflict warnings.
	logger zerolog.Logger
}

// defaultRegistryConfig returns the default configuration: diagnostics are
// discarded until a logger is injected.
func defaultRegistryConfig() registryConfig {
	return registryConfig{
		logger: zerolog.Nop(),
	}
}

// WithLogger sets the diagnostic sink for the registry. The stream carries
// no control semantics and may be redirected or discarded freely.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *registryConfig) {
		c.logger = logger
	}
}
