// Package config defines the application configuration for the LMS backend.
package config

import (
	"github.com/skillpath-labs/lms-backend/pkg/config"
)

// AppConfig holds all configuration for the LMS backend.
type AppConfig struct {
	Common  config.CommonConfig     `yaml:"common,inline"`
	HTTP    config.HTTPServerConfig `yaml:"http,inline"`
	CORS    config.CORSConfig       `yaml:"cors,inline"`
	Metrics config.MetricsConfig    `yaml:"metrics,inline"`
	Health  HealthConfig            `yaml:"health,inline"`
	Agents  AgentsConfig            `yaml:"agents,inline"`
}

// Validate implements the config.Validator interface.
func (c AppConfig) Validate() error {
	if err := c.Common.Validate(); err != nil {
		return err
	}
	if err := c.HTTP.Validate(); err != nil {
		return err
	}
	return c.Metrics.Validate()
}
