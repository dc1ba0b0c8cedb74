// Package config loads and validates the saturn tool configuration.
//
// Configuration comes from a YAML file with defaults applied for omitted
// fields; SATURN_* environment variables override file values when loaded
// through LoadWithEnvOverrides.
package config
