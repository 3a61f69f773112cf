// Package config loads server settings from defaults, an optional YAML file
// and SCRY_-prefixed environment variables, then validates them with struct
// tags. Review weight overrides and the default username live here too, since
// the server has no per-user configuration.
package config
