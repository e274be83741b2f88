// Package config loads and validates the service's YAML configuration and
// supports hot reload of the file via fsnotify. Secrets (webhook URLs) are
// resolved from environment variables, never stored in the file itself.
package config
