// Package config loads and aggregates application configuration.
//
// Configuration is sourced from environment variables (optionally via a .env
// file) with defaults declared as struct tags on each section's Config type.
// Each core/feature package owns its own section; this package only binds
// and unmarshals them.
package config
