// Package config loads, merges and validates the osteo-vault configuration.
//
// Sources, lowest priority first:
//  1. built-in defaults
//  2. JSON or YAML config file (path from CONFIG or -c/-config)
//  3. environment variables
//  4. command-line flags
//
// The main entry point is [GetStructuredConfig].
package config
