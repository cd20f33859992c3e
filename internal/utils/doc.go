// Package utils exposes reusable helpers consumed by the CLI commands.
//
// ConfigurationLoader merges the embedded defaults, an optional configuration
// file and GHPR_* environment variables through Viper. LoggerFactory builds zap
// loggers for the structured and console formats.
package utils
