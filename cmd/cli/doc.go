// Package cli constructs the ghpr command-line interface. It wires the Cobra
// root command, loads layered configuration through Viper, builds the zap
// logger, and registers the create-pr command.
package cli
