// Package githubcli asks the GitHub CLI for credentials it already holds.
package githubcli
