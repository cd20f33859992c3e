// Package testsupport holds helpers shared by tests that replay recorded
// GitHub HTTP interactions and need throwaway App credentials.
package testsupport
