// Package pullrequest implements the create-pr workflow: it validates invocation inputs, resolves the target
// repository and base branch, optionally publishes local files onto a head branch, opens the pull request, and
// attaches labels, assignees, and reviewers.
//
// Stages before and including pull request creation abort the run on the first failure. Enrichment after the
// pull request exists only emits warnings.
package pullrequest
