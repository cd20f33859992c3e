// Package githubauth establishes authenticated GitHub API sessions.
//
// The primary mode authenticates as a GitHub App installation: the App private
// key signs a JWT which is exchanged for a short-lived installation token before
// any repository call is made. When no App credentials are configured a static
// token from a configured source or the GH_TOKEN family of variables is used.
package githubauth
