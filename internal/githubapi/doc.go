// Package githubapi adapts the go-github REST client to the handful of
// operations needed to open a pull request: repository and branch lookup,
// branch reference creation, file content lookup/create/update, pull request
// creation and label/assignee/reviewer mutations.
//
// Every failing call is reported as an OperationError carrying the HTTP status
// code and the message returned by GitHub.
package githubapi
