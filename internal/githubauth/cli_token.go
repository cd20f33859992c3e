package githubauth

import (
	"context"

	"go.uber.org/zap"

	"github.com/temirov/ghpr/internal/execshell"
	"github.com/temirov/ghpr/internal/githubcli"
)

// lazyCLITokenProvider builds the gh client only when a "gh:" source is resolved.
type lazyCLITokenProvider struct {
	logger *zap.Logger
}

func (provider lazyCLITokenProvider) AuthToken(executionContext context.Context, hostname string) (string, error) {
	executor, executorError := execshell.NewShellExecutor(provider.logger, execshell.NewOSCommandRunner())
	if executorError != nil {
		return "", executorError
	}
	client, clientError := githubcli.NewClient(executor)
	if clientError != nil {
		return "", clientError
	}
	return client.AuthToken(executionContext, hostname)
}
