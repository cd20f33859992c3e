package pullrequest

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/ghpr/internal/githubauth"
	"github.com/temirov/ghpr/internal/ui"
	"github.com/temirov/ghpr/internal/utils"
	"github.com/temirov/ghpr/internal/utils/flags"
)

const (
	commandUseConstant                      = "create-pr"
	commandShortDescriptionConstant         = "Open a pull request as a GitHub App installation"
	commandLongDescriptionConstant          = "create-pr authenticates as a GitHub App installation, optionally commits local files onto a head branch, opens a pull request, and attaches labels, assignees, and reviewers."
	commandExampleConstant                  = "  ghpr create-pr --repository OWASP/Nest --title \"Update data\" --body \"Automated update\" --head-branch feature/update --files data/nest.json:backend/data/nest.json --labels automation"
	unexpectedArgumentsErrorMessageConstant = "create-pr does not accept positional arguments"
	unexpectedErrorLogMessageConstant       = "Unexpected error creating Pull Request"
	configurationFileLogMessageConstant     = "create-pr configuration"
	configurationFileLogFieldConstant       = "config_file"
	repositoryFlagNameConstant              = "repository"
	repositoryFlagUsageConstant             = "Repository in format 'owner/repo' (e.g., 'OWASP/Nest')"
	titleFlagNameConstant                   = "title"
	titleFlagUsageConstant                  = "Pull Request title"
	bodyFlagNameConstant                    = "body"
	bodyFlagUsageConstant                   = "Pull Request description"
	baseBranchFlagNameConstant              = "base-branch"
	baseBranchFlagUsageConstant             = "Base branch for the PR"
	headBranchFlagNameConstant              = "head-branch"
	headBranchFlagUsageConstant             = "Head branch for the PR (e.g., 'feature/automated-update')"
	filesFlagNameConstant                   = "files"
	filesFlagUsageConstant                  = "Files to upload in format 'local_path:remote_path,local_path2:remote_path2'"
	labelsFlagNameConstant                  = "labels"
	labelsFlagUsageConstant                 = "Comma-separated list of labels to add to the PR"
	assigneesFlagNameConstant               = "assignees"
	assigneesFlagUsageConstant              = "Comma-separated list of assignees (GitHub usernames)"
	reviewersFlagNameConstant               = "reviewers"
	reviewersFlagUsageConstant              = "Comma-separated list of reviewers (GitHub usernames)"
	draftFlagNameConstant                   = "draft"
	draftFlagUsageConstant                  = "Create the PR as a draft"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current create-pr configuration.
type ConfigurationProvider func() Configuration

// CommandBuilder assembles the create-pr command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	SessionOpener         SessionOpener
	WorkingDirectory      string
}

type commandFlagValues struct {
	draft     bool
	execution *flags.ExecutionFlagValues
}

// Build constructs the create-pr command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	flagValues := &commandFlagValues{}

	command := &cobra.Command{
		Use:     commandUseConstant,
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Example: commandExampleConstant,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.run(command, arguments, flagValues)
		},
	}

	command.Flags().String(repositoryFlagNameConstant, "", repositoryFlagUsageConstant)
	command.Flags().String(titleFlagNameConstant, "", titleFlagUsageConstant)
	command.Flags().String(bodyFlagNameConstant, "", bodyFlagUsageConstant)
	command.Flags().String(baseBranchFlagNameConstant, defaultBranchNameConstant, baseBranchFlagUsageConstant)
	command.Flags().String(headBranchFlagNameConstant, "", headBranchFlagUsageConstant)
	command.Flags().String(filesFlagNameConstant, "", filesFlagUsageConstant)
	command.Flags().String(labelsFlagNameConstant, "", labelsFlagUsageConstant)
	command.Flags().String(assigneesFlagNameConstant, "", assigneesFlagUsageConstant)
	command.Flags().String(reviewersFlagNameConstant, "", reviewersFlagUsageConstant)
	flags.AddToggleFlag(command.Flags(), &flagValues.draft, draftFlagNameConstant, false, draftFlagUsageConstant)
	flagValues.execution = flags.BindExecutionFlags(command, flags.ExecutionDefaults{})

	for _, requiredFlagName := range []string{repositoryFlagNameConstant, titleFlagNameConstant, bodyFlagNameConstant, headBranchFlagNameConstant} {
		if markError := command.MarkFlagRequired(requiredFlagName); markError != nil {
			return nil, markError
		}
	}

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string, flagValues *commandFlagValues) error {
	if len(arguments) > 0 {
		return errors.New(unexpectedArgumentsErrorMessageConstant)
	}

	logger := builder.resolveLogger()
	if configurationFilePath, found := utils.NewCommandContextAccessor().ConfigurationFilePath(command.Context()); found {
		logger.Debug(configurationFileLogMessageConstant, zap.String(configurationFileLogFieldConstant, configurationFilePath))
	}

	options, optionsError := builder.parseOptions(command, flagValues)
	if optionsError != nil {
		return optionsError
	}

	printer := ui.NewDiagnosticPrinter(command.OutOrStdout(), command.ErrOrStderr())
	service, serviceError := NewService(ServiceDependencies{
		Logger:        logger,
		SessionOpener: builder.resolveSessionOpener(logger),
		Printer:       printer,
		FileReader:    NewLocalFileReader(builder.WorkingDirectory, nil, logger),
	})
	if serviceError != nil {
		return serviceError
	}

	_, runError := service.Run(command.Context(), options)
	if runError == nil {
		return nil
	}

	var stageError StageError
	if errors.As(runError, &stageError) {
		printer.Error(stageError.Message)
		return ui.NewReportedError(runError)
	}

	logger.Error(unexpectedErrorLogMessageConstant, zap.Error(runError))
	printer.UnexpectedError(runError)
	return ui.NewReportedError(runError)
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, flagValues *commandFlagValues) (Options, error) {
	configuration := builder.resolveConfiguration()

	stringValues := make(map[string]string)
	for _, flagName := range []string{
		repositoryFlagNameConstant,
		titleFlagNameConstant,
		bodyFlagNameConstant,
		baseBranchFlagNameConstant,
		headBranchFlagNameConstant,
		filesFlagNameConstant,
		labelsFlagNameConstant,
		assigneesFlagNameConstant,
		reviewersFlagNameConstant,
	} {
		flagValue, flagError := command.Flags().GetString(flagName)
		if flagError != nil {
			return Options{}, flagError
		}
		stringValues[flagName] = flagValue
	}

	baseBranch := configuration.PullRequest.BaseBranch
	if command.Flags().Changed(baseBranchFlagNameConstant) {
		baseBranch = stringValues[baseBranchFlagNameConstant]
	}

	return Options{
		Repository:     stringValues[repositoryFlagNameConstant],
		Title:          stringValues[titleFlagNameConstant],
		Body:           stringValues[bodyFlagNameConstant],
		BaseBranch:     baseBranch,
		HeadBranch:     stringValues[headBranchFlagNameConstant],
		BranchSource:   configuration.PullRequest.BranchSource,
		Draft:          flagValues.draft,
		Files:          stringValues[filesFlagNameConstant],
		Labels:         stringValues[labelsFlagNameConstant],
		Assignees:      stringValues[assigneesFlagNameConstant],
		Reviewers:      stringValues[reviewersFlagNameConstant],
		DryRun:         flagValues.execution.DryRun,
		Authentication: configuration.GitHub.Authentication(),
	}, nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveConfiguration() Configuration {
	configuration := DefaultConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}
	return configuration.Sanitize()
}

func (builder *CommandBuilder) resolveSessionOpener(logger *zap.Logger) SessionOpener {
	if builder.SessionOpener != nil {
		return builder.SessionOpener
	}
	return GitHubSessionOpener{Establisher: &githubauth.Establisher{Logger: logger}}
}
