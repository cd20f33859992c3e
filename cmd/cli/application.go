package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/ghpr/internal/pullrequest"
	"github.com/temirov/ghpr/internal/utils"
	"github.com/temirov/ghpr/internal/utils/flags"
)

const (
	applicationNameConstant                 = "ghpr"
	applicationShortDescriptionConstant     = "Open GitHub pull requests as a GitHub App installation"
	applicationLongDescriptionConstant      = "ghpr authenticates as a GitHub App installation and opens pull requests, optionally committing local files onto the head branch first."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	environmentPrefixConstant               = "GHPR"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	commandBuildErrorTemplateConstant       = "unable to build %s command: %w"
	rootCommandDebugMessageConstant         = "ghpr invoked without a subcommand"
	logFieldArgumentsConstant               = "arguments"
	defaultConfigurationSearchPathConstant  = "."
	createPullRequestCommandNameConstant    = "create-pr"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common      ApplicationCommonConfiguration       `mapstructure:"common"`
	GitHub      pullrequest.GitHubConfiguration      `mapstructure:"github"`
	PullRequest pullrequest.PullRequestConfiguration `mapstructure:"pull_request"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	commandContextAccessor utils.CommandContextAccessor
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() (*Application, error) {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant},
	)
	embeddedData, embeddedType := EmbeddedDefaultConfiguration()
	configurationLoader.SetEmbeddedConfiguration(embeddedData, embeddedType)

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			application.logger.Debug(rootCommandDebugMessageConstant, zap.Strings(logFieldArgumentsConstant, arguments))
			return command.Help()
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(
		&application.logLevelFlagValue,
		logLevelFlagNameConstant,
		"",
		flags.FormatChoiceUsage(string(utils.LogLevelError), utils.SupportedLogLevels(), logLevelFlagUsageConstant),
	)
	cobraCommand.PersistentFlags().StringVar(
		&application.logFormatFlagValue,
		logFormatFlagNameConstant,
		"",
		flags.FormatChoiceUsage(string(utils.LogFormatConsole), utils.SupportedLogFormats(), logFormatFlagUsageConstant),
	)

	createPullRequestBuilder := pullrequest.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		ConfigurationProvider: func() pullrequest.Configuration {
			return pullrequest.Configuration{
				GitHub:      application.configuration.GitHub,
				PullRequest: application.configuration.PullRequest,
			}
		},
	}
	if workingDirectory, workingDirectoryError := os.Getwd(); workingDirectoryError == nil {
		createPullRequestBuilder.WorkingDirectory = workingDirectory
	}
	createPullRequestCommand, createPullRequestBuildError := createPullRequestBuilder.Build()
	if createPullRequestBuildError != nil {
		return nil, fmt.Errorf(commandBuildErrorTemplateConstant, createPullRequestCommandNameConstant, createPullRequestBuildError)
	}
	cobraCommand.AddCommand(createPullRequestCommand)

	application.rootCommand = cobraCommand

	return application, nil
}

// Command exposes the root command so callers can set arguments and output streams.
func (application *Application) Command() *cobra.Command {
	return application.rootCommand
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil && executionError == nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	application, applicationError := NewApplication()
	if applicationError != nil {
		return applicationError
	}
	return application.Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelError),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatConsole),
	}
	for configurationKey, configurationValue := range pullrequest.DefaultConfigurationValues() {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}
	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		normalizedLevel, levelError := flags.NormalizeChoice(logLevelFlagNameConstant, application.logLevelFlagValue, utils.SupportedLogLevels())
		if levelError != nil {
			return levelError
		}
		if len(normalizedLevel) > 0 {
			application.configuration.Common.LogLevel = normalizedLevel
		}
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		normalizedFormat, formatError := flags.NormalizeChoice(logFormatFlagNameConstant, application.logFormatFlagValue, utils.SupportedLogFormats())
		if formatError != nil {
			return formatError
		}
		if len(normalizedFormat) > 0 {
			application.configuration.Common.LogFormat = normalizedFormat
		}
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}
	application.logger = logger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
		)
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}
		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
