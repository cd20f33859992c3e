package utils

import "context"

const configurationFilePathContextKeyConstant = commandContextKey("configurationFilePath")

type commandContextKey string

// CommandContextAccessor stores and retrieves values shared between the root command and its subcommands.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath records the configuration file that was actually loaded.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	return withValue(parentContext, configurationFilePathContextKeyConstant, configurationFilePath)
}

// ConfigurationFilePath returns the configuration file recorded by WithConfigurationFilePath.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	return lookupValue[string](executionContext, configurationFilePathContextKeyConstant)
}

func withValue(parentContext context.Context, key commandContextKey, value any) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, key, value)
}

func lookupValue[ValueType any](executionContext context.Context, key commandContextKey) (ValueType, bool) {
	var zeroValue ValueType
	if executionContext == nil {
		return zeroValue, false
	}
	value, valueAvailable := executionContext.Value(key).(ValueType)
	if !valueAvailable {
		return zeroValue, false
	}
	return value, true
}
