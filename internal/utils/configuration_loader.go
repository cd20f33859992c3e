package utils

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strings"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	environmentKeySeparatorOldConstant              = "."
	environmentKeySeparatorNewConstant              = "_"
	listValueSeparatorConstant                      = ","
	configurationReadErrorTemplateConstant          = "failed to read configuration: %w"
	configurationUnmarshalErrorTemplateConstant     = "failed to parse configuration: %w"
	embeddedConfigurationMergeErrorTemplateConstant = "failed to merge embedded configuration: %w"
)

// ConfigurationLoader wraps Viper to merge embedded defaults, configuration files, and environment overrides.
type ConfigurationLoader struct {
	configurationName         string
	configurationType         string
	environmentPrefix         string
	searchPaths               []string
	environmentKeyReplacer    *strings.Replacer
	embeddedConfiguration     []byte
	embeddedConfigurationType string
}

// LoadedConfiguration surfaces metadata about the resolved configuration.
type LoadedConfiguration struct {
	ConfigFileUsed string
}

// NewConfigurationLoader creates a loader that searches known paths and respects an environment prefix.
func NewConfigurationLoader(configurationName string, configurationType string, environmentPrefix string, searchPaths []string) *ConfigurationLoader {
	duplicatedSearchPaths := make([]string, len(searchPaths))
	copy(duplicatedSearchPaths, searchPaths)

	return &ConfigurationLoader{
		configurationName:      configurationName,
		configurationType:      configurationType,
		environmentPrefix:      environmentPrefix,
		searchPaths:            duplicatedSearchPaths,
		environmentKeyReplacer: strings.NewReplacer(environmentKeySeparatorOldConstant, environmentKeySeparatorNewConstant),
	}
}

// SetEmbeddedConfiguration stores configuration data merged before user-provided configuration files.
func (loader *ConfigurationLoader) SetEmbeddedConfiguration(configurationData []byte, configurationType string) {
	if loader == nil {
		return
	}

	loader.embeddedConfiguration = nil
	loader.embeddedConfigurationType = strings.TrimSpace(configurationType)

	if len(configurationData) == 0 {
		return
	}

	duplicatedData := make([]byte, len(configurationData))
	copy(duplicatedData, configurationData)
	loader.embeddedConfiguration = duplicatedData
}

// LoadConfiguration populates targetConfiguration from embedded data, defaults, a configuration file, and the environment.
func (loader *ConfigurationLoader) LoadConfiguration(configurationFilePath string, defaultValues map[string]any, targetConfiguration any) (LoadedConfiguration, error) {
	viperInstance := viper.New()
	viperInstance.SetConfigName(loader.configurationName)
	viperInstance.SetConfigType(loader.configurationType)

	if len(loader.embeddedConfiguration) > 0 {
		configurationType := loader.configurationType
		if len(loader.embeddedConfigurationType) > 0 {
			configurationType = loader.embeddedConfigurationType
		}

		viperInstance.SetConfigType(configurationType)
		mergeError := viperInstance.MergeConfig(bytes.NewReader(loader.embeddedConfiguration))
		if mergeError != nil {
			return LoadedConfiguration{}, fmt.Errorf(embeddedConfigurationMergeErrorTemplateConstant, mergeError)
		}

		viperInstance.SetConfigType(loader.configurationType)
	}

	for _, searchPath := range loader.searchPaths {
		viperInstance.AddConfigPath(searchPath)
	}

	viperInstance.SetEnvPrefix(loader.environmentPrefix)
	if loader.environmentKeyReplacer != nil {
		viperInstance.SetEnvKeyReplacer(loader.environmentKeyReplacer)
	}
	viperInstance.AutomaticEnv()

	for defaultKey, defaultValue := range defaultValues {
		viperInstance.SetDefault(defaultKey, defaultValue)
	}

	trimmedConfigurationFilePath := strings.TrimSpace(configurationFilePath)
	if len(trimmedConfigurationFilePath) > 0 {
		viperInstance.SetConfigFile(trimmedConfigurationFilePath)
	}

	readError := viperInstance.MergeInConfig()
	if readError != nil {
		var notFoundError viper.ConfigFileNotFoundError
		if !errors.As(readError, &notFoundError) {
			return LoadedConfiguration{}, fmt.Errorf(configurationReadErrorTemplateConstant, readError)
		}
	}

	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		trimStringDecodeHook,
		mapstructure.StringToSliceHookFunc(listValueSeparatorConstant),
		mapstructure.StringToTimeDurationHookFunc(),
	))

	unmarshalError := viperInstance.Unmarshal(targetConfiguration, decodeHook)
	if unmarshalError != nil {
		return LoadedConfiguration{}, fmt.Errorf(configurationUnmarshalErrorTemplateConstant, unmarshalError)
	}

	return LoadedConfiguration{ConfigFileUsed: viperInstance.ConfigFileUsed()}, nil
}

// trimStringDecodeHook strips surrounding whitespace from string values sourced from files or the environment.
func trimStringDecodeHook(sourceType reflect.Type, targetType reflect.Type, value any) (any, error) {
	if sourceType.Kind() != reflect.String || targetType.Kind() != reflect.String {
		return value, nil
	}
	stringValue, isString := value.(string)
	if !isString {
		return value, nil
	}
	return strings.TrimSpace(stringValue), nil
}
