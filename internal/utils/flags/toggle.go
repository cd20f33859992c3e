package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const (
	toggleTrueCanonicalValue               = "true"
	toggleFalseCanonicalValue              = "false"
	toggleTypeNameConstant                 = "bool"
	toggleParseErrorTemplate               = "invalid toggle value %q"
	toggleArgumentTruePlaceholderConstant  = "<YES|no>"
	toggleArgumentFalsePlaceholderConstant = "<yes|NO>"
)

var toggleLiteralValues = map[string]bool{
	"true":  true,
	"yes":   true,
	"on":    true,
	"1":     true,
	"t":     true,
	"y":     true,
	"false": false,
	"no":    false,
	"off":   false,
	"0":     false,
	"f":     false,
	"n":     false,
}

// AddToggleFlag registers a boolean flag that also accepts yes/no style values through --name=value.
func AddToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	if flagSet == nil || len(name) == 0 {
		return
	}

	flagSet.Var(newToggleFlagValue(defaultValue, target), name, usage)

	flag := flagSet.Lookup(name)
	if flag == nil {
		return
	}
	flag.NoOptDefVal = toggleTrueCanonicalValue
	flag.Usage = formatToggleUsage(usage, defaultValue)
}

func formatToggleUsage(description string, defaultValue bool) string {
	placeholder := toggleArgumentFalsePlaceholderConstant
	if defaultValue {
		placeholder = toggleArgumentTruePlaceholderConstant
	}
	trimmed := strings.TrimSpace(description)
	if len(trimmed) == 0 {
		return fmt.Sprintf(choiceUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(choiceUsageFullTemplate, placeholder, trimmed)
}

type toggleFlagValue struct {
	target *bool
}

func newToggleFlagValue(defaultValue bool, target *bool) *toggleFlagValue {
	if target == nil {
		target = new(bool)
	}
	*target = defaultValue
	return &toggleFlagValue{target: target}
}

func (value *toggleFlagValue) Set(rawValue string) error {
	trimmedValue := strings.ToLower(strings.TrimSpace(rawValue))
	if len(trimmedValue) == 0 {
		trimmedValue = toggleTrueCanonicalValue
	}

	parsedValue, known := toggleLiteralValues[trimmedValue]
	if !known {
		return fmt.Errorf(toggleParseErrorTemplate, rawValue)
	}

	*value.target = parsedValue
	return nil
}

func (value *toggleFlagValue) String() string {
	if value == nil || value.target == nil || !*value.target {
		return toggleFalseCanonicalValue
	}
	return toggleTrueCanonicalValue
}

func (value *toggleFlagValue) Type() string {
	return toggleTypeNameConstant
}
