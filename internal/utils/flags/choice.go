package flags

import (
	"fmt"
	"strings"
)

const (
	choicePlaceholderPrefix    = "<"
	choicePlaceholderSuffix    = ">"
	choiceSeparatorLiteral     = "|"
	choiceUsageEmptyTemplate   = "`%s`"
	choiceUsageFullTemplate    = "`%s` %s"
	choiceInvalidValueTemplate = "unsupported value %q for --%s (expected one of %s)"
)

// FormatChoiceUsage builds a usage string where the default option is capitalized inside a placeholder.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	placeholder := buildChoicePlaceholder(defaultChoice, choices)
	if len(strings.TrimSpace(description)) == 0 {
		return fmt.Sprintf(choiceUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(choiceUsageFullTemplate, placeholder, description)
}

// NormalizeChoice returns the canonical spelling of value among choices, matching case-insensitively.
// An empty value is accepted and returned as is so callers can fall back to configuration.
func NormalizeChoice(flagName string, value string, choices []string) (string, error) {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return "", nil
	}

	for _, choice := range choices {
		trimmedChoice := strings.TrimSpace(choice)
		if strings.EqualFold(trimmedChoice, trimmedValue) {
			return trimmedChoice, nil
		}
	}

	return "", fmt.Errorf(choiceInvalidValueTemplate, value, flagName, strings.Join(choices, ", "))
}

func buildChoicePlaceholder(defaultChoice string, choices []string) string {
	highlightedChoices := highlightDefaultChoice(defaultChoice, choices)
	return choicePlaceholderPrefix + strings.Join(highlightedChoices, choiceSeparatorLiteral) + choicePlaceholderSuffix
}

func highlightDefaultChoice(defaultChoice string, choices []string) []string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	highlighted := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))

	for _, choice := range choices {
		trimmedChoice := strings.TrimSpace(choice)
		if len(trimmedChoice) == 0 {
			continue
		}

		normalizedChoice := strings.ToLower(trimmedChoice)
		if _, exists := seen[normalizedChoice]; exists {
			continue
		}

		displayValue := trimmedChoice
		if normalizedChoice == normalizedDefault && len(normalizedChoice) > 0 {
			displayValue = strings.ToUpper(trimmedChoice)
		}

		highlighted = append(highlighted, displayValue)
		seen[normalizedChoice] = struct{}{}
	}

	return highlighted
}
