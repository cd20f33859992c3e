package pullrequest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/ghpr/internal/ui"
)

const (
	labelsFailureTemplateConstant     = "Failed to add labels: %v"
	assigneesFailureTemplateConstant  = "Failed to add assignees: %v"
	reviewersFailureTemplateConstant  = "Failed to add reviewers: %v"
	labelsAddedMessageConstant        = "Added labels"
	assigneesAddedMessageConstant     = "Added assignees"
	reviewersAddedMessageConstant     = "Added reviewers"
	labelsLogFieldConstant            = "labels"
	assigneesLogFieldConstant         = "assignees"
	reviewersLogFieldConstant         = "reviewers"
	pullRequestNumberLogFieldConstant = "pull_request_number"
)

// Enrichment lists what to attach to a created pull request.
type Enrichment struct {
	Labels    []string
	Assignees []string
	Reviewers []string
}

type enrichmentStep struct {
	values          []string
	apply           func(context.Context, []string) error
	failureTemplate string
	successMessage  string
	logField        string
}

// PullRequestEnricher attaches labels, assignees, and reviewers. Failures become warnings.
type PullRequestEnricher struct {
	printer *ui.DiagnosticPrinter
	logger  *zap.Logger
}

// NewPullRequestEnricher constructs a PullRequestEnricher.
func NewPullRequestEnricher(printer *ui.DiagnosticPrinter, logger *zap.Logger) *PullRequestEnricher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PullRequestEnricher{printer: printer, logger: logger}
}

// Enrich applies labels, then assignees, then reviewers, skipping empty lists. It returns the warnings emitted.
func (enricher *PullRequestEnricher) Enrich(executionContext context.Context, pullRequest PullRequest, enrichment Enrichment) []string {
	steps := []enrichmentStep{
		{values: enrichment.Labels, apply: pullRequest.AddLabels, failureTemplate: labelsFailureTemplateConstant, successMessage: labelsAddedMessageConstant, logField: labelsLogFieldConstant},
		{values: enrichment.Assignees, apply: pullRequest.AddAssignees, failureTemplate: assigneesFailureTemplateConstant, successMessage: assigneesAddedMessageConstant, logField: assigneesLogFieldConstant},
		{values: enrichment.Reviewers, apply: pullRequest.RequestReviewers, failureTemplate: reviewersFailureTemplateConstant, successMessage: reviewersAddedMessageConstant, logField: reviewersLogFieldConstant},
	}

	warnings := make([]string, 0)
	for _, step := range steps {
		if len(step.values) == 0 {
			continue
		}
		if applyError := step.apply(executionContext, step.values); applyError != nil {
			warning := fmt.Sprintf(step.failureTemplate, applyError)
			warnings = append(warnings, warning)
			enricher.logger.Warn(warning, zap.Int(pullRequestNumberLogFieldConstant, pullRequest.Number()), zap.Error(applyError))
			if enricher.printer != nil {
				enricher.printer.Warning(warning)
			}
			continue
		}
		enricher.logger.Info(step.successMessage, zap.Int(pullRequestNumberLogFieldConstant, pullRequest.Number()), zap.Strings(step.logField, step.values))
	}
	return warnings
}
