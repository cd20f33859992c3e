package pullrequest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/temirov/ghpr/internal/ui"
)

const (
	dryRunBannerConstant              = "DRY RUN - No changes will be made"
	dryRunRepositoryTemplateConstant  = "Repository: %s"
	dryRunTitleTemplateConstant       = "Title: %s"
	dryRunBodyTemplateConstant        = "Body: %s"
	dryRunBaseBranchTemplateConstant  = "Base branch: %s"
	dryRunHeadBranchTemplateConstant  = "Head branch: %s"
	dryRunDraftTemplateConstant       = "Draft: %s"
	dryRunFilesHeaderConstant         = "Files to upload:"
	dryRunFileTemplateConstant        = "  %s -> %s (%d bytes)"
	dryRunMissingFileTemplateConstant = "  %s -> %s (FILE NOT FOUND)"
	dryRunLabelsTemplateConstant      = "Labels: %s"
	dryRunAssigneesTemplateConstant   = "Assignees: %s"
	dryRunReviewersTemplateConstant   = "Reviewers: %s"
	dryRunListSeparatorConstant       = ", "
)

// dryRunReporter prints the planned pull request without calling any mutating endpoint.
type dryRunReporter struct {
	printer    *ui.DiagnosticPrinter
	fileReader *LocalFileReader
}

func (reporter dryRunReporter) report(request validatedRequest) {
	reporter.printer.Notice(dryRunBannerConstant)
	reporter.printer.Line(fmt.Sprintf(dryRunRepositoryTemplateConstant, request.repository))
	reporter.printer.Line(fmt.Sprintf(dryRunTitleTemplateConstant, request.options.Title))
	reporter.printer.Line(fmt.Sprintf(dryRunBodyTemplateConstant, request.options.Body))
	reporter.printer.Line(fmt.Sprintf(dryRunBaseBranchTemplateConstant, request.options.BaseBranch))
	reporter.printer.Line(fmt.Sprintf(dryRunHeadBranchTemplateConstant, request.options.HeadBranch))
	reporter.printer.Line(fmt.Sprintf(dryRunDraftTemplateConstant, strconv.FormatBool(request.options.Draft)))

	if !request.files.Empty() {
		reporter.printer.Line(dryRunFilesHeaderConstant)
		for _, entry := range request.files.Entries() {
			localFile, validationError := reporter.fileReader.Validate(entry.LocalPath)
			if validationError != nil {
				reporter.printer.Line(fmt.Sprintf(dryRunMissingFileTemplateConstant, entry.LocalPath, entry.RemotePath))
				continue
			}
			reporter.printer.Line(fmt.Sprintf(dryRunFileTemplateConstant, entry.LocalPath, entry.RemotePath, localFile.Size))
		}
	}

	reporter.printList(dryRunLabelsTemplateConstant, request.enrichment.Labels)
	reporter.printList(dryRunAssigneesTemplateConstant, request.enrichment.Assignees)
	reporter.printList(dryRunReviewersTemplateConstant, request.enrichment.Reviewers)
}

func (reporter dryRunReporter) printList(template string, values []string) {
	if len(values) == 0 {
		return
	}
	reporter.printer.Line(fmt.Sprintf(template, strings.Join(values, dryRunListSeparatorConstant)))
}
