package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

const (
	errorPrefixConstant           = "error:"
	warningPrefixConstant         = "warning:"
	taggedLineTemplateConstant    = "%s %s\n"
	plainLineTemplateConstant     = "%s\n"
	errorColorConstant            = "9"
	warningColorConstant          = "11"
	successColorConstant          = "10"
	noticeColorConstant           = "12"
	unexpectedErrorPrefixConstant = "Unexpected error: "
)

// DiagnosticPrinter writes severity-tagged lines for humans.
type DiagnosticPrinter struct {
	outputWriter io.Writer
	errorWriter  io.Writer
	errorStyle   lipgloss.Style
	warningStyle lipgloss.Style
	successStyle lipgloss.Style
	noticeStyle  lipgloss.Style
	writeMutex   sync.Mutex
}

// NewDiagnosticPrinter binds a printer to the provided writers; nil writers fall back to the process streams.
func NewDiagnosticPrinter(outputWriter io.Writer, errorWriter io.Writer) *DiagnosticPrinter {
	if outputWriter == nil {
		outputWriter = os.Stdout
	}
	if errorWriter == nil {
		errorWriter = os.Stderr
	}

	outputRenderer := lipgloss.NewRenderer(outputWriter)
	errorRenderer := lipgloss.NewRenderer(errorWriter)

	return &DiagnosticPrinter{
		outputWriter: outputWriter,
		errorWriter:  errorWriter,
		errorStyle:   errorRenderer.NewStyle().Foreground(lipgloss.Color(errorColorConstant)),
		warningStyle: errorRenderer.NewStyle().Foreground(lipgloss.Color(warningColorConstant)),
		successStyle: outputRenderer.NewStyle().Foreground(lipgloss.Color(successColorConstant)),
		noticeStyle:  outputRenderer.NewStyle().Foreground(lipgloss.Color(noticeColorConstant)),
	}
}

// Error prints "error: <message>" to the error stream.
func (printer *DiagnosticPrinter) Error(message string) {
	printer.write(printer.errorWriter, fmt.Sprintf(taggedLineTemplateConstant, printer.errorStyle.Render(errorPrefixConstant), message))
}

// Warning prints "warning: <message>" to the error stream.
func (printer *DiagnosticPrinter) Warning(message string) {
	printer.write(printer.errorWriter, fmt.Sprintf(taggedLineTemplateConstant, printer.warningStyle.Render(warningPrefixConstant), message))
}

// UnexpectedError prints the generic message used for failures nothing else reported.
func (printer *DiagnosticPrinter) UnexpectedError(failure error) {
	printer.Error(unexpectedErrorPrefixConstant + failure.Error())
}

// Success prints a highlighted line to the output stream.
func (printer *DiagnosticPrinter) Success(message string) {
	printer.write(printer.outputWriter, fmt.Sprintf(plainLineTemplateConstant, printer.successStyle.Render(message)))
}

// Notice prints a highlighted banner line to the output stream.
func (printer *DiagnosticPrinter) Notice(message string) {
	printer.write(printer.outputWriter, fmt.Sprintf(plainLineTemplateConstant, printer.noticeStyle.Render(message)))
}

// Line prints an unstyled line to the output stream.
func (printer *DiagnosticPrinter) Line(message string) {
	printer.write(printer.outputWriter, fmt.Sprintf(plainLineTemplateConstant, message))
}

func (printer *DiagnosticPrinter) write(writer io.Writer, text string) {
	printer.writeMutex.Lock()
	defer printer.writeMutex.Unlock()
	_, _ = io.WriteString(writer, text)
}
