package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	domainErrors "github.com/thomas-vilte/issue-export/internal/errors"
)

var (
	Error = color.New(color.FgRed, color.Bold)
	Info  = color.New(color.FgCyan)
	Dim   = color.New(color.FgHiBlack)
)

// showSuggestions makes PrintError follow the error line with its suggestion.
var showSuggestions bool

// ShowSuggestions is switched on by --verbose and --debug.
func ShowSuggestions(enabled bool) {
	showSuggestions = enabled
}

// IsTerminal reports whether w writes to an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SmartSpinner only animates when its writer is a terminal, so piped
// output and tests stay clean.
type SmartSpinner struct {
	spinner *spinner.Spinner
	enabled bool
}

func NewSmartSpinner(w io.Writer, message string) *SmartSpinner {
	s := spinner.New(
		spinner.CharSets[14],
		100*time.Millisecond,
		spinner.WithColor("cyan"),
		spinner.WithSuffix(" "+message),
		spinner.WithWriter(w),
	)
	return &SmartSpinner{spinner: s, enabled: IsTerminal(w)}
}

func (s *SmartSpinner) Start() {
	if s.enabled {
		s.spinner.Start()
	}
}

func (s *SmartSpinner) Stop() {
	if s.enabled {
		s.spinner.Stop()
	}
}

func (s *SmartSpinner) Enabled() bool {
	return s.enabled
}

// WithSpinner runs fn while a spinner is shown on w and always stops it.
func WithSpinner(w io.Writer, message string, fn func() error) error {
	s := NewSmartSpinner(w, message)
	s.Start()
	defer s.Stop()
	return fn()
}

// ErrorLine renders err as the single diagnostic line printed on failure.
// Text reported by a collaborator under the detail key is kept verbatim.
func ErrorLine(err error) string {
	var appErr *domainErrors.AppError
	if !errors.As(err, &appErr) {
		return err.Error()
	}

	if detail, ok := appErr.Context[domainErrors.DetailKey].(string); ok && detail != "" {
		return fmt.Sprintf("%s: %s", appErr.Message, detail)
	}
	if appErr.Err != nil {
		return fmt.Sprintf("%s: %v", appErr.Message, appErr.Err)
	}
	return appErr.Message
}

// Suggestion returns the hint attached to an AppError, or "".
func Suggestion(err error) string {
	var appErr *domainErrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Suggestion
	}
	return ""
}

func PrintError(w io.Writer, err error) {
	_, _ = fmt.Fprintln(w, Error.Sprint(ErrorLine(err)))
	if !showSuggestions {
		return
	}
	if suggestion := Suggestion(err); suggestion != "" {
		_, _ = fmt.Fprintf(w, "%s %s\n", Info.Sprint("Try:"), suggestion)
	}
}

func PrintKeyValue(w io.Writer, key, value string) {
	_, _ = fmt.Fprintf(w, "   %s %s\n", Dim.Sprint(key+":"), value)
}
