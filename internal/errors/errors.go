package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeResolution    ErrorType = "RESOLUTION"
	TypeSource        ErrorType = "SOURCE"
	TypeWrite         ErrorType = "WRITE"
	TypeConfiguration ErrorType = "CONFIGURATION"
)

// DetailKey is the context key holding diagnostic text reported by a collaborator
// (remote API message, CLI stderr), appended verbatim to Error().
const DetailKey = "detail"

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if detail, ok := e.Context[DetailKey].(string); ok && detail != "" {
			msg += fmt.Sprintf(" - %s", detail)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any AppError derived from the same sentinel, so
// errors.Is(err, ErrWriteIssueFile) holds after WithError/WithContext.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Resolution errors
var (
	ErrRepoNotDetected = NewAppError(TypeResolution, "Could not detect repo. Pass --repo owner/name.", nil).
		WithSuggestion("Run inside a clone with a GitHub origin, set GITHUB_REPOSITORY, or pass --repo owner/name")
)

// Configuration errors
var (
	ErrInvalidRepository = NewAppError(TypeConfiguration, "Repository must be in owner/name format", nil).
		WithSuggestion("Example: --repo octocat/hello-world")

	ErrInvalidState = NewAppError(TypeConfiguration, "Issue state must be open, closed or all", nil)

	ErrInvalidSource = NewAppError(TypeConfiguration, "Issue source must be api, gh or file", nil)

	ErrInputMissing = NewAppError(TypeConfiguration, "The file source needs an input path", nil).
		WithSuggestion("Pass --input <issues.jsonl>")

	ErrLoadConfig = NewAppError(TypeConfiguration, "Failed to load configuration", nil)

	ErrInvalidLanguage = NewAppError(TypeConfiguration, "Language not supported", nil).
		WithSuggestion("Supported languages: en, es")
)

// Source errors
var (
	ErrFetchIssues = NewAppError(TypeSource, "Failed to fetch issues", nil)

	ErrFetchIssuesGH = NewAppError(TypeSource, "Failed to fetch issues via gh", nil).
		WithSuggestion("Check that gh is installed and authenticated: gh auth status")

	ErrRepositoryNotFound = NewAppError(TypeSource, "repository not found", nil).
		WithSuggestion("Check repository name and access permissions")

	ErrGitHubTokenInvalid = NewAppError(TypeSource, "GitHub token is invalid or expired", nil).
		WithSuggestion("Generate a new token at: https://github.com/settings/tokens")

	ErrDecodeIssues = NewAppError(TypeSource, "Failed to decode issue records", nil)

	ErrReadInput = NewAppError(TypeSource, "Failed to read issue dump", nil)
)

// Write errors
var (
	ErrCreateOutputDir = NewAppError(TypeWrite, "Failed to create output directory", nil).
		WithSuggestion("Check the parent directory exists and is writable")

	ErrWriteIssueFile = NewAppError(TypeWrite, "Failed to write issue file", nil)
)
