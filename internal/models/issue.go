package models

// Fallback literals used when a source field is absent.
const (
	DefaultTitle   = "Untitled"
	DefaultUnknown = "unknown"
)

// User is the author of an issue as reported by the tracker.
type User struct {
	// Login is the author handle; nil when the source omitted it
	Login *string
}

// Label is a single tracker label attached to an issue.
type Label struct {
	Name string
}

// RawIssue is an issue record as received from an IssueSource.
// Optional scalars are pointers so that an absent field can be told apart
// from an empty one; the fallback accessors below resolve them.
type RawIssue struct {
	// Number is unique within a repository
	Number int

	Title     *string
	State     *string
	User      *User
	Labels    []Label
	CreatedAt *string
	UpdatedAt *string
	HTMLURL   *string

	// Body is nil when the source sent null or no body at all
	Body *string

	// IsPullRequest reports whether the record carried a pull_request key.
	// Only presence counts, the value is never inspected.
	IsPullRequest bool
}

func (i RawIssue) TitleOrDefault() string {
	return valueOr(i.Title, DefaultTitle)
}

func (i RawIssue) StateOrDefault() string {
	return valueOr(i.State, DefaultUnknown)
}

func (i RawIssue) AuthorOrDefault() string {
	if i.User == nil {
		return DefaultUnknown
	}
	return valueOr(i.User.Login, DefaultUnknown)
}

func (i RawIssue) CreatedOrDefault() string {
	return valueOr(i.CreatedAt, DefaultUnknown)
}

func (i RawIssue) UpdatedOrDefault() string {
	return valueOr(i.UpdatedAt, DefaultUnknown)
}

func (i RawIssue) URLOrDefault() string {
	return valueOr(i.HTMLURL, "")
}

func (i RawIssue) BodyOrDefault() string {
	return valueOr(i.Body, "")
}

// LabelNames returns the label names in source order.
func (i RawIssue) LabelNames() []string {
	names := make([]string, 0, len(i.Labels))
	for _, label := range i.Labels {
		names = append(names, label.Name)
	}
	return names
}

// Ptr returns a pointer to v. Handy for building RawIssue literals.
func Ptr[T any](v T) *T {
	return &v
}

func valueOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
