package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/thomas-vilte/issue-export/internal/models"
	"github.com/thomas-vilte/issue-export/internal/normalize"
)

// exportedAtLayout renders a UTC instant the way an ISO-8601 formatter with
// an explicit offset does.
const exportedAtLayout = "2006-01-02T15:04:05+00:00"

// FormatExportedAt renders t in UTC at second precision.
func FormatExportedAt(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(exportedAtLayout)
}

// NewRecord resolves every optional field of issue to its output value.
func NewRecord(issue models.RawIssue, exportedAt string) models.ExportRecord {
	return models.ExportRecord{
		Number:   issue.Number,
		Title:    issue.TitleOrDefault(),
		State:    issue.StateOrDefault(),
		Author:   issue.AuthorOrDefault(),
		Labels:   issue.LabelNames(),
		Created:  issue.CreatedOrDefault(),
		Updated:  issue.UpdatedOrDefault(),
		Exported: exportedAt,
		URL:      issue.URLOrDefault(),
		Body:     normalizeBody(issue.BodyOrDefault()),
	}
}

// FormatIssue is NewRecord followed by Format.
func FormatIssue(issue models.RawIssue, exportedAt string) string {
	return Format(NewRecord(issue, exportedAt))
}

// Format serializes a record. The output always ends with a single newline.
func Format(record models.ExportRecord) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "number: %d\n", record.Number)
	writeScalar(&builder, "title", record.Title)
	writeScalar(&builder, "state", record.State)
	writeScalar(&builder, "author", record.Author)
	writeLabels(&builder, record.Labels)
	writeScalar(&builder, "created", record.Created)
	writeScalar(&builder, "updated", record.Updated)
	writeScalar(&builder, "exported", record.Exported)
	writeScalar(&builder, "url", record.URL)
	writeBody(&builder, record.Body)

	return builder.String()
}

func writeScalar(builder *strings.Builder, key, value string) {
	fmt.Fprintf(builder, "%s: %s\n", key, normalize.YAMLEscape(value))
}

func writeLabels(builder *strings.Builder, labels []string) {
	builder.WriteString("labels:\n")
	if len(labels) == 0 {
		builder.WriteString("  -\n")
		return
	}
	for _, label := range labels {
		fmt.Fprintf(builder, "  - %s\n", normalize.YAMLEscape(label))
	}
}

func writeBody(builder *strings.Builder, body string) {
	builder.WriteString("body: |\n")
	if body == "" {
		builder.WriteString("  \n")
		return
	}
	for _, line := range strings.Split(body, "\n") {
		builder.WriteString("  ")
		builder.WriteString(line)
		builder.WriteString("\n")
	}
}

// normalizeBody converts CRLF line endings and drops trailing whitespace.
func normalizeBody(body string) string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	return strings.TrimRightFunc(body, normalize.IsSpace)
}
