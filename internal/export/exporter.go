package export

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/thomas-vilte/issue-export/internal/errors"
	"github.com/thomas-vilte/issue-export/internal/logger"
	"github.com/thomas-vilte/issue-export/internal/models"
	"github.com/thomas-vilte/issue-export/internal/normalize"
)

// Options controls a single export run.
type Options struct {
	OutputDir           string
	ExcludePullRequests bool
	// ExportedAt is stamped on every record of the run, see FormatExportedAt
	ExportedAt string
}

// Exporter writes one file per issue through a FileSystem.
type Exporter struct {
	fs FileSystem
}

func NewExporter(fs FileSystem) *Exporter {
	if fs == nil {
		fs = OSFileSystem{}
	}
	return &Exporter{fs: fs}
}

// Filename returns the file name for an issue: the zero padded number and
// the slug of its title. An absent or empty title slugs as "issue".
func Filename(number int, title *string) string {
	text := normalize.FallbackSlug
	if title != nil && *title != "" {
		text = *title
	}
	return fmt.Sprintf("%05d-%s.yml", number, normalize.Slugify(text, normalize.DefaultSlugLength))
}

// FilterPullRequests drops every record carrying a pull request marker,
// keeping the order of the rest.
func FilterPullRequests(issues []models.RawIssue) []models.RawIssue {
	kept := make([]models.RawIssue, 0, len(issues))
	for _, issue := range issues {
		if !issue.IsPullRequest {
			kept = append(kept, issue)
		}
	}
	return kept
}

// Run writes issues to opts.OutputDir and returns how many files were
// written. The first failure stops the loop; files already written stay.
func (e *Exporter) Run(ctx context.Context, issues []models.RawIssue, opts Options) (int, error) {
	log := logger.FromContext(ctx)

	if opts.ExcludePullRequests {
		issues = FilterPullRequests(issues)
	}

	if err := e.fs.MkdirAll(opts.OutputDir); err != nil {
		return 0, errors.ErrCreateOutputDir.
			WithError(err).
			WithContext("output_dir", opts.OutputDir)
	}

	count := 0
	for _, issue := range issues {
		path := filepath.Join(opts.OutputDir, Filename(issue.Number, issue.Title))

		if err := e.fs.WriteFile(path, []byte(FormatIssue(issue, opts.ExportedAt))); err != nil {
			log.Debug("failed to write issue file",
				"error", err,
				"path", path,
				"written", count)
			return count, errors.ErrWriteIssueFile.
				WithError(err).
				WithContext("path", path).
				WithContext("issue_number", issue.Number)
		}

		count++
		log.Debug("issue file written",
			"issue_number", issue.Number,
			"path", path)
	}

	log.Info("export finished",
		"output_dir", opts.OutputDir,
		"written", count)

	return count, nil
}
