package jsonl

import (
	"context"
	"os"

	"github.com/thomas-vilte/issue-export/internal/errors"
	"github.com/thomas-vilte/issue-export/internal/logger"
	"github.com/thomas-vilte/issue-export/internal/models"
	"github.com/thomas-vilte/issue-export/internal/vcs"
)

var _ vcs.IssueSource = (*FileSource)(nil)

// FileSource serves issues from a JSON lines dump on disk.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// FetchIssues decodes the dump and keeps the issues matching state. Records
// without a state only pass the "all" filter. The dump is assumed to belong to repo.
func (s *FileSource) FetchIssues(ctx context.Context, repo models.Repository, state models.IssueState) ([]models.RawIssue, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, errors.ErrReadInput.
			WithError(err).
			WithContext("path", s.Path)
	}
	defer f.Close()

	issues, err := Decode(f)
	if err != nil {
		return nil, err
	}

	logger.Debug(ctx, "decoded issue dump",
		"path", s.Path,
		"repo", repo.String(),
		"count", len(issues))

	if state == models.StateAll {
		return issues, nil
	}

	kept := make([]models.RawIssue, 0, len(issues))
	for _, issue := range issues {
		if issue.State != nil && models.IssueState(*issue.State) == state {
			kept = append(kept, issue)
		}
	}
	return kept, nil
}
