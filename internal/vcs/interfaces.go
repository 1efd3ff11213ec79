package vcs

import (
	"context"

	"github.com/thomas-vilte/issue-export/internal/models"
)

// IssueSource retrieves raw issue records from a tracker.
type IssueSource interface {
	// FetchIssues returns every issue of repo matching state, with pagination already resolved.
	// Pull requests are returned too, flagged with IsPullRequest.
	FetchIssues(ctx context.Context, repo models.Repository, state models.IssueState) ([]models.RawIssue, error)
}

// RepoResolver finds the repository to export when none was given explicitly.
type RepoResolver interface {
	// ResolveRepository reports false when no repository could be determined.
	ResolveRepository(ctx context.Context) (models.Repository, bool)
}
