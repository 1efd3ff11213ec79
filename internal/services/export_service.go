package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/thomas-vilte/issue-export/internal/errors"
	"github.com/thomas-vilte/issue-export/internal/export"
	"github.com/thomas-vilte/issue-export/internal/logger"
	"github.com/thomas-vilte/issue-export/internal/models"
	"github.com/thomas-vilte/issue-export/internal/vcs"
)

// ExportRequest holds the user's choices for one run.
type ExportRequest struct {
	// Repo is an explicit owner/name; empty means ask the resolver
	Repo                string
	State               string
	IncludePullRequests bool
	OutputDir           string
}

type ExportResult struct {
	Repository models.Repository
	Fetched    int
	Skipped    int
	Written    int
	OutputDir  string
	ExportedAt string
}

type ExportService struct {
	resolver vcs.RepoResolver
	source   vcs.IssueSource
	exporter *export.Exporter
	now      func() time.Time
}

func NewExportService(resolver vcs.RepoResolver, source vcs.IssueSource, exporter *export.Exporter) *ExportService {
	return &ExportService{
		resolver: resolver,
		source:   source,
		exporter: exporter,
		now:      time.Now,
	}
}

// WithClock replaces the time source used for the exported timestamp.
func (s *ExportService) WithClock(now func() time.Time) *ExportService {
	s.now = now
	return s
}

// Export runs resolve, fetch and write in that order and stops at the first failure.
// On a write failure the result still reports the files written before it.
func (s *ExportService) Export(ctx context.Context, req ExportRequest) (ExportResult, error) {
	result := ExportResult{OutputDir: req.OutputDir}

	state, err := models.ParseIssueState(req.State)
	if err != nil {
		return result, errors.ErrInvalidState.WithError(err).WithContext("state", req.State)
	}

	repo, err := s.repository(ctx, req.Repo)
	if err != nil {
		return result, err
	}
	result.Repository = repo

	ctx = logger.With(ctx, "repo", repo.String())
	logger.Info(ctx, "fetching issues", "state", string(state))

	issues, err := s.source.FetchIssues(ctx, repo, state)
	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			return result, err
		}
		return result, errors.ErrFetchIssues.WithError(err).WithContext("repo", repo.String())
	}
	result.Fetched = len(issues)
	if !req.IncludePullRequests {
		result.Skipped = len(issues) - len(export.FilterPullRequests(issues))
	}

	result.ExportedAt = export.FormatExportedAt(s.now())

	written, err := s.exporter.Run(ctx, issues, export.Options{
		OutputDir:           req.OutputDir,
		ExcludePullRequests: !req.IncludePullRequests,
		ExportedAt:          result.ExportedAt,
	})
	result.Written = written
	return result, err
}

func (s *ExportService) repository(ctx context.Context, explicit string) (models.Repository, error) {
	if explicit != "" {
		repo, err := models.ParseRepository(explicit)
		if err != nil {
			return models.Repository{}, errors.ErrInvalidRepository.WithError(err).WithContext("repo", explicit)
		}
		return repo, nil
	}

	repo, ok := s.resolver.ResolveRepository(ctx)
	if !ok {
		return models.Repository{}, errors.ErrRepoNotDetected
	}
	logger.Debug(ctx, "repository detected", "repo", repo.String())
	return repo, nil
}
