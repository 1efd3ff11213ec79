package services

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/issue-export/internal/errors"
	"github.com/thomas-vilte/issue-export/internal/export"
	"github.com/thomas-vilte/issue-export/internal/models"
)

var fixedNow = time.Date(2024, 2, 1, 12, 30, 45, 500, time.UTC)

func setupExportService(t *testing.T) (*ExportService, *MockRepoResolver, *MockIssueSource, string) {
	t.Helper()
	resolver := &MockRepoResolver{}
	source := &MockIssueSource{}
	service := NewExportService(resolver, source, export.NewExporter(export.OSFileSystem{})).
		WithClock(func() time.Time { return fixedNow })
	return service, resolver, source, filepath.Join(t.TempDir(), "data", "issues")
}

func twoIssues() []models.RawIssue {
	return []models.RawIssue{
		{Number: 1, Title: models.Ptr("Fix bug"), State: models.Ptr("open"), Body: models.Ptr("line1\r\nline2")},
		{Number: 2, IsPullRequest: true},
	}
}

func TestExportService_Export(t *testing.T) {
	t.Run("should export issues for an explicit repository", func(t *testing.T) {
		service, resolver, source, dir := setupExportService(t)
		repo := models.Repository{Owner: "octo", Name: "hello"}

		source.On("FetchIssues", mock.Anything, repo, models.StateOpen).Return(twoIssues(), nil)

		result, err := service.Export(context.Background(), ExportRequest{
			Repo:      "octo/hello",
			State:     "open",
			OutputDir: dir,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Written)
		assert.Equal(t, 2, result.Fetched)
		assert.Equal(t, 1, result.Skipped)
		assert.Equal(t, repo, result.Repository)
		assert.Equal(t, "2024-02-01T12:30:45+00:00", result.ExportedAt)

		content, err := os.ReadFile(filepath.Join(dir, "00001-fix-bug.yml"))
		require.NoError(t, err)
		assert.Contains(t, string(content), "body: |\n  line1\n  line2\n")
		assert.Contains(t, string(content), `exported: "2024-02-01T12:30:45+00:00"`)
		assert.NoFileExists(t, filepath.Join(dir, "00002-issue.yml"))

		resolver.AssertNotCalled(t, "ResolveRepository", mock.Anything)
		source.AssertExpectations(t)
	})

	t.Run("should use the resolver and include pull requests", func(t *testing.T) {
		service, resolver, source, dir := setupExportService(t)
		repo := models.Repository{Owner: "detected", Name: "repo"}

		resolver.On("ResolveRepository", mock.Anything).Return(repo, true)
		source.On("FetchIssues", mock.Anything, repo, models.StateAll).Return(twoIssues(), nil)

		result, err := service.Export(context.Background(), ExportRequest{
			State:               "all",
			IncludePullRequests: true,
			OutputDir:           dir,
		})

		require.NoError(t, err)
		assert.Equal(t, 2, result.Written)
		assert.Zero(t, result.Skipped)
		assert.FileExists(t, filepath.Join(dir, "00002-issue.yml"))
	})

	t.Run("should fail when no repository can be determined", func(t *testing.T) {
		service, resolver, source, dir := setupExportService(t)

		resolver.On("ResolveRepository", mock.Anything).Return(models.Repository{}, false)

		_, err := service.Export(context.Background(), ExportRequest{State: "open", OutputDir: dir})

		assert.True(t, stderrors.Is(err, errors.ErrRepoNotDetected))
		assert.Contains(t, err.Error(), "Pass --repo owner/name")
		source.AssertNotCalled(t, "FetchIssues", mock.Anything, mock.Anything, mock.Anything)
		assert.NoDirExists(t, dir)
	})

	t.Run("should reject a malformed repository", func(t *testing.T) {
		service, _, _, dir := setupExportService(t)

		_, err := service.Export(context.Background(), ExportRequest{Repo: "nope", State: "open", OutputDir: dir})

		assert.True(t, stderrors.Is(err, errors.ErrInvalidRepository))
	})

	t.Run("should reject an unknown state", func(t *testing.T) {
		service, _, _, dir := setupExportService(t)

		_, err := service.Export(context.Background(), ExportRequest{Repo: "o/r", State: "merged", OutputDir: dir})

		assert.True(t, stderrors.Is(err, errors.ErrInvalidState))
	})

	t.Run("should propagate source errors untouched", func(t *testing.T) {
		service, _, source, dir := setupExportService(t)
		sourceErr := errors.ErrRepositoryNotFound.WithContext(errors.DetailKey, "Not Found")

		source.On("FetchIssues", mock.Anything, mock.Anything, models.StateOpen).Return(nil, sourceErr)

		_, err := service.Export(context.Background(), ExportRequest{Repo: "o/r", State: "open", OutputDir: dir})

		assert.Same(t, sourceErr, err)
		assert.NoDirExists(t, dir)
	})

	t.Run("should wrap plain source errors", func(t *testing.T) {
		service, _, source, dir := setupExportService(t)

		source.On("FetchIssues", mock.Anything, mock.Anything, models.StateOpen).Return(nil, assert.AnError)

		_, err := service.Export(context.Background(), ExportRequest{Repo: "o/r", State: "open", OutputDir: dir})

		assert.True(t, stderrors.Is(err, errors.ErrFetchIssues))
		assert.True(t, stderrors.Is(err, assert.AnError))
	})
}
