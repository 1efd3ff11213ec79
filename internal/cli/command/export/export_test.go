package export

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/issue-export/internal/config"
	"github.com/thomas-vilte/issue-export/internal/errors"
	"github.com/thomas-vilte/issue-export/internal/i18n"
	"github.com/thomas-vilte/issue-export/internal/models"
	"github.com/thomas-vilte/issue-export/internal/services"
	"github.com/thomas-vilte/issue-export/internal/ui"
	"github.com/thomas-vilte/issue-export/internal/vcs"
	"github.com/urfave/cli/v3"
)

const dump = `{"number":1,"title":"Fix bug","state":"open","user":{"login":"alice"},"labels":[{"name":"bug"}],"created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-02T00:00:00Z","html_url":"https://github.com/octocat/hello/issues/1","body":"Steps"}
{"number":2,"title":"Add feature","state":"open","pull_request":{"url":"https://api.github.com/repos/octocat/hello/pulls/2"}}
{"number":3,"title":"Old crash","state":"closed"}
`

func fixedClock() time.Time {
	return time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)
}

func setupExportTest(t *testing.T, factory *ExportCommandFactory) (*cli.Command, *bytes.Buffer) {
	app, stdout, _ := setupExportTestWithStderr(t, factory)
	return app, stdout
}

func setupExportTestWithStderr(t *testing.T, factory *ExportCommandFactory) (*cli.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)

	cfg := &config.Config{
		Language:  config.LangEN,
		OutputDir: config.DefaultOutputDir,
		Source:    config.SourceFile,
	}

	var stdout, stderr bytes.Buffer
	factory.WithOutput(&stdout, &stderr).WithClock(fixedClock)

	app := &cli.Command{
		Name:     "issue-export",
		Commands: []*cli.Command{factory.CreateCommand(translations, cfg)},
	}
	return app, &stdout, &stderr
}

type diskFullFS struct{}

func (diskFullFS) MkdirAll(string) error { return nil }

func (diskFullFS) WriteFile(string, []byte) error { return stderrors.New("disk full") }

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func writeDump(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "issues.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(dump), 0o644))
	return path
}

func TestExportCommand(t *testing.T) {
	t.Run("should export issues from a dump and print the summary", func(t *testing.T) {
		input := writeDump(t)
		outDir := filepath.Join(t.TempDir(), "out")
		resolver := &services.MockRepoResolver{}
		app, stdout := setupExportTest(t, NewExportCommandFactory(resolver))

		// act
		err := app.Run(context.Background(), []string{
			"issue-export", "export",
			"--repo", "octocat/hello",
			"--input", input,
			"--output-dir", outDir,
		})

		// assert
		require.NoError(t, err)
		assert.Equal(t, "Wrote 1 issue file(s) to "+outDir+"\n", stdout.String())

		entries, err := os.ReadDir(outDir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "00001-fix-bug.yml", entries[0].Name())

		content, err := os.ReadFile(filepath.Join(outDir, "00001-fix-bug.yml"))
		require.NoError(t, err)
		assert.Contains(t, string(content), "exported: \"2024-03-04T05:06:07+00:00\"\n")
		assert.Contains(t, string(content), "author: alice\n")
		resolver.AssertNotCalled(t, "ResolveRepository", mock.Anything)
	})

	t.Run("should include pull requests and every state when asked", func(t *testing.T) {
		input := writeDump(t)
		outDir := t.TempDir()
		app, stdout := setupExportTest(t, NewExportCommandFactory(&services.MockRepoResolver{}))

		// act
		err := app.Run(context.Background(), []string{
			"issue-export", "export",
			"-r", "octocat/hello",
			"-s", "all",
			"--include-prs",
			"--input", input,
			"-o", outDir,
		})

		// assert
		require.NoError(t, err)
		assert.Equal(t, "Wrote 3 issue file(s) to "+outDir+"\n", stdout.String())

		for _, name := range []string{"00001-fix-bug.yml", "00002-add-feature.yml", "00003-old-crash.yml"} {
			assert.FileExists(t, filepath.Join(outDir, name))
		}
	})

	t.Run("should fail when no repository can be determined", func(t *testing.T) {
		resolver := &services.MockRepoResolver{}
		resolver.On("ResolveRepository", mock.Anything).Return(models.Repository{}, false)
		source := &services.MockIssueSource{}

		factory := NewExportCommandFactory(resolver).
			WithSourceFactory(func(*config.Config, string, string) (vcs.IssueSource, error) {
				return source, nil
			})
		app, stdout := setupExportTest(t, factory)

		// act
		err := app.Run(context.Background(), []string{"issue-export", "export", "-o", t.TempDir()})

		// assert
		assert.ErrorIs(t, err, errors.ErrRepoNotDetected)
		assert.Empty(t, stdout.String())
		source.AssertNotCalled(t, "FetchIssues", mock.Anything, mock.Anything, mock.Anything)
		resolver.AssertExpectations(t)
	})

	t.Run("should surface source failures verbatim", func(t *testing.T) {
		repo := models.Repository{Owner: "octocat", Name: "hello"}
		resolver := &services.MockRepoResolver{}
		resolver.On("ResolveRepository", mock.Anything).Return(repo, true)

		sourceErr := errors.ErrFetchIssuesGH.WithContext(errors.DetailKey, "HTTP 404: Not Found")
		source := &services.MockIssueSource{}
		source.On("FetchIssues", mock.Anything, repo, models.StateOpen).Return(nil, sourceErr)

		factory := NewExportCommandFactory(resolver).
			WithSourceFactory(func(*config.Config, string, string) (vcs.IssueSource, error) {
				return source, nil
			})
		app, stdout := setupExportTest(t, factory)

		// act
		err := app.Run(context.Background(), []string{"issue-export", "export", "-o", t.TempDir()})

		// assert
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrFetchIssuesGH)
		assert.True(t, strings.HasSuffix(err.Error(), "HTTP 404: Not Found"))
		assert.Empty(t, stdout.String())
	})

	t.Run("should reject an unknown state before fetching", func(t *testing.T) {
		source := &services.MockIssueSource{}
		factory := NewExportCommandFactory(&services.MockRepoResolver{}).
			WithSourceFactory(func(*config.Config, string, string) (vcs.IssueSource, error) {
				return source, nil
			})
		app, _ := setupExportTest(t, factory)

		// act
		err := app.Run(context.Background(), []string{"issue-export", "export", "-r", "octocat/hello", "-s", "merged"})

		// assert
		assert.ErrorIs(t, err, errors.ErrInvalidState)
		source.AssertNotCalled(t, "FetchIssues", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestExportCommand_DiagnosticOutput(t *testing.T) {
	color.NoColor = true
	repo := models.Repository{Owner: "octocat", Name: "hello"}

	t.Run("should leave a single line on stderr when a write fails", func(t *testing.T) {
		input := writeDump(t)
		factory := NewExportCommandFactory(&services.MockRepoResolver{}).WithFileSystem(diskFullFS{})
		app, stdout, stderr := setupExportTestWithStderr(t, factory)

		// act
		err := app.Run(context.Background(), []string{"issue-export", "export", "-r", "octocat/hello", "--input", input, "-o", t.TempDir()})
		require.Error(t, err)
		ui.PrintError(stderr, err)

		// assert
		assert.Empty(t, stdout.String())
		assert.Equal(t, []string{"Failed to write issue file: disk full"}, lines(stderr.String()))
	})

	t.Run("should leave a single line on stderr when the source fails", func(t *testing.T) {
		resolver := &services.MockRepoResolver{}
		resolver.On("ResolveRepository", mock.Anything).Return(repo, true)
		source := &services.MockIssueSource{}
		source.On("FetchIssues", mock.Anything, repo, models.StateOpen).
			Return(nil, errors.ErrFetchIssuesGH.WithContext(errors.DetailKey, "HTTP 404: Not Found"))

		factory := NewExportCommandFactory(resolver).
			WithSourceFactory(func(*config.Config, string, string) (vcs.IssueSource, error) {
				return source, nil
			})
		app, _, stderr := setupExportTestWithStderr(t, factory)

		// act
		err := app.Run(context.Background(), []string{"issue-export", "export", "-o", t.TempDir()})
		require.Error(t, err)
		ui.PrintError(stderr, err)

		// assert
		assert.Equal(t, []string{"Failed to fetch issues via gh: HTTP 404: Not Found"}, lines(stderr.String()))
	})

	t.Run("should add the suggestion with verbose", func(t *testing.T) {
		t.Cleanup(func() { ui.ShowSuggestions(false) })
		app, _, stderr := setupExportTestWithStderr(t, NewExportCommandFactory(&services.MockRepoResolver{}))

		// act
		err := app.Run(context.Background(), []string{"issue-export", "export", "-r", "octocat/hello", "--verbose"})
		require.Error(t, err)
		ui.PrintError(stderr, err)

		// assert
		assert.ErrorIs(t, err, errors.ErrInputMissing)
		assert.Equal(t, []string{
			"The file source needs an input path",
			"Try: Pass --input <issues.jsonl>",
		}, lines(stderr.String()))
	})
}

func TestNewIssueSource(t *testing.T) {
	cfg := &config.Config{GitHubToken: "token"}

	t.Run("should build the api source", func(t *testing.T) {
		source, err := NewIssueSource(cfg, config.SourceAPI, "")

		require.NoError(t, err)
		assert.NotNil(t, source)
	})

	t.Run("should build the gh source", func(t *testing.T) {
		source, err := NewIssueSource(cfg, config.SourceGH, "")

		require.NoError(t, err)
		assert.NotNil(t, source)
	})

	t.Run("should require an input for the file source", func(t *testing.T) {
		source, err := NewIssueSource(cfg, config.SourceFile, "")

		assert.ErrorIs(t, err, errors.ErrInputMissing)
		assert.Nil(t, source)
	})

	t.Run("should reject unknown sources", func(t *testing.T) {
		source, err := NewIssueSource(cfg, "svn", "")

		assert.ErrorIs(t, err, errors.ErrInvalidSource)
		assert.Nil(t, source)
	})
}
