// Package ghcli fetches issues through the GitHub CLI, reusing whatever
// authentication `gh auth login` set up.
package ghcli

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/thomas-vilte/issue-export/internal/errors"
	"github.com/thomas-vilte/issue-export/internal/logger"
	"github.com/thomas-vilte/issue-export/internal/models"
	"github.com/thomas-vilte/issue-export/internal/vcs"
	"github.com/thomas-vilte/issue-export/internal/vcs/jsonl"
)

var _ vcs.IssueSource = (*Source)(nil)

// Runner executes a command and returns its stdout and stderr.
type Runner func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

type Source struct {
	run Runner
}

func NewSource() *Source {
	return &Source{run: execRunner}
}

func NewSourceWithRunner(run Runner) *Source {
	return &Source{run: run}
}

// Args returns the gh invocation listing the issues of repo in state.
func Args(repo models.Repository, state models.IssueState) []string {
	return []string{
		"api",
		"-X", "GET",
		"--paginate",
		fmt.Sprintf("/repos/%s/issues", repo),
		"-f", "state=" + string(state),
		"-f", "per_page=100",
		"--jq", ".[]",
	}
}

func (s *Source) FetchIssues(ctx context.Context, repo models.Repository, state models.IssueState) ([]models.RawIssue, error) {
	stdout, stderr, err := s.run(ctx, "gh", Args(repo, state)...)
	if err != nil {
		appErr := errors.ErrFetchIssuesGH.
			WithError(err).
			WithContext("repo", repo.String())
		if detail := diagnostic(stdout, stderr); detail != "" {
			appErr = appErr.WithContext(errors.DetailKey, detail)
		}
		logger.Debug(ctx, "gh api failed", "error", err, "repo", repo.String())
		return nil, appErr
	}

	issues, err := jsonl.Decode(bytes.NewReader(stdout))
	if err != nil {
		return nil, err
	}

	logger.Debug(ctx, "fetched issues via gh", "repo", repo.String(), "count", len(issues))
	return issues, nil
}

// diagnostic prefers stderr and falls back to stdout, both trimmed.
func diagnostic(stdout, stderr []byte) string {
	if msg := strings.TrimSpace(string(stderr)); msg != "" {
		return msg
	}
	return strings.TrimSpace(string(stdout))
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
