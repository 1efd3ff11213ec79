package git

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/thomas-vilte/issue-export/internal/logger"
	"github.com/thomas-vilte/issue-export/internal/models"
	"github.com/thomas-vilte/issue-export/internal/regex"
	"github.com/thomas-vilte/issue-export/internal/vcs"
)

// RepositoryEnv is read when the working copy has no origin remote.
const RepositoryEnv = "GITHUB_REPOSITORY"

var _ vcs.RepoResolver = (*GitService)(nil)

type GitService struct {
	// lookupEnv is swapped in tests
	lookupEnv func(string) string
	// remoteURL is swapped in tests
	remoteURL func(ctx context.Context) string
}

func NewGitService() *GitService {
	s := &GitService{lookupEnv: os.Getenv}
	s.remoteURL = s.GetRemoteURL
	return s
}

// GetRemoteURL returns the configured origin URL, or "" when git fails or
// the working directory is not a repository.
func (s *GitService) GetRemoteURL(ctx context.Context) string {
	cmd := exec.CommandContext(ctx, "git", "config", "--get", "remote.origin.url")
	output, err := cmd.Output()
	if err != nil {
		logger.Debug(ctx, "no origin remote configured", "error", err)
		return ""
	}
	return strings.TrimSpace(string(output))
}

// ResolveRepository reads the origin remote and falls back to GITHUB_REPOSITORY
// only when no remote is configured. A remote that is not on GitHub resolves to nothing.
func (s *GitService) ResolveRepository(ctx context.Context) (models.Repository, bool) {
	remote := s.remoteURL(ctx)
	if remote == "" {
		return fromEnv(ctx, s.lookupEnv(RepositoryEnv))
	}

	repo, ok := ParseGitHubRemote(remote)
	if !ok {
		logger.Debug(ctx, "origin remote is not a github url", "remote", remote)
	}
	return repo, ok
}

// ParseGitHubRemote extracts owner/name from an HTTPS or SSH GitHub remote.
// The name stops at the first dot, so a ".git" suffix is dropped.
func ParseGitHubRemote(url string) (models.Repository, bool) {
	matches := regex.GitHubRemote.FindStringSubmatch(url)
	if len(matches) < 3 {
		return models.Repository{}, false
	}
	return models.Repository{Owner: matches[1], Name: matches[2]}, true
}

func fromEnv(ctx context.Context, value string) (models.Repository, bool) {
	if value == "" {
		return models.Repository{}, false
	}
	repo, err := models.ParseRepository(value)
	if err != nil {
		logger.Debug(ctx, "ignoring malformed repository variable", "name", RepositoryEnv, "value", value)
		return models.Repository{}, false
	}
	return repo, true
}
