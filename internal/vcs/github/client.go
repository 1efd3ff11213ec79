package github

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/go-github/v80/github"
	domainErrors "github.com/thomas-vilte/issue-export/internal/errors"
	"github.com/thomas-vilte/issue-export/internal/logger"
	"github.com/thomas-vilte/issue-export/internal/models"
	"github.com/thomas-vilte/issue-export/internal/vcs"
	"golang.org/x/oauth2"
)

var _ vcs.IssueSource = (*GitHubClient)(nil)

const perPage = 100

type IssuesService interface {
	ListByRepo(ctx context.Context, owner, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error)
}

type GitHubClient struct {
	issuesService IssuesService
}

// NewGitHubClient builds a client for api.github.com, or for a GitHub
// Enterprise server when baseURL is set. An empty token means anonymous access.
func NewGitHubClient(token, baseURL string) (*GitHubClient, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	if baseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, domainErrors.ErrLoadConfig.
				WithError(err).
				WithContext("base_url", baseURL)
		}
	}

	return NewGitHubClientWithService(client.Issues), nil
}

func NewGitHubClientWithService(issuesService IssuesService) *GitHubClient {
	return &GitHubClient{issuesService: issuesService}
}

// FetchIssues lists every issue of repo in the given state, following pagination.
func (ghc *GitHubClient) FetchIssues(ctx context.Context, repo models.Repository, state models.IssueState) ([]models.RawIssue, error) {
	log := logger.FromContext(ctx)

	opts := &github.IssueListByRepoOptions{
		State: string(state),
		ListOptions: github.ListOptions{
			PerPage: perPage,
		},
	}

	var all []models.RawIssue
	for {
		issues, resp, err := ghc.issuesService.ListByRepo(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			log.Debug("failed to list github issues",
				"error", err,
				"repo", repo.String(),
				"page", opts.ListOptions.Page)
			return nil, sourceError(err, resp, repo)
		}

		for _, issue := range issues {
			all = append(all, toRawIssue(issue))
		}

		log.Debug("fetched issue page",
			"repo", repo.String(),
			"page", opts.ListOptions.Page,
			"count", len(issues))

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.ListOptions.Page = resp.NextPage
	}

	return all, nil
}

func toRawIssue(issue *github.Issue) models.RawIssue {
	raw := models.RawIssue{
		Number:        issue.GetNumber(),
		Title:         issue.Title,
		State:         issue.State,
		CreatedAt:     formatTimestamp(issue.CreatedAt),
		UpdatedAt:     formatTimestamp(issue.UpdatedAt),
		HTMLURL:       issue.HTMLURL,
		Body:          issue.Body,
		IsPullRequest: issue.PullRequestLinks != nil,
	}

	if issue.User != nil {
		raw.User = &models.User{Login: issue.User.Login}
	}

	raw.Labels = make([]models.Label, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		raw.Labels = append(raw.Labels, models.Label{Name: label.GetName()})
	}

	return raw
}

// formatTimestamp renders API timestamps the way the REST payload carries them.
func formatTimestamp(ts *github.Timestamp) *string {
	if ts == nil {
		return nil
	}
	formatted := ts.UTC().Format(time.RFC3339)
	return &formatted
}

// sourceError keeps the message GitHub sent back so the user sees it verbatim.
func sourceError(err error, resp *github.Response, repo models.Repository) error {
	base := domainErrors.ErrFetchIssues
	if resp != nil {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			base = domainErrors.ErrGitHubTokenInvalid
		case http.StatusNotFound:
			base = domainErrors.ErrRepositoryNotFound
		}
	}

	appErr := base.WithError(err).WithContext("repo", repo.String())

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Message != "" {
		appErr = appErr.WithContext(domainErrors.DetailKey, ghErr.Message)
	}
	return appErr
}
