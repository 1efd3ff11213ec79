package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/issue-export/internal/models"
)

type MockRepoResolver struct {
	mock.Mock
}

func (m *MockRepoResolver) ResolveRepository(ctx context.Context) (models.Repository, bool) {
	args := m.Called(ctx)
	return args.Get(0).(models.Repository), args.Bool(1)
}

type MockIssueSource struct {
	mock.Mock
}

func (m *MockIssueSource) FetchIssues(ctx context.Context, repo models.Repository, state models.IssueState) ([]models.RawIssue, error) {
	args := m.Called(ctx, repo, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RawIssue), args.Error(1)
}
