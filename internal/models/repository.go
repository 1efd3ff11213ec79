package models

import (
	"fmt"
	"strings"
)

// Repository identifies a repository on the hosting service as owner/name.
type Repository struct {
	Owner string
	Name  string
}

// ParseRepository parses an "owner/name" identifier.
func ParseRepository(s string) (Repository, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return Repository{}, fmt.Errorf("invalid repository %q: expected owner/name", s)
	}
	return Repository{Owner: owner, Name: name}, nil
}

func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

// IssueState is the state filter passed to an IssueSource.
type IssueState string

const (
	StateOpen   IssueState = "open"
	StateClosed IssueState = "closed"
	StateAll    IssueState = "all"
)

// ParseIssueState accepts open, closed or all.
func ParseIssueState(s string) (IssueState, error) {
	switch state := IssueState(strings.ToLower(strings.TrimSpace(s))); state {
	case StateOpen, StateClosed, StateAll:
		return state, nil
	default:
		return "", fmt.Errorf("invalid state %q: expected open, closed or all", s)
	}
}
