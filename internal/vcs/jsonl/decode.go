// Package jsonl reads raw issues from JSON lines, one REST issue object per
// line, the shape `gh api --jq '.[]'` prints.
package jsonl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/thomas-vilte/issue-export/internal/errors"
	"github.com/thomas-vilte/issue-export/internal/models"
)

// maxLineSize bounds a single issue object; bodies can be large.
const maxLineSize = 32 << 20

type issuePayload struct {
	Number *int    `json:"number"`
	Title  *string `json:"title"`
	State  *string `json:"state"`
	User   *struct {
		Login *string `json:"login"`
	} `json:"user"`
	Labels []struct {
		Name string `json:"name"`
	} `json:"labels"`
	CreatedAt *string `json:"created_at"`
	UpdatedAt *string `json:"updated_at"`
	HTMLURL   *string `json:"html_url"`
	Body      *string `json:"body"`
}

// Decode reads every non-blank line of r as one issue.
func Decode(r io.Reader) ([]models.RawIssue, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var issues []models.RawIssue
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		issue, err := DecodeIssue(line)
		if err != nil {
			return nil, errors.ErrDecodeIssues.
				WithError(err).
				WithContext("line", lineNo)
		}
		issues = append(issues, issue)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.ErrDecodeIssues.WithError(err)
	}
	return issues, nil
}

// DecodeIssue decodes one issue object. A pull_request key marks a pull
// request whatever its value, null included.
func DecodeIssue(data []byte) (models.RawIssue, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return models.RawIssue{}, err
	}

	var payload issuePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return models.RawIssue{}, err
	}
	if payload.Number == nil {
		return models.RawIssue{}, fmt.Errorf("issue record has no number")
	}

	_, isPullRequest := keys["pull_request"]

	issue := models.RawIssue{
		Number:        *payload.Number,
		Title:         payload.Title,
		State:         payload.State,
		CreatedAt:     payload.CreatedAt,
		UpdatedAt:     payload.UpdatedAt,
		HTMLURL:       payload.HTMLURL,
		Body:          payload.Body,
		IsPullRequest: isPullRequest,
	}
	if payload.User != nil {
		issue.User = &models.User{Login: payload.User.Login}
	}

	issue.Labels = make([]models.Label, 0, len(payload.Labels))
	for _, label := range payload.Labels {
		issue.Labels = append(issue.Labels, models.Label{Name: label.Name})
	}

	return issue, nil
}
