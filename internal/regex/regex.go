package regex

import "regexp"

var (
	// Git and Repo patterns
	GitHubRemote = regexp.MustCompile(`github\.com[:/]([^/]+)/([^/.]+)`)

	// Slug patterns
	NonAlphanumericRun = regexp.MustCompile(`[^a-zA-Z0-9]+`)
)
