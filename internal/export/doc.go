// Package export turns raw issues into one YAML-like file each.
//
// Every file has the same fixed line order:
//
//	number: 42
//	title: "Crash on start: nil config"
//	state: open
//	author: octocat
//	labels:
//	  - bug
//	created: "2024-01-02T03:04:05Z"
//	updated: "2024-01-03T03:04:05Z"
//	exported: "2024-02-01T00:00:00+00:00"
//	url: "https://github.com/octo/hello/issues/42"
//	body: |
//	  First line
//	  Second line
//
// An issue without labels gets a single "  -" item and an empty body a
// single "  " line, so no key is ever left without a value.
//
// Files are named <00042>-<slug>.yml where the slug comes from the title
// alone, which keeps names stable across runs.
package export
