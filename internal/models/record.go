package models

// ExportRecord is the normalized form of a RawIssue ready to be serialized.
// Every field already carries its fallback value.
type ExportRecord struct {
	Number   int
	Title    string
	State    string
	Author   string
	Labels   []string
	Created  string
	Updated  string
	Exported string
	URL      string
	Body     string
}
