// Package dataset turns raw CSV records into validated job samples and the
// derived title catalog.
package dataset

import "strings"

// DefaultTitleColumn is used when no header looks like a title column.
const DefaultTitleColumn = "job_title"

// columnRule matches a lower-cased header name.
type columnRule func(lower string) bool

// titleRules are evaluated in order; the first rule that matches any header wins.
var titleRules = []columnRule{ //nolint:gochecknoglobals // fixed rule table
	func(h string) bool { return strings.Contains(h, "title") },
	func(h string) bool { return strings.Contains(h, "job") && !strings.Contains(h, "id") },
	func(h string) bool { return strings.Contains(h, "job") },
}

// DetectTitleColumn returns the header holding job titles.
func DetectTitleColumn(headers []string) string {
	lowered := make([]string, len(headers))
	for i, h := range headers {
		lowered[i] = strings.ToLower(h)
	}
	for _, rule := range titleRules {
		for i, h := range lowered {
			if rule(h) {
				return headers[i]
			}
		}
	}
	return DefaultTitleColumn
}
