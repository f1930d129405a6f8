// Package search is the predicate engine shared by job search and alert
// matching: one evaluator, used twice.
package search

import (
	"strings"

	"github.com/OctavioMinteguia/jobhub/internal/model"
	"github.com/OctavioMinteguia/jobhub/internal/normalize"
)

// Query carries an optional free-text pattern and optional structured filters.
// The zero value matches every job.
type Query struct {
	Text     string
	Company  string
	Location string
	Type     string
	Level    string
	Remote   *bool
	// Source restricts to "internal" or "external" jobs; any other value
	// imposes no restriction.
	Source string
}

// Criteria extracts the filters a store can push down into its own query.
// Free text and source scope stay with the predicate engine.
func (q Query) Criteria() model.Criteria {
	return model.Criteria{
		Company:  q.Company,
		Location: q.Location,
		Type:     q.Type,
		Level:    q.Level,
		Remote:   q.Remote,
	}
}

// RemoteFlag coerces the textual remote flag from the query surface to a
// boolean, using the same truthy-token rule the normalizer applies. An empty
// string means the filter is absent. This is the single point where the
// string/boolean duality of "remote" is resolved.
func RemoteFlag(s string) *bool {
	if s == "" {
		return nil
	}
	b := normalize.Truthy(s)
	return &b
}

// Matches evaluates the full query against a job: every supplied structured
// filter must match exactly, AND-combined with the free-text check.
func Matches(job model.Job, q Query) bool {
	if q.Text != "" && !MatchesText(job, q.Text) {
		return false
	}
	if q.Company != "" && job.Company != q.Company {
		return false
	}
	if q.Location != "" && job.Location != q.Location {
		return false
	}
	if q.Type != "" && string(job.Type) != q.Type {
		return false
	}
	if q.Level != "" && string(job.Level) != q.Level {
		return false
	}
	if q.Remote != nil && job.Remote != *q.Remote {
		return false
	}
	if q.Source == model.SourceInternal || q.Source == model.SourceExternal {
		if job.Source != q.Source {
			return false
		}
	}
	return true
}

// MatchesText reports whether any whitespace-separated term of the pattern is
// a case-insensitive substring of the job's searchable content. OR semantics
// across terms trade precision for recall, which suits short user queries.
// An empty pattern matches everything.
func MatchesText(job model.Job, pattern string) bool {
	terms := strings.Fields(strings.ToLower(pattern))
	if len(terms) == 0 {
		return true
	}

	haystack := strings.ToLower(strings.Join([]string{
		job.Title,
		job.Company,
		job.Description,
		job.Location,
		strings.Join(job.Tags, " "),
	}, " "))

	for _, term := range terms {
		if strings.Contains(haystack, term) {
			return true
		}
	}
	return false
}
