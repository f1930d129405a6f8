// Package normalize maps arbitrary external job records into the canonical
// model. Every upstream provider uses different vocabulary for the same
// handful of concepts; the alias tables here are the single place that
// absorbs that variance so downstream logic only ever sees canonical shapes.
package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/OctavioMinteguia/jobhub/internal/model"
)

// Alias tables per canonical field, probed in priority order. Keeping these
// data-driven means a new provider quirk is one more entry, not a new branch.
var (
	idAliases          = []string{"id", "job_id"}
	titleAliases       = []string{"title", "job_title", "position", "role"}
	companyAliases     = []string{"company", "company_name", "employer"}
	descriptionAliases = []string{"description", "job_description", "summary", "details"}
	locationAliases    = []string{"location", "city", "address"}
	salaryAliases      = []string{"salary", "compensation", "pay"}
	typeAliases        = []string{"type", "employment_type", "job_type"}
	levelAliases       = []string{"level", "seniority", "experience_level"}
	tagAliases         = []string{"tags", "skills", "technologies"}
	remoteAliases      = []string{"remote", "work_from_home", "telecommute"}
	createdAtAliases   = []string{"created_at", "posted_date", "date_posted", "posted_at", "createdAt"}
)

// truthyTokens are the textual values treated as "remote: yes".
var truthyTokens = map[string]bool{
	"true":   true,
	"yes":    true,
	"1":      true,
	"remote": true,
	"wfh":    true,
}

// timeLayouts are the timestamp encodings seen across upstream feeds.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalizer converts raw external records into canonical Jobs.
// The source name scopes synthesized IDs.
type Normalizer struct {
	source string
}

// New returns a Normalizer for the named external source.
func New(sourceName string) *Normalizer {
	if sourceName == "" {
		sourceName = model.SourceExternal
	}
	return &Normalizer{source: sourceName}
}

// Normalize maps one raw record into a canonical Job. It returns nil when the
// record is unusable (missing title, company or description, or violating a
// field ceiling). A nil result is a skip, not an error: partial and garbage
// upstream records are a steady-state condition.
func (n *Normalizer) Normalize(raw map[string]any) *model.Job {
	title := firstString(raw, titleAliases)
	company := firstString(raw, companyAliases)
	description := firstString(raw, descriptionAliases)
	if title == "" || company == "" || description == "" {
		return nil
	}

	id := firstString(raw, idAliases)
	if id == "" {
		id = n.source + "-" + uuid.NewString()
	}

	createdAt := firstTime(raw, createdAtAliases)
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	job, err := model.NewJob(model.JobParams{
		ID:          id,
		Title:       title,
		Company:     company,
		Description: description,
		Location:    firstString(raw, locationAliases),
		Salary:      firstString(raw, salaryAliases),
		Type:        firstString(raw, typeAliases),
		Level:       firstString(raw, levelAliases),
		Tags:        Tags(firstValue(raw, tagAliases)),
		Remote:      Bool(firstValue(raw, remoteAliases)),
		CreatedAt:   createdAt,
		Source:      model.SourceExternal,
	})
	if err != nil {
		return nil
	}
	return &job
}

// Tags coerces an upstream tag value into a canonical tag sequence: a
// delimited string is split on commas with empty segments dropped, a sequence
// passes through unchanged, anything else yields an empty sequence.
// Idempotent on already-normalized input.
func Tags(v any) []string {
	switch tags := v.(type) {
	case string:
		var out []string
		for _, seg := range strings.Split(tags, ",") {
			if seg = strings.TrimSpace(seg); seg != "" {
				out = append(out, seg)
			}
		}
		if out == nil {
			out = []string{}
		}
		return out
	case []string:
		return tags
	case []any:
		out := make([]string, 0, len(tags))
		for _, t := range tags {
			if s, ok := t.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}

// Bool coerces an upstream remote flag to a boolean. Textual values match the
// truthy-token table case-insensitively; other types fall back to numeric or
// native truthiness.
func Bool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return Truthy(b)
	case float64:
		return b != 0
	case int:
		return b != 0
	default:
		return false
	}
}

// Truthy reports whether the token reads as "yes" under the remote-flag rule.
func Truthy(s string) bool {
	return truthyTokens[strings.ToLower(strings.TrimSpace(s))]
}

// firstString probes the record for the first alias carrying a usable string
// value. Numeric values are stringified (feeds routinely send numeric IDs).
func firstString(raw map[string]any, aliases []string) string {
	for _, key := range aliases {
		switch v := raw[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case int:
			return strconv.Itoa(v)
		}
	}
	return ""
}

// firstValue returns the first alias present in the record, untyped.
func firstValue(raw map[string]any, aliases []string) any {
	for _, key := range aliases {
		if v, ok := raw[key]; ok {
			return v
		}
	}
	return nil
}

// firstTime returns the first alias value that parses as a timestamp.
func firstTime(raw map[string]any, aliases []string) time.Time {
	for _, key := range aliases {
		s, ok := raw[key].(string)
		if !ok {
			continue
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}
