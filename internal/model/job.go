package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Source provenance values.
const (
	SourceInternal = "internal"
	SourceExternal = "external"
)

// JobType is the closed employment-type enum.
type JobType string

const (
	TypeFullTime   JobType = "full-time"
	TypePartTime   JobType = "part-time"
	TypeContract   JobType = "contract"
	TypeInternship JobType = "internship"
)

// JobLevel is the closed seniority enum.
type JobLevel string

const (
	LevelJunior JobLevel = "junior"
	LevelMid    JobLevel = "mid"
	LevelSenior JobLevel = "senior"
)

// typeSynonyms maps lowercased upstream employment-type tokens onto the enum.
var typeSynonyms = map[string]JobType{
	"full-time":  TypeFullTime,
	"fulltime":   TypeFullTime,
	"full_time":  TypeFullTime,
	"permanent":  TypeFullTime,
	"part-time":  TypePartTime,
	"parttime":   TypePartTime,
	"part_time":  TypePartTime,
	"contract":   TypeContract,
	"contractor": TypeContract,
	"freelance":  TypeContract,
	"internship": TypeInternship,
	"intern":     TypeInternship,
}

// levelSynonyms maps lowercased upstream seniority tokens onto the enum.
var levelSynonyms = map[string]JobLevel{
	"junior":       LevelJunior,
	"entry":        LevelJunior,
	"entry-level":  LevelJunior,
	"entry_level":  LevelJunior,
	"mid":          LevelMid,
	"middle":       LevelMid,
	"intermediate": LevelMid,
	"medior":       LevelMid,
	"senior":       LevelSenior,
	"sr":           LevelSenior,
	"lead":         LevelSenior,
	"principal":    LevelSenior,
}

// CoerceType maps a raw employment-type token onto the closed enum.
// Unrecognized tokens fall back to full-time rather than rejecting the record:
// upstream feeds are untrusted and must always yield something usable.
func CoerceType(raw string) JobType {
	if t, ok := typeSynonyms[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return t
	}
	return TypeFullTime
}

// CoerceLevel maps a raw seniority token onto the closed enum, defaulting to mid.
func CoerceLevel(raw string) JobLevel {
	if l, ok := levelSynonyms[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return l
	}
	return LevelMid
}

// Length ceilings for canonical string fields.
const (
	maxTitleLen    = 255
	maxCompanyLen  = 255
	maxLocationLen = 255
	maxSalaryLen   = 100
)

// Job is the canonical job posting every source is normalized into.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Description string    `json:"description"`
	Location    string    `json:"location,omitempty"`
	Salary      string    `json:"salary,omitempty"`
	Type        JobType   `json:"type"`
	Level       JobLevel  `json:"level"`
	Tags        []string  `json:"tags"`
	Remote      bool      `json:"remote"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Source      string    `json:"source"`
}

// JobParams carries the raw inputs for constructing a canonical Job.
// Zero-value fields fall back to defaults: ID is synthesized, Source becomes
// internal, CreatedAt becomes the construction time.
type JobParams struct {
	ID          string
	Title       string
	Company     string
	Description string
	Location    string
	Salary      string
	Type        string
	Level       string
	Tags        []string
	Remote      bool
	CreatedAt   time.Time
	Source      string
}

// NewJob validates params and builds a canonical Job.
// Title, company and description must be non-empty after trimming; string
// fields are bounded by the schema ceilings. Violations return a
// *ValidationError naming the offending field. Type and level coercion never
// fails (see CoerceType/CoerceLevel).
func NewJob(p JobParams) (Job, error) {
	title := strings.TrimSpace(p.Title)
	company := strings.TrimSpace(p.Company)
	description := strings.TrimSpace(p.Description)
	location := strings.TrimSpace(p.Location)
	salary := strings.TrimSpace(p.Salary)

	switch {
	case title == "":
		return Job{}, newValidationError("title", "cannot be empty")
	case len(title) > maxTitleLen:
		return Job{}, newValidationError("title", "cannot exceed 255 characters")
	case company == "":
		return Job{}, newValidationError("company", "cannot be empty")
	case len(company) > maxCompanyLen:
		return Job{}, newValidationError("company", "cannot exceed 255 characters")
	case description == "":
		return Job{}, newValidationError("description", "cannot be empty")
	case len(location) > maxLocationLen:
		return Job{}, newValidationError("location", "cannot exceed 255 characters")
	case len(salary) > maxSalaryLen:
		return Job{}, newValidationError("salary", "cannot exceed 100 characters")
	}

	id := p.ID
	if id == "" {
		id = uuid.NewString()
	}
	source := p.Source
	if source == "" {
		source = SourceInternal
	}
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	return Job{
		ID:          id,
		Title:       title,
		Company:     company,
		Description: description,
		Location:    location,
		Salary:      salary,
		Type:        CoerceType(p.Type),
		Level:       CoerceLevel(p.Level),
		Tags:        tags,
		Remote:      p.Remote,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
		Source:      source,
	}, nil
}
