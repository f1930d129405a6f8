package model

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewJob_Defaults(t *testing.T) {
	job, err := NewJob(JobParams{
		Title:       "Backend Engineer",
		Company:     "Acme",
		Description: "Build services",
	})
	if err != nil {
		t.Fatalf("NewJob() error = %v", err)
	}

	if job.ID == "" {
		t.Error("expected synthesized ID, got empty")
	}
	if job.Source != SourceInternal {
		t.Errorf("Source = %q, want %q", job.Source, SourceInternal)
	}
	if job.Type != TypeFullTime {
		t.Errorf("Type = %q, want %q", job.Type, TypeFullTime)
	}
	if job.Level != LevelMid {
		t.Errorf("Level = %q, want %q", job.Level, LevelMid)
	}
	if job.Tags == nil {
		t.Error("Tags should never be nil")
	}
	if job.CreatedAt.IsZero() {
		t.Error("CreatedAt should default to now")
	}
	if !job.UpdatedAt.Equal(job.CreatedAt) {
		t.Error("UpdatedAt should equal CreatedAt on construction")
	}
}

func TestNewJob_PreservesExplicitFields(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	job, err := NewJob(JobParams{
		ID:          "feed-42",
		Title:       "  SRE  ",
		Company:     "Acme",
		Description: "Keep it up",
		Location:    "Berlin",
		Salary:      "90k",
		Type:        "contract",
		Level:       "senior",
		Tags:        []string{"go", "k8s"},
		Remote:      true,
		CreatedAt:   created,
		Source:      SourceExternal,
	})
	if err != nil {
		t.Fatalf("NewJob() error = %v", err)
	}

	if job.ID != "feed-42" {
		t.Errorf("ID = %q, want feed-42", job.ID)
	}
	if job.Title != "SRE" {
		t.Errorf("Title = %q, want trimmed SRE", job.Title)
	}
	if job.Type != TypeContract || job.Level != LevelSenior {
		t.Errorf("Type/Level = %q/%q, want contract/senior", job.Type, job.Level)
	}
	if !job.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", job.CreatedAt, created)
	}
	if job.Source != SourceExternal {
		t.Errorf("Source = %q, want external", job.Source)
	}
}

func TestNewJob_Validation(t *testing.T) {
	long := strings.Repeat("x", 256)
	valid := JobParams{Title: "T", Company: "C", Description: "D"}

	tests := []struct {
		name      string
		mutate    func(p *JobParams)
		wantField string
	}{
		{
			name:      "empty title",
			mutate:    func(p *JobParams) { p.Title = "" },
			wantField: "title",
		},
		{
			name:      "whitespace title",
			mutate:    func(p *JobParams) { p.Title = "   " },
			wantField: "title",
		},
		{
			name:      "title too long",
			mutate:    func(p *JobParams) { p.Title = long },
			wantField: "title",
		},
		{
			name:      "empty company",
			mutate:    func(p *JobParams) { p.Company = "" },
			wantField: "company",
		},
		{
			name:      "company too long",
			mutate:    func(p *JobParams) { p.Company = long },
			wantField: "company",
		},
		{
			name:      "empty description",
			mutate:    func(p *JobParams) { p.Description = "" },
			wantField: "description",
		},
		{
			name:      "location too long",
			mutate:    func(p *JobParams) { p.Location = long },
			wantField: "location",
		},
		{
			name:      "salary too long",
			mutate:    func(p *JobParams) { p.Salary = strings.Repeat("x", 101) },
			wantField: "salary",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)

			_, err := NewJob(p)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if vErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", vErr.Field, tt.wantField)
			}
		})
	}
}

func TestNewJob_BoundaryLengths(t *testing.T) {
	p := JobParams{
		Title:       strings.Repeat("t", 255),
		Company:     strings.Repeat("c", 255),
		Description: "D",
		Location:    strings.Repeat("l", 255),
		Salary:      strings.Repeat("s", 100),
	}
	if _, err := NewJob(p); err != nil {
		t.Errorf("fields at exactly the ceiling should be accepted, got %v", err)
	}
}

func TestCoerceType(t *testing.T) {
	tests := []struct {
		raw  string
		want JobType
	}{
		{"full-time", TypeFullTime},
		{"fulltime", TypeFullTime},
		{"FULL_TIME", TypeFullTime},
		{"permanent", TypeFullTime},
		{"part-time", TypePartTime},
		{"parttime", TypePartTime},
		{"contract", TypeContract},
		{"freelance", TypeContract},
		{"Contractor", TypeContract},
		{"internship", TypeInternship},
		{"intern", TypeInternship},
		{"", TypeFullTime},
		{"gibberish", TypeFullTime},
		{"  contract  ", TypeContract},
	}
	for _, tt := range tests {
		if got := CoerceType(tt.raw); got != tt.want {
			t.Errorf("CoerceType(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestCoerceLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want JobLevel
	}{
		{"junior", LevelJunior},
		{"entry", LevelJunior},
		{"Entry-Level", LevelJunior},
		{"mid", LevelMid},
		{"intermediate", LevelMid},
		{"medior", LevelMid},
		{"senior", LevelSenior},
		{"SR", LevelSenior},
		{"lead", LevelSenior},
		{"principal", LevelSenior},
		{"", LevelMid},
		{"wizard", LevelMid},
	}
	for _, tt := range tests {
		if got := CoerceLevel(tt.raw); got != tt.want {
			t.Errorf("CoerceLevel(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
