package search

import (
	"testing"

	"github.com/OctavioMinteguia/jobhub/internal/model"
)

func sampleJob() model.Job {
	return model.Job{
		ID:          "j1",
		Title:       "Senior Go Developer",
		Company:     "Acme",
		Description: "Distributed systems work",
		Location:    "Berlin",
		Type:        model.TypeFullTime,
		Level:       model.LevelSenior,
		Tags:        []string{"golang", "kubernetes"},
		Remote:      true,
		Source:      model.SourceInternal,
	}
}

func TestMatchesText(t *testing.T) {
	job := sampleJob()

	tests := []struct {
		name    string
		pattern string
		want    bool
	}{
		{"empty pattern matches", "", true},
		{"whitespace pattern matches", "   ", true},
		{"title term", "developer", true},
		{"case insensitive", "DEVELOPER", true},
		{"company term", "acme", true},
		{"description term", "distributed", true},
		{"location term", "berlin", true},
		{"tag term", "kubernetes", true},
		{"substring of tag", "golan", true},
		{"or across terms, one hits", "cobol golang", true},
		{"or across terms, none hit", "cobol fortran", false},
		{"no match", "haskell", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesText(job, tt.pattern); got != tt.want {
				t.Errorf("MatchesText(%q) = %v, want %v", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	job := sampleJob()
	remoteTrue := true
	remoteFalse := false

	tests := []struct {
		name string
		q    Query
		want bool
	}{
		{"zero query matches everything", Query{}, true},
		{"text and matching filter", Query{Text: "go", Company: "Acme"}, true},
		{"text hit but filter miss", Query{Text: "go", Company: "Globex"}, false},
		{"filter hit but text miss", Query{Text: "cobol", Company: "Acme"}, false},
		{"all structured filters", Query{Company: "Acme", Location: "Berlin", Type: "full-time", Level: "senior", Remote: &remoteTrue}, true},
		{"remote mismatch", Query{Remote: &remoteFalse}, false},
		{"type mismatch", Query{Type: "contract"}, false},
		{"company is exact, not substring", Query{Company: "Acm"}, false},
		{"source internal matches", Query{Source: model.SourceInternal}, true},
		{"source external excludes", Query{Source: model.SourceExternal}, false},
		{"unknown source imposes nothing", Query{Source: "all"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(job, tt.q); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRemoteFlag(t *testing.T) {
	tests := []struct {
		in   string
		want *bool
	}{
		{"", nil},
		{"true", boolPtr(true)},
		{"yes", boolPtr(true)},
		{"wfh", boolPtr(true)},
		{"false", boolPtr(false)},
		{"no", boolPtr(false)},
		{"anything", boolPtr(false)},
	}
	for _, tt := range tests {
		got := RemoteFlag(tt.in)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("RemoteFlag(%q) = %v, want nil", tt.in, *got)
		case tt.want != nil && got == nil:
			t.Errorf("RemoteFlag(%q) = nil, want %v", tt.in, *tt.want)
		case tt.want != nil && *got != *tt.want:
			t.Errorf("RemoteFlag(%q) = %v, want %v", tt.in, *got, *tt.want)
		}
	}
}

func TestQueryCriteria(t *testing.T) {
	remote := true
	q := Query{
		Text:     "never pushed down",
		Company:  "Acme",
		Location: "Berlin",
		Type:     "full-time",
		Level:    "senior",
		Remote:   &remote,
		Source:   model.SourceExternal,
	}
	c := q.Criteria()
	if c.Company != "Acme" || c.Location != "Berlin" || c.Type != "full-time" || c.Level != "senior" {
		t.Errorf("Criteria() = %+v, structured filters not carried", c)
	}
	if c.Remote == nil || !*c.Remote {
		t.Error("Criteria() dropped remote filter")
	}
}

func boolPtr(b bool) *bool { return &b }
