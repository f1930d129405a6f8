package alert

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/OctavioMinteguia/jobhub/internal/model"
)

func contractJob() model.Job {
	return model.Job{
		ID:          "j1",
		Title:       "Go Developer",
		Company:     "Acme",
		Description: "Contract gig",
		Location:    "Berlin",
		Type:        model.TypeContract,
		Level:       model.LevelMid,
		Tags:        []string{"golang"},
		Remote:      true,
		Source:      model.SourceInternal,
	}
}

func activeAlert(pattern string, filters model.AlertFilters) model.Alert {
	return model.Alert{
		ID:            "a1",
		Email:         "dev@example.com",
		SearchPattern: pattern,
		Filters:       filters,
		Active:        true,
	}
}

func TestMatches(t *testing.T) {
	remoteTrue := true
	remoteFalse := false
	job := contractJob()

	tests := []struct {
		name  string
		alert model.Alert
		want  bool
	}{
		{
			name:  "global subscription matches everything",
			alert: activeAlert("", model.AlertFilters{}),
			want:  true,
		},
		{
			name:  "pattern hit",
			alert: activeAlert("golang", model.AlertFilters{}),
			want:  true,
		},
		{
			name:  "pattern miss",
			alert: activeAlert("haskell", model.AlertFilters{}),
			want:  false,
		},
		{
			name:  "filters all match",
			alert: activeAlert("", model.AlertFilters{Company: "Acme", Type: "contract", Remote: &remoteTrue}),
			want:  true,
		},
		{
			name:  "one filter miss rejects",
			alert: activeAlert("", model.AlertFilters{Type: "full-time", Level: "senior"}),
			want:  false,
		},
		{
			name:  "remote filter miss",
			alert: activeAlert("", model.AlertFilters{Remote: &remoteFalse}),
			want:  false,
		},
		{
			name:  "pattern hit but filter miss",
			alert: activeAlert("golang", model.AlertFilters{Location: "London"}),
			want:  false,
		},
		{
			name: "inactive alert never matches",
			alert: model.Alert{
				ID:     "a2",
				Email:  "dev@example.com",
				Active: false,
			},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.alert, job); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchingAlerts(t *testing.T) {
	job := contractJob()
	alerts := []model.Alert{
		activeAlert("", model.AlertFilters{}),
		activeAlert("haskell", model.AlertFilters{}),
		activeAlert("golang", model.AlertFilters{}),
	}

	matched := MatchingAlerts(job, alerts)
	if len(matched) != 2 {
		t.Fatalf("got %d matches, want 2", len(matched))
	}
}

// fakeMailer records dispatches and can fail for chosen recipients.
type fakeMailer struct {
	sent     []string
	subjects []string
	failFor  map[string]bool
}

func (m *fakeMailer) Dispatch(ctx context.Context, to, subject string, jobs []model.Job) error {
	if m.failFor[to] {
		return errors.New("smtp refused")
	}
	m.sent = append(m.sent, to)
	m.subjects = append(m.subjects, subject)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNotifyNewJob(t *testing.T) {
	job := contractJob()

	a1 := activeAlert("", model.AlertFilters{})
	a1.Email = "one@example.com"
	a2 := activeAlert("golang", model.AlertFilters{})
	a2.Email = "two@example.com"
	a3 := activeAlert("haskell", model.AlertFilters{})
	a3.Email = "three@example.com"

	mailer := &fakeMailer{}
	d := NewDispatcher(mailer, discardLogger())

	sent, failed := d.NotifyNewJob(context.Background(), job, []model.Alert{a1, a2, a3})
	if sent != 2 || failed != 0 {
		t.Fatalf("sent/failed = %d/%d, want 2/0", sent, failed)
	}
	if len(mailer.sent) != 2 {
		t.Fatalf("dispatched to %v, want 2 recipients", mailer.sent)
	}
	for _, subject := range mailer.subjects {
		if subject != "New Job Alert: Go Developer" {
			t.Errorf("subject = %q", subject)
		}
	}
}

func TestNotifyNewJob_FailureDoesNotBlockOthers(t *testing.T) {
	job := contractJob()

	a1 := activeAlert("", model.AlertFilters{})
	a1.Email = "broken@example.com"
	a2 := activeAlert("", model.AlertFilters{})
	a2.Email = "fine@example.com"

	mailer := &fakeMailer{failFor: map[string]bool{"broken@example.com": true}}
	d := NewDispatcher(mailer, discardLogger())

	sent, failed := d.NotifyNewJob(context.Background(), job, []model.Alert{a1, a2})
	if sent != 1 || failed != 1 {
		t.Fatalf("sent/failed = %d/%d, want 1/1", sent, failed)
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "fine@example.com" {
		t.Errorf("dispatched to %v, want only fine@example.com", mailer.sent)
	}
}
