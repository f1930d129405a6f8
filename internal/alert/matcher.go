// Package alert matches newly published jobs against standing subscriptions
// and drives notification dispatch.
package alert

import (
	"context"
	"log/slog"

	"github.com/OctavioMinteguia/jobhub/internal/model"
	"github.com/OctavioMinteguia/jobhub/internal/search"
)

// Matches reports whether one alert's criteria accept the job: the search
// pattern, when set, must pass the free-text predicate, and every set filter
// must equal the corresponding job attribute. An active alert with no pattern
// and no filters is a global subscription and matches every job.
func Matches(a model.Alert, job model.Job) bool {
	if !a.Active {
		return false
	}
	if a.SearchPattern != "" && !search.MatchesText(job, a.SearchPattern) {
		return false
	}

	f := a.Filters
	if f.Company != "" && job.Company != f.Company {
		return false
	}
	if f.Location != "" && job.Location != f.Location {
		return false
	}
	if f.Type != "" && string(job.Type) != f.Type {
		return false
	}
	if f.Level != "" && string(job.Level) != f.Level {
		return false
	}
	if f.Remote != nil && job.Remote != *f.Remote {
		return false
	}
	return true
}

// MatchingAlerts returns the alerts from the snapshot that accept the job.
func MatchingAlerts(job model.Job, alerts []model.Alert) []model.Alert {
	var matched []model.Alert
	for _, a := range alerts {
		if Matches(a, job) {
			matched = append(matched, a)
		}
	}
	return matched
}

// Dispatcher sends a notification to every subscriber whose alert matches a
// newly created job.
type Dispatcher struct {
	mailer model.Mailer
	logger *slog.Logger
}

// NewDispatcher wires a Dispatcher.
func NewDispatcher(mailer model.Mailer, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{mailer: mailer, logger: logger}
}

// NotifyNewJob evaluates the active-alert snapshot against the job and
// dispatches one notification per match. A delivery failure is logged and
// counted; it never blocks evaluation of the remaining alerts and never rolls
// back the job creation that triggered it.
func (d *Dispatcher) NotifyNewJob(ctx context.Context, job model.Job, alerts []model.Alert) (sent, failed int) {
	subject := "New Job Alert: " + job.Title

	for _, a := range MatchingAlerts(job, alerts) {
		if err := d.mailer.Dispatch(ctx, a.Email, subject, []model.Job{job}); err != nil {
			d.logger.Error("alert dispatch failed",
				"alert_id", a.ID,
				"email", a.Email,
				"job_id", job.ID,
				"error", err,
			)
			failed++
			continue
		}
		sent++
	}

	if sent > 0 || failed > 0 {
		d.logger.Info("alert pass complete",
			"job_id", job.ID,
			"sent", sent,
			"failed", failed,
		)
	}
	return sent, failed
}
