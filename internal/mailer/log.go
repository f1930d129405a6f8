package mailer

import (
	"context"
	"log/slog"

	"github.com/OctavioMinteguia/jobhub/internal/model"
)

// Ensure LogMailer implements model.Mailer.
var _ model.Mailer = (*LogMailer)(nil)

// LogMailer writes alert dispatches to the logger instead of sending mail.
// It is the default for local runs.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer returns a mailer that logs each dispatch via slog.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Dispatch logs the would-be email. Returns nil (logging does not fail).
func (m *LogMailer) Dispatch(ctx context.Context, to, subject string, jobs []model.Job) error {
	for _, j := range jobs {
		m.logger.Info("job alert",
			"to", to,
			"subject", subject,
			"job_id", j.ID,
			"title", j.Title,
			"company", j.Company,
		)
	}
	return nil
}
