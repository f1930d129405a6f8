package model

import "context"

// Criteria is the structured subset of search filters a store can push down
// into its own query. Free text is never pushed down.
type Criteria struct {
	Company  string
	Location string
	Type     string
	Level    string
	Remote   *bool
}

// JobStore owns persisted jobs and alerts. The core never caches results
// across requests; every aggregation or match pass re-reads current state.
type JobStore interface {
	SaveJob(ctx context.Context, job Job) error
	FindJobByID(ctx context.Context, id string) (*Job, error)
	// FindByCriteria returns jobs matching all set criteria fields, newest
	// first. limit <= 0 means unbounded.
	FindByCriteria(ctx context.Context, c Criteria, limit, offset int) ([]Job, error)
	DeleteJob(ctx context.Context, id string) error

	SaveAlert(ctx context.Context, alert Alert) error
	FindAlertByID(ctx context.Context, id string) (*Alert, error)
	FindAlertsByEmail(ctx context.Context, email string) ([]Alert, error)
	FindActiveAlerts(ctx context.Context) ([]Alert, error)
}

// Source is an external job feed emitting records of arbitrary shape.
type Source interface {
	Name() string
	FetchRaw(ctx context.Context) ([]map[string]any, error)
	// IsAvailable is a fast pre-check only; FetchRaw must independently
	// tolerate failure.
	IsAvailable(ctx context.Context) bool
}

// Mailer dispatches a job alert notification to a subscriber.
type Mailer interface {
	Dispatch(ctx context.Context, to, subject string, jobs []Job) error
}
