package model

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AlertFilters is the closed set of structured criteria an alert can carry.
// Empty strings (nil for Remote) mean the attribute is unconstrained, so
// illegal filter keys are unrepresentable.
type AlertFilters struct {
	Company  string `json:"company,omitempty"`
	Location string `json:"location,omitempty"`
	Type     string `json:"type,omitempty"`
	Level    string `json:"level,omitempty"`
	Remote   *bool  `json:"remote,omitempty"`
}

// IsZero reports whether no filter attribute is set.
func (f AlertFilters) IsZero() bool {
	return f.Company == "" && f.Location == "" && f.Type == "" && f.Level == "" && f.Remote == nil
}

// Alert is a standing subscription matching future jobs against stored criteria.
type Alert struct {
	ID            string       `json:"id"`
	Email         string       `json:"email"`
	SearchPattern string       `json:"searchPattern,omitempty"`
	Filters       AlertFilters `json:"filters"`
	Active        bool         `json:"active"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// NewAlert builds an active alert for the given address.
// The address must parse as a mail address; pattern and filters are optional.
func NewAlert(email, searchPattern string, filters AlertFilters) (Alert, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return Alert{}, newValidationError("email", "cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return Alert{}, newValidationError("email", "invalid email format")
	}

	now := time.Now()
	return Alert{
		ID:            uuid.NewString(),
		Email:         email,
		SearchPattern: strings.TrimSpace(searchPattern),
		Filters:       filters,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Deactivate marks the alert inactive. Alerts are never hard-deleted.
func (a *Alert) Deactivate() {
	a.Active = false
	a.UpdatedAt = time.Now()
}

// Activate re-enables a previously deactivated alert.
func (a *Alert) Activate() {
	a.Active = true
	a.UpdatedAt = time.Now()
}
