package complaint

import (
	"time"

	dErrors "oscahub/pkg/domain-errors"
	id "oscahub/pkg/domain"
)

// Status is the complaint lifecycle state: Open until an admin resolves it.
type Status string

const (
	StatusOpen     Status = "open"
	StatusResolved Status = "resolved"
)

// Complaint is a citizen-submitted subject/details pair.
type Complaint struct {
	ID      id.ComplaintID `json:"id"`
	UserID  id.UserID      `json:"userId"`
	Subject string         `json:"subject"`
	Details string         `json:"details"`
	Status  Status         `json:"status"`
	Date    time.Time      `json:"date"`
}

// CanResolve guards the Open → Resolved edge.
func (c *Complaint) CanResolve() error {
	if c.Status != StatusOpen {
		return dErrors.New(dErrors.CodeInvariantViolation, "complaint is already resolved")
	}
	return nil
}

// ApplyResolution marks the complaint resolved.
func (c *Complaint) ApplyResolution() {
	c.Status = StatusResolved
}
