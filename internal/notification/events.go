// Package notification decouples state transitions from their best-effort
// side effects. Services emit domain events into a bounded outbox; a
// dispatcher worker delivers them to the SMS and email gateways and to the
// remote auth backend. Delivery failure never reaches back into the
// emitting operation: the local store is the system of record.
package notification

import "time"

// Kind discriminates outbox events.
type Kind string

const (
	KindStatusChanged      Kind = "application_status_changed"
	KindAccountReplication Kind = "account_replication"
)

// Event is anything the dispatcher can deliver.
type Event interface {
	EventKind() Kind
}

// Contact is the applicant the outcome is announced to.
type Contact struct {
	Name  string
	Phone string
	Email string
}

// Credentials carry the one-time plaintext password issued at provisioning.
// They ride along on registration approvals so the welcome message can
// include them; nothing else retains the plaintext.
type Credentials struct {
	Username string
	Password string
}

// StatusChanged announces an application outcome to the applicant over SMS
// and email, regardless of application type.
type StatusChanged struct {
	ApplicationID   string
	ApplicationType string
	Status          string
	RejectionReason string
	Recipient       Contact
	Credentials     *Credentials
	OccurredAt      time.Time
}

func (StatusChanged) EventKind() Kind { return KindStatusChanged }

// AccountReplication mirrors a newly provisioned citizen account to the
// external authentication backend. The remote API is eventually consistent
// with the local store at best.
type AccountReplication struct {
	Username  string
	Password  string
	RoleCode  string
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

func (AccountReplication) EventKind() Kind { return KindAccountReplication }

// Publisher is the side services see: enqueue and forget.
type Publisher interface {
	Publish(event Event)
}
