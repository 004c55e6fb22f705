// Package domain provides typed identifiers shared across modules.
//
// IDs are distinct types over uuid.UUID so an ApplicationID can never be
// passed where a UserID is expected. Parsing enforces the invariant that
// IDs are valid, non-nil UUIDs at trust boundaries.
package domain

import (
	"github.com/google/uuid"

	dErrors "oscahub/pkg/domain-errors"
)

type (
	// UserID identifies a portal user (citizen or admin).
	UserID uuid.UUID

	// ApplicationID identifies a submitted application.
	ApplicationID uuid.UUID

	// ComplaintID identifies a submitted complaint.
	ComplaintID uuid.UUID

	// SessionID identifies a login session.
	SessionID uuid.UUID
)

// NewUserID returns a fresh random user ID.
func NewUserID() UserID { return UserID(uuid.New()) }

// NewApplicationID returns a fresh random application ID.
func NewApplicationID() ApplicationID { return ApplicationID(uuid.New()) }

// NewComplaintID returns a fresh random complaint ID.
func NewComplaintID() ComplaintID { return ComplaintID(uuid.New()) }

// NewSessionID returns a fresh random session ID.
func NewSessionID() SessionID { return SessionID(uuid.New()) }

func (id UserID) String() string        { return uuid.UUID(id).String() }
func (id ApplicationID) String() string { return uuid.UUID(id).String() }
func (id ComplaintID) String() string   { return uuid.UUID(id).String() }
func (id SessionID) String() string     { return uuid.UUID(id).String() }

// IsNil reports whether the ID is the zero UUID.
func (id UserID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id ApplicationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id ComplaintID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id SessionID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }

// MarshalText makes typed IDs render as canonical UUID strings in JSON.
func (id UserID) MarshalText() ([]byte, error)        { return []byte(id.String()), nil }
func (id ApplicationID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id ComplaintID) MarshalText() ([]byte, error)   { return []byte(id.String()), nil }
func (id SessionID) MarshalText() ([]byte, error)     { return []byte(id.String()), nil }

func (id *UserID) UnmarshalText(b []byte) error {
	parsed, err := ParseUserID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *ApplicationID) UnmarshalText(b []byte) error {
	parsed, err := ParseApplicationID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *ComplaintID) UnmarshalText(b []byte) error {
	parsed, err := ParseComplaintID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *SessionID) UnmarshalText(b []byte) error {
	parsed, err := ParseSessionID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseUserID parses and validates a user ID string.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s)
	return UserID(u), err
}

// ParseApplicationID parses and validates an application ID string.
func ParseApplicationID(s string) (ApplicationID, error) {
	u, err := parseUUID(s)
	return ApplicationID(u), err
}

// ParseComplaintID parses and validates a complaint ID string.
func ParseComplaintID(s string) (ComplaintID, error) {
	u, err := parseUUID(s)
	return ComplaintID(u), err
}

// ParseSessionID parses and validates a session ID string.
func ParseSessionID(s string) (SessionID, error) {
	u, err := parseUUID(s)
	return SessionID(u), err
}

func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be empty")
	}
	if len(s) > 64 {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id is too long")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "id must be a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be the nil UUID")
	}
	return u, nil
}
