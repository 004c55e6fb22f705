package application

import (
	"time"

	dErrors "oscahub/pkg/domain-errors"
	id "oscahub/pkg/domain"
)

// Type is the kind of request an application represents.
type Type string

const (
	TypeRegistration   Type = "registration"
	TypeNewID          Type = "new_id"
	TypeRenewalID      Type = "renewal_id"
	TypeReplacementID  Type = "replacement_id"
	TypeCashBenefit    Type = "cash_benefit"
	TypeMedicalBenefit Type = "medical_benefit"
	TypePhilHealth     Type = "philhealth"
)

// Valid reports whether the type is one the portal accepts.
func (t Type) Valid() bool {
	switch t {
	case TypeRegistration, TypeNewID, TypeRenewalID, TypeReplacementID,
		TypeCashBenefit, TypeMedicalBenefit, TypePhilHealth:
		return true
	}
	return false
}

// CardBearing reports whether approval of this type leads to a physical
// senior-ID card, making the Issued status reachable. Registration grants
// the initial card; the three ID types renew or replace it.
func (t Type) CardBearing() bool {
	switch t {
	case TypeRegistration, TypeNewID, TypeRenewalID, TypeReplacementID:
		return true
	}
	return false
}

// Status is the application lifecycle state.
//
//	Pending --(approve)--> Approved --(issue, card-bearing types)--> Issued
//	Pending --(reject+reason)--> Rejected
//
// Rejected and Issued are terminal; resubmission is not modeled.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusIssued   Status = "issued"
)

// CanTransitionTo encodes the lifecycle edges.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected
	case StatusApproved:
		return next == StatusIssued
	default:
		return false
	}
}

// Applicant is the structured identity payload carried by an application.
// Registration approvals provision the citizen account from these typed
// fields; nothing is ever re-derived from prose.
type Applicant struct {
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	BirthDate  time.Time `json:"birthDate,omitempty"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Address    string    `json:"address,omitempty"`
	RegistryID string    `json:"registryId,omitempty"`
}

// Application is the aggregate at the heart of the approval workflow.
//
// Invariants:
//   - Status starts at Pending and follows the lifecycle edges only
//   - Date is the submission day and immutable afterwards
//   - RejectionReason is set exactly when status is Rejected
//   - Applications are never deleted
type Application struct {
	ID              id.ApplicationID `json:"id"`
	Type            Type             `json:"type"`
	UserID          id.UserID        `json:"userId"`
	Applicant       Applicant        `json:"applicant"`
	Description     string           `json:"description,omitempty"`
	Documents       []string         `json:"documents,omitempty"`
	Status          Status           `json:"status"`
	RejectionReason string           `json:"rejectionReason,omitempty"`
	Date            time.Time        `json:"date"`
}

// CanApprove guards the Pending → Approved edge.
func (a *Application) CanApprove() error {
	if !a.Status.CanTransitionTo(StatusApproved) {
		return dErrors.New(dErrors.CodeInvariantViolation, "only pending applications can be approved")
	}
	return nil
}

// ApplyApproval transitions to Approved and clears any stale reason.
func (a *Application) ApplyApproval() {
	a.Status = StatusApproved
	a.RejectionReason = ""
}

// CanReject guards the Pending → Rejected edge.
func (a *Application) CanReject() error {
	if !a.Status.CanTransitionTo(StatusRejected) {
		return dErrors.New(dErrors.CodeInvariantViolation, "only pending applications can be rejected")
	}
	return nil
}

// ApplyRejection transitions to Rejected with the given reason.
func (a *Application) ApplyRejection(reason string) {
	a.Status = StatusRejected
	a.RejectionReason = reason
}

// CanIssue guards the Approved → Issued edge, which only card-bearing
// application types may take.
func (a *Application) CanIssue() error {
	if !a.Type.CardBearing() {
		return dErrors.New(dErrors.CodeInvariantViolation, "application type does not carry an ID card")
	}
	if !a.Status.CanTransitionTo(StatusIssued) {
		return dErrors.New(dErrors.CodeInvariantViolation, "only approved applications can be issued")
	}
	return nil
}

// ApplyIssuance transitions to Issued.
func (a *Application) ApplyIssuance() {
	a.Status = StatusIssued
}
