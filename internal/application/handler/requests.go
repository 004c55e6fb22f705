package handler

import (
	"time"

	"github.com/asaskevich/govalidator"

	"oscahub/internal/application"
	"oscahub/internal/application/service"
	dErrors "oscahub/pkg/domain-errors"
	id "oscahub/pkg/domain"
)

// SubmitRequest is the transport shape of an application submission. The
// applicant block is typed; the core never parses identity out of prose.
type SubmitRequest struct {
	Type        string           `json:"type"`
	UserID      string           `json:"userId,omitempty"`
	Applicant   ApplicantRequest `json:"applicant"`
	Description string           `json:"description,omitempty"`
	Documents   []string         `json:"documents,omitempty"`
}

type ApplicantRequest struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	BirthDate  string `json:"birthDate,omitempty"` // YYYY-MM-DD
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
	RegistryID string `json:"registryId,omitempty"`
}

// ToInput validates the request and converts it to a service input.
func (r SubmitRequest) ToInput() (service.SubmitInput, error) {
	if !application.Type(r.Type).Valid() {
		return service.SubmitInput{}, dErrors.New(dErrors.CodeInvalidInput, "unknown application type")
	}
	if !govalidator.StringLength(r.Applicant.FirstName, "1", "100") {
		return service.SubmitInput{}, dErrors.New(dErrors.CodeInvalidInput, "applicant first name is required")
	}
	if !govalidator.StringLength(r.Applicant.LastName, "1", "100") {
		return service.SubmitInput{}, dErrors.New(dErrors.CodeInvalidInput, "applicant last name is required")
	}
	if r.Applicant.Email != "" && !govalidator.IsEmail(r.Applicant.Email) {
		return service.SubmitInput{}, dErrors.New(dErrors.CodeInvalidInput, "applicant email is invalid")
	}
	if len(r.Description) > 4000 {
		return service.SubmitInput{}, dErrors.New(dErrors.CodeInvalidInput, "description is too long")
	}
	if len(r.Documents) > 20 {
		return service.SubmitInput{}, dErrors.New(dErrors.CodeInvalidInput, "too many documents")
	}

	var userID id.UserID
	if r.UserID != "" {
		parsed, err := id.ParseUserID(r.UserID)
		if err != nil {
			return service.SubmitInput{}, err
		}
		userID = parsed
	}

	var birthDate time.Time
	if r.Applicant.BirthDate != "" {
		parsed, err := time.Parse("2006-01-02", r.Applicant.BirthDate)
		if err != nil {
			return service.SubmitInput{}, dErrors.New(dErrors.CodeInvalidInput, "birth date must be YYYY-MM-DD")
		}
		birthDate = parsed
	}

	return service.SubmitInput{
		Type:   application.Type(r.Type),
		UserID: userID,
		Applicant: application.Applicant{
			FirstName:  r.Applicant.FirstName,
			LastName:   r.Applicant.LastName,
			BirthDate:  birthDate,
			Email:      r.Applicant.Email,
			Phone:      r.Applicant.Phone,
			Address:    r.Applicant.Address,
			RegistryID: r.Applicant.RegistryID,
		},
		Description: r.Description,
		Documents:   r.Documents,
	}, nil
}

// UpdateStatusRequest is the transport shape of an approval or rejection.
type UpdateStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

func (r UpdateStatusRequest) Validate() error {
	switch application.Status(r.Status) {
	case application.StatusApproved:
		return nil
	case application.StatusRejected:
		if !govalidator.StringLength(r.Reason, "1", "1000") {
			return dErrors.New(dErrors.CodeInvalidInput, "a rejection requires a reason")
		}
		return nil
	default:
		return dErrors.New(dErrors.CodeInvalidInput, "status must be approved or rejected")
	}
}
