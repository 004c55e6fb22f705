package user

import (
	"time"

	dErrors "oscahub/pkg/domain-errors"
	id "oscahub/pkg/domain"
)

// Role is the portal access tier.
type Role string

const (
	RoleCitizen       Role = "citizen"
	RoleAdmin         Role = "admin"
	RoleRegistryAdmin Role = "registry_admin"
)

// Valid reports whether the role is one of the three portal tiers.
func (r Role) Valid() bool {
	switch r {
	case RoleCitizen, RoleAdmin, RoleRegistryAdmin:
		return true
	}
	return false
}

// User is the primary identity tracked by the portal.
//
// Invariants:
//   - Role is always one of the three portal tiers
//   - SeniorID fields are set once at issuance and never overwritten
//   - Users are never deleted; deactivation is not modeled
//
// Citizens are created when their registration application is approved;
// admin accounts are seeded at startup.
type User struct {
	ID        id.UserID `json:"id"`
	Role      Role      `json:"role"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	BirthDate time.Time `json:"birthDate,omitempty"`

	// Senior-ID card fields, populated by issuance and then frozen.
	SeniorIDNumber string     `json:"seniorIdNumber,omitempty"`
	SeniorIDIssued *time.Time `json:"seniorIdIssued,omitempty"`
	SeniorIDExpiry *time.Time `json:"seniorIdExpiry,omitempty"`

	Username     string `json:"username,omitempty"`
	PasswordHash string `json:"-"`
	AvatarURL    string `json:"avatarUrl,omitempty"`

	// Socio-economic and health intake attributes.
	LivingArrangement string   `json:"livingArrangement,omitempty"`
	IncomeSource      string   `json:"incomeSource,omitempty"`
	HealthConditions  []string `json:"healthConditions,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// DisplayName renders the name the way notifications address the citizen.
func (u User) DisplayName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// HasSeniorID reports whether an ID card was already issued. Issuance is
// idempotent per user; callers must check this before generating a number.
func (u User) HasSeniorID() bool {
	return u.SeniorIDNumber != ""
}

// CanCorrectRoleToCitizen guards the role-correction transition taken when
// an approved registration finds an existing non-citizen account.
func (u *User) CanCorrectRoleToCitizen() error {
	if u.Role == RoleCitizen {
		return dErrors.New(dErrors.CodeInvariantViolation, "user is already a citizen")
	}
	return nil
}

// ApplyRoleCorrection sets the role to citizen.
func (u *User) ApplyRoleCorrection() {
	u.Role = RoleCitizen
}

// ApplySeniorID records the issued card. Callers must have checked
// HasSeniorID; this never overwrites an existing number or its dates.
func (u *User) ApplySeniorID(number string, issued, expiry time.Time) {
	if u.HasSeniorID() {
		return
	}
	u.SeniorIDNumber = number
	u.SeniorIDIssued = &issued
	u.SeniorIDExpiry = &expiry
}
