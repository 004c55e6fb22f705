package registry

import "time"

// Source identifies which authoritative registry a record came from.
type Source string

const (
	// SourceCivil is the Local Civil Registry (birth and civil status records).
	SourceCivil Source = "LCR"
	// SourceDisability is the Persons With Disability registry.
	SourceDisability Source = "PWD"
)

// Record is an authoritative reference record used for read-only identity
// verification during registration. Immutable after seed.
type Record struct {
	ID         string    `json:"id"`
	Source     Source    `json:"source"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	BirthDate  time.Time `json:"birthDate"`
	Sex        string    `json:"sex"`
	Address    string    `json:"address"`
	// HasAccount marks records whose person already holds a citizen account,
	// so registration pre-fill can warn instead of creating a duplicate.
	HasAccount bool `json:"hasAccount"`
}

// EligibleAt reports whether the person is at least 60 years old at the
// given date. The comparison is calendar-aware: someone born 1964-03-10 is
// eligible on 2024-03-10 and not on 2024-03-09. Elapsed-days division would
// drift across leap years, so the year/month/day fields are compared
// directly.
func (r Record) EligibleAt(now time.Time) bool {
	years := now.Year() - r.BirthDate.Year()
	anniversaryPassed := now.Month() > r.BirthDate.Month() ||
		(now.Month() == r.BirthDate.Month() && now.Day() >= r.BirthDate.Day())
	if !anniversaryPassed {
		years--
	}
	return years >= 60
}
