package registry

import "time"

// Seed returns the demo reference registry. In production these rows come
// from the LCR and PWD masterlists; the portal only ever reads them.
func Seed() []Record {
	return []Record{
		{
			ID:        "LCR-2024-001",
			Source:    SourceCivil,
			FirstName: "Juan",
			LastName:  "Dela Cruz",
			BirthDate: date(1958, time.March, 12),
			Sex:       "Male",
			Address:   "123 Mabini St., Barangay Poblacion",
		},
		{
			ID:        "LCR-2024-002",
			Source:    SourceCivil,
			FirstName: "Maria",
			LastName:  "Santos",
			BirthDate: date(1961, time.July, 4),
			Sex:       "Female",
			Address:   "45 Rizal Ave., Barangay San Isidro",
		},
		{
			ID:         "LCR-2024-003",
			Source:     SourceCivil,
			FirstName:  "Pedro",
			LastName:   "Reyes",
			BirthDate:  date(1950, time.December, 25),
			Sex:        "Male",
			Address:    "8 Bonifacio St., Barangay Malinis",
			HasAccount: true,
		},
		{
			ID:        "LCR-2024-004",
			Source:    SourceCivil,
			FirstName: "Josefa",
			LastName:  "Garcia",
			BirthDate: date(1970, time.May, 30),
			Sex:       "Female",
			Address:   "67 Luna St., Barangay Bagong Silang",
		},
		{
			ID:        "PWD-2024-007",
			Source:    SourceDisability,
			FirstName: "Ramon",
			LastName:  "Bautista",
			BirthDate: date(1957, time.September, 2),
			Sex:       "Male",
			Address:   "21 Aguinaldo St., Barangay Poblacion",
		},
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
