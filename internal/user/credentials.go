package user

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/url"
	"strings"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// defaultBirthYear stands in when a registration carries no usable birth
// date. Every applicant is at least 60, so 1960 is a safe placeholder.
const defaultBirthYear = 1960

// GenerateUsername derives the portal username from the applicant's name
// and birth year: OSCA.<first-initial><lowercased-alphabetic-only-lastname>.<year>.
// "Juan Dela Cruz" born 1960 becomes OSCA.jdelacruz.1960.
func GenerateUsername(firstName, lastName string, birthYear int) string {
	if birthYear <= 0 {
		birthYear = defaultBirthYear
	}

	initial := ""
	for _, r := range strings.TrimSpace(firstName) {
		initial = string(unicode.ToLower(r))
		break
	}

	var surname strings.Builder
	for _, r := range lastName {
		if unicode.IsLetter(r) {
			surname.WriteRune(unicode.ToLower(r))
		}
	}

	return fmt.Sprintf("OSCA.%s%s.%d", initial, surname.String(), birthYear)
}

// BirthYearOf extracts the year from a birth date, falling back to the
// default when the date is unknown.
func BirthYearOf(birthDate time.Time) int {
	if birthDate.IsZero() {
		return defaultBirthYear
	}
	return birthDate.Year()
}

// GeneratePassword returns a fresh one-time password of the form
// osca<6 digits> (100000–999999). The plaintext is surfaced once at
// provisioning; only the bcrypt hash is stored.
func GeneratePassword() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand failing means the process has bigger problems;
		// fall back to the lowest value in range rather than panicking.
		return "osca100000"
	}
	return fmt.Sprintf("osca%d", n.Int64()+100000)
}

// HashPassword produces the stored bcrypt hash for a plaintext password.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func CheckPassword(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// AvatarURL builds a deterministic avatar image URL seeded from the
// citizen's display name, so the same person always renders the same face.
func AvatarURL(displayName string) string {
	return "https://api.dicebear.com/9.x/initials/svg?seed=" + url.QueryEscape(displayName)
}

// GenerateSeniorIDNumber builds a card number SC-<issueYear>-<4 digits>.
// Collision checking is intentionally absent; card numbers are unique per
// user by the issuance idempotency rule, not globally sequenced.
func GenerateSeniorIDNumber(issueYear int) string {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return fmt.Sprintf("SC-%d-1000", issueYear)
	}
	return fmt.Sprintf("SC-%d-%d", issueYear, n.Int64()+1000)
}
