package user

import (
	"context"
	"fmt"
	"time"

	id "oscahub/pkg/domain"
)

// seedAccount pairs a user with its demo plaintext password.
type seedAccount struct {
	user     User
	password string
}

// Seed installs the demo accounts: the two admin tiers plus one citizen who
// already holds an account (matching the registry record flagged
// HasAccount). Restarting the process resets the store to exactly this set.
func Seed(ctx context.Context, store Store, now time.Time) error {
	accounts := []seedAccount{
		{
			user: User{
				ID:        id.NewUserID(),
				Role:      RoleAdmin,
				FirstName: "Teresa",
				LastName:  "Lim",
				Email:     "osca.admin@example.gov.ph",
				Username:  "admin.osca",
				CreatedAt: now,
			},
			password: "admin123",
		},
		{
			user: User{
				ID:        id.NewUserID(),
				Role:      RoleRegistryAdmin,
				FirstName: "Carlos",
				LastName:  "Mendoza",
				Email:     "registry.admin@example.gov.ph",
				Username:  "registry.osca",
				CreatedAt: now,
			},
			password: "registry123",
		},
		{
			user: User{
				ID:        id.NewUserID(),
				Role:      RoleCitizen,
				FirstName: "Pedro",
				LastName:  "Reyes",
				Email:     "pedro.reyes@example.com",
				Phone:     "09171234567",
				Address:   "8 Bonifacio St., Barangay Malinis",
				BirthDate: time.Date(1950, time.December, 25, 0, 0, 0, 0, time.UTC),
				Username:  GenerateUsername("Pedro", "Reyes", 1950),
				AvatarURL: AvatarURL("Pedro Reyes"),
				CreatedAt: now,
			},
			password: "osca123456",
		},
	}

	for _, acct := range accounts {
		hash, err := HashPassword(acct.password)
		if err != nil {
			return fmt.Errorf("hash seed password for %s: %w", acct.user.Username, err)
		}
		acct.user.PasswordHash = hash
		if err := store.Save(ctx, acct.user); err != nil {
			return fmt.Errorf("seed user %s: %w", acct.user.Username, err)
		}
	}
	return nil
}
