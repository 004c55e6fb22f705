package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	dErrors "oscahub/pkg/domain-errors"
	id "oscahub/pkg/domain"
	"oscahub/pkg/platform/sentinel"
)

type InMemoryUserStoreSuite struct {
	suite.Suite
	store *InMemory
}

func TestInMemoryUserStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryUserStoreSuite))
}

func (s *InMemoryUserStoreSuite) SetupTest() {
	s.store = NewInMemory()
}

func (s *InMemoryUserStoreSuite) TestSaveAndFind() {
	ctx := context.Background()
	u := User{
		ID:        id.NewUserID(),
		Role:      RoleCitizen,
		FirstName: "Juan",
		LastName:  "Dela Cruz",
		Username:  "OSCA.jdelacruz.1958",
	}
	s.Require().NoError(s.store.Save(ctx, u))

	s.Run("by id", func() {
		found, err := s.store.FindByID(ctx, u.ID)
		s.NoError(err)
		s.Equal(u.Username, found.Username)
	})

	s.Run("by username, case-insensitive", func() {
		found, err := s.store.FindByUsername(ctx, "osca.JDELACRUZ.1958")
		s.NoError(err)
		s.Equal(u.ID, found.ID)
	})

	s.Run("unknown id is not found", func() {
		_, err := s.store.FindByID(ctx, id.NewUserID())
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("unknown username is not found", func() {
		_, err := s.store.FindByUsername(ctx, "nobody")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryUserStoreSuite) TestUsernameReindexOnSave() {
	ctx := context.Background()
	u := User{ID: id.NewUserID(), Role: RoleCitizen, Username: "old.name"}
	s.Require().NoError(s.store.Save(ctx, u))

	u.Username = "new.name"
	s.Require().NoError(s.store.Save(ctx, u))

	_, err := s.store.FindByUsername(ctx, "old.name")
	s.ErrorIs(err, sentinel.ErrNotFound)

	found, err := s.store.FindByUsername(ctx, "new.name")
	s.NoError(err)
	s.Equal(u.ID, found.ID)
}

func (s *InMemoryUserStoreSuite) TestListByRole() {
	ctx := context.Background()
	s.Require().NoError(s.store.Save(ctx, User{ID: id.NewUserID(), Role: RoleCitizen, FirstName: "Pedro", LastName: "Reyes"}))
	s.Require().NoError(s.store.Save(ctx, User{ID: id.NewUserID(), Role: RoleCitizen, FirstName: "Juan", LastName: "Dela Cruz"}))
	s.Require().NoError(s.store.Save(ctx, User{ID: id.NewUserID(), Role: RoleAdmin, FirstName: "Teresa", LastName: "Lim"}))

	citizens, err := s.store.ListByRole(ctx, RoleCitizen)
	s.Require().NoError(err)
	s.Require().Len(citizens, 2)
	s.Equal("Dela Cruz", citizens[0].LastName)
	s.Equal("Reyes", citizens[1].LastName)
}

func (s *InMemoryUserStoreSuite) TestExecute() {
	ctx := context.Background()
	u := User{ID: id.NewUserID(), Role: RoleAdmin, Username: "admin.osca"}
	s.Require().NoError(s.store.Save(ctx, u))

	s.Run("validate failure leaves the record untouched", func() {
		_, err := s.store.Execute(ctx, u.ID,
			func(*User) error { return dErrors.New(dErrors.CodeInvariantViolation, "nope") },
			func(target *User) { target.Role = RoleCitizen },
		)
		s.Error(err)

		found, err := s.store.FindByID(ctx, u.ID)
		s.NoError(err)
		s.Equal(RoleAdmin, found.Role)
	})

	s.Run("mutation is applied under the lock", func() {
		updated, err := s.store.Execute(ctx, u.ID,
			nil,
			func(target *User) { target.Role = RoleCitizen },
		)
		s.NoError(err)
		s.Equal(RoleCitizen, updated.Role)
	})

	s.Run("unknown id is not found", func() {
		_, err := s.store.Execute(ctx, id.NewUserID(), nil, nil)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryUserStoreSuite) TestSeed() {
	ctx := context.Background()
	s.Require().NoError(Seed(ctx, s.store, time.Now()))

	admin, err := s.store.FindByUsername(ctx, "admin.osca")
	s.Require().NoError(err)
	s.Equal(RoleAdmin, admin.Role)
	s.True(CheckPassword(admin.PasswordHash, "admin123"))

	registryAdmin, err := s.store.FindByUsername(ctx, "registry.osca")
	s.Require().NoError(err)
	s.Equal(RoleRegistryAdmin, registryAdmin.Role)

	citizen, err := s.store.FindByUsername(ctx, "OSCA.preyes.1950")
	s.Require().NoError(err)
	s.Equal(RoleCitizen, citizen.Role)
	s.True(CheckPassword(citizen.PasswordHash, "osca123456"))
}
