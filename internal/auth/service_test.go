package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"oscahub/internal/user"
)

// fakeRemote scripts the external backend's answers.
type fakeRemote struct {
	configured bool
	identity   *RemoteIdentity
	err        error
	calls      int
}

func (f *fakeRemote) Configured() bool { return f.configured }
func (f *fakeRemote) Login(_ context.Context, _, _ string) (*RemoteIdentity, error) {
	f.calls++
	return f.identity, f.err
}

type LoginSuite struct {
	suite.Suite
	users    *user.InMemory
	sessions *InMemorySessionStore
	remote   *fakeRemote
	service  *Service
	ctx      context.Context
}

func TestLoginSuite(t *testing.T) {
	suite.Run(t, new(LoginSuite))
}

func (s *LoginSuite) SetupTest() {
	s.users = user.NewInMemory()
	s.sessions = NewInMemorySessionStore()
	s.remote = &fakeRemote{}
	tokens := NewTokenService("test-signing-key", "oscahub", 12*time.Hour)
	s.service = NewService(s.users, s.sessions, tokens, s.remote, zap.NewNop(), nil)
	s.ctx = context.Background()

	s.Require().NoError(user.Seed(s.ctx, s.users, time.Now()))
}

func (s *LoginSuite) TestLocalLogin() {
	s.Run("seeded admin logs in", func() {
		result, err := s.service.Login(s.ctx, "admin.osca", "admin123")
		s.Require().NoError(err)
		s.Require().NotNil(result)
		s.Equal(user.RoleAdmin, result.User.Role)
		s.NotEmpty(result.Token)

		stored, err := s.sessions.FindByID(s.ctx, result.Session.ID)
		s.NoError(err)
		s.Equal(result.User.ID, stored.UserID)
	})

	s.Run("wrong password is a quiet no-match", func() {
		result, err := s.service.Login(s.ctx, "admin.osca", "wrong")
		s.NoError(err)
		s.Nil(result)
	})

	s.Run("unknown username is a quiet no-match", func() {
		result, err := s.service.Login(s.ctx, "nobody", "whatever")
		s.NoError(err)
		s.Nil(result)
	})

	s.Run("blank credentials never match", func() {
		result, err := s.service.Login(s.ctx, "", "")
		s.NoError(err)
		s.Nil(result)
	})

	s.Run("token claims carry the role", func() {
		result, err := s.service.Login(s.ctx, "registry.osca", "registry123")
		s.Require().NoError(err)
		s.Require().NotNil(result)

		claims, err := s.service.ValidateToken(result.Token)
		s.Require().NoError(err)
		s.Equal(string(user.RoleRegistryAdmin), claims.Role)
	})
}

func (s *LoginSuite) TestRemoteFirst() {
	s.Run("remote match wins and adopts the account locally", func() {
		s.remote.configured = true
		s.remote.identity = &RemoteIdentity{
			Username:  "OSCA.msantos.1959",
			FirstName: "Maria",
			LastName:  "Santos",
			Role:      RoleCode("5"),
		}

		result, err := s.service.Login(s.ctx, "OSCA.msantos.1959", "osca555555")
		s.Require().NoError(err)
		s.Require().NotNil(result)
		s.Equal(user.RoleCitizen, result.User.Role)

		adopted, err := s.users.FindByUsername(s.ctx, "OSCA.msantos.1959")
		s.NoError(err)
		s.Equal("Maria", adopted.FirstName)
	})

	s.Run("remote match reuses an existing local record", func() {
		s.remote.configured = true
		s.remote.identity = &RemoteIdentity{Username: "admin.osca", Role: RoleCode("ADMIN")}

		result, err := s.service.Login(s.ctx, "admin.osca", "anything-remote-accepted")
		s.Require().NoError(err)
		s.Require().NotNil(result)
		s.Equal("Teresa", result.User.FirstName)
	})

	s.Run("remote rejection still tries local", func() {
		s.remote.configured = true
		s.remote.identity = nil
		s.remote.err = nil
		before := s.remote.calls

		result, err := s.service.Login(s.ctx, "admin.osca", "admin123")
		s.Require().NoError(err)
		s.Require().NotNil(result)
		s.Equal(before+1, s.remote.calls)
	})

	s.Run("remote outage degrades to local", func() {
		s.remote.configured = true
		s.remote.identity = nil
		s.remote.err = errors.New("connection refused")

		result, err := s.service.Login(s.ctx, "admin.osca", "admin123")
		s.Require().NoError(err)
		s.Require().NotNil(result)
	})

	s.Run("unconfigured remote is never called", func() {
		s.remote.configured = false
		before := s.remote.calls
		_, err := s.service.Login(s.ctx, "admin.osca", "admin123")
		s.Require().NoError(err)
		s.Equal(before, s.remote.calls)
	})
}

func TestMapRole(t *testing.T) {
	cases := []struct {
		code     string
		username string
		want     user.Role
	}{
		{"1", "any", user.RoleAdmin},
		{"ADMIN", "any", user.RoleAdmin},
		{"admin", "any", user.RoleAdmin},
		{"SUPER ADMIN", "any", user.RoleRegistryAdmin},
		{"5", "any", user.RoleCitizen},
		{"CITIZEN", "any", user.RoleCitizen},
		{"", "OSCA.jdelacruz.1958", user.RoleCitizen},
		{"", "osca.jdelacruz.1958", user.RoleCitizen},
		{"", "mystery", user.RoleAdmin},
	}
	for _, tc := range cases {
		if got := MapRole(RoleCode(tc.code), tc.username); got != tc.want {
			t.Errorf("MapRole(%q, %q) = %v, want %v", tc.code, tc.username, got, tc.want)
		}
	}
}
