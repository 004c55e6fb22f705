package auth

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	platformmetrics "oscahub/internal/platform/metrics"
	"oscahub/internal/user"
	dErrors "oscahub/pkg/domain-errors"
	id "oscahub/pkg/domain"
	"oscahub/pkg/platform/sentinel"
	"oscahub/pkg/requestcontext"
)

// RemoteAuthenticator is the external backend's credential check. A nil
// identity with a nil error means the backend definitively rejected the
// credentials.
type RemoteAuthenticator interface {
	Configured() bool
	Login(ctx context.Context, username, password string) (*RemoteIdentity, error)
}

// Service performs the two-tier login. Invalid credentials are never an
// error: both tiers answer "no match" the same way, and the handler turns
// a nil result into 401. Errors are reserved for conditions the caller
// can do nothing about.
type Service struct {
	users    user.Store
	sessions SessionStore
	tokens   *TokenService
	remote   RemoteAuthenticator
	logger   *zap.Logger
	metrics  *platformmetrics.Metrics
}

func NewService(users user.Store, sessions SessionStore, tokens *TokenService, remote RemoteAuthenticator, logger *zap.Logger, metrics *platformmetrics.Metrics) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		remote:   remote,
		logger:   logger,
		metrics:  metrics,
	}
}

// Login authenticates a username/password pair. Remote first, local
// fallback; a remote outage degrades to local-only rather than failing
// the login. Returns (nil, nil) when the credentials match nothing.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		s.countAttempt("none", "rejected")
		return nil, nil
	}

	if s.remote != nil && s.remote.Configured() {
		identity, err := s.remote.Login(ctx, username, password)
		switch {
		case err != nil:
			// Remote outage is not a login failure; the seeded local
			// store still answers.
			s.logger.Warn("remote auth check failed, falling back to local",
				zap.String("username", username), zap.Error(err))
		case identity != nil:
			result, err := s.establishSession(ctx, s.localUserFor(ctx, username, identity))
			if err != nil {
				return nil, err
			}
			s.countAttempt("remote", "accepted")
			return result, nil
		default:
			// Definitive remote rejection. The local store still gets a
			// chance: seeded admin accounts never exist remotely.
		}
	}

	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.countAttempt("local", "rejected")
			return nil, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "user lookup failed")
	}
	if !user.CheckPassword(u.PasswordHash, password) {
		s.countAttempt("local", "rejected")
		return nil, nil
	}

	result, err := s.establishSession(ctx, u)
	if err != nil {
		return nil, err
	}
	s.countAttempt("local", "accepted")
	return result, nil
}

// ValidateToken resolves a bearer token to its claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	return s.tokens.Validate(tokenString)
}

// localUserFor resolves the local record behind a remote match. The local
// store is the system of record for profile data; a remote-only identity
// is adopted into it so the masterlist and later logins see one account.
func (s *Service) localUserFor(ctx context.Context, username string, identity *RemoteIdentity) user.User {
	if u, err := s.users.FindByUsername(ctx, username); err == nil {
		return u
	}

	adopted := user.User{
		ID:        id.NewUserID(),
		Role:      MapRole(identity.Role, username),
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		Email:     identity.Email,
		Phone:     identity.Phone,
		Username:  username,
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := s.users.Save(ctx, adopted); err != nil {
		s.logger.Warn("failed to adopt remote account locally",
			zap.String("username", username), zap.Error(err))
	} else {
		s.logger.Info("adopted remote account",
			zap.String("username", username), zap.String("role", string(adopted.Role)))
	}
	return adopted
}

func (s *Service) establishSession(ctx context.Context, u user.User) (*LoginResult, error) {
	now := requestcontext.Now(ctx)
	sessionID := id.NewSessionID()

	token, err := s.tokens.Generate(u.ID, sessionID, string(u.Role), now)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign access token")
	}

	session := Session{
		ID:        sessionID,
		UserID:    u.ID,
		Username:  u.Username,
		Role:      u.Role,
		ClientIP:  requestcontext.ClientIP(ctx),
		UserAgent: requestcontext.UserAgent(ctx),
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokens.TTL()),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record session")
	}

	s.logger.Info("login succeeded",
		zap.String("username", u.Username),
		zap.String("role", string(u.Role)),
		zap.String("session_id", sessionID.String()),
	)
	return &LoginResult{User: u, Token: token, Session: session}, nil
}

func (s *Service) countAttempt(tier, outcome string) {
	if s.metrics != nil {
		s.metrics.LoginAttempts.WithLabelValues(tier, outcome).Inc()
	}
}
