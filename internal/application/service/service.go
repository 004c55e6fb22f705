// Package service orchestrates the application lifecycle: submission, the
// approval state machine with its account-provisioning side effect, and
// senior-ID issuance.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"oscahub/internal/application"
	appmetrics "oscahub/internal/application/metrics"
	"oscahub/internal/notification"
	platformmetrics "oscahub/internal/platform/metrics"
	"oscahub/internal/user"
	dErrors "oscahub/pkg/domain-errors"
	id "oscahub/pkg/domain"
	"oscahub/pkg/platform/sentinel"
	"oscahub/pkg/requestcontext"
)

// AccountMarker flags a registry record as having a citizen account, so
// registration pre-fill warns instead of provisioning a duplicate.
type AccountMarker interface {
	MarkHasAccount(ctx context.Context, registryID string)
}

// Service owns the application lifecycle. The local stores are the system
// of record; every remote effect goes through the outbox and is
// best-effort only.
type Service struct {
	apps     application.Store
	users    user.Store
	outbox   notification.Publisher
	registry AccountMarker
	logger   *zap.Logger
	metrics  *appmetrics.Metrics
	platform *platformmetrics.Metrics
	tracer   trace.Tracer
}

// Option configures optional service dependencies.
type Option func(*Service)

// WithRegistryMarker wires the registry store so approvals can flag
// matched records.
func WithRegistryMarker(m AccountMarker) Option {
	return func(s *Service) { s.registry = m }
}

// WithMetrics wires the module and process metric sets.
func WithMetrics(m *appmetrics.Metrics, pm *platformmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
		s.platform = pm
	}
}

func New(apps application.Store, users user.Store, outbox notification.Publisher, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		apps:   apps,
		users:  users,
		outbox: outbox,
		logger: logger,
		tracer: otel.Tracer("oscahub/application"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitInput carries everything the caller provides; ID, status, and date
// are assigned here.
type SubmitInput struct {
	Type        application.Type
	UserID      id.UserID
	Applicant   application.Applicant
	Description string
	Documents   []string
}

// Submit records a new application: fresh ID, date = the request day,
// status = pending, prepended so the newest entry lists first. It cannot
// fail under normal conditions.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (application.Application, error) {
	if !input.Type.Valid() {
		return application.Application{}, dErrors.New(dErrors.CodeInvalidInput, "unknown application type")
	}

	userID := input.UserID
	if userID.IsNil() {
		// Anonymous registration: the generated user ID becomes the account
		// ID when the application is approved.
		userID = id.NewUserID()
	}

	app := application.Application{
		ID:          id.NewApplicationID(),
		Type:        input.Type,
		UserID:      userID,
		Applicant:   input.Applicant,
		Description: input.Description,
		Documents:   input.Documents,
		Status:      application.StatusPending,
		Date:        dayOf(requestcontext.Now(ctx)),
	}

	if err := s.apps.Insert(ctx, app); err != nil {
		return application.Application{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record application")
	}

	if s.metrics != nil {
		s.metrics.Submitted.WithLabelValues(string(app.Type)).Inc()
	}
	s.logger.Info("application submitted",
		zap.String("application_id", app.ID.String()),
		zap.String("type", string(app.Type)),
	)
	return app, nil
}

// UpdateStatus drives the Pending → Approved/Rejected edge.
//
// An unknown application ID is a silent no-op. Approving a registration
// first provisions the citizen account (at most once per user ID; repeat
// approvals only correct a non-citizen role). The local transition commits
// before any remote delivery is attempted; outbox failures never roll it
// back.
func (s *Service) UpdateStatus(ctx context.Context, appID id.ApplicationID, newStatus application.Status, reason string) error {
	ctx, span := s.tracer.Start(ctx, "application.UpdateStatus",
		trace.WithAttributes(attribute.String("application.id", appID.String())))
	defer span.End()

	start := time.Now()
	if s.metrics != nil {
		defer s.metrics.ObserveUpdateStatus(start)
	}

	if newStatus != application.StatusApproved && newStatus != application.StatusRejected {
		return dErrors.New(dErrors.CodeInvalidInput, "status must be approved or rejected")
	}

	app, err := s.apps.FindByID(ctx, appID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.logger.Debug("status update for unknown application ignored",
				zap.String("application_id", appID.String()))
			return nil
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "application lookup failed")
	}

	// Check the transition on the fetched aggregate before any side effect
	// runs; a refused approval must not provision an account.
	if newStatus == application.StatusApproved {
		err = app.CanApprove()
	} else {
		err = app.CanReject()
	}
	if err != nil {
		return dErrors.New(dErrors.CodeConflict, "application is no longer pending")
	}

	// Side-effect gate: approving a registration provisions the account
	// before the status flips, so a crash between the two leaves a user
	// without an approval rather than an approval without a user.
	var creds *notification.Credentials
	if app.Type == application.TypeRegistration && newStatus == application.StatusApproved {
		creds, err = s.ensureCitizenAccount(ctx, app)
		if err != nil {
			return err
		}
	}

	updated, err := s.apps.Execute(ctx, appID,
		func(a *application.Application) error {
			if newStatus == application.StatusApproved {
				return a.CanApprove()
			}
			return a.CanReject()
		},
		func(a *application.Application) {
			if newStatus == application.StatusApproved {
				a.ApplyApproval()
			} else {
				a.ApplyRejection(reason)
			}
		},
	)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return dErrors.New(dErrors.CodeConflict, "application is no longer pending")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update application status")
	}

	if s.metrics != nil {
		if newStatus == application.StatusApproved {
			s.metrics.Approved.Inc()
		} else {
			s.metrics.Rejected.Inc()
		}
	}

	s.notifyStatusChanged(ctx, updated, creds)

	s.logger.Info("application status updated",
		zap.String("application_id", appID.String()),
		zap.String("status", string(updated.Status)),
	)
	return nil
}

// IssueIDCard marks an approved card-bearing application as issued and
// stamps the citizen's card fields.
//
// An unknown application ID is a silent no-op. Issuance is idempotent per
// user: an existing card number and its dates are never overwritten.
func (s *Service) IssueIDCard(ctx context.Context, appID id.ApplicationID) error {
	ctx, span := s.tracer.Start(ctx, "application.IssueIDCard",
		trace.WithAttributes(attribute.String("application.id", appID.String())))
	defer span.End()

	app, err := s.apps.FindByID(ctx, appID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.logger.Debug("issuance for unknown application ignored",
				zap.String("application_id", appID.String()))
			return nil
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "application lookup failed")
	}

	// Check the transition before stamping the user; a refused issuance
	// must not leave card fields behind.
	if err := app.CanIssue(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeConflict, "application cannot be issued")
	}

	now := requestcontext.Now(ctx)
	issued := dayOf(now)
	// Same month and day, three years on.
	expiry := issued.AddDate(3, 0, 0)

	if err := s.stampSeniorID(ctx, app.UserID, issued, expiry); err != nil {
		return err
	}

	updated, err := s.apps.Execute(ctx, appID,
		func(a *application.Application) error { return a.CanIssue() },
		func(a *application.Application) { a.ApplyIssuance() },
	)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return dErrors.Wrap(err, dErrors.CodeConflict, "application cannot be issued")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to mark application issued")
	}

	if s.metrics != nil {
		s.metrics.Issued.Inc()
	}

	s.notifyStatusChanged(ctx, updated, nil)

	s.logger.Info("senior ID issued",
		zap.String("application_id", appID.String()),
		zap.String("user_id", app.UserID.String()),
	)
	return nil
}

// List returns all applications, newest first.
func (s *Service) List(ctx context.Context) ([]application.Application, error) {
	apps, err := s.apps.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list applications")
	}
	return apps, nil
}

// ListByUser returns one citizen's applications, newest first.
func (s *Service) ListByUser(ctx context.Context, userID id.UserID) ([]application.Application, error) {
	apps, err := s.apps.ListByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list applications")
	}
	return apps, nil
}

// ensureCitizenAccount provisions the account behind an approved
// registration, or corrects the role of an account that already exists.
// Returns the one-time credentials when (and only when) a new account was
// created.
func (s *Service) ensureCitizenAccount(ctx context.Context, app application.Application) (*notification.Credentials, error) {
	existing, err := s.users.FindByID(ctx, app.UserID)
	switch {
	case err == nil:
		if existing.Role != user.RoleCitizen {
			_, err := s.users.Execute(ctx, app.UserID,
				func(u *user.User) error { return u.CanCorrectRoleToCitizen() },
				func(u *user.User) { u.ApplyRoleCorrection() },
			)
			if err != nil {
				return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to correct user role")
			}
			s.logger.Info("corrected existing account role to citizen",
				zap.String("user_id", app.UserID.String()))
		}
		return nil, nil

	case errors.Is(err, sentinel.ErrNotFound):
		return s.provisionCitizen(ctx, app)

	default:
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "user lookup failed")
	}
}

func (s *Service) provisionCitizen(ctx context.Context, app application.Application) (*notification.Credentials, error) {
	applicant := app.Applicant
	now := requestcontext.Now(ctx)

	username := user.GenerateUsername(applicant.FirstName, applicant.LastName, user.BirthYearOf(applicant.BirthDate))
	password := user.GeneratePassword()
	hash, err := user.HashPassword(password)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash generated password")
	}

	newUser := user.User{
		ID:           app.UserID,
		Role:         user.RoleCitizen,
		FirstName:    applicant.FirstName,
		LastName:     applicant.LastName,
		Email:        applicant.Email,
		Phone:        applicant.Phone,
		Address:      applicant.Address,
		BirthDate:    applicant.BirthDate,
		Username:     username,
		PasswordHash: hash,
		AvatarURL:    user.AvatarURL(applicant.FirstName + " " + applicant.LastName),
		CreatedAt:    now,
	}

	if err := s.users.Save(ctx, newUser); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create citizen account")
	}

	if s.platform != nil {
		s.platform.IncrementUsersCreated()
	}
	if s.registry != nil && applicant.RegistryID != "" {
		s.registry.MarkHasAccount(ctx, applicant.RegistryID)
	}

	// Best-effort replication to the remote auth backend; the dispatcher
	// logs and drops failures, the local account stands regardless.
	s.outbox.Publish(notification.AccountReplication{
		Username:  username,
		Password:  password,
		RoleCode:  "5",
		FirstName: applicant.FirstName,
		LastName:  applicant.LastName,
		Email:     applicant.Email,
		Phone:     applicant.Phone,
	})

	s.logger.Info("citizen account provisioned",
		zap.String("user_id", newUser.ID.String()),
		zap.String("username", username),
	)

	return &notification.Credentials{Username: username, Password: password}, nil
}

func (s *Service) notifyStatusChanged(ctx context.Context, app application.Application, creds *notification.Credentials) {
	recipient := notification.Contact{
		Name:  strings.TrimSpace(app.Applicant.FirstName + " " + app.Applicant.LastName),
		Phone: app.Applicant.Phone,
		Email: app.Applicant.Email,
	}
	// Non-registration applications may carry a sparse applicant block;
	// fall back to the account's contact details.
	if recipient.Phone == "" || recipient.Email == "" || recipient.Name == "" {
		if u, err := s.users.FindByID(ctx, app.UserID); err == nil {
			if recipient.Name == "" {
				recipient.Name = u.DisplayName()
			}
			if recipient.Phone == "" {
				recipient.Phone = u.Phone
			}
			if recipient.Email == "" {
				recipient.Email = u.Email
			}
		}
	}

	s.outbox.Publish(notification.StatusChanged{
		ApplicationID:   app.ID.String(),
		ApplicationType: string(app.Type),
		Status:          string(app.Status),
		RejectionReason: app.RejectionReason,
		Recipient:       recipient,
		Credentials:     creds,
		OccurredAt:      requestcontext.Now(ctx),
	})
}

// stampSeniorID writes the card fields onto the user, generating a number
// only when none exists yet.
func (s *Service) stampSeniorID(ctx context.Context, userID id.UserID, issued, expiry time.Time) error {
	number := user.GenerateSeniorIDNumber(issued.Year())
	_, err := s.users.Execute(ctx, userID,
		nil,
		func(u *user.User) {
			if u.HasSeniorID() {
				return
			}
			u.ApplySeniorID(number, issued, expiry)
		},
	)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			// The card application predates the account; keep the
			// application transition, the card fields have nowhere to live.
			s.logger.Warn("issuance for application without a user account",
				zap.String("user_id", userID.String()))
			return nil
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to stamp senior ID")
	}
	return nil
}

// dayOf truncates a timestamp to its calendar day.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
