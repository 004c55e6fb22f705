package notification

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"oscahub/internal/platform/metrics"
)

// SMSSender delivers a short message to a mobile number.
type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
	Configured() bool
}

// EmailSender delivers an HTML email.
type EmailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
	Configured() bool
}

// Replicator mirrors a provisioned account to the remote auth backend.
type Replicator interface {
	Register(ctx context.Context, event AccountReplication) error
}

const (
	pollInterval = 250 * time.Millisecond
	batchSize    = 32
	// deliveryTimeout bounds each outbound call; there is no retry.
	deliveryTimeout = 15 * time.Second
)

// Dispatcher drains the outbox and performs best-effort delivery. Every
// failure is logged once and dropped; nothing propagates back to the
// operation that emitted the event.
type Dispatcher struct {
	outbox     *Outbox
	sms        SMSSender
	email      EmailSender
	replicator Replicator
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

func NewDispatcher(outbox *Outbox, sms SMSSender, email EmailSender, replicator Replicator, logger *zap.Logger, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{
		outbox:     outbox,
		sms:        sms,
		email:      email,
		replicator: replicator,
		logger:     logger,
		metrics:    m,
	}
}

// Run polls the outbox until the context is cancelled, then drains what
// remains so shutdown does not silently discard queued events.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.drain()
			return
		case <-ticker.C:
			d.deliverBatch(ctx)
		}
	}
}

func (d *Dispatcher) deliverBatch(ctx context.Context) {
	for _, event := range d.outbox.DequeueBatch(batchSize) {
		d.deliver(ctx, event)
	}
}

// drain flushes pending events with a fresh bounded context; the run
// context is already cancelled by the time shutdown reaches here.
func (d *Dispatcher) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()
	for {
		batch := d.outbox.DequeueBatch(batchSize)
		if len(batch) == 0 {
			return
		}
		for _, event := range batch {
			d.deliver(ctx, event)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, event Event) {
	ctx, cancel := context.WithTimeout(ctx, deliveryTimeout)
	defer cancel()

	switch e := event.(type) {
	case StatusChanged:
		d.deliverStatusChanged(ctx, e)
	case AccountReplication:
		d.deliverReplication(ctx, e)
	default:
		d.logger.Warn("dropping outbox event of unknown kind",
			zap.String("kind", string(event.EventKind())))
	}
}

func (d *Dispatcher) deliverStatusChanged(ctx context.Context, e StatusChanged) {
	message := composeMessage(e)

	if d.sms != nil && d.sms.Configured() && e.Recipient.Phone != "" {
		if err := d.sms.Send(ctx, e.Recipient.Phone, message); err != nil {
			d.countError("sms")
			d.logger.Warn("sms delivery failed",
				zap.String("application_id", e.ApplicationID),
				zap.Error(err))
		} else {
			d.countSent("sms")
		}
	}

	if d.email != nil && d.email.Configured() && e.Recipient.Email != "" {
		subject := fmt.Sprintf("OSCA application update: %s", e.Status)
		if err := d.email.Send(ctx, e.Recipient.Email, subject, composeEmailBody(e, message)); err != nil {
			d.countError("email")
			d.logger.Warn("email delivery failed",
				zap.String("application_id", e.ApplicationID),
				zap.Error(err))
		} else {
			d.countSent("email")
		}
	}
}

func (d *Dispatcher) deliverReplication(ctx context.Context, e AccountReplication) {
	if d.replicator == nil {
		return
	}
	if err := d.replicator.Register(ctx, e); err != nil {
		d.countError("auth_replication")
		d.logger.Warn("remote account replication failed; local store remains authoritative",
			zap.String("username", e.Username),
			zap.Error(err))
		return
	}
	d.countSent("auth_replication")
}

func (d *Dispatcher) countSent(channel string) {
	if d.metrics != nil {
		d.metrics.NotificationsSent.WithLabelValues(channel).Inc()
	}
}

func (d *Dispatcher) countError(channel string) {
	if d.metrics != nil {
		d.metrics.NotificationErrors.WithLabelValues(channel).Inc()
	}
}

func composeMessage(e StatusChanged) string {
	name := e.Recipient.Name
	if name == "" {
		name = "Citizen"
	}
	switch e.Status {
	case "approved":
		msg := fmt.Sprintf("Good day %s! Your %s application has been APPROVED.", name, typeLabel(e.ApplicationType))
		if e.Credentials != nil {
			msg += fmt.Sprintf(" You may now log in to the OSCA portal with username %s and password %s.",
				e.Credentials.Username, e.Credentials.Password)
		}
		return msg
	case "rejected":
		msg := fmt.Sprintf("Good day %s. We regret to inform you that your %s application was not approved.", name, typeLabel(e.ApplicationType))
		if e.RejectionReason != "" {
			msg += " Reason: " + e.RejectionReason
		}
		return msg
	case "issued":
		return fmt.Sprintf("Good day %s! Your senior citizen ID card is ready for pickup at the OSCA office.", name)
	default:
		return fmt.Sprintf("Good day %s. Your %s application status is now %s.", name, typeLabel(e.ApplicationType), e.Status)
	}
}

func composeEmailBody(e StatusChanged, message string) string {
	return fmt.Sprintf(
		"<html><body><p>%s</p><p>Application reference: <strong>%s</strong></p><p>— Office of Senior Citizen Affairs</p></body></html>",
		message, e.ApplicationID)
}

func typeLabel(t string) string {
	switch t {
	case "registration":
		return "senior citizen registration"
	case "new_id":
		return "new ID"
	case "renewal_id":
		return "ID renewal"
	case "replacement_id":
		return "ID replacement"
	case "cash_benefit":
		return "cash benefit"
	case "medical_benefit":
		return "medical benefit"
	case "philhealth":
		return "PhilHealth"
	default:
		return t
	}
}
