// Package inquiry submits repair and custom-bag requests from the shopper's
// side. Email is the primary channel; the backend copy is best-effort.
package inquiry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/maison-sac/storefront-api/models"
	"go.uber.org/zap"
)

const DefaultBackendTimeout = 10 * time.Second

type Backend interface {
	SubmitCustomBag(ctx context.Context, req models.CustomBagRequest) error
	SubmitRepair(ctx context.Context, req models.RepairRequest) error
}

type Message struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer writes messages to the log instead of delivering them.
type LogMailer struct {
	Logger *zap.Logger
}

func (m LogMailer) Send(_ context.Context, msg Message) error {
	m.Logger.Info("Email",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("body_bytes", len(msg.Body)))
	return nil
}

type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

type Submitter struct {
	backend      Backend
	mailer       Mailer
	atelierEmail string
	timeout      time.Duration
	logger       *zap.Logger
}

func NewSubmitter(backend Backend, mailer Mailer, atelierEmail string, timeout time.Duration, logger *zap.Logger) *Submitter {
	if timeout <= 0 {
		timeout = DefaultBackendTimeout
	}
	return &Submitter{backend: backend, mailer: mailer, atelierEmail: atelierEmail, timeout: timeout, logger: logger}
}

func (s *Submitter) SubmitCustomBag(ctx context.Context, req models.CustomBagRequest) error {
	if missing := req.MissingFields(); len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	s.save(ctx, "custom-bag", req.Email, func(ctx context.Context) error {
		return s.backend.SubmitCustomBag(ctx, req)
	})

	body := fmt.Sprintf("Bag type: %s\nSize: %s\nMaterial: %s\nColor: %s\nBudget: %s\n\n%s",
		req.BagType, req.Size, req.Material, req.Color, req.Budget, req.Details)
	return s.notify(ctx, req.Name, req.Email, "custom bag request", body)
}

func (s *Submitter) SubmitRepair(ctx context.Context, req models.RepairRequest) error {
	if missing := req.MissingFields(); len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	s.save(ctx, "repair", req.Email, func(ctx context.Context) error {
		return s.backend.SubmitRepair(ctx, req)
	})

	body := fmt.Sprintf("Brand: %s\nItem: %s\nIssue: %s\n\n%s", req.Brand, req.ItemType, req.Issue, req.Details)
	return s.notify(ctx, req.Name, req.Email, "repair request", body)
}

// save runs the backend write under a fixed deadline; any failure is logged
// and otherwise ignored.
func (s *Submitter) save(ctx context.Context, kind, email string, fn func(context.Context) error) {
	if s.backend == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Request backend save panicked", zap.String("kind", kind), zap.Any("panic", r))
		}
	}()
	if err := fn(ctx); err != nil {
		s.logger.Warn("Failed to save request on server", zap.String("kind", kind), zap.String("email", email), zap.Error(err))
	}
}

func (s *Submitter) notify(ctx context.Context, name, email, what, details string) error {
	if s.atelierEmail != "" {
		if err := s.mailer.Send(ctx, Message{
			To:      s.atelierEmail,
			ReplyTo: email,
			Subject: fmt.Sprintf("New %s from %s", what, name),
			Body:    details,
		}); err != nil {
			s.logger.Warn("Failed to notify atelier", zap.String("kind", what), zap.Error(err))
		}
	}
	if err := s.mailer.Send(ctx, Message{
		To:      email,
		Subject: fmt.Sprintf("We received your %s", what),
		Body:    fmt.Sprintf("Dear %s,\n\nThank you for your %s. Our artisans will be in touch shortly.\n\n%s", name, what, details),
	}); err != nil {
		return fmt.Errorf("send confirmation: %w", err)
	}
	return nil
}
