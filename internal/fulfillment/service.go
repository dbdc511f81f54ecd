package fulfillment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/maritalgrace/tickets-backend/pkg/brevo"
	"github.com/maritalgrace/tickets-backend/pkg/config"
	"github.com/maritalgrace/tickets-backend/pkg/db/models"
	pkgerrors "github.com/maritalgrace/tickets-backend/pkg/errors"
	"github.com/maritalgrace/tickets-backend/pkg/logger"
	"github.com/maritalgrace/tickets-backend/pkg/metrics"
	"github.com/maritalgrace/tickets-backend/pkg/sheets"
	"github.com/maritalgrace/tickets-backend/pkg/ticketpdf"
)

const saleStatusPaid = "PAID"

// RecordSink receives one guest-list row per completed sale. Appends are
// best-effort: a sink outage must never cost a buyer their ticket.
type RecordSink interface {
	Append(ctx context.Context, row sheets.Row) error
}

// Renderer produces the ticket artifact for a reference code.
type Renderer interface {
	Render(data ticketpdf.TicketData) ([]byte, error)
}

// Mailer delivers the rendered ticket to the buyer.
type Mailer interface {
	SendEmail(ctx context.Context, params brevo.SendEmailParams) error
}

// Service turns a successful payment into a delivered ticket.
type Service interface {
	Fulfill(ctx context.Context, input Input) (*Result, error)
	Sales(ctx context.Context) ([]models.TicketSale, error)
}

// Input is the order context returned by the payment redirect.
type Input struct {
	Email     string
	Quantity  int
	FirstName string
	LastName  string
}

// Result reports a completed fulfillment.
type Result struct {
	Reference string
}

// ServiceParams wires fulfillment dependencies. Sink and Repo may be nil;
// both are optional record-keeping, not delivery.
type ServiceParams struct {
	Renderer Renderer
	Mailer   Mailer
	Sink     RecordSink
	Repo     Repository
	Event    config.EventConfig
	Logger   *logger.Logger
	Metrics  *metrics.FulfillmentMetrics
}

type service struct {
	renderer Renderer
	mailer   Mailer
	sink     RecordSink
	repo     Repository
	event    config.EventConfig
	logg     *logger.Logger
	metrics  *metrics.FulfillmentMetrics
	now      func() time.Time
}

// NewService wires the fulfillment orchestrator.
func NewService(params ServiceParams) (Service, error) {
	if params.Renderer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "ticket renderer required")
	}
	if params.Mailer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "mailer required")
	}
	return &service{
		renderer: params.Renderer,
		mailer:   params.Mailer,
		sink:     params.Sink,
		repo:     params.Repo,
		event:    params.Event,
		logg:     params.Logger,
		metrics:  params.Metrics,
		now:      time.Now,
	}, nil
}

func (s *service) Fulfill(ctx context.Context, input Input) (*Result, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	started := s.now()
	reference := NewReference(s.event.ReferencePrefix)
	if s.logg != nil {
		ctx = s.logg.WithReference(ctx, reference)
	}

	buyerName := strings.TrimSpace(strings.TrimSpace(input.FirstName) + " " + strings.TrimSpace(input.LastName))

	// Record-keeping first, delivery second. Failures here are logged and
	// counted but never abort: the buyer has already paid.
	if s.sink != nil {
		row := sheets.Row{
			Date:      started.Format("2006/01/02"),
			Name:      buyerName,
			Email:     email,
			Reference: reference,
			Quantity:  input.Quantity,
			Status:    saleStatusPaid,
		}
		if err := s.sink.Append(ctx, row); err != nil {
			s.metrics.IncSinkFailure()
			if s.logg != nil {
				s.logg.Error(ctx, "fulfillment.sink_append_failed", pkgerrors.Wrap(pkgerrors.CodeSink, err, "append sales row"))
			}
		}
	}

	if s.repo != nil {
		sale := &models.TicketSale{
			ID:        uuid.New(),
			Reference: reference,
			Email:     email,
			Name:      buyerName,
			Quantity:  input.Quantity,
			Status:    saleStatusPaid,
			CreatedAt: started,
		}
		if err := s.repo.Append(ctx, sale); err != nil {
			if s.logg != nil {
				s.logg.Error(ctx, "fulfillment.sale_persist_failed", err)
			}
		}
	}

	artifact, err := s.renderer.Render(ticketpdf.TicketData{
		Reference: reference,
		Email:     email,
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Quantity:  input.Quantity,
	})
	if err != nil {
		s.metrics.IncFulfillment("failure")
		return nil, pkgerrors.Wrap(pkgerrors.CodeProcessing, err, "render ticket").
			WithDetails(map[string]any{"step": "render"})
	}

	err = s.mailer.SendEmail(ctx, brevo.SendEmailParams{
		ToEmail:     email,
		ToName:      buyerName,
		Subject:     fmt.Sprintf("Your Tickets: Marital Grace Seminar (Ref: %s)", reference),
		HTMLContent: "<h2>Success!</h2><p>Your tickets for Marital Grace are attached.</p>",
		Attachments: []brevo.Attachment{{
			Name:    fmt.Sprintf("Ticket-%s.pdf", reference),
			Content: artifact,
		}},
	})
	if err != nil {
		s.metrics.IncFulfillment("failure")
		return nil, pkgerrors.Wrap(pkgerrors.CodeProcessing, err, "dispatch ticket email").
			WithDetails(map[string]any{"step": "dispatch"})
	}

	s.metrics.IncFulfillment("success")
	s.metrics.ObserveFulfillment(s.now().Sub(started))
	if s.logg != nil {
		s.logg.Info(ctx, "fulfillment.complete")
	}

	return &Result{Reference: reference}, nil
}

func (s *service) Sales(ctx context.Context) ([]models.TicketSale, error) {
	if s.repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "sales repository not configured")
	}
	sales, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sales")
	}
	return sales, nil
}

// NewReference issues a display reference: the configured prefix plus the
// first eight hex characters of a random UUID, uppercased. Uniqueness is
// probabilistic; nothing checks against previously issued codes.
func NewReference(prefix string) string {
	p := strings.TrimSpace(prefix)
	if p == "" {
		p = "MG"
	}
	segment := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return p + "-" + strings.ToUpper(segment)
}
