package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/mail"
	"sort"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
)

// Notification template names.
const (
	TemplateWelcome             = "welcome"
	TemplatePartnershipApproved = "partnership_approved"
	TemplatePaymentReceived     = "payment_received"
)

// NotificationRequest is the payload of the notification endpoint.
type NotificationRequest struct {
	To       string         `json:"to"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data"`
}

// Email is a rendered message ready for dispatch.
type Email struct {
	To      string
	Subject string
	HTML    string
}

// Mailer dispatches rendered emails.
type Mailer interface {
	Send(ctx context.Context, email *Email) error
}

// LogMailer writes rendered emails to the log instead of delivering them.
type LogMailer struct {
	log *log.Helper
}

// NewLogMailer constructs a LogMailer.
func NewLogMailer(logger log.Logger) *LogMailer {
	return &LogMailer{log: log.NewHelper(logger)}
}

// Send implements Mailer.
func (m *LogMailer) Send(ctx context.Context, email *Email) error {
	m.log.WithContext(ctx).Infow(
		"msg", "email rendered",
		"to", email.To,
		"subject", email.Subject,
		"html_bytes", len(email.HTML),
	)
	return nil
}

type emailTemplate struct {
	subject string
	body    *template.Template
}

var templateFuncs = template.FuncMap{
	// get returns data[key] or fallback when the key is absent or empty.
	"get": func(data map[string]any, key, fallback string) string {
		if v, ok := data[key]; ok && v != nil {
			if s := fmt.Sprint(v); s != "" {
				return s
			}
		}
		return fallback
	},
}

var emailTemplates = map[string]emailTemplate{
	TemplateWelcome: {
		subject: "Welcome to SISO Agency",
		body: template.Must(template.New(TemplateWelcome).Funcs(templateFuncs).Parse(`<!DOCTYPE html>
<html><body style="font-family: sans-serif;">
  <h1>Welcome, {{ get . "name" "there" }}!</h1>
  <p>Your account is ready. Sign in to your dashboard to start working with the agency team.</p>
  <p><a href="{{ get . "dashboard_url" "https://siso.agency/dashboard" }}">Open dashboard</a></p>
</body></html>`)),
	},
	TemplatePartnershipApproved: {
		subject: "Your partnership application was approved",
		body: template.Must(template.New(TemplatePartnershipApproved).Funcs(templateFuncs).Parse(`<!DOCTYPE html>
<html><body style="font-family: sans-serif;">
  <h1>Congratulations, {{ get . "name" "partner" }}!</h1>
  <p>Your partnership application has been approved at the {{ get . "tier" "standard" }} tier.</p>
  <p>Your referral code: <strong>{{ get . "referral_code" "pending" }}</strong></p>
</body></html>`)),
	},
	TemplatePaymentReceived: {
		subject: "Payment received",
		body: template.Must(template.New(TemplatePaymentReceived).Funcs(templateFuncs).Parse(`<!DOCTYPE html>
<html><body style="font-family: sans-serif;">
  <h1>Thank you, {{ get . "name" "customer" }}</h1>
  <p>We received your payment of {{ get . "amount" "0.00" }} {{ get . "currency" "GBP" }}.</p>
  <p>Invoice: {{ get . "invoice_id" "n/a" }}</p>
</body></html>`)),
	},
}

// TemplateNames lists the supported templates in sorted order.
func TemplateNames() []string {
	names := make([]string, 0, len(emailTemplates))
	for name := range emailTemplates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NotificationService renders templated emails and hands them to a Mailer.
type NotificationService struct {
	mailer Mailer
	log    *log.Helper
}

// NewNotificationService constructs the service.
func NewNotificationService(mailer Mailer, logger log.Logger) *NotificationService {
	return &NotificationService{
		mailer: mailer,
		log:    log.NewHelper(logger),
	}
}

// Render validates the request and renders the selected template.
func (s *NotificationService) Render(req *NotificationRequest) (*Email, error) {
	if req == nil {
		return nil, errors.BadRequest("INVALID_REQUEST", "request body is required")
	}
	to := strings.TrimSpace(req.To)
	if to == "" {
		return nil, errors.BadRequest("INVALID_RECIPIENT", "to is required")
	}
	if _, err := mail.ParseAddress(to); err != nil {
		return nil, errors.BadRequest("INVALID_RECIPIENT", fmt.Sprintf("invalid recipient %q", to))
	}
	tpl, ok := emailTemplates[req.Template]
	if !ok {
		return nil, errors.BadRequest("UNKNOWN_TEMPLATE", fmt.Sprintf("unknown template %q", req.Template)).
			WithMetadata(map[string]string{"supported": strings.Join(TemplateNames(), ",")})
	}

	data := req.Data
	if data == nil {
		data = map[string]any{}
	}
	var buf bytes.Buffer
	if err := tpl.body.Execute(&buf, data); err != nil {
		return nil, errors.InternalServer("RENDER_FAILED", "render template").WithCause(err)
	}
	return &Email{To: to, Subject: tpl.subject, HTML: buf.String()}, nil
}

// Send renders the request and dispatches it.
func (s *NotificationService) Send(ctx context.Context, req *NotificationRequest) (*Email, error) {
	email, err := s.Render(req)
	if err != nil {
		return nil, err
	}
	if err := s.mailer.Send(ctx, email); err != nil {
		s.log.WithContext(ctx).Errorw("msg", "send email failed", "template", req.Template, "error", err)
		return nil, errors.InternalServer("SEND_FAILED", "send email").WithCause(err)
	}
	return email, nil
}
