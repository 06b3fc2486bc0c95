package function

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"

	"github.com/pr-poehali-dev/warehouse-consultation-site/internal/logger"
	"github.com/pr-poehali-dev/warehouse-consultation-site/internal/mailer"
	"github.com/pr-poehali-dev/warehouse-consultation-site/internal/metrics"
)

// ContactMailer is the slice of mailer.Mailer the contact handler needs.
type ContactMailer interface {
	SendNotification(ctx context.Context, sub mailer.Submission) error
	SendAutoReply(ctx context.Context, sub mailer.Submission) error
}

// ContactHandler dispatches contact-form events: validate, notify the
// operator, then best-effort auto-reply to the submitter.
type ContactHandler struct {
	mail         ContactMailer
	smtpPassword string
	log          zerolog.Logger
}

// NewContactHandler creates a ContactHandler. smtpPassword is checked before
// any network activity; when it is empty the handler fails fast with a
// configuration error and the mailer is never invoked.
func NewContactHandler(mail ContactMailer, smtpPassword string, log zerolog.Logger) *ContactHandler {
	return &ContactHandler{mail: mail, smtpPassword: smtpPassword, log: log}
}

// submissionRequest is the JSON body of a contact-form POST.
type submissionRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Handle processes one contact-form event.
//
// The auto-reply is sent only after the notification succeeds, and a
// transport failure in the auto-reply still fails the whole request even
// though the operator was already notified. That coupling comes from the
// original handler and is kept on purpose; see DESIGN.md.
func (h *ContactHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := h.log.With().Str("correlation_id", logger.CorrelationIDFromContext(ctx)).Logger()

	respond := func(resp events.APIGatewayProxyResponse) (events.APIGatewayProxyResponse, error) {
		metrics.ContactRequestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
		return resp, nil
	}

	switch req.HTTPMethod {
	case "OPTIONS":
		return respond(preflightResponse("POST, OPTIONS", "Content-Type"))
	case "POST":
	default:
		return respond(errorResponse(405, "Method not allowed"))
	}

	var body submissionRequest
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		// Malformed JSON funnels into the same caller-error path as
		// missing fields.
		return respond(errorResponse(400, "All fields are required"))
	}
	if body.Name == "" || body.Email == "" || body.Message == "" {
		return respond(errorResponse(400, "All fields are required"))
	}

	if h.smtpPassword == "" {
		log.Error().Msg("SMTP password not configured")
		return respond(errorResponse(500, "SMTP password not configured"))
	}

	sub := mailer.Submission{Name: body.Name, Email: body.Email, Message: body.Message}

	if err := h.mail.SendNotification(ctx, sub); err != nil {
		log.Error().Err(err).Str("stage", "notification").Msg("send failed")
		return respond(errorResponse(500, "Failed to send email: "+err.Error()))
	}

	if err := h.mail.SendAutoReply(ctx, sub); err != nil {
		log.Warn().Err(err).Str("stage", "auto_reply").Msg("send failed after notification succeeded")
		return respond(errorResponse(500, "Failed to send email: "+err.Error()))
	}

	return respond(jsonResponse(200, map[string]any{
		"success": true,
		"message": "Email sent successfully",
	}))
}
