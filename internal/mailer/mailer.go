// Package mailer assembles and sends the two contact-form emails: the
// operator notification and the best-effort auto-reply with the inline
// preview image and the attached PDF guide.
package mailer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-gomail/gomail"
	"github.com/rs/zerolog"

	"github.com/pr-poehali-dev/warehouse-consultation-site/internal/metrics"
)

// Config carries the fixed SMTP relay settings. The sender address doubles
// as the relay login; the password is never logged.
type Config struct {
	SenderAddress   string
	OperatorAddress string
	RelayHost       string
	RelayPort       int
	Password        string
}

// Submission is one validated contact-form submission.
type Submission struct {
	Name    string
	Email   string
	Message string
}

// AssetFetcher downloads the guide preview image.
type AssetFetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// GuideBuilder renders the PDF guide.
type GuideBuilder func() ([]byte, error)

// SendFunc delivers an assembled message. Production uses a gomail SSL
// dialer; tests substitute a capture function.
type SendFunc func(msg *gomail.Message) error

// Mailer sends contact-form emails over an implicit-TLS SMTP relay.
type Mailer struct {
	cfg        Config
	fetcher    AssetFetcher
	buildGuide GuideBuilder
	send       SendFunc
	log        zerolog.Logger
}

// New creates a Mailer that dials cfg.RelayHost:cfg.RelayPort over SSL for
// every send. Each send is a fresh connection; there is no pooling.
func New(cfg Config, fetcher AssetFetcher, buildGuide GuideBuilder, log zerolog.Logger) *Mailer {
	d := gomail.NewDialer(cfg.RelayHost, cfg.RelayPort, cfg.SenderAddress, cfg.Password)
	d.SSL = true // implicit TLS, port 465

	return &Mailer{
		cfg:        cfg,
		fetcher:    fetcher,
		buildGuide: buildGuide,
		send:       func(msg *gomail.Message) error { return d.DialAndSend(msg) },
		log:        log,
	}
}

// WithSendFunc replaces the transport. Intended for tests.
func (m *Mailer) WithSendFunc(send SendFunc) *Mailer {
	m.send = send
	return m
}

const notificationTemplate = `
<html>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <h2 style="color: #2563eb;">Новая заявка с сайта</h2>
    <div style="background-color: #f3f4f6; padding: 20px; border-radius: 8px; margin: 20px 0;">
      <p><strong>Имя:</strong> %s</p>
      <p><strong>Email:</strong> %s</p>
      <p><strong>Сообщение:</strong></p>
      <p style="background-color: white; padding: 15px; border-radius: 4px; border-left: 4px solid #2563eb;">
        %s
      </p>
    </div>
  </body>
</html>
`

// SendNotification emails the operator about a new submission. Failures
// propagate to the caller and abort the request.
func (m *Mailer) SendNotification(ctx context.Context, sub Submission) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.SenderAddress)
	msg.SetHeader("To", m.cfg.OperatorAddress)
	msg.SetHeader("Subject", "Новая заявка с сайта от "+sub.Name)

	body := fmt.Sprintf(notificationTemplate,
		sub.Name, sub.Email, strings.ReplaceAll(sub.Message, "\n", "<br>"))
	msg.SetBody("text/html", body)

	if err := m.send(msg); err != nil {
		metrics.EmailsFailedTotal.WithLabelValues("notification").Inc()
		return err
	}

	metrics.EmailsSentTotal.WithLabelValues("notification").Inc()
	m.log.Info().Str("to", m.cfg.OperatorAddress).Msg("notification sent")
	return nil
}

const autoReplyTemplate = `
<html>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <h2 style="color: #2563eb;">Спасибо за заявку, %s!</h2>
    <p>Мы получили ваше сообщение и свяжемся с вами в ближайшее время.</p>
    <p>А пока — наш гид по организации низкотемпературного склада. Он во вложении к этому письму.</p>
    <img src="cid:pdf_preview" alt="Guide preview">
    <p style="color: #6b7280; font-size: 13px;">АртАналитика — консультации по складской логистике</p>
  </body>
</html>
`

// SendAutoReply emails the submitter a greeting with the preview image
// inlined and the PDF guide attached. Both extras are best-effort: a failed
// fetch or a failed render drops that part and the send proceeds. The HTML
// always references cid:pdf_preview, so a dropped image shows up as a broken
// reference on the recipient side; that matches the original behavior and is
// pinned by tests. A transport failure propagates to the caller.
func (m *Mailer) SendAutoReply(ctx context.Context, sub Submission) error {
	log := m.log.With().Str("to", sub.Email).Logger()

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.SenderAddress)
	msg.SetHeader("To", sub.Email)
	msg.SetHeader("Subject", "Спасибо за заявку! Ваш гид по складской логистике")
	msg.SetBody("text/html", fmt.Sprintf(autoReplyTemplate, sub.Name))

	if preview, err := m.fetcher.Fetch(ctx); err != nil {
		metrics.AutoReplyPartsOmittedTotal.WithLabelValues("preview_image").Inc()
		log.Warn().Err(err).Msg("preview image omitted from auto-reply")
	} else {
		msg.Embed("pdf_preview.png",
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(preview)
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-ID": {"<pdf_preview>"}}),
		)
	}

	if doc, err := m.buildGuide(); err != nil {
		metrics.AutoReplyPartsOmittedTotal.WithLabelValues("guide_pdf").Inc()
		log.Warn().Err(err).Msg("guide attachment omitted from auto-reply")
	} else {
		msg.Attach("sklad-guide.pdf",
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(doc)
				return err
			}),
		)
	}

	if err := m.send(msg); err != nil {
		metrics.EmailsFailedTotal.WithLabelValues("auto_reply").Inc()
		return err
	}

	metrics.EmailsSentTotal.WithLabelValues("auto_reply").Inc()
	log.Info().Msg("auto-reply sent")
	return nil
}
