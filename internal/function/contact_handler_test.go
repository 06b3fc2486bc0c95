package function

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"

	"github.com/pr-poehali-dev/warehouse-consultation-site/internal/mailer"
)

// mockMailer implements ContactMailer for testing.
type mockMailer struct {
	notifyFn    func(ctx context.Context, sub mailer.Submission) error
	autoReplyFn func(ctx context.Context, sub mailer.Submission) error

	notifyCalls    int
	autoReplyCalls int
}

func (m *mockMailer) SendNotification(ctx context.Context, sub mailer.Submission) error {
	m.notifyCalls++
	if m.notifyFn != nil {
		return m.notifyFn(ctx, sub)
	}
	return nil
}

func (m *mockMailer) SendAutoReply(ctx context.Context, sub mailer.Submission) error {
	m.autoReplyCalls++
	if m.autoReplyFn != nil {
		return m.autoReplyFn(ctx, sub)
	}
	return nil
}

func contactEvent(method, body string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{HTTPMethod: method, Body: body}
}

func newContactHandler(m *mockMailer, password string) *ContactHandler {
	return NewContactHandler(m, password, zerolog.Nop())
}

func TestContactHandle_Options(t *testing.T) {
	h := newContactHandler(&mockMailer{}, "pw")

	resp, err := h.Handle(context.Background(), contactEvent("OPTIONS", ""))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Body != "" {
		t.Errorf("body = %q, want empty", resp.Body)
	}
	if got := resp.Headers["Access-Control-Allow-Methods"]; got != "POST, OPTIONS" {
		t.Errorf("Allow-Methods = %q, want %q", got, "POST, OPTIONS")
	}
}

func TestContactHandle_MethodNotAllowed(t *testing.T) {
	h := newContactHandler(&mockMailer{}, "pw")

	resp, _ := h.Handle(context.Background(), contactEvent("GET", ""))
	if resp.StatusCode != 405 {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
	if resp.Body != `{"error":"Method not allowed"}` {
		t.Errorf("body = %q", resp.Body)
	}
}

func TestContactHandle_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty name", `{"name":"","email":"a@b.com","message":"hi"}`},
		{"empty email", `{"name":"A","email":"","message":"hi"}`},
		{"empty message", `{"name":"A","email":"a@b.com","message":""}`},
		{"missing keys", `{}`},
		{"malformed json", `{not json`},
		{"empty body", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockMailer{}
			h := newContactHandler(m, "pw")

			resp, _ := h.Handle(context.Background(), contactEvent("POST", tt.body))
			if resp.StatusCode != 400 {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			if resp.Body != `{"error":"All fields are required"}` {
				t.Errorf("body = %q", resp.Body)
			}
			if m.notifyCalls != 0 || m.autoReplyCalls != 0 {
				t.Errorf("mailer invoked on invalid input: notify=%d autoReply=%d", m.notifyCalls, m.autoReplyCalls)
			}
		})
	}
}

func TestContactHandle_MissingPassword(t *testing.T) {
	m := &mockMailer{}
	h := newContactHandler(m, "")

	resp, _ := h.Handle(context.Background(), contactEvent("POST", `{"name":"A","email":"a@b.com","message":"hi"}`))
	if resp.StatusCode != 500 {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
	if resp.Body != `{"error":"SMTP password not configured"}` {
		t.Errorf("body = %q", resp.Body)
	}
	// Fails fast: nothing touches the network.
	if m.notifyCalls != 0 {
		t.Errorf("notify calls = %d, want 0", m.notifyCalls)
	}
	if m.autoReplyCalls != 0 {
		t.Errorf("auto-reply calls = %d, want 0", m.autoReplyCalls)
	}
}

func TestContactHandle_NotificationFailure(t *testing.T) {
	m := &mockMailer{
		notifyFn: func(ctx context.Context, sub mailer.Submission) error {
			return errors.New("auth failed")
		},
	}
	h := newContactHandler(m, "pw")

	resp, _ := h.Handle(context.Background(), contactEvent("POST", `{"name":"A","email":"a@b.com","message":"hi"}`))
	if resp.StatusCode != 500 {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
	if resp.Body != `{"error":"Failed to send email: auth failed"}` {
		t.Errorf("body = %q", resp.Body)
	}
	if m.autoReplyCalls != 0 {
		t.Error("auto-reply must not run when the notification fails")
	}
}

func TestContactHandle_AutoReplyFailureStillFailsRequest(t *testing.T) {
	m := &mockMailer{
		autoReplyFn: func(ctx context.Context, sub mailer.Submission) error {
			return errors.New("relay unreachable")
		},
	}
	h := newContactHandler(m, "pw")

	resp, _ := h.Handle(context.Background(), contactEvent("POST", `{"name":"A","email":"a@b.com","message":"hi"}`))
	if resp.StatusCode != 500 {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
	if resp.Body != `{"error":"Failed to send email: relay unreachable"}` {
		t.Errorf("body = %q", resp.Body)
	}
	if m.notifyCalls != 1 {
		t.Errorf("notify calls = %d, want 1 (notification already went out)", m.notifyCalls)
	}
}

func TestContactHandle_Success(t *testing.T) {
	var gotSub mailer.Submission
	m := &mockMailer{
		notifyFn: func(ctx context.Context, sub mailer.Submission) error {
			gotSub = sub
			return nil
		},
	}
	h := newContactHandler(m, "pw")

	resp, err := h.Handle(context.Background(), contactEvent("POST", `{"name":"Ivan","email":"ivan@example.com","message":"line1\nline2"}`))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Headers["Content-Type"] != "application/json" {
		t.Errorf("Content-Type = %q", resp.Headers["Content-Type"])
	}
	if resp.Headers["Access-Control-Allow-Origin"] != "*" {
		t.Errorf("Allow-Origin = %q", resp.Headers["Access-Control-Allow-Origin"])
	}

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if !body.Success || body.Message != "Email sent successfully" {
		t.Errorf("body = %+v", body)
	}

	if gotSub.Name != "Ivan" || gotSub.Email != "ivan@example.com" || gotSub.Message != "line1\nline2" {
		t.Errorf("submission = %+v", gotSub)
	}
	if m.notifyCalls != 1 || m.autoReplyCalls != 1 {
		t.Errorf("calls: notify=%d autoReply=%d, want 1/1", m.notifyCalls, m.autoReplyCalls)
	}
}
