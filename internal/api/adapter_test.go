package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
)

func TestAdaptEvent_TranslatesRequestAndResponse(t *testing.T) {
	var gotEvent events.APIGatewayProxyRequest
	handler := func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		gotEvent = req
		return events.APIGatewayProxyResponse{
			StatusCode: 201,
			Headers:    map[string]string{"Content-Type": "application/json", "X-Test": "yes"},
			Body:       `{"ok":true}`,
		}, nil
	}

	req := httptest.NewRequest(http.MethodPost, "/api/articles?id=7", strings.NewReader(`{"title":"T"}`))
	req.Header.Set("X-Admin-Key", "k")
	rec := httptest.NewRecorder()

	AdaptEvent(handler)(rec, req)

	if gotEvent.HTTPMethod != http.MethodPost {
		t.Errorf("event method = %q, want POST", gotEvent.HTTPMethod)
	}
	if gotEvent.QueryStringParameters["id"] != "7" {
		t.Errorf("event query id = %q, want 7", gotEvent.QueryStringParameters["id"])
	}
	if gotEvent.Body != `{"title":"T"}` {
		t.Errorf("event body = %q", gotEvent.Body)
	}
	if gotEvent.Headers["X-Admin-Key"] != "k" {
		t.Errorf("event headers missing X-Admin-Key, got %v", gotEvent.Headers)
	}

	if rec.Code != 201 {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if rec.Body.String() != `{"ok":true}` {
		t.Errorf("body = %q", rec.Body.String())
	}
	if rec.Header().Get("X-Test") != "yes" {
		t.Errorf("response header X-Test = %q", rec.Header().Get("X-Test"))
	}
}

func TestAdaptEvent_HandlerError(t *testing.T) {
	handler := func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return events.APIGatewayProxyResponse{}, context.DeadlineExceeded
	}

	rec := httptest.NewRecorder()
	AdaptEvent(handler)(rec, httptest.NewRequest(http.MethodGet, "/api/articles", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestAdaptEvent_EmptyBodyResponse(t *testing.T) {
	handler := func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return events.APIGatewayProxyResponse{
			StatusCode: 200,
			Headers:    map[string]string{"Access-Control-Allow-Methods": "POST, OPTIONS"},
		}, nil
	}

	rec := httptest.NewRecorder()
	AdaptEvent(handler)(rec, httptest.NewRequest(http.MethodOptions, "/api/contact", nil))

	if rec.Code != 200 {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}
	if rec.Header().Get("Access-Control-Allow-Methods") != "POST, OPTIONS" {
		t.Error("preflight header not copied through")
	}
}
