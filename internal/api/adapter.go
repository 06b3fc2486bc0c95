// Package api exposes the serverless function handlers over plain HTTP for
// the local server mode, translating between net/http requests and the cloud
// function event envelope.
package api

import (
	"context"
	"io"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// EventHandler is the signature shared by the function handlers.
type EventHandler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// AdaptEvent converts an http.Request into a function event, invokes the
// handler, and writes the returned envelope back. The function handlers own
// their status codes and CORS headers; the adapter copies them verbatim.
func AdaptEvent(handler EventHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			respondError(w, http.StatusBadRequest, "failed to read request body")
			return
		}

		query := make(map[string]string)
		for k, vals := range r.URL.Query() {
			if len(vals) > 0 {
				query[k] = vals[0]
			}
		}
		headers := make(map[string]string, len(r.Header))
		for k := range r.Header {
			headers[k] = r.Header.Get(k)
		}

		event := events.APIGatewayProxyRequest{
			HTTPMethod:            r.Method,
			Headers:               headers,
			QueryStringParameters: query,
			Body:                  string(body),
		}

		resp, err := handler(r.Context(), event)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		for k, v := range resp.Headers {
			w.Header().Set(k, v)
		}
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			io.WriteString(w, resp.Body)
		}
	}
}
