// Package function implements the two serverless endpoints of the
// consultation site against the cloud function event contract: an event with
// httpMethod, headers, queryStringParameters, and a raw JSON body in, a
// statusCode/headers/body envelope out.
package function

import (
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
)

// jsonResponse builds a response envelope with the standard CORS and
// content-type headers. Every non-preflight response goes through here.
func jsonResponse(status int, payload any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(payload)
	if err != nil {
		// Marshalling our own response types cannot realistically fail;
		// degrade to a bare 500 rather than panic.
		return events.APIGatewayProxyResponse{
			StatusCode: 500,
			Headers:    responseHeaders(),
			Body:       `{"error":"Internal server error"}`,
		}
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    responseHeaders(),
		Body:       string(body),
	}
}

// errorResponse builds the single-field error envelope used by both
// endpoints.
func errorResponse(status int, message string) events.APIGatewayProxyResponse {
	return jsonResponse(status, map[string]string{"error": message})
}

// preflightResponse answers a CORS OPTIONS probe: 200, empty body, no side
// effects.
func preflightResponse(allowMethods, allowHeaders string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: 200,
		Headers: map[string]string{
			"Access-Control-Allow-Origin":  "*",
			"Access-Control-Allow-Methods": allowMethods,
			"Access-Control-Allow-Headers": allowHeaders,
			"Access-Control-Max-Age":       "86400",
		},
		Body: "",
	}
}

func responseHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                "application/json",
		"Access-Control-Allow-Origin": "*",
	}
}
