// ABOUTME: Conversion between API Gateway v2 events and the transport-neutral request.
// ABOUTME: Lets the same engine serve Lambda deployments and the standalone server.

package dyndns53

import (
	"encoding/base64"
	"net/http"
	"net/url"

	"github.com/aws/aws-lambda-go/events"
)

// RequestFromAPIGateway converts an API Gateway v2 proxy event into a Request.
// API Gateway lower-cases header names; rebuilding an http.Header restores
// case-insensitive lookup. The source IP comes from the request context, not
// a header, so clients cannot spoof the myip fallback.
func RequestFromAPIGateway(ev events.APIGatewayV2HTTPRequest) Request {
	header := make(http.Header, len(ev.Headers))
	for k, v := range ev.Headers {
		header.Set(k, v)
	}

	query, err := url.ParseQuery(ev.RawQueryString)
	if err != nil || len(query) == 0 {
		query = make(url.Values, len(ev.QueryStringParameters))
		for k, v := range ev.QueryStringParameters {
			query.Set(k, v)
		}
	}

	body := []byte(ev.Body)
	if ev.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(ev.Body)
		if err != nil {
			log.Warnf("decoding base64 request body: %v", err)
		} else {
			body = decoded
		}
	}

	return Request{
		Method:   ev.RequestContext.HTTP.Method,
		Path:     ev.RawPath,
		Query:    query,
		Header:   header,
		Body:     body,
		SourceIP: ev.RequestContext.HTTP.SourceIP,
	}
}

// APIGatewayResponse converts the reply into the API Gateway v2 shape.
func (r Response) APIGatewayResponse() events.APIGatewayV2HTTPResponse {
	return events.APIGatewayV2HTTPResponse{
		StatusCode: r.Code,
		Body:       r.Body,
		Headers:    map[string]string{"Content-Type": "text/plain; charset=utf-8"},
	}
}
