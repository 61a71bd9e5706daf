// ABOUTME: Transport-neutral request model and the dyndns2 dialect normalizer.
// ABOUTME: Sniffs query, JSON-body, and path-embedded client shapes into one UpdateIntent.

package dyndns53

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/miekg/dns"
)

// Sentinel errors mapped to protocol responses by the Updater.
var (
	errBadAgent         = errors.New("client did not identify itself")
	errBadRequest       = errors.New("bad request")
	errMethodNotAllowed = errors.New("method not allowed")
)

// Dialects a request can be normalized from. Clients send no protocol version;
// the shape of the request is the only signal.
const (
	dialectQuery = "query"
	dialectBody  = "body"
	dialectPath  = "path"
)

// hostnamePattern extracts a domain-like token from a URL path for clients
// that embed the hostname in the path instead of a query parameter.
var hostnamePattern = regexp.MustCompile(`[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

// Request is the transport-neutral view of an inbound update request. Both
// the HTTP server and the Lambda adapter produce this shape.
type Request struct {
	Method   string
	Path     string
	Query    url.Values
	Header   http.Header
	Body     []byte
	SourceIP string
}

// UpdateIntent is the canonical outcome of normalization: which hostname to
// update and with which IPv4 address. Immutable once produced.
type UpdateIntent struct {
	Hostname string
	IP       string
}

// updateBody is the JSON body shape of the PUT dialect.
type updateBody struct {
	Hostname string `json:"hostname"`
	MyIP     string `json:"myip"`
}

// normalizeRequest turns an inbound request into an UpdateIntent, applying
// dialect-specific extraction and fallbacks. The returned dialect names which
// shape matched; it is empty when an error is returned.
func normalizeRequest(req Request) (UpdateIntent, string, error) {
	if req.Header.Get("User-Agent") == "" {
		return UpdateIntent{}, "", errBadAgent
	}

	var hostname, ip, dialect string

	switch req.Method {
	case http.MethodGet:
		hostname = req.Query.Get("hostname")
		dialect = dialectQuery
		if hostname == "" {
			hostname = hostnamePattern.FindString(req.Path)
			dialect = dialectPath
		}
		ip = req.Query.Get("myip")

	case http.MethodPut:
		var body updateBody
		if err := json.Unmarshal(req.Body, &body); err != nil {
			return UpdateIntent{}, "", fmt.Errorf("%w: malformed body: %v", errBadRequest, err)
		}
		hostname = body.Hostname
		ip = body.MyIP
		dialect = dialectBody

	default:
		return UpdateIntent{}, "", errMethodNotAllowed
	}

	if ip == "" {
		ip = req.SourceIP
	}

	intent, err := buildIntent(hostname, ip)
	if err != nil {
		return UpdateIntent{}, "", err
	}
	return intent, dialect, nil
}

// buildIntent validates the extracted hostname and IP and canonicalizes the
// hostname to lower case without a trailing dot.
func buildIntent(hostname, ip string) (UpdateIntent, error) {
	if hostname == "" {
		return UpdateIntent{}, fmt.Errorf("%w: missing hostname", errBadRequest)
	}
	hostname = strings.ToLower(strings.TrimSuffix(hostname, "."))
	if !validHostname(hostname) {
		return UpdateIntent{}, fmt.Errorf("%w: invalid hostname %q", errBadRequest, hostname)
	}

	if ip == "" {
		return UpdateIntent{}, fmt.Errorf("%w: missing ip", errBadRequest)
	}
	parsed := net.ParseIP(ip)
	if parsed == nil || parsed.To4() == nil {
		return UpdateIntent{}, fmt.Errorf("%w: %q is not an IPv4 address", errBadRequest, ip)
	}

	return UpdateIntent{Hostname: hostname, IP: ip}, nil
}

// validHostname requires a syntactically valid DNS name with at least two
// labels; single-label names cannot belong to any hosted zone.
func validHostname(hostname string) bool {
	if !strings.Contains(hostname, ".") {
		return false
	}
	_, ok := dns.IsDomainName(hostname)
	return ok
}
