// ABOUTME: Orchestrator mapping normalized requests through auth, zone resolution,
// ABOUTME: and reconciliation into the fixed dyndns2 response vocabulary.

package dyndns53

import (
	"context"
	"errors"
	"net/http"
)

// dyndns2 response tokens. Clients match on these strings verbatim.
const (
	statusGood             = "good"
	statusNoChange         = "nochg"
	statusBadAuth          = "badauth"
	statusBadAgent         = "badagent"
	statusBadRequest       = "badreq"
	statusMethodNotAllowed = "methodnotallowed"
	statusServerError      = "911"
)

// Response is the transport-neutral reply: an HTTP status code and a
// plain-text body from the dyndns2 vocabulary.
type Response struct {
	Code int
	Body string
}

// Updater handles one update request end to end. All fields are process-wide
// collaborators, safe for concurrent use; the handler itself is stateless.
type Updater struct {
	auth     *Auth
	resolver *ZoneResolver
	rec      *Reconciler
}

// NewUpdater wires the orchestrator from its three stages.
func NewUpdater(auth *Auth, resolver *ZoneResolver, rec *Reconciler) *Updater {
	return &Updater{auth: auth, resolver: resolver, rec: rec}
}

// Handle runs one request through normalization, credential verification,
// zone resolution, and reconciliation. Every outcome maps onto the dyndns2
// response table; nothing here panics or retries.
func (u *Updater) Handle(ctx context.Context, req Request) Response {
	requestCount.WithLabelValues(req.Method).Inc()

	intent, dialect, err := normalizeRequest(req)
	if err != nil {
		switch {
		case errors.Is(err, errMethodNotAllowed):
			return respond(http.StatusMethodNotAllowed, statusMethodNotAllowed)
		case errors.Is(err, errBadAgent):
			return respond(http.StatusBadRequest, statusBadAgent)
		default:
			log.Warnf("rejecting request: %v", err)
			return respond(http.StatusBadRequest, statusBadRequest)
		}
	}
	dialectCount.WithLabelValues(dialect).Inc()

	if _, ok := u.auth.Verify(ctx, req.Header.Get("Authorization")); !ok {
		log.Warnf("rejecting unauthenticated update for %s", intent.Hostname)
		return respond(http.StatusUnauthorized, statusBadAuth)
	}

	zoneID, err := u.resolver.Resolve(ctx, intent.Hostname)
	if err != nil {
		log.Errorf("resolving zone for %s: %v", intent.Hostname, err)
		return respond(http.StatusInternalServerError, statusServerError)
	}

	outcome, err := u.rec.Reconcile(ctx, zoneID, intent)
	if err != nil {
		log.Errorf("reconciling %s: %v", intent.Hostname, err)
		return respond(http.StatusInternalServerError, statusServerError)
	}

	switch outcome {
	case OutcomeNoChange:
		return respondWithIP(statusNoChange, intent.IP)
	default:
		log.Infof("updated %s (%s dialect) to %s", intent.Hostname, dialect, intent.IP)
		return respondWithIP(statusGood, intent.IP)
	}
}

func respond(code int, status string) Response {
	responseCount.WithLabelValues(status).Inc()
	return Response{Code: code, Body: status}
}

func respondWithIP(status, ip string) Response {
	responseCount.WithLabelValues(status).Inc()
	return Response{Code: http.StatusOK, Body: status + " " + ip}
}
