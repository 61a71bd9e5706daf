// ABOUTME: Hosted-zone model and longest-suffix zone resolution.
// ABOUTME: Re-lists zones per request so topology changes need no restart.

package dyndns53

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/miekg/dns"
)

// ErrNoZone is returned when no public hosted zone owns the hostname.
var ErrNoZone = errors.New("no matching public hosted zone")

// HostedZone is a read-only snapshot of one zone from the store's listing.
// ID carries the store-native identifier exactly as listed, which may embed a
// path prefix.
type HostedZone struct {
	ID      string
	Name    string
	Private bool
}

// ZoneLister enumerates every hosted zone visible to the store client.
// Implementations follow the listing's pagination and return the full set.
type ZoneLister interface {
	ListZones(ctx context.Context) ([]HostedZone, error)
}

// ZoneResolver maps a hostname to the most specific public zone owning it.
type ZoneResolver struct {
	zones ZoneLister
}

// NewZoneResolver creates a resolver over the given zone listing.
func NewZoneResolver(zones ZoneLister) *ZoneResolver {
	return &ZoneResolver{zones: zones}
}

// Resolve returns the identifier of the public zone with the longest name
// that is a suffix of the hostname, stripped to its trailing path segment.
// Equal-length matches resolve to the zone listed last; a well-formed zone
// set never has two zones with the same name. Returns ErrNoZone when no
// public zone matches.
func (r *ZoneResolver) Resolve(ctx context.Context, hostname string) (string, error) {
	fqdn := dns.Fqdn(hostname)

	zones, err := r.zones.ListZones(ctx)
	if err != nil {
		return "", fmt.Errorf("listing hosted zones: %w", err)
	}

	var best HostedZone
	found := false
	for _, zone := range zones {
		if zone.Private {
			continue
		}
		if !strings.HasSuffix(fqdn, zone.Name) {
			continue
		}
		if !found || len(zone.Name) >= len(best.Name) {
			best = zone
			found = true
		}
	}
	if !found {
		return "", ErrNoZone
	}

	id := trailingSegment(best.ID)
	log.Debugf("resolved %s to zone %s (%s)", fqdn, best.Name, id)
	return id, nil
}

// trailingSegment strips any path prefix from a zone identifier; Route 53
// lists IDs as "/hostedzone/Z...".
func trailingSegment(id string) string {
	if i := strings.LastIndexByte(id, '/'); i >= 0 {
		return id[i+1:]
	}
	return id
}
