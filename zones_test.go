// ABOUTME: Tests for hosted zone resolution by longest-suffix match.
// ABOUTME: Covers private zone exclusion, ties, apex matches, and listing failures.

package dyndns53

import (
	"context"
	"errors"
	"testing"
)

// staticZones is a ZoneLister returning a fixed slice, counting calls.
type staticZones struct {
	zones []HostedZone
	err   error
	calls int
}

func (s *staticZones) ListZones(context.Context) ([]HostedZone, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.zones, nil
}

func TestZoneResolver_Resolve(t *testing.T) {
	t.Parallel()

	zones := []HostedZone{
		{ID: "/hostedzone/Z1COM", Name: "example.com."},
		{ID: "/hostedzone/Z2SUB", Name: "sub.example.com."},
		{ID: "/hostedzone/Z3ORG", Name: "example.org."},
		{ID: "/hostedzone/Z4PRIV", Name: "priv.example.com.", Private: true},
	}

	tests := []struct {
		name     string
		hostname string
		want     string
	}{
		{"matches parent zone", "host.example.com", "Z1COM"},
		{"longest suffix wins", "host.sub.example.com", "Z2SUB"},
		{"apex name matches its zone", "example.com", "Z1COM"},
		{"zone apex of deeper zone", "sub.example.com", "Z2SUB"},
		{"other tld", "www.example.org", "Z3ORG"},
		{"private zone excluded", "host.priv.example.com", "Z1COM"},
		{"trailing dot accepted", "host.example.com.", "Z1COM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			resolver := NewZoneResolver(&staticZones{zones: zones})

			got, err := resolver.Resolve(context.Background(), tt.hostname)
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", tt.hostname, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.hostname, got, tt.want)
			}
		})
	}
}

func TestZoneResolver_Resolve_NoZone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		zones    []HostedZone
		hostname string
	}{
		{
			name:     "no zones at all",
			zones:    nil,
			hostname: "host.example.com",
		},
		{
			name:     "no suffix match",
			zones:    []HostedZone{{ID: "/hostedzone/Z1", Name: "example.org."}},
			hostname: "host.example.com",
		},
		{
			name:     "only private candidate",
			zones:    []HostedZone{{ID: "/hostedzone/Z1", Name: "example.com.", Private: true}},
			hostname: "host.example.com",
		},
		{
			name:     "sibling zone is not a suffix",
			zones:    []HostedZone{{ID: "/hostedzone/Z1", Name: "other.example.com."}},
			hostname: "host.example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			resolver := NewZoneResolver(&staticZones{zones: tt.zones})

			_, err := resolver.Resolve(context.Background(), tt.hostname)
			if !errors.Is(err, ErrNoZone) {
				t.Errorf("Resolve(%q) error = %v, want ErrNoZone", tt.hostname, err)
			}
		})
	}
}

func TestZoneResolver_Resolve_ByteWiseSuffix(t *testing.T) {
	t.Parallel()

	// The comparison is a plain suffix test on the FQDN bytes. A zone name
	// that is a suffix without sitting on a label boundary still matches.
	resolver := NewZoneResolver(&staticZones{zones: []HostedZone{
		{ID: "/hostedzone/Z1", Name: "ample.com."},
	}})

	got, err := resolver.Resolve(context.Background(), "host.example.com")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "Z1" {
		t.Errorf("Resolve() = %q, want %q", got, "Z1")
	}
}

func TestZoneResolver_Resolve_TieKeepsLastEncountered(t *testing.T) {
	t.Parallel()

	resolver := NewZoneResolver(&staticZones{zones: []HostedZone{
		{ID: "/hostedzone/ZFIRST", Name: "example.com."},
		{ID: "/hostedzone/ZSECOND", Name: "example.com."},
	}})

	got, err := resolver.Resolve(context.Background(), "host.example.com")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "ZSECOND" {
		t.Errorf("Resolve() = %q, want last-encountered %q", got, "ZSECOND")
	}
}

func TestZoneResolver_Resolve_StripsIDPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		rawID string
		want  string
	}{
		{"hostedzone prefix", "/hostedzone/Z0123456789ABC", "Z0123456789ABC"},
		{"bare id unchanged", "Z0123456789ABC", "Z0123456789ABC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			resolver := NewZoneResolver(&staticZones{zones: []HostedZone{
				{ID: tt.rawID, Name: "example.com."},
			}})

			got, err := resolver.Resolve(context.Background(), "host.example.com")
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestZoneResolver_Resolve_ListError(t *testing.T) {
	t.Parallel()

	listErr := errors.New("throttled")
	resolver := NewZoneResolver(&staticZones{err: listErr})

	_, err := resolver.Resolve(context.Background(), "host.example.com")
	if err == nil {
		t.Fatal("Resolve() error = nil, want error")
	}
	if errors.Is(err, ErrNoZone) {
		t.Error("Resolve() error is ErrNoZone, want listing failure to stay distinct")
	}
	if !errors.Is(err, listErr) {
		t.Errorf("Resolve() error = %v, want wrapped %v", err, listErr)
	}
}
