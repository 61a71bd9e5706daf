// ABOUTME: Read-compare-upsert reconciliation of one hostname against its zone.
// ABOUTME: Equality of name and value, not mere presence, is the idempotence guarantee.

package dyndns53

import (
	"context"

	"github.com/miekg/dns"
)

// Outcome reports what reconciliation did to the record.
type Outcome int

const (
	// OutcomeNoChange means the record already held the requested value.
	OutcomeNoChange Outcome = iota
	// OutcomeUpdated means an upsert was issued.
	OutcomeUpdated
)

// Reconciler brings the stored A record for a hostname in line with an
// update intent, writing only when the value actually differs.
type Reconciler struct {
	store RecordStore
	ttl   int64
}

// ReconcilerOption configures optional Reconciler behaviour.
type ReconcilerOption func(*Reconciler)

// WithRecordTTL sets the TTL applied to upserted records.
func WithRecordTTL(ttl int64) ReconcilerOption {
	return func(r *Reconciler) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// NewReconciler creates a reconciler writing through the given store.
func NewReconciler(store RecordStore, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{store: store, ttl: DefaultTTL}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile reads the current record, short-circuits to OutcomeNoChange when
// the stored name and value already match the intent, and otherwise issues an
// upsert. A read failure is non-fatal: the upsert is idempotent, so the write
// proceeds as if no record existed. A write failure is returned to the caller
// and never retried within the invocation.
func (r *Reconciler) Reconcile(ctx context.Context, zoneID string, intent UpdateIntent) (Outcome, error) {
	fqdn := dns.Fqdn(intent.Hostname)

	existing, err := r.store.QueryRecord(ctx, zoneID, fqdn)
	if err != nil {
		log.Warnf("reading current record for %s: %v; proceeding as if absent", fqdn, err)
		existing = nil
	}

	if existing != nil && existing.Name == fqdn && existing.Value == intent.IP {
		log.Infof("record %s already points at %s", fqdn, intent.IP)
		return OutcomeNoChange, nil
	}

	rec := AddressRecord{
		Name:  fqdn,
		Type:  RecordTypeA,
		TTL:   r.ttl,
		Value: intent.IP,
	}
	if err := r.store.UpsertRecord(ctx, zoneID, rec); err != nil {
		return 0, err
	}

	return OutcomeUpdated, nil
}
