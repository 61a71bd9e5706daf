// ABOUTME: Route 53 backed zone listing and record store.
// ABOUTME: Paginates zone enumeration, queries single A records, and issues UPSERT changes.

package dyndns53

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	r53types "github.com/aws/aws-sdk-go-v2/service/route53/types"
	"github.com/miekg/dns"
)

// DefaultChangeComment annotates Route 53 change batches unless overridden.
const DefaultChangeComment = "Dynamic DNS update"

// RecordStore reads and writes single address records within a zone.
type RecordStore interface {
	// QueryRecord returns the A record with exactly the given name, or nil
	// when the zone holds no such record.
	QueryRecord(ctx context.Context, zoneID, name string) (*AddressRecord, error)
	// UpsertRecord creates or overwrites the record in one atomic change.
	UpsertRecord(ctx context.Context, zoneID string, rec AddressRecord) error
}

// Route53API is the subset of the Route 53 client this package calls,
// narrowed for testing.
type Route53API interface {
	ListHostedZones(ctx context.Context, params *route53.ListHostedZonesInput, optFns ...func(*route53.Options)) (*route53.ListHostedZonesOutput, error)
	ListResourceRecordSets(ctx context.Context, params *route53.ListResourceRecordSetsInput, optFns ...func(*route53.Options)) (*route53.ListResourceRecordSetsOutput, error)
	ChangeResourceRecordSets(ctx context.Context, params *route53.ChangeResourceRecordSetsInput, optFns ...func(*route53.Options)) (*route53.ChangeResourceRecordSetsOutput, error)
}

// Route53Store implements ZoneLister and RecordStore against Route 53. The
// client handle is process-wide and safe for concurrent use; the store itself
// carries no per-request state.
type Route53Store struct {
	api     Route53API
	comment string
}

// StoreOption configures optional Route53Store behaviour.
type StoreOption func(*Route53Store)

// WithChangeComment sets the comment attached to every change batch.
func WithChangeComment(comment string) StoreOption {
	return func(s *Route53Store) {
		if comment != "" {
			s.comment = comment
		}
	}
}

// NewRoute53Store creates a store over the given Route 53 client.
func NewRoute53Store(api Route53API, opts ...StoreOption) *Route53Store {
	s := &Route53Store{api: api, comment: DefaultChangeComment}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListZones returns every hosted zone visible to the client, following the
// listing across all pages before returning.
func (s *Route53Store) ListZones(ctx context.Context) ([]HostedZone, error) {
	var zones []HostedZone

	p := route53.NewListHostedZonesPaginator(s.api, &route53.ListHostedZonesInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing hosted zones: %w", err)
		}
		for _, hz := range page.HostedZones {
			zone := HostedZone{
				ID:   aws.ToString(hz.Id),
				Name: aws.ToString(hz.Name),
			}
			if hz.Config != nil {
				zone.Private = hz.Config.PrivateZone
			}
			zones = append(zones, zone)
		}
	}

	return zones, nil
}

// QueryRecord looks up the single A record for name in the zone. The listing
// starts at (name, A) in lexicographic order, so the first returned set
// either is the record or proves its absence.
func (s *Route53Store) QueryRecord(ctx context.Context, zoneID, name string) (*AddressRecord, error) {
	fqdn := dns.Fqdn(name)

	out, err := s.api.ListResourceRecordSets(ctx, &route53.ListResourceRecordSetsInput{
		HostedZoneId:    aws.String(zoneID),
		StartRecordName: aws.String(fqdn),
		StartRecordType: r53types.RRTypeA,
		MaxItems:        aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("querying record %s in zone %s: %w", fqdn, zoneID, err)
	}
	if len(out.ResourceRecordSets) == 0 {
		return nil, nil
	}

	rrset := out.ResourceRecordSets[0]
	if aws.ToString(rrset.Name) != fqdn || rrset.Type != r53types.RRTypeA {
		return nil, nil
	}

	rec := &AddressRecord{
		Name: aws.ToString(rrset.Name),
		Type: string(rrset.Type),
		TTL:  aws.ToInt64(rrset.TTL),
	}
	if len(rrset.ResourceRecords) > 0 {
		rec.Value = aws.ToString(rrset.ResourceRecords[0].Value)
	}
	return rec, nil
}

// UpsertRecord issues a single UPSERT change for the record. Route 53 applies
// the change batch atomically; there is no partial-write state to handle.
func (s *Route53Store) UpsertRecord(ctx context.Context, zoneID string, rec AddressRecord) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}

	input := &route53.ChangeResourceRecordSetsInput{
		HostedZoneId: aws.String(zoneID),
		ChangeBatch: &r53types.ChangeBatch{
			Comment: aws.String(s.comment),
			Changes: []r53types.Change{
				{
					Action:            r53types.ChangeActionUpsert,
					ResourceRecordSet: rec.toResourceRecordSet(),
				},
			},
		},
	}

	if _, err := s.api.ChangeResourceRecordSets(ctx, input); err != nil {
		return fmt.Errorf("upserting %s in zone %s: %w", rec.Name, zoneID, err)
	}

	upsertCount.Inc()
	log.Infof("upserted %s %s -> %s (ttl %d) in zone %s", rec.Name, rec.Type, rec.Value, rec.TTL, zoneID)
	return nil
}
