// ABOUTME: AddressRecord data model with validation and Route 53 RRSet conversion.
// ABOUTME: The endpoint manages exactly one record type: IPv4 address (A) records.

package dyndns53

import (
	"fmt"
	"net"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	r53types "github.com/aws/aws-sdk-go-v2/service/route53/types"
	"github.com/miekg/dns"
)

const (
	DefaultTTL int64 = 300
	MinTTL     int64 = 1
	MaxTTL     int64 = 604800
)

// RecordTypeA is the only record type this endpoint manages.
const RecordTypeA = "A"

// AddressRecord represents a single A record within a hosted zone. The store
// holds at most one current value for a given name.
type AddressRecord struct {
	Name  string
	Type  string
	TTL   int64
	Value string
}

// Validate checks the record fields for correctness. It sets a default TTL
// when zero.
func (r *AddressRecord) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name must not be empty")
	}
	if !dns.IsFqdn(r.Name) {
		return fmt.Errorf("name %q must end with a trailing dot", r.Name)
	}

	r.Type = strings.ToUpper(r.Type)
	if r.Type == "" {
		return fmt.Errorf("type must not be empty")
	}
	if r.Type != RecordTypeA {
		return fmt.Errorf("unsupported record type %q", r.Type)
	}

	if r.TTL == 0 {
		r.TTL = DefaultTTL
	}
	if r.TTL < MinTTL || r.TTL > MaxTTL {
		return fmt.Errorf("TTL %d out of range [%d, %d]", r.TTL, MinTTL, MaxTTL)
	}

	ip := net.ParseIP(r.Value)
	if ip == nil || ip.To4() == nil {
		return fmt.Errorf("value %q is not a valid IPv4 address", r.Value)
	}

	return nil
}

// toResourceRecordSet converts the record into the Route 53 wire shape. The
// record should be validated before calling this method.
func (r AddressRecord) toResourceRecordSet() *r53types.ResourceRecordSet {
	return &r53types.ResourceRecordSet{
		Name: aws.String(r.Name),
		Type: r53types.RRType(r.Type),
		TTL:  aws.Int64(r.TTL),
		ResourceRecords: []r53types.ResourceRecord{
			{Value: aws.String(r.Value)},
		},
	}
}
