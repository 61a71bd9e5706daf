// ABOUTME: Package dyndns53 implements a dyndns2-compatible dynamic DNS update endpoint.
// ABOUTME: Authenticated clients report their IP; records are upserted into Route 53.

// Package dyndns53 implements a Dynamic DNS update endpoint speaking the
// de-facto dyndns2 protocol (as used by consumer routers, inadyn, and UniFi
// gateways), persisting A records into Amazon Route 53. Credentials are
// verified against a username/password pair held in AWS Secrets Manager, and
// the owning hosted zone is resolved per request by longest-suffix match.
package dyndns53
