// ABOUTME: Environment-driven configuration for the endpoint binaries.
// ABOUTME: envconfig struct plus cross-field validation (TLS pairing, TTL bounds).

package dyndns53

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every tunable the binaries accept. DDNS_SECRET_NAME is the
// one required setting: the Secrets Manager secret holding the credential
// pair clients authenticate against.
type Config struct {
	SecretName    string `envconfig:"DDNS_SECRET_NAME" required:"true"`
	Listen        string `envconfig:"DDNS_LISTEN" default:":8080"`
	RecordTTL     int64  `envconfig:"DDNS_RECORD_TTL" default:"300"`
	ChangeComment string `envconfig:"DDNS_CHANGE_COMMENT" default:"Dynamic DNS update"`
	TLSCert       string `envconfig:"DDNS_TLS_CERT"`
	TLSKey        string `envconfig:"DDNS_TLS_KEY"`
	TLSClientCA   string `envconfig:"DDNS_TLS_CLIENT_CA"`
}

// LoadConfig reads configuration from the environment and validates it.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return fmt.Errorf("DDNS_TLS_CERT and DDNS_TLS_KEY must be set together")
	}
	if c.TLSClientCA != "" && c.TLSCert == "" {
		return fmt.Errorf("DDNS_TLS_CLIENT_CA requires DDNS_TLS_CERT and DDNS_TLS_KEY")
	}
	if c.RecordTTL < MinTTL || c.RecordTTL > MaxTTL {
		return fmt.Errorf("DDNS_RECORD_TTL %d out of range [%d, %d]", c.RecordTTL, MinTTL, MaxTTL)
	}
	return nil
}

// TLS returns the listener TLS settings, or nil when TLS is not configured.
func (c *Config) TLS() *tlsSettings {
	if c.TLSCert == "" {
		return nil
	}
	return &tlsSettings{cert: c.TLSCert, key: c.TLSKey, ca: c.TLSClientCA}
}
