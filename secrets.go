// ABOUTME: Credential source backed by AWS Secrets Manager.
// ABOUTME: Fetches the reference username/password pair fresh on every request.

package dyndns53

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// Credentials is the reference pair clients must present. Values are never
// logged; the secret name is the only loggable handle.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CredentialSource fetches the reference credential pair. Implementations
// must not cache across calls: rotation takes effect without redeploy.
type CredentialSource interface {
	Fetch(ctx context.Context) (Credentials, error)
}

// SecretsManagerAPI is the subset of the Secrets Manager client this package
// calls, narrowed for testing.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsManagerSource reads a JSON secret of the form
// {"username": ..., "password": ...} from AWS Secrets Manager.
type SecretsManagerSource struct {
	api  SecretsManagerAPI
	name string
}

// NewSecretsManagerSource creates a source reading the named secret.
func NewSecretsManagerSource(api SecretsManagerAPI, name string) *SecretsManagerSource {
	return &SecretsManagerSource{api: api, name: name}
}

// Fetch retrieves and parses the secret payload.
func (s *SecretsManagerSource) Fetch(ctx context.Context) (Credentials, error) {
	out, err := s.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(s.name),
	})
	if err != nil {
		return Credentials{}, fmt.Errorf("fetching secret %s: %w", s.name, err)
	}

	payload := aws.ToString(out.SecretString)
	if payload == "" {
		return Credentials{}, fmt.Errorf("secret %s has no string payload", s.name)
	}

	var creds Credentials
	if err := json.Unmarshal([]byte(payload), &creds); err != nil {
		return Credentials{}, fmt.Errorf("parsing secret %s: %w", s.name, err)
	}
	if creds.Username == "" || creds.Password == "" {
		return Credentials{}, fmt.Errorf("secret %s is missing username or password", s.name)
	}

	return creds, nil
}
