// ABOUTME: HTTP Basic credential verification against a secret-store reference pair.
// ABOUTME: Any parse, fetch, or comparison failure collapses into one Unauthorized outcome.

package dyndns53

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"strings"
)

const basicPrefix = "Basic "

// Auth verifies client-supplied Basic credentials against the reference pair
// fetched from a CredentialSource on every call.
type Auth struct {
	creds CredentialSource
}

// NewAuth creates a verifier backed by the given credential source.
func NewAuth(creds CredentialSource) *Auth {
	return &Auth{creds: creds}
}

// Verify checks the raw Authorization header value. It returns the supplied
// username and true when the credentials match the reference pair; any other
// condition, including a failed secret fetch, yields false. Fetch failures
// are deliberately indistinguishable from wrong credentials to the caller.
func (a *Auth) Verify(ctx context.Context, header string) (string, bool) {
	user, pass, ok := parseBasicAuth(header)
	if !ok {
		return "", false
	}

	ref, err := a.creds.Fetch(ctx)
	if err != nil {
		log.Errorf("fetching reference credentials: %v", err)
		return "", false
	}

	userOK := constantTimeEqual(user, ref.Username)
	passOK := constantTimeEqual(pass, ref.Password)
	if !userOK || !passOK {
		return "", false
	}

	return user, true
}

// parseBasicAuth decodes a Basic authorization header value. The scheme
// prefix is matched case-insensitively and the decoded payload is split on
// the first colon only, since passwords may themselves contain colons.
func parseBasicAuth(header string) (user, pass string, ok bool) {
	if len(header) < len(basicPrefix) || !strings.EqualFold(header[:len(basicPrefix)], basicPrefix) {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(header[len(basicPrefix):])
	if err != nil {
		return "", "", false
	}

	user, pass, ok = strings.Cut(string(decoded), ":")
	if !ok {
		return "", "", false
	}
	return user, pass, true
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
