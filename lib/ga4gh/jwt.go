// Copyright 2019 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ga4gh

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-jose/go-jose/v3" /* copybara-comment */
)

const (
	// TokenTTL is the lifetime of every access token and visa issued.
	TokenTTL = 10 * time.Hour

	// JWTEmptyJKU is for visa issuers who do not wish to set a "jku" header.
	// See https://tools.ietf.org/html/rfc7515#section-4.1.2 for details.
	JWTEmptyJKU = ""

	jwtHeaderJKU = "jku"
	jwtHeaderTyp = "typ"
)

// StdClaims contains the standard claims.
// We duplicate this instead of using a jwt library type because
// Audience can be a string array.
type StdClaims struct {
	Audience  Audiences `json:"aud,omitempty"`
	ExpiresAt int64     `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
	IssuedAt  int64     `json:"iat,omitempty"`
	Issuer    string    `json:"iss,omitempty"`
	NotBefore int64     `json:"nbf,omitempty"`
	Subject   string    `json:"sub,omitempty"`
}

// newStdClaims fills the time based claims for a token issued at now.
func newStdClaims(sub, iss string, now time.Time) StdClaims {
	iat := now.Unix()
	return StdClaims{
		Subject:   sub,
		Issuer:    iss,
		IssuedAt:  iat,
		ExpiresAt: iat + int64(TokenTTL/time.Second),
	}
}

// parseUnverified decodes the payload of a compact JWS into claims.
// Does not verify the signature.
func parseUnverified(token string, claims any) (*jose.JSONWebSignature, error) {
	tok, err := jose.ParseSigned(token)
	if err != nil {
		return nil, fmt.Errorf("ParseSigned() failed: %v", err)
	}
	if len(tok.Signatures) != 1 {
		return nil, fmt.Errorf("jwt invalid header")
	}
	if err := json.Unmarshal(tok.UnsafePayloadWithoutVerification(), claims); err != nil {
		return nil, fmt.Errorf("json.Unmarshal() payload failed: %v", err)
	}
	return tok, nil
}

// verify checks the signature of token against the key of keys named by the
// token "kid" header. Without a "kid" every key in the set is tried.
func verify(token string, keys *jose.JSONWebKeySet) error {
	tok, err := jose.ParseSigned(token)
	if err != nil {
		return fmt.Errorf("ParseSigned() failed: %v", err)
	}
	if keys == nil {
		return fmt.Errorf("no keys to verify with")
	}

	candidates := keys.Keys
	if kid := tok.Signatures[0].Header.KeyID; kid != "" {
		candidates = keys.Key(kid)
		if len(candidates) == 0 {
			return fmt.Errorf("key %q not found in key set", kid)
		}
	}
	for _, k := range candidates {
		if _, err := tok.Verify(k.Key); err == nil {
			return nil
		}
	}
	return fmt.Errorf("signature verification failed")
}
