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

// Package localsign contains a jwt signer use jose/jwt.
package localsign

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"

	"github.com/go-jose/go-jose/v3" /* copybara-comment */
	"github.com/sdtools/mockauth/lib/testkeys" /* copybara-comment: testkeys */
)

// Signer signs jwt with a single in-memory RSA key.
type Signer struct {
	key jose.JSONWebKey
	pri *rsa.PrivateKey
}

// New RS256 Signer with given key.
func New(k *testkeys.Key) *Signer {
	return &Signer{
		key: k.JWK(),
		pri: k.Private,
	}
}

// PublicKeys in signer.
func (s *Signer) PublicKeys() *jose.JSONWebKeySet {
	return &jose.JSONWebKeySet{
		Keys: []jose.JSONWebKey{s.key},
	}
}

// SignJWT signs the given claims return the jwt string.
// The "typ" header defaults to "JWT" and can be replaced through header,
// "kid" is always the id of the signing key.
func (s *Signer) SignJWT(ctx context.Context, claims any, header map[string]string) (string, error) {
	key := jose.SigningKey{
		Algorithm: testkeys.Algorithm,
		Key:       s.pri,
	}

	opt := &jose.SignerOptions{}
	opt.WithType("JWT")
	for k, v := range header {
		opt.WithHeader(jose.HeaderKey(k), v)
	}
	opt.WithHeader("kid", s.key.KeyID)

	signer, err := jose.NewSigner(key, opt)
	if err != nil {
		return "", fmt.Errorf("jose.NewSigner() failed: %v", err)
	}

	b, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("json.Marshal(%T) failed: %v", claims, err)
	}

	res, err := signer.Sign(b)
	if err != nil {
		return "", fmt.Errorf("signer.Sign() failed: %v", err)
	}

	return res.CompactSerialize()
}
