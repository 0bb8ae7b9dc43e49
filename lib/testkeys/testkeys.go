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

// Package testkeys generates the RSA signing keys held by the mock AAI: one for
// the server itself and one per simulated visa issuer.
package testkeys

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"

	"github.com/go-jose/go-jose/v3" /* copybara-comment */
	"github.com/pborman/uuid" /* copybara-comment */
)

const (
	// Algorithm is the only signing algorithm keys are generated for.
	Algorithm = jose.RS256

	// keyBits is the RSA modulus size.
	keyBits = 2048
)

// Key is a pair of RSA private/public keys.
// Keys are created once at startup and never rotated.
type Key struct {
	ID      string
	Private *rsa.PrivateKey
	Public  *rsa.PublicKey
}

var randReader = rand.Reader

// Generate creates a fresh RS256 key pair with a random key id.
func Generate() (*Key, error) {
	pri, err := rsa.GenerateKey(randReader, keyBits)
	if err != nil {
		return nil, fmt.Errorf("rsa.GenerateKey() failed: %v", err)
	}
	return &Key{
		ID:      uuid.New(),
		Private: pri,
		Public:  &pri.PublicKey,
	}, nil
}

// JWK returns the public half of the key as a JSON Web Key.
func (k *Key) JWK() jose.JSONWebKey {
	return jose.JSONWebKey{
		Key:       k.Public,
		KeyID:     k.ID,
		Algorithm: string(Algorithm),
		Use:       "sig",
	}
}

// JWKS returns a key set containing exactly the public half of the key.
func (k *Key) JWKS() *jose.JSONWebKeySet {
	return &jose.JSONWebKeySet{
		Keys: []jose.JSONWebKey{k.JWK()},
	}
}
