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

package testkeys

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp" /* copybara-comment */
)

func TestGenerate(t *testing.T) {
	a, err := Generate()
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	b, err := Generate()
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	if a.ID == "" {
		t.Errorf("Generate() returned empty key id")
	}
	if a.ID == b.ID {
		t.Errorf("Generate() returned duplicated key id %q", a.ID)
	}
	if a.Private.PublicKey.N.Cmp(a.Public.N) != 0 {
		t.Errorf("Generate() public key does not match private key")
	}
	if a.Public.N.Cmp(b.Public.N) == 0 {
		t.Errorf("Generate() returned the same key material twice")
	}
	if got := a.Public.N.BitLen(); got != keyBits {
		t.Errorf("modulus size = %d, want %d", got, keyBits)
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("no entropy") }

func TestGenerate_EntropyFailure(t *testing.T) {
	org := randReader
	defer func() { randReader = org }()
	randReader = errReader{}

	if _, err := Generate(); err == nil {
		t.Fatal("Generate() wants error when the random source fails")
	}
}

func TestJWKS(t *testing.T) {
	k, err := Generate()
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	set := k.JWKS()
	if len(set.Keys) != 1 {
		t.Fatalf("len(JWKS().Keys) = %d, want 1", len(set.Keys))
	}
	got := set.Keys[0]
	if !got.IsPublic() {
		t.Errorf("JWKS() contains a private key")
	}
	if got.KeyID != k.ID || got.Algorithm != "RS256" || got.Use != "sig" {
		t.Errorf("JWKS() key = {kid:%q alg:%q use:%q}, want {kid:%q alg:RS256 use:sig}", got.KeyID, got.Algorithm, got.Use, k.ID)
	}
}

func TestJWKS_Stable(t *testing.T) {
	k, err := Generate()
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	first, err := json.Marshal(k.JWKS())
	if err != nil {
		t.Fatalf("json.Marshal() failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := json.Marshal(k.JWKS())
		if err != nil {
			t.Fatalf("json.Marshal() failed: %v", err)
		}
		if diff := cmp.Diff(string(first), string(again)); diff != "" {
			t.Fatalf("JWKS() changed between calls (-first +again):\n%s", diff)
		}
	}
}
