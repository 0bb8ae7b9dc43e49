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

// Package passport holds the visas accumulated for the current test user.
package passport

import (
	"sync"

	"github.com/sdtools/mockauth/lib/ga4gh" /* copybara-comment: ga4gh */
)

// Store is an append-only, ordered list of visas shared by all requests.
// Entries are not validated, deduplicated, reordered or removed.
type Store struct {
	mu    sync.RWMutex
	visas []ga4gh.VisaJWT
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

// Append adds a visa to the end of the passport.
func (s *Store) Append(v ga4gh.VisaJWT) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visas = append(s.visas, v)
}

// Snapshot returns a copy of the passport in append order.
// Never nil, so it encodes as an empty JSON list.
func (s *Store) Snapshot() []ga4gh.VisaJWT {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ga4gh.VisaJWT, len(s.visas))
	copy(out, s.visas)
	return out
}

// Len returns the number of visas in the passport.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.visas)
}
