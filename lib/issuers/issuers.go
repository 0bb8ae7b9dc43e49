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

// Package issuers holds the simulated visa issuers of the mock AAI, each bound
// to its own signing key.
package issuers

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"google.golang.org/grpc/codes" /* copybara-comment */
	"google.golang.org/grpc/status" /* copybara-comment */
	"github.com/sdtools/mockauth/lib/kms" /* copybara-comment: kms */
	"github.com/sdtools/mockauth/lib/kms/localsign" /* copybara-comment: localsign */
	"github.com/sdtools/mockauth/lib/osenv" /* copybara-comment: osenv */
	"github.com/sdtools/mockauth/lib/testkeys" /* copybara-comment: testkeys */

	glog "github.com/golang/glog" /* copybara-comment */
)

const (
	// EnvVisaIssuers holds a JSON list of Config.
	EnvVisaIssuers = "VISA_ISSUERS"

	// NameSuffix and JKUSuffix form the pairs <PREFIX>_ISSUER_NAME and
	// <PREFIX>_ISSUER_JKU describing one issuer each.
	NameSuffix = "_ISSUER_NAME"
	JKUSuffix  = "_ISSUER_JKU"
)

var generateKey = testkeys.Generate

// Config describes one visa issuer.
type Config struct {
	// Issuer is the URL placed in "iss" and the assertion source.
	Issuer string `json:"issuer"`
	// JKU is the URL relying parties fetch the issuer keys from.
	JKU string `json:"jku"`
}

// Issuer is a visa issuer with its signing key.
type Issuer struct {
	ID     string
	URL    string
	JKU    string
	Key    *testkeys.Key
	Signer kms.Signer
}

// Registry contains the issuers by ID. Immutable after creation.
type Registry struct {
	issuers map[string]*Issuer
}

// Load reads the issuer configuration from env and generates one key per issuer.
//
// Exactly one of two schemas may be used:
//   - VISA_ISSUERS: a JSON list of {"issuer": ..., "jku": ...}.
//   - <PREFIX>_ISSUER_NAME / <PREFIX>_ISSUER_JKU pairs.
//
// Using both is an error. No configuration at all yields an empty registry.
func Load(env osenv.Env) (*Registry, error) {
	cfgs, err := configsFromEnv(env)
	if err != nil {
		return nil, err
	}
	return New(cfgs)
}

func configsFromEnv(env osenv.Env) ([]Config, error) {
	names := env.WithSuffix(NameSuffix)
	if env.Has(EnvVisaIssuers) {
		if len(names) > 0 {
			return nil, fmt.Errorf("%s and %v are both set: use only one issuer configuration", EnvVisaIssuers, names)
		}
		return ParseJSON(env.Get(EnvVisaIssuers))
	}

	var cfgs []Config
	for _, name := range names {
		prefix := strings.TrimSuffix(name, NameSuffix)
		jkuKey := prefix + JKUSuffix
		if !env.Has(jkuKey) {
			return nil, fmt.Errorf("%s is set but %s is missing", name, jkuKey)
		}
		cfgs = append(cfgs, Config{Issuer: env.Get(name), JKU: env.Get(jkuKey)})
	}
	return cfgs, nil
}

// ParseJSON parses a JSON list of issuer configurations.
func ParseJSON(data string) ([]Config, error) {
	var cfgs []Config
	if err := json.Unmarshal([]byte(data), &cfgs); err != nil {
		return nil, fmt.Errorf("parsing %s failed: %v", EnvVisaIssuers, err)
	}
	for i, c := range cfgs {
		if c.JKU == "" {
			return nil, fmt.Errorf("%s[%d]: jku is required", EnvVisaIssuers, i)
		}
	}
	return cfgs, nil
}

// New creates a registry from cfgs, generating a key for each issuer.
func New(cfgs []Config) (*Registry, error) {
	r := &Registry{issuers: make(map[string]*Issuer)}
	for _, c := range cfgs {
		id := DeriveID(c.Issuer)
		if id == "" {
			return nil, fmt.Errorf("issuer %q: cannot derive an identifier", c.Issuer)
		}
		if prev, ok := r.issuers[id]; ok {
			return nil, fmt.Errorf("issuers %q and %q share the identifier %q", prev.URL, c.Issuer, id)
		}

		k, err := generateKey()
		if err != nil {
			return nil, fmt.Errorf("issuer %q: %v", id, err)
		}
		r.issuers[id] = &Issuer{
			ID:     id,
			URL:    c.Issuer,
			JKU:    c.JKU,
			Key:    k,
			Signer: localsign.New(k),
		}
		glog.Infof("visa issuer %q: iss=%q jku=%q kid=%q", id, c.Issuer, c.JKU, k.ID)
	}
	return r, nil
}

// DeriveID returns the last non-empty path segment of an issuer URL.
func DeriveID(issuerURL string) string {
	s := strings.Trim(strings.TrimSpace(issuerURL), "/")
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	return s
}

// Lookup returns the issuer with the given ID or a NotFound error.
func (r *Registry) Lookup(id string) (*Issuer, error) {
	i, ok := r.issuers[id]
	if !ok {
		return nil, status.Errorf(codes.NotFound, "invalid service")
	}
	return i, nil
}

// IDs returns the sorted issuer IDs.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.issuers))
	for id := range r.issuers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
