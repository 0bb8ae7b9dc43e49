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

// Package osenv provides utilities to read flag-like enviroment variables.
package osenv

import (
	"os"
	"sort"
	"strings"
	"time"

	"bitbucket.org/creachadair/stringset" /* copybara-comment */

	glog "github.com/golang/glog" /* copybara-comment */
)

var (
	glogExitf = glog.Exitf

	truthy = stringset.New("yes", "true", "t", "1")
)

// Env is a snapshot of environment variables.
// Packages take an Env instead of reading the process environment so that
// tests can provide their own.
type Env map[string]string

// FromOS returns a snapshot of the process environment.
func FromOS() Env {
	return FromList(os.Environ())
}

// FromList builds an Env from "KEY=value" entries.
func FromList(list []string) Env {
	env := Env{}
	for _, kv := range list {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env[k] = v
	}
	return env
}

// Get returns the value of key, empty if not set.
func (e Env) Get(key string) string {
	return e[key]
}

// Has reports if key is set, even to an empty value.
func (e Env) Has(key string) bool {
	_, ok := e[key]
	return ok
}

// WithSuffix returns the sorted keys ending in suffix.
func (e Env) WithSuffix(suffix string) []string {
	var keys []string
	for k := range e {
		if strings.HasSuffix(k, suffix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// MustVar reads the value of an environment string variable.
// if it is not set, exits.
func (e Env) MustVar(key string) string {
	v := e[key]
	if v == "" {
		glogExitf("Environment variable %q is not set.", key)
	}
	return v
}

// VarWithDefault reads the value of an environment string variable.
// if it is not set, returns the provided default value.
func (e Env) VarWithDefault(key string, d string) string {
	v := e[key]
	if v == "" {
		return d
	}
	return v
}

// DurationVarWithDefault reads an environment variable in time.ParseDuration
// format. Exits if the value cannot be parsed.
func (e Env) DurationVarWithDefault(key string, d time.Duration) time.Duration {
	v := e[key]
	if v == "" {
		return d
	}
	dur, err := time.ParseDuration(v)
	if err != nil {
		glogExitf("Environment variable %q=%q is not a duration: %v", key, v, err)
		return d
	}
	return dur
}

// Truthy reports if v is one of "yes", "true", "t" or "1", ignoring case.
func Truthy(v string) bool {
	return truthy.Contains(strings.ToLower(strings.TrimSpace(v)))
}
