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

// Package muxtest contains test helpers for gorilla/mux routers.
package muxtest

import (
	"testing"

	"github.com/gorilla/mux" /* copybara-comment */
	"bitbucket.org/creachadair/stringset" /* copybara-comment */
)

// Routes returns the "METHOD /path/template" entries of router, one per
// method. Routes without a method restriction are listed as "* /path".
func Routes(t *testing.T, r *mux.Router) stringset.Set {
	t.Helper()

	routes := stringset.New()
	err := r.Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		path, err := route.GetPathTemplate()
		if err != nil {
			return err
		}
		methods, err := route.GetMethods()
		if err != nil {
			routes.Add("* " + path)
			return nil
		}
		for _, m := range methods {
			routes.Add(m + " " + path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("router.Walk() failed: %v", err)
	}
	return routes
}
