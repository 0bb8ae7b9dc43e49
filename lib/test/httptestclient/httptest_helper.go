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

// Package httptestclient provides http clients that serve requests with
// in-process handlers instead of the network.
package httptestclient

import (
	"net/http"
	"net/http/httptest"
)

type stubRoundTripper struct {
	handler http.Handler
}

func (s *stubRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, r)
	return w.Result(), nil
}

// New returns a client sending every request to handler.
func New(handler http.Handler) *http.Client {
	return &http.Client{Transport: &stubRoundTripper{handler: handler}}
}

// NewWithHosts returns a client sending requests to the handler registered for
// the request host. Requests to other hosts get 502 Bad Gateway.
func NewWithHosts(hosts map[string]http.Handler) *http.Client {
	mux := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := hosts[r.URL.Host]
		if !ok {
			http.Error(w, "unknown host "+r.URL.Host, http.StatusBadGateway)
			return
		}
		h.ServeHTTP(w, r)
	})
	return New(mux)
}
