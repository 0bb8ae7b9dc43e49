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

// Package fakekeystone provides a minimal fake Keystone v3 password auth
// endpoint for testing purpose.
package fakekeystone

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	glog "github.com/golang/glog" /* copybara-comment */
)

// Server is a fake Keystone accepting a single user.
type Server struct {
	Username string
	Password string
	Token    string

	// Requests counts the auth requests received.
	Requests atomic.Int32
}

// New creates a fake Keystone issuing token to username/password.
func New(username, password, token string) *Server {
	return &Server{Username: username, Password: password, Token: token}
}

type authRequest struct {
	Auth struct {
		Identity struct {
			Methods  []string `json:"methods"`
			Password struct {
				User struct {
					Domain struct {
						ID string `json:"id"`
					} `json:"domain"`
					Name     string `json:"name"`
					Password string `json:"password"`
				} `json:"user"`
			} `json:"password"`
		} `json:"identity"`
	} `json:"auth"`
}

// ServeHTTP handles POST /v3/auth/tokens.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Requests.Add(1)
	if r.Method != http.MethodPost || r.URL.Path != "/v3/auth/tokens" {
		writeError(w, http.StatusNotFound, "Not Found", "The resource could not be found.")
		return
	}

	req := &authRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request", "Malformed request body.")
		return
	}
	u := req.Auth.Identity.Password.User
	if u.Name != s.Username || u.Password != s.Password || u.Domain.ID != "default" {
		writeError(w, http.StatusUnauthorized, "Unauthorized", "The request you have made requires authentication.")
		return
	}

	w.Header().Set("X-Subject-Token", s.Token)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"token": map[string]any{
			"methods": []string{"password"},
			"user":    map[string]any{"name": u.Name, "domain": map[string]string{"id": u.Domain.ID}},
		},
	})
}

func writeError(w http.ResponseWriter, code int, title, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	body := map[string]any{
		"error": map[string]any{"code": code, "title": title, "message": msg},
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		glog.Errorf("encoding fake keystone error failed: %v", err)
	}
}
