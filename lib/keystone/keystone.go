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

// Package keystone fetches the project token of the companion OpenStack
// Keystone service with a password grant.
package keystone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	glog "github.com/golang/glog" /* copybara-comment */
)

const (
	// TokensPath is the Keystone v3 token creation endpoint.
	TokensPath = "/v3/auth/tokens"

	// SubjectTokenHeader carries the issued token in the response.
	SubjectTokenHeader = "X-Subject-Token"

	// DefaultDomain is the Keystone domain users authenticate in.
	DefaultDomain = "default"
)

// Credentials for the password grant.
type Credentials struct {
	BaseURL  string
	Username string
	Password string
	DomainID string
}

type authRequest struct {
	Auth auth `json:"auth"`
}

type auth struct {
	Identity identity `json:"identity"`
}

type identity struct {
	Methods  []string       `json:"methods"`
	Password passwordMethod `json:"password"`
}

type passwordMethod struct {
	User user `json:"user"`
}

type user struct {
	Domain   domain `json:"domain"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type domain struct {
	ID string `json:"id"`
}

// ErrorDetail is the "error" object of a Keystone error body.
type ErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Title   string `json:"title"`
}

// bodyError returns an error if b is a JSON object with an "error" key,
// whatever the type of its value.
func bodyError(b []byte) error {
	fields := map[string]json.RawMessage{}
	if len(b) == 0 || json.Unmarshal(b, &fields) != nil {
		return nil
	}
	raw, ok := fields["error"]
	if !ok {
		return nil
	}
	d := &ErrorDetail{}
	if json.Unmarshal(raw, d) == nil && d.Message != "" {
		return fmt.Errorf("keystone auth failed: %s", d.Message)
	}
	return fmt.Errorf("keystone auth failed: %s", raw)
}

func newAuthRequest(c Credentials) *authRequest {
	d := c.DomainID
	if d == "" {
		d = DefaultDomain
	}
	return &authRequest{Auth: auth{Identity: identity{
		Methods: []string{"password"},
		Password: passwordMethod{User: user{
			Domain:   domain{ID: d},
			Name:     c.Username,
			Password: c.Password,
		}},
	}}}
}

// FetchOnce performs a single password grant and returns the subject token.
// There is no retry: ctx should carry the deadline for the whole exchange.
func FetchOnce(ctx context.Context, client *http.Client, c Credentials) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}
	body, err := json.Marshal(newAuthRequest(c))
	if err != nil {
		return "", fmt.Errorf("json.Marshal() auth request failed: %v", err)
	}

	u := strings.TrimSuffix(c.BaseURL, "/") + TokensPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("http.NewRequest(%q) failed: %v", u, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("keystone auth %q failed: %v", u, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading keystone response failed: %v", err)
	}

	if err := bodyError(b); err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("keystone auth failed: status %d", resp.StatusCode)
	}

	tok := resp.Header.Get(SubjectTokenHeader)
	if tok == "" {
		return "", fmt.Errorf("keystone auth response has no %s header", SubjectTokenHeader)
	}
	glog.Infof("keystone token fetched for user %q", c.Username)
	return tok, nil
}
