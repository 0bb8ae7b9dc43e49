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

package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp" /* copybara-comment */
	"github.com/sdtools/mockauth/lib/osenv" /* copybara-comment: osenv */
	"github.com/sdtools/mockauth/lib/test/fakekeystone" /* copybara-comment: fakekeystone */
	"github.com/sdtools/mockauth/lib/test/httptestclient" /* copybara-comment: httptestclient */
)

const keystoneHost = "keystone.example.org"

func baseEnv() osenv.Env {
	return osenv.Env{
		"AAI_BASE_URL":      "https://aai.example.org",
		"AAI_CLIENT_ID":     "client",
		"AAI_CLIENT_SECRET": "secret",
		"SDS_ACCESS_TOKEN":  "static",
		"KEYSTONE_BASE_URL": "https://" + keystoneHost,
		"USER_EMAIL":        "user@example.org",
		"CSC_PROJECT":       "project_2001234",
		"IS_FINDATA":        "True",
		"VISA_ISSUERS":      `[{"issuer":"https://example.org/alpha","jku":"https://aai.example.org/api/jwk/alpha"}]`,
	}
}

func newClient(ks *fakekeystone.Server) *http.Client {
	return httptestclient.NewWithHosts(map[string]http.Handler{keystoneHost: ks})
}

func TestReadConfig_Defaults(t *testing.T) {
	env := osenv.Env{
		"AAI_BASE_URL":      "https://aai.example.org",
		"AAI_CLIENT_ID":     "client",
		"AAI_CLIENT_SECRET": "secret",
	}
	got := readConfig(env)
	want := &config{
		port:            "8000",
		baseURL:         "https://aai.example.org",
		clientID:        "client",
		clientSecret:    "secret",
		keystoneTimeout: 30 * time.Second,
		username:        "swift",
		password:        "veryfast",
		project:         "service",
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(config{})); diff != "" {
		t.Errorf("readConfig() returned diff (-want +got):\n%s", diff)
	}
}

func TestReadConfig_Findata(t *testing.T) {
	for v, want := range map[string]bool{"yes": true, "TRUE": true, " t ": true, "1": true, "no": false, "0": false, "": false, "y": false} {
		env := baseEnv()
		env["IS_FINDATA"] = v
		if got := readConfig(env).findata; got != want {
			t.Errorf("IS_FINDATA=%q: findata = %v, want %v", v, got, want)
		}
	}
}

func TestSetup(t *testing.T) {
	ks := fakekeystone.New("swift", "veryfast", "keystone-token")
	env := baseEnv()

	svc, err := setup(context.Background(), readConfig(env), env, newClient(ks))
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	if n := ks.Requests.Load(); n != 1 {
		t.Errorf("keystone received %d requests, want 1", n)
	}

	r := httptest.NewRequest(http.MethodGet, "/idp/profile/oidc/userinfo", nil)
	r.Header.Set("Authorization", "Bearer static")
	w := httptest.NewRecorder()
	svc.Handler.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("userinfo = %d %q, want 200", w.Code, w.Body.String())
	}
	got := map[string]any{}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("json.Unmarshal() failed: %v", err)
	}
	want := map[string]any{
		"CSCUserName":              "swift",
		"sdDesktopProjects":        "project_2001234",
		"sdDesktopFindataProjects": "project_2001234",
		"sdConnectProjects":        "project_2001234",
		"projectPI":                "project_2001234",
		"pouta_access_token":       "keystone-token",
		"email":                    "user@example.org",
		"ga4gh_passport_v1":        []any{},
		"access_token":             string(svc.DesktopToken()),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("userinfo returned diff (-want +got):\n%s", diff)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/jwk/alpha", nil)
	w = httptest.NewRecorder()
	svc.Handler.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("GET /api/jwk/alpha = %d, want 200", w.Code)
	}
}

func TestSetup_NoKeystone(t *testing.T) {
	ks := fakekeystone.New("swift", "veryfast", "keystone-token")
	env := baseEnv()
	delete(env, "KEYSTONE_BASE_URL")

	if _, err := setup(context.Background(), readConfig(env), env, newClient(ks)); err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	if n := ks.Requests.Load(); n != 0 {
		t.Errorf("keystone received %d requests, want 0", n)
	}
}

func TestSetup_Errors(t *testing.T) {
	tests := []struct {
		desc string
		edit func(osenv.Env)
	}{
		{
			desc: "keystone rejects credentials",
			edit: func(e osenv.Env) { e["CSC_PASSWORD"] = "wrong" },
		},
		{
			desc: "keystone unreachable",
			edit: func(e osenv.Env) { e["KEYSTONE_BASE_URL"] = "https://unknown.example.org" },
		},
		{
			desc: "invalid email",
			edit: func(e osenv.Env) { e["USER_EMAIL"] = "not an email" },
		},
		{
			desc: "invalid issuer json",
			edit: func(e osenv.Env) { e["VISA_ISSUERS"] = "{" },
		},
		{
			desc: "both issuer schemas",
			edit: func(e osenv.Env) {
				e["BETA_ISSUER_NAME"] = "https://example.org/beta"
				e["BETA_ISSUER_JKU"] = "https://aai.example.org/api/jwk/beta"
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			ks := fakekeystone.New("swift", "veryfast", "keystone-token")
			env := baseEnv()
			tc.edit(env)
			if _, err := setup(context.Background(), readConfig(env), env, newClient(ks)); err == nil {
				t.Fatal("setup() wants error")
			}
		})
	}
}

func TestSetup_KeystoneTimeout(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	env := baseEnv()
	env["KEYSTONE_TIMEOUT"] = "20ms"
	client := httptestclient.NewWithHosts(map[string]http.Handler{keystoneHost: slow})

	start := time.Now()
	if _, err := setup(context.Background(), readConfig(env), env, client); err == nil {
		t.Fatal("setup() wants error on keystone timeout")
	}
	if d := time.Since(start); d > 5*time.Second {
		t.Errorf("setup() took %v, want it bounded by the keystone timeout", d)
	}
}
