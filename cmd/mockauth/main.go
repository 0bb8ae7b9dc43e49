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

// This package provides the mock AAI server: an OAuth2/OIDC provider for
// integration tests that also issues GA4GH visas. Configured from the
// environment, see config below.
// WARNING: ONLY for use with synthetic or test data.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-openapi/strfmt" /* copybara-comment */
	"github.com/sdtools/mockauth/lib/issuers" /* copybara-comment: issuers */
	"github.com/sdtools/mockauth/lib/keystone" /* copybara-comment: keystone */
	"github.com/sdtools/mockauth/lib/mockaai" /* copybara-comment: mockaai */
	"github.com/sdtools/mockauth/lib/osenv" /* copybara-comment: osenv */
	"github.com/sdtools/mockauth/lib/server" /* copybara-comment: server */

	glog "github.com/golang/glog" /* copybara-comment */
)

const serviceName = "mockauth"

type config struct {
	port            string
	baseURL         string
	resource        string
	clientID        string
	clientSecret    string
	staticToken     string
	keystoneURL     string
	keystoneTimeout time.Duration
	username        string
	password        string
	project         string
	findata         bool
	email           string
}

func readConfig(env osenv.Env) *config {
	return &config{
		port:            env.VarWithDefault("PORT", "8000"),
		baseURL:         env.MustVar("AAI_BASE_URL"),
		resource:        env.Get("AAI_RESOURCE"),
		clientID:        env.MustVar("AAI_CLIENT_ID"),
		clientSecret:    env.MustVar("AAI_CLIENT_SECRET"),
		staticToken:     env.Get("SDS_ACCESS_TOKEN"),
		keystoneURL:     env.Get("KEYSTONE_BASE_URL"),
		keystoneTimeout: env.DurationVarWithDefault("KEYSTONE_TIMEOUT", 30*time.Second),
		username:        env.VarWithDefault("CSC_USERNAME", "swift"),
		password:        env.VarWithDefault("CSC_PASSWORD", "veryfast"),
		project:         env.VarWithDefault("CSC_PROJECT", "service"),
		findata:         osenv.Truthy(env.Get("IS_FINDATA")),
		email:           env.Get("USER_EMAIL"),
	}
}

// setup runs the initialization phase. Any error is fatal to the process.
func setup(ctx context.Context, cfg *config, env osenv.Env, client *http.Client) (*mockaai.Service, error) {
	if cfg.email != "" && !strfmt.IsEmail(cfg.email) {
		return nil, fmt.Errorf("USER_EMAIL %q is not an email address", cfg.email)
	}

	reg, err := issuers.Load(env)
	if err != nil {
		return nil, fmt.Errorf("loading visa issuers failed: %v", err)
	}

	upstream := ""
	if cfg.keystoneURL != "" {
		fctx, cancel := context.WithTimeout(ctx, cfg.keystoneTimeout)
		defer cancel()
		upstream, err = keystone.FetchOnce(fctx, client, keystone.Credentials{
			BaseURL:  cfg.keystoneURL,
			Username: cfg.username,
			Password: cfg.password,
			DomainID: keystone.DefaultDomain,
		})
		if err != nil {
			return nil, fmt.Errorf("fetching upstream token failed: %v", err)
		}
	} else {
		glog.Warningf("KEYSTONE_BASE_URL is not set, pouta_access_token will be empty")
	}

	return mockaai.New(ctx, mockaai.Options{
		BaseURL:       cfg.baseURL,
		Resource:      cfg.resource,
		ClientID:      cfg.clientID,
		ClientSecret:  cfg.clientSecret,
		StaticToken:   cfg.staticToken,
		Username:      cfg.username,
		Project:       cfg.project,
		Email:         cfg.email,
		Findata:       cfg.findata,
		UpstreamToken: upstream,
		Issuers:       reg,
	})
}

func main() {
	flag.Parse()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := osenv.FromOS()
	cfg := readConfig(env)
	svc, err := setup(ctx, cfg, env, http.DefaultClient)
	if err != nil {
		glog.Exitf("setup failed: %v", err)
	}

	if err := server.New(serviceName, cfg.port, svc.Handler).Serve(ctx); err != nil {
		glog.Exitf("server.Serve() failed: %v", err)
	}
}
