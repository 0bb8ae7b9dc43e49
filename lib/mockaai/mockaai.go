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

// Package mockaai is a fake OAuth2/OIDC authorization server that also issues
// GA4GH visas for the datasets a test user is granted.
// WARNING: ONLY for use with synthetic or test data.
package mockaai

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/mux" /* copybara-comment */
	"github.com/sdtools/mockauth/lib/ga4gh" /* copybara-comment: ga4gh */
	"github.com/sdtools/mockauth/lib/issuers" /* copybara-comment: issuers */
	"github.com/sdtools/mockauth/lib/kms" /* copybara-comment: kms */
	"github.com/sdtools/mockauth/lib/kms/localsign" /* copybara-comment: localsign */
	"github.com/sdtools/mockauth/lib/passport" /* copybara-comment: passport */
	"github.com/sdtools/mockauth/lib/testkeys" /* copybara-comment: testkeys */

	glog "github.com/golang/glog" /* copybara-comment */
)

const (
	oidcPrefix            = "/idp/profile/oidc"
	tokenPath             = oidcPrefix + "/token"
	keysetPath            = oidcPrefix + "/keyset"
	userInfoPath          = oidcPrefix + "/userinfo"
	oidcConfigurationPath = "/.well-known/openid-configuration"
	visaKeysPath          = "/api/jwk/{service}"
	visaGrantPath         = "/api/jwk/{service}/{dataset}"
	livenessPath          = "/liveness_check"

	// desktopClient is the subject, client and scope of the desktop token.
	desktopClient = "desktop"
)

var generateKey = testkeys.Generate

// Options configures a Service.
type Options struct {
	// BaseURL is the issuer URL of the server.
	BaseURL string
	// Resource is the audience of the desktop token.
	Resource string
	// ClientID and ClientSecret of the client allowed the client_credentials grant.
	ClientID     string
	ClientSecret string
	// StaticToken is an extra bearer accepted by userinfo. Empty disables it.
	StaticToken string
	// Username, Project and Email describe the test user.
	Username string
	Project  string
	Email    string
	// Findata marks Project as a findata project.
	Findata bool
	// UpstreamToken is the Keystone token exposed by userinfo.
	UpstreamToken string
	// Issuers are the visa issuers. Nil means none.
	Issuers *issuers.Registry
	// Passport receives the granted visas. Nil creates an empty one.
	Passport *passport.Store
	// Now is the clock used for token times. Nil uses time.Now.
	Now func() time.Time
}

// Service is the mock AAI in its serving state: keys are generated, the
// desktop token is issued, and only the passport changes from now on.
type Service struct {
	opts         Options
	key          *testkeys.Key
	signer       kms.Signer
	desktopToken ga4gh.AccessJWT
	issuers      *issuers.Registry
	passport     *passport.Store
	now          func() time.Time

	Handler *mux.Router
}

// New runs the initialization phase and returns a Service ready to serve.
func New(ctx context.Context, opts Options) (*Service, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if opts.ClientID == "" || opts.ClientSecret == "" {
		return nil, fmt.Errorf("client id and secret are required")
	}

	key, err := generateKey()
	if err != nil {
		return nil, fmt.Errorf("generating server key failed: %v", err)
	}

	s := &Service{
		opts:     opts,
		key:      key,
		signer:   localsign.New(key),
		issuers:  opts.Issuers,
		passport: opts.Passport,
		now:      opts.Now,
	}
	if s.issuers == nil {
		if s.issuers, err = issuers.New(nil); err != nil {
			return nil, err
		}
	}
	if s.passport == nil {
		s.passport = passport.New()
	}
	if s.now == nil {
		s.now = time.Now
	}

	s.desktopToken, err = ga4gh.BuildAccessToken(ctx, ga4gh.AccessParams{
		Subject:  desktopClient,
		Issuer:   opts.BaseURL,
		Audience: opts.Resource,
		ClientID: desktopClient,
		Scope:    desktopClient,
		Now:      s.now(),
	}, s.signer)
	if err != nil {
		return nil, fmt.Errorf("issuing desktop token failed: %v", err)
	}
	glog.Infof("server key kid=%q, %d visa issuers %v", key.ID, len(s.issuers.IDs()), s.issuers.IDs())

	r := mux.NewRouter()
	r.UseEncodedPath()
	s.Handler = r
	registerHandlers(r, s)

	return s, nil
}

// DesktopToken returns the access token issued at startup.
func (s *Service) DesktopToken() ga4gh.AccessJWT {
	return s.desktopToken
}

// Passport returns the passport store of the service.
func (s *Service) Passport() *passport.Store {
	return s.passport
}

func registerHandlers(r *mux.Router, s *Service) {
	r.HandleFunc(tokenPath, s.Token).Methods("POST")
	r.HandleFunc(keysetPath, s.Keyset).Methods("GET")
	r.HandleFunc(userInfoPath, s.UserInfo).Methods("GET")
	r.HandleFunc(oidcConfigurationPath, s.OIDCConfiguration).Methods("GET")
	r.HandleFunc(oidcPrefix+oidcConfigurationPath, s.OIDCConfiguration).Methods("GET")
	r.HandleFunc(visaKeysPath, s.VisaKeys).Methods("GET")
	r.HandleFunc(visaGrantPath, s.GrantVisa).Methods("POST")
	r.HandleFunc(livenessPath, s.Liveness).Methods("GET")
}
