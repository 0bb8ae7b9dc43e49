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

package mockaai

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-jose/go-jose/v3" /* copybara-comment */
	"github.com/gorilla/mux" /* copybara-comment */
	"google.golang.org/grpc/codes" /* copybara-comment */
	"google.golang.org/grpc/status" /* copybara-comment */
	"github.com/sdtools/mockauth/lib/ga4gh" /* copybara-comment: ga4gh */
	"github.com/sdtools/mockauth/lib/httputil" /* copybara-comment: httputil */
	"github.com/sdtools/mockauth/lib/testkeys" /* copybara-comment: testkeys */

	glog "github.com/golang/glog" /* copybara-comment */
)

// grantType is an OAuth2 grant type.
type grantType string

const (
	clientCredentialsGrant grantType = "client_credentials"
)

// TokenResponse is the response of the token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Scope       string `json:"scope"`
}

// UserInfo is the response of the userinfo endpoint.
type UserInfo struct {
	CSCUserName              string          `json:"CSCUserName"`
	SDDesktopProjects        string          `json:"sdDesktopProjects"`
	SDDesktopFindataProjects string          `json:"sdDesktopFindataProjects"`
	SDConnectProjects        string          `json:"sdConnectProjects"`
	ProjectPI                string          `json:"projectPI"`
	PoutaAccessToken         string          `json:"pouta_access_token"`
	Email                    string          `json:"email"`
	Passport                 []ga4gh.VisaJWT `json:"ga4gh_passport_v1"`

	// AccessToken is the desktop token, only returned to the static test token.
	AccessToken ga4gh.AccessJWT `json:"access_token,omitempty"`
}

// OIDCConfig is the OIDC discovery document.
type OIDCConfig struct {
	Issuer                            string   `json:"issuer"`
	TokenEndpoint                     string   `json:"token_endpoint"`
	JWKSURI                           string   `json:"jwks_uri"`
	UserinfoEndpoint                  string   `json:"userinfo_endpoint"`
	GrantTypesSupported               []string `json:"grant_types_supported"`
	TokenEndpointAuthMethodsSupported []string `json:"token_endpoint_auth_methods_supported"`
	IDTokenSigningAlgValuesSupported  []string `json:"id_token_signing_alg_values_supported"`
	ClaimsSupported                   []string `json:"claims_supported"`
}

// Token handles the OAuth2 token endpoint.
func (s *Service) Token(w http.ResponseWriter, r *http.Request) {
	resp, err := s.token(r)
	if err != nil {
		glog.Warningf("token request rejected: %v", err)
	}
	httputil.WriteRPCResp(w, resp, err)
}

func (s *Service) token(r *http.Request) (*TokenResponse, error) {
	if err := r.ParseForm(); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid form: %v", err)
	}

	switch grantType(r.PostFormValue("grant_type")) {
	case clientCredentialsGrant:
		return s.clientCredentials(r)
	default:
		return nil, status.Error(codes.InvalidArgument, "invalid grant_type")
	}
}

func (s *Service) clientCredentials(r *http.Request) (*TokenResponse, error) {
	id, secret := r.PostFormValue("client_id"), r.PostFormValue("client_secret")
	if id == "" {
		if u, p, ok := r.BasicAuth(); ok {
			id, secret = u, p
		}
	}
	if id != s.opts.ClientID || secret != s.opts.ClientSecret {
		return nil, status.Error(codes.InvalidArgument, "invalid credentials")
	}

	scope := r.PostFormValue("scope")
	tok, err := ga4gh.BuildAccessToken(r.Context(), ga4gh.AccessParams{
		Subject:  id,
		Issuer:   s.opts.BaseURL,
		Audience: r.PostFormValue("resource"),
		ClientID: id,
		Scope:    scope,
		Now:      s.now(),
	}, s.signer)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "issuing access token failed: %v", err)
	}
	glog.V(1).Infof("issued access token to client %q scope %q", id, scope)

	return &TokenResponse{
		AccessToken: string(tok),
		TokenType:   "Bearer",
		ExpiresIn:   int64(ga4gh.TokenTTL.Seconds()),
		Scope:       scope,
	}, nil
}

// Keyset returns the public key of the server.
func (s *Service) Keyset(w http.ResponseWriter, r *http.Request) {
	httputil.WriteRPCResp(w, s.key.JWKS(), nil)
}

// UserInfo returns the test user profile and passport.
func (s *Service) UserInfo(w http.ResponseWriter, r *http.Request) {
	resp, err := s.userInfo(r)
	if err != nil {
		glog.Warningf("userinfo request rejected: %v", err)
	}
	httputil.WriteRPCResp(w, resp, err)
}

func (s *Service) userInfo(r *http.Request) (*UserInfo, error) {
	tok := bearerToken(r)
	isStatic := tok != "" && tok == s.opts.StaticToken
	if tok == "" || (tok != string(s.desktopToken) && !isStatic) {
		return nil, status.Error(codes.InvalidArgument, "invalid token")
	}

	findata := ""
	if s.opts.Findata {
		findata = s.opts.Project
	}
	info := &UserInfo{
		CSCUserName:              s.opts.Username,
		SDDesktopProjects:        s.opts.Project,
		SDDesktopFindataProjects: findata,
		SDConnectProjects:        s.opts.Project,
		ProjectPI:                s.opts.Project,
		PoutaAccessToken:         s.opts.UpstreamToken,
		Email:                    s.opts.Email,
		Passport:                 s.passport.Snapshot(),
	}
	if isStatic {
		info.AccessToken = s.desktopToken
	}
	return info, nil
}

// bearerToken returns the token of an "Authorization: Bearer" header.
func bearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}

// OIDCConfiguration returns the OIDC discovery document.
func (s *Service) OIDCConfiguration(w http.ResponseWriter, r *http.Request) {
	base := strings.TrimSuffix(s.opts.BaseURL, "/")
	httputil.WriteRPCResp(w, &OIDCConfig{
		Issuer:                            s.opts.BaseURL,
		TokenEndpoint:                     base + tokenPath,
		JWKSURI:                           base + keysetPath,
		UserinfoEndpoint:                  base + userInfoPath,
		GrantTypesSupported:               []string{string(clientCredentialsGrant)},
		TokenEndpointAuthMethodsSupported: []string{"client_secret_post", "client_secret_basic"},
		IDTokenSigningAlgValuesSupported:  []string{string(testkeys.Algorithm)},
		ClaimsSupported:                   []string{"sub", "iss", "aud", "exp", "iat", "auth_time", "client_id", "scope", "email", "ga4gh_passport_v1"},
	}, nil)
}

// VisaKeys returns the public key of a visa issuer.
func (s *Service) VisaKeys(w http.ResponseWriter, r *http.Request) {
	resp, err := s.visaKeys(pathVar(r, "service"))
	httputil.WriteRPCResp(w, resp, err)
}

func (s *Service) visaKeys(service string) (*jose.JSONWebKeySet, error) {
	iss, err := s.issuers.Lookup(service)
	if err != nil {
		return nil, err
	}
	return iss.Key.JWKS(), nil
}

// GrantVisa issues a ControlledAccessGrants visa for the dataset and adds it
// to the passport. Responds with an empty body.
func (s *Service) GrantVisa(w http.ResponseWriter, r *http.Request) {
	if err := s.grantVisa(r.Context(), pathVar(r, "service"), pathVar(r, "dataset")); err != nil {
		glog.Warningf("visa grant rejected: %v", err)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Service) grantVisa(ctx context.Context, service, dataset string) error {
	iss, err := s.issuers.Lookup(service)
	if err != nil {
		return err
	}

	v, err := ga4gh.BuildVisa(ctx, ga4gh.VisaParams{
		Subject: s.opts.Email,
		Issuer:  iss.URL,
		JKU:     iss.JKU,
		Dataset: dataset,
		Now:     s.now(),
	}, iss.Signer)
	if err != nil {
		return status.Errorf(codes.Internal, "issuing visa failed: %v", err)
	}
	s.passport.Append(v.JWT())
	glog.Infof("granted dataset %q by issuer %q, passport has %d visas", dataset, service, s.passport.Len())
	return nil
}

// Liveness reports the server is serving.
func (s *Service) Liveness(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// pathVar returns the decoded value of a route variable. The router matches
// on the escaped path so that dataset names may contain "/".
func pathVar(r *http.Request, name string) string {
	v := mux.Vars(r)[name]
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}
