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

package ga4gh

import (
	"context"
	"fmt"
	"time"

	"github.com/pborman/uuid" /* copybara-comment */
	"github.com/sdtools/mockauth/lib/kms" /* copybara-comment: kms */

	glog "github.com/golang/glog" /* copybara-comment */
)

// AccessTokenType is the "typ" header of access tokens.
// See https://tools.ietf.org/html/rfc9068#section-2.1
const AccessTokenType = "at+JWT"

// AccessJWT is a JWT object containing an OAuth2 access token.
type AccessJWT string

// Scope is the AAI Scope claim
// http://bit.ly/ga4gh-aai-profile#ga4gh-jwt-format
type Scope string

// AccessData is the payload of an access token.
type AccessData struct {
	// StdClaims is embeded for standard JWT claims.
	StdClaims

	AuthTime int64  `json:"auth_time,omitempty"`
	ClientID string `json:"client_id,omitempty"`
	Scope    Scope  `json:"scope,omitempty"`
}

// AccessParams are the inputs of an access token.
type AccessParams struct {
	Subject  string
	Issuer   string
	Audience string
	ClientID string
	Scope    string
	Now      time.Time
}

// NewAccessData creates the payload of an access token issued at p.Now.
func NewAccessData(p AccessParams) *AccessData {
	std := newStdClaims(p.Subject, p.Issuer, p.Now)
	std.Audience = NewAudience(p.Audience)
	std.ID = uuid.New()
	return &AccessData{
		StdClaims: std,
		AuthTime:  std.IssuedAt,
		ClientID:  p.ClientID,
		Scope:     Scope(p.Scope),
	}
}

// BuildAccessToken creates and signs an access token.
func BuildAccessToken(ctx context.Context, p AccessParams, signer kms.Signer) (AccessJWT, error) {
	d := NewAccessData(p)
	signed, err := signer.SignJWT(ctx, d, map[string]string{jwtHeaderTyp: AccessTokenType})
	if err != nil {
		err = fmt.Errorf("SignJWT() access token failed: %v", err)
		glog.V(1).Info(err)
		return "", err
	}
	return AccessJWT(signed), nil
}

// AccessDataFromJWT extracts the payload of an access token.
// Does not verify the signature on the JWT.
func AccessDataFromJWT(j AccessJWT) (*AccessData, error) {
	d := &AccessData{}
	if _, err := parseUnverified(string(j), d); err != nil {
		return nil, err
	}
	return d, nil
}
