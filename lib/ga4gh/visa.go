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

	"github.com/go-jose/go-jose/v3" /* copybara-comment */
	"github.com/sdtools/mockauth/lib/kms" /* copybara-comment: kms */

	glog "github.com/golang/glog" /* copybara-comment */
)

// Visa represents a GA4GH Passport Visa.
// A Visa is a "Signed Assertion".
type Visa struct {
	// jwt for the visa.
	jwt VisaJWT

	// "jku" visa header (see https://tools.ietf.org/html/rfc7515#section-4.1.2).
	// Relying parties resolve the verification key of the visa through it.
	jku string

	// data is unmarhsalled data contained in visa jwt.
	data *VisaData
}

// VisaJWT is a JWT object containing a GA4GH Visa.
type VisaJWT string

// VisaData is used for creating a new visa.
type VisaData struct {
	// StdClaims is embeded for standard JWT claims.
	StdClaims

	// Assertion contains the Visa Assertion.
	Assertion Assertion `json:"ga4gh_visa_v1,omitempty"`
}

// VisaParams are the inputs of a dataset grant visa.
type VisaParams struct {
	// Subject is the identity holding the grant.
	Subject string
	// Issuer is the URL of the visa issuer, also used as the assertion source.
	Issuer string
	// JKU is the JWKS location of the visa issuer.
	JKU     string
	Dataset string
	Now     time.Time
}

// NewVisaData creates the payload of a ControlledAccessGrants visa issued at p.Now.
func NewVisaData(p VisaParams) *VisaData {
	return &VisaData{
		StdClaims: newStdClaims(p.Subject, p.Issuer, p.Now),
		Assertion: Assertion{
			Type:   ControlledAccessGrants,
			Value:  Value(p.Dataset),
			Source: Source(p.Issuer),
		},
	}
}

// BuildVisa creates a ControlledAccessGrants visa signed by signer.
// signer must belong to the issuer named in p.
func BuildVisa(ctx context.Context, p VisaParams, signer kms.Signer) (*Visa, error) {
	return NewVisaFromData(ctx, NewVisaData(p), p.JKU, signer)
}

// NewVisaFromData creates a new Visa.
//
// The public key of the signer is expected to be published at jku.
// See https://bit.ly/ga4gh-aai-profile#embedded-token-issued-by-embedded-token-issuer
func NewVisaFromData(ctx context.Context, d *VisaData, jku string, signer kms.Signer) (*Visa, error) {
	header := map[string]string{}
	if jku != JWTEmptyJKU {
		header[jwtHeaderJKU] = jku
	}
	signed, err := signer.SignJWT(ctx, d, header)
	if err != nil {
		err = fmt.Errorf("SignJWT() visa failed: %v", err)
		glog.V(1).Info(err)
		return nil, err
	}
	return &Visa{
		jwt:  VisaJWT(signed),
		jku:  jku,
		data: d,
	}, nil
}

// NewVisaFromJWT creates a new Visa from a given JWT.
// Returns error if the JWT is not the JWT of a Visa.
// Does not verify the signature on the JWT.
func NewVisaFromJWT(j VisaJWT) (*Visa, error) {
	d := &VisaData{}
	tok, err := parseUnverified(string(j), d)
	if err != nil {
		return nil, err
	}
	if d.Assertion.Type == "" {
		return nil, fmt.Errorf("jwt has no %q claim", "ga4gh_visa_v1")
	}

	jku := JWTEmptyJKU
	if v, ok := tok.Signatures[0].Header.ExtraHeaders[jwtHeaderJKU]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("casting jku to string failed")
		}
		jku = s
	}
	return &Visa{
		jwt:  j,
		jku:  jku,
		data: d,
	}, nil
}

// Verify verifies the signature of the Visa against the given key set,
// typically the one fetched from JKU().
func (v *Visa) Verify(keys *jose.JSONWebKeySet) error {
	return verify(string(v.jwt), keys)
}

// JKU returns the JKU header of a Visa.
func (v *Visa) JKU() string {
	return v.jku
}

// JWT returns the JWT of a Visa.
func (v *Visa) JWT() VisaJWT {
	return v.jwt
}

// Data returns the data of a Visa.
func (v *Visa) Data() *VisaData {
	return v.data
}
