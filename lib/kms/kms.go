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

// Package kms offers the signing abstraction used for every token the mock AAI issues.
package kms

import (
	"context"

	"github.com/go-jose/go-jose/v3" /* copybara-comment */
)

//go:generate mockgen -destination=mockkms/signer.go -package=mockkms . Signer

// Signer abstracts a signing service for jwt.
type Signer interface {
	PublicKeys() *jose.JSONWebKeySet
	SignJWT(ctx context.Context, claims any, header map[string]string) (string, error)
}
