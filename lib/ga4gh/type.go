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

// Type is known GA4GH Assertion types.
// http://bit.ly/ga4gh-passport-v1#type
type Type string

const (
	// ControlledAccessGrants Assertion type.
	// http://bit.ly/ga4gh-passport-v1#controlledaccessgrants
	ControlledAccessGrants Type = "ControlledAccessGrants"
)

// Value is the value of an Assertion.
// For ControlledAccessGrants it names the dataset.
// http://bit.ly/ga4gh-passport-v1#value
type Value string

// Source is the Source of an Assertion.
// http://bit.ly/ga4gh-passport-v1#source
type Source string
