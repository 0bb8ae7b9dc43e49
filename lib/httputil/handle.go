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

// Package httputil writes responses of the mock AAI handlers.
package httputil

import (
	"encoding/json"
	"net/http"

	"google.golang.org/grpc/status" /* copybara-comment */

	glog "github.com/golang/glog" /* copybara-comment */
)

// WriteRPCResp writes reponse and error.
// Errors are written as plain text with the status mapped from their
// codes.Code, responses are written as JSON.
//
//	func (s *Service) Keys(w http.ResponseWriter, r *http.Request) {
//	  resp, err := s.keys(r.Context(), mux.Vars(r)["service"])
//	  httputil.WriteRPCResp(w, resp, err)
//	}
func WriteRPCResp(w http.ResponseWriter, resp interface{}, err error) {
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSONResp(w, resp)
}

// WriteError writes the message of a status error as plain text.
func WriteError(w http.ResponseWriter, err error) {
	code := FromError(err)
	if code >= http.StatusInternalServerError {
		glog.Errorf("request failed: %v", err)
	}
	http.Error(w, status.Convert(err).Message(), code)
}

// WriteJSONResp writes resp as JSON with status 200.
func WriteJSONResp(w http.ResponseWriter, resp interface{}) {
	b, err := json.Marshal(resp)
	if err != nil {
		glog.Errorf("json.Marshal(%T) failed: %v", resp, err)
		http.Error(w, "encoding the response failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(b)
}
