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

package httputil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/grpc/codes" /* copybara-comment */
	"google.golang.org/grpc/status" /* copybara-comment */
)

func TestWriteRPCResp(t *testing.T) {
	w := httptest.NewRecorder()
	WriteRPCResp(w, map[string]string{"a": "b"}, nil)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if got, want := w.Body.String(), `{"a":"b"}`; got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
}

func TestWriteRPCResp_Error(t *testing.T) {
	w := httptest.NewRecorder()
	WriteRPCResp(w, nil, status.Error(codes.InvalidArgument, "invalid token"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain", ct)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "invalid token" {
		t.Errorf("body = %q, want %q", got, "invalid token")
	}
}

func TestWriteJSONResp_EncodeFailure(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSONResp(w, make(chan int))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}
