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

	"google.golang.org/grpc/codes" /* copybara-comment */
	"google.golang.org/grpc/status" /* copybara-comment */
)

// WARNING: do not change the mappings in this file.

// 499 is a non-standard code for "Client Closed Request".
const canceled = 499

var rpc2http = map[codes.Code]int{
	codes.OK:                 http.StatusOK,
	codes.Canceled:           canceled,
	codes.InvalidArgument:    http.StatusBadRequest,
	codes.DeadlineExceeded:   http.StatusGatewayTimeout,
	codes.NotFound:           http.StatusNotFound,
	codes.AlreadyExists:      http.StatusConflict,
	codes.PermissionDenied:   http.StatusForbidden,
	codes.FailedPrecondition: http.StatusBadRequest,
	codes.Unimplemented:      http.StatusNotImplemented,
	codes.Unavailable:        http.StatusServiceUnavailable,
	codes.Unauthenticated:    http.StatusUnauthorized,
	// DataLoss, Internal, and Unknown map to the default
}

// HTTPStatus translates a codes.Code into an HTTP status.
func HTTPStatus(code codes.Code) int {
	if code, ok := rpc2http[code]; ok {
		return code
	}
	return http.StatusInternalServerError
}

// FromError translates a canonical error into an HTTP status.
func FromError(err error) int {
	return HTTPStatus(status.Code(err))
}
