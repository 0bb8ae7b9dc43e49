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

// Package server provides a http server with request timeout and grateful shutdown.
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	glog "github.com/golang/glog" /* copybara-comment */
)

const shutdownWait = 15 * time.Second

// Server contains a http server.
type Server struct {
	name string
	srv  *http.Server
}

// New returns a server listening on port once served.
func New(name, port string, handler http.Handler) *Server {
	return &Server{
		name: name,
		srv: &http.Server{
			Addr:         ":" + port,
			WriteTimeout: time.Second * 15,
			ReadTimeout:  time.Second * 15,
			IdleTimeout:  time.Second * 60,
			Handler:      handler,
		},
	}
}

// Serve binds the port and serves until ctx is done, then shuts down
// gracefully. Returns the error if the port cannot be bound.
func (s *Server) Serve(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.ServeListener(ctx, lis)
}

// ServeListener is Serve on an already bound listener.
func (s *Server) ServeListener(ctx context.Context, lis net.Listener) error {
	glog.Infof("%s listening on %v", s.name, lis.Addr())

	errc := make(chan error, 1)
	go func() {
		errc <- s.srv.Serve(lis)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownWait)
	defer cancel()
	glog.Infof("%s shutting down", s.name)
	if err := s.srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; err != http.ErrServerClosed {
		return err
	}
	return nil
}
