// Copyright 2022 OrcaDB
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

// Package bootstrap exposes the readiness probe deployment tooling uses
// to gate traffic while a node replays its catalog.  "unfinished" is a
// normal answer during startup, not a fault.
package bootstrap

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/orcadb/orca/pkg/catalog"
	"github.com/orcadb/orca/pkg/common/oerr"
	"github.com/orcadb/orca/pkg/logutil"
)

const (
	// BootstrapPath answers GET with the catalog readiness status.
	BootstrapPath = "/api/bootstrap"

	statusOK     = "OK"
	statusFailed = "FAILED"

	msgSuccess    = "Success"
	msgUnfinished = "unfinished"
)

// Result is the probe's JSON response body.
type Result struct {
	Status string `json:"status"`
	Msg    string `json:"msg"`
}

// Service serves the readiness probe for one catalog.
type Service interface {
	// Start begins listening on addr.  It returns once the listener
	// is bound; serving continues in the background.
	Start(addr string) error
	// Close stops the listener and waits for in-flight requests.
	Close(ctx context.Context) error
	// Handler exposes the probe mux, mainly for tests.
	Handler() http.Handler
}

var _ Service = (*service)(nil)

type service struct {
	catalog *catalog.Catalog
	server  *http.Server
}

func NewService(c *catalog.Catalog) Service {
	s := &service{catalog: c}
	mux := http.NewServeMux()
	mux.HandleFunc(BootstrapPath, s.handleBootstrap)
	s.server = &http.Server{
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
	}
	return s
}

func (s *service) Start(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return oerr.ConvertGoError(oerr.Context(), err)
	}
	logutil.Info("bootstrap probe listening", zap.String("addr", addr))
	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logutil.Error("bootstrap probe stopped", zap.Error(err))
		}
	}()
	return nil
}

func (s *service) Close(ctx context.Context) error {
	return oerr.ConvertGoError(ctx, s.server.Shutdown(ctx))
}

func (s *service) Handler() http.Handler {
	return s.server.Handler
}

func (s *service) handleBootstrap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	result := Result{Status: statusOK, Msg: msgSuccess}
	if !s.catalog.CanRead() {
		result = Result{Status: statusFailed, Msg: msgUnfinished}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logutil.Error("write bootstrap result", zap.Error(err))
	}
}
