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

package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lni/goutils/leaktest"
	"github.com/stretchr/testify/require"

	"github.com/orcadb/orca/pkg/catalog"
)

func probe(t *testing.T, s Service) Result {
	req := httptest.NewRequest(http.MethodGet, BootstrapPath, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return result
}

func TestProbeDuringAndAfterBootstrap(t *testing.T) {
	defer leaktest.AfterTest(t)()
	ctx := context.Background()

	c := catalog.New()
	s := NewService(c)

	result := probe(t, s)
	require.Equal(t, "FAILED", result.Status)
	require.Equal(t, "unfinished", result.Msg)

	require.NoError(t, c.Bootstrap(ctx))

	result = probe(t, s)
	require.Equal(t, "OK", result.Status)
	require.Equal(t, "Success", result.Msg)
}

func TestProbeRejectsNonGet(t *testing.T) {
	defer leaktest.AfterTest(t)()
	s := NewService(catalog.New())

	req := httptest.NewRequest(http.MethodPost, BootstrapPath, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServeOverNetwork(t *testing.T) {
	defer leaktest.AfterTest(t)()
	ctx := context.Background()

	c := catalog.New()
	require.NoError(t, c.Bootstrap(ctx))

	s := NewService(c)
	require.NoError(t, s.Start("127.0.0.1:0"))
	defer func() {
		require.NoError(t, s.Close(ctx))
	}()
}
