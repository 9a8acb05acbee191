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

package function

import (
	"context"
	"sort"
	"testing"

	"github.com/orcadb/orca/pkg/common/oerr"
	"github.com/orcadb/orca/pkg/container/types"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()

	fn := newSumBuiltin()
	require.NoError(t, reg.Register(ctx, fn))
	require.Equal(t, 1, reg.Len())

	got, ok := reg.Lookup("sum(INT)")
	require.True(t, ok)
	require.Equal(t, fn, got)

	_, ok = reg.Lookup("sum(BIGINT)")
	require.False(t, ok)

	// same signature is the same overload, regardless of other fields
	dup := newSumBuiltin()
	dup.SetLocation("s3://udf/other.so")
	err := reg.Register(ctx, dup)
	require.Error(t, err)
	require.True(t, oerr.IsErrorCode(err, oerr.ErrFunctionAlreadyExists))
}

func TestRegistryDrop(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()
	require.NoError(t, reg.Register(ctx, newSumBuiltin()))

	require.NoError(t, reg.Drop(ctx, "sum(INT)"))
	require.Equal(t, 0, reg.Len())

	err := reg.Drop(ctx, "sum(INT)")
	require.Error(t, err)
	require.True(t, oerr.IsErrorCode(err, oerr.ErrDropNonExistsFunction))
}

func TestRegistryOrderedListing(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		fn := NewBuiltin(name, []types.Type{types.T_int64.ToType()},
			types.T_int64.ToType(), types.T_int64.ToType(),
			"i", "u", "m", "", "", false, false, false)
		require.NoError(t, reg.Register(ctx, fn))
	}

	sigs := make([]string, 0, reg.Len())
	for _, fn := range reg.Functions() {
		sigs = append(sigs, fn.Signature())
	}
	require.True(t, sort.StringsAreSorted(sigs))
	require.Len(t, sigs, 3)
}

func TestRegisterBuiltins(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()
	require.NoError(t, RegisterBuiltins(ctx, reg))
	require.True(t, reg.Len() > 0)

	fn, ok := reg.Lookup("count(BIGINT)")
	require.True(t, ok)
	agg := fn.(*AggregateFunction)
	require.True(t, agg.IsAggregateFn())
	require.True(t, agg.ReturnsNonNullOnEmpty())

	fn, ok = reg.Lookup("rank()")
	require.True(t, ok)
	agg = fn.(*AggregateFunction)
	require.True(t, agg.IsAnalyticFn())
	require.False(t, agg.IsAggregateFn())

	fn, ok = reg.Lookup("min(DATE)")
	require.True(t, ok)
	require.True(t, fn.(*AggregateFunction).IgnoresDistinct())

	// the rewrite helper is registered but hidden
	fn, ok = reg.Lookup("first_value_rewrite(BIGINT, BIGINT)")
	require.True(t, ok)
	require.False(t, fn.Base().UserVisible)
	for _, vis := range reg.VisibleFunctions() {
		require.True(t, vis.Base().UserVisible)
	}

	// registering builtins twice must collide
	err := RegisterBuiltins(ctx, reg)
	require.Error(t, err)
	require.True(t, oerr.IsErrorCode(err, oerr.ErrFunctionAlreadyExists))
}
