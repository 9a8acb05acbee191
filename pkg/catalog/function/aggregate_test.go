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
	"bytes"
	"strings"
	"testing"

	"github.com/orcadb/orca/pkg/common/oerr"
	"github.com/orcadb/orca/pkg/container/types"
	"github.com/stretchr/testify/require"
)

func newSumBuiltin() *AggregateFunction {
	return NewBuiltin("sum",
		[]types.Type{types.T_int32.ToType()}, types.T_int64.ToType(), types.T_int64.ToType(),
		"init", "update", "merge", "", "",
		false, false, false)
}

func TestBuiltinFactoryDefaults(t *testing.T) {
	fn := newSumBuiltin()

	require.True(t, fn.IsAggregateFn())
	require.False(t, fn.IsAnalyticFn())
	require.Equal(t, BinaryBuiltin, fn.BinType)
	require.True(t, fn.UserVisible)

	// intermediate equals the return type, so it is stored absent
	require.Nil(t, fn.IntermediateType())

	require.True(t, fn.InitFnSymbol().Valid)
	require.Equal(t, "update", fn.UpdateFnSymbol().Name)
	require.False(t, fn.SerializeFnSymbol().Valid)
	require.False(t, fn.GetValueFnSymbol().Valid)
	require.False(t, fn.RemoveFnSymbol().Valid)
	require.False(t, fn.FinalizeFnSymbol().Valid)
}

func TestAnalyticFactoryDefaults(t *testing.T) {
	fn := NewAnalyticBuiltin("rank", nil, types.T_int64.ToType(), types.T_int64.ToType())

	require.True(t, fn.IsAnalyticFn())
	require.False(t, fn.IsAggregateFn())
	require.False(t, fn.IgnoresDistinct())
	require.False(t, fn.ReturnsNonNullOnEmpty())
	require.True(t, fn.UserVisible)
	require.False(t, fn.MergeFnSymbol().Valid)
	require.False(t, fn.SerializeFnSymbol().Valid)

	hidden := NewAnalyticBuiltinWithSymbols("lag_helper",
		[]types.Type{types.T_int64.ToType()}, types.T_int64.ToType(), types.T_int64.ToType(),
		"i", "u", "r", "g", "f", false)
	require.False(t, hidden.UserVisible)
	require.True(t, hidden.RemoveFnSymbol().Valid)
	require.True(t, hidden.GetValueFnSymbol().Valid)
}

func TestIntermediateCanonicalization(t *testing.T) {
	double := types.T_float64.ToType()
	bigint := types.T_int64.ToType()

	fn := NewBuiltin("f", []types.Type{bigint}, bigint, double,
		"i", "u", "m", "", "", false, false, false)
	require.NotNil(t, fn.IntermediateType())
	require.True(t, fn.IntermediateType().Eq(double))

	// setter canonicalizes too
	fn.SetIntermediateType(&bigint)
	require.Nil(t, fn.IntermediateType())

	// width takes part in the equality check
	wide := types.New(types.T_varchar, 20, 0)
	narrow := types.New(types.T_varchar, 10, 0)
	fn2 := NewBuiltin("g", []types.Type{narrow}, narrow, wide,
		"i", "u", "m", "", "", false, false, false)
	require.NotNil(t, fn2.IntermediateType())
}

func roundTrip(t *testing.T, fn Descriptor) Descriptor {
	var buf bytes.Buffer
	require.NoError(t, WriteFunction(&buf, fn))
	got, err := ReadFunction(&buf)
	require.NoError(t, err)
	require.Equal(t, 0, buf.Len())
	return got
}

func TestAggregateRoundTrip(t *testing.T) {
	fn := newSumBuiltin()
	got := roundTrip(t, fn).(*AggregateFunction)
	require.Equal(t, fn, got)

	// canonicalization is idempotent: a second trip is a no-op
	require.Equal(t, got, roundTrip(t, got).(*AggregateFunction))
}

func TestAggregateRoundTripDistinctIntermediate(t *testing.T) {
	fn := NewBuiltin("var_pop",
		[]types.Type{types.T_float64.ToType()}, types.T_int64.ToType(), types.T_float64.ToType(),
		"i", "u", "m", "s", "f", true, true, true)
	fn.FnName.Db = "db1"
	fn.SetLocation("s3://udf/libvar.so")
	fn.SetBinaryType(BinaryNative)

	got := roundTrip(t, fn).(*AggregateFunction)
	require.Equal(t, fn, got)
	require.NotNil(t, got.IntermediateType())
	require.True(t, got.IntermediateType().Eq(types.T_float64.ToType()))
}

func TestOptionalSymbolFidelity(t *testing.T) {
	fn := NewAggregateFunction(NewFunctionName("f"),
		[]types.Type{types.T_int64.ToType()}, types.T_int64.ToType(), types.T_int64.ToType(),
		"", Symbol{}, Symbol{}, Symbol{}, Symbol{}, Symbol{}, Symbol{}, Symbol{})

	setters := []func(*AggregateFunction, Symbol){
		(*AggregateFunction).SetUpdateFnSymbol,
		(*AggregateFunction).SetInitFnSymbol,
		(*AggregateFunction).SetSerializeFnSymbol,
		(*AggregateFunction).SetMergeFnSymbol,
		(*AggregateFunction).SetGetValueFnSymbol,
		(*AggregateFunction).SetRemoveFnSymbol,
		(*AggregateFunction).SetFinalizeFnSymbol,
	}
	getters := []func(*AggregateFunction) Symbol{
		(*AggregateFunction).UpdateFnSymbol,
		(*AggregateFunction).InitFnSymbol,
		(*AggregateFunction).SerializeFnSymbol,
		(*AggregateFunction).MergeFnSymbol,
		(*AggregateFunction).GetValueFnSymbol,
		(*AggregateFunction).RemoveFnSymbol,
		(*AggregateFunction).FinalizeFnSymbol,
	}

	// all absent
	got := roundTrip(t, fn).(*AggregateFunction)
	for _, get := range getters {
		require.False(t, get(got).Valid)
	}

	// one present at a time, the rest stay absent
	for i, set := range setters {
		fn2 := *fn
		set(&fn2, NewSymbol("_ZN4orca9Aggregate6updateEv"))
		got := roundTrip(t, &fn2).(*AggregateFunction)
		for j, get := range getters {
			if i == j {
				require.True(t, get(got).Valid)
				require.Equal(t, "_ZN4orca9Aggregate6updateEv", get(got).Name)
			} else {
				require.False(t, get(got).Valid, "field %d leaked into %d", i, j)
			}
		}
	}
}

func TestReadTruncatedRecord(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFunction(&buf, newSumBuiltin()))
	data := buf.Bytes()

	for _, cut := range []int{1, 5, len(data) / 2, len(data) - 1} {
		_, err := ReadFunction(bytes.NewReader(data[:cut]))
		require.Error(t, err, "cut at %d", cut)
	}
}

func TestReadUnknownKindTag(t *testing.T) {
	_, err := ReadFunction(bytes.NewReader([]byte{99}))
	require.Error(t, err)
	require.True(t, oerr.IsErrorCode(err, oerr.ErrInvalidInput))
}

func TestScalarRoundTrip(t *testing.T) {
	fn := NewScalarFunction(FunctionName{Db: "db1", Name: "my_upper"},
		[]types.Type{types.New(types.T_varchar, 255, 0)}, types.New(types.T_varchar, 255, 0),
		false, "s3://udf/libstr.so", NewSymbol("my_upper_eval"), NewSymbol("my_upper_prepare"), Symbol{})
	fn.SetBinaryType(BinaryNative)

	got := roundTrip(t, fn).(*ScalarFunction)
	require.Equal(t, fn, got)
}

func TestMixedStreamDispatch(t *testing.T) {
	agg := newSumBuiltin()
	scalar := NewScalarFunction(NewFunctionName("f"),
		nil, types.T_int64.ToType(), false, "", NewSymbol("f_eval"), Symbol{}, Symbol{})

	var buf bytes.Buffer
	require.NoError(t, WriteFunction(&buf, agg))
	require.NoError(t, WriteFunction(&buf, scalar))
	require.NoError(t, WriteFunction(&buf, agg))

	d1, err := ReadFunction(&buf)
	require.NoError(t, err)
	require.Equal(t, KindAggregate, d1.Kind())
	d2, err := ReadFunction(&buf)
	require.NoError(t, err)
	require.Equal(t, KindScalar, d2.Kind())
	d3, err := ReadFunction(&buf)
	require.NoError(t, err)
	require.Equal(t, agg, d3)
}

func TestToWire(t *testing.T) {
	fn := newSumBuiltin()
	wire := fn.ToWire()

	require.Equal(t, "sum", wire.Name)
	require.Len(t, wire.ArgTypes, 1)
	aggFn := wire.GetAggregateFn()
	require.NotNil(t, aggFn)

	// absent in memory, but always explicit on the wire
	require.Nil(t, fn.IntermediateType())
	require.Equal(t, int32(types.T_int64), aggFn.IntermediateType.Oid)
	require.Equal(t, int32(8), aggFn.IntermediateType.Size)

	require.Equal(t, "update", aggFn.GetUpdateFnSymbol())
	require.Equal(t, "init", aggFn.GetInitFnSymbol())
	require.Equal(t, "merge", aggFn.GetMergeFnSymbol())
	require.Nil(t, aggFn.SerializeFnSymbol)
	require.Nil(t, aggFn.GetValueFnSymbol)
	require.Nil(t, aggFn.RemoveFnSymbol)
	require.Nil(t, aggFn.FinalizeFnSymbol)
	require.False(t, aggFn.IsAnalyticOnlyFn)
}

func TestToWireAnalyticOnly(t *testing.T) {
	fn := NewAnalyticBuiltin("rank", nil, types.T_int64.ToType(), types.T_int64.ToType())
	aggFn := fn.ToWire().GetAggregateFn()
	require.True(t, aggFn.IsAnalyticOnlyFn)

	// update/init pass through verbatim even when absent
	require.Nil(t, aggFn.UpdateFnSymbol)
	require.Nil(t, aggFn.InitFnSymbol)
	require.Equal(t, int32(types.T_int64), aggFn.IntermediateType.Oid)
}

func TestToWireExplicitIntermediate(t *testing.T) {
	fn := NewBuiltin("avg",
		[]types.Type{types.T_int64.ToType()}, types.T_float64.ToType(), types.New(types.T_varchar, 16, 0),
		"i", "u", "m", "s", "f", false, true, false)
	aggFn := fn.ToWire().GetAggregateFn()
	require.Equal(t, int32(types.T_varchar), aggFn.IntermediateType.Oid)
	require.Equal(t, int32(16), aggFn.IntermediateType.Width)
	require.Equal(t, "s", aggFn.GetSerializeFnSymbol())
	require.Equal(t, "f", aggFn.GetFinalizeFnSymbol())
}

func TestRenderDeclaration(t *testing.T) {
	fn := NewBuiltin("avg",
		[]types.Type{types.T_int64.ToType()}, types.T_float64.ToType(), types.New(types.T_varchar, 16, 0),
		"avg_init", "avg_update", "avg_merge", "avg_serialize", "avg_finalize",
		false, true, false)
	fn.FnName.Db = "db1"
	fn.SetLocation("s3://udf/libavg.so")

	sql := fn.RenderDeclaration(true)
	require.True(t, strings.HasPrefix(sql, "CREATE AGGREGATE FUNCTION IF NOT EXISTS db1.avg(BIGINT)"))
	require.Contains(t, sql, " RETURNS DOUBLE\n")
	require.Contains(t, sql, " INTERMEDIATE VARCHAR(16)\n")
	require.Contains(t, sql, " UPDATE_FN='avg_update'\n")
	require.Contains(t, sql, " SERIALIZE_FN='avg_serialize'\n")
	require.Contains(t, sql, " FINALIZE_FN='avg_finalize'\n")
}

func TestRenderDeclarationOmitsAbsentClauses(t *testing.T) {
	fn := newSumBuiltin()
	sql := fn.RenderDeclaration(false)
	require.True(t, strings.HasPrefix(sql, "CREATE AGGREGATE FUNCTION sum(INT)"))
	require.NotContains(t, sql, "IF NOT EXISTS")
	require.NotContains(t, sql, "INTERMEDIATE")
	require.NotContains(t, sql, "SERIALIZE_FN")
	require.NotContains(t, sql, "FINALIZE_FN")
	require.Contains(t, sql, " MERGE_FN='merge'\n")
}

func TestSignature(t *testing.T) {
	fn := newSumBuiltin()
	require.Equal(t, "sum(INT)", fn.Signature())

	varargs := &Function{
		FnName:   NewFunctionName("concat_ws"),
		ArgTypes: []types.Type{types.New(types.T_varchar, 0, 0)},
		RetType:  types.New(types.T_varchar, 0, 0),
	}
	varargs.HasVarArgs = true
	require.Equal(t, "concat_ws(VARCHAR...)", varargs.Signature())
}
