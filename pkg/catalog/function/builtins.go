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

	"github.com/orcadb/orca/pkg/container/types"
)

// numericTypes are the argument types the numeric aggregates accept.
var numericTypes = []types.T{
	types.T_int8, types.T_int16, types.T_int32, types.T_int64,
	types.T_uint8, types.T_uint16, types.T_uint32, types.T_uint64,
	types.T_float32, types.T_float64,
}

// orderedTypes additionally cover min/max and the positional analytics.
var orderedTypes = append([]types.T{
	types.T_bool, types.T_date, types.T_datetime, types.T_timestamp,
	types.T_char, types.T_varchar,
}, numericTypes...)

// sumRet maps an argument type to the widened sum/avg accumulator type.
func sumRet(t types.T) types.T {
	switch t {
	case types.T_int8, types.T_int16, types.T_int32, types.T_int64:
		return types.T_int64
	case types.T_uint8, types.T_uint16, types.T_uint32, types.T_uint64:
		return types.T_uint64
	}
	return types.T_float64
}

// hllType is the intermediate accumulator for ndv; the sketch is
// serialized into a fixed-width binary column.
var hllType = types.New(types.T_varchar, 16385, 0)

// RegisterBuiltins loads the static builtin aggregate library into
// reg.  It is called once while the catalog bootstraps, before any
// reader can observe the registry.
func RegisterBuiltins(ctx context.Context, reg *Registry) error {
	var fns []Descriptor

	// count keeps a plain counter regardless of the input type.
	for _, t := range orderedTypes {
		fns = append(fns, NewBuiltin("count",
			[]types.Type{t.ToType()}, types.T_int64.ToType(), types.T_int64.ToType(),
			"count_init", "count_update", "count_merge", "", "",
			false, true, true))
	}

	for _, t := range numericTypes {
		ret := sumRet(t).ToType()
		fns = append(fns, NewBuiltin("sum",
			[]types.Type{t.ToType()}, ret, ret,
			"sum_init", "sum_update", "sum_merge", "", "",
			false, true, false))

		// avg carries count+sum in one accumulator, so it needs its
		// own serialize/finalize pair.
		fns = append(fns, NewBuiltin("avg",
			[]types.Type{t.ToType()}, types.T_float64.ToType(), types.New(types.T_varchar, 16, 0),
			"avg_init", "avg_update", "avg_merge", "avg_serialize", "avg_finalize",
			false, true, false))

		fns = append(fns, NewBuiltin("ndv",
			[]types.Type{t.ToType()}, types.T_int64.ToType(), hllType,
			"hll_init", "hll_update", "hll_merge", "hll_serialize", "hll_finalize",
			true, false, true))
	}

	for _, t := range orderedTypes {
		typ := t.ToType()
		fns = append(fns, NewBuiltin("min",
			[]types.Type{typ}, typ, typ,
			"min_init", "min_update", "min_merge", "", "",
			true, true, false))
		fns = append(fns, NewBuiltin("max",
			[]types.Type{typ}, typ, typ,
			"max_init", "max_update", "max_merge", "", "",
			true, true, false))
	}

	// ranking analytics take no arguments and keep a row counter.
	bigint := types.T_int64.ToType()
	for _, name := range []string{"rank", "dense_rank", "row_number"} {
		fns = append(fns, NewAnalyticBuiltinWithSymbols(name,
			nil, bigint, bigint,
			name+"_init", name+"_update", "", name+"_get_value", "",
			true))
	}

	for _, t := range orderedTypes {
		typ := t.ToType()
		fns = append(fns, NewAnalyticBuiltinWithSymbols("first_value",
			[]types.Type{typ}, typ, typ,
			"first_value_init", "first_value_update", "", "", "",
			true))
		fns = append(fns, NewAnalyticBuiltinWithSymbols("last_value",
			[]types.Type{typ}, typ, typ,
			"last_value_init", "last_value_update", "last_value_remove", "", "",
			true))

		// planner-internal rewrite of first_value over an unbounded
		// preceding window; never advertised to clients
		fns = append(fns, NewAnalyticBuiltinWithSymbols("first_value_rewrite",
			[]types.Type{typ, bigint}, typ, typ,
			"first_value_rewrite_init", "first_value_rewrite_update", "", "", "",
			false))

		// lag/lead(value, offset, default)
		fns = append(fns, NewAnalyticBuiltinWithSymbols("lag",
			[]types.Type{typ, bigint, typ}, typ, typ,
			"offset_fn_init", "offset_fn_update", "", "", "",
			true))
		fns = append(fns, NewAnalyticBuiltinWithSymbols("lead",
			[]types.Type{typ, bigint, typ}, typ, typ,
			"offset_fn_init", "offset_fn_update", "", "", "",
			true))
	}

	for _, fn := range fns {
		if err := reg.Register(ctx, fn); err != nil {
			return err
		}
	}
	return nil
}
