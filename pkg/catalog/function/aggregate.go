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
	"io"
	"strings"

	"github.com/orcadb/orca/pkg/common/ioutil"
	"github.com/orcadb/orca/pkg/container/types"
	pbfunction "github.com/orcadb/orca/pkg/pb/function"
)

// AggregateFunction describes one aggregate (or analytic) overload.
type AggregateFunction struct {
	Function

	// intermediate is the accumulator type, kept absent when it is
	// identical to the return type.  Absence means "defaults to the
	// return type" everywhere except on the wire, where the type is
	// always spelled out.
	intermediate *types.Type

	// entry points inside the binary at Location.  Any of them may be
	// absent; a missing mandatory one is only discovered when an
	// execution node fails to resolve it.
	updateFnSymbol    Symbol
	initFnSymbol      Symbol
	serializeFnSymbol Symbol
	mergeFnSymbol     Symbol
	getValueFnSymbol  Symbol
	removeFnSymbol    Symbol
	finalizeFnSymbol  Symbol

	// ignoresDistinct is true when AGG(DISTINCT x) == AGG(x),
	// e.g. min and max.
	ignoresDistinct bool

	// isAnalyticFn is true when the function may appear in an
	// OVER(...) context.
	isAnalyticFn bool

	// isAggregateFn is true when the function may be used without a
	// window.
	isAggregateFn bool

	// returnsNonNullOnEmpty is true for functions like count that
	// yield a value on empty input; the scalar subquery rewrite
	// depends on it.
	returnsNonNullOnEmpty bool
}

// NewAggregateFunction builds a descriptor with the full field list.
// The intermediate type is canonicalized: when it equals the return
// type it is stored as absent.
func NewAggregateFunction(fnName FunctionName, argTypes []types.Type, retType, intermediateType types.Type,
	location string, updateFnSymbol, initFnSymbol, serializeFnSymbol, mergeFnSymbol,
	getValueFnSymbol, removeFnSymbol, finalizeFnSymbol Symbol) *AggregateFunction {
	fn := &AggregateFunction{
		Function: Function{
			FnName:      fnName,
			ArgTypes:    argTypes,
			RetType:     retType,
			Location:    location,
			UserVisible: true,
		},
		updateFnSymbol:    updateFnSymbol,
		initFnSymbol:      initFnSymbol,
		serializeFnSymbol: serializeFnSymbol,
		mergeFnSymbol:     mergeFnSymbol,
		getValueFnSymbol:  getValueFnSymbol,
		removeFnSymbol:    removeFnSymbol,
		finalizeFnSymbol:  finalizeFnSymbol,
		isAggregateFn:     true,
	}
	fn.SetIntermediateType(&intermediateType)
	return fn
}

// NewBuiltin is the short builtin factory: most builtin aggregates need
// neither retraction (remove) nor incremental extraction (getValue), so
// those default to absent.
func NewBuiltin(name string, argTypes []types.Type, retType, intermediateType types.Type,
	initFnSymbol, updateFnSymbol, mergeFnSymbol, serializeFnSymbol, finalizeFnSymbol string,
	ignoresDistinct, isAnalyticFn, returnsNonNullOnEmpty bool) *AggregateFunction {
	return NewRetractableBuiltin(name, argTypes, retType, intermediateType,
		initFnSymbol, updateFnSymbol, mergeFnSymbol, serializeFnSymbol, "", "", finalizeFnSymbol,
		ignoresDistinct, isAnalyticFn, returnsNonNullOnEmpty)
}

// NewRetractableBuiltin is the full-arity builtin factory.
func NewRetractableBuiltin(name string, argTypes []types.Type, retType, intermediateType types.Type,
	initFnSymbol, updateFnSymbol, mergeFnSymbol, serializeFnSymbol, getValueFnSymbol,
	removeFnSymbol, finalizeFnSymbol string,
	ignoresDistinct, isAnalyticFn, returnsNonNullOnEmpty bool) *AggregateFunction {
	fn := NewAggregateFunction(NewFunctionName(name), argTypes, retType, intermediateType,
		"", optSymbol(updateFnSymbol), optSymbol(initFnSymbol), optSymbol(serializeFnSymbol),
		optSymbol(mergeFnSymbol), optSymbol(getValueFnSymbol), optSymbol(removeFnSymbol),
		optSymbol(finalizeFnSymbol))
	fn.SetBinaryType(BinaryBuiltin)
	fn.ignoresDistinct = ignoresDistinct
	fn.isAnalyticFn = isAnalyticFn
	fn.isAggregateFn = true
	fn.returnsNonNullOnEmpty = returnsNonNullOnEmpty
	return fn
}

// NewAnalyticBuiltin builds a window-only builtin with no entry points,
// visible to users.
func NewAnalyticBuiltin(name string, argTypes []types.Type, retType, intermediateType types.Type) *AggregateFunction {
	return NewAnalyticBuiltinWithSymbols(name, argTypes, retType, intermediateType,
		"", "", "", "", "", true)
}

// NewAnalyticBuiltinWithSymbols builds a window-only builtin.  Analytic
// functions never merge partial states, so merge and serialize stay
// absent.
func NewAnalyticBuiltinWithSymbols(name string, argTypes []types.Type, retType, intermediateType types.Type,
	initFnSymbol, updateFnSymbol, removeFnSymbol, getValueFnSymbol, finalizeFnSymbol string,
	userVisible bool) *AggregateFunction {
	fn := NewAggregateFunction(NewFunctionName(name), argTypes, retType, intermediateType,
		"", optSymbol(updateFnSymbol), optSymbol(initFnSymbol), Symbol{}, Symbol{},
		optSymbol(getValueFnSymbol), optSymbol(removeFnSymbol), optSymbol(finalizeFnSymbol))
	fn.SetBinaryType(BinaryBuiltin)
	fn.ignoresDistinct = false
	fn.isAnalyticFn = true
	fn.isAggregateFn = false
	fn.returnsNonNullOnEmpty = false
	fn.SetUserVisible(userVisible)
	return fn
}

func (fn *AggregateFunction) Kind() Kind      { return KindAggregate }
func (fn *AggregateFunction) Base() *Function { return &fn.Function }

// IntermediateType returns the accumulator type, or nil when it is
// identical to the return type.
func (fn *AggregateFunction) IntermediateType() *types.Type { return fn.intermediate }

func (fn *AggregateFunction) UpdateFnSymbol() Symbol    { return fn.updateFnSymbol }
func (fn *AggregateFunction) InitFnSymbol() Symbol      { return fn.initFnSymbol }
func (fn *AggregateFunction) SerializeFnSymbol() Symbol { return fn.serializeFnSymbol }
func (fn *AggregateFunction) MergeFnSymbol() Symbol     { return fn.mergeFnSymbol }
func (fn *AggregateFunction) GetValueFnSymbol() Symbol  { return fn.getValueFnSymbol }
func (fn *AggregateFunction) RemoveFnSymbol() Symbol    { return fn.removeFnSymbol }
func (fn *AggregateFunction) FinalizeFnSymbol() Symbol  { return fn.finalizeFnSymbol }

func (fn *AggregateFunction) IgnoresDistinct() bool       { return fn.ignoresDistinct }
func (fn *AggregateFunction) IsAnalyticFn() bool          { return fn.isAnalyticFn }
func (fn *AggregateFunction) IsAggregateFn() bool         { return fn.isAggregateFn }
func (fn *AggregateFunction) ReturnsNonNullOnEmpty() bool { return fn.returnsNonNullOnEmpty }

func (fn *AggregateFunction) SetUpdateFnSymbol(s Symbol)    { fn.updateFnSymbol = s }
func (fn *AggregateFunction) SetInitFnSymbol(s Symbol)      { fn.initFnSymbol = s }
func (fn *AggregateFunction) SetSerializeFnSymbol(s Symbol) { fn.serializeFnSymbol = s }
func (fn *AggregateFunction) SetMergeFnSymbol(s Symbol)     { fn.mergeFnSymbol = s }
func (fn *AggregateFunction) SetGetValueFnSymbol(s Symbol)  { fn.getValueFnSymbol = s }
func (fn *AggregateFunction) SetRemoveFnSymbol(s Symbol)    { fn.removeFnSymbol = s }
func (fn *AggregateFunction) SetFinalizeFnSymbol(s Symbol)  { fn.finalizeFnSymbol = s }

// SetIntermediateType stores t, canonicalizing "equal to the return
// type" to absent.  Passing nil makes it absent directly.
func (fn *AggregateFunction) SetIntermediateType(t *types.Type) {
	if t == nil || t.Eq(fn.RetType) {
		fn.intermediate = nil
		return
	}
	cp := *t
	fn.intermediate = &cp
}

// RenderDeclaration renders the canonical CREATE AGGREGATE FUNCTION
// text of the descriptor.  It never fails.
func (fn *AggregateFunction) RenderDeclaration(ifNotExists bool) string {
	var sb strings.Builder
	sb.WriteString("CREATE AGGREGATE FUNCTION ")
	if ifNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	if fn.FnName.Db != "" {
		sb.WriteString(fn.FnName.Db)
		sb.WriteString(".")
	}
	sb.WriteString(fn.Signature())
	sb.WriteString("\n RETURNS " + fn.RetType.String() + "\n")
	if fn.intermediate != nil {
		sb.WriteString(" INTERMEDIATE " + fn.intermediate.String() + "\n")
	}
	sb.WriteString(" LOCATION '" + fn.Location + "'\n")
	sb.WriteString(" UPDATE_FN='" + fn.updateFnSymbol.Name + "'\n")
	sb.WriteString(" INIT_FN='" + fn.initFnSymbol.Name + "'\n")
	sb.WriteString(" MERGE_FN='" + fn.mergeFnSymbol.Name + "'\n")
	if fn.serializeFnSymbol.Valid {
		sb.WriteString(" SERIALIZE_FN='" + fn.serializeFnSymbol.Name + "'\n")
	}
	if fn.finalizeFnSymbol.Valid {
		sb.WriteString(" FINALIZE_FN='" + fn.finalizeFnSymbol.Name + "'\n")
	}
	return sb.String()
}

// ToWire projects the descriptor for execution nodes.  Update and init
// pass through verbatim even when absent; the intermediate type is
// always explicit because the wire format has no "defaults to return
// type" convention.
func (fn *AggregateFunction) ToWire() *pbfunction.Function {
	wire := fn.toWireBase()
	aggFn := &pbfunction.AggregateFunction{
		IsAnalyticOnlyFn: fn.isAnalyticFn && !fn.isAggregateFn,
		UpdateFnSymbol:   wireSymbol(fn.updateFnSymbol),
		InitFnSymbol:     wireSymbol(fn.initFnSymbol),
		MergeFnSymbol:    wireSymbol(fn.mergeFnSymbol),
	}
	if fn.serializeFnSymbol.Valid {
		aggFn.SerializeFnSymbol = wireSymbol(fn.serializeFnSymbol)
	}
	if fn.getValueFnSymbol.Valid {
		aggFn.GetValueFnSymbol = wireSymbol(fn.getValueFnSymbol)
	}
	if fn.removeFnSymbol.Valid {
		aggFn.RemoveFnSymbol = wireSymbol(fn.removeFnSymbol)
	}
	if fn.finalizeFnSymbol.Valid {
		aggFn.FinalizeFnSymbol = wireSymbol(fn.finalizeFnSymbol)
	}
	if fn.intermediate != nil {
		aggFn.IntermediateType = wireType(*fn.intermediate)
	} else {
		aggFn.IntermediateType = wireType(fn.RetType)
	}
	wire.AggregateFn = aggFn
	return wire
}

func wireSymbol(s Symbol) *string {
	if !s.Valid {
		return nil
	}
	name := s.Name
	return &name
}

// write appends the aggregate record body to the catalog stream.  The
// caller has already written the kind tag.  Field order is part of the
// durable format.
func (fn *AggregateFunction) write(w io.Writer) error {
	if err := fn.writeBase(w); err != nil {
		return err
	}
	hasInterType := fn.intermediate != nil
	if err := ioutil.WriteBool(w, hasInterType); err != nil {
		return err
	}
	if hasInterType {
		if err := types.WriteType(w, *fn.intermediate); err != nil {
			return err
		}
	}
	for _, s := range []Symbol{
		fn.updateFnSymbol, fn.initFnSymbol, fn.serializeFnSymbol, fn.mergeFnSymbol,
		fn.getValueFnSymbol, fn.removeFnSymbol, fn.finalizeFnSymbol,
	} {
		if err := ioutil.WriteOptionString(w, s.Name, s.Valid); err != nil {
			return err
		}
	}
	if err := ioutil.WriteBool(w, fn.ignoresDistinct); err != nil {
		return err
	}
	if err := ioutil.WriteBool(w, fn.isAnalyticFn); err != nil {
		return err
	}
	if err := ioutil.WriteBool(w, fn.isAggregateFn); err != nil {
		return err
	}
	return ioutil.WriteBool(w, fn.returnsNonNullOnEmpty)
}

// readAggregateFunction rebuilds a descriptor from the stream, after
// the caller consumed the kind tag.  Fields are filled directly,
// bypassing the canonicalizing constructors: an image written before
// canonicalization existed replays unchanged.
func readAggregateFunction(r io.Reader) (*AggregateFunction, error) {
	fn := &AggregateFunction{}
	if err := fn.readBase(r); err != nil {
		return nil, err
	}
	hasInterType, err := ioutil.ReadBool(r)
	if err != nil {
		return nil, err
	}
	if hasInterType {
		t, err := types.ReadType(r)
		if err != nil {
			return nil, err
		}
		fn.intermediate = &t
	}
	for _, s := range []*Symbol{
		&fn.updateFnSymbol, &fn.initFnSymbol, &fn.serializeFnSymbol, &fn.mergeFnSymbol,
		&fn.getValueFnSymbol, &fn.removeFnSymbol, &fn.finalizeFnSymbol,
	} {
		name, valid, err := ioutil.ReadOptionString(r)
		if err != nil {
			return nil, err
		}
		s.Name, s.Valid = name, valid
	}
	if fn.ignoresDistinct, err = ioutil.ReadBool(r); err != nil {
		return nil, err
	}
	if fn.isAnalyticFn, err = ioutil.ReadBool(r); err != nil {
		return nil, err
	}
	if fn.isAggregateFn, err = ioutil.ReadBool(r); err != nil {
		return nil, err
	}
	if fn.returnsNonNullOnEmpty, err = ioutil.ReadBool(r); err != nil {
		return nil, err
	}
	return fn, nil
}
