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

// Package function holds the wire descriptors shipped to execution
// nodes.  The messages are hand-maintained: field numbers are frozen and
// must never be reused.  Optional fields are pointers; unlike the
// durable catalog record, IntermediateType is always populated here
// because execution nodes have no "defaults to return type" convention.
package function

import (
	"github.com/gogo/protobuf/proto"
)

type BinaryType int32

const (
	BinaryType_BUILTIN BinaryType = 0
	BinaryType_NATIVE  BinaryType = 1
	BinaryType_IR      BinaryType = 2
)

var BinaryType_name = map[int32]string{
	0: "BUILTIN",
	1: "NATIVE",
	2: "IR",
}

func (x BinaryType) String() string {
	return proto.EnumName(BinaryType_name, int32(x))
}

// Type is the wire projection of a SQL type.
type Type struct {
	Oid   int32 `protobuf:"varint,1,opt,name=oid,proto3" json:"oid,omitempty"`
	Size  int32 `protobuf:"varint,2,opt,name=size,proto3" json:"size,omitempty"`
	Width int32 `protobuf:"varint,3,opt,name=width,proto3" json:"width,omitempty"`
	Scale int32 `protobuf:"varint,4,opt,name=scale,proto3" json:"scale,omitempty"`
}

func (m *Type) Reset()         { *m = Type{} }
func (m *Type) String() string { return proto.CompactTextString(m) }
func (*Type) ProtoMessage()    {}

// Function is the wire descriptor of one function overload.
type Function struct {
	Db         string     `protobuf:"bytes,1,opt,name=db,proto3" json:"db,omitempty"`
	Name       string     `protobuf:"bytes,2,opt,name=name,proto3" json:"name,omitempty"`
	ArgTypes   []Type     `protobuf:"bytes,3,rep,name=arg_types,json=argTypes,proto3" json:"arg_types"`
	HasVarArgs bool       `protobuf:"varint,4,opt,name=has_var_args,json=hasVarArgs,proto3" json:"has_var_args,omitempty"`
	RetType    Type       `protobuf:"bytes,5,opt,name=ret_type,json=retType,proto3" json:"ret_type"`
	BinaryType BinaryType `protobuf:"varint,6,opt,name=binary_type,json=binaryType,proto3,enum=function.BinaryType" json:"binary_type,omitempty"`
	Location   string     `protobuf:"bytes,7,opt,name=location,proto3" json:"location,omitempty"`

	// exactly one of the kind-specific payloads is set
	AggregateFn *AggregateFunction `protobuf:"bytes,8,opt,name=aggregate_fn,json=aggregateFn,proto3" json:"aggregate_fn,omitempty"`
	ScalarFn    *ScalarFunction    `protobuf:"bytes,9,opt,name=scalar_fn,json=scalarFn,proto3" json:"scalar_fn,omitempty"`
}

func (m *Function) Reset()         { *m = Function{} }
func (m *Function) String() string { return proto.CompactTextString(m) }
func (*Function) ProtoMessage()    {}

func (m *Function) GetAggregateFn() *AggregateFunction {
	if m != nil {
		return m.AggregateFn
	}
	return nil
}

func (m *Function) GetScalarFn() *ScalarFunction {
	if m != nil {
		return m.ScalarFn
	}
	return nil
}

// ScalarFunction carries what an execution node needs to invoke a
// scalar implementation.
type ScalarFunction struct {
	SymbolName      *string `protobuf:"bytes,1,opt,name=symbol_name,json=symbolName,proto3" json:"symbol_name,omitempty"`
	PrepareFnSymbol *string `protobuf:"bytes,2,opt,name=prepare_fn_symbol,json=prepareFnSymbol,proto3" json:"prepare_fn_symbol,omitempty"`
	CloseFnSymbol   *string `protobuf:"bytes,3,opt,name=close_fn_symbol,json=closeFnSymbol,proto3" json:"close_fn_symbol,omitempty"`
}

func (m *ScalarFunction) Reset()         { *m = ScalarFunction{} }
func (m *ScalarFunction) String() string { return proto.CompactTextString(m) }
func (*ScalarFunction) ProtoMessage()    {}

func (m *ScalarFunction) GetSymbolName() string {
	if m != nil && m.SymbolName != nil {
		return *m.SymbolName
	}
	return ""
}

func (m *ScalarFunction) GetPrepareFnSymbol() string {
	if m != nil && m.PrepareFnSymbol != nil {
		return *m.PrepareFnSymbol
	}
	return ""
}

func (m *ScalarFunction) GetCloseFnSymbol() string {
	if m != nil && m.CloseFnSymbol != nil {
		return *m.CloseFnSymbol
	}
	return ""
}

// AggregateFunction carries what an execution node needs to locate and
// drive the native aggregate implementation.
type AggregateFunction struct {
	IsAnalyticOnlyFn  bool    `protobuf:"varint,1,opt,name=is_analytic_only_fn,json=isAnalyticOnlyFn,proto3" json:"is_analytic_only_fn,omitempty"`
	UpdateFnSymbol    *string `protobuf:"bytes,2,opt,name=update_fn_symbol,json=updateFnSymbol,proto3" json:"update_fn_symbol,omitempty"`
	InitFnSymbol      *string `protobuf:"bytes,3,opt,name=init_fn_symbol,json=initFnSymbol,proto3" json:"init_fn_symbol,omitempty"`
	SerializeFnSymbol *string `protobuf:"bytes,4,opt,name=serialize_fn_symbol,json=serializeFnSymbol,proto3" json:"serialize_fn_symbol,omitempty"`
	MergeFnSymbol     *string `protobuf:"bytes,5,opt,name=merge_fn_symbol,json=mergeFnSymbol,proto3" json:"merge_fn_symbol,omitempty"`
	GetValueFnSymbol  *string `protobuf:"bytes,6,opt,name=get_value_fn_symbol,json=getValueFnSymbol,proto3" json:"get_value_fn_symbol,omitempty"`
	RemoveFnSymbol    *string `protobuf:"bytes,7,opt,name=remove_fn_symbol,json=removeFnSymbol,proto3" json:"remove_fn_symbol,omitempty"`
	FinalizeFnSymbol  *string `protobuf:"bytes,8,opt,name=finalize_fn_symbol,json=finalizeFnSymbol,proto3" json:"finalize_fn_symbol,omitempty"`

	// IntermediateType is never nil-equivalent on the wire; the
	// projector fills it from the return type when the descriptor
	// leaves it absent.
	IntermediateType Type `protobuf:"bytes,9,opt,name=intermediate_type,json=intermediateType,proto3" json:"intermediate_type"`
}

func (m *AggregateFunction) Reset()         { *m = AggregateFunction{} }
func (m *AggregateFunction) String() string { return proto.CompactTextString(m) }
func (*AggregateFunction) ProtoMessage()    {}

func (m *AggregateFunction) GetIsAnalyticOnlyFn() bool {
	if m != nil {
		return m.IsAnalyticOnlyFn
	}
	return false
}

func (m *AggregateFunction) GetUpdateFnSymbol() string {
	if m != nil && m.UpdateFnSymbol != nil {
		return *m.UpdateFnSymbol
	}
	return ""
}

func (m *AggregateFunction) GetInitFnSymbol() string {
	if m != nil && m.InitFnSymbol != nil {
		return *m.InitFnSymbol
	}
	return ""
}

func (m *AggregateFunction) GetSerializeFnSymbol() string {
	if m != nil && m.SerializeFnSymbol != nil {
		return *m.SerializeFnSymbol
	}
	return ""
}

func (m *AggregateFunction) GetMergeFnSymbol() string {
	if m != nil && m.MergeFnSymbol != nil {
		return *m.MergeFnSymbol
	}
	return ""
}

func (m *AggregateFunction) GetGetValueFnSymbol() string {
	if m != nil && m.GetValueFnSymbol != nil {
		return *m.GetValueFnSymbol
	}
	return ""
}

func (m *AggregateFunction) GetRemoveFnSymbol() string {
	if m != nil && m.RemoveFnSymbol != nil {
		return *m.RemoveFnSymbol
	}
	return ""
}

func (m *AggregateFunction) GetFinalizeFnSymbol() string {
	if m != nil && m.FinalizeFnSymbol != nil {
		return *m.FinalizeFnSymbol
	}
	return ""
}

func (m *AggregateFunction) GetIntermediateType() Type {
	if m != nil {
		return m.IntermediateType
	}
	return Type{}
}

func init() {
	proto.RegisterEnum("function.BinaryType", BinaryType_name, map[string]int32{
		"BUILTIN": 0,
		"NATIVE":  1,
		"IR":      2,
	})
}
