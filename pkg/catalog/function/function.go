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

// Package function holds the catalog's function descriptors: the
// in-memory model of every registered overload, its durable catalog
// record form, and its projection to the wire descriptor consumed by
// execution nodes.
//
// Descriptors are mutated only before they are published into the
// catalog; after publication they are read concurrently without locks,
// so the catalog's single-writer discipline is what keeps them safe.
package function

import (
	"fmt"
	"io"
	"strings"

	"github.com/orcadb/orca/pkg/common/ioutil"
	"github.com/orcadb/orca/pkg/container/types"
	pbfunction "github.com/orcadb/orca/pkg/pb/function"
)

// BinaryType marks where a function's implementation comes from.
type BinaryType uint8

const (
	BinaryBuiltin BinaryType = 0
	BinaryNative  BinaryType = 1
	BinaryIR      BinaryType = 2
)

func (b BinaryType) String() string {
	switch b {
	case BinaryBuiltin:
		return "BUILTIN"
	case BinaryNative:
		return "NATIVE"
	case BinaryIR:
		return "IR"
	}
	return fmt.Sprintf("unexpected binary type: %d", uint8(b))
}

// FunctionName is a database scoped function identifier.
type FunctionName struct {
	Db   string
	Name string
}

func NewFunctionName(name string) FunctionName {
	return FunctionName{Name: name}
}

func (n FunctionName) String() string {
	if n.Db == "" {
		return n.Name
	}
	return n.Db + "." + n.Name
}

// Symbol is an optional opaque identifier naming a native entry point.
// The zero value is "absent"; absence is a real state, not an empty
// string in disguise.
type Symbol struct {
	Valid bool
	Name  string
}

func NewSymbol(name string) Symbol {
	return Symbol{Valid: true, Name: name}
}

// optSymbol treats "" as absent.  It exists for the builtin factories,
// whose tables leave unused entry points empty.
func optSymbol(name string) Symbol {
	if name == "" {
		return Symbol{}
	}
	return NewSymbol(name)
}

// Function carries the identity and signature fields shared by every
// function kind.
type Function struct {
	FnName     FunctionName
	ArgTypes   []types.Type
	HasVarArgs bool
	RetType    types.Type

	BinType BinaryType
	// Location points at the artifact holding the native
	// implementation; empty for pure builtins.
	Location    string
	UserVisible bool
}

func (f *Function) Name() FunctionName     { return f.FnName }
func (f *Function) ReturnType() types.Type { return f.RetType }

func (f *Function) SetLocation(loc string)     { f.Location = loc }
func (f *Function) SetBinaryType(b BinaryType) { f.BinType = b }
func (f *Function) SetUserVisible(v bool)      { f.UserVisible = v }

// Signature identifies an overload: two descriptors with the same
// signature are the same function.
func (f *Function) Signature() string {
	var sb strings.Builder
	sb.WriteString(f.FnName.Name)
	sb.WriteString("(")
	for i, t := range f.ArgTypes {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(t.String())
	}
	if f.HasVarArgs {
		sb.WriteString("...")
	}
	sb.WriteString(")")
	return sb.String()
}

// writeBase writes the shared descriptor fields.  Kind-specific writers
// call it right after the kind tag.
func (f *Function) writeBase(w io.Writer) error {
	if err := ioutil.WriteString(w, f.FnName.Db); err != nil {
		return err
	}
	if err := ioutil.WriteString(w, f.FnName.Name); err != nil {
		return err
	}
	if err := ioutil.WriteUint32(w, uint32(len(f.ArgTypes))); err != nil {
		return err
	}
	for _, t := range f.ArgTypes {
		if err := types.WriteType(w, t); err != nil {
			return err
		}
	}
	if err := ioutil.WriteBool(w, f.HasVarArgs); err != nil {
		return err
	}
	if err := types.WriteType(w, f.RetType); err != nil {
		return err
	}
	if err := ioutil.WriteUint8(w, uint8(f.BinType)); err != nil {
		return err
	}
	if err := ioutil.WriteOptionString(w, f.Location, f.Location != ""); err != nil {
		return err
	}
	return ioutil.WriteBool(w, f.UserVisible)
}

// readBase is the inverse of writeBase.
func (f *Function) readBase(r io.Reader) error {
	var err error
	if f.FnName.Db, err = ioutil.ReadString(r); err != nil {
		return err
	}
	if f.FnName.Name, err = ioutil.ReadString(r); err != nil {
		return err
	}
	n, err := ioutil.ReadUint32(r)
	if err != nil {
		return err
	}
	if n > 0 {
		f.ArgTypes = make([]types.Type, n)
		for i := range f.ArgTypes {
			if f.ArgTypes[i], err = types.ReadType(r); err != nil {
				return err
			}
		}
	}
	if f.HasVarArgs, err = ioutil.ReadBool(r); err != nil {
		return err
	}
	if f.RetType, err = types.ReadType(r); err != nil {
		return err
	}
	bt, err := ioutil.ReadUint8(r)
	if err != nil {
		return err
	}
	f.BinType = BinaryType(bt)
	loc, _, err := ioutil.ReadOptionString(r)
	if err != nil {
		return err
	}
	f.Location = loc
	f.UserVisible, err = ioutil.ReadBool(r)
	return err
}

// toWireBase projects the shared fields.
func (f *Function) toWireBase() *pbfunction.Function {
	fn := &pbfunction.Function{
		Db:         f.FnName.Db,
		Name:       f.FnName.Name,
		HasVarArgs: f.HasVarArgs,
		RetType:    wireType(f.RetType),
		BinaryType: pbfunction.BinaryType(f.BinType),
		Location:   f.Location,
	}
	if len(f.ArgTypes) > 0 {
		fn.ArgTypes = make([]pbfunction.Type, len(f.ArgTypes))
		for i, t := range f.ArgTypes {
			fn.ArgTypes[i] = wireType(t)
		}
	}
	return fn
}

func wireType(t types.Type) pbfunction.Type {
	return pbfunction.Type{
		Oid:   int32(t.Oid),
		Size:  t.Size,
		Width: t.Width,
		Scale: t.Scale,
	}
}
