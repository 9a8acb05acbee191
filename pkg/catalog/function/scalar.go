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

// ScalarFunction describes one scalar overload: a single evaluation
// entry point plus optional per-query prepare/close hooks.
type ScalarFunction struct {
	Function

	symbolName      Symbol
	prepareFnSymbol Symbol
	closeFnSymbol   Symbol
}

// NewScalarFunction builds a descriptor for a user supplied scalar
// function.
func NewScalarFunction(fnName FunctionName, argTypes []types.Type, retType types.Type,
	hasVarArgs bool, location string, symbolName, prepareFnSymbol, closeFnSymbol Symbol) *ScalarFunction {
	return &ScalarFunction{
		Function: Function{
			FnName:      fnName,
			ArgTypes:    argTypes,
			HasVarArgs:  hasVarArgs,
			RetType:     retType,
			Location:    location,
			UserVisible: true,
		},
		symbolName:      symbolName,
		prepareFnSymbol: prepareFnSymbol,
		closeFnSymbol:   closeFnSymbol,
	}
}

func (fn *ScalarFunction) Kind() Kind      { return KindScalar }
func (fn *ScalarFunction) Base() *Function { return &fn.Function }

func (fn *ScalarFunction) SymbolName() Symbol      { return fn.symbolName }
func (fn *ScalarFunction) PrepareFnSymbol() Symbol { return fn.prepareFnSymbol }
func (fn *ScalarFunction) CloseFnSymbol() Symbol   { return fn.closeFnSymbol }

func (fn *ScalarFunction) SetSymbolName(s Symbol)      { fn.symbolName = s }
func (fn *ScalarFunction) SetPrepareFnSymbol(s Symbol) { fn.prepareFnSymbol = s }
func (fn *ScalarFunction) SetCloseFnSymbol(s Symbol)   { fn.closeFnSymbol = s }

// RenderDeclaration renders the canonical CREATE FUNCTION text.
func (fn *ScalarFunction) RenderDeclaration(ifNotExists bool) string {
	var sb strings.Builder
	sb.WriteString("CREATE FUNCTION ")
	if ifNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	if fn.FnName.Db != "" {
		sb.WriteString(fn.FnName.Db)
		sb.WriteString(".")
	}
	sb.WriteString(fn.Signature())
	sb.WriteString("\n RETURNS " + fn.RetType.String() + "\n")
	sb.WriteString(" LOCATION '" + fn.Location + "'\n")
	sb.WriteString(" SYMBOL='" + fn.symbolName.Name + "'\n")
	if fn.prepareFnSymbol.Valid {
		sb.WriteString(" PREPARE_FN='" + fn.prepareFnSymbol.Name + "'\n")
	}
	if fn.closeFnSymbol.Valid {
		sb.WriteString(" CLOSE_FN='" + fn.closeFnSymbol.Name + "'\n")
	}
	return sb.String()
}

// ToWire projects the descriptor for execution nodes.
func (fn *ScalarFunction) ToWire() *pbfunction.Function {
	wire := fn.toWireBase()
	scalarFn := &pbfunction.ScalarFunction{
		SymbolName: wireSymbol(fn.symbolName),
	}
	if fn.prepareFnSymbol.Valid {
		scalarFn.PrepareFnSymbol = wireSymbol(fn.prepareFnSymbol)
	}
	if fn.closeFnSymbol.Valid {
		scalarFn.CloseFnSymbol = wireSymbol(fn.closeFnSymbol)
	}
	wire.ScalarFn = scalarFn
	return wire
}

func (fn *ScalarFunction) write(w io.Writer) error {
	if err := fn.writeBase(w); err != nil {
		return err
	}
	for _, s := range []Symbol{fn.symbolName, fn.prepareFnSymbol, fn.closeFnSymbol} {
		if err := ioutil.WriteOptionString(w, s.Name, s.Valid); err != nil {
			return err
		}
	}
	return nil
}

func readScalarFunction(r io.Reader) (*ScalarFunction, error) {
	fn := &ScalarFunction{}
	if err := fn.readBase(r); err != nil {
		return nil, err
	}
	for _, s := range []*Symbol{&fn.symbolName, &fn.prepareFnSymbol, &fn.closeFnSymbol} {
		name, valid, err := ioutil.ReadOptionString(r)
		if err != nil {
			return nil, err
		}
		s.Name, s.Valid = name, valid
	}
	return fn, nil
}
