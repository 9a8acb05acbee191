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

package types

import "fmt"

// T is the type oid.
type T uint8

const (
	// T_any is an untyped placeholder, never stored in the catalog.
	T_any T = 0

	T_bool T = 10

	T_int8   T = 20
	T_int16  T = 21
	T_int32  T = 22
	T_int64  T = 23
	T_uint8  T = 24
	T_uint16 T = 25
	T_uint32 T = 26
	T_uint64 T = 27

	T_float32 T = 30
	T_float64 T = 31

	T_decimal64  T = 32
	T_decimal128 T = 33

	T_date      T = 40
	T_datetime  T = 41
	T_timestamp T = 42

	T_char    T = 50
	T_varchar T = 51
)

// Type describes a SQL type: the oid plus its physical size and the
// declared width/scale for parameterized types.  Type is a pure value;
// Eq compares every field, not just the oid.
type Type struct {
	Oid   T
	Size  int32
	Width int32
	Scale int32
}

// New constructs a Type with explicit width and scale.
func New(oid T, width, scale int32) Type {
	typ := oid.ToType()
	typ.Width = width
	typ.Scale = scale
	return typ
}

// ToType returns the Type of t with default width and scale.
func (t T) ToType() Type {
	var typ Type
	typ.Oid = t
	switch t {
	case T_bool, T_int8, T_uint8:
		typ.Size = 1
	case T_int16, T_uint16:
		typ.Size = 2
	case T_int32, T_uint32, T_float32, T_date:
		typ.Size = 4
	case T_int64, T_uint64, T_float64, T_decimal64, T_datetime, T_timestamp:
		typ.Size = 8
	case T_decimal128:
		typ.Size = 16
	case T_char, T_varchar:
		typ.Size = 24
	}
	return typ
}

// Eq reports full value equality of two types.
func (t Type) Eq(b Type) bool {
	return t.Oid == b.Oid && t.Size == b.Size && t.Width == b.Width && t.Scale == b.Scale
}

func (t Type) String() string {
	s := t.Oid.String()
	switch t.Oid {
	case T_char, T_varchar:
		if t.Width > 0 {
			return fmt.Sprintf("%s(%d)", s, t.Width)
		}
	case T_decimal64, T_decimal128:
		if t.Width > 0 {
			return fmt.Sprintf("%s(%d,%d)", s, t.Width, t.Scale)
		}
	}
	return s
}

func (t T) String() string {
	switch t {
	case T_any:
		return "ANY"
	case T_bool:
		return "BOOL"
	case T_int8:
		return "TINYINT"
	case T_int16:
		return "SMALLINT"
	case T_int32:
		return "INT"
	case T_int64:
		return "BIGINT"
	case T_uint8:
		return "TINYINT UNSIGNED"
	case T_uint16:
		return "SMALLINT UNSIGNED"
	case T_uint32:
		return "INT UNSIGNED"
	case T_uint64:
		return "BIGINT UNSIGNED"
	case T_float32:
		return "FLOAT"
	case T_float64:
		return "DOUBLE"
	case T_decimal64:
		return "DECIMAL64"
	case T_decimal128:
		return "DECIMAL128"
	case T_date:
		return "DATE"
	case T_datetime:
		return "DATETIME"
	case T_timestamp:
		return "TIMESTAMP"
	case T_char:
		return "CHAR"
	case T_varchar:
		return "VARCHAR"
	}
	return fmt.Sprintf("unexpected type: %d", t)
}

// OidString returns the enum spelling, for internal diagnostics.
func (t T) OidString() string {
	switch t {
	case T_any:
		return "T_any"
	case T_bool:
		return "T_bool"
	case T_int8:
		return "T_int8"
	case T_int16:
		return "T_int16"
	case T_int32:
		return "T_int32"
	case T_int64:
		return "T_int64"
	case T_uint8:
		return "T_uint8"
	case T_uint16:
		return "T_uint16"
	case T_uint32:
		return "T_uint32"
	case T_uint64:
		return "T_uint64"
	case T_float32:
		return "T_float32"
	case T_float64:
		return "T_float64"
	case T_decimal64:
		return "T_decimal64"
	case T_decimal128:
		return "T_decimal128"
	case T_date:
		return "T_date"
	case T_datetime:
		return "T_datetime"
	case T_timestamp:
		return "T_timestamp"
	case T_char:
		return "T_char"
	case T_varchar:
		return "T_varchar"
	}
	return "unknown_type"
}
