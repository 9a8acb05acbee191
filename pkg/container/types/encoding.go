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

import (
	"io"

	"github.com/orcadb/orca/pkg/common/ioutil"
)

// TSize is the encoded size of a Type in the catalog stream.
const TSize int = 13

// WriteType encodes t into the catalog stream: oid as one byte, then
// size, width and scale as fixed-width big-endian int32.  The layout is
// part of the durable catalog format and must not change.
func WriteType(w io.Writer, t Type) error {
	if err := ioutil.WriteUint8(w, uint8(t.Oid)); err != nil {
		return err
	}
	if err := ioutil.WriteInt32(w, t.Size); err != nil {
		return err
	}
	if err := ioutil.WriteInt32(w, t.Width); err != nil {
		return err
	}
	return ioutil.WriteInt32(w, t.Scale)
}

// ReadType is the inverse of WriteType.
func ReadType(r io.Reader) (Type, error) {
	var t Type

	oid, err := ioutil.ReadUint8(r)
	if err != nil {
		return t, err
	}
	t.Oid = T(oid)
	if t.Size, err = ioutil.ReadInt32(r); err != nil {
		return t, err
	}
	if t.Width, err = ioutil.ReadInt32(r); err != nil {
		return t, err
	}
	if t.Scale, err = ioutil.ReadInt32(r); err != nil {
		return t, err
	}
	return t, nil
}
