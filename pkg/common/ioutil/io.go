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

// Package ioutil holds the primitives of the catalog record stream.
// Records are length-free: every field is written in a fixed order with
// fixed-width big-endian integers, so a reader must consume exactly what
// the writer produced.  A short read is fatal to the whole record.
package ioutil

import (
	"encoding/binary"
	"io"

	"github.com/orcadb/orca/pkg/common/oerr"
)

func WriteBool(w io.Writer, v bool) error {
	b := []byte{0}
	if v {
		b[0] = 1
	}
	return writeFull(w, b)
}

func ReadBool(r io.Reader) (bool, error) {
	var b [1]byte
	if err := readFull(r, b[:]); err != nil {
		return false, err
	}
	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, oerr.NewInvalidInputNoCtx("bad boolean marker %d in catalog stream", b[0])
}

func WriteUint8(w io.Writer, v uint8) error {
	return writeFull(w, []byte{v})
}

func ReadUint8(r io.Reader) (uint8, error) {
	var b [1]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func WriteInt32(w io.Writer, v int32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	return writeFull(w, b[:])
}

func ReadInt32(r io.Reader) (int32, error) {
	var b [4]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b[:])), nil
}

func WriteUint32(w io.Writer, v uint32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return writeFull(w, b[:])
}

func ReadUint32(r io.Reader) (uint32, error) {
	var b [4]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

func WriteUint64(w io.Writer, v uint64) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return writeFull(w, b[:])
}

func ReadUint64(r io.Reader) (uint64, error) {
	var b [8]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

func WriteString(w io.Writer, s string) error {
	if err := WriteUint32(w, uint32(len(s))); err != nil {
		return err
	}
	return writeFull(w, []byte(s))
}

func ReadString(r io.Reader) (string, error) {
	n, err := ReadUint32(r)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	b := make([]byte, n)
	if err := readFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteOptionString writes the shared optional-string convention: a
// presence boolean, then the string only when present.
func WriteOptionString(w io.Writer, s string, present bool) error {
	if err := WriteBool(w, present); err != nil {
		return err
	}
	if !present {
		return nil
	}
	return WriteString(w, s)
}

// ReadOptionString is the inverse of WriteOptionString.
func ReadOptionString(r io.Reader) (string, bool, error) {
	present, err := ReadBool(r)
	if err != nil {
		return "", false, err
	}
	if !present {
		return "", false, nil
	}
	s, err := ReadString(r)
	return s, true, err
}

func writeFull(w io.Writer, b []byte) error {
	n, err := w.Write(b)
	if err != nil {
		return oerr.ConvertGoError(oerr.Context(), err)
	}
	if n != len(b) {
		return oerr.NewShortWriteNoCtx("catalog stream")
	}
	return nil
}

func readFull(r io.Reader, b []byte) error {
	if _, err := io.ReadFull(r, b); err != nil {
		// any truncation, including EOF in the middle of a field,
		// aborts the record
		return oerr.NewUnexpectedEOFNoCtx("catalog stream")
	}
	return nil
}
