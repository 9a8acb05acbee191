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

	"github.com/orcadb/orca/pkg/common/ioutil"
	"github.com/orcadb/orca/pkg/common/oerr"
	pbfunction "github.com/orcadb/orca/pkg/pb/function"
)

// Kind discriminates the function kinds interleaved in one catalog
// stream.  The tag is written before any base field so a reader can
// dispatch before touching the record body.
type Kind uint8

const (
	KindScalar    Kind = 1
	KindAggregate Kind = 2
)

// Descriptor is one function overload as the catalog sees it.
type Descriptor interface {
	Kind() Kind
	Base() *Function
	Signature() string

	// RenderDeclaration renders the declarative CREATE text of the
	// descriptor for introspection.
	RenderDeclaration(ifNotExists bool) string

	// ToWire projects the descriptor into the form shipped to
	// execution nodes.
	ToWire() *pbfunction.Function

	write(w io.Writer) error
}

var (
	_ Descriptor = (*ScalarFunction)(nil)
	_ Descriptor = (*AggregateFunction)(nil)
)

// WriteFunction appends one descriptor to the catalog stream: the kind
// tag, then the record body.
func WriteFunction(w io.Writer, fn Descriptor) error {
	if err := ioutil.WriteUint8(w, uint8(fn.Kind())); err != nil {
		return err
	}
	return fn.write(w)
}

// ReadFunction reads the kind tag and dispatches to the matching
// reader.  An unknown tag fails the read; the stream position is then
// unusable and replay must abort.
func ReadFunction(r io.Reader) (Descriptor, error) {
	tag, err := ioutil.ReadUint8(r)
	if err != nil {
		return nil, err
	}
	switch Kind(tag) {
	case KindScalar:
		return readScalarFunction(r)
	case KindAggregate:
		return readAggregateFunction(r)
	}
	return nil, oerr.NewInvalidInputNoCtx("unknown function kind tag %d in catalog stream", tag)
}
