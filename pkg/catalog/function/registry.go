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

	"github.com/google/btree"

	"github.com/orcadb/orca/pkg/common/oerr"
)

// Registry is the catalog's overload index, ordered by signature so
// introspection lists functions deterministically.  It has no internal
// locking: registration happens under the catalog's exclusive metadata
// lock, lookups happen on published, no-longer-mutated descriptors.
type Registry struct {
	tree *btree.BTree
}

type registryItem struct {
	sig string
	fn  Descriptor
}

func (i *registryItem) Less(than btree.Item) bool {
	return i.sig < than.(*registryItem).sig
}

func NewRegistry() *Registry {
	return &Registry{tree: btree.New(32)}
}

// Register publishes fn.  A descriptor must not be mutated after it was
// registered.
func (r *Registry) Register(ctx context.Context, fn Descriptor) error {
	sig := fn.Signature()
	if r.tree.Has(&registryItem{sig: sig}) {
		return oerr.NewFunctionAlreadyExists(ctx, sig)
	}
	r.tree.ReplaceOrInsert(&registryItem{sig: sig, fn: fn})
	return nil
}

// Drop removes the overload with the given signature.
func (r *Registry) Drop(ctx context.Context, sig string) error {
	if r.tree.Delete(&registryItem{sig: sig}) == nil {
		return oerr.NewDropNonExistsFunction(ctx, sig)
	}
	return nil
}

// Lookup finds the overload with the given signature.
func (r *Registry) Lookup(sig string) (Descriptor, bool) {
	item := r.tree.Get(&registryItem{sig: sig})
	if item == nil {
		return nil, false
	}
	return item.(*registryItem).fn, true
}

// Functions returns every registered overload in signature order.
func (r *Registry) Functions() []Descriptor {
	fns := make([]Descriptor, 0, r.tree.Len())
	r.tree.Ascend(func(item btree.Item) bool {
		fns = append(fns, item.(*registryItem).fn)
		return true
	})
	return fns
}

// VisibleFunctions returns the overloads advertised to clients.
func (r *Registry) VisibleFunctions() []Descriptor {
	fns := make([]Descriptor, 0, r.tree.Len())
	r.tree.Ascend(func(item btree.Item) bool {
		if fn := item.(*registryItem).fn; fn.Base().UserVisible {
			fns = append(fns, fn)
		}
		return true
	})
	return fns
}

func (r *Registry) Len() int {
	return r.tree.Len()
}
