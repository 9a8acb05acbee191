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

package compress

import (
	"github.com/pierrec/lz4"

	"github.com/orcadb/orca/pkg/common/oerr"
)

const (
	None = iota
	Lz4
)

// Compress compresses src into dst with the given algorithm and
// returns the written prefix of dst.
func Compress(src, dst []byte, typ int) ([]byte, error) {
	switch typ {
	case None:
		return append(dst[:0], src...), nil
	case Lz4:
		n, err := lz4.CompressBlock(src, dst, nil)
		if err != nil {
			return nil, oerr.ConvertGoError(oerr.Context(), err)
		}
		return dst[:n], nil
	}
	return nil, oerr.NewNotSupported(oerr.Context(), "compress algorithm %d", typ)
}

// CompressBound returns the size dst must have for Compress of an
// sz-byte input.
func CompressBound(sz, typ int) int {
	if typ == Lz4 {
		return lz4.CompressBlockBound(sz)
	}
	return sz
}

// Decompress decompresses src into dst, which must be exactly as large
// as the original input.
func Decompress(src, dst []byte, typ int) ([]byte, error) {
	switch typ {
	case None:
		return append(dst[:0], src...), nil
	case Lz4:
		n, err := lz4.UncompressBlock(src, dst)
		if err != nil {
			return nil, oerr.ConvertGoError(oerr.Context(), err)
		}
		if n != len(dst) {
			return nil, oerr.NewSizeNotMatch(oerr.Context(), "decompressed block")
		}
		return dst[:n], nil
	}
	return nil, oerr.NewNotSupported(oerr.Context(), "decompress algorithm %d", typ)
}
