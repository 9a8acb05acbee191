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

package catalog

import (
	"bytes"
	"context"
	"hash/crc32"
	"os"

	"go.uber.org/zap"

	"github.com/orcadb/orca/pkg/catalog/function"
	"github.com/orcadb/orca/pkg/common/ioutil"
	"github.com/orcadb/orca/pkg/common/oerr"
	"github.com/orcadb/orca/pkg/compress"
	"github.com/orcadb/orca/pkg/logutil"
)

// image layout:
//
//	[magic u32][version u32][algo u8][raw-size u64][checksum u32]
//	[payload-size u64][payload]
//
// payload (after decompression): [record count u64][records...], each
// record in the length-free catalog stream format.
const imageMagic uint32 = 0x4F524341 // "ORCA"

// SaveImage writes a point-in-time image of the catalog to path.  The
// write goes through a temporary file and rename so a crashed save
// never leaves a half image behind.
func (c *Catalog) SaveImage(ctx context.Context, path string) error {
	var payload bytes.Buffer
	fns := c.reg.Functions()
	if err := ioutil.WriteUint64(&payload, uint64(len(fns))); err != nil {
		return err
	}
	for _, fn := range fns {
		if err := function.WriteFunction(&payload, fn); err != nil {
			return err
		}
	}

	raw := payload.Bytes()
	algo := compress.Lz4
	compressed, err := compress.Compress(raw, make([]byte, compress.CompressBound(len(raw), algo)), algo)
	if err != nil {
		return err
	}
	if len(compressed) == 0 {
		// incompressible payload, store it raw
		algo = compress.None
		compressed = raw
	}

	var out bytes.Buffer
	if err := ioutil.WriteUint32(&out, imageMagic); err != nil {
		return err
	}
	if err := ioutil.WriteUint32(&out, CatalogVersion_Curr); err != nil {
		return err
	}
	if err := ioutil.WriteUint8(&out, uint8(algo)); err != nil {
		return err
	}
	if err := ioutil.WriteUint64(&out, uint64(len(raw))); err != nil {
		return err
	}
	if err := ioutil.WriteUint32(&out, crc32.ChecksumIEEE(raw)); err != nil {
		return err
	}
	if err := ioutil.WriteUint64(&out, uint64(len(compressed))); err != nil {
		return err
	}
	if _, err := out.Write(compressed); err != nil {
		return oerr.ConvertGoError(ctx, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, out.Bytes(), 0644); err != nil {
		return oerr.ConvertGoError(ctx, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return oerr.ConvertGoError(ctx, err)
	}
	logutil.Info("catalog image saved",
		zap.String("path", path),
		zap.Int("functions", len(fns)),
		zap.Int("bytes", out.Len()))
	return nil
}

// LoadImage replays the image at path and makes the catalog readable.
// Any malformation aborts the load with the catalog left unreadable;
// the caller's restart or repair path decides what happens next.
func (c *Catalog) LoadImage(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return oerr.NewFileNotFound(ctx, path)
		}
		return oerr.ConvertGoError(ctx, err)
	}
	r := bytes.NewReader(data)

	magic, err := ioutil.ReadUint32(r)
	if err != nil {
		return err
	}
	if magic != imageMagic {
		return oerr.NewBadImage(ctx, path, "bad magic %#x", magic)
	}
	version, err := ioutil.ReadUint32(r)
	if err != nil {
		return err
	}
	if version > CatalogVersion_Curr {
		return oerr.NewBadImage(ctx, path, "version %d is newer than %d", version, CatalogVersion_Curr)
	}
	algo, err := ioutil.ReadUint8(r)
	if err != nil {
		return err
	}
	rawSize, err := ioutil.ReadUint64(r)
	if err != nil {
		return err
	}
	checksum, err := ioutil.ReadUint32(r)
	if err != nil {
		return err
	}
	compressedSize, err := ioutil.ReadUint64(r)
	if err != nil {
		return err
	}
	if uint64(r.Len()) < compressedSize {
		return oerr.NewUnexpectedEOF(ctx, path)
	}
	compressed := data[len(data)-r.Len():][:compressedSize]

	raw, err := compress.Decompress(compressed, make([]byte, rawSize), int(algo))
	if err != nil {
		return err
	}
	if crc32.ChecksumIEEE(raw) != checksum {
		return oerr.NewBadImage(ctx, path, "checksum mismatch")
	}

	payload := bytes.NewReader(raw)
	count, err := ioutil.ReadUint64(payload)
	if err != nil {
		return err
	}
	for i := uint64(0); i < count; i++ {
		fn, err := function.ReadFunction(payload)
		if err != nil {
			return err
		}
		if err := c.reg.Register(ctx, fn); err != nil {
			return err
		}
	}
	if payload.Len() != 0 {
		return oerr.NewBadImage(ctx, path, "%d trailing bytes after %d records", payload.Len(), count)
	}

	c.canRead.Store(true)
	logutil.Info("catalog image replayed",
		zap.String("path", path),
		zap.Uint64("functions", count))
	return nil
}
