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

package ioutil

import (
	"bytes"
	"testing"

	"github.com/orcadb/orca/pkg/common/oerr"
	"github.com/stretchr/testify/require"
)

func TestOptionString(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOptionString(&buf, "sum_update", true))
	require.NoError(t, WriteOptionString(&buf, "", false))
	require.NoError(t, WriteOptionString(&buf, "", true))

	s, ok, err := ReadOptionString(&buf)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "sum_update", s)

	s, ok, err = ReadOptionString(&buf)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, "", s)

	s, ok, err = ReadOptionString(&buf)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "", s)
}

func TestReadBoolBadMarker(t *testing.T) {
	_, err := ReadBool(bytes.NewReader([]byte{7}))
	require.Error(t, err)
	require.True(t, oerr.IsErrorCode(err, oerr.ErrInvalidInput))
}

func TestTruncatedStream(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteString(&buf, "finalize"))
	data := buf.Bytes()

	// cut the stream in the middle of the payload
	_, err := ReadString(bytes.NewReader(data[:len(data)-3]))
	require.Error(t, err)
	require.True(t, oerr.IsErrorCode(err, oerr.ErrUnexpectedEOF))

	// cut the stream in the middle of the length prefix
	_, err = ReadString(bytes.NewReader(data[:2]))
	require.Error(t, err)
	require.True(t, oerr.IsErrorCode(err, oerr.ErrUnexpectedEOF))
}

func TestIntRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInt32(&buf, -12345))
	require.NoError(t, WriteUint64(&buf, 1<<40))

	i, err := ReadInt32(&buf)
	require.NoError(t, err)
	require.Equal(t, int32(-12345), i)

	u, err := ReadUint64(&buf)
	require.NoError(t, err)
	require.Equal(t, uint64(1<<40), u)
}
