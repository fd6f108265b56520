// Copyright 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZaparooProject/go-ndefkit"
	"github.com/ZaparooProject/go-ndefkit/pkg/ndef"
	"github.com/ZaparooProject/go-ndefkit/session"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n', 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestRunComposeSingleRecord(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "tag.bin")
	cfg := &config{
		record:  entry{Type: "text", Text: "hello"},
		outPath: out,
		format:  formatHex,
	}

	var buf bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, &buf))
	assert.Contains(t, buf.String(), "estimated size: 12 bytes (small tag)")
	assert.Contains(t, buf.String(), "wrote "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	records, err := ndefkit.Decode(data)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "hello", ndefkit.DecodeRecord(records[0]))
}

func TestRunComposeWithoutOutputOnlyPrints(t *testing.T) {
	t.Parallel()

	cfg := &config{record: entry{Type: "url", Text: "https://zaparoo.org"}, format: formatBase64}

	var buf bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, &buf))
	assert.Contains(t, buf.String(), "https://zaparoo.org")
	assert.NotContains(t, buf.String(), "wrote")
}

func TestRunCompositionFileThenRead(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "logo.png", pngHeader)
	comp := writeFile(t, dir, "tag.toml", []byte(`
[policy]
warn_above = 20

[[records]]
type = "smart-poster"
url = "https://zaparoo.org"
text = "Zaparoo"

[[records]]
type = "mime"
file = "logo.png"

[[records]]
type = "zaparoo.org:launch"
text = "**random"
`))
	out := filepath.Join(dir, "tag.bin")

	var buf bytes.Buffer
	cfg := &config{configPath: comp, outPath: out, tlv: true, format: formatNone}
	require.NoError(t, run(context.Background(), cfg, &buf))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, byte(ndef.TLVMessage), data[0])

	buf.Reset()
	cfg = &config{readPath: out, format: formatNone}
	require.NoError(t, run(context.Background(), cfg, &buf))
	assert.Contains(t, buf.String(), "tag tag.bin: 3 records")
	assert.Contains(t, buf.String(), "smart-poster")
	assert.Contains(t, buf.String(), "zaparoo.org:launch")
	assert.Contains(t, buf.String(), "**random")
}

func TestRunCompositionBlockPolicy(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	comp := writeFile(t, dir, "tag.toml", []byte(`
[policy]
block_above = 10

[[records]]
type = "text"
text = "this message is longer than ten bytes"
`))
	out := filepath.Join(dir, "tag.bin")

	err := run(context.Background(), &config{configPath: comp, outPath: out, format: formatNone}, &bytes.Buffer{})
	require.ErrorIs(t, err, session.ErrTooLarge)
	assert.NoFileExists(t, out)
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	empty := writeFile(t, dir, "empty.toml", []byte("[policy]\nwarn_above = 1\n"))
	broken := writeFile(t, dir, "broken.toml", []byte("[[records]\n"))
	corrupt := writeFile(t, dir, "corrupt.bin", []byte{0xD1, 0x01})

	tests := []struct {
		wantErr error
		cfg     *config
		name    string
	}{
		{
			name:    "invalid record",
			cfg:     &config{record: entry{Type: "mime", Text: "x"}, format: formatHex},
			wantErr: ndefkit.ErrInvalidRecord,
		},
		{
			name:    "composition without records",
			cfg:     &config{configPath: empty, format: formatHex},
			wantErr: errNoRecords,
		},
		{
			name: "malformed composition",
			cfg:  &config{configPath: broken, format: formatHex},
		},
		{
			name:    "missing payload file",
			cfg:     &config{record: entry{Type: "mime", File: filepath.Join(dir, "missing")}, format: formatHex},
			wantErr: os.ErrNotExist,
		},
		{
			name: "corrupt dump",
			cfg:  &config{readPath: corrupt, format: formatHex},
		},
		{
			name: "unknown format",
			cfg:  &config{record: entry{Type: "text", Text: "x"}, format: "yaml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := run(context.Background(), tt.cfg, &bytes.Buffer{})
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestEntryInputSniffsMediaType(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "logo", pngHeader)

	in, err := entry{Type: "mime", File: path}.input()
	require.NoError(t, err)
	assert.Equal(t, "image/png", in.MediaType)
	assert.Equal(t, pngHeader, in.Data)

	in, err = entry{Type: "mime", File: path, MediaType: "application/octet-stream"}.input()
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", in.MediaType)
}

func TestLoadCompositionDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "tag.toml", []byte("[[records]]\ntype = \"mime\"\nfile = \"data.bin\"\n"))

	comp, err := loadComposition(path)
	require.NoError(t, err)
	assert.Equal(t, ndefkit.SmallTagThreshold, comp.Policy.WarnAbove)
	assert.Zero(t, comp.Policy.BlockAbove)
	require.Len(t, comp.Records, 1)
	assert.Equal(t, filepath.Join(dir, "data.bin"), comp.Records[0].File)
}

func TestDecodeDump(t *testing.T) {
	t.Parallel()

	records := []ndefkit.Record{ndefkit.TextRecord{Text: "dump", Lang: "en", Encoding: ndefkit.EncodingUTF8}}

	for _, tlv := range []bool{false, true} {
		data, err := encodeDump(records, tlv)
		require.NoError(t, err)

		got, err := decodeDump(data)
		require.NoError(t, err)
		assert.Equal(t, records, got)
	}

	// Lock control TLV ahead of the message.
	bare, err := ndefkit.Encode(records)
	require.NoError(t, err)
	area := append([]byte{ndef.TLVLockControl, 0x03, 0xA0, 0x10, 0x44}, ndef.TLVMessage, byte(len(bare)))
	area = append(area, bare...)
	area = append(area, ndef.TLVTerminator)
	got, err := decodeDump(area)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestFileTransportWriteAborted(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := filepath.Join(t.TempDir(), "tag.bin")
	err := newFileTransport(out, false).Write(ctx, []ndefkit.Record{ndefkit.EmptyRecord{}})
	require.ErrorIs(t, err, ndefkit.ErrAborted)
	assert.NoFileExists(t, out)
}
