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

package ndefkit

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestHexToBuffer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []byte
	}{
		{name: "single digit", in: "0xF", want: []byte{0x0F}},
		{name: "odd digits padded with trailing nibble", in: "0xFF0", want: []byte{0xFF, 0x00}},
		{name: "five digits", in: "0xABCDE", want: []byte{0xAB, 0xCD, 0xE0}},
		{name: "lowercase", in: "0xdeadbeef", want: []byte{0xDE, 0xAD, 0xBE, 0xEF}},
		{name: "uppercase prefix", in: "0X0102", want: []byte{0x01, 0x02}},
		{name: "no prefix", in: "cafe", want: []byte{0xCA, 0xFE}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := HexToBuffer(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHexToBufferEmpty(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "0x"} {
		got, err := HexToBuffer(in)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestHexToBufferInvalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"0xZZ", "xyz", "0x12 34"} {
		_, err := HexToBuffer(in)
		require.ErrorIs(t, err, ErrInvalidHex, "input %q", in)
	}
}

func TestBufferToHex(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "000fabff", BufferToHex([]byte{0x00, 0x0F, 0xAB, 0xFF}))
	assert.Empty(t, BufferToHex(nil))
}

func TestBufferToBase64(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "aGk=", BufferToBase64([]byte("hi"), ""))
	assert.Equal(t, "data:text/plain;base64,aGk=", BufferToBase64([]byte("hi"), "text/plain"))
	assert.Equal(t, "data:image/png;base64,", BufferToBase64(nil, "image/png"))
}

func TestBase64ToBuffer(t *testing.T) {
	t.Parallel()

	got, err := Base64ToBuffer("data:text/plain;base64,aGk=")
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), got)

	_, err = Base64ToBuffer("data:text/plain,hi")
	require.ErrorIs(t, err, ErrInvalidBase64)

	_, err = Base64ToBuffer("!!!")
	require.ErrorIs(t, err, ErrInvalidBase64)
}

// TestPropertyHexRoundTrip verifies hex encoding round-trips any buffer.
func TestPropertyHexRoundTrip(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		b := rapid.SliceOf(rapid.Byte()).Draw(t, "b")

		got, err := HexToBuffer(BufferToHex(b))
		if err != nil {
			t.Fatalf("HexToBuffer: %v", err)
		}
		if !bytes.Equal(got, b) {
			t.Fatalf("round trip = %x, want %x", got, b)
		}

		prefixed, err := HexToBuffer(HexPrefix + BufferToHex(b))
		if err != nil {
			t.Fatalf("HexToBuffer with prefix: %v", err)
		}
		if !bytes.Equal(prefixed, b) {
			t.Fatalf("prefixed round trip = %x, want %x", prefixed, b)
		}
	})
}

// TestPropertyBase64RoundTrip verifies base64 encoding round-trips any buffer,
// with or without the data URL wrapper.
func TestPropertyBase64RoundTrip(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		b := rapid.SliceOf(rapid.Byte()).Draw(t, "b")
		mediaType := rapid.SampledFrom([]string{"", "text/plain", "application/octet-stream"}).Draw(t, "mediaType")

		got, err := Base64ToBuffer(BufferToBase64(b, mediaType))
		if err != nil {
			t.Fatalf("Base64ToBuffer: %v", err)
		}
		if !bytes.Equal(got, b) {
			t.Fatalf("round trip = %x, want %x", got, b)
		}
	})
}
