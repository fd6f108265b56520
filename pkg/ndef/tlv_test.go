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

package ndef

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapTLV(t *testing.T) {
	t.Parallel()

	t.Run("short length", func(t *testing.T) {
		t.Parallel()
		msg := []byte{0xD0, 0x00, 0x00}
		data, err := WrapTLV(msg)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x03, 0x03, 0xD0, 0x00, 0x00, 0xFE}, data)
		assert.Len(t, data, TLVSize(len(msg)))
	})

	t.Run("long length", func(t *testing.T) {
		t.Parallel()
		msg := bytes.Repeat([]byte{0xAA}, 300)
		data, err := WrapTLV(msg)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x03, 0xFF, 0x01, 0x2C}, data[:4])
		assert.Equal(t, byte(0xFE), data[len(data)-1])
		assert.Len(t, data, TLVSize(len(msg)))
	})

	t.Run("too large", func(t *testing.T) {
		t.Parallel()
		_, err := WrapTLV(make([]byte, 0x10000))
		require.ErrorIs(t, err, ErrTLVMessageLarge)
	})
}

func TestUnwrapTLV(t *testing.T) {
	t.Parallel()

	tests := []struct {
		wantErr error
		name    string
		data    []byte
		want    []byte
	}{
		{
			name: "message first",
			data: []byte{0x03, 0x02, 0xAB, 0xCD, 0xFE},
			want: []byte{0xAB, 0xCD},
		},
		{
			name: "skips null and lock control",
			data: []byte{0x00, 0x00, 0x01, 0x03, 0xA0, 0x10, 0x44, 0x03, 0x01, 0x99, 0xFE},
			want: []byte{0x99},
		},
		{
			name: "skips proprietary block",
			data: []byte{0xFD, 0x01, 0x55, 0x03, 0x01, 0x42, 0xFE},
			want: []byte{0x42},
		},
		{
			name: "long length",
			data: append([]byte{0x03, 0xFF, 0x00, 0x03}, 0x01, 0x02, 0x03),
			want: []byte{0x01, 0x02, 0x03},
		},
		{
			name:    "terminator before message",
			data:    []byte{0xFE, 0x00, 0x03, 0x01, 0x42},
			wantErr: ErrTLVNotFound,
		},
		{
			name:    "length past end",
			data:    []byte{0x03, 0x09, 0x01},
			wantErr: ErrTLVInvalidLen,
		},
		{
			name:    "too short",
			data:    []byte{0x03},
			wantErr: ErrTLVTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := UnwrapTLV(tt.data)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWrapUnwrapTLV(t *testing.T) {
	t.Parallel()

	msg := &Message{Records: []*Record{NewTextRecord("hello", "en"), NewURIRecord("https://zaparoo.org")}}
	encoded, err := msg.Marshal()
	require.NoError(t, err)

	wrapped, err := WrapTLV(encoded)
	require.NoError(t, err)

	unwrapped, err := UnwrapTLV(wrapped)
	require.NoError(t, err)
	assert.Equal(t, encoded, unwrapped)
}
