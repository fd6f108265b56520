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
	"encoding/binary"
	"errors"
	"fmt"
)

// TLV block types of an NFC Forum Type 2 tag data area.
const (
	TLVNull          = 0x00
	TLVLockControl   = 0x01
	TLVMemoryControl = 0x02
	TLVMessage       = 0x03
	TLVTerminator    = 0xFE
)

// longTLVMarker introduces a 3-byte TLV length.
const longTLVMarker = 0xFF

var (
	ErrTLVTooShort     = errors.New("ndef: TLV data too short")
	ErrTLVNotFound     = errors.New("ndef: NDEF message TLV not found")
	ErrTLVInvalidLen   = errors.New("ndef: TLV length exceeds data")
	ErrTLVMessageLarge = errors.New("ndef: message too large for a TLV")
)

// TLVSize returns the bytes a message of n bytes occupies once wrapped:
// the TLV header plus the terminator.
func TLVSize(n int) int {
	if n < longTLVMarker {
		return n + 3
	}
	return n + 5
}

// WrapTLV wraps an encoded message in an NDEF message TLV followed by a
// terminator TLV, the layout written to a tag's data area.
func WrapTLV(msg []byte) ([]byte, error) {
	if len(msg) > 0xFFFE {
		return nil, fmt.Errorf("%w: %d bytes", ErrTLVMessageLarge, len(msg))
	}

	out := make([]byte, 0, TLVSize(len(msg)))
	out = append(out, TLVMessage)
	if len(msg) < longTLVMarker {
		out = append(out, byte(len(msg)))
	} else {
		out = append(out, longTLVMarker)
		out = binary.BigEndian.AppendUint16(out, uint16(len(msg)))
	}
	out = append(out, msg...)
	return append(out, TLVTerminator), nil
}

// UnwrapTLV returns the first NDEF message in a tag data area. Null, lock
// control, memory control and proprietary blocks before it are skipped.
func UnwrapTLV(data []byte) ([]byte, error) {
	if len(data) < 2 {
		return nil, ErrTLVTooShort
	}

	offset := 0
	for offset < len(data) {
		switch data[offset] {
		case TLVNull:
			offset++
			continue
		case TLVTerminator:
			return nil, ErrTLVNotFound
		}

		start, length, err := tlvBounds(data, offset)
		if err != nil {
			return nil, err
		}
		if data[offset] == TLVMessage {
			if start+length > len(data) {
				return nil, fmt.Errorf("%w: %d bytes at offset %d", ErrTLVInvalidLen, length, start)
			}
			return data[start : start+length], nil
		}
		offset = start + length
	}
	return nil, ErrTLVNotFound
}

// tlvBounds returns where the value of the TLV at offset starts and its length.
func tlvBounds(data []byte, offset int) (start, length int, err error) {
	if offset+1 >= len(data) {
		return 0, 0, ErrTLVTooShort
	}
	if data[offset+1] != longTLVMarker {
		return offset + 2, int(data[offset+1]), nil
	}
	if offset+3 >= len(data) {
		return 0, 0, fmt.Errorf("%w: incomplete long length at offset %d", ErrTLVTooShort, offset)
	}
	return offset + 4, int(binary.BigEndian.Uint16(data[offset+2:])), nil
}
