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
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// HexPrefix marks a text payload as a hex byte string.
const HexPrefix = "0x"

// BufferToHex returns b as lowercase, two digits per byte.
func BufferToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// BufferToBase64 returns b as standard base64. When mediaType is set the
// result is wrapped as a data URL.
func BufferToBase64(b []byte, mediaType string) string {
	encoded := base64.StdEncoding.EncodeToString(b)
	if mediaType == "" {
		return encoded
	}
	return "data:" + mediaType + ";base64," + encoded
}

// Base64ToBuffer decodes standard base64, with or without a data URL wrapper.
func Base64ToBuffer(s string) ([]byte, error) {
	if strings.HasPrefix(s, "data:") {
		_, after, ok := strings.Cut(s, ";base64,")
		if !ok {
			return nil, fmt.Errorf("%w: data URL is not base64", ErrInvalidBase64)
		}
		s = after
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBase64, err)
	}
	return b, nil
}

// HexToBuffer decodes a hex string. A leading 0x or 0X is ignored, digits
// are case-insensitive, and an odd digit count gets a trailing 0 nibble:
// "0xF" is 0x0F, "0xABCDE" is AB CD E0.
func HexToBuffer(s string) ([]byte, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	if len(s) == 1 {
		s = "0" + s
	} else if len(s)%2 != 0 {
		s += "0"
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHex, err)
	}
	return b, nil
}

// isHexText reports whether a text payload is to be read as hex.
func isHexText(s string) bool {
	return strings.HasPrefix(s, HexPrefix)
}
