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
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// NoData is shown in place of a payload that is absent or undecodable.
const NoData = "no data"

// Supported text encodings, in normalized form.
const (
	EncodingUTF8    = "utf-8"
	EncodingUTF16   = "utf-16"
	EncodingUTF16LE = "utf-16le"
	EncodingUTF16BE = "utf-16be"
)

// NormalizeEncoding lowercases an encoding name and folds common aliases:
// "" and "utf8" become "utf-8", "utf16le" becomes "utf-16le" and so on.
// Unknown names are returned lowercased.
func NormalizeEncoding(name string) string {
	e := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	switch e {
	case "", "utf8", EncodingUTF8:
		return EncodingUTF8
	case "utf16", EncodingUTF16:
		return EncodingUTF16
	case "utf16le", EncodingUTF16LE:
		return EncodingUTF16LE
	case "utf16be", EncodingUTF16BE:
		return EncodingUTF16BE
	}
	return e
}

func isSupportedEncoding(e string) bool {
	switch e {
	case EncodingUTF8, EncodingUTF16, EncodingUTF16LE, EncodingUTF16BE:
		return true
	}
	return false
}

// isUTF16 reports whether a normalized encoding is one of the UTF-16 forms.
func isUTF16(e string) bool {
	return strings.HasPrefix(e, EncodingUTF16)
}

// DecodePayload renders a raw payload as a string in the given encoding
// (UTF-8 when empty or unknown). UTF-16 without an explicit byte order
// honors a BOM and otherwise reads big-endian. A nil payload, or UTF-16
// that cannot be decoded, yields NoData.
func DecodePayload(data []byte, charset string) string {
	if data == nil {
		return NoData
	}

	var dec *encoding.Decoder
	switch NormalizeEncoding(charset) {
	case EncodingUTF16:
		dec = unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
	case EncodingUTF16LE:
		dec = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	case EncodingUTF16BE:
		dec = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	default:
		return strings.ToValidUTF8(string(data), "�")
	}

	out, err := dec.Bytes(data)
	if err != nil {
		return NoData
	}
	return string(out)
}

// DecodeRecord returns the text a record displays as. Records without a
// payload show NoData.
func DecodeRecord(r Record) string {
	switch r := deref(r).(type) {
	case TextRecord:
		return r.Text
	case URLRecord:
		return r.URL
	case AbsoluteURLRecord:
		return r.URL
	case SmartPosterRecord:
		return r.URL.URL
	case MIMERecord:
		return decodeRecordPayload(r.Payload, r.Encoding)
	case ExternalRecord:
		return decodeRecordPayload(r.Payload, r.Encoding)
	case UnknownRecord:
		return decodeRecordPayload(r.Payload, r.Encoding)
	}
	return NoData
}

func decodeRecordPayload(p Payload, charset string) string {
	switch {
	case p.IsText():
		return p.Text()
	case p.IsBytes():
		return DecodePayload(p.data, charset)
	}
	return NoData
}

// encodeString converts s to bytes in a normalized encoding. UTF-16 and
// UTF-16BE are written big-endian without a BOM.
func encodeString(s, charset string) ([]byte, error) {
	var enc *encoding.Encoder
	switch charset {
	case EncodingUTF16, EncodingUTF16BE:
		enc = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder()
	case EncodingUTF16LE:
		enc = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	default:
		return []byte(s), nil
	}
	out, err := enc.Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", charset, err)
	}
	return out, nil
}
