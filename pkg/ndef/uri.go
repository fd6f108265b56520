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
	"errors"
	"fmt"
	"strings"
)

// URI record constants.
const URIRecordType = "U"

// URI record errors.
var (
	ErrURIPayloadTooShort   = errors.New("ndef: URI payload too short")
	ErrURIInvalidPrefixCode = errors.New("ndef: invalid URI prefix code")
)

// Prefix codes from the NFC Forum URI RTD; code 0 means no abbreviation.
var uriPrefixes = []string{
	"",                           // 0x00 - No prepending
	"http://www.",                // 0x01
	"https://www.",               // 0x02
	"http://",                    // 0x03
	"https://",                   // 0x04
	"tel:",                       // 0x05
	"mailto:",                    // 0x06
	"ftp://anonymous:anonymous@", // 0x07
	"ftp://ftp.",                 // 0x08
	"ftps://",                    // 0x09
	"sftp://",                    // 0x0A
	"smb://",                     // 0x0B
	"nfs://",                     // 0x0C
	"ftp://",                     // 0x0D
	"dav://",                     // 0x0E
	"news:",                      // 0x0F
	"telnet://",                  // 0x10
	"imap:",                      // 0x11
	"rtsp://",                    // 0x12
	"urn:",                       // 0x13
	"pop:",                       // 0x14
	"sip:",                       // 0x15
	"sips:",                      // 0x16
	"tftp:",                      // 0x17
	"btspp://",                   // 0x18
	"btl2cap://",                 // 0x19
	"btgoep://",                  // 0x1A
	"tcpobex://",                 // 0x1B
	"irdaobex://",                // 0x1C
	"file://",                    // 0x1D
	"urn:epc:id:",                // 0x1E
	"urn:epc:tag:",               // 0x1F
	"urn:epc:pat:",               // 0x20
	"urn:epc:raw:",               // 0x21
	"urn:epc:",                   // 0x22
	"urn:nfc:",                   // 0x23
}

// NewURIRecord creates a URI record, abbreviating the longest matching
// prefix from the NFC Forum table.
func NewURIRecord(uri string) *Record {
	return &Record{
		TNF:     TNFWellKnown,
		Type:    URIRecordType,
		Payload: EncodeURIPayload(uri),
	}
}

// ParseURIRecord expands a URI record payload back to the full URI.
func ParseURIRecord(payload []byte) (string, error) {
	if len(payload) < 1 {
		return "", ErrURIPayloadTooShort
	}
	code := int(payload[0])
	if code >= len(uriPrefixes) {
		return "", fmt.Errorf("%w: 0x%02X", ErrURIInvalidPrefixCode, payload[0])
	}
	return uriPrefixes[code] + string(payload[1:]), nil
}

// EncodeURIPayload creates a URI record payload with optimal prefix compression.
func EncodeURIPayload(uri string) []byte {
	code := longestPrefix(uri)
	suffix := uri[len(uriPrefixes[code]):]

	payload := make([]byte, 0, 1+len(suffix))
	payload = append(payload, code)
	return append(payload, suffix...)
}

// EncodedURILen is len(EncodeURIPayload(uri)) without allocating.
func EncodedURILen(uri string) int {
	return 1 + len(uri) - len(uriPrefixes[longestPrefix(uri)])
}

func longestPrefix(uri string) byte {
	var best byte
	for i := 1; i < len(uriPrefixes); i++ {
		p := uriPrefixes[i]
		if len(p) > len(uriPrefixes[best]) && strings.HasPrefix(uri, p) {
			best = byte(i)
		}
	}
	return best
}
