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
	"fmt"
	"io"

	"github.com/ZaparooProject/go-ndefkit"
	"github.com/ZaparooProject/go-ndefkit/pkg/ndef"
)

const (
	formatHex    = "hex"
	formatBase64 = "base64"
	formatNone   = "none"
)

func validFormat(format string) bool {
	switch format {
	case formatHex, formatBase64, formatNone:
		return true
	default:
		return false
	}
}

// printRecords writes one line per record with its estimated size.
func printRecords(w io.Writer, records []ndefkit.Record) {
	for i, r := range records {
		kind := string(r.Kind())
		if ext, ok := r.(ndefkit.ExternalRecord); ok {
			kind = ext.Type
		}
		_, _ = fmt.Fprintf(w, "%d: %-12s %4d bytes  %s\n", i, kind, ndefkit.EstimateRecord(r), ndefkit.DecodeRecord(r))
	}
}

// printSummary writes the size estimate, the encoded sizes and a dump of
// the encoded message in the requested format.
func printSummary(w io.Writer, records []ndefkit.Record, format string) error {
	size := ndefkit.Estimate(records)
	_, _ = fmt.Fprintf(w, "estimated size: %d bytes (%s tag)\n", size, ndefkit.Classify(size))

	data, err := ndefkit.Encode(records)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}
	_, _ = fmt.Fprintf(w, "encoded size:   %d bytes, %d with TLV\n", len(data), ndef.TLVSize(len(data)))

	switch format {
	case formatHex:
		_, _ = fmt.Fprintln(w, ndefkit.BufferToHex(data))
	case formatBase64:
		_, _ = fmt.Fprintln(w, ndefkit.BufferToBase64(data, ""))
	}
	return nil
}
