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
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZaparooProject/go-ndefkit"
	"github.com/ZaparooProject/go-ndefkit/pkg/ndef"
)

// fileTransport stands in for a tag reader by reading and writing NDEF
// dumps on disk. A dump may be a bare message or a type 2 tag TLV area.
type fileTransport struct {
	path string
	tlv  bool
}

func newFileTransport(path string, tlv bool) *fileTransport {
	return &fileTransport{path: path, tlv: tlv}
}

// Scan reports the dump as a single tag read, then closes the channel.
func (f *fileTransport) Scan(ctx context.Context) (<-chan ndefkit.TagEvent, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tag dump: %w", err)
	}

	events := make(chan ndefkit.TagEvent, 1)
	ev := ndefkit.TagEvent{SerialNumber: filepath.Base(f.path)}
	ev.Records, ev.Err = decodeDump(data)

	select {
	case events <- ev:
	case <-ctx.Done():
	}
	close(events)
	return events, nil
}

// Write encodes records to the dump file, replacing what was there.
func (f *fileTransport) Write(ctx context.Context, records []ndefkit.Record) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ndefkit.ErrAborted, err)
	}

	data, err := encodeDump(records, f.tlv)
	if err != nil {
		return err
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write tag dump: %w", err)
	}
	return nil
}

func encodeDump(records []ndefkit.Record, tlv bool) ([]byte, error) {
	data, err := ndefkit.Encode(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}
	if !tlv {
		return data, nil
	}
	wrapped, err := ndef.WrapTLV(data)
	if err != nil {
		return nil, fmt.Errorf("failed to wrap message: %w", err)
	}
	return wrapped, nil
}

func decodeDump(data []byte) ([]ndefkit.Record, error) {
	// A bare message starts with a record header, which always has MB set.
	if len(data) > 0 && data[0] <= ndef.TLVMessage {
		msg, err := ndef.UnwrapTLV(data)
		if err != nil {
			return nil, fmt.Errorf("failed to unwrap message: %w", err)
		}
		data = msg
	}
	records, err := ndefkit.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode message: %w", err)
	}
	return records, nil
}
