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

package testing

import (
	"context"
	"fmt"
	"time"

	"github.com/ZaparooProject/go-ndefkit"
	"github.com/ZaparooProject/go-ndefkit/internal/syncutil"
)

// fieldQueueSize bounds how many presented tags can wait for a reader.
const fieldQueueSize = 16

// SimulatorTransport implements ndefkit.Transport over virtual tags. Tags
// handed to Present are picked up by the next Scan or Write, one each.
type SimulatorTransport struct {
	field chan *VirtualTag
	// Unsupported makes Scan and Write fail with ndefkit.ErrNotSupported.
	Unsupported bool
	WriteLog    []WriteLogEntry
	mu          syncutil.Mutex
}

// WriteLogEntry records a write to a virtual tag
type WriteLogEntry struct {
	Timestamp time.Time
	Err       error
	UID       string
	Records   int
}

// NewSimulatorTransport creates a transport with an empty field.
func NewSimulatorTransport() *SimulatorTransport {
	return &SimulatorTransport{
		field:    make(chan *VirtualTag, fieldQueueSize),
		WriteLog: make([]WriteLogEntry, 0),
	}
}

// Present brings a tag into the reader's field.
func (t *SimulatorTransport) Present(tag *VirtualTag) {
	tag.Insert()
	t.field <- tag
}

// Scan reads each presented tag until ctx is cancelled.
func (t *SimulatorTransport) Scan(ctx context.Context) (<-chan ndefkit.TagEvent, error) {
	if t.Unsupported {
		return nil, ndefkit.ErrNotSupported
	}

	events := make(chan ndefkit.TagEvent)
	go func() {
		defer close(events)
		for {
			select {
			case <-ctx.Done():
				return
			case tag := <-t.field:
				ev := ndefkit.TagEvent{SerialNumber: tag.GetUIDString()}
				ev.Records, ev.Err = tag.Records()
				select {
				case events <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return events, nil
}

// Write waits for the next presented tag and writes records to it.
func (t *SimulatorTransport) Write(ctx context.Context, records []ndefkit.Record) error {
	if t.Unsupported {
		return ndefkit.ErrNotSupported
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ndefkit.ErrAborted, ctx.Err())
	case tag := <-t.field:
		err := tag.SetRecords(records)
		t.mu.Lock()
		t.WriteLog = append(t.WriteLog, WriteLogEntry{
			Timestamp: time.Now(),
			UID:       tag.GetUIDString(),
			Records:   len(records),
			Err:       err,
		})
		t.mu.Unlock()
		return err
	}
}

// GetWriteCount returns the number of writes attempted.
func (t *SimulatorTransport) GetWriteCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.WriteLog)
}

// ClearWriteLog clears the write log
func (t *SimulatorTransport) ClearWriteLog() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.WriteLog = t.WriteLog[:0]
}
