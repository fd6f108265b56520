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
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZaparooProject/go-ndefkit"
)

func TestVirtualTagCreation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		createTag    func() *VirtualTag
		name         string
		expectedType string
		expectedUID  []byte
		capacity     int
	}{
		{
			name:         "NTAG213_Creation",
			createTag:    func() *VirtualTag { return NewVirtualNTAG213(nil) },
			expectedType: "NTAG213",
			expectedUID:  TestNTAG213UID,
			capacity:     NTAG213DataSize,
		},
		{
			name:         "NTAG215_Creation",
			createTag:    func() *VirtualTag { return NewVirtualNTAG215(nil) },
			expectedType: "NTAG215",
			expectedUID:  TestNTAG215UID,
			capacity:     NTAG215DataSize,
		},
		{
			name:         "NTAG216_Creation",
			createTag:    func() *VirtualTag { return NewVirtualNTAG216(nil) },
			expectedType: "NTAG216",
			expectedUID:  TestNTAG216UID,
			capacity:     NTAG216DataSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tag := tt.createTag()
			assert.Equal(t, tt.expectedType, tag.Type)
			assert.Equal(t, tt.expectedUID, tag.UID)
			assert.Equal(t, tt.capacity, tag.Capacity())
			assert.True(t, tag.Present)

			records, err := tag.Records()
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, "Hello World", ndefkit.DecodeRecord(records[0]))
		})
	}
}

func TestVirtualTagSetRecords(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		tag := NewVirtualNTAG215(nil)
		want := []ndefkit.Record{
			ndefkit.URLRecord{URL: "https://zaparoo.org/docs"},
			ndefkit.TextRecord{Text: "launch", Lang: "en", Encoding: ndefkit.EncodingUTF8},
		}
		require.NoError(t, tag.SetRecords(want))

		got, err := tag.Records()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("too large for NTAG213", func(t *testing.T) {
		t.Parallel()

		tag := NewVirtualNTAG213(nil)
		big := ndefkit.TextRecord{Text: strings.Repeat("x", NTAG213DataSize), Lang: "en"}
		err := tag.SetRecords([]ndefkit.Record{big})
		require.ErrorIs(t, err, ErrTagFull)

		// Previous contents survive a rejected write.
		records, err := tag.Records()
		require.NoError(t, err)
		assert.Equal(t, "Hello World", ndefkit.DecodeRecord(records[0]))
	})

	t.Run("read-only", func(t *testing.T) {
		t.Parallel()

		tag := NewVirtualNTAG213(nil)
		tag.ReadOnly = true
		require.ErrorIs(t, tag.SetRecords([]ndefkit.Record{ndefkit.EmptyRecord{}}), ErrTagReadOnly)
	})

	t.Run("removed", func(t *testing.T) {
		t.Parallel()

		tag := NewVirtualNTAG213(nil)
		tag.Remove()
		_, err := tag.Records()
		require.ErrorIs(t, err, ErrTagNotPresent)
	})
}

func TestSimulatorTransport(t *testing.T) {
	t.Parallel()

	t.Run("scan reports presented tags", func(t *testing.T) {
		t.Parallel()

		sim := NewSimulatorTransport()
		ctx, cancel := context.WithCancel(context.Background())
		events, err := sim.Scan(ctx)
		require.NoError(t, err)

		tag := NewVirtualNTAG213(nil)
		sim.Present(tag)

		select {
		case ev := <-events:
			require.NoError(t, ev.Err)
			assert.Equal(t, tag.GetUIDString(), ev.SerialNumber)
			require.Len(t, ev.Records, 1)
		case <-time.After(time.Second):
			t.Fatal("no tag event")
		}

		cancel()
		for range events {
		}
	})

	t.Run("write waits for a tag", func(t *testing.T) {
		t.Parallel()

		sim := NewSimulatorTransport()
		tag := NewVirtualNTAG216(nil)
		sim.Present(tag)

		records := []ndefkit.Record{ndefkit.URLRecord{URL: "https://example.com"}}
		require.NoError(t, sim.Write(context.Background(), records))
		assert.Equal(t, 1, sim.GetWriteCount())

		got, err := tag.Records()
		require.NoError(t, err)
		assert.Equal(t, records, got)
	})

	t.Run("write aborted", func(t *testing.T) {
		t.Parallel()

		sim := NewSimulatorTransport()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		err := sim.Write(ctx, []ndefkit.Record{ndefkit.EmptyRecord{}})
		require.ErrorIs(t, err, ndefkit.ErrAborted)
		assert.Zero(t, sim.GetWriteCount())
	})

	t.Run("unsupported", func(t *testing.T) {
		t.Parallel()

		sim := NewSimulatorTransport()
		sim.Unsupported = true
		_, err := sim.Scan(context.Background())
		require.ErrorIs(t, err, ndefkit.ErrNotSupported)
		require.ErrorIs(t, sim.Write(context.Background(), nil), ndefkit.ErrNotSupported)
	})
}
