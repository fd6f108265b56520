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

import "context"

// TagEvent is one tag read reported by a Transport. Err is set instead of
// Records when the tag could not be read.
type TagEvent struct {
	Err          error
	SerialNumber string
	Records      []Record
}

// Transport is the NFC reader/writer a session drives. This package only
// defines the contract; implementations live with the hardware or platform
// they talk to.
type Transport interface {
	// Scan starts reading tags and reports each read on the returned
	// channel. Cancelling ctx stops the scan and closes the channel.
	Scan(ctx context.Context) (<-chan TagEvent, error)

	// Write writes records as one NDEF message to the next tag presented.
	// It returns ErrAborted if ctx is cancelled first.
	Write(ctx context.Context, records []Record) error
}
