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

package session

import (
	"time"

	"github.com/ZaparooProject/go-ndefkit"
)

// Config holds the session's write policy
type Config struct {
	// WarnAbove logs a warning when a message about to be written is
	// estimated above this many bytes. 0 disables the warning.
	WarnAbove int

	// BlockAbove rejects writes estimated above this many bytes with
	// ErrTooLarge. 0 disables the limit.
	BlockAbove int

	// WriteTimeout bounds how long Write waits for a tag. 0 waits until
	// the caller's context ends.
	WriteTimeout time.Duration
}

// DefaultConfig returns the default session configuration
func DefaultConfig() *Config {
	return &Config{
		WarnAbove:    ndefkit.SmallTagThreshold,
		BlockAbove:   0,
		WriteTimeout: 30 * time.Second,
	}
}

// Check returns the policy verdict for a message of size bytes: whether it
// should be logged as oversized and whether it must be refused.
func (cfg *Config) Check(size int) (warn, block bool) {
	warn = cfg.WarnAbove > 0 && size > cfg.WarnAbove
	block = cfg.BlockAbove > 0 && size > cfg.BlockAbove
	return warn, block
}
