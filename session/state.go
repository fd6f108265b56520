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
	"errors"
	"time"
)

// State is what the session is doing with its transport. A session scans
// or writes, never both.
type State int

const (
	StateIdle State = iota
	StateScanning
	StateWriting
)

func (s State) String() string {
	switch s {
	case StateScanning:
		return "scanning"
	case StateWriting:
		return "writing"
	default:
		return "idle"
	}
}

var (
	// ErrBusy is returned when a scan or write is requested while the
	// transport is already in use.
	ErrBusy = errors.New("session busy")
	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("session closed")
	// ErrTooLarge is returned when a message exceeds Config.BlockAbove.
	ErrTooLarge = errors.New("message too large")
	// ErrIndexOutOfRange is returned by Delete for a missing record.
	ErrIndexOutOfRange = errors.New("record index out of range")
)

// TagInfo describes the last tag read during a scan
type TagInfo struct {
	ReadTime     time.Time
	SerialNumber string
	RecordCount  int
}
