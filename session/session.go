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

// Package session holds a record composition and drives a transport to scan
// tags or write the composed message.
package session

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ZaparooProject/go-ndefkit"
	"github.com/ZaparooProject/go-ndefkit/internal/syncutil"
)

// Session is a composition session: an ordered working list of records and
// at most one scan or write in progress on its transport.
type Session struct {
	transport ndefkit.Transport
	config    *Config
	onTagRead func(ndefkit.TagEvent)
	cancel    context.CancelFunc
	scanDone  chan struct{}
	lastTag   TagInfo
	records   []ndefkit.Record
	state     State
	mu        syncutil.RWMutex
	closed    atomic.Bool

	// inCallback is set while onTagRead runs on the scan goroutine.
	inCallback atomic.Bool
}

// NewSession creates a session over transport
func NewSession(transport ndefkit.Transport, config *Config) *Session {
	if config == nil {
		config = DefaultConfig()
	}
	return &Session{
		transport: transport,
		config:    config,
		records:   make([]ndefkit.Record, 0),
	}
}

// SetOnTagRead sets the callback run for every tag event during a scan,
// including failed reads. The callback runs on the scan goroutine and may
// call StopScan or Abort to end the scan.
func (s *Session) SetOnTagRead(callback func(ndefkit.TagEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onTagRead = callback
}

// Add builds a record from in and appends it to the working list.
func (s *Session) Add(in ndefkit.Input) (ndefkit.Record, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	rec, err := ndefkit.Build(in)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.records = append(s.records, rec)
	count := len(s.records)
	s.mu.Unlock()

	log.Debug().Str("type", string(rec.Kind())).Int("records", count).Msg("record added")
	return rec, nil
}

// Delete removes the record at index i.
func (s *Session) Delete(i int) error {
	if s.closed.Load() {
		return ErrClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.records) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(s.records))
	}
	s.records = slices.Delete(s.records, i, i+1)
	return nil
}

// Replace swaps the working list for records, e.g. ones just read from a tag.
func (s *Session) Replace(records []ndefkit.Record) error {
	if s.closed.Load() {
		return ErrClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = slices.Clone(records)
	if s.records == nil {
		s.records = make([]ndefkit.Record, 0)
	}
	return nil
}

// Records returns a copy of the working list.
func (s *Session) Records() []ndefkit.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records)
}

// Size returns the estimated encoded size of the working list.
func (s *Session) Size() int {
	return ndefkit.Estimate(s.Records())
}

// Capacity classifies Size against the tag size thresholds.
func (s *Session) Capacity() ndefkit.Capacity {
	return ndefkit.Classify(s.Size())
}

// State returns what the session is doing
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Scanning reports whether a scan is in progress.
func (s *Session) Scanning() bool {
	return s.State() == StateScanning
}

// Writing reports whether a write is in progress.
func (s *Session) Writing() bool {
	return s.State() == StateWriting
}

// LastTag returns the last tag read successfully, if any.
func (s *Session) LastTag() (TagInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastTag, s.lastTag.SerialNumber != ""
}

// StartScan starts reading tags in the background. Each read is passed to
// the OnTagRead callback until StopScan, Abort or ctx ends the scan.
func (s *Session) StartScan(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed.Load() {
		return ErrClosed
	}
	if s.state != StateIdle {
		return fmt.Errorf("%w: %s", ErrBusy, s.state)
	}

	scanCtx, cancel := context.WithCancel(ctx)
	events, err := s.transport.Scan(scanCtx)
	if err != nil {
		cancel()
		return fmt.Errorf("failed to start scan: %w", err)
	}

	done := make(chan struct{})
	s.state = StateScanning
	s.cancel = cancel
	s.scanDone = done
	go s.scanLoop(events, done)

	log.Debug().Msg("scan started")
	return nil
}

// StopScan cancels a running scan and waits for it to finish. Called from
// the OnTagRead callback it cancels without waiting, since the scan cannot
// finish until the callback returns.
func (s *Session) StopScan() {
	s.mu.RLock()
	cancel, done := s.cancel, s.scanDone
	scanning := s.state == StateScanning
	s.mu.RUnlock()

	if !scanning || cancel == nil {
		return
	}
	cancel()
	if s.inCallback.Load() {
		return
	}
	<-done
}

// Abort cancels whichever scan or write is in progress without waiting.
func (s *Session) Abort() {
	s.mu.RLock()
	cancel := s.cancel
	s.mu.RUnlock()
	if cancel != nil {
		cancel()
	}
}

// Write writes the working list as one message to the next tag the
// transport sees. Messages above Config.BlockAbove are refused with
// ErrTooLarge before the transport is touched.
func (s *Session) Write(ctx context.Context) error {
	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.state != StateIdle {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrBusy, state)
	}
	records := slices.Clone(s.records)
	if len(records) == 0 {
		s.mu.Unlock()
		return ndefkit.ErrNoRecords
	}
	size := ndefkit.Estimate(records)
	warn, block := s.config.Check(size)
	if block {
		s.mu.Unlock()
		return fmt.Errorf("%w: estimated %d bytes, limit is %d", ErrTooLarge, size, s.config.BlockAbove)
	}

	writeCtx, cancel := s.writeContext(ctx)
	defer cancel()
	s.state = StateWriting
	s.cancel = cancel
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.state = StateIdle
		s.cancel = nil
		s.mu.Unlock()
	}()

	if warn {
		log.Warn().
			Int("size", size).
			Str("capacity", ndefkit.Classify(size).String()).
			Msg("message may not fit on small tags")
	}

	start := time.Now()
	if err := s.transport.Write(writeCtx, records); err != nil {
		return fmt.Errorf("failed to write tag: %w", err)
	}
	log.Info().
		Int("records", len(records)).
		Int("size", size).
		Dur("elapsed", time.Since(start)).
		Msg("tag written")
	return nil
}

// Close aborts any scan or write and refuses further operations.
func (s *Session) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	s.StopScan()
	s.Abort()
	return nil
}

func (s *Session) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.config.WriteTimeout > 0 {
		return context.WithTimeout(ctx, s.config.WriteTimeout)
	}
	return context.WithCancel(ctx)
}

func (s *Session) scanLoop(events <-chan ndefkit.TagEvent, done chan struct{}) {
	defer func() {
		s.mu.Lock()
		s.state = StateIdle
		if s.cancel != nil {
			s.cancel()
			s.cancel = nil
		}
		s.scanDone = nil
		s.mu.Unlock()
		close(done)
		log.Debug().Msg("scan stopped")
	}()

	for ev := range events {
		s.handleTagEvent(ev)
	}
}

func (s *Session) handleTagEvent(ev ndefkit.TagEvent) {
	s.mu.Lock()
	if ev.Err == nil {
		s.lastTag = TagInfo{
			SerialNumber: ev.SerialNumber,
			RecordCount:  len(ev.Records),
			ReadTime:     time.Now(),
		}
	}
	callback := s.onTagRead
	s.mu.Unlock()

	if ev.Err != nil {
		log.Warn().Err(ev.Err).Str("serial", ev.SerialNumber).Msg("failed to read tag")
	} else {
		log.Debug().Str("serial", ev.SerialNumber).Int("records", len(ev.Records)).Msg("tag read")
	}

	// Call callback outside the lock to avoid potential deadlocks
	if callback != nil {
		s.inCallback.Store(true)
		defer s.inCallback.Store(false)
		callback(ev)
	}
}
