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

// Package testing provides virtual NFC tags and a simulated transport for
// exercising record composition end to end without hardware.
package testing

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/ZaparooProject/go-ndefkit"
	"github.com/ZaparooProject/go-ndefkit/pkg/ndef"
)

// User data area sizes of the NTAG21x family.
const (
	NTAG213DataSize = 144
	NTAG215DataSize = 504
	NTAG216DataSize = 888
)

var (
	// TestNTAG213UID is a sample NTAG213 UID
	TestNTAG213UID = []byte{0x04, 0xAB, 0xCD, 0xEF, 0x12, 0x34, 0x56}
	// TestNTAG215UID is a sample NTAG215 UID
	TestNTAG215UID = []byte{0x04, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66}
	// TestNTAG216UID is a sample NTAG216 UID
	TestNTAG216UID = []byte{0x04, 0x77, 0x88, 0x99, 0xAA, 0xBB, 0xCC}
)

var (
	ErrTagNotPresent = errors.New("tag not present")
	ErrTagReadOnly   = errors.New("tag is read-only")
	ErrTagFull       = errors.New("message does not fit on tag")
)

// VirtualTag is a simulated NFC Forum Type 2 tag. Its data area holds an
// NDEF message TLV the way a real tag's user memory does.
type VirtualTag struct {
	Type     string
	UID      []byte
	data     []byte
	Present  bool
	ReadOnly bool
}

// NewVirtualNTAG213 creates a virtual NTAG213 holding a "Hello World" text record.
func NewVirtualNTAG213(uid []byte) *VirtualTag {
	return newVirtualNTAG("NTAG213", uid, TestNTAG213UID, NTAG213DataSize)
}

// NewVirtualNTAG215 creates a virtual NTAG215 holding a "Hello World" text record.
func NewVirtualNTAG215(uid []byte) *VirtualTag {
	return newVirtualNTAG("NTAG215", uid, TestNTAG215UID, NTAG215DataSize)
}

// NewVirtualNTAG216 creates a virtual NTAG216 holding a "Hello World" text record.
func NewVirtualNTAG216(uid []byte) *VirtualTag {
	return newVirtualNTAG("NTAG216", uid, TestNTAG216UID, NTAG216DataSize)
}

func newVirtualNTAG(tagType string, uid, defaultUID []byte, size int) *VirtualTag {
	if uid == nil {
		uid = defaultUID
	}
	tag := &VirtualTag{
		Type:    tagType,
		UID:     uid,
		data:    make([]byte, size),
		Present: true,
	}
	// Known good data, cannot fail.
	_ = tag.SetRecords([]ndefkit.Record{ndefkit.TextRecord{Text: "Hello World", Lang: "en"}})
	return tag
}

// GetUIDString returns the UID as a hex string
func (v *VirtualTag) GetUIDString() string {
	return hex.EncodeToString(v.UID)
}

// Capacity returns the size of the tag's data area in bytes.
func (v *VirtualTag) Capacity() int {
	return len(v.data)
}

// SetRecords encodes records into the data area, replacing what was there.
func (v *VirtualTag) SetRecords(records []ndefkit.Record) error {
	msg, err := ndefkit.Encode(records)
	if err != nil {
		return err
	}
	return v.WriteNDEF(msg)
}

// WriteNDEF stores an encoded NDEF message, TLV-wrapped, in the data area.
func (v *VirtualTag) WriteNDEF(msg []byte) error {
	if !v.Present {
		return ErrTagNotPresent
	}
	if v.ReadOnly {
		return ErrTagReadOnly
	}

	wrapped, err := ndef.WrapTLV(msg)
	if err != nil {
		return err
	}
	if len(wrapped) > len(v.data) {
		return fmt.Errorf("%w: %d bytes, %s holds %d", ErrTagFull, len(wrapped), v.Type, len(v.data))
	}

	clear(v.data)
	copy(v.data, wrapped)
	return nil
}

// ReadNDEF returns the encoded NDEF message stored on the tag.
func (v *VirtualTag) ReadNDEF() ([]byte, error) {
	if !v.Present {
		return nil, ErrTagNotPresent
	}
	msg, err := ndef.UnwrapTLV(v.data)
	if err != nil {
		return nil, fmt.Errorf("failed to read NDEF TLV: %w", err)
	}
	return append([]byte(nil), msg...), nil
}

// Records decodes the message stored on the tag.
func (v *VirtualTag) Records() ([]ndefkit.Record, error) {
	msg, err := v.ReadNDEF()
	if err != nil {
		return nil, err
	}
	return ndefkit.Decode(msg)
}

// Remove sets the tag as not present
func (v *VirtualTag) Remove() {
	v.Present = false
}

// Insert sets the tag as present
func (v *VirtualTag) Insert() {
	v.Present = true
}
