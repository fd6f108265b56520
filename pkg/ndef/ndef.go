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

// Package ndef implements the NDEF binary record layout: one flags byte
// (MB, ME, CF, SR, IL, TNF), a type length, a 1 or 4 byte payload length,
// an optional ID length, then the type, ID and payload fields.
package ndef

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// TNF (Type Name Format) values as defined by NFC Forum.
const (
	TNFEmpty       byte = 0x00
	TNFWellKnown   byte = 0x01
	TNFMedia       byte = 0x02 // RFC 2046
	TNFAbsoluteURI byte = 0x03 // RFC 3986
	TNFExternal    byte = 0x04
	TNFUnknown     byte = 0x05
	TNFUnchanged   byte = 0x06 // chunked continuation
	TNFReserved    byte = 0x07
)

const (
	tnfMask byte = 0x07
	flagMB  byte = 0x80
	flagME  byte = 0x40
	flagCF  byte = 0x20
	flagSR  byte = 0x10
	flagIL  byte = 0x08

	// ShortRecordMaxLen is the largest payload that fits the 1 byte SR length.
	ShortRecordMaxLen = 255
	// MaxFieldLen bounds the type and ID fields, whose lengths are one byte.
	MaxFieldLen = 255
)

var (
	ErrEmptyMessage    = errors.New("ndef: empty message")
	ErrTruncatedRecord = errors.New("ndef: truncated record data")
	ErrInvalidTNF      = errors.New("ndef: invalid TNF value")
	ErrChunkedRecord   = errors.New("ndef: chunked records not supported")
	ErrFieldTooLong    = errors.New("ndef: type or id field too long")
)

// Record is a single wire-level NDEF record.
type Record struct {
	Type    string
	ID      string
	Payload []byte
	TNF     byte
	mb      bool
	me      bool
}

// MB reports whether the record opened its message.
func (r *Record) MB() bool { return r.mb }

// ME reports whether the record closed its message.
func (r *Record) ME() bool { return r.me }

// Message is an ordered list of records.
type Message struct {
	Records []*Record
}

// Marshal serializes the message, setting MB on the first record and ME on
// the last.
func (m *Message) Marshal() ([]byte, error) {
	if len(m.Records) == 0 {
		return nil, ErrEmptyMessage
	}

	var out []byte
	last := len(m.Records) - 1
	for i, rec := range m.Records {
		rec.mb = i == 0
		rec.me = i == last

		var err error
		out, err = rec.appendTo(out)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return out, nil
}

// Unmarshal parses one message from data and returns the bytes consumed.
// Parsing stops after the record carrying ME.
func (m *Message) Unmarshal(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, ErrEmptyMessage
	}

	m.Records = nil
	offset := 0
	for offset < len(data) {
		rec := &Record{}
		n, err := rec.Unmarshal(data[offset:])
		if err != nil {
			return offset, fmt.Errorf("record at offset %d: %w", offset, err)
		}
		if rec.mb && len(m.Records) > 0 {
			break
		}
		m.Records = append(m.Records, rec)
		offset += n
		if rec.me {
			break
		}
	}

	if len(m.Records) == 0 {
		return 0, ErrEmptyMessage
	}
	return offset, nil
}

// Marshal serializes the record on its own, with its current MB/ME flags.
func (r *Record) Marshal() ([]byte, error) {
	return r.appendTo(nil)
}

func (r *Record) appendTo(dst []byte) ([]byte, error) {
	if r.TNF > TNFReserved {
		return nil, ErrInvalidTNF
	}
	if len(r.Type) > MaxFieldLen || len(r.ID) > MaxFieldLen {
		return nil, fmt.Errorf("%w: type %d bytes, id %d bytes", ErrFieldTooLong, len(r.Type), len(r.ID))
	}

	payloadLen := len(r.Payload)
	short := payloadLen <= ShortRecordMaxLen

	flags := r.TNF & tnfMask
	if r.mb {
		flags |= flagMB
	}
	if r.me {
		flags |= flagME
	}
	if short {
		flags |= flagSR
	}
	if r.ID != "" {
		flags |= flagIL
	}

	dst = append(dst, flags, byte(len(r.Type)))
	if short {
		dst = append(dst, byte(payloadLen))
	} else {
		//nolint:gosec // payloadLen comes from len() and is > 255
		dst = binary.BigEndian.AppendUint32(dst, uint32(payloadLen))
	}
	if r.ID != "" {
		dst = append(dst, byte(len(r.ID)))
	}
	dst = append(dst, r.Type...)
	dst = append(dst, r.ID...)
	dst = append(dst, r.Payload...)
	return dst, nil
}

// Unmarshal parses a single record and returns the bytes consumed.
func (r *Record) Unmarshal(data []byte) (int, error) {
	if len(data) < 3 {
		return 0, ErrTruncatedRecord
	}

	flags := data[0]
	if flags&flagCF != 0 {
		return 0, ErrChunkedRecord
	}
	r.TNF = flags & tnfMask
	if r.TNF > TNFUnchanged {
		return 0, ErrInvalidTNF
	}
	r.mb = flags&flagMB != 0
	r.me = flags&flagME != 0

	typeLen := int(data[1])
	offset := 2

	var payloadLen int
	if flags&flagSR != 0 {
		payloadLen = int(data[offset])
		offset++
	} else {
		if offset+4 > len(data) {
			return 0, ErrTruncatedRecord
		}
		payloadLen = int(binary.BigEndian.Uint32(data[offset : offset+4]))
		offset += 4
	}

	var idLen int
	if flags&flagIL != 0 {
		if offset >= len(data) {
			return 0, ErrTruncatedRecord
		}
		idLen = int(data[offset])
		offset++
	}

	if payloadLen < 0 || offset+typeLen+idLen+payloadLen > len(data) {
		return 0, ErrTruncatedRecord
	}

	r.Type = string(data[offset : offset+typeLen])
	offset += typeLen
	r.ID = string(data[offset : offset+idLen])
	offset += idLen
	r.Payload = nil
	if payloadLen > 0 {
		r.Payload = make([]byte, payloadLen)
		copy(r.Payload, data[offset:offset+payloadLen])
		offset += payloadLen
	}
	return offset, nil
}
