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

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"

	"github.com/ZaparooProject/go-ndefkit/pkg/ndef"
)

// Encode serializes records as one NDEF message.
func Encode(records []Record) ([]byte, error) {
	msg, err := toWireMessage(records)
	if err != nil {
		return nil, err
	}
	data, err := msg.Marshal()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal NDEF message: %w", err)
	}
	return data, nil
}

// Decode parses one NDEF message. Records with no matching variant are
// skipped; a message with none left is ErrNoRecords.
func Decode(data []byte) ([]Record, error) {
	msg := &ndef.Message{}
	if _, err := msg.Unmarshal(data); err != nil {
		return nil, fmt.Errorf("failed to parse NDEF message: %w", err)
	}

	records := make([]Record, 0, len(msg.Records))
	for _, w := range msg.Records {
		rec, err := FromWire(w)
		if err != nil {
			continue
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}

// ToWire converts a record to its wire form. Text payloads of mime,
// external and unknown records are encoded in the record's encoding.
func ToWire(r Record) (*ndef.Record, error) {
	r = deref(r)
	var w *ndef.Record
	switch r := r.(type) {
	case EmptyRecord:
		return ndef.NewEmptyRecord(), nil
	case TextRecord:
		rec, err := textToWire(r)
		if err != nil {
			return nil, err
		}
		w = rec
	case URLRecord:
		w = ndef.NewURIRecord(r.URL)
	case AbsoluteURLRecord:
		w = ndef.NewAbsoluteURIRecord(r.URL, nil)
	case SmartPosterRecord:
		nested, err := toWireMessage(r.Message())
		if err != nil {
			return nil, fmt.Errorf("smart poster: %w", err)
		}
		if w, err = ndef.NewSmartPosterRecord(nested); err != nil {
			return nil, err
		}
	case MIMERecord:
		payload, err := payloadBytes(r.Payload, r.Encoding)
		if err != nil {
			return nil, err
		}
		w = ndef.NewMediaRecord(r.MediaType, payload)
	case ExternalRecord:
		payload, err := payloadBytes(r.Payload, r.Encoding)
		if err != nil {
			return nil, err
		}
		w = ndef.NewExternalRecord(r.Type, payload)
	case UnknownRecord:
		payload, err := payloadBytes(r.Payload, r.Encoding)
		if err != nil {
			return nil, err
		}
		w = ndef.NewUnknownRecord(payload)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedRecord, r)
	}
	w.ID = r.RecordID()
	return w, nil
}

// FromWire converts a parsed wire record back to a record variant.
// Payloads come back as bytes; mime, external and unknown records carry
// no encoding since the wire format does not record one.
func FromWire(w *ndef.Record) (Record, error) {
	switch w.TNF {
	case ndef.TNFEmpty:
		return EmptyRecord{}, nil
	case ndef.TNFWellKnown:
		return wellKnownFromWire(w)
	case ndef.TNFMedia:
		return MIMERecord{ID: w.ID, MediaType: w.Type, Payload: BytesPayload(nonNil(w.Payload))}, nil
	case ndef.TNFAbsoluteURI:
		return AbsoluteURLRecord{ID: w.ID, URL: w.Type}, nil
	case ndef.TNFExternal:
		return ExternalRecord{ID: w.ID, Type: w.Type, Payload: BytesPayload(nonNil(w.Payload))}, nil
	case ndef.TNFUnknown:
		return UnknownRecord{ID: w.ID, Payload: BytesPayload(nonNil(w.Payload))}, nil
	}
	return nil, fmt.Errorf("%w: TNF 0x%02X", ErrUnsupportedRecord, w.TNF)
}

func wellKnownFromWire(w *ndef.Record) (Record, error) {
	switch w.Type {
	case ndef.TextRecordType:
		text, err := ndef.ParseTextRecord(w.Payload)
		if err != nil {
			return nil, fmt.Errorf("text record: %w", err)
		}
		enc := EncodingUTF8
		if text.UTF16 {
			enc = EncodingUTF16
		}
		return TextRecord{ID: w.ID, Text: text.Text, Lang: text.Language, Encoding: enc}, nil
	case ndef.URIRecordType:
		uri, err := ndef.ParseURIRecord(w.Payload)
		if err != nil {
			return nil, fmt.Errorf("url record: %w", err)
		}
		return URLRecord{ID: w.ID, URL: uri}, nil
	case ndef.SmartPosterRecordType:
		return smartPosterFromWire(w)
	}
	return nil, fmt.Errorf("%w: well-known type %q", ErrUnsupportedRecord, w.Type)
}

func smartPosterFromWire(w *ndef.Record) (Record, error) {
	nested, err := ndef.ParseSmartPoster(w.Payload)
	if err != nil {
		return nil, err
	}

	sp := SmartPosterRecord{ID: w.ID}
	for _, sub := range nested.Records {
		rec, err := wellKnownFromWire(sub)
		if err != nil {
			// Smart posters may also carry action, size and icon records.
			continue
		}
		switch rec := rec.(type) {
		case URLRecord:
			sp.URL = rec
		case TextRecord:
			if sp.Title == nil {
				sp.Title = &rec
			}
		}
	}
	return sp, nil
}

func toWireMessage(records []Record) (*ndef.Message, error) {
	msg := &ndef.Message{Records: make([]*ndef.Record, 0, len(records))}
	for i, r := range records {
		w, err := ToWire(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		msg.Records = append(msg.Records, w)
	}
	return msg, nil
}

func textToWire(r TextRecord) (*ndef.Record, error) {
	switch NormalizeEncoding(r.Encoding) {
	case EncodingUTF16, EncodingUTF16BE:
		return ndef.NewTextRecordUTF16(r.Text, r.lang(), unicode.BigEndian)
	case EncodingUTF16LE:
		return ndef.NewTextRecordUTF16(r.Text, r.lang(), unicode.LittleEndian)
	}
	return ndef.NewTextRecord(r.Text, r.lang()), nil
}

func payloadBytes(p Payload, charset string) ([]byte, error) {
	if !p.IsText() {
		return p.data, nil
	}
	return encodeString(p.text, NormalizeEncoding(charset))
}

func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
