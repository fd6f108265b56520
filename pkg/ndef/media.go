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

package ndef

import (
	"errors"
	"fmt"
)

// SmartPosterRecordType is the well-known type of a Smart Poster record.
const SmartPosterRecordType = "Sp"

// Common MIME types used in NFC.
const (
	MIMETypeWiFi  = "application/vnd.wfa.wsc"
	MIMETypeVCard = "text/vcard"
	MIMETypeJSON  = "application/json"
	MIMETypeText  = "text/plain"
)

// ErrSmartPosterNoURI is returned when a Smart Poster has no URI record.
var ErrSmartPosterNoURI = errors.New("ndef: smart poster has no URI record")

// NewMediaRecord creates a Media-type record; mediaType is an RFC 2046 type.
func NewMediaRecord(mediaType string, payload []byte) *Record {
	return &Record{TNF: TNFMedia, Type: mediaType, Payload: payload}
}

// NewExternalRecord creates an External Type record ("domain:type").
func NewExternalRecord(externalType string, payload []byte) *Record {
	return &Record{TNF: TNFExternal, Type: externalType, Payload: payload}
}

// NewAbsoluteURIRecord creates an Absolute URI record. The URI is the type
// field; the payload is usually empty.
func NewAbsoluteURIRecord(uri string, payload []byte) *Record {
	return &Record{TNF: TNFAbsoluteURI, Type: uri, Payload: payload}
}

// NewUnknownRecord creates a record of unknown type carrying raw bytes.
func NewUnknownRecord(payload []byte) *Record {
	return &Record{TNF: TNFUnknown, Payload: payload}
}

// NewEmptyRecord creates an empty NDEF record.
func NewEmptyRecord() *Record {
	return &Record{TNF: TNFEmpty}
}

// NewSmartPosterRecord wraps a nested message as a Smart Poster record.
func NewSmartPosterRecord(msg *Message) (*Record, error) {
	payload, err := msg.Marshal()
	if err != nil {
		return nil, fmt.Errorf("ndef: marshal smart poster: %w", err)
	}
	return &Record{TNF: TNFWellKnown, Type: SmartPosterRecordType, Payload: payload}, nil
}

// ParseSmartPoster unmarshals the nested message of a Smart Poster payload
// and checks it contains a URI record.
func ParseSmartPoster(payload []byte) (*Message, error) {
	msg := &Message{}
	if _, err := msg.Unmarshal(payload); err != nil {
		return nil, fmt.Errorf("ndef: smart poster payload: %w", err)
	}
	for _, rec := range msg.Records {
		if rec.TNF == TNFWellKnown && rec.Type == URIRecordType {
			return msg, nil
		}
	}
	return nil, ErrSmartPosterNoURI
}
