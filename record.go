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

// Package ndefkit models NDEF records as composed by a user or handed back
// by a tag reader: building typed records from loose input, estimating the
// encoded message size, and rendering payloads for display.
package ndefkit

// RecordType names an NDEF record variant.
type RecordType string

const (
	TypeEmpty       RecordType = "empty"
	TypeText        RecordType = "text"
	TypeURL         RecordType = "url"
	TypeAbsoluteURL RecordType = "absolute-url"
	TypeMIME        RecordType = "mime"
	TypeSmartPoster RecordType = "smart-poster"
	TypeUnknown     RecordType = "unknown"
	// TypeExternal records carry their "domain:name" type in ExternalRecord.Type.
	TypeExternal RecordType = "external"
)

// Default text record settings.
const (
	DefaultEncoding = "utf-8"
	DefaultLang     = "en"
)

// Record is one of the record variants below. Each variant holds only the
// fields NDEF allows for it. Records are values and are never modified
// after construction.
type Record interface {
	Kind() RecordType
	// RecordID returns the record identifier, empty when the record has none.
	RecordID() string
	isRecord()
}

// EmptyRecord has no type, id or payload.
type EmptyRecord struct{}

// TextRecord is an NFC Forum Text record.
type TextRecord struct {
	ID       string
	Text     string
	Lang     string
	Encoding string
}

// URLRecord is an NFC Forum URI record.
type URLRecord struct {
	ID  string
	URL string
}

// AbsoluteURLRecord stores its URL in the type field and has no payload.
type AbsoluteURLRecord struct {
	ID  string
	URL string
}

// MIMERecord is a media-type record. Encoding is set only when the payload
// is text of a text-like media type.
type MIMERecord struct {
	Payload   Payload
	ID        string
	MediaType string
	Encoding  string
}

// SmartPosterRecord nests a URL record and an optional text title.
type SmartPosterRecord struct {
	Title *TextRecord
	URL   URLRecord
	ID    string
}

// ExternalRecord is an NFC Forum external type record ("domain:name").
type ExternalRecord struct {
	Payload  Payload
	ID       string
	Type     string
	Encoding string
}

// UnknownRecord carries an untyped payload.
type UnknownRecord struct {
	Payload  Payload
	ID       string
	Encoding string
}

func (EmptyRecord) Kind() RecordType       { return TypeEmpty }
func (TextRecord) Kind() RecordType        { return TypeText }
func (URLRecord) Kind() RecordType         { return TypeURL }
func (AbsoluteURLRecord) Kind() RecordType { return TypeAbsoluteURL }
func (MIMERecord) Kind() RecordType        { return TypeMIME }
func (SmartPosterRecord) Kind() RecordType { return TypeSmartPoster }
func (ExternalRecord) Kind() RecordType    { return TypeExternal }
func (UnknownRecord) Kind() RecordType     { return TypeUnknown }

func (EmptyRecord) RecordID() string         { return "" }
func (r TextRecord) RecordID() string        { return r.ID }
func (r URLRecord) RecordID() string         { return r.ID }
func (r AbsoluteURLRecord) RecordID() string { return r.ID }
func (r MIMERecord) RecordID() string        { return r.ID }
func (r SmartPosterRecord) RecordID() string { return r.ID }
func (r ExternalRecord) RecordID() string    { return r.ID }
func (r UnknownRecord) RecordID() string     { return r.ID }

func (EmptyRecord) isRecord()       {}
func (TextRecord) isRecord()        {}
func (URLRecord) isRecord()         {}
func (AbsoluteURLRecord) isRecord() {}
func (MIMERecord) isRecord()        {}
func (SmartPosterRecord) isRecord() {}
func (ExternalRecord) isRecord()    {}
func (UnknownRecord) isRecord()     {}

// Message returns the nested message: the URL record, then the title if set.
func (r SmartPosterRecord) Message() []Record {
	if r.Title == nil {
		return []Record{r.URL}
	}
	return []Record{r.URL, *r.Title}
}

// deref returns the value form of a record passed by pointer, so callers
// can switch on value variants only. A nil pointer yields nil.
func deref(r Record) Record {
	switch p := r.(type) {
	case *EmptyRecord:
		return derefValue(p)
	case *TextRecord:
		return derefValue(p)
	case *URLRecord:
		return derefValue(p)
	case *AbsoluteURLRecord:
		return derefValue(p)
	case *MIMERecord:
		return derefValue(p)
	case *SmartPosterRecord:
		return derefValue(p)
	case *ExternalRecord:
		return derefValue(p)
	case *UnknownRecord:
		return derefValue(p)
	}
	return r
}

func derefValue[T Record](p *T) Record {
	if p == nil {
		return nil
	}
	return *p
}

// lang returns the record language, "en" when unset.
func (r TextRecord) lang() string {
	if r.Lang == "" {
		return DefaultLang
	}
	return r.Lang
}

type payloadKind uint8

const (
	payloadKindAbsent payloadKind = iota
	payloadKindText
	payloadKindBytes
)

// Payload is absent, a string, or a byte buffer. The zero value is absent.
type Payload struct {
	text string
	data []byte
	kind payloadKind
}

// TextPayload returns a string payload.
func TextPayload(s string) Payload {
	return Payload{kind: payloadKindText, text: s}
}

// BytesPayload returns a payload holding a copy of b. A nil b is absent.
func BytesPayload(b []byte) Payload {
	if b == nil {
		return Payload{}
	}
	return Payload{kind: payloadKindBytes, data: append(make([]byte, 0, len(b)), b...)}
}

// IsAbsent reports whether the payload is unset.
func (p Payload) IsAbsent() bool { return p.kind == payloadKindAbsent }

// IsText reports whether the payload is a string.
func (p Payload) IsText() bool { return p.kind == payloadKindText }

// IsBytes reports whether the payload is a byte buffer.
func (p Payload) IsBytes() bool { return p.kind == payloadKindBytes }

// Text returns the string payload, or "" for other kinds.
func (p Payload) Text() string { return p.text }

// Bytes returns a copy of the byte payload, or nil for other kinds.
func (p Payload) Bytes() []byte {
	if p.kind != payloadKindBytes {
		return nil
	}
	return append(make([]byte, 0, len(p.data)), p.data...)
}

// byteLen is the payload size with strings counted as UTF-8.
func (p Payload) byteLen() int {
	switch p.kind {
	case payloadKindText:
		return len(p.text)
	case payloadKindBytes:
		return len(p.data)
	default:
		return 0
	}
}
