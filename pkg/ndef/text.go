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

	"golang.org/x/text/encoding/unicode"
)

// Text record constants.
const (
	TextRecordType    = "T"
	textUTF16Flag     = 0x80
	textLangCodeMask  = 0x3F
	MaxLanguageLength = 63 // 6 bits
	defaultLanguage   = "en"
)

var (
	ErrTextPayloadTooShort  = errors.New("ndef: text payload too short")
	ErrTextLanguageTooLong  = errors.New("ndef: language code too long")
	ErrTextPayloadTruncated = errors.New("ndef: text payload truncated")
	ErrTextInvalidUTF16     = errors.New("ndef: invalid UTF-16 text")
)

// TextRecord is a decoded Text RTD payload.
type TextRecord struct {
	Text     string
	Language string
	UTF16    bool
}

// NewTextRecord creates a UTF-8 Text record. An empty language means "en";
// longer than 63 bytes is truncated.
func NewTextRecord(text, language string) *Record {
	language = clampLanguage(language)
	return &Record{
		TNF:     TNFWellKnown,
		Type:    TextRecordType,
		Payload: textPayload(byte(len(language)), language, []byte(text)),
	}
}

// NewTextRecordUTF16 creates a UTF-16 Text record. Big-endian text is
// written without a byte order mark; little-endian text is prefixed with
// one so readers that assume big-endian still decode it.
func NewTextRecordUTF16(text, language string, order unicode.Endianness) (*Record, error) {
	bom := unicode.IgnoreBOM
	if order == unicode.LittleEndian {
		bom = unicode.UseBOM
	}
	encoded, err := unicode.UTF16(order, bom).NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("ndef: encode UTF-16 text: %w", err)
	}

	language = clampLanguage(language)
	return &Record{
		TNF:     TNFWellKnown,
		Type:    TextRecordType,
		Payload: textPayload(textUTF16Flag|byte(len(language)), language, encoded),
	}, nil
}

// ParseTextRecord decodes a Text record payload. UTF-16 text honors a
// leading byte order mark and is otherwise read big-endian.
func ParseTextRecord(payload []byte) (*TextRecord, error) {
	if len(payload) < 1 {
		return nil, ErrTextPayloadTooShort
	}

	status := payload[0]
	langLen := int(status & textLangCodeMask)
	if len(payload) < 1+langLen {
		return nil, ErrTextPayloadTruncated
	}

	rec := &TextRecord{
		Language: string(payload[1 : 1+langLen]),
		UTF16:    status&textUTF16Flag != 0,
	}
	body := payload[1+langLen:]
	if !rec.UTF16 {
		rec.Text = string(body)
		return rec, nil
	}

	if len(body)%2 != 0 {
		return nil, fmt.Errorf("%w: odd length %d", ErrTextInvalidUTF16, len(body))
	}
	decoded, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder().Bytes(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTextInvalidUTF16, err)
	}
	rec.Text = string(decoded)
	return rec, nil
}

// EncodeTextPayload creates a UTF-8 text payload, rejecting over-long
// language codes instead of truncating them.
func EncodeTextPayload(text, language string) ([]byte, error) {
	if len(language) > MaxLanguageLength {
		return nil, fmt.Errorf("%w: %d bytes", ErrTextLanguageTooLong, len(language))
	}
	if language == "" {
		language = defaultLanguage
	}
	return textPayload(byte(len(language)), language, []byte(text)), nil
}

func clampLanguage(language string) string {
	if language == "" {
		return defaultLanguage
	}
	if len(language) > MaxLanguageLength {
		return language[:MaxLanguageLength]
	}
	return language
}

func textPayload(status byte, language string, text []byte) []byte {
	payload := make([]byte, 0, 1+len(language)+len(text))
	payload = append(payload, status)
	payload = append(payload, language...)
	return append(payload, text...)
}
