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
	"errors"
	"fmt"
	"strings"
)

var (
	// Builder errors
	ErrInvalidRecord = errors.New("invalid record")

	// Conversion errors
	ErrInvalidHex    = errors.New("invalid hex string")
	ErrInvalidBase64 = errors.New("invalid base64 string")

	// Wire errors
	ErrUnsupportedRecord = errors.New("unsupported record")
	ErrNoRecords         = errors.New("no supported records in message")

	// Transport errors, returned by Transport implementations
	ErrNotSupported = errors.New("NFC is not supported")
	ErrAborted      = errors.New("operation aborted")
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

// ValidationError reports every field that prevented a record from being
// built. It matches ErrInvalidRecord with errors.Is.
type ValidationError struct {
	RecordType string
	Fields     []FieldError
}

func (e *ValidationError) Error() string {
	prefix := "invalid record"
	if e.RecordType != "" {
		prefix = fmt.Sprintf("invalid %s record", e.RecordType)
	}
	if len(e.Fields) == 0 {
		return prefix
	}
	msgs := make([]string, len(e.Fields))
	for i, fe := range e.Fields {
		msgs[i] = fe.Message
	}
	return prefix + ": " + strings.Join(msgs, "; ")
}

func (*ValidationError) Is(target error) bool {
	return target == ErrInvalidRecord
}

// HasField reports whether field was among the rejected fields.
func (e *ValidationError) HasField(field string) bool {
	for _, fe := range e.Fields {
		if fe.Field == field {
			return true
		}
	}
	return false
}
