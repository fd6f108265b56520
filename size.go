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

import "github.com/ZaparooProject/go-ndefkit/pkg/ndef"

// Capacity thresholds for warning about message size. They are policy, not
// hard limits: an NTAG213 holds about 140 bytes of NDEF data.
const (
	SmallTagThreshold  = 140
	MediumTagThreshold = 500
)

// Capacity classifies an estimated message size against the thresholds.
type Capacity int

const (
	// CapacitySmall fits tags at or below SmallTagThreshold
	CapacitySmall Capacity = iota
	// CapacityMedium needs more than a small tag, up to MediumTagThreshold
	CapacityMedium
	// CapacityLarge exceeds MediumTagThreshold
	CapacityLarge
)

func (c Capacity) String() string {
	switch c {
	case CapacitySmall:
		return "small"
	case CapacityMedium:
		return "medium"
	default:
		return "large"
	}
}

// Classify returns the capacity class of a message of size bytes.
func Classify(size int) Capacity {
	switch {
	case size <= SmallTagThreshold:
		return CapacitySmall
	case size <= MediumTagThreshold:
		return CapacityMedium
	default:
		return CapacityLarge
	}
}

// Estimate returns the serialized size in bytes of a message made of
// records. It is the sum of EstimateRecord over the records.
func Estimate(records []Record) int {
	total := 0
	for _, r := range records {
		total += EstimateRecord(r)
	}
	return total
}

// EstimateRecord returns the serialized size of one record:
//
//	1                         TNF and flags
//	+ 1                       type length (omitted for empty records)
//	+ len(type)
//	+ 1 or 4                  payload length, 4 once the payload reaches 256
//	+ 1 + len(id)             when the record has an id
//	+ payload
//
// An empty record is exactly 1 byte. Smart poster payloads are the estimate
// of their nested message, sized by the same rules. A nil record is 0.
func EstimateRecord(r Record) int {
	r = deref(r)
	if r == nil {
		return 0
	}
	if r.Kind() == TypeEmpty {
		return 1
	}

	payload := payloadLength(r)
	size := 1 + 1 + len(typeField(r)) + payload
	if payload > ndef.ShortRecordMaxLen {
		size += 4
	} else {
		size++
	}
	if id := r.RecordID(); id != "" {
		size += 1 + len(id)
	}
	return size
}

// typeField returns the record's NDEF type field.
func typeField(r Record) string {
	switch r := r.(type) {
	case TextRecord:
		return ndef.TextRecordType
	case URLRecord:
		return ndef.URIRecordType
	case SmartPosterRecord:
		return ndef.SmartPosterRecordType
	case MIMERecord:
		return r.MediaType
	case ExternalRecord:
		return r.Type
	case AbsoluteURLRecord:
		return r.URL
	}
	return ""
}

// payloadLength returns the payload size the estimate uses: strings count
// as UTF-8 and URLs are counted unabbreviated.
func payloadLength(r Record) int {
	switch r := r.(type) {
	case TextRecord:
		return 1 + len(r.lang()) + len(r.Text)
	case URLRecord:
		return len(r.URL)
	case AbsoluteURLRecord:
		return 0
	case SmartPosterRecord:
		return Estimate(r.Message())
	case MIMERecord:
		return r.Payload.byteLen()
	case ExternalRecord:
		return r.Payload.byteLen()
	case UnknownRecord:
		return r.Payload.byteLen()
	}
	return 0
}
