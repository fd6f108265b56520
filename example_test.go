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

package ndefkit_test

import (
	"fmt"

	"github.com/ZaparooProject/go-ndefkit"
)

func ExampleBuild() {
	rec, err := ndefkit.Build(ndefkit.Input{
		RecordType: "smart-poster",
		URL:        "https://example.com",
		Text:       "Hi",
		Lang:       "fr",
	})
	if err != nil {
		_, _ = fmt.Println(err)
		return
	}

	sp, _ := rec.(ndefkit.SmartPosterRecord)
	for _, sub := range sp.Message() {
		_, _ = fmt.Printf("%s: %s\n", sub.Kind(), ndefkit.DecodeRecord(sub))
	}
	// Output:
	// url: https://example.com
	// text: Hi
}

func ExampleBuild_validation() {
	_, err := ndefkit.Build(ndefkit.Input{RecordType: "mime", Text: "x"})
	_, _ = fmt.Println(err)
	// Output: invalid mime record: media_type is required for mime records
}

func ExampleEstimate() {
	records := []ndefkit.Record{
		ndefkit.TextRecord{Text: "hello", Lang: "en"},
		ndefkit.EmptyRecord{},
	}
	size := ndefkit.Estimate(records)
	_, _ = fmt.Println(size, ndefkit.Classify(size))
	// Output: 13 small
}

func ExampleEncode() {
	data, err := ndefkit.Encode([]ndefkit.Record{ndefkit.URLRecord{URL: "https://zaparoo.org"}})
	if err != nil {
		_, _ = fmt.Println(err)
		return
	}
	_, _ = fmt.Println(ndefkit.BufferToHex(data))
	// Output: d1010c55047a617061726f6f2e6f7267
}

func ExampleHexToBuffer() {
	b, _ := ndefkit.HexToBuffer("0xABCDE")
	_, _ = fmt.Println(ndefkit.BufferToHex(b))
	// Output: abcde0
}
