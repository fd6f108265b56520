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
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// IsTextMediaType reports whether a media type carries text: text/*, JSON,
// XML and their +json/+xml structured-syntax suffixes.
func IsTextMediaType(mediaType string) bool {
	base := baseMediaType(mediaType)
	switch {
	case base == "":
		return false
	case strings.HasPrefix(base, "text/"):
		return true
	case base == "application/json", base == "application/xml":
		return true
	case strings.HasSuffix(base, "+json"), strings.HasSuffix(base, "+xml"):
		return true
	}
	return false
}

// SniffMediaType guesses the media type of uploaded file contents, without
// parameters. It is a hint for pre-filling a mime record's media type and
// returns "application/octet-stream" when nothing matches.
func SniffMediaType(data []byte) string {
	return baseMediaType(mimetype.Detect(data).String())
}

func baseMediaType(mediaType string) string {
	base, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		base, _, _ = strings.Cut(mediaType, ";")
		base = strings.ToLower(strings.TrimSpace(base))
	}
	return base
}
