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

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"

	"github.com/ZaparooProject/go-ndefkit"
	"github.com/ZaparooProject/go-ndefkit/session"
)

// policy mirrors session.Config in the composition file.
type policy struct {
	WarnAbove  int `toml:"warn_above"`
	BlockAbove int `toml:"block_above"`
}

// entry is one record in a composition file. File, when set, is read as
// the record's byte payload.
type entry struct {
	Type         string `toml:"type"`
	ExternalType string `toml:"external_type"`
	MediaType    string `toml:"media_type"`
	ID           string `toml:"id"`
	Encoding     string `toml:"encoding"`
	Lang         string `toml:"lang"`
	Text         string `toml:"text"`
	URL          string `toml:"url"`
	File         string `toml:"file"`
}

type composition struct {
	Records []entry `toml:"records"`
	Policy  policy  `toml:"policy"`
}

var errNoRecords = errors.New("composition has no records")

func defaultComposition() composition {
	defaults := session.DefaultConfig()
	return composition{
		Policy: policy{
			WarnAbove:  defaults.WarnAbove,
			BlockAbove: defaults.BlockAbove,
		},
	}
}

// loadComposition reads a TOML composition. Relative record file paths
// resolve against the composition's directory.
func loadComposition(path string) (composition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return composition{}, fmt.Errorf("failed to read composition: %w", err)
	}

	comp := defaultComposition()
	if err := toml.Unmarshal(data, &comp); err != nil {
		return composition{}, fmt.Errorf("failed to unmarshal composition: %w", err)
	}
	if len(comp.Records) == 0 {
		return composition{}, errNoRecords
	}

	dir := filepath.Dir(path)
	for i := range comp.Records {
		if f := comp.Records[i].File; f != "" && !filepath.IsAbs(f) {
			comp.Records[i].File = filepath.Join(dir, f)
		}
	}
	return comp, nil
}

// input converts an entry to builder input, loading its file payload.
func (e entry) input() (ndefkit.Input, error) {
	in := ndefkit.Input{
		RecordType:   e.Type,
		ExternalType: e.ExternalType,
		MediaType:    e.MediaType,
		ID:           e.ID,
		Encoding:     e.Encoding,
		Lang:         e.Lang,
		Text:         e.Text,
		URL:          e.URL,
	}
	if e.File == "" {
		return in, nil
	}

	data, err := os.ReadFile(e.File)
	if err != nil {
		return ndefkit.Input{}, fmt.Errorf("failed to read record payload: %w", err)
	}
	in.Data = data
	if in.MediaType == "" {
		in.MediaType = ndefkit.SniffMediaType(data)
		log.Debug().Str("file", e.File).Str("media_type", in.MediaType).Msg("detected media type")
	}
	return in, nil
}

func (p policy) sessionConfig() *session.Config {
	cfg := session.DefaultConfig()
	cfg.WarnAbove = p.WarnAbove
	cfg.BlockAbove = p.BlockAbove
	return cfg
}
