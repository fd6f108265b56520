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

// Command ndefcompose builds NDEF messages from flags or a TOML composition,
// reports their size and writes them to a tag dump file. With -read it
// decodes an existing dump instead.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ZaparooProject/go-ndefkit"
	"github.com/ZaparooProject/go-ndefkit/session"
)

type config struct {
	record     entry
	configPath string
	outPath    string
	readPath   string
	format     string
	blockAbove int
	tlv        bool
	debug      bool
}

// Package-level flag variables
var (
	flagRecord     entry
	flagConfigPath string
	flagOutPath    string
	flagReadPath   string
	flagFormat     string
	flagBlockAbove int
	flagTLV        bool
	flagDebug      bool
)

func init() {
	flag.StringVar(&flagConfigPath, "config", "", "TOML composition file with one or more records")
	flag.StringVar(&flagRecord.Type, "type", "text", "Record type for a single record composed from flags")
	flag.StringVar(&flagRecord.Text, "text", "", "Record text, URL or hex payload")
	flag.StringVar(&flagRecord.URL, "url", "", "Smart poster URL")
	flag.StringVar(&flagRecord.MediaType, "media-type", "", "MIME record media type (detected from -file if empty)")
	flag.StringVar(&flagRecord.ExternalType, "external-type", "", "External record type (domain:name)")
	flag.StringVar(&flagRecord.Lang, "lang", "", "Text record language")
	flag.StringVar(&flagRecord.Encoding, "encoding", "", "Text encoding (utf-8, utf-16, utf-16le, utf-16be)")
	flag.StringVar(&flagRecord.ID, "id", "", "Record ID")
	flag.StringVar(&flagRecord.File, "file", "", "File to use as the record payload")
	flag.StringVar(&flagOutPath, "out", "", "Write the message to this tag dump file")
	flag.StringVar(&flagReadPath, "read", "", "Decode the records in this tag dump file")
	flag.StringVar(&flagFormat, "format", formatHex, "Message dump format: hex, base64 or none")
	flag.IntVar(&flagBlockAbove, "block-above", 0, "Refuse to write messages larger than this many bytes (0 disables)")
	flag.BoolVar(&flagTLV, "tlv", false, "Wrap written messages in a type 2 tag NDEF TLV")
	flag.BoolVar(&flagDebug, "debug", false, "Enable debug logging")
}

func parseConfig() *config {
	return &config{
		record:     flagRecord,
		configPath: flagConfigPath,
		outPath:    flagOutPath,
		readPath:   flagReadPath,
		format:     flagFormat,
		blockAbove: flagBlockAbove,
		tlv:        flagTLV,
		debug:      flagDebug,
	}
}

func setupLogging(debug bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// compose loads the records to build and the size policy that applies.
func compose(cfg *config) ([]entry, *session.Config, error) {
	if cfg.configPath == "" {
		sc := session.DefaultConfig()
		sc.BlockAbove = cfg.blockAbove
		return []entry{cfg.record}, sc, nil
	}

	comp, err := loadComposition(cfg.configPath)
	if err != nil {
		return nil, nil, err
	}
	sc := comp.Policy.sessionConfig()
	if cfg.blockAbove > 0 {
		sc.BlockAbove = cfg.blockAbove
	}
	return comp.Records, sc, nil
}

func runComposeMode(ctx context.Context, cfg *config, out io.Writer) error {
	entries, sessionConfig, err := compose(cfg)
	if err != nil {
		return err
	}

	sess := session.NewSession(newFileTransport(cfg.outPath, cfg.tlv), sessionConfig)
	defer func() {
		if err := sess.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close session")
		}
	}()

	for i, e := range entries {
		in, err := e.input()
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if _, err := sess.Add(in); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}

	records := sess.Records()
	printRecords(out, records)
	if err := printSummary(out, records, cfg.format); err != nil {
		return err
	}

	if cfg.outPath == "" {
		return nil
	}
	if err := sess.Write(ctx); err != nil {
		return fmt.Errorf("write operation failed: %w", err)
	}
	_, _ = fmt.Fprintf(out, "wrote %s\n", cfg.outPath)
	return nil
}

func runReadMode(ctx context.Context, cfg *config, out io.Writer) error {
	sess := session.NewSession(newFileTransport(cfg.readPath, false), session.DefaultConfig())
	defer func() {
		if err := sess.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close session")
		}
	}()

	events := make(chan ndefkit.TagEvent, 1)
	sess.SetOnTagRead(func(ev ndefkit.TagEvent) {
		select {
		case events <- ev:
		default:
		}
	})
	if err := sess.StartScan(ctx); err != nil {
		return err
	}

	select {
	case ev := <-events:
		if ev.Err != nil {
			return fmt.Errorf("failed to read %s: %w", ev.SerialNumber, ev.Err)
		}
		_, _ = fmt.Fprintf(out, "tag %s: %d records\n", ev.SerialNumber, len(ev.Records))
		printRecords(out, ev.Records)
		return printSummary(out, ev.Records, cfg.format)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func run(ctx context.Context, cfg *config, out io.Writer) error {
	if !validFormat(cfg.format) {
		return fmt.Errorf("unknown output format: %s", cfg.format)
	}
	if cfg.readPath != "" {
		return runReadMode(ctx, cfg, out)
	}
	return runComposeMode(ctx, cfg, out)
}

func main() {
	flag.Parse()
	os.Exit(mainWithExitCode())
}

func mainWithExitCode() int {
	cfg := parseConfig()
	setupLogging(cfg.debug)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := run(ctx, cfg, os.Stdout); err != nil {
		if errors.Is(err, context.Canceled) {
			return 0
		}
		var verr *ndefkit.ValidationError
		if errors.As(err, &verr) {
			for _, f := range verr.Fields {
				log.Debug().Str("field", f.Field).Str("record_type", verr.RecordType).Msg(f.Message)
			}
		}
		log.Error().Err(err).Msg("ndefcompose failed")
		return 1
	}
	return 0
}
