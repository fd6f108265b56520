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
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ZaparooProject/go-ndefkit/pkg/ndef"
)

// Input is the loosely typed form a record is composed from. Which fields
// matter depends on RecordType; see Build.
type Input struct {
	// Data is a raw byte payload, e.g. an uploaded file. It takes priority
	// over Text for mime, external and unknown records.
	Data []byte `toml:"-"`
	// RecordType is a RecordType name, or a "domain:name" external type.
	RecordType   string `toml:"type" validate:"required"`
	ExternalType string `toml:"external_type"`
	MediaType    string `toml:"media_type"`
	ID           string `toml:"id"`
	Encoding     string `toml:"encoding"`
	Lang         string `toml:"lang"`
	Text         string `toml:"text"`
	// URL is the target of a smart-poster record; Text becomes its title.
	URL string `toml:"url"`
}

var inputValidator = newInputValidator()

func newInputValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("toml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(validateInputRecord, Input{})

	return v
}

// Build validates in and returns the record it describes. Nothing is built
// unless every check passes; failures come back as *ValidationError.
//
//	text          Text required; Lang and Encoding default to en/utf-8
//	url           Text required
//	absolute-url  Text required, becomes the type field
//	mime          MediaType and Data or Text required
//	smart-poster  URL must be absolute; Text is an optional title
//	external      "domain:name" type; Data or Text required
//	unknown       Data or Text required; "0x..." text is hex
//	empty         nothing
func Build(in Input) (Record, error) {
	if err := inputValidator.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, newValidationError(in, verrs)
		}
		return nil, fmt.Errorf("validate input: %w", err)
	}

	kind, externalType := in.resolveType()
	switch kind {
	case TypeEmpty:
		return EmptyRecord{}, nil
	case TypeText:
		return in.textRecord(), nil
	case TypeURL:
		return URLRecord{ID: in.ID, URL: in.Text}, nil
	case TypeAbsoluteURL:
		return AbsoluteURLRecord{ID: in.ID, URL: in.Text}, nil
	case TypeMIME:
		rec := MIMERecord{ID: in.ID, MediaType: in.MediaType, Payload: in.payload()}
		if rec.Payload.IsText() && IsTextMediaType(in.MediaType) {
			rec.Encoding = NormalizeEncoding(in.Encoding)
		}
		return rec, nil
	case TypeSmartPoster:
		sp := SmartPosterRecord{ID: in.ID, URL: URLRecord{URL: in.URL}}
		if in.Text != "" {
			title := in.textRecord()
			title.ID = ""
			sp.Title = &title
		}
		return sp, nil
	case TypeExternal:
		rec := ExternalRecord{ID: in.ID, Type: externalType, Payload: in.payload()}
		if rec.Payload.IsText() {
			rec.Encoding = NormalizeEncoding(in.Encoding)
		}
		return rec, nil
	case TypeUnknown:
		if in.Data == nil && isHexText(in.Text) {
			data, err := HexToBuffer(in.Text)
			if err != nil {
				return nil, err
			}
			return UnknownRecord{ID: in.ID, Payload: BytesPayload(data)}, nil
		}
		rec := UnknownRecord{ID: in.ID, Payload: in.payload()}
		if rec.Payload.IsText() {
			rec.Encoding = NormalizeEncoding(in.Encoding)
		}
		return rec, nil
	}
	return nil, fmt.Errorf("%w: record type %q", ErrUnsupportedRecord, kind)
}

// IsExternalType reports whether s has the "domain:name" shape: exactly one
// colon with text on both sides.
func IsExternalType(s string) bool {
	domain, name, ok := strings.Cut(s, ":")
	return ok && domain != "" && name != "" && !strings.Contains(name, ":")
}

// resolveType maps the selector to a record type and, for external records,
// the "domain:name" type string.
func (in Input) resolveType() (RecordType, string) {
	switch kind := RecordType(strings.ToLower(strings.TrimSpace(in.RecordType))); kind {
	case TypeEmpty, TypeText, TypeURL, TypeAbsoluteURL, TypeMIME, TypeSmartPoster, TypeUnknown:
		return kind, ""
	case TypeExternal:
		return TypeExternal, in.ExternalType
	}
	if IsExternalType(in.RecordType) {
		return TypeExternal, in.RecordType
	}
	return RecordType(in.RecordType), ""
}

func (in Input) textRecord() TextRecord {
	lang := in.Lang
	if lang == "" {
		lang = DefaultLang
	}
	return TextRecord{ID: in.ID, Text: in.Text, Lang: lang, Encoding: NormalizeEncoding(in.Encoding)}
}

func (in Input) payload() Payload {
	if in.Data != nil {
		return BytesPayload(in.Data)
	}
	if in.Text != "" {
		return TextPayload(in.Text)
	}
	return Payload{}
}

func validateInputRecord(sl validator.StructLevel) {
	in, ok := sl.Current().Interface().(Input)
	if !ok || in.RecordType == "" {
		return
	}

	requireText := func() {
		if in.Text == "" {
			sl.ReportError(in.Text, "text", "Text", "required", "")
		}
	}
	requirePayload := func() {
		if in.Data == nil && in.Text == "" {
			sl.ReportError(in.Text, "text", "Text", "required_without", "data")
		}
	}
	// Fields below are checked only for record types that carry them.
	checkID := func() {
		if len(in.ID) > ndef.MaxFieldLen {
			sl.ReportError(in.ID, "id", "ID", "maxbytes", strconv.Itoa(ndef.MaxFieldLen))
		}
	}
	checkEncoding := func() {
		if in.Encoding != "" && !isSupportedEncoding(NormalizeEncoding(in.Encoding)) {
			sl.ReportError(in.Encoding, "encoding", "Encoding", "encoding", "")
		}
	}
	checkLang := func() {
		if len(in.Lang) > ndef.MaxLanguageLength {
			sl.ReportError(in.Lang, "lang", "Lang", "maxbytes", strconv.Itoa(ndef.MaxLanguageLength))
		}
	}

	kind, externalType := in.resolveType()
	switch kind {
	case TypeEmpty:
	case TypeText:
		requireText()
		checkID()
		checkLang()
		checkEncoding()
	case TypeURL:
		requireText()
		checkID()
	case TypeAbsoluteURL:
		requireText()
		checkID()
		if len(in.Text) > ndef.MaxFieldLen {
			sl.ReportError(in.Text, "text", "Text", "maxbytes", strconv.Itoa(ndef.MaxFieldLen))
		}
	case TypeMIME:
		switch {
		case in.MediaType == "":
			sl.ReportError(in.MediaType, "media_type", "MediaType", "required", "")
		case len(in.MediaType) > ndef.MaxFieldLen:
			sl.ReportError(in.MediaType, "media_type", "MediaType", "maxbytes", strconv.Itoa(ndef.MaxFieldLen))
		}
		requirePayload()
		checkID()
		checkEncoding()
	case TypeSmartPoster:
		switch {
		case in.URL == "":
			sl.ReportError(in.URL, "url", "URL", "required", "")
		case !isAbsoluteURL(in.URL):
			sl.ReportError(in.URL, "url", "URL", "absurl", "")
		}
		checkID()
		if in.Text != "" {
			checkLang()
			checkEncoding()
		}
	case TypeExternal:
		if !IsExternalType(externalType) {
			sl.ReportError(externalType, "external_type", "ExternalType", "externaltype", "")
		} else if len(externalType) > ndef.MaxFieldLen {
			sl.ReportError(externalType, "external_type", "ExternalType", "maxbytes", strconv.Itoa(ndef.MaxFieldLen))
		}
		requirePayload()
		checkID()
		checkEncoding()
	case TypeUnknown:
		requirePayload()
		checkID()
		checkEncoding()
		if in.Data == nil && isHexText(in.Text) {
			if _, err := HexToBuffer(in.Text); err != nil {
				sl.ReportError(in.Text, "text", "Text", "hexdata", "")
			}
		}
	default:
		sl.ReportError(in.RecordType, "type", "RecordType", "recordtype", "")
	}
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.IsAbs() && (u.Host != "" || u.Opaque != "")
}

func newValidationError(in Input, errs validator.ValidationErrors) *ValidationError {
	recordType := in.RecordType
	if kind, _ := in.resolveType(); kind != "" {
		recordType = string(kind)
	}

	ve := &ValidationError{
		RecordType: recordType,
		Fields:     make([]FieldError, len(errs)),
	}
	for i, fe := range errs {
		ve.Fields[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: fieldMessage(recordType, fe),
		}
	}
	return ve
}

func fieldMessage(recordType string, fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		if recordType == "" {
			return field + " is required"
		}
		return fmt.Sprintf("%s is required for %s records", field, recordType)
	case "required_without":
		return fmt.Sprintf("%s or %s is required for %s records", field, fe.Param(), recordType)
	case "maxbytes":
		return fmt.Sprintf("%s must be at most %s bytes", field, fe.Param())
	case "encoding":
		return fmt.Sprintf("%s %q is not a supported encoding", field, fe.Value())
	case "externaltype":
		return fmt.Sprintf("%s %q must have the form domain:name", field, fe.Value())
	case "absurl":
		return fmt.Sprintf("%s %q must be an absolute URL", field, fe.Value())
	case "hexdata":
		return fmt.Sprintf("%s must be hex digits after %s", field, HexPrefix)
	case "recordtype":
		return fmt.Sprintf("record type %q is not supported", fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
