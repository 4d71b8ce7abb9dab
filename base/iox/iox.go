// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package iox opens and saves values with pluggable encodings,
// chosen explicitly or by filename extension. The tomlx and yamlx
// subpackages register their formats when imported.
package iox

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"cogentcore.org/xr/base/errors"
)

// Decoder decodes values from the reader it was created with.
type Decoder interface {
	Decode(v any) error
}

// Encoder encodes values to the writer it was created with.
// Encoders that also implement [io.Closer] are closed after encoding.
type Encoder interface {
	Encode(v any) error
}

// DecoderFunc returns a new [Decoder] reading from r.
type DecoderFunc func(r io.Reader) Decoder

// EncoderFunc returns a new [Encoder] writing to w.
type EncoderFunc func(w io.Writer) Encoder

// Format is a named encoding.
type Format struct {
	Name    string
	Decoder DecoderFunc
	Encoder EncoderFunc
}

// ErrFormat is returned for filenames without a registered format.
var ErrFormat = errors.New("iox: unknown file format")

var (
	formatsMu sync.RWMutex
	formats   = map[string]*Format{}
)

// RegisterFormat registers the format for the given extensions,
// which include the leading dot.
func RegisterFormat(f *Format, exts ...string) {
	formatsMu.Lock()
	defer formatsMu.Unlock()
	for _, ext := range exts {
		formats[strings.ToLower(ext)] = f
	}
}

// FormatOf returns the registered format for the extension of filename.
func FormatOf(filename string) (*Format, error) {
	formatsMu.RLock()
	defer formatsMu.RUnlock()
	f := formats[strings.ToLower(filepath.Ext(filename))]
	if f == nil {
		return nil, errors.Errorf("%w: %q", ErrFormat, filename)
	}
	return f, nil
}

// OpenFile reads v from the file in the format of its extension.
func OpenFile(v any, filename string) error {
	f, err := FormatOf(filename)
	if err != nil {
		return err
	}
	return Open(v, filename, f.Decoder)
}

// SaveFile writes v to the file in the format of its extension.
func SaveFile(v any, filename string) error {
	f, err := FormatOf(filename)
	if err != nil {
		return err
	}
	return Save(v, filename, f.Encoder)
}

// Open reads v from the file with the decoder.
func Open(v any, filename string, f DecoderFunc) error {
	fp, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	return Read(v, bufio.NewReader(fp), f)
}

// Read reads v from the reader with the decoder.
func Read(v any, r io.Reader, f DecoderFunc) error {
	return f(r).Decode(v)
}

// ReadBytes reads v from the data with the decoder.
func ReadBytes(v any, data []byte, f DecoderFunc) error {
	return Read(v, bytes.NewReader(data), f)
}

// Save writes v to the file with the encoder, replacing the file.
func Save(v any, filename string, f EncoderFunc) error {
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(fp)
	err = Write(v, bw, f)
	if err == nil {
		err = bw.Flush()
	}
	return errors.Join(err, fp.Close())
}

// Write writes v to the writer with the encoder.
func Write(v any, w io.Writer, f EncoderFunc) error {
	e := f(w)
	err := e.Encode(v)
	if c, ok := e.(io.Closer); ok {
		err = errors.Join(err, c.Close())
	}
	return err
}

// WriteBytes returns the encoding of v.
func WriteBytes(v any, f EncoderFunc) ([]byte, error) {
	var b bytes.Buffer
	if err := Write(v, &b, f); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
