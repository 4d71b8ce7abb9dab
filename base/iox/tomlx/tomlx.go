// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tomlx is the TOML [iox.Format], registered for .toml files.
package tomlx

import (
	"io"

	"github.com/pelletier/go-toml/v2"

	"cogentcore.org/xr/base/iox"
)

// Format is the TOML format.
var Format = &iox.Format{Name: "toml", Decoder: NewDecoder, Encoder: NewEncoder}

func init() {
	iox.RegisterFormat(Format, ".toml")
}

// NewDecoder returns a TOML decoder that rejects unknown fields.
func NewDecoder(r io.Reader) iox.Decoder {
	return toml.NewDecoder(r).DisallowUnknownFields()
}

// NewEncoder returns a TOML encoder with indented tables.
func NewEncoder(w io.Writer) iox.Encoder {
	return toml.NewEncoder(w).SetIndentTables(true).SetArraysMultiline(true)
}

// Open reads v from a TOML file.
func Open(v any, filename string) error {
	return iox.Open(v, filename, NewDecoder)
}

// Save writes v to a TOML file.
func Save(v any, filename string) error {
	return iox.Save(v, filename, NewEncoder)
}

// ReadBytes reads v from TOML data.
func ReadBytes(v any, data []byte) error {
	return iox.ReadBytes(v, data, NewDecoder)
}

// WriteBytes returns the TOML encoding of v.
func WriteBytes(v any) ([]byte, error) {
	return iox.WriteBytes(v, NewEncoder)
}
