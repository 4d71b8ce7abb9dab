// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package yamlx is the YAML [iox.Format], registered for .yaml
// and .yml files.
package yamlx

import (
	"io"

	"gopkg.in/yaml.v3"

	"cogentcore.org/xr/base/iox"
)

// Format is the YAML format.
var Format = &iox.Format{Name: "yaml", Decoder: NewDecoder, Encoder: NewEncoder}

func init() {
	iox.RegisterFormat(Format, ".yaml", ".yml")
}

// NewDecoder returns a YAML decoder that rejects unknown fields.
func NewDecoder(r io.Reader) iox.Decoder {
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	return d
}

// NewEncoder returns a YAML encoder indenting by two spaces.
func NewEncoder(w io.Writer) iox.Encoder {
	e := yaml.NewEncoder(w)
	e.SetIndent(2)
	return e
}

// Open reads v from a YAML file.
func Open(v any, filename string) error {
	return iox.Open(v, filename, NewDecoder)
}

// Save writes v to a YAML file.
func Save(v any, filename string) error {
	return iox.Save(v, filename, NewEncoder)
}

// ReadBytes reads v from YAML data.
func ReadBytes(v any, data []byte) error {
	return iox.ReadBytes(v, data, NewDecoder)
}

// WriteBytes returns the YAML encoding of v.
func WriteBytes(v any) ([]byte, error) {
	return iox.WriteBytes(v, NewEncoder)
}
