// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config provides the settings of an xr application,
// loaded from TOML or YAML files and reloaded when they change.
package config

import (
	"log/slog"

	"cogentcore.org/xr/app"
	"cogentcore.org/xr/base/errors"
	"cogentcore.org/xr/base/iox"
	_ "cogentcore.org/xr/base/iox/tomlx"
	_ "cogentcore.org/xr/base/iox/yamlx"
	"cogentcore.org/xr/base/logx"
	"cogentcore.org/xr/base/reflectx"
	"cogentcore.org/xr/render"
	"github.com/jinzhu/copier"
)

// ErrFormat is returned for config files with an unknown extension.
var ErrFormat = iox.ErrFormat

// Config is the full set of settings of an xr application.
type Config struct {

	// Title is the window title.
	Title string `default:"xr"`

	// Width is the width of the window or viewport in pixels.
	Width int `default:"1280" min:"1"`

	// Height is the height of the window or viewport in pixels.
	Height int `default:"720" min:"1"`

	// Window opens a native window. Without it frames are
	// rendered to a recording device.
	Window bool

	// Sky is an optional panorama image file lighting the scene.
	Sky string

	// Frames is the number of frames to render before exiting,
	// 0 to run until closed.
	Frames int

	// Render are the render engine settings.
	Render render.Options

	// App are the frame driver settings.
	App app.Options

	// Log are the logging settings.
	Log Log
}

// Log are the logging settings.
type Log struct {

	// Verbose logs info messages.
	Verbose bool

	// VeryVerbose logs debug messages.
	VeryVerbose bool

	// Quiet only logs errors.
	Quiet bool
}

// Level returns the log level selected by the settings.
func (l *Log) Level() slog.Level {
	return logx.LevelFromFlags(l.VeryVerbose, l.Verbose, l.Quiet)
}

// New returns a new config with default values.
func New() *Config {
	c := &Config{}
	c.Defaults()
	return c
}

// Defaults sets all fields to their default values.
func (c *Config) Defaults() {
	*c = Config{}
	errors.Log(reflectx.SetFromDefaultTags(c))
}

// Validate clamps values to their valid ranges.
func (c *Config) Validate() {
	c.Width = max(c.Width, 1)
	c.Height = max(c.Height, 1)
	c.Render.MaxTextureSlots = max(c.Render.MaxTextureSlots, 1)
	c.App.FPS = max(c.App.FPS, 1)
	c.Frames = max(c.Frames, 0)
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	nc := &Config{}
	errors.Log(copier.CopyWithOption(nc, c, copier.Option{DeepCopy: true}))
	return nc
}

// Open reads the config from the given file on top of its current
// values, by the file extension: .toml, .yaml or .yml.
func (c *Config) Open(filename string) error {
	if err := iox.OpenFile(c, filename); err != nil {
		return errors.Errorf("config: open: %w", err)
	}
	c.Validate()
	return nil
}

// Save writes the config to the given file by the file extension.
func (c *Config) Save(filename string) error {
	if err := iox.SaveFile(c, filename); err != nil {
		return errors.Errorf("config: save: %w", err)
	}
	return nil
}

// Load returns a new config with default values overridden by
// the given file.
func Load(filename string) (*Config, error) {
	c := New()
	if err := c.Open(filename); err != nil {
		return nil, err
	}
	return c, nil
}
