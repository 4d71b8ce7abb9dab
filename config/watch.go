// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"log/slog"
	"path/filepath"

	"cogentcore.org/xr/base/errors"
	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file whenever it is written, calling
// a function with the new config.
type Watcher struct {

	// Filename is the watched config file.
	Filename string

	// Base is copied before each reload, so that values missing
	// from the file keep their Base values.
	Base *Config

	fn      func(c *Config)
	watcher *fsnotify.Watcher
}

// NewWatcher returns a new watcher for the given file, calling fn
// with each successfully reloaded config. The directory of the file
// is watched so that editors replacing the file are seen.
func NewWatcher(filename string, base *Config, fn func(c *Config)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Errorf("config: watch: %w", err)
	}
	abs, err := filepath.Abs(filename)
	if err != nil {
		fw.Close()
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, errors.Errorf("config: watch %q: %w", filename, err)
	}
	if base == nil {
		base = New()
	}
	return &Watcher{Filename: abs, Base: base, fn: fn, watcher: fw}, nil
}

// Run processes file events until the context is done or the
// watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return w.watcher.Close()
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.Filename || (!ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create)) {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("config: watch", "file", w.Filename, "err", err)
		}
	}
}

func (w *Watcher) reload() {
	c := w.Base.Clone()
	if err := c.Open(w.Filename); err != nil {
		// partial writes fail to parse and are followed by another event
		slog.Debug("config: reload", "file", w.Filename, "err", err)
		return
	}
	slog.Info("config: reloaded", "file", w.Filename)
	w.fn(c)
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
