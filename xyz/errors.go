// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import "cogentcore.org/xr/base/errors"

var (
	// ErrReentrantMutation is the panic value when the scene tree is
	// structurally modified from inside a change notification.
	ErrReentrantMutation = errors.New("xyz: scene tree modified during change notification")

	// ErrCycle is the panic value when a node is added under itself
	// or one of its descendants.
	ErrCycle = errors.New("xyz: node cannot be added to its own subtree")
)
