// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"strconv"
	"sync/atomic"
)

// ObjectID is a process-unique identifier for an engine object.
// The zero value means no id has been assigned yet; see [ObjectBase.EnsureID].
type ObjectID uint64

// lastID is the last id handed out by [NewObjectID].
var lastID atomic.Uint64

// NewObjectID returns a fresh, never before used [ObjectID].
// It is safe to call from multiple goroutines.
func NewObjectID() ObjectID {
	return ObjectID(lastID.Add(1))
}

// IsValid returns whether the id has been assigned.
func (id ObjectID) IsValid() bool {
	return id != 0
}

func (id ObjectID) String() string {
	return "#" + strconv.FormatUint(uint64(id), 10)
}
