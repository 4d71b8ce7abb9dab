// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"log/slog"

	"cogentcore.org/xr/xyz"
)

// ResourceCache holds the GPU resources created for CPU side objects,
// keyed by [xyz.ObjectID]. An entry remembers the version of its
// object and is released and created again once the version advances,
// so resources follow the same invalidation as render content.
type ResourceCache struct {
	entries map[xyz.ObjectID]*cacheEntry

	// Created counts resource creations, for stats.
	Created int64
}

type cacheEntry struct {
	res     Resource
	version int64
}

// NewResourceCache returns an empty cache.
func NewResourceCache() *ResourceCache {
	return &ResourceCache{entries: map[xyz.ObjectID]*cacheEntry{}}
}

// GetResource returns the resource of obj, calling create when there is
// none or the object changed since it was created.
func GetResource[T Resource](rc *ResourceCache, obj xyz.Object, create func() (T, error)) (T, error) {
	ob := obj.AsObject()
	id := ob.ID()
	if e, ok := rc.entries[id]; ok {
		if e.version == ob.Version() {
			if r, ok := e.res.(T); ok {
				return r, nil
			}
		}
		e.res.Release()
		delete(rc.entries, id)
	}
	r, err := create()
	if err != nil {
		var zero T
		return zero, err
	}
	slog.Debug("render: created resource", "object", ob.Name, "id", id)
	rc.entries[id] = &cacheEntry{res: r, version: ob.Version()}
	rc.Created++
	return r, nil
}

// Len returns the number of cached resources.
func (rc *ResourceCache) Len() int {
	return len(rc.entries)
}

// Has returns whether there is a resource for the id.
func (rc *ResourceCache) Has(id xyz.ObjectID) bool {
	_, ok := rc.entries[id]
	return ok
}

// Release releases the resource of the id, if any.
func (rc *ResourceCache) Release(id xyz.ObjectID) {
	if e, ok := rc.entries[id]; ok {
		e.res.Release()
		delete(rc.entries, id)
	}
}

// Clear releases all resources.
func (rc *ResourceCache) Clear() {
	for id, e := range rc.entries {
		e.res.Release()
		delete(rc.entries, id)
	}
}
