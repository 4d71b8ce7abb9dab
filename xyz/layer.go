// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"slices"
)

// Names of the layers every scene starts with.
const (
	LayerLights  = "lights"
	LayerCameras = "cameras"
)

// LayerChangeTypes are the kinds of incremental layer change.
type LayerChangeTypes int32

const (
	// LayerAdded is sent after a node joined the layer.
	LayerAdded LayerChangeTypes = iota

	// LayerRemoved is sent after a node left the layer.
	LayerRemoved
)

func (lc LayerChangeTypes) String() string {
	if lc == LayerRemoved {
		return "Removed"
	}
	return "Added"
}

// LayerChange describes a node joining or leaving a [Layer].
type LayerChange struct {
	Type LayerChangeTypes
	Node Node
}

// LayerFunc is called on incremental changes to a [Layer].
type LayerFunc func(ly *Layer, change LayerChange)

// Layer is a named, ordered subset of the nodes of a scene selected
// by a filter. It is kept up to date as nodes join and leave the scene.
//
// The layer version is incremented on every membership change, and
// also when a member changes in a way that affects rendering. Add and
// remove are reported to the layer funcs, so that a consumer can apply
// them incrementally; any other version change needs a full rebuild.
type Layer struct {

	// Name is the unique name of the layer within its scene.
	Name string

	filter  func(n Node) bool
	nodes   []Node
	index   map[ObjectID]struct{}
	version int64
	funcs   []LayerFunc
	scene   *Scene
}

// Scene returns the scene the layer belongs to.
func (ly *Layer) Scene() *Scene {
	return ly.scene
}

// Nodes returns the members in the order they joined.
// The slice must not be modified.
func (ly *Layer) Nodes() []Node {
	return ly.nodes
}

// Len returns the number of members.
func (ly *Layer) Len() int {
	return len(ly.nodes)
}

// Version returns the layer version.
func (ly *Layer) Version() int64 {
	return ly.version
}

// Contains returns whether n is a member.
func (ly *Layer) Contains(n Node) bool {
	_, ok := ly.index[n.AsObject().ID()]
	return ok
}

// Matches returns whether n passes the layer filter.
func (ly *Layer) Matches(n Node) bool {
	return ly.filter == nil || ly.filter(n)
}

// OnChange registers a function called after each member is added
// or removed.
func (ly *Layer) OnChange(fn LayerFunc) {
	ly.funcs = append(ly.funcs, fn)
}

func (ly *Layer) add(n Node) {
	ly.nodes = append(ly.nodes, n)
	ly.index[n.AsObject().ID()] = struct{}{}
	ly.version++
	ly.send(LayerChange{Type: LayerAdded, Node: n})
}

func (ly *Layer) remove(n Node) {
	delete(ly.index, n.AsObject().ID())
	if i := slices.Index(ly.nodes, n); i >= 0 {
		ly.nodes = slices.Delete(ly.nodes, i, i+1)
	}
	ly.version++
	ly.send(LayerChange{Type: LayerRemoved, Node: n})
}

func (ly *Layer) send(change LayerChange) {
	for _, fn := range slices.Clone(ly.funcs) {
		fn(ly, change)
	}
}

// populate adds every matching node currently in the scene, excluding the root.
func (ly *Layer) populate() {
	ly.scene.WalkDown(func(n Node) bool {
		if n != Node(ly.scene) && ly.Matches(n) && !ly.Contains(n) {
			ly.nodes = append(ly.nodes, n)
			ly.index[n.AsObject().ID()] = struct{}{}
		}
		return Continue
	})
	ly.version++
}

// LayerManager holds the layers of a scene.
type LayerManager struct {
	scene  *Scene
	layers []*Layer
}

func newLayerManager(sc *Scene) *LayerManager {
	return &LayerManager{scene: sc}
}

// Add creates a layer with the given name and filter, populated from
// the nodes already in the scene. A nil filter selects every node.
// If a layer with the name exists it is returned unchanged.
func (lm *LayerManager) Add(name string, filter func(n Node) bool) *Layer {
	if ly := lm.Layer(name); ly != nil {
		return ly
	}
	ly := &Layer{Name: name, filter: filter, index: map[ObjectID]struct{}{}, scene: lm.scene}
	ly.populate()
	lm.layers = append(lm.layers, ly)
	return ly
}

// Layer returns the layer with the given name, or nil.
func (lm *LayerManager) Layer(name string) *Layer {
	for _, ly := range lm.layers {
		if ly.Name == name {
			return ly
		}
	}
	return nil
}

// Layers returns all layers. The slice must not be modified.
func (lm *LayerManager) Layers() []*Layer {
	return lm.layers
}

// Remove deletes the layer with the given name, returning whether it existed.
func (lm *LayerManager) Remove(name string) bool {
	i := slices.IndexFunc(lm.layers, func(ly *Layer) bool { return ly.Name == name })
	if i < 0 {
		return false
	}
	lm.layers = slices.Delete(lm.layers, i, i+1)
	return true
}

// layerContentChanges are the member changes that advance a layer version.
const layerContentChanges = ChangeRender | ChangeVisibility | ChangeGeometry | ChangeComponents

func (lm *LayerManager) objectChanged(n Node, change ObjectChange) {
	nb := n.AsNode()
	for _, ly := range lm.layers {
		in := ly.Contains(n)
		switch {
		case change.Has(ChangeSceneRemove) && nb.scene != lm.scene:
			if in {
				ly.remove(n)
			}
		case change.Has(ChangeSceneAdd) && nb.scene == lm.scene:
			if !in && ly.Matches(n) {
				ly.add(n)
			}
		case in && change.IsAny(layerContentChanges):
			ly.version++
		}
	}
}
