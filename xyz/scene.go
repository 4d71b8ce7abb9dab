// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"slices"
)

// ChangeListener receives the changes of all nodes of a scene.
type ChangeListener interface {
	OnObjectChanged(n Node, change ObjectChange)
}

// ChangeListenerFunc is a function adapter for [ChangeListener].
type ChangeListenerFunc func(n Node, change ObjectChange)

func (f ChangeListenerFunc) OnObjectChanged(n Node, change ObjectChange) {
	f(n, change)
}

// ListenerID identifies a registered [ChangeListener].
type ListenerID int

type listenerEntry struct {
	id ListenerID
	l  ChangeListener
}

// Scene is the root of a scene graph. Every node reachable from it
// reports its changes here, and the scene fans them out to its
// layers and its change listeners.
//
// Listeners are called on a snapshot of the listener list, so they
// may add or remove listeners, but modifying the tree structure from
// inside a listener panics with [ErrReentrantMutation].
type Scene struct {
	Group

	// Updater, if set, schedules the per-frame update of the scene
	// instead of the plain recursive update.
	Updater *UpdateManager `copier:"-"`

	version        int64
	contentVersion int64
	activeCamera   *Camera
	listeners      []listenerEntry
	lastListener   ListenerID
	notifying      int
	layers         *LayerManager
}

// NewScene returns a new empty scene with the default layers.
func NewScene(name string) *Scene {
	sc := &Scene{}
	sc.InitNode(sc)
	sc.Name = name
	sc.scene = sc
	sc.EnsureID()
	sc.layers = newLayerManager(sc)
	sc.layers.Add(LayerLights, func(n Node) bool { return n.IsLight() })
	sc.layers.Add(LayerCameras, func(n Node) bool {
		_, ok := n.(*Camera)
		return ok
	})
	return sc
}

// Version is incremented for every change received from the scene's
// nodes, except changes that only touch a transform. A changed version
// means cached render content must be rebuilt.
func (sc *Scene) Version() int64 {
	return sc.version
}

// ContentVersion is incremented when nodes or components are added
// or removed.
func (sc *Scene) ContentVersion() int64 {
	return sc.contentVersion
}

// Layers returns the layer manager.
func (sc *Scene) Layers() *LayerManager {
	return sc.layers
}

// IsNotifying returns whether a change notification is in progress.
func (sc *Scene) IsNotifying() bool {
	return sc.notifying > 0
}

// AddListener registers a change listener, returning its id.
func (sc *Scene) AddListener(l ChangeListener) ListenerID {
	sc.lastListener++
	sc.listeners = append(sc.listeners, listenerEntry{id: sc.lastListener, l: l})
	return sc.lastListener
}

// RemoveListener unregisters a change listener, returning whether it was found.
func (sc *Scene) RemoveListener(id ListenerID) bool {
	i := slices.IndexFunc(sc.listeners, func(e listenerEntry) bool { return e.id == id })
	if i < 0 {
		return false
	}
	sc.listeners = slices.Delete(sc.listeners, i, i+1)
	return true
}

// NotifyObjectChanged is called by the scene's nodes when they change.
func (sc *Scene) NotifyObjectChanged(n Node, change ObjectChange) {
	if !change.Type.IsTransformOnly() {
		sc.version++
		if change.IsAny(ChangeStructure) {
			sc.contentVersion++
		}
		sc.layers.objectChanged(n, change)
	}
	if len(sc.listeners) == 0 {
		return
	}
	snap := slices.Clone(sc.listeners)
	sc.notifying++
	defer func() { sc.notifying-- }()
	for _, e := range snap {
		e.l.OnObjectChanged(n, change)
	}
}

// ActiveCamera returns the camera used for rendering: the one set with
// [Scene.SetActiveCamera], or else the first camera in the scene.
func (sc *Scene) ActiveCamera() *Camera {
	if sc.activeCamera != nil && sc.activeCamera.scene == sc {
		return sc.activeCamera
	}
	sc.activeCamera = nil
	for _, n := range sc.layers.Layer(LayerCameras).Nodes() {
		sc.activeCamera = n.(*Camera)
		break
	}
	return sc.activeCamera
}

// SetActiveCamera sets the camera used for rendering, adding it
// to the scene if it is not part of it yet.
func (sc *Scene) SetActiveCamera(cam *Camera) {
	if cam.scene != sc {
		sc.AddChild(cam)
	}
	if sc.activeCamera == cam {
		return
	}
	sc.activeCamera = cam
	sc.NotifyChanged(ObjectChange{Type: ChangeRender, Target: cam})
}

// Update runs the per-frame update of every node of the scene,
// then brings all world matrices up to date.
func (sc *Scene) Update(ctx *RenderContext) {
	if ctx.Scene == nil {
		ctx.Scene = sc
	}
	if ctx.Camera == nil {
		ctx.Camera = sc.ActiveCamera()
	}
	if sc.Updater != nil {
		sc.Updater.Update(ctx)
	} else {
		sc.Group.Update(ctx)
	}
	sc.UpdateWorldMatrix(true, false)
}

// Reset resets every node of the scene, as when play is stopped.
func (sc *Scene) Reset() {
	sc.WalkDown(func(n Node) bool {
		n.AsNode().Reset()
		return Continue
	})
}

// Lights returns the lights of the scene.
func (sc *Scene) Lights() []Light {
	nodes := sc.layers.Layer(LayerLights).Nodes()
	lts := make([]Light, 0, len(nodes))
	for _, n := range nodes {
		lts = append(lts, n.(Light))
	}
	return lts
}

var _ Node = &Scene{}
