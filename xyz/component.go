// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

// Component is an object attached to a host object to extend it.
// A component has at most one host at a time.
type Component interface {
	Object

	// AsComponent returns the embedded [ComponentBase].
	AsComponent() *ComponentBase

	// OnAttach is called after the component is attached to host.
	OnAttach(host Object)

	// OnDetach is called after the component is detached from host.
	OnDetach(host Object)
}

// RenderUpdater is implemented by components that need a per-frame update.
type RenderUpdater interface {
	RenderUpdate(ctx *RenderContext)
}

// Resetter is a component with state to reset when the scene
// is stopped.
type Resetter interface {
	Reset()
}

// UpdatePrioritizer is optionally implemented by a [RenderUpdater]
// to control its scheduling group in an [UpdateManager].
// Lower priorities run first.
type UpdatePrioritizer interface {
	UpdatePriority() int
}

// ComponentBase is the base implementation of [Component].
type ComponentBase struct {
	ObjectBase `copier:"-"`

	host Object
}

func (cb *ComponentBase) AsComponent() *ComponentBase {
	return cb
}

// Host returns the object the component is attached to, or nil.
func (cb *ComponentBase) Host() Object {
	return cb.host
}

func (cb *ComponentBase) OnAttach(host Object) {}

func (cb *ComponentBase) OnDetach(host Object) {}

// Detach removes the component from its host, if any.
func (cb *ComponentBase) Detach() {
	if cb.host != nil {
		cb.host.AsObject().RemoveComponent(cb.This.(Component))
	}
}

// UpdateFunc is a [Component] that calls a function every frame.
type UpdateFunc struct {
	ComponentBase

	// Func is called with the host and the frame context.
	Func func(host Object, ctx *RenderContext)

	// Priority is the update priority.
	Priority int
}

// NewUpdateFunc returns a new [UpdateFunc] component.
func NewUpdateFunc(fn func(host Object, ctx *RenderContext)) *UpdateFunc {
	uf := &UpdateFunc{Func: fn}
	uf.InitObject(uf)
	return uf
}

func (uf *UpdateFunc) RenderUpdate(ctx *RenderContext) {
	if uf.Func != nil && uf.host != nil {
		uf.Func(uf.host, ctx)
	}
}

func (uf *UpdateFunc) UpdatePriority() int {
	return uf.Priority
}
