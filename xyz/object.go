// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"reflect"
	"slices"
)

// Object is the interface implemented by every engine object:
// scene nodes, materials, shaders, geometry, textures and components.
// Concrete types embed [ObjectBase] and set its This field
// (see [ObjectBase.InitObject]) so that virtual methods dispatch
// to the outermost type.
type Object interface {

	// AsObject returns the embedded [ObjectBase].
	AsObject() *ObjectBase

	// OnChanged is called for every change delivered to the object,
	// after batching. The default does nothing beyond invoking the
	// registered change funcs; nodes forward to their scene.
	OnChanged(change ObjectChange)

	// Update is called once per frame from the scene update.
	Update(ctx *RenderContext)

	// Dispose releases everything owned by the object.
	Dispose()
}

// Disposer is implemented by components and property values that own
// resources to release when their host is disposed.
type Disposer interface {
	Dispose()
}

// ChangeFunc is a function called when an object changes.
type ChangeFunc func(obj Object, change ObjectChange)

// ObjectBase is the base implementation of [Object]. It provides
// a lazily assigned id, a render version counter, components,
// dynamic properties and change batching.
type ObjectBase struct {

	// This is the outermost object, used for virtual dispatch.
	This Object `copier:"-" json:"-"`

	// Name is a user-facing name, not required to be unique.
	Name string

	id          ObjectID
	version     int64
	updateCount int
	pending     []ObjectChange
	changeFuncs []ChangeFunc
	props       map[string]any
	components  []Component
	updaters    []RenderUpdater
	source      VertexSource
	disposed    bool
}

// InitObject sets This, which must be called by every constructor.
func (ob *ObjectBase) InitObject(this Object) {
	ob.This = this
}

func (ob *ObjectBase) AsObject() *ObjectBase {
	return ob
}

// EnsureID assigns a fresh id if none has been assigned yet.
func (ob *ObjectBase) EnsureID() {
	if !ob.id.IsValid() {
		ob.id = NewObjectID()
	}
}

// ID returns the object id, assigning one if needed.
func (ob *ObjectBase) ID() ObjectID {
	ob.EnsureID()
	return ob.id
}

// Version is incremented for every change carrying [ChangeRender],
// and is used to invalidate cached GPU resources.
func (ob *ObjectBase) Version() int64 {
	return ob.version
}

// IsDisposed returns whether Dispose has been called.
func (ob *ObjectBase) IsDisposed() bool {
	return ob.disposed
}

// BeginUpdate starts a batch: changes are queued until the matching
// [ObjectBase.EndUpdate]. Batches nest.
func (ob *ObjectBase) BeginUpdate() {
	ob.updateCount++
}

// EndUpdate ends a batch, delivering the queued changes in order
// once the outermost batch ends. Consecutive identical changes are
// delivered once.
func (ob *ObjectBase) EndUpdate() {
	if ob.updateCount == 0 {
		return
	}
	ob.updateCount--
	if ob.updateCount > 0 || len(ob.pending) == 0 {
		return
	}
	pend := ob.pending
	ob.pending = nil
	var last *ObjectChange
	for i := range pend {
		ch := pend[i]
		if last != nil && last.Type == ch.Type && sameTarget(last.Target, ch.Target) && last.Property == ch.Property {
			continue
		}
		last = &pend[i]
		ob.deliver(ch)
	}
}

// sameTarget reports whether two change targets are equal,
// treating targets that cannot be compared as different.
func sameTarget(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() || !vb.Comparable() {
		return false
	}
	return a == b
}

// NotifyChanged reports a change on this object.
// Inside a batch the change is queued, otherwise it is
// delivered to This.OnChanged immediately.
func (ob *ObjectBase) NotifyChanged(change ObjectChange) {
	if ob.updateCount > 0 {
		ob.pending = append(ob.pending, change)
		return
	}
	ob.deliver(change)
}

func (ob *ObjectBase) deliver(change ObjectChange) {
	if change.IsAny(ChangeRender) {
		ob.version++
	}
	if ob.This != nil {
		ob.This.OnChanged(change)
	} else {
		ob.OnChanged(change)
	}
}

// OnChanged invokes the registered change funcs.
func (ob *ObjectBase) OnChanged(change ObjectChange) {
	if len(ob.changeFuncs) == 0 {
		return
	}
	self := ob.This
	if self == nil {
		self = ob
	}
	for _, fn := range slices.Clone(ob.changeFuncs) {
		fn(self, change)
	}
}

// OnChange registers a function called after every delivered change.
func (ob *ObjectBase) OnChange(fn ChangeFunc) {
	ob.changeFuncs = append(ob.changeFuncs, fn)
}

// Prop returns the dynamic property of the given name.
func (ob *ObjectBase) Prop(name string) (any, bool) {
	v, ok := ob.props[name]
	return v, ok
}

// SetProp sets a dynamic property and notifies [ChangeProperty].
func (ob *ObjectBase) SetProp(name string, value any) {
	if ob.props == nil {
		ob.props = make(map[string]any)
	}
	ob.props[name] = value
	ob.NotifyChanged(ObjectChange{Type: ChangeProperty, Property: name})
}

// DeleteProp removes a dynamic property, returning whether it existed.
func (ob *ObjectBase) DeleteProp(name string) bool {
	if _, ok := ob.props[name]; !ok {
		return false
	}
	delete(ob.props, name)
	ob.NotifyChanged(ObjectChange{Type: ChangeProperty, Property: name})
	return true
}

// PropValue returns the property of the given name as a T,
// and false if it is missing or of a different type.
func PropValue[T any](obj Object, name string) (T, bool) {
	v, ok := obj.AsObject().props[name]
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// Components returns the attached components, in attach order.
// The returned slice must not be modified.
func (ob *ObjectBase) Components() []Component {
	return ob.components
}

// ComponentsOf returns the components of obj that implement T.
func ComponentsOf[T any](obj Object) []T {
	var res []T
	for _, c := range obj.AsObject().components {
		if t, ok := c.(T); ok {
			res = append(res, t)
		}
	}
	return res
}

// ComponentOf returns the first component of obj that implements T.
func ComponentOf[T any](obj Object) (T, bool) {
	for _, c := range obj.AsObject().components {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// Updaters returns the components that implement [RenderUpdater].
func (ob *ObjectBase) Updaters() []RenderUpdater {
	return ob.updaters
}

// VertexSource returns the vertex source of this object: the object
// itself for a [Mesh], or the first component implementing
// [VertexSource]. It returns nil if there is none.
func (ob *ObjectBase) VertexSource() VertexSource {
	return ob.source
}

// AddComponent attaches a component, detaching it first from any
// previous host. Adding a component already attached here does nothing.
func (ob *ObjectBase) AddComponent(c Component) {
	cb := c.AsComponent()
	host := ob.self()
	if cb.host == host {
		return
	}
	if cb.host != nil {
		cb.host.AsObject().RemoveComponent(c)
	}
	cb.EnsureID()
	ob.components = append(ob.components, c)
	if u, ok := c.(RenderUpdater); ok {
		ob.updaters = append(ob.updaters, u)
	}
	if vs, ok := c.(VertexSource); ok && ob.source == nil {
		ob.source = vs
	}
	cb.host = host
	c.OnAttach(host)
	ob.NotifyChanged(ObjectChange{Type: ChangeComponents | ChangeRender, Target: c})
}

// RemoveComponent detaches a component, returning whether it was attached.
func (ob *ObjectBase) RemoveComponent(c Component) bool {
	idx := slices.Index(ob.components, c)
	if idx < 0 {
		return false
	}
	ob.components = slices.Delete(ob.components, idx, idx+1)
	if u, ok := c.(RenderUpdater); ok {
		if i := slices.Index(ob.updaters, u); i >= 0 {
			ob.updaters = slices.Delete(ob.updaters, i, i+1)
		}
	}
	if vs, ok := c.(VertexSource); ok && ob.source == vs {
		ob.source = nil
		for _, oc := range ob.components {
			if ovs, ok := oc.(VertexSource); ok {
				ob.source = ovs
				break
			}
		}
	}
	cb := c.AsComponent()
	host := cb.host
	cb.host = nil
	c.OnDetach(host)
	ob.NotifyChanged(ObjectChange{Type: ChangeComponents | ChangeRender, Target: c})
	return true
}

// self returns This, or ob when it has not been initialized.
func (ob *ObjectBase) self() Object {
	if ob.This != nil {
		return ob.This
	}
	return ob
}

// Update runs the per-frame update of the attached [RenderUpdater]
// components, unless ctx.UpdateOnlySelf is set, in which case
// components are scheduled separately by an [UpdateManager].
func (ob *ObjectBase) Update(ctx *RenderContext) {
	if ctx.UpdateOnlySelf {
		return
	}
	for _, u := range ob.updaters {
		u.RenderUpdate(ctx)
	}
}

// Dispose disposes the components and any property values
// implementing [Disposer]. It is safe to call more than once.
func (ob *ObjectBase) Dispose() {
	if ob.disposed {
		return
	}
	ob.disposed = true
	for _, c := range slices.Clone(ob.components) {
		c.Dispose()
	}
	for _, v := range ob.props {
		if d, ok := v.(Disposer); ok {
			d.Dispose()
		}
	}
	ob.props = nil
}
