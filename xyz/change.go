// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import "strings"

// ChangeTypes is a bit set describing what changed on an object.
// Composite flags such as [ChangeSceneAdd] always include their
// constituent bits, so use [ObjectChange.Has] to test for a composite
// and [ObjectChange.IsAny] to test for any overlap.
type ChangeTypes uint32

const (
	// ChangeVisibility is set when the visible flag changes.
	ChangeVisibility ChangeTypes = 1 << iota

	// ChangeParent is set when an object is attached or detached.
	ChangeParent

	// ChangeTransform is set when the local transform was mutated.
	// A change carrying only this bit does not advance the scene version.
	ChangeTransform

	// ChangeRender is set for any change that affects how an object is drawn.
	ChangeRender

	// ChangeGeometry is set when vertex data changes.
	ChangeGeometry

	// ChangeComponents is set when a component is added or removed.
	ChangeComponents

	// ChangeProperty is set when a dynamic property changes.
	ChangeProperty

	changeMaterialEnabled
	changeChildAdd
	changeChildRemove
	changeSceneAdd
	changeSceneRemove
)

const (
	// ChangeNone is the empty change set.
	ChangeNone ChangeTypes = 0

	// ChangeMaterialEnabled is set when a material is enabled or disabled.
	ChangeMaterialEnabled = changeMaterialEnabled | ChangeRender

	// ChangeChildAdd is sent by a group when a child is added.
	// The change target is the child.
	ChangeChildAdd = changeChildAdd

	// ChangeChildRemove is sent by a group when a child is removed.
	// The change target is the child.
	ChangeChildRemove = changeChildRemove

	// ChangeSceneAdd is sent by a node when it becomes reachable from a scene.
	ChangeSceneAdd = changeSceneAdd | ChangeParent

	// ChangeSceneRemove is sent by a node when it is no longer reachable
	// from the scene it was in.
	ChangeSceneRemove = changeSceneRemove | ChangeParent

	// ChangeStructure is the set of changes that alter the shape of the tree.
	ChangeStructure = ChangeChildAdd | ChangeChildRemove | ChangeSceneAdd | ChangeSceneRemove | ChangeComponents
)

var changeNames = []struct {
	flag ChangeTypes
	name string
}{
	{ChangeVisibility, "Visibility"},
	{ChangeParent, "Parent"},
	{ChangeTransform, "Transform"},
	{ChangeRender, "Render"},
	{ChangeGeometry, "Geometry"},
	{ChangeComponents, "Components"},
	{ChangeProperty, "Property"},
	{changeMaterialEnabled, "MaterialEnabled"},
	{changeChildAdd, "ChildAdd"},
	{changeChildRemove, "ChildRemove"},
	{changeSceneAdd, "SceneAdd"},
	{changeSceneRemove, "SceneRemove"},
}

// HasFlag returns whether all of the given bits are set.
func (ct ChangeTypes) HasFlag(f ChangeTypes) bool {
	return ct&f == f
}

// IsTransformOnly returns whether the only bit set is [ChangeTransform].
func (ct ChangeTypes) IsTransformOnly() bool {
	return ct == ChangeTransform
}

func (ct ChangeTypes) String() string {
	if ct == ChangeNone {
		return "None"
	}
	var names []string
	for _, cn := range changeNames {
		if ct&cn.flag != 0 {
			names = append(names, cn.name)
		}
	}
	return strings.Join(names, "|")
}

// ObjectChange describes a change that happened on an object.
type ObjectChange struct {

	// Type is the set of change flags.
	Type ChangeTypes

	// Target is the object the change is about, when it is not the
	// sender itself: the child for [ChangeChildAdd], the component for
	// [ChangeComponents], the material or geometry forwarded to a host.
	Target any

	// Property is the name of the property for [ChangeProperty].
	Property string
}

// Change returns an [ObjectChange] of the given type with no target.
func Change(ct ChangeTypes) ObjectChange {
	return ObjectChange{Type: ct}
}

// IsAny returns whether any of the given bits are set.
func (oc ObjectChange) IsAny(flags ChangeTypes) bool {
	return oc.Type&flags != 0
}

// Has returns whether all of the given bits are set.
func (oc ObjectChange) Has(flags ChangeTypes) bool {
	return oc.Type.HasFlag(flags)
}
