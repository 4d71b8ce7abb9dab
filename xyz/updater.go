// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"runtime"
	"slices"
	"sort"

	"golang.org/x/sync/errgroup"
)

// ComponentPriorityOffset is added to the [UpdatePrioritizer] priority
// of components, so that components run after the nodes they are
// attached to unless their priority is below -100.
const ComponentPriorityOffset = 100

// UpdateGroup is a set of per-frame updates run together.
type UpdateGroup struct {

	// Name describes the group.
	Name string

	// Priority orders the groups; lower runs first.
	Priority int

	// Parallel allows the items of different hosts to run concurrently.
	Parallel bool

	items []updateItem
}

// updateItem is an update and the node it changes.
type updateItem struct {
	host Node
	u    RenderUpdater
}

// Len returns the number of items.
func (ug *UpdateGroup) Len() int {
	return len(ug.items)
}

// selfUpdater runs the own update of a node, without children or components.
type selfUpdater struct {
	node Node
}

func (su selfUpdater) RenderUpdate(ctx *RenderContext) {
	if sc, ok := su.node.(*Scene); ok {
		sc.Group.Update(ctx)
		return
	}
	su.node.Update(ctx)
}

// UpdateManager schedules the per-frame update of a scene in groups:
// first the groups, then the leaf nodes, then the components by
// priority. The grouping is rebuilt when the scene content version
// changes.
//
// When Parallel is set, the items of the leaf and component groups
// run concurrently, one goroutine per host node. During a concurrent
// run every host is in an update batch: its change notifications and
// world matrix invalidation are delivered on the calling goroutine
// once the group is done. Concurrent updates may therefore change
// their own host, but must not read world matrices or change any
// other object.
type UpdateManager struct {

	// Parallel enables concurrent updates within parallel groups.
	Parallel bool

	// MaxWorkers limits the number of concurrent updates;
	// zero means GOMAXPROCS.
	MaxWorkers int

	scene   *Scene
	groups  []*UpdateGroup
	version int64
	built   bool
}

// NewUpdateManager returns a manager for the given scene, and sets it
// as the scene updater.
func NewUpdateManager(sc *Scene) *UpdateManager {
	um := &UpdateManager{scene: sc}
	sc.Updater = um
	return um
}

// Groups returns the current groups, in run order.
func (um *UpdateManager) Groups() []*UpdateGroup {
	return um.groups
}

// Build regroups the scene nodes and components.
func (um *UpdateManager) Build() {
	objects := &UpdateGroup{Name: "objects", Priority: -2}
	leaves := &UpdateGroup{Name: "leaves", Priority: -1, Parallel: true}
	comps := map[int]*UpdateGroup{}
	um.scene.WalkDown(func(n Node) bool {
		if n.AsGroup() != nil {
			objects.items = append(objects.items, updateItem{n, selfUpdater{n}})
		} else {
			leaves.items = append(leaves.items, updateItem{n, selfUpdater{n}})
		}
		for _, u := range n.AsObject().updaters {
			pri := ComponentPriorityOffset
			if up, ok := u.(UpdatePrioritizer); ok {
				pri += up.UpdatePriority()
			}
			grp := comps[pri]
			if grp == nil {
				grp = &UpdateGroup{Name: "components", Priority: pri, Parallel: true}
				comps[pri] = grp
			}
			grp.items = append(grp.items, updateItem{n, u})
		}
		return Continue
	})
	um.groups = []*UpdateGroup{objects, leaves}
	for _, g := range comps {
		um.groups = append(um.groups, g)
	}
	// stable keeps objects before leaves before components of equal priority
	sort.SliceStable(um.groups, func(i, j int) bool { return um.groups[i].Priority < um.groups[j].Priority })
	um.version = um.scene.ContentVersion()
	um.built = true
}

// Update runs all groups for one frame.
func (um *UpdateManager) Update(ctx *RenderContext) {
	justBuilt := false
	if !um.built || um.version != um.scene.ContentVersion() {
		um.Build()
		justBuilt = true
	}
	prev := ctx.UpdateOnlySelf
	ctx.UpdateOnlySelf = true
	defer func() { ctx.UpdateOnlySelf = prev }()
	for _, grp := range um.groups {
		if um.Parallel && grp.Parallel && !justBuilt && len(grp.items) > 1 {
			um.runParallel(ctx, grp)
			continue
		}
		for _, it := range slices.Clone(grp.items) {
			it.u.RenderUpdate(ctx)
		}
	}
}

// runParallel runs the items of each host on its own goroutine,
// with the hosts batching their changes until all are done.
func (um *UpdateManager) runParallel(ctx *RenderContext, grp *UpdateGroup) {
	var hosts []*NodeBase
	byHost := map[*NodeBase][]RenderUpdater{}
	for _, it := range grp.items {
		nb := it.host.AsNode()
		if _, ok := byHost[nb]; !ok {
			hosts = append(hosts, nb)
		}
		byHost[nb] = append(byHost[nb], it.u)
	}
	for _, nb := range hosts {
		nb.BeginUpdate()
		nb.concurrent = true
	}
	var eg errgroup.Group
	lim := um.MaxWorkers
	if lim <= 0 {
		lim = runtime.GOMAXPROCS(0)
	}
	eg.SetLimit(lim)
	for _, nb := range hosts {
		us := byHost[nb]
		eg.Go(func() error {
			for _, u := range us {
				u.RenderUpdate(ctx)
			}
			return nil
		})
	}
	eg.Wait()
	for _, nb := range hosts {
		nb.concurrent = false
		nb.EndUpdate()
	}
}
