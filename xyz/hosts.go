// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import "slices"

// hostList tracks the objects that use a shared resource, such as the
// meshes using a material, so that changes can be forwarded to them.
type hostList struct {
	hosts []Object
}

// Hosts returns the objects using this one.
func (hl *hostList) Hosts() []Object {
	return hl.hosts
}

func (hl *hostList) addHost(h Object) {
	if !slices.Contains(hl.hosts, h) {
		hl.hosts = append(hl.hosts, h)
	}
}

func (hl *hostList) removeHost(h Object) {
	if i := slices.Index(hl.hosts, h); i >= 0 {
		hl.hosts = slices.Delete(hl.hosts, i, i+1)
	}
}

// notifyHosts forwards a change to every host, with target set to src.
func (hl *hostList) notifyHosts(src Object, change ObjectChange) {
	change.Target = src
	for _, h := range slices.Clone(hl.hosts) {
		h.AsObject().NotifyChanged(change)
	}
}
