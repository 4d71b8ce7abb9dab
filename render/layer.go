// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"cogentcore.org/xr/base/errors"
	"cogentcore.org/xr/math32"
	"cogentcore.org/xr/xyz"
)

// ErrSceneChanged is returned by [Layer.Update] when the scene changed
// while the content was being built, which means the scene was mutated
// from another goroutine than the render one.
var ErrSceneChanged = errors.New("render: scene changed while building content")

// LayerTypes are the render passes a [Layer] can hold content for.
type LayerTypes int32

const (
	// LayerOpaque holds materials that are not alpha blended.
	LayerOpaque LayerTypes = iota

	// LayerBlend holds alpha blended materials, drawn far to near
	// after the opaque content.
	LayerBlend
)

func (lt LayerTypes) String() string {
	if lt == LayerBlend {
		return "Blend"
	}
	return "Opaque"
}

// Accepts returns whether draws with the material belong in the layer.
func (lt LayerTypes) Accepts(mt *xyz.Material) bool {
	return mt.IsTransparent() == (lt == LayerBlend)
}

// Layer keeps the [Content] of a scene, or of one layer of a scene,
// for one render pass. The content is rebuilt by [Layer.Update] only
// when [Layer.NeedUpdate] reports that the version it was built from
// is stale. A layer built from a scene layer applies member additions
// and removals incrementally.
type Layer struct {

	// Name is used in logs and stats.
	Name string

	// Type selects the materials of the layer.
	Type LayerTypes

	// HasLights makes [Layer.Prepare] collect the lights of the scene.
	HasLights bool

	// FrustumCulling hides draws outside the camera frustum.
	FrustumCulling bool

	// Content is the current batch plan.
	Content Content

	scene             *xyz.Scene
	source            *xyz.Layer
	device            Device
	cache             *ResourceCache
	lastUpdateVersion int64
	lastFrame         int64
	lastCamera        *xyz.Camera
	builds            int64
	incremental       int64
	disposed          bool
}

// NewLayer returns a layer over all the nodes of the scene.
func NewLayer(name string, typ LayerTypes, sc *xyz.Scene, dev Device, cache *ResourceCache) *Layer {
	l := &Layer{Name: name, Type: typ, scene: sc, device: dev, cache: cache}
	l.init()
	return l
}

// NewSubLayer returns a layer over the members of a scene layer.
func NewSubLayer(name string, typ LayerTypes, source *xyz.Layer, dev Device, cache *ResourceCache) *Layer {
	l := &Layer{Name: name, Type: typ, scene: source.Scene(), source: source, device: dev, cache: cache}
	l.init()
	source.OnChange(l.sourceChanged)
	return l
}

func (l *Layer) init() {
	l.lastUpdateVersion = -1
	l.lastFrame = -1
	l.Content.clear()
}

// Scene returns the scene of the layer.
func (l *Layer) Scene() *xyz.Scene {
	return l.scene
}

// Source returns the scene layer the content comes from, nil for
// the whole scene.
func (l *Layer) Source() *xyz.Layer {
	return l.source
}

// Builds returns the number of full rebuilds.
func (l *Layer) Builds() int64 {
	return l.builds
}

// IncrementalUpdates returns the number of member changes applied
// without a rebuild.
func (l *Layer) IncrementalUpdates() int64 {
	return l.incremental
}

func (l *Layer) version() int64 {
	if l.source != nil {
		return l.source.Version()
	}
	return l.scene.Version()
}

// NeedUpdate returns whether the content is stale.
func (l *Layer) NeedUpdate() bool {
	return l.lastUpdateVersion != l.version()
}

// Update rebuilds the content from scratch.
func (l *Layer) Update() error {
	start := l.version()
	l.Content.clear()
	if l.source != nil {
		for _, n := range l.source.Nodes() {
			l.addNode(n)
		}
	} else {
		l.scene.WalkDown(func(n xyz.Node) bool {
			l.addNode(n)
			return xyz.Continue
		})
	}
	l.Content.sort()
	if v := l.version(); v != start {
		return errors.Errorf("%w: layer %q version %d became %d", ErrSceneChanged, l.Name, start, v)
	}
	l.lastUpdateVersion = start
	l.lastFrame = -1
	l.builds++
	slog.Debug("render: building content", "layer", l.Name, "shaders", len(l.Content.Shaders), "draws", l.Content.NumDraws())
	return nil
}

// addNode adds a draw for each compatible material of n.
// Lights, nodes without a vertex source or geometry and materials
// without a shader are skipped.
func (l *Layer) addNode(n xyz.Node) {
	if n.IsLight() {
		return
	}
	vs := n.AsObject().VertexSource()
	if vs == nil || vs.Geometry() == nil {
		return
	}
	for _, mt := range vs.Materials() {
		if mt == nil || mt.Shader == nil {
			continue
		}
		if !l.Type.Accepts(mt) {
			continue
		}
		l.Content.add(n, vs, mt)
	}
}

// sourceChanged applies a membership change of the scene layer, when
// the content was current right before it.
func (l *Layer) sourceChanged(ly *xyz.Layer, change xyz.LayerChange) {
	if l.disposed || l.lastUpdateVersion != ly.Version()-1 {
		return
	}
	switch change.Type {
	case xyz.LayerAdded:
		l.addNode(change.Node)
		l.Content.sort()
	case xyz.LayerRemoved:
		l.Content.removeNode(change.Node)
	}
	l.lastUpdateVersion = ly.Version()
	l.lastFrame = -1
	l.incremental++
}

// Prepare readies the content for drawing a frame: it computes the
// visibility and camera distance of each draw, uploads stale vertex
// data of visible buckets, gets the programs of visible shaders and
// collects the lights. It does nothing when called again for the same
// frame and camera.
func (l *Layer) Prepare(ctx *xyz.RenderContext) error {
	cam := ctx.Camera
	if ctx.Frame == l.lastFrame && cam == l.lastCamera {
		return nil
	}
	var fr *math32.Frustum
	var camPos mgl32.Vec3
	if cam != nil {
		camPos = cam.WorldPosition()
		if l.FrustumCulling {
			fr = cam.Frustum()
		}
	}
	for _, sc := range l.Content.Shaders {
		visible := false
		for _, vc := range sc.Vertices {
			updateVisibility(vc, fr, camPos)
			if vc.Hidden {
				continue
			}
			visible = true
			if err := l.updateHandler(vc); err != nil {
				return err
			}
		}
		if !visible {
			continue
		}
		prog, err := GetResource(l.cache, sc.Shader, func() (Program, error) {
			return l.device.NewProgram(sc.Shader)
		})
		if err != nil {
			return errors.Errorf("render: shader %q: %w", sc.Shader.Name, err)
		}
		sc.program = prog
	}
	if l.HasLights {
		if err := l.UpdateLights(); err != nil {
			return err
		}
	}
	l.lastFrame = ctx.Frame
	l.lastCamera = cam
	return nil
}

// updateVisibility sets the hidden state and distance of the draws of
// vc, hiding vc only when all of its draws are hidden.
func updateVisibility(vc *VertexContent, fr *math32.Frustum, camPos mgl32.Vec3) {
	var sum float32
	n := 0
	for _, dc := range vc.Draws {
		nb := dc.Node.AsNode()
		dc.Hidden = !dc.Material.IsEnabled() || !nb.IsVisible() ||
			(fr != nil && !fr.IntersectsBox(nb.WorldBounds()))
		if dc.Hidden {
			continue
		}
		dc.Distance = nb.DistanceTo(camPos)
		sum += dc.Distance
		n++
	}
	vc.Hidden = n == 0
	if n > 0 {
		vc.Distance = sum / float32(n)
	}
}

func (l *Layer) updateHandler(vc *VertexContent) error {
	vh, err := GetResource(l.cache, vc.Geometry, func() (VertexHandler, error) {
		return l.device.NewVertexHandler(vc.Geometry)
	})
	if err != nil {
		return errors.Errorf("render: geometry %q: %w", vc.Geometry.Name, err)
	}
	vc.handler = vh
	if vh.NeedUpdate() {
		return vh.Update()
	}
	return nil
}

// UpdateLights collects the visible lights that are on. The image based
// lighting of the first image light is computed again only when its
// panorama version changes.
func (l *Layer) UpdateLights() error {
	lc := &l.Content.Lights
	lc.reset()
	var img *xyz.ImageLight
	for _, lt := range l.scene.Lights() {
		lb := lt.AsLightBase()
		if !lb.On || !lb.IsVisible() {
			continue
		}
		switch lt := lt.(type) {
		case *xyz.AmbientLight:
			lc.Ambient = append(lc.Ambient, lt)
		case *xyz.DirLight:
			lc.Dir = append(lc.Dir, lt)
		case *xyz.PointLight:
			lc.Point = append(lc.Point, lt)
		case *xyz.SpotLight:
			lc.Spot = append(lc.Spot, lt)
		case *xyz.ImageLight:
			if img == nil {
				img = lt
			}
		}
	}
	if img == nil || img.Panorama() == nil {
		lc.releaseIBL()
		return nil
	}
	ver := img.PanoramaVersion()
	if lc.Image == img && lc.IBL != nil && lc.ImageLightVersion == ver {
		return nil
	}
	lc.releaseIBL()
	slog.Debug("render: computing image based lighting", "light", img.Name, "version", ver)
	ibl, err := l.device.ComputeIBL(img)
	if err != nil {
		return errors.Errorf("render: image light %q: %w", img.Name, err)
	}
	lc.Image = img
	lc.IBL = ibl
	lc.ImageLightVersion = ver
	lc.IBLComputes++
	return nil
}

// Dispose releases the lighting resources and clears the content.
// Cached programs and buffers belong to the [ResourceCache].
func (l *Layer) Dispose() {
	l.disposed = true
	l.Content.Lights.releaseIBL()
	l.Content.clear()
	l.lastUpdateVersion = -1
}
