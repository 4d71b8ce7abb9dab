// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package app drives the frames of an xr application: it owns the
// scenes, the play state and the frame context, and calls a
// [Renderer] for the active scene.
package app

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"cogentcore.org/xr/render"
	"cogentcore.org/xr/xyz"
)

// PlayStates are the states of scene updates.
type PlayStates int32

const (
	// Stopped does not update scenes, and resets the time on Start.
	Stopped PlayStates = iota

	// Paused does not update scenes, keeping the time.
	Paused

	// Playing updates the active scene every frame.
	Playing
)

func (ps PlayStates) String() string {
	switch ps {
	case Paused:
		return "Paused"
	case Playing:
		return "Playing"
	default:
		return "Stopped"
	}
}

// Renderer draws a scene. [render.Engine] is a Renderer.
type Renderer interface {
	Render(ctx *xyz.RenderContext, vp render.Viewport, flush bool) error
}

// Options are the settings of an [App].
type Options struct {

	// FPS is the target frame rate of [App.Run].
	FPS int `default:"60" min:"1"`

	// StatsWindow is the time over which FPS is averaged, at least 2s.
	StatsWindow time.Duration `default:"2s"`

	// ParallelUpdate runs the updates of leaves and components of
	// each scene on multiple goroutines.
	ParallelUpdate bool

	// MaxWorkers limits parallel updates, 0 for the number of CPUs.
	MaxWorkers int
}

// Defaults sets the default options.
func (o *Options) Defaults() {
	o.FPS = 60
	o.StatsWindow = 2 * time.Second
}

// App owns a set of scenes and renders the active one frame by frame.
// All methods except those of the [Dispatcher] must be called from the
// render goroutine.
type App struct {

	// Renderer draws the active scene. Frames are skipped without one.
	Renderer Renderer

	// Options are the app settings.
	Options Options

	// Now returns the current time. It defaults to [time.Now].
	Now func() time.Time

	scenes     []*xyz.Scene
	active     *xyz.Scene
	ctx        xyz.RenderContext
	startTime  time.Time
	state      PlayStates
	stats      *Stats
	dispatcher Dispatcher
	listeners  []xyz.ChangeListener
	listenIDs  map[*xyz.Scene][]xyz.ListenerID
}

// New returns a new stopped app with the options, or the default
// options if nil.
func New(opts *Options) *App {
	a := &App{Now: time.Now, listenIDs: map[*xyz.Scene][]xyz.ListenerID{}}
	if opts != nil {
		a.Options = *opts
	} else {
		a.Options.Defaults()
	}
	a.stats = newStats(a.Options.StatsWindow, func() time.Time { return a.Now() })
	return a
}

// Scenes returns the scenes in the order they were added.
func (a *App) Scenes() []*xyz.Scene {
	return a.scenes
}

// ActiveScene returns the scene being rendered, or nil.
func (a *App) ActiveScene() *xyz.Scene {
	return a.active
}

// PlayState returns the play state.
func (a *App) PlayState() PlayStates {
	return a.state
}

// Context returns the frame context.
func (a *App) Context() *xyz.RenderContext {
	return &a.ctx
}

// Stats returns the frame rate stats.
func (a *App) Stats() *Stats {
	return a.stats
}

// Dispatcher returns the queue of functions run on the render goroutine.
func (a *App) Dispatcher() *Dispatcher {
	return &a.dispatcher
}

// AddScene adds a scene, registering the app change listeners on it.
func (a *App) AddScene(sc *xyz.Scene) {
	if slices.Contains(a.scenes, sc) {
		return
	}
	a.scenes = append(a.scenes, sc)
	if a.Options.ParallelUpdate && sc.Updater == nil {
		um := xyz.NewUpdateManager(sc)
		um.Parallel = true
		um.MaxWorkers = a.Options.MaxWorkers
	}
	for _, l := range a.listeners {
		a.listenIDs[sc] = append(a.listenIDs[sc], sc.AddListener(l))
	}
}

// RemoveScene removes a scene and its listeners, returning whether
// it was added. The active scene is closed.
func (a *App) RemoveScene(sc *xyz.Scene) bool {
	i := slices.Index(a.scenes, sc)
	if i < 0 {
		return false
	}
	a.scenes = slices.Delete(a.scenes, i, i+1)
	for _, id := range a.listenIDs[sc] {
		sc.RemoveListener(id)
	}
	delete(a.listenIDs, sc)
	if a.active == sc {
		a.active = nil
	}
	return true
}

// OpenScene makes the scene active, adding it first if needed.
func (a *App) OpenScene(sc *xyz.Scene) {
	if a.active == sc {
		return
	}
	a.AddScene(sc)
	a.active = sc
	slog.Info("app: opened scene", "scene", sc.Name)
}

// AddChangeListener registers the listener on all scenes, present
// and future.
func (a *App) AddChangeListener(l xyz.ChangeListener) {
	a.listeners = append(a.listeners, l)
	for _, sc := range a.scenes {
		a.listenIDs[sc] = append(a.listenIDs[sc], sc.AddListener(l))
	}
}

// Start plays the active scene. Starting from [Stopped] restarts the
// frame counter and time.
func (a *App) Start() {
	if a.state == Playing {
		return
	}
	if a.state == Stopped {
		a.startTime = a.Now()
		a.ctx.Frame = 0
		a.ctx.Time = 0
		a.ctx.DeltaTime = 0
	}
	a.state = Playing
	slog.Info("app: started")
}

// Pause suspends scene updates while playing.
func (a *App) Pause() {
	if a.state != Playing {
		return
	}
	a.state = Paused
	slog.Info("app: paused")
}

// Stop stops playing and resets the active scene.
func (a *App) Stop() {
	if a.state == Stopped {
		return
	}
	a.state = Stopped
	if a.active != nil {
		a.active.Reset()
	}
	slog.Info("app: stopped")
}

// canRender returns whether there is something to render with.
func (a *App) canRender() bool {
	return a.active != nil && a.active.ActiveCamera() != nil && a.Renderer != nil
}

// BeginFrame starts a frame: it advances the frame counter, updates
// the active scene when playing, and runs the dispatched functions.
// It returns false, doing nothing, when there is no active scene,
// camera or renderer.
func (a *App) BeginFrame() bool {
	if !a.canRender() {
		return false
	}
	a.ctx.Frame++
	a.ctx.Scene = a.active
	a.ctx.Camera = a.active.ActiveCamera()
	if a.state == Playing {
		old := a.ctx.Time
		a.ctx.Time = a.Now().Sub(a.startTime).Seconds()
		a.ctx.DeltaTime = a.ctx.Time - old
		a.active.Update(&a.ctx)
	}
	a.dispatcher.ProcessQueue()
	a.stats.BeginFrame()
	return true
}

// RenderScene renders the active scene into the viewport.
func (a *App) RenderScene(vp render.Viewport, flush bool) error {
	if !a.canRender() {
		return nil
	}
	a.ctx.Camera = a.active.ActiveCamera()
	return a.Renderer.Render(&a.ctx, vp, flush)
}

// EndFrame finishes a frame started by BeginFrame.
func (a *App) EndFrame() {
	a.stats.EndFrame()
}

// RenderFrame updates and renders one frame. Stats are updated even
// when rendering fails.
func (a *App) RenderFrame(vp render.Viewport, flush bool) error {
	if !a.BeginFrame() {
		return nil
	}
	defer a.EndFrame()
	return a.RenderScene(vp, flush)
}

// Run renders frames at the target frame rate until ctx is done,
// returning the first render error.
func (a *App) Run(ctx context.Context, vp render.Viewport) error {
	tick := time.NewTicker(time.Second / time.Duration(max(a.Options.FPS, 1)))
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
			if err := a.RenderFrame(vp, true); err != nil {
				return err
			}
		}
	}
}

// Close stops the app and disposes all scenes.
func (a *App) Close() {
	a.Stop()
	for _, sc := range slices.Clone(a.scenes) {
		a.RemoveScene(sc)
		if c, ok := a.Renderer.(interface{ RemoveScene(sc *xyz.Scene) }); ok {
			c.RemoveScene(sc)
		}
		sc.Dispose()
	}
}
