// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	rl "github.com/gen2brain/raylib-go/raylib"

	"cogentcore.org/xr/app"
	"cogentcore.org/xr/base/logx"
	"cogentcore.org/xr/config"
	"cogentcore.org/xr/render"
	"cogentcore.org/xr/render/rlgl"
	"cogentcore.org/xr/xyz"
)

// run renders the demo scene until the frame count is reached, the
// window is closed or the context is done, then prints the stats.
func run(ctx context.Context, cfg *config.Config, fl *flags, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if cfg.Window {
		rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
		rl.InitWindow(int32(cfg.Width), int32(cfg.Height), cfg.Title)
		defer rl.CloseWindow()
		rl.SetTargetFPS(int32(cfg.App.FPS))
	}
	var dev render.Device
	if cfg.Window {
		dev = rlgl.NewDevice()
	} else {
		dev = render.NewRecordingDevice()
	}
	var sky *xyz.Texture
	if cfg.Sky != "" {
		var err error
		if sky, err = xyz.OpenTexture("sky", cfg.Sky); err != nil {
			return err
		}
	}
	eng := render.NewEngine(dev, &cfg.Render)
	a := app.New(&cfg.App)
	a.Renderer = eng
	defer a.Close()
	a.OpenScene(NewDemoScene(sky))
	a.Start()

	if fl != nil && fl.watch {
		w, err := config.NewWatcher(fl.config, cfg, func(c *config.Config) {
			a.Dispatcher().Post(func() { applyConfig(eng, c) })
		})
		if err != nil {
			return err
		}
		defer w.Close()
		go func() {
			if err := w.Run(ctx); err != nil {
				slog.Error("xrview: watch", "err", err)
			}
		}()
	}

	vp := render.Viewport{Width: cfg.Width, Height: cfg.Height}
	var err error
	switch {
	case cfg.Window:
		err = runWindow(ctx, a, cfg.Frames)
	case cfg.Frames > 0:
		err = runFrames(ctx, a, vp, cfg.Frames)
	default:
		err = a.Run(ctx, vp)
	}
	printStats(out, a, eng)
	return err
}

// runFrames renders n frames as fast as possible.
func runFrames(ctx context.Context, a *app.App, vp render.Viewport, n int) error {
	for range n {
		if ctx.Err() != nil {
			return nil
		}
		if err := a.RenderFrame(vp, true); err != nil {
			return err
		}
	}
	return nil
}

// runWindow renders into the window at the raylib target frame rate,
// following the window size.
func runWindow(ctx context.Context, a *app.App, n int) error {
	for i := 0; n == 0 || i < n; i++ {
		if ctx.Err() != nil || rl.WindowShouldClose() {
			return nil
		}
		vp := render.Viewport{Width: int(rl.GetScreenWidth()), Height: int(rl.GetScreenHeight())}
		if err := a.RenderFrame(vp, true); err != nil {
			return err
		}
	}
	return nil
}

// applyConfig applies the parts of a reloaded config that can change
// while running.
func applyConfig(eng *render.Engine, c *config.Config) {
	eng.SetOptions(c.Render)
	logx.UserLevel = c.Log.Level()
	logx.SetDefaultLogger()
}

func printStats(out io.Writer, a *app.App, eng *render.Engine) {
	st := eng.Stats()
	as := a.Stats()
	fmt.Fprintf(out, "frames: %d  fps: %.1f  draws: %d  hidden: %d  buckets: %d  shaders: %d  lights: %d  builds: %d  resources: %d\n",
		st.Frames, as.FPS, st.Draws, st.Hidden, st.Buckets, st.Shaders, st.Lights, st.Builds, st.Resources)
}
