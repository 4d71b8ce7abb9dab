// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command xrview renders a demo scene with the xr engine, either
// headless or in a raylib window.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"cogentcore.org/xr/base/logx"
	"cogentcore.org/xr/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// flags are the command line settings that override the config file.
type flags struct {
	config      string
	watch       bool
	window      bool
	frames      int
	sky         string
	verbose     bool
	veryVerbose bool
	quiet       bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "xrview",
		Short:         "xrview renders a demo scene with the xr engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newConfigCmd())
	return root
}

func newRunCmd() *cobra.Command {
	fl := &flags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "render the demo scene",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, fl)
			if err != nil {
				return err
			}
			logx.UserLevel = cfg.Log.Level()
			logx.SetDefaultLogger()
			err = run(cmd.Context(), cfg, fl, cmd.OutOrStdout())
			if err != nil {
				slog.Error("xrview: run", "err", err)
			}
			return err
		},
	}
	f := cmd.Flags()
	f.StringVarP(&fl.config, "config", "c", "", "config file (.toml, .yaml)")
	f.BoolVar(&fl.watch, "watch", false, "reload the config file when it changes")
	f.BoolVarP(&fl.window, "window", "w", false, "render in a window")
	f.StringVar(&fl.sky, "sky", "", "panorama image file lighting the scene")
	f.IntVarP(&fl.frames, "frames", "n", 0, "number of frames to render, 0 to run until closed")
	f.BoolVarP(&fl.verbose, "verbose", "v", false, "log info messages")
	f.BoolVar(&fl.veryVerbose, "vv", false, "log debug messages")
	f.BoolVarP(&fl.quiet, "quiet", "q", false, "only log errors")
	return cmd
}

// loadConfig returns the default config overridden by the config
// file and then by the flags that were set.
func loadConfig(cmd *cobra.Command, fl *flags) (*config.Config, error) {
	cfg := config.New()
	if fl.config != "" {
		if err := cfg.Open(fl.config); err != nil {
			return nil, err
		}
	}
	f := cmd.Flags()
	if f.Changed("window") {
		cfg.Window = fl.window
	}
	if f.Changed("frames") {
		cfg.Frames = max(fl.frames, 0)
	}
	if f.Changed("sky") {
		cfg.Sky = fl.sky
	}
	if f.Changed("verbose") {
		cfg.Log.Verbose = fl.verbose
	}
	if f.Changed("vv") {
		cfg.Log.VeryVerbose = fl.veryVerbose
	}
	if f.Changed("quiet") {
		cfg.Log.Quiet = fl.quiet
	}
	if fl.watch && fl.config == "" {
		return nil, fmt.Errorf("xrview: --watch needs --config")
	}
	return cfg, nil
}

func newConfigCmd() *cobra.Command {
	var save string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "print or save the default config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.New()
			if save != "" {
				return cfg.Save(save)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%+v\n", *cfg)
			return nil
		},
	}
	cmd.Flags().StringVarP(&save, "save", "s", "", "file to save the default config to (.toml, .yaml)")
	return cmd
}
