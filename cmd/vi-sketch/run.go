package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/vi-sketch/audio"
	"github.com/lixenwraith/vi-sketch/core"
	"github.com/lixenwraith/vi-sketch/document"
	"github.com/lixenwraith/vi-sketch/errors"
	"github.com/lixenwraith/vi-sketch/input"
	"github.com/lixenwraith/vi-sketch/parameter"
	"github.com/lixenwraith/vi-sketch/render"
)

func newRunCmd() *cobra.Command {
	var (
		debugLog bool
		keymap   string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the interactive editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cmd.Context(), debugLog, keymap)
		},
	}

	cmd.Flags().BoolVar(&debugLog, "debug", false, "write logs to "+logDir+"/"+logFileName)
	cmd.Flags().StringVar(&keymap, "keymap", "", "TOML file of key binding overrides")
	return cmd
}

// loadKeys merges an optional keymap file over the defaults
func loadKeys(path string) (*input.KeyTable, error) {
	keys := input.DefaultKeyTable()
	if path == "" {
		return keys, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read keymap %s", path)
	}
	override, err := input.LoadKeyConfig(data)
	if err != nil {
		return nil, err
	}
	return input.MergeKeyTable(keys, override), nil
}

func runEditor(ctx context.Context, debugLog bool, keymap string) error {
	cfg := configFromContext(ctx)
	logger := loggerFromContext(ctx)

	keys, err := loadKeys(keymap)
	if err != nil {
		return err
	}

	// The screen owns stdout from here on
	if logFile := setupLogging(debugLog); logFile != nil {
		defer logFile.Close()
		logger.SetOutput(logFile)
	} else {
		logger.SetOutput(io.Discard)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	core.RegisterCrashFinalizer(screen)
	defer core.RegisterCrashFinalizer(nil)
	defer func() { core.HandleCrash(recover()) }()
	defer screen.Fini()

	width, height := screen.Size()
	d := document.New(cfg, logger)
	d.SetViewport(cfg.Transform(), float64(width), float64(canvasHeight(height)))
	d.SetCrashHandler(func(err error) {
		logger.Error("document diverged", "err", err)
		core.HandleCrash(err)
	})

	var sound *audio.SoundManager
	if cfg.Audio.Enabled {
		sound = audio.NewSoundManager()
		if err := sound.Initialize(); err != nil {
			logger.Warn("audio unavailable, continuing without", "err", err)
			sound = nil
		} else {
			defer sound.Cleanup()
			d.SetFeedback(sound)
		}
	}

	buf := render.NewRenderBuffer(width, height)
	var ed *editor
	if sound != nil {
		ed = newEditor(d, buf, sound, logger)
	} else {
		ed = newEditor(d, buf, nil, logger)
	}
	ed.scene.Status("q quits, p/L/c/m pick a tool, u undoes", false)
	machine := input.NewMachine(keys)

	events := make(chan tcell.Event, 256)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	frameTicker := time.NewTicker(parameter.FrameUpdateInterval)
	defer frameTicker.Stop()

	logger.Info("editor started", "document", d.ID, "size", fmt.Sprintf("%dx%d", width, height))
	for !d.ExitRequested() {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if in := machine.Process(ev); in != nil {
				ed.handle(in)
			}

		case <-frameTicker.C:
			if err := ed.frame(); err != nil {
				return err
			}
			buf.FlushToScreen(screen)
		}
	}
	logger.Info("editor closed", "entities", d.World.Count())
	return nil
}
