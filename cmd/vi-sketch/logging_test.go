package main

import (
	"bytes"
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	charmlog "github.com/charmbracelet/log"

	"github.com/lixenwraith/vi-sketch/config"
)

// inTempDir runs the test from an empty directory so logs/ never lands in the tree
func inTempDir(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		_ = os.Chdir(wd)
	})
}

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	inTempDir(t)

	if f := setupLogging(false); f != nil {
		f.Close()
		t.Error("expected nil log file without debug")
	}
	if log.Writer() != io.Discard {
		t.Errorf("log output = %v, want io.Discard", log.Writer())
	}
	if _, err := os.Stat(logDir); !os.IsNotExist(err) {
		t.Error("log directory created without debug")
	}
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	inTempDir(t)

	f := setupLogging(true)
	if f == nil {
		t.Fatal("expected a log file with debug")
	}
	defer f.Close()

	log.Println("editor started")

	info, err := os.Stat(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatalf("stat log file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("log file is empty after a write")
	}
	if w := log.Writer(); w == os.Stdout || w == os.Stderr {
		t.Error("debug logging writes to the terminal")
	}
}

func TestSetupLogging_Rotation(t *testing.T) {
	inTempDir(t)

	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatal(err)
	}
	logPath := filepath.Join(logDir, logFileName)
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatal(err)
	}

	f := setupLogging(true)
	if f == nil {
		t.Fatal("expected a log file")
	}
	defer f.Close()

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatal(err)
	}
	rotated := false
	for _, e := range entries {
		if e.Name() != logFileName && filepath.Ext(e.Name()) == ".log" {
			rotated = true
		}
	}
	if !rotated {
		t.Error("oversized log was not rotated")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("fresh log is %d bytes, want at most %d", info.Size(), maxLogSize)
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   charmlog.Level
		logFunc func(*charmlog.Logger)
		wantLog bool
	}{
		{"info at info level", charmlog.InfoLevel, func(l *charmlog.Logger) { l.Info("x") }, true},
		{"debug at info level", charmlog.InfoLevel, func(l *charmlog.Logger) { l.Debug("x") }, false},
		{"debug at debug level", charmlog.DebugLevel, func(l *charmlog.Logger) { l.Debug("x") }, true},
		{"warn at error level", charmlog.ErrorLevel, func(l *charmlog.Logger) { l.Warn("x") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("logged = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestContextFallbacks(t *testing.T) {
	ctx := context.Background()
	if loggerFromContext(ctx) == nil {
		t.Error("loggerFromContext returned nil without a logger")
	}
	if cfg := configFromContext(ctx); cfg.Grid.CellSize != config.Default().Grid.CellSize {
		t.Errorf("fallback config = %+v", cfg)
	}

	var buf bytes.Buffer
	l := newLogger(&buf, charmlog.InfoLevel)
	cfg := config.Default()
	cfg.History.Limit = 7
	ctx = withConfig(withLogger(ctx, l), cfg)

	loggerFromContext(ctx).Info("attached")
	if !strings.Contains(buf.String(), "attached") {
		t.Error("context logger is not the attached one")
	}
	if configFromContext(ctx).History.Limit != 7 {
		t.Error("context config is not the attached one")
	}
}
