package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nathoo/questline/config"
)

func TestRun_ExitCodes(t *testing.T) {
	t.Setenv(config.EnvPrefix+"LOG_FILE", "")
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"version", []string{"--version"}, 0},
		{"script without path", []string{"--script"}, 1},
		{"missing game", []string{"--plain", filepath.Join(t.TempDir(), "nowhere")}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(tt.args); got != tt.want {
				t.Errorf("run(%v) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}

func TestRun_ScriptFlushesLog(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "questline.log")
	script := filepath.Join(dir, "play.txt")
	if err := os.WriteFile(script, []byte("status\n/quit\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvPrefix+"LOG_FILE", logPath)
	t.Setenv(config.EnvPrefix+"LOG_LEVEL", "info")
	t.Setenv(config.EnvPrefix+"SEED", "7")

	if code := run([]string{"--script", script, filepath.Join("..", "..", "games", "hollowvale")}); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "starting") {
		t.Errorf("log = %q", data)
	}
}
