package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/nathoo/questline/config"
)

func TestNew_DiscardsWithoutFile(t *testing.T) {
	log, closeFn, err := New(config.Settings{LogLevel: "info", LogFormat: "text"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer closeFn()
	if log.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %v", log.GetLevel())
	}
	log.Info("nobody hears this")
}

func TestNew_BadLevel(t *testing.T) {
	if _, _, err := New(config.Settings{LogLevel: "loud", LogFormat: "text"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNew_JSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questline.log")
	log, closeFn, err := New(config.Settings{LogLevel: "debug", LogFormat: "json", LogFile: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.WithField("component", "test").Debug("hello")
	if err := closeFn(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry); err != nil {
		t.Fatalf("log line is not JSON: %q", data)
	}
	if entry["msg"] != "hello" || entry["component"] != "test" || entry["level"] != "debug" {
		t.Errorf("entry = %v", entry)
	}
}
