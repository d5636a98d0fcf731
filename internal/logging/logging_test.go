package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gravemap/internal/logging"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{"debug": slog.LevelDebug, "WARN": slog.LevelWarn, "error": slog.LevelError, "": slog.LevelInfo}
	for in, want := range cases {
		if got := logging.ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(&buf, "info", "json")
	l.Debug("hidden")
	l.Info("route", "action", "sync")
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected a single JSON record, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "route" || rec["action"] != "sync" || rec["service"] != "gravemap" {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestSetup_WritesFile(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	path := filepath.Join(t.TempDir(), "gravemap.log")
	c, err := logging.Setup(path, "debug", "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	slog.Debug("hello", "action", "test")
	c.Close()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "msg=hello") || !strings.Contains(string(b), "action=test") {
		t.Errorf("unexpected log contents %q", b)
	}
}
