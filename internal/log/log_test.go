package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("bad record %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(name)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel accepted an unknown level")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, "warn")
	l.Debug("hidden")
	l.Infof("hidden %d", 1)
	l.Warn("shown", slog.Int("n", 3))
	l.Errorf("also %s", "shown")

	recs := records(t, &buf)
	var msgs []string
	for _, r := range recs {
		msgs = append(msgs, r["msg"].(string))
	}
	if d := cmp.Diff([]string{"shown", "also shown"}, msgs); d != "" {
		t.Fatal(d)
	}
	if recs[0]["n"] != float64(3) {
		t.Errorf("attribute n = %v, want 3", recs[0]["n"])
	}
	if c, _ := recs[0]["caller"].(string); !strings.HasPrefix(c, "log_test.go:") {
		t.Errorf("caller = %q, want this file", c)
	}
}

func TestStage(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, "debug").With(slog.String("svg", "x.svg"))
	l.Stage("sample", time.Now().Add(-time.Second), slog.Int("points", 10))

	recs := records(t, &buf)
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	r := recs[0]
	if r["stage"] != "sample" || r["svg"] != "x.svg" || r["points"] != float64(10) {
		t.Errorf("unexpected record %v", r)
	}
	if el, _ := r["elapsed"].(float64); el < float64(time.Second) {
		t.Errorf("elapsed = %v, want at least 1s", r["elapsed"])
	}
}

func TestNilLogger(t *testing.T) {
	var l *Logger
	l.Debug("x")
	l.Debugf("x %d", 1)
	l.Info("x")
	l.Infof("x %d", 1)
	l.Warnf("x %d", 1)
	l.Stage("x", time.Now())
	if l.With("a", 1) != nil {
		t.Error("With on a nil logger returned a logger")
	}
}

func TestNewWritesFile(t *testing.T) {
	dir := t.TempDir()
	l := New("info", dir)
	l.Info("ready")

	if want := filepath.Join(dir, "epicycles.slog"); l.LogFile != want {
		t.Errorf("LogFile = %q, want %q", l.LogFile, want)
	}
	b, err := os.ReadFile(l.LogFile)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(b, []byte(`"msg":"ready"`)) {
		t.Errorf("log file does not contain the record:\n%s", b)
	}
}
