package logsvc

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/gradebook/core"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := make(map[string]interface{})
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestZeroLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewZeroLogger(&buf, core.LogConfig{Level: "info", Format: "json"}, "TEST")

	log.Debug("hidden")
	log.Info("request", map[string]interface{}{"status": 200, "uri": "/points"})
	log.Error("boom", errors.New("disk full"), 42)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)

	assert.Equal(t, "info", entries[0]["level"])
	assert.Equal(t, "request", entries[0]["message"])
	assert.Equal(t, "TEST", entries[0]["component"])
	assert.Equal(t, float64(200), entries[0]["status"])
	assert.Equal(t, "/points", entries[0]["uri"])

	assert.Equal(t, "error", entries[1]["level"])
	assert.Equal(t, "disk full", entries[1]["error"])
	assert.Equal(t, float64(42), entries[1]["arg1"])
	assert.Contains(t, entries[1]["stack"], "disk full")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level string
		want  string
	}{
		{level: "debug", want: "debug"},
		{level: "WARN", want: "warn"},
		{level: "error", want: "error"},
		{level: "", want: "info"},
		{level: "lol", want: "info"},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.level).String())
		})
	}
}

type recordingLogger struct {
	msgs []string
}

func (l *recordingLogger) Debug(msg string, _ ...interface{}) { l.msgs = append(l.msgs, "debug: "+msg) }
func (l *recordingLogger) Info(msg string, _ ...interface{})  { l.msgs = append(l.msgs, "info: "+msg) }
func (l *recordingLogger) Warn(msg string, _ ...interface{})  { l.msgs = append(l.msgs, "warn: "+msg) }
func (l *recordingLogger) Error(msg string, _ ...interface{}) { l.msgs = append(l.msgs, "error: "+msg) }
func (l *recordingLogger) Fatal(msg string, _ ...interface{}) { l.msgs = append(l.msgs, "fatal: "+msg) }

func TestRollbarLogger(t *testing.T) {
	rec := new(recordingLogger)
	log := NewRollbarLogger(rec, &core.Config{Env: "TEST"})
	log.Enable(false)

	log.Debug("a")
	log.Info("b")
	log.Warn("c", map[string]interface{}{"k": "v"})
	log.Error("d", errors.New("e"))

	assert.Equal(t, []string{"debug: a", "info: b", "warn: c", "error: d"}, rec.msgs)
}

func TestRollbarLogger_prepare(t *testing.T) {
	err := errors.New("oops")
	extras := map[string]interface{}{"id": 1}

	got := RollbarLogger{}.prepare("msg", []interface{}{err, 12, extras, "str"})
	assert.Equal(t, []interface{}{"msg", err, extras}, got)
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	defer func(w io.Writer) { stdout = w }(stdout)
	stdout = &buf

	log := New(&core.Config{Log: core.LogConfig{Level: "info"}}, "APP")
	_, ok := log.(*ZeroLogger)
	assert.True(t, ok)

	log = New(&core.Config{Debug: true, RollbarToken: "token"}, "APP")
	_, ok = log.(*RollbarLogger)
	assert.True(t, ok)
}
