package observability

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewLogger_JSONWithServiceAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "prod", "hostel-api", "warn")

	l.Info().Msg("dropped")
	l.Warn().Str("entity", "room").Msg("kept")

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("expected a single JSON line, got %q: %v", buf.String(), err)
	}
	if line["service"] != "hostel-api" || line["message"] != "kept" || line["entity"] != "room" {
		t.Fatalf("unexpected log line: %v", line)
	}
}

func TestNewLogger_DefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "prod", "hostel-api", "nonsense")
	l.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug line written at default level: %q", buf.String())
	}
}
