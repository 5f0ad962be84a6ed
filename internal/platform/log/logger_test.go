package log_test

import (
	"bytes"
	"encoding/json"
	"testing"

	applog "apnea/internal/platform/log"
)

func TestWithComponentWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	applog.Configure(applog.Config{Level: "debug", Output: &buf, Service: "apnea-test"})

	logger := applog.WithComponent("runtime")
	logger.Debug().Str("op", "pause").Msg("ignored")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if entry["component"] != "runtime" || entry["service"] != "apnea-test" || entry["op"] != "pause" {
		t.Fatalf("unexpected log entry: %v", entry)
	}
}

func TestConfigureFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	applog.Configure(applog.Config{Level: "warn", Output: &buf})
	logger := applog.Base()
	logger.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level, got %q", buf.String())
	}
}
