package utils

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerJSONLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWith(&buf, "warn", "json")

	log.Info("[test] hidden %d", 1)
	log.Warn("[test] shown %d", 2)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "[test] shown 2", entry["message"])
}

func TestLoggerDuration(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWith(&buf, "debug", "json")

	log.Duration(time.Now().Add(-time.Second), "[test] done")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Contains(t, entry, "elapsed")
}

func TestLoggerConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWith(&buf, "debug", "console")

	log.Debug("[test] hello %s", "world")
	assert.Contains(t, buf.String(), "[test] hello world")
}
