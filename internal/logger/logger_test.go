package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithOutput(t *testing.T) {
	tests := []struct {
		name          string
		level         string
		format        string
		expectedLevel logrus.Level
		expectJSON    bool
	}{
		{"defaults", "", "", logrus.InfoLevel, false},
		{"debug json", "debug", "json", logrus.DebugLevel, true},
		{"case insensitive", "WARN", "JSON", logrus.WarnLevel, true},
		{"invalid level", "loud", "text", logrus.InfoLevel, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithOutput(tt.level, tt.format, &buf)
			assert.Equal(t, tt.expectedLevel, log.GetLevel())

			buf.Reset()
			log.WithField("run_id", "r1").Error("boom")
			line := strings.TrimSpace(buf.String())
			if tt.expectJSON {
				var m map[string]any
				require.NoError(t, json.Unmarshal([]byte(line), &m))
				assert.Equal(t, "boom", m["msg"])
				assert.Equal(t, "r1", m["run_id"])
			} else {
				assert.Contains(t, line, "msg=boom")
				assert.Contains(t, line, "run_id=r1")
			}
		})
	}
}

func TestDiscard(t *testing.T) {
	log := Discard()
	log.Error("ignored")
}
