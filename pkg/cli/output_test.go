package cli

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateOutputFormat(t *testing.T) {
	assert.NoError(t, validateOutputFormat(""))
	assert.NoError(t, validateOutputFormat("table"))
	assert.NoError(t, validateOutputFormat("json"))
	assert.Error(t, validateOutputFormat("xml"))
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, map[string]string{"name": "Sales"}))
	assert.Equal(t, "{\n  \"name\": \"Sales\"\n}\n", buf.String())
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	err := printTable(&buf, []string{"STATE", "ROLE"}, [][]string{
		{"active", "Helpdesk Administrator"},
		{"eligible", "Global Reader"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "STATE")
	assert.Contains(t, out, "Helpdesk Administrator")
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	assert.Len(t, lines, 3)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"error", slog.LevelError},
		{"warn", slog.LevelWarn},
		{"nonsense", slog.LevelWarn},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.in), "level %q", tt.in)
	}
}
