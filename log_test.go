package settler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlogLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := SlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))
	logger.Printf("At revision %d", 3)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	require.Equal(t, "At revision 3", record["msg"])
	require.Equal(t, "INFO", record["level"])
}

func TestNopLogger(t *testing.T) {
	t.Parallel()
	logger := NopLogger()
	logger.Printf("ignored %d", 1)
	logger.Fatalf("also ignored")
}
