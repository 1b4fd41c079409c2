package db

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceLevel(t *testing.T) {
	assert.Equal(t, tracelog.LogLevelDebug, traceLevel(zerolog.DebugLevel))
	assert.Equal(t, tracelog.LogLevelDebug, traceLevel(zerolog.TraceLevel))
	assert.Equal(t, tracelog.LogLevelWarn, traceLevel(zerolog.InfoLevel))
}

func TestPgxLogger_ForwardsFields(t *testing.T) {
	var buf bytes.Buffer
	l := pgxLogger{lgr: zerolog.New(&buf)}

	l.Log(context.Background(), tracelog.LogLevelError, "Query", map[string]any{"sql": "SELECT 1"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "Query", entry["message"])
	assert.Equal(t, "SELECT 1", entry["sql"])
}
