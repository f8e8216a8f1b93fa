package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Info("hello", "id", "abc")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "abc", entry["id"])
}

func TestNewDevelopment(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true)
	logger.Debug("visible in development")
	assert.Contains(t, buf.String(), "visible in development")
}

func TestSetupEngine(t *testing.T) {
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	require.NoError(t, SetupEngine(log, false, ""))
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())

	path := filepath.Join(t.TempDir(), "engine.log")
	require.NoError(t, SetupEngine(log, true, path))
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log.WithField("params", "9:9:10:0").Debug("mines placed")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"mines placed"`)
}
