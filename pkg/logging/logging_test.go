package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("", "", &buf)
	require.NoError(t, err)

	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)

	logger.Debug("hidden")
	logger.WithField("trades", 3).Info("imported")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=imported")
	assert.Contains(t, out, "trades=3")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("debug", "JSON", &buf)
	require.NoError(t, err)

	logger.WithField("collection", "trades").Debug("record skipped")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "record skipped", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "trades", entry["collection"])
}

func TestNewInvalid(t *testing.T) {
	_, err := New("loud", "", nil)
	assert.Error(t, err)

	_, err = New("info", "xml", nil)
	assert.ErrorContains(t, err, "xml")
}
