package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("debug", &buf, true)

	log.WithField("platform", "Reddit").Debug("Platform fetch finished")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Reddit", entry["platform"])
	assert.Equal(t, "debug", entry["level"])
}

func TestNewWithOutput_FallbackLevel(t *testing.T) {
	log := NewWithOutput("verbose", &bytes.Buffer{}, false)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}
