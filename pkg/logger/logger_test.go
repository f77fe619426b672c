package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFallsBackToInfo(t *testing.T) {
	logg := New("loud", "json")
	assert.Equal(t, logrus.InfoLevel, logg.GetLevel())
}

func TestLogErrorWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	logg := NewWithOutput("error", "json", &buf)

	LogError(logg, "shipment", "CreateShipment", "insert items", map[string]int{"batch": 7}, errors.New("boom"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "boom", entry["msg"])
	assert.Equal(t, "shipment", entry["module"])
	assert.Equal(t, "CreateShipment", entry["funcName"])
	assert.Equal(t, "insert items", entry["context"])
	assert.NotNil(t, entry["data"])
}
