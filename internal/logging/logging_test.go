package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewFiltersBelowConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "warn", Output: &buf})

	logger.Info("should not appear")
	logger.Warn("should appear")

	out := buf.String()
	assert.NotContains(t, out, "should not appear")
	assert.Contains(t, out, "should appear")
}

func TestNewDefaultsToInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Output: &buf})
	assert.Equal(t, log.InfoLevel, logger.GetLevel())
}

func TestParseLevelRecognizesAllNames(t *testing.T) {
	cases := map[string]log.Level{
		"debug": log.DebugLevel,
		"info":  log.InfoLevel,
		"warn":  log.WarnLevel,
		"error": log.ErrorLevel,
		"":      log.InfoLevel,
		"huh":   log.InfoLevel,
	}
	for name, want := range cases {
		assert.Equal(t, want, parseLevel(name), name)
	}
}
