package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSendDefaults(t *testing.T) {
	cfg, err := ParseSend(nil)
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.Output)
	assert.Equal(t, "nec", cfg.Protocol)
	assert.Equal(t, -1, cfg.Subdevice)
	assert.Equal(t, -1, cfg.Subfunction)
}

func TestParseSendOverridesFields(t *testing.T) {
	cfg, err := ParseSend([]string{"-p", "rc5", "-d", "5", "-f", "9"})
	require.NoError(t, err)
	assert.Equal(t, "rc5", cfg.Protocol)
	assert.Equal(t, 5, cfg.Device)
	assert.Equal(t, 9, cfg.Function)
}

func TestParseLayoutRequiresFile(t *testing.T) {
	_, err := ParseLayout(nil)
	assert.Error(t, err)
}

func TestParseLayoutAcceptsFileAndInput(t *testing.T) {
	cfg, err := ParseLayout([]string{"-c", "layout.txt", "hw:1,0"})
	require.NoError(t, err)
	assert.Equal(t, "layout.txt", cfg.LayoutFile)
	assert.Equal(t, "hw:1,0", cfg.Input)
	assert.False(t, cfg.ShowCodes)
}

func TestParseLayoutCSVImpliesShowOnly(t *testing.T) {
	cfg, err := ParseLayout([]string{"-t", "layout.txt"})
	require.NoError(t, err)
	assert.True(t, cfg.ShowOnly)
	assert.True(t, cfg.ShowCSV)
}

func TestParseRecvDefaults(t *testing.T) {
	cfg, err := ParseRecv(nil)
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.Input)
	assert.False(t, cfg.ASCII)
}
