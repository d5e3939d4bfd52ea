package config

import (
	"os"
	"path/filepath"
	"testing"

	"qwiic-go/errcode"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "qwiic.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestDefaults(t *testing.T) {
	c, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, Config{LogLevel: "info", Output: OutputTable}, c)
	assert.Equal(t, log.InfoLevel, c.Level())
}

func TestFileThenEnvPrecedence(t *testing.T) {
	p := writeFile(t, `
bus:
  name: "1"
  frequency_hz: 100000
log_level: debug
output: json
`)
	t.Setenv("QWIIC_OUTPUT", "yaml")
	t.Setenv("QWIIC_BUS_FREQUENCY_HZ", "400000")

	c, err := Load(New(), p)
	require.NoError(t, err)
	assert.Equal(t, "1", c.Bus.Name)
	assert.Equal(t, uint32(400000), c.Bus.FrequencyHz)
	assert.Equal(t, OutputYAML, c.Output)
	assert.Equal(t, log.DebugLevel, c.Level())

	tc := c.Transport()
	assert.Equal(t, "1", tc.Name)
	assert.Equal(t, uint32(400000), tc.FrequencyHz)
}

func TestValidationFailures(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"bad output", "output: xml\n"},
		{"bad level", "log_level: chatty\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(New(), writeFile(t, tc.body))
			assert.ErrorIs(t, err, errcode.InvalidConfig)
		})
	}
}

func TestMissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, errcode.InvalidConfig)
}
