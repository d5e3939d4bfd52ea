package shtc3dev

import (
	"testing"

	"qwiic-go/i2cbus/i2ctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	bus := i2ctest.New(0x70)
	dev, err := New(bus, 0x70)
	require.NoError(t, err)
	assert.True(t, dev.IsConnected())

	_, err = New(bus, 0x71)
	assert.Error(t, err)
}
