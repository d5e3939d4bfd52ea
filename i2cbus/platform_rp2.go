//go:build rp2040 || rp2350

package i2cbus

import (
	"io"
	"machine"

	"qwiic-go/errcode"

	"tinygo.org/x/drivers"
)

// openPlatform configures i2c0 (default) or i2c1 on the board-default pins
// at 400 kHz unless cfg overrides the clock.
func openPlatform(cfg Config) (drivers.I2C, io.Closer, error) {
	freq := uint32(400 * machine.KHz)
	if cfg.FrequencyHz > 0 {
		freq = cfg.FrequencyHz
	}

	var (
		b   *machine.I2C
		ccf machine.I2CConfig
	)
	switch cfg.Name {
	case "", "i2c0":
		b = machine.I2C0
		ccf = machine.I2CConfig{Frequency: freq, SDA: machine.I2C0_SDA_PIN, SCL: machine.I2C0_SCL_PIN}
	case "i2c1":
		b = machine.I2C1
		ccf = machine.I2CConfig{Frequency: freq, SDA: machine.I2C1_SDA_PIN, SCL: machine.I2C1_SCL_PIN}
	default:
		return nil, nil, &errcode.E{C: errcode.TransportUnavailable, Op: "open", Msg: "unknown bus " + cfg.Name}
	}
	if err := b.Configure(ccf); err != nil {
		return nil, nil, errcode.Wrap(errcode.TransportUnavailable, "configure "+cfg.Name, err)
	}
	return b, nil, nil
}
