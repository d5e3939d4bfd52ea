//go:build linux && !baremetal

package i2cbus

import (
	"io"

	"qwiic-go/errcode"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
	"tinygo.org/x/drivers"
)

// openPlatform opens a Linux I²C adapter through periph.io. Any failure to
// load host drivers or find the bus means no transport on this machine.
func openPlatform(cfg Config) (drivers.I2C, io.Closer, error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, errcode.Wrap(errcode.TransportUnavailable, "host init", err)
	}
	bc, err := i2creg.Open(cfg.Name)
	if err != nil {
		return nil, nil, errcode.Wrap(errcode.TransportUnavailable, "open "+busLabel(cfg.Name), err)
	}
	if cfg.FrequencyHz > 0 {
		if err := bc.SetSpeed(physic.Frequency(cfg.FrequencyHz) * physic.Hertz); err != nil {
			_ = bc.Close()
			return nil, nil, errcode.Wrap(errcode.IO, "set speed", err)
		}
	}
	return bc, bc, nil
}

func busLabel(name string) string {
	if name == "" {
		return "default bus"
	}
	return "bus " + name
}
