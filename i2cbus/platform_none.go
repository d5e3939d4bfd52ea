//go:build !(linux && !baremetal) && !(rp2040 || rp2350)

package i2cbus

import (
	"io"

	"qwiic-go/errcode"

	"tinygo.org/x/drivers"
)

// No transport on this platform; callers degrade to empty scans.
func openPlatform(Config) (drivers.I2C, io.Closer, error) {
	return nil, nil, &errcode.E{C: errcode.TransportUnavailable, Op: "open", Msg: "no I2C transport for this platform"}
}
