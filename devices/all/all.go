// Package all links every bundled device package into the default registry.
package all

import (
	_ "qwiic-go/devices/aht20"
	_ "qwiic-go/devices/bme280"
	_ "qwiic-go/devices/ccs811"
	_ "qwiic-go/devices/microoled"
	_ "qwiic-go/devices/proximity"
	_ "qwiic-go/devices/scmd"
	_ "qwiic-go/devices/shtc3"
)
