// Command qwiic scans the I²C bus, resolves responders to registered
// Qwiic device types and instantiates drivers.
package main

import (
	_ "qwiic-go/devices/all"
)

func main() { Execute() }
