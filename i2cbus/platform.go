package i2cbus

import "sync"

// Config selects and tunes the platform transport.
type Config struct {
	// Name is the periph bus name or number on Linux ("1", "/dev/i2c-1"),
	// or "i2c0"/"i2c1" on RP2. Empty selects the platform default.
	Name string
	// FrequencyHz sets the bus clock. Zero keeps the platform default.
	FrequencyHz uint32
}

// Open selects and opens the transport for the running platform. Platforms
// without one return errcode.TransportUnavailable.
func Open(cfg Config) (*Bus, error) {
	i2c, closer, err := openPlatform(cfg)
	if err != nil {
		return nil, err
	}
	return &Bus{i2c: i2c, closer: closer, name: cfg.Name}, nil
}

var (
	defOnce sync.Once
	defBus  *Bus
	defErr  error
)

// Default returns the process transport, opened once with platform defaults.
// The selection is immutable afterwards, including a failed one.
func Default() (*Bus, error) {
	defOnce.Do(func() { defBus, defErr = Open(Config{}) })
	return defBus, defErr
}
